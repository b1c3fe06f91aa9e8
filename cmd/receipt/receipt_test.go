package receipt

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fjacquet/budget-tracker/internal/filestore"
	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/models"
	scanner "fjacquet/budget-tracker/internal/receipt"
	"fjacquet/budget-tracker/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedCategorizer string

func (f fixedCategorizer) CategorizeMerchant(context.Context, string) string { return string(f) }

func setup(t *testing.T) (string, *filestore.MockStore, *store.MockStore, *scanner.Scanner) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lunch.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg"), 0600))

	files := filestore.NewMockStore()
	st := store.NewMockStore(models.Account{ID: "acct-1", UserID: "alice", Name: "Wallet", Balance: decimal.NewFromInt(5000), Active: true})
	s := scanner.NewScanner(files, st, fixedCategorizer(models.CategoryGroceries), logging.NewMockLogger(),
		scanner.WithClock(func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) }))
	return path, files, st, s
}

func TestReceiptCommand_Metadata(t *testing.T) {
	assert.Equal(t, "receipt <file>", Cmd.Use)
	assert.NotNil(t, Cmd.Flags().Lookup("account"))
	assert.NotNil(t, Cmd.Flags().Lookup("format"))
}

func TestScanReceipt_ScanOnly(t *testing.T) {
	path, files, st, s := setup(t)

	res, err := scanReceipt(context.Background(), s, path, "alice", "")
	require.NoError(t, err)

	assert.Nil(t, res.Transaction)
	assert.Equal(t, "Sample Store", res.Scan.Merchant)
	assert.Len(t, files.Files, 1)
	assert.Empty(t, st.Transactions)
}

func TestScanReceipt_Import(t *testing.T) {
	path, _, st, s := setup(t)

	res, err := scanReceipt(context.Background(), s, path, "alice", "acct-1")
	require.NoError(t, err)

	require.NotNil(t, res.Transaction)
	assert.Equal(t, models.CategoryGroceries, res.Transaction.Category)
	require.Len(t, st.Transactions, 1)
	assert.True(t, decimal.NewFromInt(3750).Equal(st.Accounts["acct-1"].Balance))
}

func TestScanReceipt_UnknownAccount(t *testing.T) {
	path, files, _, s := setup(t)

	res, err := scanReceipt(context.Background(), s, path, "alice", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uploaded but not recorded")
	assert.Equal(t, "Sample Store", res.Scan.Merchant)
	assert.Len(t, files.Files, 1)
}

func TestWriteText(t *testing.T) {
	path, _, _, s := setup(t)
	res, err := scanReceipt(context.Background(), s, path, "alice", "acct-1")
	require.NoError(t, err)

	var sb strings.Builder
	writeText(&sb, res)
	out := sb.String()

	assert.Contains(t, out, "Merchant:   Sample Store")
	assert.Contains(t, out, "Date:       2026-03-02")
	assert.Contains(t, out, "Confidence: 85%")
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "Recorded as ")
}
