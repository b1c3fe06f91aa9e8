package smsimport

import (
	"context"
	"strings"
	"testing"
	"time"

	"fjacquet/budget-tracker/internal/batch"
	"fjacquet/budget-tracker/internal/models"
	"fjacquet/budget-tracker/internal/smsparser"
	"fjacquet/budget-tracker/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportCommand_Metadata(t *testing.T) {
	assert.Equal(t, "import [message...]", Cmd.Use)
	assert.Contains(t, Cmd.Short, "Import transaction SMS")
	assert.Contains(t, Cmd.Long, "Example")
	assert.NotNil(t, Cmd.RunE)

	flag := Cmd.Flags().Lookup("account")
	require.NotNil(t, flag)
	assert.Equal(t, "a", flag.Shorthand)
}

func newImporter(st store.Store) *batch.Importer {
	now := func() time.Time { return time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC) }
	return batch.NewImporter(
		smsparser.NewParser(nil, smsparser.WithClock(now)),
		smsparser.NewDetector(smsparser.DefaultDuplicateWindow, now),
		st, nil, nil,
	)
}

func TestImportMessagesAndWriteResult(t *testing.T) {
	st := store.NewMockStore(models.Account{ID: "acct-1", UserID: "alice", Name: "Main", Balance: decimal.NewFromInt(500), Active: true})

	result, err := importMessages(context.Background(), newImporter(st), "alice", "acct-1", []string{
		"Paid Rs.250 to Swiggy via PhonePe",
		"Paid Rs.250 to Swiggy via PhonePe",
		"hello",
	})
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, writeResult(&sb, result))
	text := sb.String()

	assert.Contains(t, text, "expense 250 (tx-1)")
	assert.Contains(t, text, "similar transaction found")
	assert.Contains(t, text, "could not parse")
	assert.Contains(t, text, "1 imported, 1 duplicate, 1 failed, 0 errors")
	assert.True(t, decimal.NewFromInt(250).Equal(st.Accounts["acct-1"].Balance))
}

func TestImportMessages_Errors(t *testing.T) {
	st := store.NewMockStore()

	_, err := importMessages(context.Background(), newImporter(st), "alice", "acct-1", nil)
	assert.EqualError(t, err, "no messages to import")

	_, err = importMessages(context.Background(), newImporter(st), "alice", "acct-1", []string{"Paid Rs.1 to A via PhonePe"})
	assert.ErrorIs(t, err, store.ErrAccountInactive)
}

func TestIsCSV(t *testing.T) {
	assert.True(t, isCSV("out/outcomes.csv"))
	assert.True(t, isCSV("OUT.CSV"))
	assert.False(t, isCSV("outcomes.txt"))
	assert.False(t, isCSV(""))
}
