package common

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMessages_CSVExport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inbox.csv")
	content := `sender,body,received_at
VM-PHONPE,"Paid Rs.250 to Swiggy via PhonePe. UPI Ref: 401234567890",2026-03-12T10:00:00Z
AD-HDFCBK,"   ",2026-03-12T10:01:00Z
JD-GPAY,"You paid ₹1,450.00 to Zomato using Google Pay",2026-03-12T10:02:00Z
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	h := NewCSVHandler(',', logging.NewMockLogger())
	messages, err := h.ReadMessages(path)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Paid Rs.250 to Swiggy via PhonePe. UPI Ref: 401234567890",
		"You paid ₹1,450.00 to Zomato using Google Pay",
	}, messages)
}

func TestReadMessages_SemicolonDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inbox.CSV")
	content := "sender;body;received_at\nVM-PAYTM;Rs.120 paid to Uber India from Paytm Wallet;2026-03-12\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	messages, err := NewCSVHandler(';', nil).ReadMessages(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rs.120 paid to Uber India from Paytm Wallet"}, messages)
}

func TestReadMessages_TextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inbox.txt")
	content := "Paid Rs.250 to Swiggy via PhonePe.\n\n   \nYou received ₹2,000 from Priya on GPay  \n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	messages, err := NewCSVHandler(0, nil).ReadMessages(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Paid Rs.250 to Swiggy via PhonePe.",
		"You received ₹2,000 from Priya on GPay",
	}, messages)
}

func TestReadMessages_MissingFile(t *testing.T) {
	h := NewCSVHandler(',', nil)

	_, err := h.ReadMessages(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)

	_, err = h.ReadMessages(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error opening CSV file")
}

func TestReadCSV_Generic(t *testing.T) {
	type row struct {
		Name  string `csv:"name"`
		Count int    `csv:"count"`
	}
	rows, err := ReadCSV[row](strings.NewReader("name,count\nalpha,1\nbeta,2\n"), ',')
	require.NoError(t, err)
	assert.Equal(t, []row{{"alpha", 1}, {"beta", 2}}, rows)
}

func TestWriteOutcomes(t *testing.T) {
	rows := []models.ImportOutcomeRow{
		{Index: 0, Status: "success", TransactionID: "tx-1", Amount: "250", Type: "expense"},
		{Index: 1, Status: "failed", Reason: "could not parse"},
	}

	var buf bytes.Buffer
	require.NoError(t, NewCSVHandler(',', nil).WriteOutcomes(&buf, rows))

	assert.Equal(t,
		"index,status,transaction_id,amount,type,reason\n"+
			"0,success,tx-1,250,expense,\n"+
			"1,failed,,,,could not parse\n",
		buf.String())
}

func TestWriteOutcomesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "outcomes.csv")
	logger := logging.NewMockLogger()
	h := NewCSVHandler(';', logger)

	rows := []models.ImportOutcomeRow{{Index: 0, Status: "duplicate", Reason: "similar transaction found"}}
	require.NoError(t, h.WriteOutcomesFile(path, rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "index;status;transaction_id;amount;type;reason\n0;duplicate;;;;similar transaction found\n", string(data))
	assert.True(t, logger.HasEntry("INFO", "Wrote import outcomes"))

	back, err := ReadCSVFile[models.ImportOutcomeRow](path, ';', nil)
	require.NoError(t, err)
	assert.Equal(t, rows, back)
}
