package batch

import (
	"strconv"

	"fjacquet/budget-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// Outcome reasons.
const (
	ReasonUnparseable = "could not parse"
	ReasonDuplicate   = "similar transaction found"
)

// Outcome statuses as shown in reports.
const (
	StatusSuccess   = "success"
	StatusDuplicate = "duplicate"
	StatusFailed    = "failed"
	StatusError     = "error"
)

// Outcome is the result of importing one message: Success, Duplicate, Failed or Error.
type Outcome interface {
	// Position is the index of the message in the input.
	Position() int
	Status() string
	Row() models.ImportOutcomeRow
	sealed()
}

// Success is a message stored as a transaction.
type Success struct {
	Index         int
	TransactionID string
	Amount        decimal.Decimal
	Type          models.TransactionType
}

// Duplicate is a message matching a recent transaction.
type Duplicate struct {
	Index  int
	Reason string
}

// Failed is a message that no pattern recognised.
type Failed struct {
	Index  int
	Reason string
}

// Error is a message whose transaction could not be stored.
type Error struct {
	Index int
	Err   error
}

func (o Success) Position() int   { return o.Index }
func (o Duplicate) Position() int { return o.Index }
func (o Failed) Position() int    { return o.Index }
func (o Error) Position() int     { return o.Index }

func (Success) Status() string   { return StatusSuccess }
func (Duplicate) Status() string { return StatusDuplicate }
func (Failed) Status() string    { return StatusFailed }
func (Error) Status() string     { return StatusError }

func (Success) sealed()   {}
func (Duplicate) sealed() {}
func (Failed) sealed()    {}
func (Error) sealed()     {}

func (o Success) Row() models.ImportOutcomeRow {
	return models.ImportOutcomeRow{
		Index:         o.Index,
		Status:        StatusSuccess,
		TransactionID: o.TransactionID,
		Amount:        o.Amount.String(),
		Type:          string(o.Type),
	}
}

func (o Duplicate) Row() models.ImportOutcomeRow {
	return models.ImportOutcomeRow{Index: o.Index, Status: StatusDuplicate, Reason: o.Reason}
}

func (o Failed) Row() models.ImportOutcomeRow {
	return models.ImportOutcomeRow{Index: o.Index, Status: StatusFailed, Reason: o.Reason}
}

func (o Error) Row() models.ImportOutcomeRow {
	reason := ""
	if o.Err != nil {
		reason = o.Err.Error()
	}
	return models.ImportOutcomeRow{Index: o.Index, Status: StatusError, Reason: reason}
}

// Result is the outcome of a batch import.
type Result struct {
	SuccessCount int
	Outcomes     []Outcome
}

// Rows flattens the outcomes in input order.
func (r Result) Rows() []models.ImportOutcomeRow {
	rows := make([]models.ImportOutcomeRow, len(r.Outcomes))
	for i, o := range r.Outcomes {
		rows[i] = o.Row()
	}
	return rows
}

// Counts returns how many outcomes there are per status.
func (r Result) Counts() map[string]int {
	counts := make(map[string]int, 4)
	for _, o := range r.Outcomes {
		counts[o.Status()]++
	}
	return counts
}

// Summary is a one-line description such as "3 imported, 1 duplicate, 0 failed, 0 errors".
func (r Result) Summary() string {
	c := r.Counts()
	return strconv.Itoa(r.SuccessCount) + " imported, " +
		strconv.Itoa(c[StatusDuplicate]) + " duplicate, " +
		strconv.Itoa(c[StatusFailed]) + " failed, " +
		strconv.Itoa(c[StatusError]) + " errors"
}
