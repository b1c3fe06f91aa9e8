package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of money flow for a transaction.
type TransactionType string

const (
	TypeIncome   TransactionType = "income"
	TypeExpense  TransactionType = "expense"
	TypeTransfer TransactionType = "transfer"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeTransfer:
		return true
	}
	return false
}

// RawSMSData keeps the input a ParsedTransaction was produced from.
type RawSMSData struct {
	OriginalText   string    `json:"original_text" yaml:"original_text"`
	DetectedSource string    `json:"detected_source" yaml:"detected_source"`
	ParsedAt       time.Time `json:"parsed_at" yaml:"parsed_at"`
}

// ParsedTransaction is the normalized result of parsing one SMS message.
// Values are never modified after the parser returns them.
type ParsedTransaction struct {
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	Type        TransactionType `json:"type" yaml:"type"`
	Merchant    string          `json:"merchant" yaml:"merchant"`
	Description string          `json:"description" yaml:"description"`
	Source      string          `json:"source" yaml:"source"`
	RawData     RawSMSData      `json:"raw_data" yaml:"raw_data"`
}

// ExistingTransaction is the slice of a stored transaction needed for duplicate detection.
type ExistingTransaction struct {
	Amount    decimal.Decimal `json:"amount"`
	Type      TransactionType `json:"type"`
	Merchant  string          `json:"merchant"`
	CreatedAt time.Time       `json:"created_at"`
}

// TransactionRecord is a transaction row as written by the persistence layer.
type TransactionRecord struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	AccountID   string          `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Merchant    string          `json:"merchant"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Source      string          `json:"source"`
	RawText     string          `json:"raw_text,omitempty"`
	SourceApp   string          `json:"source_app,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewRecordFromParsed builds the row to insert for a parsed SMS transaction.
func NewRecordFromParsed(userID, accountID, category string, tx ParsedTransaction) TransactionRecord {
	return TransactionRecord{
		UserID:      userID,
		AccountID:   accountID,
		Amount:      tx.Amount,
		Type:        tx.Type,
		Merchant:    tx.Merchant,
		Description: tx.Description,
		Category:    category,
		Source:      tx.Source,
		RawText:     tx.RawData.OriginalText,
		SourceApp:   tx.RawData.DetectedSource,
		CreatedAt:   tx.RawData.ParsedAt,
	}
}

// Existing converts a stored row into the duplicate-detection view.
func (r TransactionRecord) Existing() ExistingTransaction {
	return ExistingTransaction{
		Amount:    r.Amount,
		Type:      r.Type,
		Merchant:  r.Merchant,
		CreatedAt: r.CreatedAt,
	}
}

// Account is a user's money account whose balance imports adjust.
type Account struct {
	ID      string          `json:"id"`
	UserID  string          `json:"user_id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
	Active  bool            `json:"active"`
}

// BalanceDelta returns the signed change a transaction applies to its account.
// Transfers leave the balance untouched.
func BalanceDelta(t TransactionType, amount decimal.Decimal) decimal.Decimal {
	switch t {
	case TypeExpense:
		return amount.Neg()
	case TypeIncome:
		return amount
	default:
		return decimal.Zero
	}
}
