package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionType_Valid(t *testing.T) {
	assert.True(t, TypeIncome.Valid())
	assert.True(t, TypeExpense.Valid())
	assert.True(t, TypeTransfer.Valid())
	assert.False(t, TransactionType("refund").Valid())
}

func TestBalanceDelta(t *testing.T) {
	amount := decimal.NewFromInt(250)

	assert.True(t, BalanceDelta(TypeExpense, amount).Equal(decimal.NewFromInt(-250)))
	assert.True(t, BalanceDelta(TypeIncome, amount).Equal(amount))
	assert.True(t, BalanceDelta(TypeTransfer, amount).IsZero())
}

func TestNewRecordFromParsed(t *testing.T) {
	parsedAt := time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)
	tx := ParsedTransaction{
		Amount:      decimal.RequireFromString("499.50"),
		Type:        TypeExpense,
		Merchant:    "Swiggy",
		Description: "PHONEPE transaction",
		Source:      SourceSMS,
		RawData: RawSMSData{
			OriginalText:   "Paid Rs.499.50 to Swiggy via PhonePe",
			DetectedSource: "phonepe",
			ParsedAt:       parsedAt,
		},
	}

	record := NewRecordFromParsed("user-1", "acc-1", CategoryFood, tx)

	assert.Equal(t, "user-1", record.UserID)
	assert.Equal(t, "acc-1", record.AccountID)
	assert.Equal(t, CategoryFood, record.Category)
	assert.Equal(t, "phonepe", record.SourceApp)
	assert.Equal(t, parsedAt, record.CreatedAt)

	existing := record.Existing()
	assert.True(t, existing.Amount.Equal(tx.Amount))
	assert.Equal(t, "Swiggy", existing.Merchant)
}

func TestNewMonthlyMetrics(t *testing.T) {
	m := NewMonthlyMetrics(100000, 60000)
	assert.Equal(t, 40000.0, m.Savings)
	assert.InDelta(t, 40.0, m.SavingsRate, 1e-9)

	deficit := NewMonthlyMetrics(50000, 75000)
	assert.Equal(t, -25000.0, deficit.Savings)
	assert.InDelta(t, -50.0, deficit.SavingsRate, 1e-9)

	noIncome := NewMonthlyMetrics(0, 1200)
	assert.Equal(t, 0.0, noIncome.SavingsRate)
	assert.Equal(t, -1200.0, noIncome.Savings)
}
