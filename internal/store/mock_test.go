package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"fjacquet/budget-tracker/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockStore_ImplementsStore(t *testing.T) {
	var _ Store = NewMockStore()
	var _ Store = (*SQLiteStore)(nil)
}

func TestMockStore_RecentTransactionsOrder(t *testing.T) {
	ctx := context.Background()
	m := NewMockStore(models.Account{ID: "a1", UserID: "u1", Active: true})
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, err := m.InsertTransaction(ctx, models.TransactionRecord{
			UserID: "u1", AccountID: "a1", Amount: decimal.NewFromInt(int64(i)),
			Source: models.SourceSMS, CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	recent, err := m.RecentTransactions(ctx, "u1", models.SourceSMS, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.True(t, decimal.NewFromInt(2).Equal(recent[0].Amount))
	assert.True(t, decimal.NewFromInt(1).Equal(recent[1].Amount))
}

func TestMockStore_InjectedErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	m := NewMockStore(models.Account{ID: "a1", UserID: "u1", Active: true})
	m.InsertTransactionFunc = func(rec models.TransactionRecord) error {
		if rec.Merchant == "bad" {
			return boom
		}
		return nil
	}

	_, err := m.InsertTransaction(ctx, models.TransactionRecord{Merchant: "bad"})
	assert.ErrorIs(t, err, boom)
	id, err := m.InsertTransaction(ctx, models.TransactionRecord{Merchant: "good"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Len(t, m.Transactions, 1)

	m.ListActiveAccountsError = boom
	_, err = m.ListActiveAccounts(ctx, "u1")
	assert.ErrorIs(t, err, boom)
}

func TestMockStore_RecordTransaction(t *testing.T) {
	ctx := context.Background()
	m := NewMockStore(models.Account{ID: "a1", UserID: "u1", Balance: decimal.NewFromInt(500), Active: true})

	id, err := m.RecordTransaction(ctx, models.TransactionRecord{AccountID: "a1", Type: models.TypeExpense, Amount: decimal.NewFromInt(120)})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Len(t, m.Transactions, 1)
	assert.True(t, decimal.NewFromInt(380).Equal(m.Accounts["a1"].Balance))

	m.UpdateAccountBalanceError = errors.New("locked")
	_, err = m.RecordTransaction(ctx, models.TransactionRecord{AccountID: "a1", Type: models.TypeIncome, Amount: decimal.NewFromInt(50)})
	assert.Error(t, err)
	assert.Len(t, m.Transactions, 1)
	assert.True(t, decimal.NewFromInt(380).Equal(m.Accounts["a1"].Balance))

	m.UpdateAccountBalanceError = nil
	_, err = m.RecordTransaction(ctx, models.TransactionRecord{AccountID: "missing", Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.Len(t, m.Transactions, 1)
}

func TestFindActiveAccount(t *testing.T) {
	ctx := context.Background()
	m := NewMockStore(
		models.Account{ID: "a1", UserID: "u1", Name: "Main", Active: true},
		models.Account{ID: "a2", UserID: "u1", Name: "Closed", Active: false},
		models.Account{ID: "a3", UserID: "u2", Name: "Other", Active: true},
	)

	acct, err := FindActiveAccount(ctx, m, "u1", "a1")
	require.NoError(t, err)
	assert.Equal(t, "Main", acct.Name)

	_, err = FindActiveAccount(ctx, m, "u1", "a2")
	assert.ErrorIs(t, err, ErrAccountInactive)
	_, err = FindActiveAccount(ctx, m, "u1", "a3")
	assert.ErrorIs(t, err, ErrAccountInactive)
}
