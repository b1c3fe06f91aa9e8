package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"fjacquet/budget-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// MockStore is an in-memory Store for tests. Error fields, when set, are returned by
// the matching method.
type MockStore struct {
	Accounts     map[string]models.Account
	Transactions []models.TransactionRecord

	ListActiveAccountsError   error
	RecentTransactionsError   error
	GetAccountBalanceError    error
	UpdateAccountBalanceError error
	MonthlyTotalsError        error
	// InsertTransactionFunc, when set, is consulted before each insert; a non-nil
	// error fails that insert only.
	InsertTransactionFunc func(rec models.TransactionRecord) error

	nextID int
}

// NewMockStore returns a MockStore holding the given accounts.
func NewMockStore(accounts ...models.Account) *MockStore {
	m := &MockStore{Accounts: make(map[string]models.Account)}
	for _, a := range accounts {
		m.Accounts[a.ID] = a
	}
	return m
}

// CreateAccount stores account, assigning a sequential id when empty.
func (m *MockStore) CreateAccount(_ context.Context, account models.Account) (models.Account, error) {
	if m.Accounts == nil {
		m.Accounts = make(map[string]models.Account)
	}
	if account.ID == "" {
		m.nextID++
		account.ID = fmt.Sprintf("acct-%d", m.nextID)
	}
	m.Accounts[account.ID] = account
	return account, nil
}

// ListActiveAccounts returns the user's active accounts ordered by name.
func (m *MockStore) ListActiveAccounts(_ context.Context, userID string) ([]models.Account, error) {
	if m.ListActiveAccountsError != nil {
		return nil, m.ListActiveAccountsError
	}
	var out []models.Account
	for _, a := range m.Accounts {
		if a.UserID == userID && a.Active {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// RecentTransactions returns the newest matching transactions first.
func (m *MockStore) RecentTransactions(_ context.Context, userID, source string, limit int) ([]models.ExistingTransaction, error) {
	if m.RecentTransactionsError != nil {
		return nil, m.RecentTransactionsError
	}
	var out []models.ExistingTransaction
	for i := len(m.Transactions) - 1; i >= 0 && len(out) < limit; i-- {
		rec := m.Transactions[i]
		if rec.UserID == userID && rec.Source == source {
			out = append(out, rec.Existing())
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// InsertTransaction appends rec and returns its id.
func (m *MockStore) InsertTransaction(_ context.Context, rec models.TransactionRecord) (string, error) {
	if m.InsertTransactionFunc != nil {
		if err := m.InsertTransactionFunc(rec); err != nil {
			return "", err
		}
	}
	if rec.ID == "" {
		m.nextID++
		rec.ID = fmt.Sprintf("tx-%d", m.nextID)
	}
	m.Transactions = append(m.Transactions, rec)
	return rec.ID, nil
}

// RecordTransaction appends rec and applies it to the account balance. Every
// injected failure is checked before anything changes, so a failed call leaves
// the mock untouched.
func (m *MockStore) RecordTransaction(_ context.Context, rec models.TransactionRecord) (string, error) {
	if m.InsertTransactionFunc != nil {
		if err := m.InsertTransactionFunc(rec); err != nil {
			return "", err
		}
	}
	if m.GetAccountBalanceError != nil {
		return "", m.GetAccountBalanceError
	}
	if m.UpdateAccountBalanceError != nil {
		return "", m.UpdateAccountBalanceError
	}
	a, ok := m.Accounts[rec.AccountID]
	if !ok {
		return "", ErrAccountNotFound
	}

	if rec.ID == "" {
		m.nextID++
		rec.ID = fmt.Sprintf("tx-%d", m.nextID)
	}
	m.Transactions = append(m.Transactions, rec)
	a.Balance = a.Balance.Add(models.BalanceDelta(rec.Type, rec.Amount))
	m.Accounts[rec.AccountID] = a
	return rec.ID, nil
}

// GetAccountBalance returns the account's balance.
func (m *MockStore) GetAccountBalance(_ context.Context, accountID string) (decimal.Decimal, error) {
	if m.GetAccountBalanceError != nil {
		return decimal.Zero, m.GetAccountBalanceError
	}
	a, ok := m.Accounts[accountID]
	if !ok {
		return decimal.Zero, ErrAccountNotFound
	}
	return a.Balance, nil
}

// UpdateAccountBalance sets the account's balance.
func (m *MockStore) UpdateAccountBalance(_ context.Context, accountID string, balance decimal.Decimal) error {
	if m.UpdateAccountBalanceError != nil {
		return m.UpdateAccountBalanceError
	}
	a, ok := m.Accounts[accountID]
	if !ok {
		return ErrAccountNotFound
	}
	a.Balance = balance
	m.Accounts[accountID] = a
	return nil
}

// MonthlyTotals aggregates the stored transactions of the month containing month.
func (m *MockStore) MonthlyTotals(_ context.Context, userID string, month time.Time) (models.MonthlyMetrics, map[string]float64, error) {
	if m.MonthlyTotalsError != nil {
		return models.MonthlyMetrics{}, nil, m.MonthlyTotalsError
	}
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	end := start.AddDate(0, 1, 0)

	var totals monthTotals
	for _, rec := range m.Transactions {
		if rec.UserID != userID || rec.CreatedAt.Before(start) || !rec.CreatedAt.Before(end) {
			continue
		}
		totals.add(rec.Type, rec.Category, rec.Amount)
	}
	metrics, categories := totals.result()
	return metrics, categories, nil
}
