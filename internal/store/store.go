// Package store provides the persistence collaborator: accounts, transactions and
// balances, plus the YAML files holding categories and budgets.
package store

import (
	"context"
	"errors"
	"time"

	"fjacquet/budget-tracker/internal/models"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound is returned when an account id does not exist.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountInactive is returned when an operation targets an account that is
	// not among the user's active accounts.
	ErrAccountInactive = errors.New("account is not active for this user")
)

// Store is the persistence collaborator used by the importer, the receipt scanner and
// the report command.
type Store interface {
	// ListActiveAccounts returns the user's active accounts.
	ListActiveAccounts(ctx context.Context, userID string) ([]models.Account, error)
	// RecentTransactions returns at most limit of the user's transactions with the
	// given source, most recent first.
	RecentTransactions(ctx context.Context, userID, source string, limit int) ([]models.ExistingTransaction, error)
	// InsertTransaction stores a row and returns its id.
	InsertTransaction(ctx context.Context, rec models.TransactionRecord) (string, error)
	GetAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
	UpdateAccountBalance(ctx context.Context, accountID string, balance decimal.Decimal) error
	// RecordTransaction stores rec and applies it to its account balance as one
	// unit: either both happen or neither does.
	RecordTransaction(ctx context.Context, rec models.TransactionRecord) (string, error)
	// MonthlyTotals aggregates the user's income, expense and per-category expense
	// for the calendar month containing month.
	MonthlyTotals(ctx context.Context, userID string, month time.Time) (models.MonthlyMetrics, map[string]float64, error)
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)
}

// FindActiveAccount returns the user's active account with the given id, or
// ErrAccountInactive when the user has no such active account.
func FindActiveAccount(ctx context.Context, s Store, userID, accountID string) (models.Account, error) {
	accounts, err := s.ListActiveAccounts(ctx, userID)
	if err != nil {
		return models.Account{}, err
	}
	for _, a := range accounts {
		if a.ID == accountID {
			return a, nil
		}
	}
	return models.Account{}, ErrAccountInactive
}
