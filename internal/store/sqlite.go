package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/models"
	"fjacquet/budget-tracker/internal/parsererror"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

//go:embed schema.sql
var schema string

// SQLiteStore implements Store on a SQLite database. Amounts are stored as decimal
// strings and timestamps as Unix nanoseconds.
type SQLiteStore struct {
	db     *sql.DB
	logger logging.Logger
	now    func() time.Time
}

// OpenSQLite opens or creates the database at dbPath and applies the schema.
// ":memory:" opens a private in-memory database.
func OpenSQLite(dbPath string, logger logging.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = logging.Nop()
	}

	dsn := dbPath + "?_foreign_keys=on"
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), models.PermissionDirectory); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writes.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("execute schema: %w", err)
	}

	logger.Debug("Opened SQLite store", logging.F(logging.FieldFile, dbPath))
	return &SQLiteStore{db: db, logger: logger, now: time.Now}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateAccount inserts an account. An empty ID is replaced by a new UUID.
func (s *SQLiteStore) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, user_id, name, balance, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, account.ID, account.UserID, account.Name, account.Balance.String(), account.Active, s.now().UnixNano())
	if err != nil {
		return models.Account{}, &parsererror.PersistenceError{Op: "insert account", Err: err}
	}
	return account, nil
}

// ListActiveAccounts returns the user's active accounts ordered by name.
func (s *SQLiteStore) ListActiveAccounts(ctx context.Context, userID string) ([]models.Account, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, balance, active
		FROM accounts
		WHERE user_id = ? AND active = 1
		ORDER BY name, id
	`, userID)
	if err != nil {
		return nil, &parsererror.PersistenceError{Op: "query accounts", Err: err}
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var a models.Account
		var balance string
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &balance, &a.Active); err != nil {
			return nil, &parsererror.PersistenceError{Op: "scan account", Err: err}
		}
		if a.Balance, err = decimal.NewFromString(balance); err != nil {
			return nil, &parsererror.PersistenceError{Op: "scan account", Err: err}
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// RecentTransactions returns at most limit transactions, most recent first.
func (s *SQLiteStore) RecentTransactions(ctx context.Context, userID, source string, limit int) ([]models.ExistingTransaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT amount, type, merchant, created_at
		FROM transactions
		WHERE user_id = ? AND source = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, userID, source, limit)
	if err != nil {
		return nil, &parsererror.PersistenceError{Op: "query recent transactions", Err: err}
	}
	defer rows.Close()

	var out []models.ExistingTransaction
	for rows.Next() {
		var e models.ExistingTransaction
		var amount string
		var created int64
		if err := rows.Scan(&amount, &e.Type, &e.Merchant, &created); err != nil {
			return nil, &parsererror.PersistenceError{Op: "scan transaction", Err: err}
		}
		if e.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, &parsererror.PersistenceError{Op: "scan transaction", Err: err}
		}
		e.CreatedAt = time.Unix(0, created)
		out = append(out, e)
	}
	return out, rows.Err()
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// InsertTransaction stores rec and returns its id. Missing IDs and timestamps are filled in.
func (s *SQLiteStore) InsertTransaction(ctx context.Context, rec models.TransactionRecord) (string, error) {
	id, err := s.insertTransaction(ctx, s.db, rec)
	if err != nil {
		return "", err
	}
	s.logger.Debug("Inserted transaction",
		logging.F(logging.FieldTransactionID, id),
		logging.F(logging.FieldAccountID, rec.AccountID))
	return id, nil
}

func (s *SQLiteStore) insertTransaction(ctx context.Context, q execer, rec models.TransactionRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}

	_, err := q.ExecContext(ctx, `
		INSERT INTO transactions (
			id, user_id, account_id, amount, type, merchant, description,
			category, source, raw_text, source_app, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.UserID, rec.AccountID, rec.Amount.String(), string(rec.Type), rec.Merchant, rec.Description,
		rec.Category, rec.Source, rec.RawText, rec.SourceApp, rec.CreatedAt.UnixNano())
	if err != nil {
		return "", &parsererror.PersistenceError{Op: "insert transaction", Err: err}
	}
	return rec.ID, nil
}

// RecordTransaction inserts rec and adds its balance delta to the account inside
// one database transaction.
func (s *SQLiteStore) RecordTransaction(ctx context.Context, rec models.TransactionRecord) (id string, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", &parsererror.PersistenceError{Op: "begin transaction", Err: err}
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				s.logger.WithError(rbErr).Warn("Rollback failed")
			}
		}
	}()

	if id, err = s.insertTransaction(ctx, tx, rec); err != nil {
		return "", err
	}
	balance, err := s.accountBalance(ctx, tx, rec.AccountID)
	if err != nil {
		return "", err
	}
	if err = s.setAccountBalance(ctx, tx, rec.AccountID, balance.Add(models.BalanceDelta(rec.Type, rec.Amount))); err != nil {
		return "", err
	}
	if err = tx.Commit(); err != nil {
		return "", &parsererror.PersistenceError{Op: "commit transaction", Err: err}
	}

	s.logger.Debug("Recorded transaction",
		logging.F(logging.FieldTransactionID, id),
		logging.F(logging.FieldAccountID, rec.AccountID))
	return id, nil
}

// GetAccountBalance returns the stored balance of an account.
func (s *SQLiteStore) GetAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	return s.accountBalance(ctx, s.db, accountID)
}

func (s *SQLiteStore) accountBalance(ctx context.Context, q execer, accountID string) (decimal.Decimal, error) {
	var balance string
	err := q.QueryRowContext(ctx, `SELECT balance FROM accounts WHERE id = ?`, accountID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, ErrAccountNotFound
	}
	if err != nil {
		return decimal.Zero, &parsererror.PersistenceError{Op: "read balance", Err: err}
	}

	d, err := decimal.NewFromString(balance)
	if err != nil {
		return decimal.Zero, &parsererror.PersistenceError{Op: "read balance", Err: err}
	}
	return d, nil
}

// UpdateAccountBalance overwrites the balance of an account.
func (s *SQLiteStore) UpdateAccountBalance(ctx context.Context, accountID string, balance decimal.Decimal) error {
	return s.setAccountBalance(ctx, s.db, accountID, balance)
}

func (s *SQLiteStore) setAccountBalance(ctx context.Context, q execer, accountID string, balance decimal.Decimal) error {
	res, err := q.ExecContext(ctx, `UPDATE accounts SET balance = ? WHERE id = ?`, balance.String(), accountID)
	if err != nil {
		return &parsererror.PersistenceError{Op: "update balance", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &parsererror.PersistenceError{Op: "update balance", Err: err}
	}
	if n == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// MonthlyTotals sums the user's transactions in the calendar month containing month.
func (s *SQLiteStore) MonthlyTotals(ctx context.Context, userID string, month time.Time) (models.MonthlyMetrics, map[string]float64, error) {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	end := start.AddDate(0, 1, 0)

	rows, err := s.db.QueryContext(ctx, `
		SELECT amount, type, category
		FROM transactions
		WHERE user_id = ? AND created_at >= ? AND created_at < ?
	`, userID, start.UnixNano(), end.UnixNano())
	if err != nil {
		return models.MonthlyMetrics{}, nil, &parsererror.PersistenceError{Op: "query monthly totals", Err: err}
	}
	defer rows.Close()

	var totals monthTotals
	for rows.Next() {
		var amount, txType, category string
		if err := rows.Scan(&amount, &txType, &category); err != nil {
			return models.MonthlyMetrics{}, nil, &parsererror.PersistenceError{Op: "scan monthly totals", Err: err}
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return models.MonthlyMetrics{}, nil, &parsererror.PersistenceError{Op: "scan monthly totals", Err: err}
		}
		totals.add(models.TransactionType(txType), category, d)
	}
	if err := rows.Err(); err != nil {
		return models.MonthlyMetrics{}, nil, &parsererror.PersistenceError{Op: "query monthly totals", Err: err}
	}

	metrics, categories := totals.result()
	return metrics, categories, nil
}

// monthTotals accumulates a month of transactions in decimal before converting to
// the float figures the report works with.
type monthTotals struct {
	income     decimal.Decimal
	expense    decimal.Decimal
	categories map[string]decimal.Decimal
}

func (m *monthTotals) add(t models.TransactionType, category string, amount decimal.Decimal) {
	switch t {
	case models.TypeIncome:
		m.income = m.income.Add(amount)
	case models.TypeExpense:
		m.expense = m.expense.Add(amount)
		if category == "" {
			category = models.CategoryUncategorized
		}
		if m.categories == nil {
			m.categories = make(map[string]decimal.Decimal)
		}
		m.categories[category] = m.categories[category].Add(amount)
	}
}

func (m *monthTotals) result() (models.MonthlyMetrics, map[string]float64) {
	categories := make(map[string]float64, len(m.categories))
	for name, total := range m.categories {
		categories[name] = total.InexactFloat64()
	}
	return models.NewMonthlyMetrics(m.income.InexactFloat64(), m.expense.InexactFloat64()), categories
}
