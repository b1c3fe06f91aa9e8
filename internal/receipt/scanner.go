// Package receipt uploads receipt images and extracts their contents. Text
// recognition is simulated: every scan reports the same placeholder values.
package receipt

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"fjacquet/budget-tracker/internal/filestore"
	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/models"
	"fjacquet/budget-tracker/internal/parsererror"
	"fjacquet/budget-tracker/internal/store"

	"github.com/shopspring/decimal"
)

// Placeholder recognition results.
const (
	ScannedMerchant   = "Sample Store"
	ScannedConfidence = 0.85
)

var (
	scannedAmount = decimal.RequireFromString("1250.00")
	scannedItems  = []models.ReceiptItem{
		{Name: "Groceries", Amount: decimal.RequireFromString("850.00")},
		{Name: "Household", Amount: decimal.RequireFromString("400.00")},
	}
)

// MerchantCategorizer picks a category for a merchant name.
type MerchantCategorizer interface {
	CategorizeMerchant(ctx context.Context, merchant string) string
}

// Scanner uploads receipts and optionally records them as expenses.
type Scanner struct {
	files       filestore.Store
	store       store.Store
	categorizer MerchantCategorizer
	logger      logging.Logger
	now         func() time.Time
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithClock overrides the clock used for the scan date.
func WithClock(now func() time.Time) Option {
	return func(s *Scanner) { s.now = now }
}

// NewScanner creates a Scanner. st and cat may be nil when Import is not used.
func NewScanner(files filestore.Store, st store.Store, cat MerchantCategorizer, logger logging.Logger, opts ...Option) *Scanner {
	if logger == nil {
		logger = logging.Nop()
	}
	s := &Scanner{
		files:       files,
		store:       st,
		categorizer: cat,
		logger:      logger.WithField(logging.FieldComponent, "ReceiptScanner"),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan uploads the receipt read from r and returns what was recognised on it.
func (s *Scanner) Scan(ctx context.Context, name string, r io.Reader) (models.ReceiptScan, error) {
	key, err := s.files.Save(ctx, name, r)
	if err != nil {
		return models.ReceiptScan{}, fmt.Errorf("failed to upload receipt: %w", err)
	}

	items := make([]models.ReceiptItem, len(scannedItems))
	copy(items, scannedItems)

	scan := models.ReceiptScan{
		FileName:   key,
		PublicURL:  s.files.PublicURL(key),
		Merchant:   ScannedMerchant,
		Amount:     scannedAmount,
		Date:       s.now(),
		Items:      items,
		Confidence: ScannedConfidence,
	}
	s.logger.Info("Scanned receipt",
		logging.F(logging.FieldFile, name),
		logging.F("public_url", scan.PublicURL))
	return scan, nil
}

// ScanFile scans the receipt stored at path.
func (s *Scanner) ScanFile(ctx context.Context, path string) (models.ReceiptScan, error) {
	f, err := os.Open(path) // #nosec G304 -- user-selected receipt file
	if err != nil {
		return models.ReceiptScan{}, fmt.Errorf("failed to open receipt: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			s.logger.WithError(closeErr).Warn("Failed to close receipt file", logging.F(logging.FieldFile, path))
		}
	}()
	return s.Scan(ctx, filepath.Base(path), f)
}

// Import records scan as an expense on the user's active account and lowers the
// account balance by its amount, atomically.
func (s *Scanner) Import(ctx context.Context, userID, accountID string, scan models.ReceiptScan) (models.TransactionRecord, error) {
	if s.store == nil {
		return models.TransactionRecord{}, fmt.Errorf("receipt import needs a store")
	}
	if !scan.Amount.IsPositive() {
		return models.TransactionRecord{}, &parsererror.ValidationError{Subject: "receipt", Reason: "amount must be positive"}
	}

	if _, err := store.FindActiveAccount(ctx, s.store, userID, accountID); err != nil {
		return models.TransactionRecord{}, fmt.Errorf("account %s: %w", accountID, err)
	}

	category := models.CategoryUncategorized
	if s.categorizer != nil {
		category = s.categorizer.CategorizeMerchant(ctx, scan.Merchant)
	}

	rec := models.TransactionRecord{
		UserID:      userID,
		AccountID:   accountID,
		Amount:      scan.Amount,
		Type:        models.TypeExpense,
		Merchant:    scan.Merchant,
		Description: "Receipt " + scan.FileName,
		Category:    category,
		Source:      models.SourceReceipt,
		CreatedAt:   scan.Date,
	}

	id, err := s.store.RecordTransaction(ctx, rec)
	if err != nil {
		return models.TransactionRecord{}, &parsererror.PersistenceError{Op: "record transaction", Err: err}
	}
	rec.ID = id

	s.logger.Info("Imported receipt",
		logging.F(logging.FieldTransactionID, id),
		logging.F(logging.FieldAccountID, accountID),
		logging.F(logging.FieldCategory, category))
	return rec, nil
}
