// Package batch imports SMS messages as transactions: each message is parsed,
// checked against recent transactions for duplicates and stored, one at a time.
package batch

import (
	"context"
	"fmt"

	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/models"
	"fjacquet/budget-tracker/internal/parsererror"
	"fjacquet/budget-tracker/internal/smsparser"
	"fjacquet/budget-tracker/internal/store"
)

// DefaultRecentWindow is how many recent sms transactions ImportForUser checks against.
const DefaultRecentWindow = 100

// MerchantCategorizer picks a category for a merchant name.
type MerchantCategorizer interface {
	CategorizeMerchant(ctx context.Context, merchant string) string
}

// Request is one batch of messages to import into an account.
type Request struct {
	UserID    string
	AccountID string
	Messages  []string
	// Existing is the duplicate-detection window, most recent first.
	Existing []models.ExistingTransaction
}

// Importer runs batch imports.
type Importer struct {
	parser       *smsparser.Parser
	detector     *smsparser.Detector
	store        store.Store
	categorizer  MerchantCategorizer
	logger       logging.Logger
	recentWindow int
}

// Option configures an Importer.
type Option func(*Importer)

// WithRecentWindow sets how many recent transactions ImportForUser fetches.
func WithRecentWindow(n int) Option {
	return func(i *Importer) {
		if n > 0 {
			i.recentWindow = n
		}
	}
}

// NewImporter creates an Importer. cat may be nil, leaving rows Uncategorized.
func NewImporter(parser *smsparser.Parser, detector *smsparser.Detector, st store.Store, cat MerchantCategorizer, logger logging.Logger, opts ...Option) *Importer {
	if logger == nil {
		logger = logging.Nop()
	}
	i := &Importer{
		parser:       parser,
		detector:     detector,
		store:        st,
		categorizer:  cat,
		logger:       logger.WithField(logging.FieldComponent, "BatchImporter"),
		recentWindow: DefaultRecentWindow,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// ImportForUser checks that accountID is one of the user's active accounts, loads the
// user's recent sms transactions and imports messages against them.
func (i *Importer) ImportForUser(ctx context.Context, userID, accountID string, messages []string) (Result, error) {
	if _, err := store.FindActiveAccount(ctx, i.store, userID, accountID); err != nil {
		return Result{}, fmt.Errorf("account %s: %w", accountID, err)
	}

	existing, err := i.store.RecentTransactions(ctx, userID, models.SourceSMS, i.recentWindow)
	if err != nil {
		return Result{}, &parsererror.PersistenceError{Op: "load recent transactions", Err: err}
	}

	return i.Import(ctx, Request{
		UserID:    userID,
		AccountID: accountID,
		Messages:  messages,
		Existing:  existing,
	}), nil
}

// Import processes req.Messages in order. A message stored successfully joins the
// duplicate window for the messages after it. Failures are per message; the batch
// always runs to the end.
func (i *Importer) Import(ctx context.Context, req Request) Result {
	window := make([]models.ExistingTransaction, len(req.Existing))
	copy(window, req.Existing)

	result := Result{Outcomes: make([]Outcome, 0, len(req.Messages))}
	for idx, msg := range req.Messages {
		outcome := i.importOne(ctx, req, idx, msg, &window)
		if _, ok := outcome.(Success); ok {
			result.SuccessCount++
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	i.logger.Info("Batch import completed",
		logging.F(logging.FieldUserID, req.UserID),
		logging.F(logging.FieldAccountID, req.AccountID),
		logging.F(logging.FieldCount, len(req.Messages)),
		logging.F("imported", result.SuccessCount))
	return result
}

func (i *Importer) importOne(ctx context.Context, req Request, idx int, msg string, window *[]models.ExistingTransaction) Outcome {
	tx, ok := i.parser.Parse(msg)
	if !ok {
		i.logger.Debug("Message not recognised", logging.F(logging.FieldIndex, idx))
		return Failed{Index: idx, Reason: ReasonUnparseable}
	}

	if i.detector.IsDuplicate(tx, *window) {
		i.logger.Debug("Skipping duplicate transaction",
			logging.F(logging.FieldIndex, idx),
			logging.F("merchant", tx.Merchant))
		return Duplicate{Index: idx, Reason: ReasonDuplicate}
	}

	id, err := i.persist(ctx, req, tx)
	if err != nil {
		i.logger.WithError(err).Warn("Failed to store transaction", logging.F(logging.FieldIndex, idx))
		return Error{Index: idx, Err: err}
	}

	*window = append([]models.ExistingTransaction{{
		Amount:    tx.Amount,
		Type:      tx.Type,
		Merchant:  tx.Merchant,
		CreatedAt: tx.RawData.ParsedAt,
	}}, *window...)

	return Success{Index: idx, TransactionID: id, Amount: tx.Amount, Type: tx.Type}
}

// persist stores the row and its balance change in one store call, so a failed
// item leaves neither behind.
func (i *Importer) persist(ctx context.Context, req Request, tx models.ParsedTransaction) (string, error) {
	category := models.CategoryUncategorized
	if i.categorizer != nil {
		category = i.categorizer.CategorizeMerchant(ctx, tx.Merchant)
	}

	id, err := i.store.RecordTransaction(ctx, models.NewRecordFromParsed(req.UserID, req.AccountID, category, tx))
	if err != nil {
		return "", &parsererror.PersistenceError{Op: "record transaction", Err: err}
	}

	i.logger.Debug("Stored transaction",
		logging.F(logging.FieldTransactionID, id),
		logging.F(logging.FieldCategory, category))
	return id, nil
}
