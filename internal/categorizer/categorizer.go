// Package categorizer assigns spending categories to transactions by merchant name:
// first from keywords in the categories YAML file, then from a built-in merchant table.
package categorizer

import (
	"context"

	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/models"
)

// Transaction is the part of a transaction categorization looks at.
type Transaction struct {
	Merchant    string
	Description string
	Type        models.TransactionType
}

// Categorizer runs its strategies in order and falls back to Uncategorized.
type Categorizer struct {
	strategies []CategorizationStrategy
	logger     logging.Logger
}

// NewCategorizer creates a Categorizer using the YAML keywords from store followed by
// the built-in merchant table.
func NewCategorizer(store CategoryStoreInterface, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.Nop()
	}
	return NewCategorizerWithStrategies(logger,
		NewKeywordStrategy(store, logger),
		NewBuiltinStrategy(logger),
	)
}

// NewCategorizerWithStrategies creates a Categorizer with an explicit strategy chain.
func NewCategorizerWithStrategies(logger logging.Logger, strategies ...CategorizationStrategy) *Categorizer {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Categorizer{strategies: strategies, logger: logger}
}

// Categorize returns the category for tx. Strategy errors are logged and the next
// strategy is tried; the result is never empty.
func (c *Categorizer) Categorize(ctx context.Context, tx Transaction) string {
	for _, strategy := range c.strategies {
		category, found, err := strategy.Categorize(ctx, tx)
		if err != nil {
			c.logger.WithError(err).Warn("Categorization strategy failed",
				logging.F("strategy", strategy.Name()))
			continue
		}
		if found && category != "" {
			return category
		}
	}
	return models.CategoryUncategorized
}

// CategorizeMerchant is Categorize for a bare merchant name.
func (c *Categorizer) CategorizeMerchant(ctx context.Context, merchant string) string {
	return c.Categorize(ctx, Transaction{Merchant: merchant})
}
