package categorizer

import "context"

// CategorizationStrategy defines a method for categorizing transactions.
type CategorizationStrategy interface {
	// Categorize returns the category name and whether this strategy recognised the
	// transaction.
	Categorize(ctx context.Context, tx Transaction) (string, bool, error)

	// Name returns the name of this strategy for logging and debugging purposes.
	Name() string
}
