package categorizer

import "fjacquet/budget-tracker/internal/models"

// CategoryStoreInterface is the source of user-defined categories.
type CategoryStoreInterface interface {
	LoadCategories() ([]models.CategoryConfig, error)
}
