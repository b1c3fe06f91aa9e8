package categorizer

import (
	"context"
	"strings"

	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/models"
)

// KeywordStrategy matches merchants against the keywords of the categories loaded
// from the categories YAML file.
type KeywordStrategy struct {
	categories []models.CategoryConfig
	store      CategoryStoreInterface
	logger     logging.Logger
}

// NewKeywordStrategy creates a KeywordStrategy and loads its categories from store.
func NewKeywordStrategy(store CategoryStoreInterface, logger logging.Logger) *KeywordStrategy {
	if logger == nil {
		logger = logging.Nop()
	}
	s := &KeywordStrategy{store: store, logger: logger}
	s.loadCategories()
	return s
}

// Name returns the name of this strategy for logging and debugging.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Categorize returns the first configured category with a keyword contained in the
// merchant or description, compared case-insensitively.
func (s *KeywordStrategy) Categorize(_ context.Context, tx Transaction) (string, bool, error) {
	merchant := strings.ToLower(tx.Merchant)
	description := strings.ToLower(tx.Description)
	if strings.TrimSpace(merchant) == "" && strings.TrimSpace(description) == "" {
		return "", false, nil
	}

	for _, category := range s.categories {
		for _, keyword := range category.Keywords {
			keyword = strings.ToLower(keyword)
			if keyword == "" {
				continue
			}
			if strings.Contains(merchant, keyword) || strings.Contains(description, keyword) {
				s.logger.WithFields(
					logging.F("strategy", s.Name()),
					logging.F("keyword", keyword),
					logging.F(logging.FieldCategory, category.Name),
				).Debug("Transaction categorized using keyword matching")
				return category.Name, true, nil
			}
		}
	}
	return "", false, nil
}

func (s *KeywordStrategy) loadCategories() {
	if s.store == nil {
		return
	}
	categories, err := s.store.LoadCategories()
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load categories for KeywordStrategy")
		return
	}
	s.categories = categories
	s.logger.WithField(logging.FieldCount, len(categories)).Debug("Loaded categories for KeywordStrategy")
}

// ReloadCategories reloads the categories from the store.
func (s *KeywordStrategy) ReloadCategories() {
	s.loadCategories()
}

// builtinKeyword pairs a merchant fragment with its category. Order matters: the
// first matching entry wins.
type builtinKeyword struct {
	keyword  string
	category string
}

var builtinKeywords = []builtinKeyword{
	{"salary", models.CategorySalary},
	{"payroll", models.CategorySalary},

	{"swiggy", models.CategoryFood},
	{"zomato", models.CategoryFood},
	{"dominos", models.CategoryFood},
	{"mcdonald", models.CategoryFood},
	{"restaurant", models.CategoryFood},
	{"cafe", models.CategoryFood},

	{"bigbasket", models.CategoryGroceries},
	{"bigbazaar", models.CategoryGroceries},
	{"big bazaar", models.CategoryGroceries},
	{"dmart", models.CategoryGroceries},
	{"blinkit", models.CategoryGroceries},
	{"zepto", models.CategoryGroceries},
	{"reliance fresh", models.CategoryGroceries},
	{"grocer", models.CategoryGroceries},

	{"uber", models.CategoryTransport},
	{"ola", models.CategoryTransport},
	{"rapido", models.CategoryTransport},
	{"irctc", models.CategoryTransport},
	{"metro", models.CategoryTransport},
	{"fuel", models.CategoryTransport},
	{"petrol", models.CategoryTransport},

	{"amazon", models.CategoryShopping},
	{"flipkart", models.CategoryShopping},
	{"myntra", models.CategoryShopping},
	{"ajio", models.CategoryShopping},

	{"electricity", models.CategoryBills},
	{"airtel", models.CategoryBills},
	{"jio", models.CategoryBills},
	{"broadband", models.CategoryBills},
	{"recharge", models.CategoryBills},
	{"insurance", models.CategoryBills},

	{"netflix", models.CategoryEntertainment},
	{"spotify", models.CategoryEntertainment},
	{"hotstar", models.CategoryEntertainment},
	{"bookmyshow", models.CategoryEntertainment},
	{"pvr", models.CategoryEntertainment},
}

// BuiltinStrategy matches well-known Indian merchants when no configured keyword
// applies.
type BuiltinStrategy struct {
	logger logging.Logger
}

// NewBuiltinStrategy creates a BuiltinStrategy.
func NewBuiltinStrategy(logger logging.Logger) *BuiltinStrategy {
	if logger == nil {
		logger = logging.Nop()
	}
	return &BuiltinStrategy{logger: logger}
}

// Name returns the name of this strategy for logging and debugging.
func (s *BuiltinStrategy) Name() string {
	return "Builtin"
}

// Categorize checks the merchant against the built-in keyword table. Short keywords
// such as "ola" must match a whole word of the merchant.
func (s *BuiltinStrategy) Categorize(_ context.Context, tx Transaction) (string, bool, error) {
	merchant := strings.ToLower(tx.Merchant)
	if strings.TrimSpace(merchant) == "" {
		return "", false, nil
	}
	words := strings.FieldsFunc(merchant, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})

	for _, b := range builtinKeywords {
		if !matchesKeyword(merchant, words, b.keyword) {
			continue
		}
		s.logger.WithFields(
			logging.F("strategy", s.Name()),
			logging.F("keyword", b.keyword),
			logging.F(logging.FieldCategory, b.category),
		).Debug("Transaction categorized using built-in merchant pattern")
		return b.category, true, nil
	}
	return "", false, nil
}

func matchesKeyword(merchant string, words []string, keyword string) bool {
	if len(keyword) > 4 {
		return strings.Contains(merchant, keyword)
	}
	for _, w := range words {
		if w == keyword {
			return true
		}
	}
	return false
}
