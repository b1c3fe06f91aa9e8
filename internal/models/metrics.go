package models

// MonthlyMetrics aggregates one month of income and spending.
type MonthlyMetrics struct {
	Income      float64 `json:"income" yaml:"income"`
	Expense     float64 `json:"expense" yaml:"expense"`
	Savings     float64 `json:"savings" yaml:"savings"`
	SavingsRate float64 `json:"savings_rate" yaml:"savings_rate"`
}

// NewMonthlyMetrics derives savings and savings rate from income and expense.
// The savings rate is 0 when there is no income.
func NewMonthlyMetrics(income, expense float64) MonthlyMetrics {
	savings := income - expense
	rate := 0.0
	if income != 0 {
		rate = savings / income * 100
	}
	return MonthlyMetrics{
		Income:      income,
		Expense:     expense,
		Savings:     savings,
		SavingsRate: rate,
	}
}
