package models

// CategoryShare is one entry of the top spending categories.
type CategoryShare struct {
	Category   string  `json:"category" yaml:"category"`
	Amount     float64 `json:"amount" yaml:"amount"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// FinancialInsights is the narrative report for a month.
type FinancialInsights struct {
	Summary         string          `json:"summary" yaml:"summary"`
	TopCategories   []CategoryShare `json:"top_categories" yaml:"top_categories"`
	MonthlyTrend    string          `json:"monthly_trend" yaml:"monthly_trend"`
	BudgetStatus    string          `json:"budget_status" yaml:"budget_status"`
	Recommendations []string        `json:"recommendations" yaml:"recommendations"`
	RiskFactors     []string        `json:"risk_factors" yaml:"risk_factors"`
	Score           int             `json:"score" yaml:"score"`
}
