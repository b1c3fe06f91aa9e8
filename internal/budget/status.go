package budget

import (
	"time"

	"fjacquet/budget-tracker/internal/models"
)

// Status is the full evaluation of one budget at a point in time.
type Status struct {
	Name          string            `json:"name" yaml:"name"`
	Amount        float64           `json:"amount" yaml:"amount"`
	Spent         float64           `json:"spent" yaml:"spent"`
	Percentage    float64           `json:"percentage" yaml:"percentage"`
	Level         models.AlertLevel `json:"level" yaml:"level"`
	Message       string            `json:"message" yaml:"message"`
	DaysRemaining int               `json:"days_remaining" yaml:"days_remaining"`
	DailyBudget   float64           `json:"daily_budget" yaml:"daily_budget"`
	Pace          PaceProjection    `json:"pace" yaml:"pace"`
	Suggestion    Suggestion        `json:"suggestion" yaml:"suggestion"`
}

// Evaluate computes every heuristic for b at now.
func Evaluate(b models.BudgetData, now time.Time) Status {
	pct := Percentage(b)
	days := DaysRemaining(b.Period, b.StartDate, b.EndDate, now)

	return Status{
		Name:          b.Name,
		Amount:        b.Amount,
		Spent:         b.Spent,
		Percentage:    pct,
		Level:         GetAlertLevel(pct),
		Message:       AlertMessage(pct, b.Name),
		DaysRemaining: days,
		DailyBudget:   DailyBudget(b.Amount, days),
		Pace:          ProjectPace(b.Spent, b.Amount, SpendRate(b.Spent, b.StartDate, now), days),
		Suggestion:    SuggestAdjustment(b.Amount, b.History),
	}
}
