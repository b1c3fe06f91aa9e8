// Package budget implements the budget heuristics: usage percentages, alert levels,
// adjustment suggestions, period pacing and prioritization.
package budget

import (
	"fmt"
	"math"

	"fjacquet/budget-tracker/internal/models"
)

// Alert thresholds, in percent of the budget used. Bounds are inclusive.
const (
	DangerThreshold  = 100.0
	WarningThreshold = 80.0
)

// InsufficientDataReason is returned when there is too little history to suggest a change.
const InsufficientDataReason = "Insufficient data for adjustment"

// CalculatePercentage returns spent as a percentage of amount. The result is not
// capped at 100. A non-positive amount yields 0.
func CalculatePercentage(amount, spent float64) float64 {
	if amount <= 0 {
		return 0
	}
	return spent / amount * 100
}

// Percentage is CalculatePercentage for a budget, except that any spending against
// a zero or negative limit counts as fully used.
func Percentage(b models.BudgetData) float64 {
	if b.Amount <= 0 && b.Spent > 0 {
		return DangerThreshold
	}
	return CalculatePercentage(b.Amount, b.Spent)
}

// GetAlertLevel classifies a usage percentage.
func GetAlertLevel(percentage float64) models.AlertLevel {
	switch {
	case percentage >= DangerThreshold:
		return models.AlertDanger
	case percentage >= WarningThreshold:
		return models.AlertWarning
	default:
		return models.AlertSafe
	}
}

// AlertMessage describes a budget's usage for display.
func AlertMessage(percentage float64, name string) string {
	rounded := math.Round(percentage)
	switch GetAlertLevel(percentage) {
	case models.AlertDanger:
		return fmt.Sprintf("You've exceeded your %s budget (%.0f%% used)", name, rounded)
	case models.AlertWarning:
		return fmt.Sprintf("You've used %.0f%% of your %s budget", rounded, name)
	default:
		return fmt.Sprintf("Your %s budget is on track (%.0f%% used)", name, rounded)
	}
}

// Suggestion is a proposed budget amount and why.
type Suggestion struct {
	Current   float64 `json:"current" yaml:"current"`
	Suggested float64 `json:"suggested" yaml:"suggested"`
	Average   float64 `json:"average" yaml:"average"`
	Trend     float64 `json:"trend" yaml:"trend"`
	Reason    string  `json:"reason" yaml:"reason"`
}

// SuggestAdjustment proposes a budget from monthly expense history (oldest first).
// With fewer than two months the current budget is returned unchanged. The
// suggestion is the average plus a 10% buffer, rounded up; with three or more
// months a trend (last vs first) selects the explanation.
func SuggestAdjustment(current float64, history []float64) Suggestion {
	if len(history) < 2 {
		return Suggestion{Current: current, Suggested: current, Reason: InsufficientDataReason}
	}

	var sum float64
	for _, h := range history {
		sum += h
	}
	average := sum / float64(len(history))

	var trend float64
	if len(history) >= 3 {
		first, last := history[0], history[len(history)-1]
		if first != 0 {
			trend = (last - first) / first
		}
	}

	s := Suggestion{
		Current:   current,
		Suggested: ceilTolerant(average * 1.1),
		Average:   average,
		Trend:     trend,
	}
	switch {
	case trend > 0.2:
		s.Reason = "Spending is increasing. Budget raised to average spending plus a 10% buffer"
	case trend < -0.2:
		s.Reason = "Spending is decreasing. Budget set to average spending plus a 10% buffer"
	default:
		s.Reason = "Based on average spending plus a 10% buffer"
	}
	return s
}

// ceilTolerant rounds up, ignoring float noise such as 1000*1.1 = 1100.0000000000002.
func ceilTolerant(v float64) float64 {
	return math.Ceil(v - 1e-9)
}
