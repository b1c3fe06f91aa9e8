package budget

import (
	"sort"

	"fjacquet/budget-tracker/internal/models"
)

// Priority tiers, most urgent first.
const (
	PriorityExceeded = 1
	PriorityCritical = 2
	PriorityWarning  = 3
	PriorityOnTrack  = 4
)

var priorityLabels = map[int]string{
	PriorityExceeded: "exceeded",
	PriorityCritical: "critical",
	PriorityWarning:  "warning",
	PriorityOnTrack:  "on track",
}

// Prioritized is a budget with its usage and urgency tier.
type Prioritized struct {
	Budget     models.BudgetData `json:"budget" yaml:"budget"`
	Percentage float64           `json:"percentage" yaml:"percentage"`
	Priority   int               `json:"priority" yaml:"priority"`
	Label      string            `json:"label" yaml:"label"`
}

// PriorityFor maps a usage percentage to its tier.
func PriorityFor(percentage float64) int {
	switch {
	case percentage >= 100:
		return PriorityExceeded
	case percentage >= 90:
		return PriorityCritical
	case percentage >= 75:
		return PriorityWarning
	default:
		return PriorityOnTrack
	}
}

// Prioritize orders budgets by tier, most urgent first. Budgets in the same tier keep
// their input order.
func Prioritize(budgets []models.BudgetData) []Prioritized {
	out := make([]Prioritized, len(budgets))
	for i, b := range budgets {
		pct := Percentage(b)
		tier := PriorityFor(pct)
		out[i] = Prioritized{Budget: b, Percentage: pct, Priority: tier, Label: priorityLabels[tier]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}
