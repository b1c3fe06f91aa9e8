package models

import "time"

// BillingCycle is the recurrence period of a subscription.
type BillingCycle string

const (
	CycleDaily     BillingCycle = "daily"
	CycleWeekly    BillingCycle = "weekly"
	CycleMonthly   BillingCycle = "monthly"
	CycleQuarterly BillingCycle = "quarterly"
	CycleYearly    BillingCycle = "yearly"
)

// Valid reports whether c is a known billing cycle.
func (c BillingCycle) Valid() bool {
	switch c {
	case CycleDaily, CycleWeekly, CycleMonthly, CycleQuarterly, CycleYearly:
		return true
	}
	return false
}

// Subscription is a recurring charge tracked alongside budgets.
type Subscription struct {
	Name      string       `json:"name" yaml:"name"`
	Amount    float64      `json:"amount" yaml:"amount"`
	Cycle     BillingCycle `json:"cycle" yaml:"cycle"`
	StartDate time.Time    `json:"start_date" yaml:"start_date"`
	Paused    bool         `json:"paused,omitempty" yaml:"paused,omitempty"`
}
