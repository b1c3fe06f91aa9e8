package models

import "time"

// AlertLevel classifies how close a budget is to its limit.
type AlertLevel string

const (
	AlertSafe    AlertLevel = "safe"
	AlertWarning AlertLevel = "warning"
	AlertDanger  AlertLevel = "danger"
)

// BudgetPeriod is the recurrence of a budget.
type BudgetPeriod string

const (
	PeriodDaily   BudgetPeriod = "daily"
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
	PeriodCustom  BudgetPeriod = "custom"
)

// BudgetData is a spending limit and what has been spent against it.
type BudgetData struct {
	Name              string       `json:"name" yaml:"name"`
	Category          string       `json:"category,omitempty" yaml:"category,omitempty"`
	Amount            float64      `json:"amount" yaml:"amount"`
	Spent             float64      `json:"spent" yaml:"spent"`
	HistoricalAverage *float64     `json:"historical_average,omitempty" yaml:"historical_average,omitempty"`
	Period            BudgetPeriod `json:"period,omitempty" yaml:"period,omitempty"`
	StartDate         time.Time    `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate           *time.Time   `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	// History holds past monthly expense figures, oldest first.
	History []float64 `json:"history,omitempty" yaml:"history,omitempty"`
}

// BudgetsConfig is the layout of the budgets YAML file.
type BudgetsConfig struct {
	Budgets       []BudgetData   `yaml:"budgets"`
	Subscriptions []Subscription `yaml:"subscriptions,omitempty"`
}
