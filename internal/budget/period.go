package budget

import (
	"fmt"
	"time"

	"fjacquet/budget-tracker/internal/currencyutils"
	"fjacquet/budget-tracker/internal/dateutils"
	"fjacquet/budget-tracker/internal/models"
)

// PeriodEnd returns when a budget period ends: the explicit end if set, otherwise
// start advanced by one period. Custom periods have no default end, so ok is false
// when end is nil.
func PeriodEnd(period models.BudgetPeriod, start time.Time, end *time.Time) (time.Time, bool) {
	if end != nil {
		return *end, true
	}
	switch period {
	case models.PeriodDaily:
		return start.AddDate(0, 0, 1), true
	case models.PeriodWeekly:
		return start.AddDate(0, 0, 7), true
	case models.PeriodMonthly:
		return start.AddDate(0, 1, 0), true
	case models.PeriodYearly:
		return start.AddDate(1, 0, 0), true
	default:
		return time.Time{}, false
	}
}

// DaysRemaining returns whole days left in the period, rounded up and never negative.
func DaysRemaining(period models.BudgetPeriod, start time.Time, end *time.Time, now time.Time) int {
	periodEnd, ok := PeriodEnd(period, start, end)
	if !ok {
		return 0
	}
	return dateutils.CeilDays(periodEnd.Sub(now))
}

// DailyBudget spreads total over the remaining days, 0 when none remain.
func DailyBudget(total float64, daysRemaining int) float64 {
	if daysRemaining <= 0 {
		return 0
	}
	return total / float64(daysRemaining)
}

// SpendRate is the average spend per elapsed day since start, counting the current
// day. It is the usual input to ProjectPace.
func SpendRate(spent float64, start, now time.Time) float64 {
	elapsed := dateutils.CeilDays(now.Sub(start))
	if elapsed < 1 {
		elapsed = 1
	}
	return spent / float64(elapsed)
}

// PaceProjection is the expected end-of-period spend at the current rate.
type PaceProjection struct {
	Projected           float64 `json:"projected" yaml:"projected"`
	ProjectedPercentage float64 `json:"projected_percentage" yaml:"projected_percentage"`
	Warning             bool    `json:"warning" yaml:"warning"`
	Message             string  `json:"message" yaml:"message"`
}

// PeriodEndedMessage is reported when no days remain.
const PeriodEndedMessage = "Budget period has ended"

// ProjectPace projects spent forward by dailyRate for the remaining days. It warns
// when the projection exceeds the total or passes the warning threshold.
// dailyRate may be the observed SpendRate, as Evaluate uses, or the planned
// allowance from DailyBudget.
func ProjectPace(spent, total, dailyRate float64, daysRemaining int) PaceProjection {
	if daysRemaining <= 0 {
		return PaceProjection{
			Projected:           spent,
			ProjectedPercentage: CalculatePercentage(total, spent),
			Message:             PeriodEndedMessage,
		}
	}

	projected := spent + dailyRate*float64(daysRemaining)
	pct := CalculatePercentage(total, projected)
	p := PaceProjection{Projected: projected, ProjectedPercentage: pct}

	switch {
	case projected > total:
		p.Warning = true
		p.Message = fmt.Sprintf("At this pace you will exceed the budget by %s (%.0f%% of budget)",
			currencyutils.FormatRupees(projected-total), pct)
	case pct > WarningThreshold:
		p.Warning = true
		p.Message = fmt.Sprintf("At this pace you will use %.0f%% of the budget", pct)
	default:
		p.Message = "Spending is on pace"
	}
	return p
}
