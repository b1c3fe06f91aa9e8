package budget

import (
	"fmt"
	"time"

	"fjacquet/budget-tracker/internal/models"
)

// MonthlyCost normalises a recurring charge to a monthly figure.
func MonthlyCost(amount float64, cycle models.BillingCycle) (float64, error) {
	switch cycle {
	case models.CycleDaily:
		return amount * 30, nil
	case models.CycleWeekly:
		return amount * 52 / 12, nil
	case models.CycleMonthly:
		return amount, nil
	case models.CycleQuarterly:
		return amount / 3, nil
	case models.CycleYearly:
		return amount / 12, nil
	default:
		return 0, fmt.Errorf("unknown billing cycle %q", cycle)
	}
}

// advance returns start moved forward by n billing cycles.
func advance(start time.Time, cycle models.BillingCycle, n int) time.Time {
	switch cycle {
	case models.CycleDaily:
		return start.AddDate(0, 0, n)
	case models.CycleWeekly:
		return start.AddDate(0, 0, 7*n)
	case models.CycleQuarterly:
		return start.AddDate(0, 3*n, 0)
	case models.CycleYearly:
		return start.AddDate(n, 0, 0)
	default:
		return start.AddDate(0, n, 0)
	}
}

// NextBillingDate returns the first billing date strictly after now. Dates are
// computed from start each time so month-end starts do not drift.
func NextBillingDate(start time.Time, cycle models.BillingCycle, now time.Time) (time.Time, error) {
	if !cycle.Valid() {
		return time.Time{}, fmt.Errorf("unknown billing cycle %q", cycle)
	}
	next := start
	for n := 1; !next.After(now); n++ {
		next = advance(start, cycle, n)
	}
	return next, nil
}

// TotalMonthly sums the monthly cost of subscriptions that are not paused.
// Subscriptions with an unknown cycle are skipped and reported in the returned errors.
func TotalMonthly(subs []models.Subscription) (float64, []error) {
	var total float64
	var errs []error
	for _, s := range subs {
		if s.Paused {
			continue
		}
		cost, err := MonthlyCost(s.Amount, s.Cycle)
		if err != nil {
			errs = append(errs, fmt.Errorf("subscription %s: %w", s.Name, err))
			continue
		}
		total += cost
	}
	return total, errs
}
