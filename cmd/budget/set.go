package budget

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/budget-tracker/cmd/root"
	"fjacquet/budget-tracker/internal/dateutils"
	"fjacquet/budget-tracker/internal/models"
	"fjacquet/budget-tracker/internal/parsererror"

	"github.com/spf13/cobra"
)

var setFlags struct {
	name     string
	category string
	amount   float64
	period   string
	start    string
	end      string
}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Add or update a budget in the budgets file",
	Long: `Add a budget to the budgets file, or update the budget with the same name.

Example:
  budget-tracker budget set --name Food --category Food --amount 12000 --period monthly`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		files := c.GetConfigFiles()

		cfg, err := files.LoadBudgetsConfig()
		if err != nil {
			return err
		}
		b, err := buildBudget(setFlags.name, setFlags.category, setFlags.amount, setFlags.period, setFlags.start, setFlags.end, time.Now())
		if err != nil {
			return err
		}
		cfg, created := upsert(cfg, b)
		if err := files.SaveBudgets(cfg); err != nil {
			return err
		}

		verb := "Updated"
		if created {
			verb = "Added"
		}
		return root.WriteOutput(cmd, []byte(fmt.Sprintf("%s budget %s\n", verb, b.Name)))
	},
}

func init() {
	setCmd.Flags().StringVar(&setFlags.name, "name", "", "Budget name")
	setCmd.Flags().StringVar(&setFlags.category, "category", "", "Spending category the budget tracks")
	setCmd.Flags().Float64Var(&setFlags.amount, "amount", 0, "Budget amount")
	setCmd.Flags().StringVar(&setFlags.period, "period", string(models.PeriodMonthly), "Period: daily, weekly, monthly, yearly or custom")
	setCmd.Flags().StringVar(&setFlags.start, "start", "", "Period start date (default: start of the current month)")
	setCmd.Flags().StringVar(&setFlags.end, "end", "", "Period end date (custom periods only, default: the start of the following month)")
	_ = setCmd.MarkFlagRequired("name")
	_ = setCmd.MarkFlagRequired("amount")
}

func buildBudget(name, category string, amount float64, period, start, end string, now time.Time) (models.BudgetData, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.BudgetData{}, &parsererror.ValidationError{Subject: "budget", Reason: "name is required"}
	}
	if amount < 0 {
		return models.BudgetData{}, &parsererror.ValidationError{Subject: "budget " + name, Reason: "amount must not be negative"}
	}

	p := models.BudgetPeriod(strings.ToLower(period))
	switch p {
	case models.PeriodDaily, models.PeriodWeekly, models.PeriodMonthly, models.PeriodYearly, models.PeriodCustom:
	default:
		return models.BudgetData{}, &parsererror.ValidationError{Subject: "budget " + name, Reason: fmt.Sprintf("unknown period %q", period)}
	}

	startDate := dateutils.StartOfMonth(now)
	if start != "" {
		t, _, err := dateutils.ParseDate(start)
		if err != nil {
			return models.BudgetData{}, &parsererror.ValidationError{Subject: "budget " + name, Reason: err.Error()}
		}
		startDate = t
	}

	b := models.BudgetData{
		Name:      name,
		Category:  strings.TrimSpace(category),
		Amount:    amount,
		Period:    p,
		StartDate: startDate,
	}
	if p != models.PeriodCustom {
		return b, nil
	}

	endDate := dateutils.StartOfMonth(startDate).AddDate(0, 1, 0)
	if end != "" {
		t, _, err := dateutils.ParseDate(end)
		if err != nil {
			return models.BudgetData{}, &parsererror.ValidationError{Subject: "budget " + name, Reason: err.Error()}
		}
		endDate = t
	}
	if !endDate.After(startDate) {
		return models.BudgetData{}, &parsererror.ValidationError{Subject: "budget " + name, Reason: "end date must be after start date"}
	}
	b.EndDate = &endDate
	return b, nil
}

// upsert replaces the budget named like b, keeping its spending and history, or
// appends b. It reports whether b was appended.
func upsert(cfg models.BudgetsConfig, b models.BudgetData) (models.BudgetsConfig, bool) {
	for i, existing := range cfg.Budgets {
		if strings.EqualFold(existing.Name, b.Name) {
			b.Spent = existing.Spent
			b.History = existing.History
			b.HistoricalAverage = existing.HistoricalAverage
			if b.EndDate == nil {
				b.EndDate = existing.EndDate
			}
			cfg.Budgets[i] = b
			return cfg, false
		}
	}
	cfg.Budgets = append(cfg.Budgets, b)
	return cfg, true
}
