// Package budget implements the commands that check spending against budgets and
// maintain the budgets file.
package budget

import (
	"fmt"
	"io"
	"strings"
	"time"

	"fjacquet/budget-tracker/cmd/root"
	heuristics "fjacquet/budget-tracker/internal/budget"
	"fjacquet/budget-tracker/internal/currencyutils"
	"fjacquet/budget-tracker/internal/dateutils"
	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/models"
	"fjacquet/budget-tracker/internal/validation"

	"github.com/spf13/cobra"
)

var (
	format string
	month  string
)

// Cmd represents the budget command
var Cmd = &cobra.Command{
	Use:   "budget",
	Short: "Check spending against budgets",
	Long: `Check every budget in the budgets file: usage, alert level, days left in the
period, daily allowance, projected spending at the current pace and a suggested
amount from past months. Budgets are listed most urgent first.

With --month, spending for budgets that name a category is taken from the
transactions stored for that month.

Example:
  budget-tracker budget -u alice --month 2026-03`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, json or yaml (default: report.format)")
	Cmd.Flags().StringVarP(&month, "month", "m", "", "Month (YYYY-MM) whose stored spending fills category budgets")
	Cmd.AddCommand(setCmd)
}

// Entry is one evaluated budget with its urgency.
type Entry struct {
	Priority int               `json:"priority" yaml:"priority"`
	Label    string            `json:"label" yaml:"label"`
	Status   heuristics.Status `json:"status" yaml:"status"`
}

// Overview is the output of the budget command.
type Overview struct {
	Budgets              []Entry `json:"budgets" yaml:"budgets"`
	SubscriptionsMonthly float64 `json:"subscriptions_monthly" yaml:"subscriptions_monthly"`
}

func run(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	outFormat, err := root.OutputFormat(format)
	if err != nil {
		return err
	}

	cfg, err := c.GetConfigFiles().LoadBudgetsConfig()
	if err != nil {
		return err
	}

	budgets := cfg.Budgets
	if month != "" {
		if err := validation.IsValidMonth(month); err != nil {
			return err
		}
		userID, err := root.UserID()
		if err != nil {
			return err
		}
		m, _ := dateutils.ParseMonth(month)
		_, categories, err := c.GetStore().MonthlyTotals(cmd.Context(), userID, m)
		if err != nil {
			return err
		}
		budgets = applySpending(budgets, categories)
	}

	subs, errs := heuristics.TotalMonthly(cfg.Subscriptions)
	for _, e := range errs {
		root.Log.WithError(e).Warn("Skipping subscription")
	}

	overview := evaluate(budgets, subs, time.Now())
	root.Log.Debug("Evaluated budgets", logging.F(logging.FieldCount, len(overview.Budgets)))

	var out []byte
	if outFormat == root.FormatText {
		var sb strings.Builder
		writeText(&sb, overview)
		out = []byte(sb.String())
	} else if out, err = root.Encode(overview, outFormat); err != nil {
		return err
	}
	return root.WriteOutput(cmd, out)
}

// applySpending replaces the spent amount of budgets naming a category with that
// category's total. Budgets without a category keep their configured spending.
func applySpending(budgets []models.BudgetData, categories map[string]float64) []models.BudgetData {
	out := make([]models.BudgetData, len(budgets))
	for i, b := range budgets {
		if b.Category != "" {
			b.Spent = categories[b.Category]
		}
		out[i] = b
	}
	return out
}

func evaluate(budgets []models.BudgetData, subscriptions float64, now time.Time) Overview {
	prioritized := heuristics.Prioritize(budgets)
	entries := make([]Entry, len(prioritized))
	for i, p := range prioritized {
		entries[i] = Entry{
			Priority: p.Priority,
			Label:    p.Label,
			Status:   heuristics.Evaluate(p.Budget, now),
		}
	}
	return Overview{Budgets: entries, SubscriptionsMonthly: subscriptions}
}

func writeText(w io.Writer, o Overview) {
	if len(o.Budgets) == 0 {
		fmt.Fprintln(w, "No budgets defined")
	}
	for _, e := range o.Budgets {
		s := e.Status
		fmt.Fprintf(w, "[%s] %s: %s\n", e.Label, s.Name, s.Message)
		fmt.Fprintf(w, "    %s of %s spent, %d days left, %s a day\n",
			currencyutils.FormatRupees(s.Spent), currencyutils.FormatRupees(s.Amount),
			s.DaysRemaining, currencyutils.FormatRupees(s.DailyBudget))
		fmt.Fprintf(w, "    %s\n", s.Pace.Message)
		fmt.Fprintf(w, "    Suggested budget: %s (%s)\n",
			currencyutils.FormatRupees(s.Suggestion.Suggested), s.Suggestion.Reason)
	}
	if o.SubscriptionsMonthly > 0 {
		fmt.Fprintf(w, "Subscriptions: %s a month\n", currencyutils.FormatRupees(o.SubscriptionsMonthly))
	}
}
