// Package report implements the monthly financial report command.
package report

import (
	"context"
	"fmt"
	"time"

	"fjacquet/budget-tracker/cmd/root"
	heuristics "fjacquet/budget-tracker/internal/budget"
	"fjacquet/budget-tracker/internal/currencyutils"
	"fjacquet/budget-tracker/internal/dateutils"
	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/models"
	reportgen "fjacquet/budget-tracker/internal/report"
	"fjacquet/budget-tracker/internal/store"
	"fjacquet/budget-tracker/internal/validation"

	"github.com/spf13/cobra"
)

var (
	month   string
	format  string
	history int
)

// Cmd represents the report command
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a financial report for a month",
	Long: `Generate a financial report from the transactions stored for a month: a
summary, the top spending categories, the trend against the previous month,
recommendations, risk factors and a financial health score.

The text report ends with a forecast for the next month based on the last
--history months.

Example:
  budget-tracker report -u alice --month 2026-03 --format json -o march.json`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&month, "month", "m", "", "Month to report on (YYYY-MM, default: current month)")
	Cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, json or yaml (default: report.format)")
	Cmd.Flags().IntVar(&history, "history", 3, "Number of months, up to the reported one, used for the forecast")
}

// Result is a generated report with its forecast.
type Result struct {
	Month    time.Time
	Insights models.FinancialInsights
	Forecast models.MonthlyMetrics
}

func run(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	userID, err := root.UserID()
	if err != nil {
		return err
	}
	outFormat, err := root.OutputFormat(format)
	if err != nil {
		return err
	}

	m := dateutils.StartOfMonth(time.Now())
	if month != "" {
		if err := validation.IsValidMonth(month); err != nil {
			return err
		}
		if m, err = dateutils.ParseMonth(month); err != nil {
			return err
		}
	}

	var subsMonthly float64
	if cfg, err := c.GetConfigFiles().LoadBudgetsConfig(); err != nil {
		root.Log.WithError(err).Warn("Budgets file unavailable, subscriptions ignored")
	} else {
		var errs []error
		subsMonthly, errs = heuristics.TotalMonthly(cfg.Subscriptions)
		for _, e := range errs {
			root.Log.WithError(e).Warn("Skipping subscription")
		}
	}

	res, err := buildReport(cmd.Context(), c.GetStore(), c.GetReportGenerator(), userID, m, history, subsMonthly)
	if err != nil {
		return err
	}

	out, err := c.GetReportGenerator().Render(res.Insights, outFormat)
	if err != nil {
		return err
	}
	if outFormat == root.FormatText {
		out = append(out, forecastText(res.Forecast)...)
	}

	root.Log.Info("Generated report",
		logging.F(logging.FieldUserID, userID),
		logging.F("month", res.Month.Format(dateutils.MonthLayout)),
		logging.F("score", res.Insights.Score))
	return root.WriteOutput(cmd, out)
}

// buildReport reads the reported month, the month before it and the forecast history
// from st. History covers the months ending with month, oldest first.
func buildReport(ctx context.Context, st store.Store, gen *reportgen.ReportGenerator, userID string, month time.Time, history int, subsMonthly float64) (Result, error) {
	month = dateutils.StartOfMonth(month)
	if history < 1 {
		history = 1
	}

	current, categories, err := st.MonthlyTotals(ctx, userID, month)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load totals for %s: %w", month.Format(dateutils.MonthLayout), err)
	}
	previousMonth := dateutils.PreviousMonth(month)
	previous, _, err := st.MonthlyTotals(ctx, userID, previousMonth)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load totals for %s: %w", previousMonth.Format(dateutils.MonthLayout), err)
	}

	months := make([]models.MonthlyMetrics, 0, history)
	for i := history - 1; i > 0; i-- {
		m := month.AddDate(0, -i, 0)
		metrics, _, err := st.MonthlyTotals(ctx, userID, m)
		if err != nil {
			return Result{}, fmt.Errorf("failed to load totals for %s: %w", m.Format(dateutils.MonthLayout), err)
		}
		months = append(months, metrics)
	}
	months = append(months, current)

	insights := gen.Generate(reportgen.Input{
		Current:             current,
		Previous:            previous,
		Categories:          categories,
		TotalExpense:        current.Expense,
		SubscriptionMonthly: subsMonthly,
	})

	return Result{
		Month:    month,
		Insights: insights,
		Forecast: reportgen.PredictFutureSpending(months),
	}, nil
}

func forecastText(f models.MonthlyMetrics) []byte {
	return []byte(fmt.Sprintf("\nForecast for next month\n  Income:  %s\n  Expense: %s\n  Savings: %s\n",
		currencyutils.FormatRupees(f.Income),
		currencyutils.FormatRupees(f.Expense),
		currencyutils.FormatRupees(f.Savings)))
}
