package report

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/models"
	reportgen "fjacquet/budget-tracker/internal/report"
	"fjacquet/budget-tracker/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(day time.Time, typ models.TransactionType, category string, amount int64) models.TransactionRecord {
	return models.TransactionRecord{
		UserID:    "alice",
		Amount:    decimal.NewFromInt(amount),
		Type:      typ,
		Category:  category,
		CreatedAt: day,
	}
}

func seededStore() *store.MockStore {
	st := store.NewMockStore()
	jan := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	st.Transactions = []models.TransactionRecord{
		tx(jan, models.TypeIncome, models.CategorySalary, 100000),
		tx(jan, models.TypeExpense, models.CategoryFood, 40000),
		tx(feb, models.TypeIncome, models.CategorySalary, 100000),
		tx(feb, models.TypeExpense, models.CategoryFood, 50000),
		tx(mar, models.TypeIncome, models.CategorySalary, 100000),
		tx(mar, models.TypeExpense, models.CategoryFood, 60000),
		tx(mar, models.TypeExpense, models.CategoryTransport, 10000),
	}
	return st
}

func TestReportCommand_Metadata(t *testing.T) {
	assert.Equal(t, "report", Cmd.Use)
	for _, name := range []string{"month", "format", "history"} {
		assert.NotNil(t, Cmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "3", Cmd.Flags().Lookup("history").DefValue)
}

func TestBuildReport(t *testing.T) {
	gen := reportgen.NewReportGenerator(logging.NewMockLogger())

	res, err := buildReport(context.Background(), seededStore(), gen, "alice",
		time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), 3, 0)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), res.Month)
	require.NotEmpty(t, res.Insights.TopCategories)
	assert.Equal(t, models.CategoryFood, res.Insights.TopCategories[0].Category)
	assert.Equal(t, 60000.0, res.Insights.TopCategories[0].Amount)

	// Expenses 40000, 50000, 70000: average 53333.33, trend +75% adds 37.5%.
	assert.InDelta(t, 100000, res.Forecast.Income, 0.001)
	assert.InDelta(t, 73333.33, res.Forecast.Expense, 0.01)
}

func TestBuildReport_SingleMonthHistory(t *testing.T) {
	gen := reportgen.NewReportGenerator(logging.NewMockLogger())

	res, err := buildReport(context.Background(), seededStore(), gen, "alice",
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), 0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 70000, res.Forecast.Expense, 0.001)
}

func TestBuildReport_StoreError(t *testing.T) {
	st := store.NewMockStore()
	st.MonthlyTotalsError = errors.New("disk gone")
	gen := reportgen.NewReportGenerator(logging.NewMockLogger())

	_, err := buildReport(context.Background(), st, gen, "alice", time.Now(), 3, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
}

func TestForecastText(t *testing.T) {
	out := string(forecastText(models.NewMonthlyMetrics(1000, 400)))
	assert.True(t, strings.HasPrefix(out, "\nForecast for next month\n"))
	assert.Contains(t, out, "Income:")
	assert.Contains(t, out, "Savings:")
}
