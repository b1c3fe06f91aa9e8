package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/models"
	"fjacquet/budget-tracker/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	testFile := filepath.Join(dir, "test.yaml")
	writeFile(t, testFile, "test content")

	files := NewConfigFiles("", "", nil)

	file, err := files.FindConfigFile(testFile)
	assert.NoError(t, err)
	assert.Equal(t, testFile, file)

	_, err = files.FindConfigFile(filepath.Join(dir, "nonexistent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindConfigFile_SearchesConfigDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0750))
	writeFile(t, filepath.Join(dir, "config", "budgets.yaml"), "budgets: []")
	chdir(t, dir)

	file, err := NewConfigFiles("", "", nil).FindConfigFile("budgets.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("config", "budgets.yaml"), file)
}

func TestLoadCategories(t *testing.T) {
	dir := t.TempDir()

	wrapped := filepath.Join(dir, "wrapped.yaml")
	writeFile(t, wrapped, `categories:
  - name: Food
    keywords: ["Swiggy", " zomato "]
  - name: Transport
    keywords: ["uber"]
`)
	categories, err := NewConfigFiles(wrapped, "", nil).LoadCategories()
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Food", categories[0].Name)
	assert.Equal(t, []string{"swiggy", "zomato"}, categories[0].Keywords)

	bare := filepath.Join(dir, "bare.yaml")
	writeFile(t, bare, `- name: Bills
  keywords: ["electricity"]
`)
	categories, err = NewConfigFiles(bare, "", nil).LoadCategories()
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Bills", categories[0].Name)
}

func TestLoadCategories_Missing(t *testing.T) {
	logger := logging.NewMockLogger()
	categories, err := NewConfigFiles(filepath.Join(t.TempDir(), "none.yaml"), "", logger).LoadCategories()
	require.NoError(t, err)
	assert.Empty(t, categories)
	assert.True(t, logger.HasEntry("WARN", "Configuration file not found"))
}

func TestLoadBudgets(t *testing.T) {
	file := filepath.Join(t.TempDir(), "budgets.yaml")
	writeFile(t, file, `budgets:
  - name: Groceries
    category: Groceries
    amount: 8000
    spent: 6500
    period: monthly
    start_date: 2026-03-01
    history: [7200, 7600, 8100]
  - name: Trip
    amount: 50000
    spent: 12000
    period: custom
    start_date: 2026-03-01
    end_date: 2026-04-15
  - name: Coffee
    amount: 1500
    spent: 300
`)

	budgets, err := NewConfigFiles("", file, nil).LoadBudgets()
	require.NoError(t, err)
	require.Len(t, budgets, 3)

	assert.Equal(t, "Groceries", budgets[0].Name)
	assert.Equal(t, 8000.0, budgets[0].Amount)
	assert.Equal(t, []float64{7200, 7600, 8100}, budgets[0].History)
	assert.Equal(t, time.March, budgets[0].StartDate.Month())

	require.NotNil(t, budgets[1].EndDate)
	assert.Equal(t, models.PeriodCustom, budgets[1].Period)
	assert.Equal(t, 15, budgets[1].EndDate.Day())

	assert.Equal(t, models.PeriodMonthly, budgets[2].Period)
}

func TestLoadBudgets_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing name", "budgets:\n  - amount: 10\n"},
		{"negative amount", "budgets:\n  - name: X\n    amount: -1\n"},
		{"unknown period", "budgets:\n  - name: X\n    amount: 1\n    period: fortnightly\n"},
		{"end before start", "budgets:\n  - name: X\n    amount: 1\n    start_date: 2026-03-10\n    end_date: 2026-03-01\n"},
		{"unknown billing cycle", "budgets: []\nsubscriptions:\n  - name: Gym\n    amount: 1500\n    cycle: fortnightly\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "budgets.yaml")
			writeFile(t, file, tt.content)

			_, err := NewConfigFiles("", file, nil).LoadBudgets()
			var verr *parsererror.ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestSaveBudgets_RoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "budgets.yaml")
	files := NewConfigFiles("", file, nil)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, files.SaveBudgets(models.BudgetsConfig{
		Budgets: []models.BudgetData{
			{Name: "Food", Amount: 6000, Spent: 1200, Period: models.PeriodWeekly, StartDate: start},
		},
		Subscriptions: []models.Subscription{
			{Name: "Netflix", Amount: 649, Cycle: models.CycleMonthly, StartDate: start},
		},
	}))

	cfg, err := files.LoadBudgetsConfig()
	require.NoError(t, err)
	require.Len(t, cfg.Budgets, 1)
	assert.Equal(t, "Food", cfg.Budgets[0].Name)
	assert.Equal(t, models.PeriodWeekly, cfg.Budgets[0].Period)
	assert.True(t, start.Equal(cfg.Budgets[0].StartDate))
	require.Len(t, cfg.Subscriptions, 1)
	assert.Equal(t, models.CycleMonthly, cfg.Subscriptions[0].Cycle)
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldDir) })
}
