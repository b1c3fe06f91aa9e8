package report

import (
	"encoding/json"
	"strings"
	"testing"

	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleInsights() models.FinancialInsights {
	return GenerateFinancialReport(
		models.NewMonthlyMetrics(100000, 60000),
		models.NewMonthlyMetrics(90000, 50000),
		map[string]float64{"Food": 60000},
		60000,
	)
}

func TestReportGenerator_GenerateIncludesSubscriptionCost(t *testing.T) {
	logger := logging.NewMockLogger()
	g := NewReportGenerator(logger)

	insights := g.Generate(Input{
		Current:             models.NewMonthlyMetrics(100000, 60000),
		Previous:            models.NewMonthlyMetrics(100000, 60000),
		SubscriptionMonthly: 649,
	})

	last := insights.Recommendations[len(insights.Recommendations)-1]
	assert.Equal(t, "Your subscriptions cost ₹649 a month. Review them and cancel the ones you no longer use.", last)
	assert.True(t, logger.HasEntry("DEBUG", "Generated financial report"))
}

func TestReportGenerator_RenderJSON(t *testing.T) {
	g := NewReportGenerator(nil)

	out, err := g.Render(sampleInsights(), FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"score": 100`)

	var decoded models.FinancialInsights
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "Food", decoded.TopCategories[0].Category)
}

func TestReportGenerator_RenderYAML(t *testing.T) {
	g := NewReportGenerator(nil)

	out, err := g.Render(sampleInsights(), FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(out), "score: 100")

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Contains(t, decoded, "top_categories")
}

func TestReportGenerator_RenderText(t *testing.T) {
	g := NewReportGenerator(nil)

	out, err := g.Render(sampleInsights(), FormatText)
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.HasPrefix(text, "Financial report (score 100/100)\n"))
	assert.Contains(t, text, "1. Food")
	assert.Contains(t, text, "₹60,000")
	assert.Contains(t, text, "Risk factors\n  none\n")
}

func TestReportGenerator_UnsupportedFormat(t *testing.T) {
	g := NewReportGenerator(nil)

	_, err := g.Render(sampleInsights(), "pdf")
	require.Error(t, err)
	assert.Equal(t, "unsupported report format: pdf", err.Error())
}
