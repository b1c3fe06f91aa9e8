// Package report turns monthly aggregates into a narrative financial report and
// renders it as text, JSON or YAML.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"fjacquet/budget-tracker/internal/currencyutils"
	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/models"

	"gopkg.in/yaml.v3"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ReportGenerator builds and renders financial reports.
type ReportGenerator struct {
	logger logging.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	if logger == nil {
		logger = logging.Nop()
	}
	return &ReportGenerator{logger: logger.WithField(logging.FieldComponent, "ReportGenerator")}
}

// Generate builds the insights for in.
func (g *ReportGenerator) Generate(in Input) models.FinancialInsights {
	insights := build(in)
	g.logger.Debug("Generated financial report",
		logging.F("score", insights.Score),
		logging.F(logging.FieldCount, len(insights.Recommendations)))
	return insights
}

// Render renders insights in the given format (text, json or yaml).
func (g *ReportGenerator) Render(insights models.FinancialInsights, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return g.renderJSON(insights)
	case FormatYAML:
		return g.renderYAML(insights)
	case FormatText, "":
		return renderText(insights), nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *ReportGenerator) renderJSON(insights models.FinancialInsights) ([]byte, error) {
	out, err := json.MarshalIndent(insights, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(out, '\n'), nil
}

func (g *ReportGenerator) renderYAML(insights models.FinancialInsights) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(insights); err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return buf.Bytes(), nil
}

func renderText(insights models.FinancialInsights) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "Financial report (score %d/100)\n\n", insights.Score)
	fmt.Fprintf(&b, "Summary\n  %s\n\n", insights.Summary)

	b.WriteString("Top categories\n")
	if len(insights.TopCategories) == 0 {
		b.WriteString("  none\n")
	}
	for i, c := range insights.TopCategories {
		fmt.Fprintf(&b, "  %d. %-16s %12s %6.1f%%\n", i+1, c.Category, currencyutils.FormatRupees(c.Amount), c.Percentage)
	}

	fmt.Fprintf(&b, "\nTrend\n  %s\n\n", insights.MonthlyTrend)
	fmt.Fprintf(&b, "Budget status\n  %s\n\n", insights.BudgetStatus)

	writeList(&b, "Recommendations", insights.Recommendations)
	b.WriteString("\n")
	writeList(&b, "Risk factors", insights.RiskFactors)

	return []byte(b.String())
}

func writeList(b *strings.Builder, title string, items []string) {
	b.WriteString(title + "\n")
	if len(items) == 0 {
		b.WriteString("  none\n")
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "  - %s\n", item)
	}
}
