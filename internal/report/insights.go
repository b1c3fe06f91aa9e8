package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"fjacquet/budget-tracker/internal/currencyutils"
	"fjacquet/budget-tracker/internal/models"
)

// Input is everything a report is built from.
type Input struct {
	Current      models.MonthlyMetrics
	Previous     models.MonthlyMetrics
	Categories   map[string]float64
	TotalExpense float64
	// SubscriptionMonthly is the monthly cost of tracked subscriptions; 0 when unknown.
	SubscriptionMonthly float64
}

const (
	maxTopCategories       = 5
	emergencyFundThreshold = 50000.0
)

// GenerateFinancialReport builds the narrative insights for the current month
// compared with the previous one.
func GenerateFinancialReport(current, previous models.MonthlyMetrics, categories map[string]float64, totalExpense float64) models.FinancialInsights {
	return build(Input{Current: current, Previous: previous, Categories: categories, TotalExpense: totalExpense})
}

func build(in Input) models.FinancialInsights {
	top := TopCategories(in.Categories, in.TotalExpense)
	return models.FinancialInsights{
		Summary:         generateSummary(in.Current, in.Previous),
		TopCategories:   top,
		MonthlyTrend:    generateTrendAnalysis(in.Current, in.Previous),
		BudgetStatus:    generateBudgetStatus(in.Current),
		Recommendations: generateRecommendations(in.Current, in.Previous, top, in.SubscriptionMonthly),
		RiskFactors:     generateRiskFactors(in.Current, in.Previous),
		Score:           CalculateFinancialScore(in.Current, in.Previous),
	}
}

func money(v float64) string {
	return currencyutils.FormatRupees(v)
}

func generateSummary(current, previous models.MonthlyMetrics) string {
	parts := []string{fmt.Sprintf("This month you earned %s, spent %s and saved %s.",
		money(current.Income), money(current.Expense), money(current.Savings))}

	rate := current.SavingsRate
	switch {
	case rate > 30:
		parts = append(parts, fmt.Sprintf("Excellent work! You're saving %.1f%% of your income, well above the recommended 20%%.", rate))
	case rate > 20:
		parts = append(parts, fmt.Sprintf("Great job! Your savings rate of %.1f%% is above the recommended 20%%.", rate))
	case rate > 10:
		parts = append(parts, fmt.Sprintf("You're saving %.1f%% of your income. Aim for at least 20%% to build a stronger cushion.", rate))
	case rate >= 0:
		parts = append(parts, fmt.Sprintf("Your savings rate is only %.1f%%. Look for expenses you can trim.", rate))
	default:
		parts = append(parts, fmt.Sprintf("You spent %s more than you earned. Reducing expenses should be the priority.", money(-current.Savings)))
	}

	if change := current.Income - previous.Income; change != 0 {
		direction := "increased"
		if change < 0 {
			direction = "decreased"
		}
		if previous.Income > 0 {
			parts = append(parts, fmt.Sprintf("Your income %s by %s (%.1f%%) compared to last month.",
				direction, money(math.Abs(change)), math.Abs(change)/previous.Income*100))
		} else {
			parts = append(parts, fmt.Sprintf("Your income %s by %s compared to last month.", direction, money(math.Abs(change))))
		}
	}

	return strings.Join(parts, " ")
}

// TopCategories returns the largest categories, amount descending, with their share
// of totalExpense. Equal amounts are ordered by name. Shares are 0 when totalExpense is 0.
func TopCategories(categories map[string]float64, totalExpense float64) []models.CategoryShare {
	shares := make([]models.CategoryShare, 0, len(categories))
	for name, amount := range categories {
		pct := 0.0
		if totalExpense > 0 {
			pct = amount / totalExpense * 100
		}
		shares = append(shares, models.CategoryShare{Category: name, Amount: amount, Percentage: pct})
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Amount != shares[j].Amount {
			return shares[i].Amount > shares[j].Amount
		}
		return shares[i].Category < shares[j].Category
	})

	if len(shares) > maxTopCategories {
		shares = shares[:maxTopCategories]
	}
	return shares
}

// expenseChangePercent is the relative change in expense, ok false when the previous
// month had no expense.
func expenseChangePercent(current, previous models.MonthlyMetrics) (float64, bool) {
	if previous.Expense <= 0 {
		return 0, false
	}
	return (current.Expense - previous.Expense) / previous.Expense * 100, true
}

func generateTrendAnalysis(current, previous models.MonthlyMetrics) string {
	var parts []string

	if pct, ok := expenseChangePercent(current, previous); ok && math.Abs(pct) > 10 {
		direction := "increased"
		if pct < 0 {
			direction = "decreased"
		}
		parts = append(parts, fmt.Sprintf("Your expenses %s by %.1f%% compared to last month.", direction, math.Abs(pct)))
	}

	delta := math.Round((current.SavingsRate-previous.SavingsRate)*10) / 10
	switch {
	case delta > 0:
		parts = append(parts, fmt.Sprintf("Your savings rate improved by %.1f percentage points.", delta))
	case delta < 0:
		parts = append(parts, fmt.Sprintf("Your savings rate decreased by %.1f percentage points.", -delta))
	default:
		parts = append(parts, "Your savings rate remained stable.")
	}

	return strings.Join(parts, " ")
}

func generateBudgetStatus(current models.MonthlyMetrics) string {
	rate := current.SavingsRate
	switch {
	case rate > 35:
		return "Outstanding: your spending is well within your means."
	case rate > 25:
		return "Healthy: you are living comfortably within your income."
	case rate > 15:
		return "Moderate: your budget is balanced but leaves little room for surprises."
	case rate > 0:
		return "Tight: most of your income is going to expenses."
	default:
		return "Critical: your expenses meet or exceed your income."
	}
}

func generateRecommendations(current, previous models.MonthlyMetrics, top []models.CategoryShare, subscriptionMonthly float64) []string {
	var recs []string

	if len(top) > 0 && top[0].Percentage > 30 {
		recs = append(recs, fmt.Sprintf("%s makes up %.1f%% of your spending. Consider setting a dedicated budget for it.",
			top[0].Category, top[0].Percentage))
	}
	if increase := current.Expense - previous.Expense; increase > 0 {
		recs = append(recs, fmt.Sprintf("Your expenses rose by %s this month. Review recent purchases for non-essential spending.",
			money(increase)))
	}
	if current.SavingsRate < 20 {
		recs = append(recs, "Try to save at least 20% of your income. Automating a transfer on payday makes it easier.")
	}
	if current.Income < emergencyFundThreshold {
		recs = append(recs, "Build an emergency fund covering 3 to 6 months of expenses before taking on new commitments.")
	}

	if subscriptionMonthly > 0 {
		recs = append(recs, fmt.Sprintf("Your subscriptions cost %s a month. Review them and cancel the ones you no longer use.",
			money(subscriptionMonthly)))
	} else {
		recs = append(recs, "Review your subscriptions and cancel the ones you no longer use.")
	}
	return recs
}

func generateRiskFactors(current, previous models.MonthlyMetrics) []string {
	var risks []string

	if current.Savings < 0 {
		risks = append(risks, fmt.Sprintf("Deficit spending: expenses exceeded income by %s.", money(-current.Savings)))
	}
	if previous.Expense > 0 && current.Expense-previous.Expense > previous.Expense*0.2 {
		pct, _ := expenseChangePercent(current, previous)
		risks = append(risks, fmt.Sprintf("Sharp increase in expenses: up %.1f%% from last month.", pct))
	}
	if current.SavingsRate <= 0 {
		risks = append(risks, "No savings this month.")
	}
	if current.Expense > current.Income*1.2 {
		risks = append(risks, "Expenses are more than 20% above income.")
	}
	return risks
}

// CalculateFinancialScore rates a month from 0 to 100 by savings rate, the change in
// expense against the previous month and overspending.
func CalculateFinancialScore(current, previous models.MonthlyMetrics) int {
	score := 100.0

	switch rate := current.SavingsRate; {
	case rate < 15:
		score -= 30
	case rate < 25:
		score -= 15
	case rate >= 35:
		score += 10
	}

	if previous.Expense > 0 {
		variance := (current.Expense - previous.Expense) / previous.Expense
		if variance > 0.3 {
			score -= 10
		} else if variance < -0.2 {
			score -= 5
		}
	}

	if current.Expense > current.Income*1.1 {
		score -= 25
	}

	return int(math.Max(0, math.Min(100, score)))
}

// PredictFutureSpending projects next month from past months, oldest first. Expense
// is the average adjusted by half the trend over the last three months; income is
// the plain average. No months yields zero metrics.
func PredictFutureSpending(months []models.MonthlyMetrics) models.MonthlyMetrics {
	if len(months) == 0 {
		return models.MonthlyMetrics{}
	}

	var income, expense float64
	for _, m := range months {
		income += m.Income
		expense += m.Expense
	}
	n := float64(len(months))
	avgIncome, avgExpense := income/n, expense/n

	window := months
	if len(window) > 3 {
		window = window[len(window)-3:]
	}
	trend := 0.0
	if first := window[0].Expense; len(window) > 1 && first != 0 {
		trend = (window[len(window)-1].Expense - first) / first
	}

	return models.NewMonthlyMetrics(avgIncome, avgExpense*(1+trend*0.5))
}
