package budget

import (
	"testing"

	"fjacquet/budget-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrioritize_ExceededFirst(t *testing.T) {
	result := Prioritize([]models.BudgetData{
		{Name: "on track", Amount: 1000, Spent: 500},
		{Name: "exceeded", Amount: 1000, Spent: 1100},
	})

	require.Len(t, result, 2)
	assert.Equal(t, "exceeded", result[0].Budget.Name)
	assert.Equal(t, PriorityExceeded, result[0].Priority)
	assert.Equal(t, "exceeded", result[0].Label)
	assert.Equal(t, PriorityOnTrack, result[1].Priority)
}

func TestPrioritize_StableWithinTier(t *testing.T) {
	result := Prioritize([]models.BudgetData{
		{Name: "a", Amount: 100, Spent: 10},
		{Name: "b", Amount: 100, Spent: 95},
		{Name: "c", Amount: 100, Spent: 20},
		{Name: "d", Amount: 100, Spent: 80},
		{Name: "e", Amount: 100, Spent: 90},
		{Name: "f", Amount: 0, Spent: 50},
	})

	var names []string
	for _, p := range result {
		names = append(names, p.Budget.Name)
	}
	assert.Equal(t, []string{"f", "b", "e", "d", "a", "c"}, names)
}

func TestPriorityFor(t *testing.T) {
	assert.Equal(t, PriorityExceeded, PriorityFor(100))
	assert.Equal(t, PriorityCritical, PriorityFor(90))
	assert.Equal(t, PriorityWarning, PriorityFor(75))
	assert.Equal(t, PriorityOnTrack, PriorityFor(74.9))
}

func TestPrioritize_Empty(t *testing.T) {
	assert.Empty(t, Prioritize(nil))
}
