package textutils_test

import (
	"regexp"
	"testing"

	"fjacquet/budget-tracker/internal/textutils"

	"github.com/stretchr/testify/assert"
)

func TestFirstSubmatch(t *testing.T) {
	re := regexp.MustCompile(`paid (?P<primary>\d+)|debited with (?P<secondary>\d+)|total`)

	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{
			name:     "Primary alternative",
			input:    "paid 250 to shop",
			expected: "250",
			ok:       true,
		},
		{
			name:     "Secondary alternative",
			input:    "account debited with 75",
			expected: "75",
			ok:       true,
		},
		{
			name:     "Falls back to whole match",
			input:    "grand total",
			expected: "total",
			ok:       true,
		},
		{
			name:     "No match",
			input:    "nothing here",
			expected: "",
			ok:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, ok := textutils.FirstSubmatch(re, tt.input, "primary", "secondary")
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestFirstSubmatch_NameOrderWins(t *testing.T) {
	re := regexp.MustCompile(`(?P<a>x+)-(?P<b>y+)`)

	value, ok := textutils.FirstSubmatch(re, "xx-yy", "b", "a")
	assert.True(t, ok)
	assert.Equal(t, "yy", value)
}

func TestFirstSubmatch_UnknownNameIgnored(t *testing.T) {
	re := regexp.MustCompile(`(?P<a>\d+)`)

	value, ok := textutils.FirstSubmatch(re, "id 42", "missing", "a")
	assert.True(t, ok)
	assert.Equal(t, "42", value)
}

func TestCollapseSpaces(t *testing.T) {
	assert.Equal(t, "Big Bazaar Store", textutils.CollapseSpaces("  Big \t Bazaar\n Store "))
	assert.Equal(t, "", textutils.CollapseSpaces("   "))
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Swiggy.", "Swiggy"},
		{" Reliance  Fresh, ", "Reliance Fresh"},
		{"zomato@okicici", "zomato@okicici"},
		{"A.B. Traders", "A.B. Traders"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, textutils.CleanName(tt.input))
		})
	}
}
