// Package currencyutils provides rupee amount parsing and formatting used throughout the application.
package currencyutils

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var currencyMarkers = regexp.MustCompile(`(?i)(₹|\binr\b|\brs\.?)`)

// ParseAmount parses an amount as it appears in bank and UPI messages into a decimal value.
// Commas are always treated as grouping separators, so both "1,234.50" and the Indian
// "1,23,456.00" parse as expected. Currency markers (₹, Rs., INR) and spaces are ignored.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': empty value", amountStr)
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}

	return amount, nil
}

// StandardizeAmount strips currency markers, grouping commas and whitespace so the
// result can be handed to decimal.NewFromString.
func StandardizeAmount(amountStr string) string {
	amountStr = currencyMarkers.ReplaceAllString(amountStr, "")
	amountStr = strings.ReplaceAll(amountStr, ",", "")
	amountStr = strings.Join(strings.Fields(amountStr), "")
	return strings.TrimSuffix(amountStr, "/-")
}

// FormatRupees renders a float amount as "₹1,23,456.5": Indian digit grouping and at
// most two fraction digits, trailing zeros dropped. NaN and infinities render as ₹0.
func FormatRupees(amount float64) string {
	d := decimal.NewFromFloat(0)
	if !isInvalid(amount) {
		d = decimal.NewFromFloat(amount)
	}
	return FormatDecimal(d)
}

// FormatDecimal is FormatRupees for decimal amounts.
func FormatDecimal(amount decimal.Decimal) string {
	amount = amount.Round(2)

	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}

	whole := amount.Truncate(0)
	fraction := amount.Sub(whole)

	out := sign + "₹" + groupIndian(whole.String())
	if !fraction.IsZero() {
		// fraction.String() is "0.5" or "0.25"
		out += strings.TrimPrefix(fraction.String(), "0")
	}
	return out
}

// groupIndian inserts separators into a string of digits: the last three digits form
// one group, the rest are grouped in pairs.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}

func isInvalid(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}

// IsPositive checks if an amount is strictly greater than zero
func IsPositive(amount decimal.Decimal) bool {
	return amount.GreaterThan(decimal.Zero)
}
