// Package dateutils provides common date and time operations used throughout the application.
package dateutils

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO    = "2006-01-02"
	DateLayoutIndian = "02-01-2006"
	DateLayoutFull   = "2006-01-02 15:04:05"
	MonthLayout      = "2006-01"
)

// CommonFormats is the list of formats tried, in order, when parsing dates from SMS
// exports and budget files.
var CommonFormats = []string{
	time.RFC3339,
	DateLayoutFull,
	"2006-01-02 15:04",
	DateLayoutISO,
	DateLayoutIndian,
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"02-Jan-2006",
	"02 Jan 2006",
	"Jan 2, 2006",
}

var whitespace = regexp.MustCompile(`\s+`)

// ParseDate attempts to parse a date string using CommonFormats.
// Returns the parsed time and the detected format.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)

	for _, format := range CommonFormats {
		if t, err := time.ParseInLocation(format, dateStr, time.Local); err == nil {
			return t, format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// ParseMonth parses a "YYYY-MM" month into the first instant of that month in local time.
func ParseMonth(month string) (time.Time, error) {
	t, err := time.ParseInLocation(MonthLayout, strings.TrimSpace(month), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse month %q (want YYYY-MM): %w", month, err)
	}
	return t, nil
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// CleanDateString trims and collapses whitespace in a date string
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// PreviousMonth returns the first day of the month before date's month.
func PreviousMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, -1, 0)
}

// CeilDays converts a duration into whole days, rounding any partial day up.
// Negative durations are floored at 0.
func CeilDays(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Hours() / 24))
}
