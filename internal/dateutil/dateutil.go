// Package dateutil handles calendar-day arithmetic. All record dates are
// calendar days, not instants: they are normalized to midnight UTC so that
// month boundaries never shift under timezone skew.
package dateutil

import (
	"fmt"
	"time"
)

// Day truncates t to its calendar day in UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD string into a calendar day.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing day %q: %w", s, err)
	}

	return t, nil
}

// FormatDay renders a calendar day as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(time.DateOnly)
}

// PreviousDay returns the calendar day before t.
func PreviousDay(t time.Time) time.Time {
	return Day(t).AddDate(0, 0, -1)
}

// ParseMonth parses a YYYY-MM string into the first day of that month.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing month %q: %w", s, err)
	}

	return t, nil
}

// FormatMonth renders the month of t as YYYY-MM.
func FormatMonth(t time.Time) string {
	return t.Format("2006-01")
}

// MonthInterval returns the closed interval [first day, last day] of the
// month containing t. This is the single month-containment strategy used
// everywhere: both endpoints inclusive, calendar days only.
func MonthInterval(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	return first, last
}

// InMonth reports whether day falls inside the month containing month.
func InMonth(day, month time.Time) bool {
	first, last := MonthInterval(month)
	d := Day(day)

	return !d.Before(first) && !d.After(last)
}
