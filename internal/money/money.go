// Package money formats and parses rupee amounts stored as integer paise.
package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Format renders paise as a rupee string, e.g. 12345 -> "123.45".
func Format(paise int64) string {
	sign := ""
	if paise < 0 {
		sign = "-"
		paise = -paise
	}

	return fmt.Sprintf("%s%d.%02d", sign, paise/100, paise%100)
}

// FormatRupees renders paise with the currency symbol, e.g. "₹123.45".
func FormatRupees(paise int64) string {
	if paise < 0 {
		return "-₹" + Format(-paise)
	}

	return "₹" + Format(paise)
}

// Parse converts a rupee string like "123.45" or "123" into paise.
func Parse(s string) (int64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "₹"))
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	rupees, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", s, err)
	}

	return int64(math.Round(rupees * 100)), nil
}
