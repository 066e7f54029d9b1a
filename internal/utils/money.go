package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatMoney keeps consistent two-decimal formatting for currency fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// ParseAmount parses a decimal currency amount from free text.
// Empty or malformed input defaults to zero, matching how the booking
// forms submit optional money fields.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.TrimPrefix(s, "£")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
