package utils

import (
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses YYYY-MM-DD. Empty input yields the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	// tolerate full timestamps from older clients
	if len(s) > len(layoutDate) {
		s = s[:len(layoutDate)]
	}
	return time.ParseInLocation(layoutDate, s, time.UTC)
}

// FormatDate formats a time to YYYY-MM-DD; zero times render empty.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(layoutDate)
}
