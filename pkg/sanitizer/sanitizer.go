// Package sanitizer provides input normalization for availability data.
//
// All normalization functions are idempotent - applying them multiple times
// produces the same result. Functions handle invalid input gracefully,
// typically by returning empty strings rather than errors.
package sanitizer

import (
	"strings"
	"time"
)

// TrimAndNormalize collapses internal whitespace runs to a single space and
// trims leading/trailing whitespace.
func TrimAndNormalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeDay lowercases and trims a weekday name so "  Monday " and
// "monday" key the same template entry.
func NormalizeDay(day string) string {
	return strings.ToLower(strings.TrimSpace(day))
}

// dateLayouts are the accepted inbound exception-date shapes. Stores and
// dashboards send either a plain date or a full ISO datetime; only the date
// portion is significant.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// NormalizeDate reduces an inbound date string to "YYYY-MM-DD". Input that
// matches none of the accepted layouts is returned trimmed and unmodified so
// validation can report it instead of silently dropping it.
func NormalizeDate(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.Format("2006-01-02")
		}
	}
	return trimmed
}

// IsDate reports whether s is a well-formed "YYYY-MM-DD" calendar date.
func IsDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
