package library

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date format used at the presentation boundary.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a calendar date at midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, invalid("date", "expected YYYY-MM-DD")
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string { return t.Format(DateLayout) }

// Day drops the clock part of t and re-anchors its calendar date at
// midnight UTC so dates from different zones compare by day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
