// Package timeutil centralises the date handling used across the API. Every
// endpoint that accepts a date string goes through ParseFlexible so the
// accepted formats and the fallback policy live in one place.
package timeutil

import (
	"fmt"
	"time"
)

// Layouts accepted by ParseFlexible, tried in order.
var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseFlexible parses an ISO-8601 date or datetime string. Offset-less
// inputs are interpreted in loc.
func ParseFlexible(value string, loc *time.Location) (time.Time, error) {
	for _, layout := range layouts {
		if layout == time.RFC3339 {
			if t, err := time.Parse(layout, value); err == nil {
				return t.In(loc), nil
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unparsable date %q", value)
}

// StartOfDay truncates t to midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// MonthRange returns the half-open range covering now's calendar month:
// the first day of the current month through the first day of the next.
// AddDate carries December into January of the following year.
func MonthRange(now time.Time, loc *time.Location) (time.Time, time.Time) {
	now = now.In(loc)
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

// WeekdayIndex maps t's weekday onto the stored convention of
// 0=Monday..6=Sunday.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
