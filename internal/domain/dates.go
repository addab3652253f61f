package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the storage and input layout for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate accepts a calendar date (YYYY-MM-DD) or an RFC3339 timestamp
// and returns the UTC calendar day it falls on.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return StartOfDay(t), nil
}

// ParseOptionalDate returns nil for a blank string.
func ParseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// StartOfDay truncates t to midnight UTC of its calendar day.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// WithinDays reports whether day lies in the inclusive range [start, end]
// compared at calendar-day granularity.
func WithinDays(day, start, end time.Time) bool {
	d := StartOfDay(day)
	return !d.Before(StartOfDay(start)) && !d.After(StartOfDay(end))
}
