// Package types implements special types for pocketledger.
package types

import (
	"fmt"
	"time"
)

// Period is the recurrence a budget is planned for.
type Period string

const (
	Daily   Period = "daily"
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
	Yearly  Period = "yearly"
)

// Periods lists all valid periods.
var Periods = []Period{Daily, Weekly, Monthly, Yearly}

// ErrInvalidPeriod is returned when parsing an unknown period.
var ErrInvalidPeriod = fmt.Errorf("period must be one of %v", Periods)

// ParsePeriod parses a period name.
func ParsePeriod(s string) (Period, error) {
	p := Period(s)
	if !p.Valid() {
		return "", ErrInvalidPeriod
	}
	return p, nil
}

// Valid reports if p is a known period.
func (p Period) Valid() bool {
	switch p {
	case Daily, Weekly, Monthly, Yearly:
		return true
	}
	return false
}

// Range returns the first and the last day of the period that contains t.
// Both are midnight UTC, the range is inclusive on both ends.
//
// Weeks start on Monday.
func (p Period) Range(t time.Time) (time.Time, time.Time) {
	day := DayOf(t)

	switch p {
	case Daily:
		return day, day
	case Weekly:
		offset := (int(day.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 6)
	case Yearly:
		start := time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, -1)
	default:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, -1)
	}
}
