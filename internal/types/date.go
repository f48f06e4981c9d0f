package types

import "time"

// DayOf returns midnight UTC of the calendar day t falls on in UTC.
func DayOf(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a "YYYY-MM-DD" string or an RFC3339 timestamp and returns the day it represents.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}

	t, err = time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}

	return DayOf(t), nil
}

// DateRange is an inclusive range of calendar days. A zero bound is open.
type DateRange struct {
	From  time.Time `json:"from" example:"2024-03-01T00:00:00Z"`
	Until time.Time `json:"until" example:"2024-03-31T00:00:00Z"`
}

// IsZero reports if neither bound is set.
func (r DateRange) IsZero() bool {
	return r.From.IsZero() && r.Until.IsZero()
}

// Contains reports whether the day of t lies within the range.
// Time of day is ignored for t and both bounds.
func (r DateRange) Contains(t time.Time) bool {
	day := DayOf(t)

	if !r.From.IsZero() && day.Before(DayOf(r.From)) {
		return false
	}

	if !r.Until.IsZero() && day.After(DayOf(r.Until)) {
		return false
	}

	return true
}

// Valid reports if the range is not inverted.
func (r DateRange) Valid() bool {
	if r.From.IsZero() || r.Until.IsZero() {
		return true
	}

	return !DayOf(r.Until).Before(DayOf(r.From))
}
