package validation

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrFutureDate = errors.New("date cannot be in the future")
	ErrDateFormat = errors.New("date must be YYYY-MM-DD or an RFC 3339 timestamp")
)

// ValidateNotFuture fails when value is strictly after now. A zero value
// passes so that optional fields stay optional.
func ValidateNotFuture(value, now time.Time) error {
	if value.IsZero() {
		return nil
	}
	if value.After(now) {
		return ErrFutureDate
	}
	return nil
}

// ValidateDateNotFuture treats value as a calendar date and compares the
// end of that day (23:59:59 in now's location) against now.
func ValidateDateNotFuture(value, now time.Time) error {
	if value.IsZero() {
		return nil
	}
	return ValidateNotFuture(EndOfDay(value, now.Location()), now)
}

// EndOfDay returns 23:59:59 of the calendar day of t, in loc.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, loc)
}

// NotFuture returns a Check for a timestamp field.
func NotFuture(field string, value, now time.Time) Check {
	return Check{Field: field, Rule: func() error { return ValidateNotFuture(value, now) }}
}

// DateNotFuture returns a Check for a date-only field.
func DateNotFuture(field string, value, now time.Time) Check {
	return Check{Field: field, Rule: func() error { return ValidateDateNotFuture(value, now) }}
}

// ParseDate reads a calendar date (2006-01-02) in loc or an RFC 3339
// timestamp. dateOnly reports which of the two matched.
func ParseDate(raw string, loc *time.Location) (t time.Time, dateOnly bool, err error) {
	raw = strings.TrimSpace(raw)
	if d, err := time.ParseInLocation(time.DateOnly, raw, loc); err == nil {
		return d, true, nil
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts, false, nil
	}
	return time.Time{}, false, ErrDateFormat
}

// ValidateDateString parses raw and applies the date-only or the timestamp
// rule depending on its form. Blank input passes.
func ValidateDateString(raw string, now time.Time) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	t, dateOnly, err := ParseDate(raw, now.Location())
	if err != nil {
		return err
	}
	if dateOnly {
		return ValidateDateNotFuture(t, now)
	}
	return ValidateNotFuture(t, now)
}
