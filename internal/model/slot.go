package model

import (
	"fmt"
	"strings"
	"time"
)

// SlotMinutes is the width of a capacity slot. All capacity accounting is
// done in fixed 30-minute buckets; a 60-minute reservation simply occupies
// two consecutive buckets.
const SlotMinutes = 30

// Date is a civil calendar date with no time-of-day and no zone attached.
// It is comparable and therefore usable as (part of) a map key.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates a time.Time to its civil date in the given location.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// String renders the date in its sortable "YYYY-MM-DD" form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// At combines the date with a clock time into an instant in loc.
func (d Date) At(t ClockTime, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, int(t)/60, int(t)%60, 0, 0, loc)
}

// AddDays returns the date n calendar days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return DateOf(d.At(0, time.UTC).AddDate(0, 0, n))
}

// After reports whether d falls strictly after o.
func (d Date) After(o Date) bool {
	if d.Year != o.Year {
		return d.Year > o.Year
	}
	if d.Month != o.Month {
		return d.Month > o.Month
	}
	return d.Day > o.Day
}

// MarshalJSON encodes the date as a quoted "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a quoted "YYYY-MM-DD" string. Anything else is
// rejected so malformed dates never make it past request binding.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ClockTime is a time of day expressed as whole minutes since midnight.
// Storing minutes rather than a formatted string keeps slot keys comparable
// and avoids re-parsing on every capacity check.
type ClockTime int

// ParseClockTime parses an "HH:MM" string.
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return ClockTime(t.Hour()*60 + t.Minute()), nil
}

// String renders the clock time as "HH:MM".
func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Add returns the clock time shifted by the given number of minutes. The
// result may exceed 23:59; callers compare it against meal window ends, where
// an overflowing span must fail the containment check rather than wrap.
func (t ClockTime) Add(minutes int) ClockTime {
	return t + ClockTime(minutes)
}

// MarshalJSON encodes the time as a quoted "HH:MM" string.
func (t ClockTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON decodes a quoted "HH:MM" string.
func (t *ClockTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// SlotKey identifies one 30-minute capacity bucket of one calendar day.
// It is a plain comparable value used directly as a map key by the capacity
// ledger and the occupancy index; String produces the sortable textual form
// used in logs and events.
type SlotKey struct {
	Date Date
	Time ClockTime
}

// String renders the key as "YYYY-MM-DD|HH:MM".
func (k SlotKey) String() string {
	return k.Date.String() + "|" + k.Time.String()
}
