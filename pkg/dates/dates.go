// Package dates provides a calendar-date value type for permit bookkeeping.
//
// Permit dates are stored and compared as plain YYYY-MM-DD strings with no
// time component. All arithmetic happens on calendar dates anchored at UTC
// midnight so day counts never drift across timezone boundaries or DST
// transitions.
package dates

import (
	"fmt"
	"time"
)

// Layout is the wire and storage format for calendar dates.
const Layout = "2006-01-02"

// Date is a calendar date with no time-of-day or timezone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// Parse converts a YYYY-MM-DD string into a Date. Malformed input is rejected
// here so the pure evaluation functions can assume well-formed dates.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return FromTime(t), nil
}

// FromTime truncates a time to its calendar date in the time's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the calendar date of the given instant in local time.
func Today(now time.Time) Date {
	return FromTime(now)
}

func (d Date) String() string {
	return d.midnightUTC().Format(Layout)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// DaysUntil returns the number of whole calendar days from d to other.
// Negative when other precedes d; zero when the dates are equal, so a permit
// expiring today counts as 0 days remaining rather than -1.
func (d Date) DaysUntil(other Date) int {
	return int(other.midnightUTC().Sub(d.midnightUTC()) / (24 * time.Hour))
}

// AddDays returns the date n calendar days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return FromTime(d.midnightUTC().AddDate(0, 0, n))
}

// Before reports whether d precedes other.
func (d Date) Before(other Date) bool {
	return d.midnightUTC().Before(other.midnightUTC())
}

// After reports whether d follows other.
func (d Date) After(other Date) bool {
	return d.midnightUTC().After(other.midnightUTC())
}

func (d Date) midnightUTC() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}
