// Package dates handles calendar-day values as used throughout the engine.
// A day is an ISO "2006-01-02" string already localized by the caller; all
// arithmetic here is timezone-agnostic and works on UTC midnights.
package dates

import (
	"fmt"
	"time"
)

// Layout is the wire format for calendar days
const Layout = "2006-01-02"

// Parse parses a calendar-day string, rejecting anything that is not a valid day
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// Format renders t as a calendar-day string
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Today returns the current calendar day in UTC. Callers that track days in a
// user's timezone should pass their own reference day instead.
func Today() time.Time {
	return Truncate(time.Now().UTC())
}

// Truncate drops the time-of-day component
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays returns the day n days after t (n may be negative)
func AddDays(t time.Time, n int) time.Time {
	return Truncate(t).AddDate(0, 0, n)
}

// AddMonths returns the day n months after t, clamping the day-of-month to the
// last day of the target month. Jan 31 + 1 month is Feb 28 (or 29), never Mar 3.
func AddMonths(t time.Time, n int) time.Time {
	t = Truncate(t)
	year, month, day := t.Date()

	// Normalize the target month first, then clamp the day against it.
	// time.AddDate alone would overflow Jan 31 + 1 month into March.
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	last := first.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from a to b (negative if b is earlier)
func DaysBetween(a, b time.Time) int {
	return int(Truncate(b).Sub(Truncate(a)).Hours() / 24)
}
