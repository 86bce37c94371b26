// Package daycount implements the day-count conventions used for interest
// accrual. The semantics are regulatory-sensitive; see the comments on each
// convention before changing anything here.
package daycount

import (
	"fmt"
	"time"
)

// Convention identifies a day-count convention.
type Convention string

const (
	// Thirty360 treats every month as 30 days with a fixed 360-day year; a
	// start or end on the 31st is counted as the 30th.
	Thirty360 Convention = "30/360"

	// Actual360 counts actual calendar days over a fixed 360-day year.
	Actual360 Convention = "actual/360"

	// Actual365 counts actual calendar days over a fixed 365-day year.
	Actual365 Convention = "actual/365"

	// ActualActual counts actual calendar days over 365 or 366 depending on
	// whether the span falls in a leap year.
	ActualActual Convention = "actual/actual"
)

// Conventions lists every supported convention.
var Conventions = []Convention{Thirty360, Actual360, Actual365, ActualActual}

// Parse converts a config string into a Convention.
func Parse(s string) (Convention, error) {
	switch Convention(s) {
	case Thirty360, Actual360, Actual365, ActualActual:
		return Convention(s), nil
	}
	return "", fmt.Errorf("unsupported day count convention %q", s)
}

// Days returns the number of accrual days between start and end under the
// given convention. The end date is exclusive of the counted span, matching
// calendar-difference semantics.
func Days(start, end time.Time, convention Convention) int {
	if convention == Thirty360 {
		y1, m1, d1 := start.Date()
		y2, m2, d2 := end.Date()
		if d1 == 31 {
			d1 = 30
		}
		if d2 == 31 {
			d2 = 30
		}
		return (y2-y1)*360 + (int(m2)-int(m1))*30 + (d2 - d1)
	}
	return CalendarDays(start, end)
}

// Denominator returns the days-per-year divisor for the convention. The year
// argument only matters for actual/actual, where a leap year yields 366.
func Denominator(convention Convention, year int) int {
	switch convention {
	case Thirty360, Actual360:
		return 360
	case ActualActual:
		if IsLeapYear(year) {
			return 366
		}
		return 365
	default:
		return 365
	}
}

// IsLeapYear reports whether the given calendar year is a leap year.
func IsLeapYear(year int) bool {
	if year%4 != 0 {
		return false
	}
	if year%100 != 0 {
		return true
	}
	return year%400 == 0
}

// CalendarDays returns the whole calendar days between start and end,
// ignoring the time-of-day components.
func CalendarDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours() / 24)
}
