// Package datetime provides date arithmetic and payment-date sequencing for
// installment loans.
package datetime

import (
	"fmt"
	"time"

	"github.com/loanworks/loan-engine/pkg/constants"
)

// DateLayout is the format expected in config files and is also the output
// date format.
const DateLayout = constants.DateLayout

// Frequency identifies how often payments fall due.
type Frequency string

const (
	Weekly       Frequency = "weekly"
	BiWeekly     Frequency = "bi-weekly"
	SemiMonthly  Frequency = "semi-monthly"
	Monthly      Frequency = "monthly"
	Quarterly    Frequency = "quarterly"
	SemiAnnually Frequency = "semi-annually"
	Annually     Frequency = "annually"
)

// Frequencies lists every supported payment frequency.
var Frequencies = []Frequency{
	Weekly, BiWeekly, SemiMonthly, Monthly, Quarterly, SemiAnnually, Annually,
}

// ParseFrequency converts a config string into a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	for _, f := range Frequencies {
		if Frequency(s) == f {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported payment frequency %q", s)
}

// PeriodsPerYear returns the number of payment periods in a year for the
// given frequency.
func PeriodsPerYear(frequency Frequency) int {
	switch frequency {
	case Weekly:
		return 52
	case BiWeekly:
		return 26
	case SemiMonthly:
		return 24
	case Quarterly:
		return 4
	case SemiAnnually:
		return 2
	case Annually:
		return 1
	default:
		return constants.MonthsPerYear
	}
}

// NumberOfPayments returns the total payment count for a term expressed in
// months. Sub-monthly frequencies scale the month count (bi-weekly and
// semi-monthly double it, weekly quadruples it) rather than counting exact
// calendar weeks; this approximation is kept for compatibility with existing
// disclosures.
func NumberOfPayments(termMonths int, frequency Frequency) int {
	var n int
	switch frequency {
	case Weekly:
		n = termMonths * 4
	case BiWeekly, SemiMonthly:
		n = termMonths * 2
	case Quarterly:
		n = termMonths / 3
	case SemiAnnually:
		n = termMonths / 6
	case Annually:
		n = termMonths / constants.MonthsPerYear
	default:
		n = termMonths
	}
	if n < 1 {
		n = 1
	}
	return n
}

// AddMonths adds n months while preserving end-of-month alignment: a source
// date on the last calendar day of its month lands on the last day of the
// target month (Jan 31 +1 = Feb 29 in a leap year, Feb 29 +1 = Mar 31), and
// a day-of-month with no counterpart in the target month clamps to the target
// month's last day instead of spilling into the following month.
func AddMonths(date time.Time, n int) time.Time {
	y, m, d := date.Date()
	lastSrc := daysInMonth(y, m)

	ty, tm := targetMonth(y, int(m), n)
	lastTgt := daysInMonth(ty, time.Month(tm))

	td := d
	if d == lastSrc || td > lastTgt {
		td = lastTgt
	}
	return time.Date(ty, time.Month(tm), td, 0, 0, 0, 0, date.Location())
}

// NextPaymentDate returns the due date that follows the given date under the
// payment frequency. Semi-monthly payments approximate half a month as 15
// days.
func NextPaymentDate(date time.Time, frequency Frequency) time.Time {
	switch frequency {
	case Weekly:
		return date.AddDate(0, 0, 7)
	case BiWeekly:
		return date.AddDate(0, 0, 14)
	case SemiMonthly:
		return date.AddDate(0, 0, 15)
	case Quarterly:
		return AddMonths(date, 3)
	case SemiAnnually:
		return AddMonths(date, 6)
	case Annually:
		return AddMonths(date, constants.MonthsPerYear)
	default:
		return AddMonths(date, 1)
	}
}

// MustParseDate parses a date string in DateLayout and panics on error. This
// is intended for use in tests where the date string is known to be valid.
func MustParseDate(dateStr string) time.Time {
	t, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// SameDate reports whether two timestamps fall on the same calendar day.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func targetMonth(year, month, n int) (int, int) {
	m := month - 1 + n
	y := year + m/constants.MonthsPerYear
	m = m % constants.MonthsPerYear
	if m < 0 {
		m += constants.MonthsPerYear
		y--
	}
	return y, m + 1
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
