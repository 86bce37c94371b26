package events

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/loanworks/loan-engine/pkg/interest"
	"github.com/loanworks/loan-engine/pkg/schedule"
)

// PayoffAmount quotes the amount required to fully retire the loan as of a
// date. On a due date the quote is that record's remaining balance, with
// accrued interest exactly zero by construction. Between due dates the quote
// starts from the latest balance at or before the date plus, when
// includeAccrued is set, per diem interest accrued since then. Before the
// first due date the quote starts from the contract principal and accrues
// from the start date.
func PayoffAmount(s schedule.Schedule, asOf time.Time, includeAccrued bool) decimal.Decimal {
	terms := s.Terms

	balance := terms.Principal
	since := terms.StartDate
	if anchor := s.AnchorIndex(asOf); anchor >= 0 {
		balance = s.Records[anchor].RemainingBalance
		since = s.Records[anchor].DueDate
	}

	if !includeAccrued {
		return balance
	}

	// A zero-length span accrues nothing, so a quote exactly on a due date
	// reduces to the scheduled balance.
	accrued := interest.Accrued(balance, terms.AnnualInterestRate,
		since, asOf, terms.DayCountConvention, terms.Rounding)
	return balance.Add(accrued)
}
