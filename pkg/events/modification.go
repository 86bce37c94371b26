package events

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/loanworks/loan-engine/pkg/loan"
)

// Modification describes a mid-life change to a loan contract. Nil fields
// carry the existing value forward.
type Modification struct {
	PrincipalAdjustment *decimal.Decimal
	NewRate             *decimal.Decimal
	NewTermMonths       *int
	EffectiveDate       time.Time
}

// ApplyModification derives new terms from a modification evaluated against
// the caller-supplied current balance. The new principal is that balance
// plus any signed adjustment, and the clock restarts at the effective date.
// No schedule is produced here; the caller re-runs the schedule generator on
// the returned terms.
func ApplyModification(terms loan.Terms, evt Modification, currentBalance decimal.Decimal) loan.Terms {
	out := terms

	out.Principal = currentBalance
	if evt.PrincipalAdjustment != nil {
		out.Principal = currentBalance.Add(*evt.PrincipalAdjustment)
	}
	if evt.NewRate != nil {
		out.AnnualInterestRate = *evt.NewRate
	}
	if evt.NewTermMonths != nil {
		out.TermMonths = *evt.NewTermMonths
	}
	out.StartDate = evt.EffectiveDate

	// The original first-payment override belongs to the old clock; the
	// modified loan derives its first due date from the effective date.
	out.FirstPaymentDate = time.Time{}

	return out
}
