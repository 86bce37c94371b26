// Package events applies mid-life loan events — prepayments, modifications,
// payoff quotes — to schedules and terms. Every applier returns a fresh
// value; inputs are never mutated.
package events

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/loanworks/loan-engine/pkg/datetime"
	"github.com/loanworks/loan-engine/pkg/interest"
	"github.com/loanworks/loan-engine/pkg/loan"
	"github.com/loanworks/loan-engine/pkg/payment"
	"github.com/loanworks/loan-engine/pkg/schedule"
)

// Prepayment is an unscheduled payment received mid-life.
type Prepayment struct {
	Amount           decimal.Decimal
	Date             time.Time
	ApplyToPrincipal bool
}

// ApplyPrepayment recalculates a schedule for a prepayment.
//
// The prepayment anchors at the latest record due at or before its date.
// When the amount covers the remaining balance there, the loan retires: the
// result truncates at the anchor with the prepayment date as the last
// payment date and totals recomputed from the surviving records. Otherwise
// the balance drops by the amount and every period after the anchor is
// regenerated from the reduced balance at the original payment, which pays
// the loan off in fewer periods.
//
// A prepayment dated at or after the final due date, or one not applied to
// principal, leaves the schedule unchanged.
func ApplyPrepayment(s schedule.Schedule, evt Prepayment) schedule.Schedule {
	if len(s.Records) == 0 || !evt.ApplyToPrincipal {
		return s
	}
	finalDue := s.Records[len(s.Records)-1].DueDate
	if !evt.Date.Before(finalDue) {
		return s
	}

	terms := s.Terms
	anchor := s.AnchorIndex(evt.Date)

	balance := terms.Principal
	periodStart := terms.StartDate
	nextDue := terms.FirstDueDate()
	if anchor >= 0 {
		balance = s.Records[anchor].RemainingBalance
		periodStart = s.Records[anchor].DueDate
		nextDue = datetime.NextPaymentDate(periodStart, terms.PaymentFrequency)
	}

	out := schedule.Schedule{Terms: terms}
	out.Records = append(out.Records, s.Records[:anchor+1]...)

	if evt.Amount.GreaterThanOrEqual(balance) {
		// Fully retired. The overage beyond the balance is not part of the
		// schedule's totals.
		out.Recompute()
		out.LastPaymentDate = evt.Date
		return out
	}

	balance = balance.Sub(evt.Amount)
	periodicPayment := payment.Calculate(terms).PeriodicPayment
	remaining := terms.NumberOfPayments() - (anchor + 1)

	for i := 0; i < remaining && balance.IsPositive(); i++ {
		accrued := interest.Calculate(interest.Input{
			Principal:  balance,
			AnnualRate: terms.AnnualInterestRate,
			StartDate:  periodStart,
			EndDate:    nextDue,
			Convention: terms.DayCountConvention,
			Rounding:   terms.Rounding,
		})

		var principalPart decimal.Decimal
		switch {
		case terms.InterestType == loan.Simple && i < remaining-1:
			principalPart = decimal.Zero
		case terms.InterestType == loan.Simple:
			principalPart = balance
		default:
			principalPart = periodicPayment.Sub(accrued.Amount)
			// Same floor as the generator: interest beyond the level payment
			// never grows the balance.
			if principalPart.IsNegative() {
				principalPart = decimal.Zero
			}
			if i == remaining-1 || principalPart.GreaterThanOrEqual(balance) {
				principalPart = balance
			}
		}

		balance = balance.Sub(principalPart)
		out.Records = append(out.Records, schedule.Record{
			PaymentNumber:    anchor + 2 + i,
			DueDate:          nextDue,
			Principal:        principalPart,
			Interest:         accrued.Amount,
			TotalPayment:     principalPart.Add(accrued.Amount),
			RemainingBalance: balance,
		})

		periodStart = nextDue
		nextDue = datetime.NextPaymentDate(nextDue, terms.PaymentFrequency)
	}

	out.Recompute()
	return out
}
