// Package schedule generates and represents full amortization schedules.
package schedule

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/loanworks/loan-engine/pkg/loan"
)

// Record holds the values for a single scheduled payment.
type Record struct {
	PaymentNumber    int
	DueDate          time.Time
	Principal        decimal.Decimal
	Interest         decimal.Decimal
	TotalPayment     decimal.Decimal
	RemainingBalance decimal.Decimal
}

// Schedule is an ordered set of payment records plus whole-of-life
// aggregates. It is a read-only snapshot: mid-life events always rebuild a
// schedule from terms rather than mutating one in place.
type Schedule struct {
	Terms           loan.Terms
	Records         []Record
	TotalPrincipal  decimal.Decimal
	TotalInterest   decimal.Decimal
	TotalPayments   decimal.Decimal
	LastPaymentDate time.Time
}

// AnchorIndex returns the index of the latest record whose due date falls at
// or before asOf, or -1 when asOf precedes the first due date. Used to
// anchor prepayments and payoff quotes.
func (s Schedule) AnchorIndex(asOf time.Time) int {
	anchor := -1
	for i, rec := range s.Records {
		if rec.DueDate.After(asOf) {
			break
		}
		anchor = i
	}
	return anchor
}

// Recompute rebuilds the aggregate totals from the record set.
func (s *Schedule) Recompute() {
	s.TotalPrincipal = decimal.Zero
	s.TotalInterest = decimal.Zero
	s.TotalPayments = decimal.Zero
	for _, rec := range s.Records {
		s.TotalPrincipal = s.TotalPrincipal.Add(rec.Principal)
		s.TotalInterest = s.TotalInterest.Add(rec.Interest)
		s.TotalPayments = s.TotalPayments.Add(rec.TotalPayment)
	}
	if len(s.Records) > 0 {
		s.LastPaymentDate = s.Records[len(s.Records)-1].DueDate
	}
}
