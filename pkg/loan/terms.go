// Package loan defines the immutable contract description of an installment
// loan and its structural validation rules.
package loan

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/loanworks/loan-engine/pkg/daycount"
	"github.com/loanworks/loan-engine/pkg/datetime"
	"github.com/loanworks/loan-engine/pkg/rounding"
)

// InterestType identifies how interest and principal are scheduled.
type InterestType string

const (
	// Amortized loans pay a level payment covering interest plus principal.
	Amortized InterestType = "amortized"
	// Simple loans pay interest only until the final period, when all
	// principal falls due.
	Simple InterestType = "simple"
	// Balloon loans amortize only part of the principal; the balloon
	// remainder is due with the final payment.
	Balloon InterestType = "balloon"
)

// InterestTypes lists every supported interest type.
var InterestTypes = []InterestType{Amortized, Simple, Balloon}

// Terms describes a loan contract. A Terms value is constructed once per
// calculation and never mutated; mid-life events produce a new Terms.
type Terms struct {
	Principal          decimal.Decimal
	AnnualInterestRate decimal.Decimal // percent, e.g. 4.5 for 4.5%
	TermMonths         int
	StartDate          time.Time
	PaymentFrequency   datetime.Frequency
	InterestType       InterestType
	DayCountConvention daycount.Convention

	// FirstPaymentDate, when set, overrides the first due date; a later
	// first payment lengthens the first accrual period.
	FirstPaymentDate time.Time

	// BalloonPayment is the non-amortizing portion for balloon loans.
	BalloonPayment decimal.Decimal

	Rounding rounding.Config
}

// NumberOfPayments returns the total payment count implied by the term and
// frequency.
func (t Terms) NumberOfPayments() int {
	return datetime.NumberOfPayments(t.TermMonths, t.PaymentFrequency)
}

// PeriodicRate returns the per-period interest rate as a decimal fraction
// (annual percent divided by 100 and by periods per year).
func (t Terms) PeriodicRate() decimal.Decimal {
	return t.AnnualInterestRate.
		Div(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(datetime.PeriodsPerYear(t.PaymentFrequency))))
}

// FirstDueDate returns the explicit first payment date when configured, else
// one standard period after the start date.
func (t Terms) FirstDueDate() time.Time {
	if !t.FirstPaymentDate.IsZero() {
		return t.FirstPaymentDate
	}
	return datetime.NextPaymentDate(t.StartDate, t.PaymentFrequency)
}
