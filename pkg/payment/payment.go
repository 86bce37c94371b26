// Package payment solves the level payment amount for a set of loan terms.
package payment

import (
	"github.com/shopspring/decimal"

	"github.com/loanworks/loan-engine/pkg/loan"
)

// Result holds the solved payment and the whole-of-life totals implied by it.
// Totals are derived from the unrounded payment so that per-period rounding
// drift does not leak into disclosure figures.
type Result struct {
	PeriodicPayment decimal.Decimal
	TotalInterest   decimal.Decimal
	TotalPayments   decimal.Decimal
}

// Calculate solves the periodic payment for the given terms.
//
// Amortized terms use the closed-form level-payment annuity on the full
// principal. Balloon terms amortize only (principal - balloon) while the
// payment's interest component covers the full outstanding balance, so the
// balloon portion contributes balloon * periodicRate to every payment.
// Simple (interest-only) terms pay just the period interest; all principal
// falls due with the final payment.
func Calculate(terms loan.Terms) Result {
	n := terms.NumberOfPayments()
	rate := terms.PeriodicRate()
	nDec := decimal.NewFromInt(int64(n))

	var raw decimal.Decimal
	var totalPayments decimal.Decimal

	switch terms.InterestType {
	case loan.Simple:
		raw = terms.Principal.Mul(rate)
		totalPayments = raw.Mul(nDec).Add(terms.Principal)
	case loan.Balloon:
		base := terms.Principal.Sub(terms.BalloonPayment)
		raw = Annuity(base, rate, n).Add(terms.BalloonPayment.Mul(rate))
		totalPayments = raw.Mul(nDec).Add(terms.BalloonPayment)
	default:
		raw = Annuity(terms.Principal, rate, n)
		totalPayments = raw.Mul(nDec)
	}

	rc := terms.Rounding
	return Result{
		PeriodicPayment: rc.Apply(raw),
		TotalInterest:   rc.Apply(totalPayments.Sub(terms.Principal)),
		TotalPayments:   rc.Apply(totalPayments),
	}
}

// Annuity returns the unrounded level payment that amortizes principal over
// n periods at the per-period rate:
//
//	P * r * (1+r)^n / ((1+r)^n - 1)
//
// A zero rate degenerates to an even split, bypassing the formula's division
// by zero.
func Annuity(principal, periodicRate decimal.Decimal, n int) decimal.Decimal {
	if n <= 0 || principal.IsZero() {
		return decimal.Zero
	}
	if periodicRate.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(n)))
	}

	pow := CompoundFactor(periodicRate, n)
	return principal.Mul(periodicRate).Mul(pow).Div(pow.Sub(decimal.NewFromInt(1)))
}

// CompoundFactor returns (1+r)^n.
func CompoundFactor(periodicRate decimal.Decimal, n int) decimal.Decimal {
	return decimal.NewFromInt(1).Add(periodicRate).Pow(decimal.NewFromInt(int64(n)))
}
