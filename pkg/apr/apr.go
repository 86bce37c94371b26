// Package apr solves the Annual Percentage Rate disclosure problem: the rate
// whose discounted payment stream present-values to the net amount actually
// disbursed (principal less upfront fees).
package apr

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/loanworks/loan-engine/pkg/constants"
	"github.com/loanworks/loan-engine/pkg/datetime"
	"github.com/loanworks/loan-engine/pkg/payment"
	"github.com/loanworks/loan-engine/pkg/rounding"
)

// ErrNoConvergence is returned when the bisection cannot produce a rate
// within tolerance: the root is not bracketed by [0, ceiling] or the
// iteration cap was hit. A misleading near-answer is never returned.
var ErrNoConvergence = errors.New("apr: failed to converge on a disclosure rate")

// Solve returns the annual rate (percent) at which periodicPayment paid over
// periods present-values to principal minus upfrontFees. With zero fees the
// result recovers the nominal contract rate within tolerance.
//
// No closed form exists for the general case, so the rate is found by
// bisection over [0, ceiling]. The loop carries both a bracket-width stop of
// 0.0001 percentage points and a hard iteration cap, so it terminates even
// for ill-conditioned inputs such as fees exceeding the principal.
func Solve(principal, periodicPayment decimal.Decimal, periods int, upfrontFees decimal.Decimal, frequency datetime.Frequency, rc rounding.Config) (decimal.Decimal, error) {
	if periods <= 0 {
		return decimal.Zero, fmt.Errorf("apr: periods must be positive, got %d", periods)
	}

	netDisbursed := principal.Sub(upfrontFees)
	if !netDisbursed.IsPositive() {
		return decimal.Zero, fmt.Errorf("apr: fees %s leave no positive disbursement from principal %s: %w",
			upfrontFees, principal, ErrNoConvergence)
	}

	ppy := datetime.PeriodsPerYear(frequency)
	residual := func(annualPercent decimal.Decimal) decimal.Decimal {
		r := annualPercent.
			Div(decimal.NewFromInt(constants.PercentageMultiplier)).
			Div(decimal.NewFromInt(int64(ppy)))
		return rc.Apply(presentValue(periodicPayment, r, periods)).Sub(netDisbursed)
	}

	lo := decimal.Zero
	hi := decimal.NewFromInt(constants.RateCeilingPercent)
	tolerance := decimal.NewFromFloat(constants.APRTolerancePercent)

	// Present value decreases in rate, so the residual must run from
	// non-negative at 0% to non-positive at the ceiling for a root to exist.
	if residual(lo).IsNegative() || residual(hi).IsPositive() {
		return decimal.Zero, ErrNoConvergence
	}

	for i := 0; i < constants.APRMaxIterations; i++ {
		mid := lo.Add(hi).Div(decimal.NewFromInt(2))
		if hi.Sub(lo).LessThanOrEqual(tolerance) {
			return mid, nil
		}
		if residual(mid).IsNegative() {
			hi = mid
		} else {
			lo = mid
		}
	}
	return decimal.Zero, ErrNoConvergence
}

// presentValue discounts a level payment stream of n payments at per-period
// rate r. A zero rate degenerates to the undiscounted sum.
func presentValue(periodicPayment, r decimal.Decimal, n int) decimal.Decimal {
	if r.IsZero() {
		return periodicPayment.Mul(decimal.NewFromInt(int64(n)))
	}
	pow := payment.CompoundFactor(r, n)
	return periodicPayment.Mul(pow.Sub(decimal.NewFromInt(1))).Div(r.Mul(pow))
}
