// Package interest implements the point-in-time interest primitive shared by
// the schedule generator and the payoff calculator.
package interest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/loanworks/loan-engine/pkg/constants"
	"github.com/loanworks/loan-engine/pkg/daycount"
	"github.com/loanworks/loan-engine/pkg/rounding"
)

// Input describes one accrual computation.
type Input struct {
	Principal  decimal.Decimal
	AnnualRate decimal.Decimal // percent
	StartDate  time.Time
	EndDate    time.Time
	Convention daycount.Convention
	Rounding   rounding.Config
}

// Result is the accrued interest with the day count that produced it.
type Result struct {
	Amount decimal.Decimal
	Days   int
}

// Calculate returns the interest accrued between the input dates under the
// day-count convention, rounded per the rounding config:
//
//	amount = principal * (annualRate/100) * days / denominator
//
// A zero-length span yields a zero result without consulting the day-count
// routine.
func Calculate(in Input) Result {
	if in.StartDate.Equal(in.EndDate) {
		return Result{Amount: decimal.Zero.Round(in.Rounding.Places)}
	}

	days := daycount.Days(in.StartDate, in.EndDate, in.Convention)
	denominator := daycount.Denominator(in.Convention, in.StartDate.Year())

	amount := in.Principal.
		Mul(in.AnnualRate).
		Div(decimal.NewFromInt(constants.PercentageMultiplier)).
		Mul(decimal.NewFromInt(int64(days))).
		Div(decimal.NewFromInt(int64(denominator)))

	return Result{
		Amount: in.Rounding.Apply(amount),
		Days:   days,
	}
}

// Accrued is the same primitive specialized for interest elapsed since a
// reference event, such as the last scheduled payment before a payoff.
func Accrued(balance, annualRate decimal.Decimal, since, asOf time.Time, convention daycount.Convention, rc rounding.Config) decimal.Decimal {
	return Calculate(Input{
		Principal:  balance,
		AnnualRate: annualRate,
		StartDate:  since,
		EndDate:    asOf,
		Convention: convention,
		Rounding:   rc,
	}).Amount
}
