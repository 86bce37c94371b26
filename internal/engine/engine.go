// Package engine drives the calculation pipeline for every loan in a
// configuration: validate, solve the payment, generate the schedule, apply
// mid-life events, and answer payoff and APR queries.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/loanworks/loan-engine/internal/config"
	"github.com/loanworks/loan-engine/pkg/apr"
	"github.com/loanworks/loan-engine/pkg/events"
	"github.com/loanworks/loan-engine/pkg/loan"
	"github.com/loanworks/loan-engine/pkg/payment"
	"github.com/loanworks/loan-engine/pkg/schedule"
)

// Result holds everything computed for one configured loan.
type Result struct {
	Name             string
	Terms            loan.Terms
	ValidationErrors []loan.ValidationError
	Payment          payment.Result
	Schedule         schedule.Schedule
	APR              *decimal.Decimal
	Payoff           *decimal.Decimal
	PayoffDate       time.Time
	Notes            []string
}

// Run processes every loan in the configuration. Config-level parse failures
// abort the run; per-loan business-rule violations are collected on the
// result instead so one bad loan never hides the others.
func Run(logger *zap.Logger, conf config.Configuration) ([]Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	generator := schedule.NewGenerator(logger)
	results := make([]Result, 0, len(conf.Loans))

	for _, lc := range conf.Loans {
		result := Result{Name: lc.Name}

		terms, err := lc.Terms()
		if err != nil {
			return results, err
		}
		result.Terms = terms

		if errs := loan.Validate(terms); len(errs) > 0 {
			logger.Warn(fmt.Sprintf("loan %s failed validation with %d errors", lc.Name, len(errs)),
				zap.String("op", "engine.Run"),
			)
			result.ValidationErrors = errs
			results = append(results, result)
			continue
		}

		result.Payment = payment.Calculate(terms)
		result.Schedule = generator.Generate(terms)

		for _, pc := range lc.Prepayments {
			evt, err := pc.Event()
			if err != nil {
				return results, fmt.Errorf("loan %s: %w", lc.Name, err)
			}
			before := len(result.Schedule.Records)
			result.Schedule = events.ApplyPrepayment(result.Schedule, evt)
			logger.Debug(fmt.Sprintf("applied prepayment of %s on %s: %d -> %d periods",
				evt.Amount, pc.Date, before, len(result.Schedule.Records)),
				zap.String("op", "engine.Run"),
			)
		}

		if lc.Modification != nil {
			evt, err := lc.Modification.Event()
			if err != nil {
				return results, fmt.Errorf("loan %s: %w", lc.Name, err)
			}
			balance := events.PayoffAmount(result.Schedule, evt.EffectiveDate, false)
			modified := events.ApplyModification(terms, evt, balance)
			if errs := loan.Validate(modified); len(errs) > 0 {
				result.ValidationErrors = errs
				results = append(results, result)
				continue
			}
			result.Terms = modified
			result.Payment = payment.Calculate(modified)
			result.Schedule = generator.Generate(modified)
			result.Notes = append(result.Notes,
				fmt.Sprintf("modified effective %s from balance %s", lc.Modification.EffectiveDate, balance))
		}

		if lc.Payoff != nil {
			asOf, err := time.Parse(config.DateLayout, lc.Payoff.AsOfDate)
			if err != nil {
				return results, fmt.Errorf("loan %s: invalid payoff date %q: %w", lc.Name, lc.Payoff.AsOfDate, err)
			}
			amount := events.PayoffAmount(result.Schedule, asOf, lc.Payoff.IncludeAccruedInterest)
			result.Payoff = &amount
			result.PayoffDate = asOf
		}

		if lc.UpfrontFees != "" {
			fees, err := lc.Fees()
			if err != nil {
				return results, err
			}
			rate, err := apr.Solve(result.Terms.Principal, result.Payment.PeriodicPayment,
				result.Terms.NumberOfPayments(), fees, result.Terms.PaymentFrequency, result.Terms.Rounding)
			if errors.Is(err, apr.ErrNoConvergence) {
				// Never present a plausible-looking wrong disclosure rate.
				result.Notes = append(result.Notes, fmt.Sprintf("APR did not converge: %v", err))
			} else if err != nil {
				return results, fmt.Errorf("loan %s: %w", lc.Name, err)
			} else {
				result.APR = &rate
			}
		}

		results = append(results, result)
	}

	return results, nil
}
