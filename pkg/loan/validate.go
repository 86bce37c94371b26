package loan

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/loanworks/loan-engine/pkg/constants"
	"github.com/loanworks/loan-engine/pkg/daycount"
	"github.com/loanworks/loan-engine/pkg/datetime"
)

// Validation error codes.
const (
	CodeInvalidValue     = "INVALID_VALUE"
	CodeOutOfRange       = "OUT_OF_RANGE"
	CodeInconsistentDate = "INCONSISTENT_DATE"
	CodeUnsupportedValue = "UNSUPPORTED_VALUE"
)

// ValidationError describes a single structural or business-rule violation
// in a Terms value. Validation failures are values, never panics or error
// returns.
type ValidationError struct {
	Field   string
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, e.Code)
}

// Validate checks terms against every structural rule and returns the
// complete list of violations; it never stops at the first one. A nil result
// means the terms are valid. Calculation functions assume valid terms;
// calling them on terms Validate rejects is undefined.
func Validate(terms Terms) []ValidationError {
	var errs []ValidationError

	if !terms.Principal.IsPositive() {
		errs = append(errs, ValidationError{
			Field:   "principal",
			Code:    CodeInvalidValue,
			Message: fmt.Sprintf("principal must be greater than zero, got %s", terms.Principal),
		})
	}

	// Zero-rate terms are rejected here per the contract rules, but every
	// calculator still computes them exactly (promotional 0% balances reach
	// the engine through modification events).
	ceiling := decimal.NewFromInt(constants.RateCeilingPercent)
	if !terms.AnnualInterestRate.IsPositive() {
		errs = append(errs, ValidationError{
			Field:   "annualInterestRate",
			Code:    CodeInvalidValue,
			Message: fmt.Sprintf("annual interest rate must be greater than zero, got %s", terms.AnnualInterestRate),
		})
	} else if terms.AnnualInterestRate.GreaterThan(ceiling) {
		errs = append(errs, ValidationError{
			Field:   "annualInterestRate",
			Code:    CodeOutOfRange,
			Message: fmt.Sprintf("annual interest rate must not exceed %s%%, got %s", ceiling, terms.AnnualInterestRate),
		})
	}

	if terms.TermMonths < 1 {
		errs = append(errs, ValidationError{
			Field:   "termMonths",
			Code:    CodeInvalidValue,
			Message: fmt.Sprintf("term must be at least one month, got %d", terms.TermMonths),
		})
	}

	if _, err := datetime.ParseFrequency(string(terms.PaymentFrequency)); err != nil {
		errs = append(errs, ValidationError{
			Field:   "paymentFrequency",
			Code:    CodeUnsupportedValue,
			Message: err.Error(),
		})
	}

	if _, err := daycount.Parse(string(terms.DayCountConvention)); err != nil {
		errs = append(errs, ValidationError{
			Field:   "dayCountConvention",
			Code:    CodeUnsupportedValue,
			Message: err.Error(),
		})
	}

	switch terms.InterestType {
	case Amortized, Simple, Balloon:
	default:
		errs = append(errs, ValidationError{
			Field:   "interestType",
			Code:    CodeUnsupportedValue,
			Message: fmt.Sprintf("unsupported interest type %q", terms.InterestType),
		})
	}

	if !terms.FirstPaymentDate.IsZero() && terms.FirstPaymentDate.Before(terms.StartDate) {
		errs = append(errs, ValidationError{
			Field:   "firstPaymentDate",
			Code:    CodeInconsistentDate,
			Message: fmt.Sprintf("first payment date %s precedes start date %s",
				terms.FirstPaymentDate.Format(datetime.DateLayout),
				terms.StartDate.Format(datetime.DateLayout)),
		})
	}

	if terms.BalloonPayment.IsPositive() && terms.BalloonPayment.GreaterThan(terms.Principal) {
		errs = append(errs, ValidationError{
			Field:   "balloonPayment",
			Code:    CodeOutOfRange,
			Message: fmt.Sprintf("balloon payment %s exceeds principal %s", terms.BalloonPayment, terms.Principal),
		})
	}
	if terms.BalloonPayment.IsNegative() {
		errs = append(errs, ValidationError{
			Field:   "balloonPayment",
			Code:    CodeInvalidValue,
			Message: fmt.Sprintf("balloon payment must not be negative, got %s", terms.BalloonPayment),
		})
	}

	return errs
}
