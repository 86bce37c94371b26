package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanworks/loan-engine/internal/config"
	"github.com/loanworks/loan-engine/pkg/apr"
	"github.com/loanworks/loan-engine/pkg/loan"
)

func sampleLoan() config.Loan {
	return config.Loan{
		Name:               "sample",
		Principal:          "10000.00",
		AnnualInterestRate: "6",
		TermMonths:         12,
		StartDate:          "2024-01-01",
		PaymentFrequency:   "monthly",
		InterestType:       "amortized",
		DayCountConvention: "30/360",
	}
}

func TestRunBasicLoan(t *testing.T) {
	conf := config.Configuration{Loans: []config.Loan{sampleLoan()}}

	results, err := Run(nil, conf)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, "sample", r.Name)
	assert.Empty(t, r.ValidationErrors)
	assert.Equal(t, "860.66", r.Payment.PeriodicPayment.StringFixed(2))
	require.Len(t, r.Schedule.Records, 12)
	assert.True(t, r.Schedule.Records[11].RemainingBalance.IsZero())
	assert.Nil(t, r.APR)
	assert.Nil(t, r.Payoff)
}

func TestRunCollectsValidationErrors(t *testing.T) {
	bad := sampleLoan()
	bad.Name = "bad"
	bad.Principal = "-5"
	bad.PaymentFrequency = "fortnightly"

	conf := config.Configuration{Loans: []config.Loan{bad, sampleLoan()}}

	results, err := Run(nil, conf)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Len(t, results[0].ValidationErrors, 2)
	assert.Empty(t, results[0].Schedule.Records)

	// The bad loan does not stop the good one.
	assert.Empty(t, results[1].ValidationErrors)
	assert.Len(t, results[1].Schedule.Records, 12)
}

func TestRunParseFailureAborts(t *testing.T) {
	bad := sampleLoan()
	bad.Principal = "lots"

	_, err := Run(nil, config.Configuration{Loans: []config.Loan{bad}})
	assert.Error(t, err)
}

func TestRunPrepaymentShortensSchedule(t *testing.T) {
	lc := sampleLoan()
	lc.Principal = "100000.00"
	lc.TermMonths = 360
	lc.AnnualInterestRate = "5"
	lc.Prepayments = []config.Prepayment{
		{Amount: "20000.00", Date: "2026-01-01", ApplyToPrincipal: true},
	}

	results, err := Run(nil, config.Configuration{Loans: []config.Loan{lc}})
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Less(t, len(r.Schedule.Records), 360)
	last := r.Schedule.Records[len(r.Schedule.Records)-1]
	assert.True(t, last.RemainingBalance.IsZero())
}

func TestRunModificationRegeneratesSchedule(t *testing.T) {
	lc := sampleLoan()
	lc.Principal = "100000.00"
	lc.TermMonths = 360
	lc.AnnualInterestRate = "6"
	newTerm := 120
	lc.Modification = &config.Modification{
		NewRate:       "4",
		NewTermMonths: &newTerm,
		EffectiveDate: "2026-01-01",
	}

	results, err := Run(nil, config.Configuration{Loans: []config.Loan{lc}})
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Empty(t, r.ValidationErrors)
	require.Len(t, r.Schedule.Records, 120)
	assert.True(t, r.Terms.AnnualInterestRate.Equal(decimal.NewFromInt(4)))
	assert.Equal(t, 120, r.Terms.TermMonths)
	assert.Equal(t, "2026-01-01", r.Terms.StartDate.Format(config.DateLayout))
	// Modified principal is the outstanding balance at the effective date.
	assert.True(t, r.Terms.Principal.LessThan(decimal.NewFromInt(100000)))
	require.Len(t, r.Notes, 1)
	assert.Contains(t, r.Notes[0], "modified effective 2026-01-01")
}

func TestRunModificationFailingValidation(t *testing.T) {
	lc := sampleLoan()
	lc.Modification = &config.Modification{
		NewRate:       "250", // over the rate ceiling
		EffectiveDate: "2024-06-01",
	}

	results, err := Run(nil, config.Configuration{Loans: []config.Loan{lc}})
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	require.Len(t, r.ValidationErrors, 1)
	assert.Equal(t, "annualInterestRate", r.ValidationErrors[0].Field)
	assert.Equal(t, loan.CodeOutOfRange, r.ValidationErrors[0].Code)
	// The pre-modification schedule is kept on the result.
	assert.Len(t, r.Schedule.Records, 12)
}

func TestRunPayoffQuote(t *testing.T) {
	lc := sampleLoan()
	lc.Payoff = &config.Payoff{AsOfDate: "2024-07-01", IncludeAccruedInterest: false}

	results, err := Run(nil, config.Configuration{Loans: []config.Loan{lc}})
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	require.NotNil(t, r.Payoff)
	assert.Equal(t, "2024-07-01", r.PayoffDate.Format(config.DateLayout))
	// Quote on a due date equals the remaining balance after that payment.
	assert.True(t, r.Payoff.Equal(r.Schedule.Records[5].RemainingBalance))
}

func TestRunAPR(t *testing.T) {
	lc := sampleLoan()
	lc.UpfrontFees = "200.00"

	results, err := Run(nil, config.Configuration{Loans: []config.Loan{lc}})
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	require.NotNil(t, r.APR)
	// Fees push the disclosure rate above the note rate.
	assert.True(t, r.APR.GreaterThan(decimal.NewFromInt(6)))
	assert.True(t, r.APR.LessThan(decimal.NewFromInt(15)))
}

func TestRunAPRNoConvergence(t *testing.T) {
	lc := sampleLoan()
	lc.UpfrontFees = "10000.00" // fees swallow the whole principal

	results, err := Run(nil, config.Configuration{Loans: []config.Loan{lc}})
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Nil(t, r.APR)
	require.Len(t, r.Notes, 1)
	assert.Contains(t, r.Notes[0], apr.ErrNoConvergence.Error())
}
