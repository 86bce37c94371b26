// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/loanworks/loan-engine/pkg/constants"
	"github.com/loanworks/loan-engine/pkg/daycount"
	"github.com/loanworks/loan-engine/pkg/datetime"
	"github.com/loanworks/loan-engine/pkg/events"
	"github.com/loanworks/loan-engine/pkg/loan"
	"github.com/loanworks/loan-engine/pkg/rounding"
)

// DateLayout is the format expected for dates in config files.
const DateLayout = constants.DateLayout

// Configuration holds all configuration for the loan engine CLI.
type Configuration struct {
	Loans   []Loan
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Loan describes one loan to compute. Monetary and rate fields are strings
// so that exact decimal values survive the trip through YAML without any
// float rounding.
type Loan struct {
	Name               string
	Principal          string
	AnnualInterestRate string
	TermMonths         int
	StartDate          string
	PaymentFrequency   string
	InterestType       string
	DayCountConvention string
	FirstPaymentDate   string `yaml:"firstPaymentDate,omitempty"`
	BalloonPayment     string `yaml:"balloonPayment,omitempty"`
	Rounding           Rounding
	UpfrontFees        string `yaml:"upfrontFees,omitempty"`

	Prepayments  []Prepayment  `yaml:"prepayments,omitempty"`
	Modification *Modification `yaml:"modification,omitempty"`
	Payoff       *Payoff       `yaml:"payoff,omitempty"`
}

// Rounding selects the rounding policy for a loan.
type Rounding struct {
	Method string
	Places int32
}

// Prepayment describes an unscheduled payment event.
type Prepayment struct {
	Amount           string
	Date             string
	ApplyToPrincipal bool
}

// Modification describes a contract modification event.
type Modification struct {
	PrincipalAdjustment string `yaml:"principalAdjustment,omitempty"`
	NewRate             string `yaml:"newRate,omitempty"`
	NewTermMonths       *int   `yaml:"newTermMonths,omitempty"`
	EffectiveDate       string
}

// Payoff requests a payoff quote as of a date.
type Payoff struct {
	AsOfDate               string
	IncludeAccruedInterest bool
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// Terms converts the raw loan config into engine terms. Parse failures are
// reported as errors; business-rule checks are left to loan.Validate.
func (l Loan) Terms() (loan.Terms, error) {
	var terms loan.Terms
	var err error

	if terms.Principal, err = decimal.NewFromString(l.Principal); err != nil {
		return terms, fmt.Errorf("loan %s: invalid principal %q: %w", l.Name, l.Principal, err)
	}
	if terms.AnnualInterestRate, err = decimal.NewFromString(l.AnnualInterestRate); err != nil {
		return terms, fmt.Errorf("loan %s: invalid annual interest rate %q: %w", l.Name, l.AnnualInterestRate, err)
	}
	terms.TermMonths = l.TermMonths

	if terms.StartDate, err = time.Parse(DateLayout, l.StartDate); err != nil {
		return terms, fmt.Errorf("loan %s: invalid start date %q: %w", l.Name, l.StartDate, err)
	}
	if l.FirstPaymentDate != "" {
		if terms.FirstPaymentDate, err = time.Parse(DateLayout, l.FirstPaymentDate); err != nil {
			return terms, fmt.Errorf("loan %s: invalid first payment date %q: %w", l.Name, l.FirstPaymentDate, err)
		}
	}

	// Frequency, convention, and interest type stay raw here so that
	// loan.Validate can report unknown values as validation errors rather
	// than parse failures.
	terms.PaymentFrequency = datetime.Frequency(l.PaymentFrequency)
	terms.InterestType = loan.InterestType(l.InterestType)
	terms.DayCountConvention = daycount.Convention(l.DayCountConvention)

	if l.BalloonPayment != "" {
		if terms.BalloonPayment, err = decimal.NewFromString(l.BalloonPayment); err != nil {
			return terms, fmt.Errorf("loan %s: invalid balloon payment %q: %w", l.Name, l.BalloonPayment, err)
		}
	}

	terms.Rounding = rounding.Default()
	if l.Rounding.Method != "" {
		method, err := rounding.ParseMethod(l.Rounding.Method)
		if err != nil {
			return terms, fmt.Errorf("loan %s: %w", l.Name, err)
		}
		terms.Rounding.Method = method
	}
	if l.Rounding.Places > 0 {
		terms.Rounding.Places = l.Rounding.Places
	}

	return terms, nil
}

// Fees parses the optional upfront fees used for the APR disclosure.
func (l Loan) Fees() (decimal.Decimal, error) {
	if l.UpfrontFees == "" {
		return decimal.Zero, nil
	}
	fees, err := decimal.NewFromString(l.UpfrontFees)
	if err != nil {
		return decimal.Zero, fmt.Errorf("loan %s: invalid upfront fees %q: %w", l.Name, l.UpfrontFees, err)
	}
	return fees, nil
}

// Event converts a prepayment config entry into an engine event.
func (p Prepayment) Event() (events.Prepayment, error) {
	var evt events.Prepayment
	var err error

	if evt.Amount, err = decimal.NewFromString(p.Amount); err != nil {
		return evt, fmt.Errorf("invalid prepayment amount %q: %w", p.Amount, err)
	}
	if evt.Date, err = time.Parse(DateLayout, p.Date); err != nil {
		return evt, fmt.Errorf("invalid prepayment date %q: %w", p.Date, err)
	}
	evt.ApplyToPrincipal = p.ApplyToPrincipal
	return evt, nil
}

// Event converts a modification config entry into an engine event.
func (m Modification) Event() (events.Modification, error) {
	var evt events.Modification
	var err error

	if m.PrincipalAdjustment != "" {
		adj, err := decimal.NewFromString(m.PrincipalAdjustment)
		if err != nil {
			return evt, fmt.Errorf("invalid principal adjustment %q: %w", m.PrincipalAdjustment, err)
		}
		evt.PrincipalAdjustment = &adj
	}
	if m.NewRate != "" {
		rate, err := decimal.NewFromString(m.NewRate)
		if err != nil {
			return evt, fmt.Errorf("invalid new rate %q: %w", m.NewRate, err)
		}
		evt.NewRate = &rate
	}
	evt.NewTermMonths = m.NewTermMonths

	if evt.EffectiveDate, err = time.Parse(DateLayout, m.EffectiveDate); err != nil {
		return evt, fmt.Errorf("invalid effective date %q: %w", m.EffectiveDate, err)
	}
	return evt, nil
}
