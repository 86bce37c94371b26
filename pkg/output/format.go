// Package output provides utilities for formatting and displaying engine
// results. Formatting is presentation-only: values are exact decimals until
// the moment they are printed.
package output

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/loanworks/loan-engine/internal/engine"
	"github.com/loanworks/loan-engine/pkg/constants"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(results []engine.Result) {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		fmt.Printf("--- Results for loan %s ---\n", result.Name)

		if len(result.ValidationErrors) > 0 {
			for _, verr := range result.ValidationErrors {
				fmt.Printf("invalid: %s\n", verr)
			}
			continue
		}

		_, _ = p.Printf("Periodic payment: $%.2f | Total interest: $%.2f | Total payments: $%.2f\n",
			result.Payment.PeriodicPayment.InexactFloat64(),
			result.Payment.TotalInterest.InexactFloat64(),
			result.Payment.TotalPayments.InexactFloat64())
		if result.APR != nil {
			fmt.Printf("APR: %s%%\n", result.APR.StringFixed(4))
		}
		if result.Payoff != nil {
			_, _ = p.Printf("Payoff as of %s: $%.2f\n",
				result.PayoffDate.Format(constants.DateLayout), result.Payoff.InexactFloat64())
		}
		for _, note := range result.Notes {
			fmt.Printf("Note: %s\n", note)
		}

		fmt.Printf("  # | Due date   | Principal    | Interest     | Payment      | Balance\n")
		fmt.Printf("___ | __________ | ____________ | ____________ | ____________ | ____________\n")
		for _, rec := range result.Schedule.Records {
			_, _ = p.Printf("%3d | %s | $%12.2f | $%12.2f | $%12.2f | $%12.2f\n",
				rec.PaymentNumber,
				rec.DueDate.Format(constants.DateLayout),
				rec.Principal.InexactFloat64(),
				rec.Interest.InexactFloat64(),
				rec.TotalPayment.InexactFloat64(),
				rec.RemainingBalance.InexactFloat64())
		}
		if i < len(results)-1 {
			fmt.Printf("\n")
		}
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results []engine.Result) {
	fmt.Printf(`"loan","payment number","due date","principal","interest","payment","remaining balance"`)
	fmt.Printf("\n")
	for _, result := range results {
		if len(result.ValidationErrors) > 0 {
			continue
		}
		places := result.Terms.Rounding.Places
		for _, rec := range result.Schedule.Records {
			fmt.Printf(`"%s","%d","%s","%s","%s","%s","%s"`,
				result.Name,
				rec.PaymentNumber,
				rec.DueDate.Format(constants.DateLayout),
				rec.Principal.StringFixed(places),
				rec.Interest.StringFixed(places),
				rec.TotalPayment.StringFixed(places),
				rec.RemainingBalance.StringFixed(places))
			fmt.Printf("\n")
		}
	}
}
