package schedule

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/loanworks/loan-engine/pkg/datetime"
	"github.com/loanworks/loan-engine/pkg/interest"
	"github.com/loanworks/loan-engine/pkg/loan"
	"github.com/loanworks/loan-engine/pkg/payment"
)

// Generator produces amortization schedules. It holds no calculation state;
// the logger is the only collaborator.
type Generator struct {
	logger *zap.Logger
}

// NewGenerator creates a generator instance.
func NewGenerator(logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{logger: logger}
}

// Generate builds the complete schedule for the given terms.
//
// Each period accrues interest over its actual date span through the
// interest primitive, so a first payment date later than one standard period
// after the start date yields a longer, more expensive first period. The
// final period's principal is clamped to the remaining balance, absorbing
// per-period rounding drift so the balance lands on exactly zero and the
// principal column sums to the contract principal.
func (g *Generator) Generate(terms loan.Terms) Schedule {
	n := terms.NumberOfPayments()
	periodicPayment := payment.Calculate(terms).PeriodicPayment

	g.logger.Debug(fmt.Sprintf("generating %d-period schedule with payment %s", n, periodicPayment),
		zap.String("op", "schedule.Generate"),
	)

	s := Schedule{
		Terms:   terms,
		Records: make([]Record, 0, n),
	}

	balance := terms.Principal
	periodStart := terms.StartDate
	dueDate := terms.FirstDueDate()

	for number := 1; number <= n; number++ {
		accrued := interest.Calculate(interest.Input{
			Principal:  balance,
			AnnualRate: terms.AnnualInterestRate,
			StartDate:  periodStart,
			EndDate:    dueDate,
			Convention: terms.DayCountConvention,
			Rounding:   terms.Rounding,
		})

		var principalPart decimal.Decimal
		switch {
		case number == n:
			// Final period: retire whatever is left, balloon included.
			principalPart = balance
		case terms.InterestType == loan.Simple:
			principalPart = decimal.Zero
		default:
			principalPart = periodicPayment.Sub(accrued.Amount)
			// A long actual-day period at a high rate can accrue more than
			// the level payment. The shortfall is billed as interest that
			// period; the balance never rises.
			if principalPart.IsNegative() {
				principalPart = decimal.Zero
			}
			if principalPart.GreaterThan(balance) {
				principalPart = balance
			}
		}

		balance = balance.Sub(principalPart)

		rec := Record{
			PaymentNumber:    number,
			DueDate:          dueDate,
			Principal:        principalPart,
			Interest:         accrued.Amount,
			TotalPayment:     principalPart.Add(accrued.Amount),
			RemainingBalance: balance,
		}
		s.Records = append(s.Records, rec)

		periodStart = dueDate
		dueDate = datetime.NextPaymentDate(dueDate, terms.PaymentFrequency)
	}

	s.Recompute()
	return s
}
