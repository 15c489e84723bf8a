/*
schedule.go - The two amortization recurrences

BASELINE:
  Each month:
    interest  = balance * r
    principal = payment - interest
    extra     = ExtraPayment, only while balance > ExtraPayment
    balance  -= principal + extra
  The row is shown when the month falls on the reporting cadence. The month
  that retires the loan is always shown, with balance clamped to zero and
  principal/extra capped to what was outstanding (so the last payment is
  usually smaller than the flat payment).

ACCELERATED:
  Only the extra payment retires principal:
    paid     = ExtraPayment while balance > ExtraPayment, else the residual
    balance -= paid
  Interest is computed on the running balance for display only. Every month
  is shown. With no extra payment the balance never moves and the schedule
  runs for the full period count.

TERMINATION:
  A balance within SettlementTolerance of zero counts as retired. Otherwise
  the schedule stops after PeriodCount months with a non-zero balance.

SEE ALSO:
  - payment.go: ComputePayment
  - summary.go: Summarize, CompareSavings
*/
package amortization

import (
	"github.com/shopspring/decimal"
)

// SettlementTolerance is the largest remaining balance treated as paid off.
var SettlementTolerance = decimal.New(1, -6)

func settled(balance decimal.Decimal) bool {
	return balance.LessThanOrEqual(SettlementTolerance)
}

// Result is both schedules computed from one parameter set.
type Result struct {
	Params      LoanParameters
	Payment     decimal.Decimal
	Baseline    Schedule
	Accelerated Schedule
}

// Generator runs the recurrences for one validated parameter set.
// It holds no state between calls.
type Generator struct {
	params LoanParameters
}

// NewGenerator creates a generator. Params are validated by Generate,
// Baseline and Accelerated.
func NewGenerator(params LoanParameters) *Generator {
	return &Generator{params: params}
}

// Payment validates the parameters and computes the flat payment.
func (g *Generator) Payment() (decimal.Decimal, error) {
	if err := g.params.Validate(); err != nil {
		return decimal.Zero, err
	}
	return ComputePayment(g.params.Principal, g.params.AnnualRate, g.params.PeriodCount())
}

// Generate computes the payment and both schedules. No partial result is
// returned on error.
func (g *Generator) Generate() (Result, error) {
	payment, err := g.Payment()
	if err != nil {
		return Result{}, err
	}
	return Result{
		Params:      g.params,
		Payment:     payment,
		Baseline:    baselineSchedule(g.params, payment, g.params.CadenceStep()),
		Accelerated: acceleratedSchedule(g.params),
	}, nil
}

// Baseline computes the contractual schedule, filtered by cadence.
func (g *Generator) Baseline() (Schedule, error) {
	payment, err := g.Payment()
	if err != nil {
		return Schedule{}, err
	}
	return baselineSchedule(g.params, payment, g.params.CadenceStep()), nil
}

// Accelerated computes the extra-payment-only schedule.
func (g *Generator) Accelerated() (Schedule, error) {
	if err := g.params.Validate(); err != nil {
		return Schedule{}, err
	}
	return acceleratedSchedule(g.params), nil
}

// =============================================================================
// RECURRENCES
// =============================================================================

// baselineSchedule emits months where i % step == 0, plus the terminal month.
// step == 1 emits every month.
func baselineSchedule(p LoanParameters, payment decimal.Decimal, step int) Schedule {
	n := p.PeriodCount()
	r := p.PeriodicRate()
	extra := p.ExtraPayment

	s := Schedule{Kind: ScheduleBaseline, Rows: make([]LedgerRow, 0, n/step+1)}
	balance := p.Principal

	for i := 0; i < n; i++ {
		interest := balance.Mul(r).Round(computeScale)
		principal := payment.Sub(interest)
		applied := decimal.Zero
		if extra.IsPositive() && balance.GreaterThan(extra) {
			applied = extra
		}

		remaining := balance.Sub(principal).Sub(applied)
		if settled(remaining) {
			applied = decimal.Min(applied, decimal.Max(balance.Sub(principal), decimal.Zero))
			principal = balance.Sub(applied)
			s.append(LedgerRow{
				Period:    i + 1,
				Date:      p.StartDate.AddMonths(i),
				Payment:   interest.Add(principal),
				Interest:  interest,
				Principal: principal,
				Extra:     applied,
				Balance:   decimal.Zero,
			})
			break
		}

		balance = remaining
		if i%step != 0 {
			continue
		}
		s.append(LedgerRow{
			Period:    i + 1,
			Date:      p.StartDate.AddMonths(i),
			Payment:   payment,
			Interest:  interest,
			Principal: principal,
			Extra:     applied,
			Balance:   balance,
		})
	}
	return s
}

func acceleratedSchedule(p LoanParameters) Schedule {
	n := p.PeriodCount()
	r := p.PeriodicRate()
	extra := p.ExtraPayment

	s := Schedule{Kind: ScheduleAccelerated, Rows: make([]LedgerRow, 0, n)}
	balance := p.Principal

	for i := 0; i < n; i++ {
		interest := balance.Mul(r).Round(computeScale)
		paid := balance
		if balance.GreaterThan(extra) {
			paid = extra
		}

		remaining := balance.Sub(paid)
		if settled(remaining) {
			// the residual, not the nominal extra payment, closes the loan
			s.append(LedgerRow{
				Period:    i + 1,
				Date:      p.StartDate.AddMonths(i),
				Payment:   balance,
				Interest:  interest,
				Principal: balance,
				Extra:     balance,
				Balance:   decimal.Zero,
			})
			break
		}

		balance = remaining
		s.append(LedgerRow{
			Period:    i + 1,
			Date:      p.StartDate.AddMonths(i),
			Payment:   paid,
			Interest:  interest,
			Principal: paid,
			Extra:     paid,
			Balance:   balance,
		})
	}
	return s
}
