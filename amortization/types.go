/*
Package amortization computes fixed-payment loan amortization schedules.

PURPOSE:
  Turns a handful of loan parameters into two ordered ledgers:
  - the baseline (contractual) schedule, with an optional recurring extra
    payment applied on top of the flat payment
  - the accelerated schedule, where only the extra payment retires principal

KEY CONCEPTS IN THIS FILE (types.go):
  - LoanParameters: validated input to every computation
  - LedgerRow: one immutable row of a schedule (seven fields, fixed order)
  - Schedule: append-only, chronological sequence of rows

COMPOUNDING vs CADENCE:
  Interest always compounds monthly (annual rate / 12). PaymentsPerYear only
  controls which computed months appear as rows in the baseline schedule:
  12 shows every month, 4 shows every third month, and so on. Months that
  are not shown are still computed; their interest and principal are not
  rolled into the next visible row.

PRECISION:
  All money values are decimal.Decimal. Nothing is rounded while computing;
  rendering rounds to cents.

USAGE:
  params, err := amortization.NewLoanParameters(
      decimal.NewFromInt(100000), decimal.NewFromInt(6), 30, 12,
      amortization.NewDate(2025, time.January, 1), decimal.Zero)
  result, err := amortization.NewGenerator(params).Generate()

SEE ALSO:
  - payment.go: ComputePayment
  - schedule.go: Baseline and Accelerated recurrences
  - summary.go: Totals and savings
*/
package amortization

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Bounds on validated input. PeriodCount is always finite and small.
const (
	MonthsPerYear = 12
	MaxTermYears  = 50
)

var (
	hundred       = decimal.NewFromInt(100)
	monthsPerYear = decimal.NewFromInt(MonthsPerYear)
)

// =============================================================================
// LOAN PARAMETERS
// =============================================================================

// LoanParameters is the validated input to the payment calculator and the
// schedule generator. AnnualRate is a percentage (6 means 6%).
type LoanParameters struct {
	Principal       decimal.Decimal
	AnnualRate      decimal.Decimal
	TermYears       int
	PaymentsPerYear int
	StartDate       Date
	ExtraPayment    decimal.Decimal
}

// NewLoanParameters builds and validates loan parameters.
func NewLoanParameters(principal, annualRate decimal.Decimal, termYears, paymentsPerYear int, start Date, extra decimal.Decimal) (LoanParameters, error) {
	p := LoanParameters{
		Principal:       principal,
		AnnualRate:      annualRate,
		TermYears:       termYears,
		PaymentsPerYear: paymentsPerYear,
		StartDate:       start,
		ExtraPayment:    extra,
	}
	if err := p.Validate(); err != nil {
		return LoanParameters{}, err
	}
	return p, nil
}

// Validate rejects parameters the calculator cannot use. The first
// violation found is returned as an *InvalidInputError.
func (p LoanParameters) Validate() error {
	switch {
	case !p.Principal.IsPositive():
		return &InvalidInputError{Field: "principal", Value: p.Principal, Reason: "must be positive"}
	case p.AnnualRate.IsNegative():
		return &InvalidInputError{Field: "annual_rate", Value: p.AnnualRate, Reason: "must not be negative"}
	case p.TermYears <= 0:
		return &InvalidInputError{Field: "term_years", Value: p.TermYears, Reason: "must be positive"}
	case p.TermYears > MaxTermYears:
		return &InvalidInputError{Field: "term_years", Value: p.TermYears, Reason: fmt.Sprintf("must not exceed %d", MaxTermYears)}
	case p.PaymentsPerYear <= 0:
		return &InvalidInputError{Field: "payments_per_year", Value: p.PaymentsPerYear, Reason: "must be positive"}
	case MonthsPerYear%p.PaymentsPerYear != 0:
		return &InvalidInputError{Field: "payments_per_year", Value: p.PaymentsPerYear, Reason: "must divide 12"}
	case p.StartDate.IsZero():
		return &InvalidInputError{Field: "start_date", Value: p.StartDate, Reason: "is required"}
	case p.ExtraPayment.IsNegative():
		return &InvalidInputError{Field: "extra_payment", Value: p.ExtraPayment, Reason: "must not be negative"}
	}
	return nil
}

// PeriodCount is the number of months the recurrence runs for.
func (p LoanParameters) PeriodCount() int {
	return p.TermYears * p.PaymentsPerYear
}

// PeriodicRate is the monthly rate as a fraction.
func (p LoanParameters) PeriodicRate() decimal.Decimal {
	return PeriodicRate(p.AnnualRate)
}

// CadenceStep is the number of computed months between visible baseline rows.
func (p LoanParameters) CadenceStep() int {
	return MonthsPerYear / p.PaymentsPerYear
}

// WithoutExtra returns a copy with the extra payment set to zero.
func (p LoanParameters) WithoutExtra() LoanParameters {
	p.ExtraPayment = decimal.Zero
	return p
}

// Key is a canonical identifier of the parameter set. Equal keys always
// produce identical schedules.
func (p LoanParameters) Key() string {
	return fmt.Sprintf("loan:%s:%s:%d:%d:%s:%s",
		p.Principal.String(), p.AnnualRate.String(), p.TermYears,
		p.PaymentsPerYear, p.StartDate.Time.Format("2006-01-02"), p.ExtraPayment.String())
}

// PeriodicRate converts an annual percentage into a monthly fraction.
func PeriodicRate(annualRate decimal.Decimal) decimal.Decimal {
	return annualRate.Div(hundred).Div(monthsPerYear)
}

// =============================================================================
// LEDGER ROW - One period of a schedule (immutable once emitted)
// =============================================================================

// LedgerRow is one computed month. Principal is the contractual portion only;
// the extra payment applied that month is reported separately in Extra.
type LedgerRow struct {
	Period    int // 1-based month index
	Date      Date
	Payment   decimal.Decimal
	Interest  decimal.Decimal
	Principal decimal.Decimal
	Extra     decimal.Decimal
	Balance   decimal.Decimal
}

// IsTerminal reports whether this row retired the loan.
func (r LedgerRow) IsTerminal() bool { return r.Balance.IsZero() }

// =============================================================================
// SCHEDULE - Append-only ordered rows
// =============================================================================

type ScheduleKind string

const (
	ScheduleBaseline    ScheduleKind = "amortization"
	ScheduleAccelerated ScheduleKind = "extra_payment"
)

// Title is the human label for a schedule kind.
func (k ScheduleKind) Title() string {
	switch k {
	case ScheduleBaseline:
		return "Amortization Schedule"
	case ScheduleAccelerated:
		return "Extra Payment Schedule"
	default:
		return string(k)
	}
}

// Schedule is a chronological sequence of rows. Rows are only ever appended.
type Schedule struct {
	Kind ScheduleKind
	Rows []LedgerRow
}

func (s *Schedule) append(row LedgerRow) {
	s.Rows = append(s.Rows, row)
}

// Len returns the number of emitted rows.
func (s Schedule) Len() int { return len(s.Rows) }

// Last returns the final row, or false when the schedule is empty.
func (s Schedule) Last() (LedgerRow, bool) {
	if len(s.Rows) == 0 {
		return LedgerRow{}, false
	}
	return s.Rows[len(s.Rows)-1], true
}

// PaidOff reports whether the schedule ends on a terminal row.
func (s Schedule) PaidOff() bool {
	last, ok := s.Last()
	return ok && last.IsTerminal()
}
