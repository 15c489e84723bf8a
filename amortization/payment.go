package amortization

import (
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// computeScale bounds the number of fractional digits carried by interest
// amounts so the running balance does not grow without limit.
const computeScale = 12

// ComputePayment returns the flat monthly payment that retires principal in
// periodCount months at annualRate percent, compounded monthly.
//
//	r       = annualRate / 100 / 12
//	payment = r * P / (1 - (1+r)^-n)        (computed as P*r*(1+r)^n / ((1+r)^n - 1))
//	payment = P / n                         when r == 0
//
// A denominator that is not positive (negative rates) yields ErrNonAmortizing.
func ComputePayment(principal, annualRate decimal.Decimal, periodCount int) (decimal.Decimal, error) {
	if !principal.IsPositive() {
		return decimal.Zero, &InvalidInputError{Field: "principal", Value: principal, Reason: "must be positive"}
	}
	if periodCount <= 0 {
		return decimal.Zero, &InvalidInputError{Field: "period_count", Value: periodCount, Reason: "must be positive"}
	}

	r := PeriodicRate(annualRate)
	n := decimal.NewFromInt(int64(periodCount))

	if r.IsZero() {
		return principal.Div(n), nil
	}

	growth := one.Add(r)
	if !growth.IsPositive() {
		return decimal.Zero, &NonAmortizingError{PeriodicRate: r, Periods: periodCount}
	}

	factor := growth.Pow(n)
	denominator := factor.Sub(one)
	if !denominator.IsPositive() {
		return decimal.Zero, &NonAmortizingError{PeriodicRate: r, Periods: periodCount}
	}

	return principal.Mul(r).Mul(factor).Div(denominator), nil
}
