package amortization

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// SUMMARY - Totals over a schedule's emitted rows
// =============================================================================

// Summary aggregates the rows of one schedule. For non-monthly cadences the
// totals only cover the rows that were emitted.
type Summary struct {
	Rows           int
	LastPeriod     int
	TotalPayment   decimal.Decimal
	TotalInterest  decimal.Decimal
	TotalPrincipal decimal.Decimal
	TotalExtra     decimal.Decimal
	FinalBalance   decimal.Decimal
	PayoffDate     Date // zero unless PaidOff
	PaidOff        bool
}

// Summarize totals a schedule.
func Summarize(s Schedule) Summary {
	sum := Summary{
		Rows:           len(s.Rows),
		TotalPayment:   decimal.Zero,
		TotalInterest:  decimal.Zero,
		TotalPrincipal: decimal.Zero,
		TotalExtra:     decimal.Zero,
		FinalBalance:   decimal.Zero,
	}
	for _, row := range s.Rows {
		sum.TotalPayment = sum.TotalPayment.Add(row.Payment)
		sum.TotalInterest = sum.TotalInterest.Add(row.Interest)
		sum.TotalPrincipal = sum.TotalPrincipal.Add(row.Principal)
		sum.TotalExtra = sum.TotalExtra.Add(row.Extra)
	}
	if last, ok := s.Last(); ok {
		sum.LastPeriod = last.Period
		sum.FinalBalance = last.Balance
		if last.IsTerminal() {
			sum.PaidOff = true
			sum.PayoffDate = last.Date
		}
	}
	return sum
}

// =============================================================================
// SAVINGS - Effect of the extra payment on the baseline schedule
// =============================================================================

// Savings compares the monthly baseline ledger with and without the extra
// payment. Both ledgers use the same flat payment.
type Savings struct {
	MonthsWithoutExtra int
	MonthsWithExtra    int
	MonthsSaved        int
	InterestWithout    decimal.Decimal
	InterestWith       decimal.Decimal
	InterestSaved      decimal.Decimal
	PayoffWithoutExtra Date
	PayoffWithExtra    Date
}

// CompareSavings runs the baseline recurrence month by month (ignoring the
// reporting cadence) with and without the extra payment.
func CompareSavings(params LoanParameters) (Savings, error) {
	g := NewGenerator(params)
	payment, err := g.Payment()
	if err != nil {
		return Savings{}, err
	}

	without := Summarize(baselineSchedule(params.WithoutExtra(), payment, 1))
	with := Summarize(baselineSchedule(params, payment, 1))

	return Savings{
		MonthsWithoutExtra: without.LastPeriod,
		MonthsWithExtra:    with.LastPeriod,
		MonthsSaved:        without.LastPeriod - with.LastPeriod,
		InterestWithout:    without.TotalInterest,
		InterestWith:       with.TotalInterest,
		InterestSaved:      without.TotalInterest.Sub(with.TotalInterest),
		PayoffWithoutExtra: without.PayoffDate,
		PayoffWithExtra:    with.PayoffDate,
	}, nil
}
