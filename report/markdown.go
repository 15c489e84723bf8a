/*
Package report renders amortization reports for people.

Markdown writes a summary followed by both schedules as tables, with the
column order every sink uses: period, date, payment, interest, principal,
extra, balance. Amounts are rounded to two decimals for display only; no
currency symbol or locale grouping is applied.

The CLI passes the markdown through glamour for terminal output.
*/
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/warp/amortization-engine/amortization"
)

// Columns is the fixed header shared by every rendering of a schedule.
var Columns = []string{
	"Payment", "Payment Date", "Payment Amount", "Interest Paid",
	"Principal Paid", "Extra Payment", "Balance",
}

// Amount formats a value for display.
func Amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Markdown writes the full report.
func Markdown(w io.Writer, r amortization.Report) error {
	var b strings.Builder

	p := r.Params
	fmt.Fprintf(&b, "# Loan amortization\n\n")
	fmt.Fprintf(&b, "| Parameter | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Principal | %s |\n", Amount(p.Principal))
	fmt.Fprintf(&b, "| Annual rate | %s%% |\n", p.AnnualRate.String())
	fmt.Fprintf(&b, "| Term | %d years (%d periods) |\n", p.TermYears, p.PeriodCount())
	fmt.Fprintf(&b, "| Payments per year | %d |\n", p.PaymentsPerYear)
	fmt.Fprintf(&b, "| Start date | %s |\n", p.StartDate)
	fmt.Fprintf(&b, "| Extra payment | %s |\n", Amount(p.ExtraPayment))
	fmt.Fprintf(&b, "| Payment | %s |\n\n", Amount(r.Payment))

	writeSummary(&b, amortization.ScheduleBaseline.Title(), r.BaselineSummary)
	writeSummary(&b, amortization.ScheduleAccelerated.Title(), r.AcceleratedSummary)

	if r.Savings.MonthsSaved > 0 {
		fmt.Fprintf(&b, "Paying %s extra each month retires the loan %d months early (%s instead of %s) and saves %s in interest.\n\n",
			Amount(p.ExtraPayment), r.Savings.MonthsSaved,
			r.Savings.PayoffWithExtra, r.Savings.PayoffWithoutExtra,
			Amount(r.Savings.InterestSaved))
	}

	for _, s := range []amortization.Schedule{r.Baseline, r.Accelerated} {
		fmt.Fprintf(&b, "## %s\n\n", s.Kind.Title())
		writeTable(&b, s)
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeSummary(b *strings.Builder, title string, s amortization.Summary) {
	status := "not paid off within the term"
	if s.PaidOff {
		status = "paid off " + s.PayoffDate.String()
	}
	fmt.Fprintf(b, "**%s**: %d rows, %s. Total paid %s, interest %s, principal %s, extra %s, final balance %s.\n\n",
		title, s.Rows, status,
		Amount(s.TotalPayment), Amount(s.TotalInterest), Amount(s.TotalPrincipal),
		Amount(s.TotalExtra), Amount(s.FinalBalance))
}

func writeTable(b *strings.Builder, s amortization.Schedule) {
	b.WriteString("| " + strings.Join(Columns, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat("---:|", len(Columns)) + "\n")
	for _, row := range s.Rows {
		fmt.Fprintf(b, "| %d | %s | %s | %s | %s | %s | %s |\n",
			row.Period, row.Date,
			Amount(row.Payment), Amount(row.Interest), Amount(row.Principal),
			Amount(row.Extra), Amount(row.Balance))
	}
}
