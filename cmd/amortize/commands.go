package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"github.com/warp/amortization-engine/amortization"
	"github.com/warp/amortization-engine/factory"
)

// Commands are the subcommands registered by main.
var Commands = []subcommands.Command{
	&paymentCmd{},
	&scheduleCmd{},
	&scenariosCmd{},
}

// loanFlags are the loan parameters shared by payment and schedule.
type loanFlags struct {
	principal string
	rate      string
	years     int
	ppy       int
	start     string
	extra     string
}

func (l *loanFlags) setTermFlags(f *flag.FlagSet) {
	f.StringVar(&l.principal, "principal", "", "Amount borrowed.")
	f.StringVar(&l.rate, "rate", "", "Annual interest rate in percent (6 means 6%).")
	f.IntVar(&l.years, "years", 30, "Loan term in years.")
	f.IntVar(&l.ppy, "ppy", factory.DefaultPaymentsPerYear, "Payments per year (1, 2, 3, 4, 6 or 12).")
}

func (l *loanFlags) setScheduleFlags(f *flag.FlagSet) {
	l.setTermFlags(f)
	f.StringVar(&l.start, "start", "", "Date of the first payment (mm/dd/yyyy).")
	f.StringVar(&l.extra, "extra", "0", "Extra principal paid each month.")
}

// loan converts the flags into the factory's JSON shape so that the CLI
// applies exactly the same validation as the API.
func (l *loanFlags) loan() (factory.LoanJSON, error) {
	lj := factory.LoanJSON{
		TermYears:       l.years,
		PaymentsPerYear: &l.ppy,
		StartDate:       l.start,
	}

	var err error
	if lj.Principal, err = parseFlagDecimal("principal", l.principal); err != nil {
		return lj, err
	}
	if lj.AnnualRate, err = parseFlagDecimal("annual_rate", l.rate); err != nil {
		return lj, err
	}
	if lj.ExtraPayment, err = parseFlagDecimal("extra_payment", l.extra); err != nil {
		return lj, err
	}
	return lj, nil
}

// parseFlagDecimal returns nil for an empty flag so the factory reports it
// as missing.
func parseFlagDecimal(field, s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, &amortization.InvalidInputError{Field: field, Value: s, Reason: "is not a number"}
	}
	return &d, nil
}

// printMarkdown renders md for the terminal, or writes it untouched when
// plain is set or rendering fails.
func printMarkdown(w io.Writer, md string, plain bool) {
	if plain {
		fmt.Fprint(w, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Fprint(w, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(w, md)
		return
	}
	fmt.Fprint(w, out)
}
