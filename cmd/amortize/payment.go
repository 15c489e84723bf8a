package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/warp/amortization-engine/amortization"
	"github.com/warp/amortization-engine/factory"
	"github.com/warp/amortization-engine/report"
)

type paymentCmd struct {
	loan loanFlags
}

func (*paymentCmd) Name() string     { return "payment" }
func (*paymentCmd) Synopsis() string { return "compute the level payment of a loan" }
func (*paymentCmd) Usage() string {
	return `amortize payment -principal <amount> -rate <percent> [-years <n>] [-ppy <n>]

  Prints the fixed monthly payment that retires the loan over
  years * ppy months.
`
}

func (c *paymentCmd) SetFlags(f *flag.FlagSet) {
	c.loan.setTermFlags(f)
}

func (c *paymentCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(ctx, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if amortization.IsClientError(err) {
			return subcommands.ExitUsageError
		}
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *paymentCmd) run(_ context.Context, w io.Writer) error {
	lj, err := c.loan.loan()
	if err != nil {
		return err
	}
	// the payment does not depend on the start date
	lj.StartDate = amortization.NewDate(2000, time.January, 1).String()

	params, err := factory.NewLoanFactory().FromJSON(lj)
	if err != nil {
		return err
	}
	payment, err := amortization.NewGenerator(params).Payment()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Payment: %s (%d periods at %s per period)\n",
		report.Amount(payment), params.PeriodCount(), params.PeriodicRate())
	return nil
}
