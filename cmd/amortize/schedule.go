package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/warp/amortization-engine/amortization"
	"github.com/warp/amortization-engine/factory"
	"github.com/warp/amortization-engine/report"
	"github.com/warp/amortization-engine/store/sqlite"
)

type scheduleCmd struct {
	loan   loanFlags
	config string
	preset string
	db     string
	plain  bool
}

func (*scheduleCmd) Name() string { return "schedule" }
func (*scheduleCmd) Synopsis() string {
	return "generate the amortization and extra payment schedules of a loan"
}
func (*scheduleCmd) Usage() string {
	return `amortize schedule [-config <file.json> | -preset <id> | -principal <amount> -rate <percent> -start <mm/dd/yyyy>]
                  [-years <n>] [-ppy <n>] [-extra <amount>] [-db <file.db>] [-plain]

  Computes both schedules, prints them as markdown and optionally writes
  the report to a SQLite file with one table row per ledger row.
`
}

func (c *scheduleCmd) SetFlags(f *flag.FlagSet) {
	c.loan.setScheduleFlags(f)
	f.StringVar(&c.config, "config", "", "Read the loan from a JSON file. Overrides the loan flags.")
	f.StringVar(&c.preset, "preset", "", "Use a built-in loan (see 'amortize scenarios'). Overrides the loan flags.")
	f.StringVar(&c.db, "db", "", "Also write the report to this SQLite database.")
	f.BoolVar(&c.plain, "plain", false, "Print raw markdown instead of rendering it.")
}

func (c *scheduleCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(ctx, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if amortization.IsClientError(err) {
			return subcommands.ExitUsageError
		}
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *scheduleCmd) params() (amortization.LoanParameters, error) {
	f := factory.NewLoanFactory()
	switch {
	case c.config != "":
		return f.LoadFile(c.config)
	case c.preset != "":
		p, ok := factory.FindPreset(c.preset)
		if !ok {
			return amortization.LoanParameters{}, &amortization.InvalidInputError{Field: "preset", Value: c.preset, Reason: "is unknown"}
		}
		return f.FromJSON(p.Loan)
	default:
		lj, err := c.loan.loan()
		if err != nil {
			return amortization.LoanParameters{}, err
		}
		return f.FromJSON(lj)
	}
}

func (c *scheduleCmd) run(ctx context.Context, w io.Writer) error {
	params, err := c.params()
	if err != nil {
		return err
	}

	var sinks []amortization.ReportSink
	if c.db != "" {
		store, err := sqlite.New(c.db)
		if err != nil {
			return err
		}
		defer store.Close()
		sinks = append(sinks, store)
	}

	rep, err := amortization.Run(ctx, params, sinks...)
	if err != nil {
		return err
	}

	var md strings.Builder
	if err := report.Markdown(&md, rep); err != nil {
		return err
	}
	printMarkdown(w, md.String(), c.plain)

	if c.db != "" {
		fmt.Fprintf(os.Stderr, "Report %s written to %s\n", rep.ID, c.db)
	}
	return nil
}
