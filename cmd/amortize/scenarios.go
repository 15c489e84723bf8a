package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/warp/amortization-engine/factory"
	"github.com/warp/amortization-engine/report"
)

type scenariosCmd struct {
	plain bool
}

func (*scenariosCmd) Name() string     { return "scenarios" }
func (*scenariosCmd) Synopsis() string { return "list the built-in loans" }
func (*scenariosCmd) Usage() string {
	return `amortize scenarios [-plain]

  Lists the preset loans accepted by 'amortize schedule -preset'.
`
}

func (c *scenariosCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.plain, "plain", false, "Print raw markdown instead of rendering it.")
}

func (c *scenariosCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(ctx, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *scenariosCmd) run(_ context.Context, w io.Writer) error {
	var b strings.Builder
	b.WriteString("| ID | Loan | Principal | Rate | Years | Payments/year | Start | Extra |\n")
	b.WriteString("|---|---|---:|---:|---:|---:|---|---:|\n")
	for _, p := range factory.Presets() {
		l := p.Loan
		fmt.Fprintf(&b, "| %s | %s | %s | %s%% | %d | %d | %s | %s |\n",
			p.ID, l.Name, report.Amount(*l.Principal), l.AnnualRate.String(),
			l.TermYears, *l.PaymentsPerYear, l.StartDate, report.Amount(*l.ExtraPayment))
	}
	printMarkdown(w, b.String(), c.plain)
	return nil
}
