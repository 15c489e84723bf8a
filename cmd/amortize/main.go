/*
amortize - Command-line loan calculator

USAGE:
  amortize payment   -principal 100000 -rate 6 -years 30
  amortize schedule  -principal 100000 -rate 6 -years 30 -start 01/01/2025 -extra 200
  amortize schedule  -config loan.json -db report.db
  amortize schedule  -preset mortgage-30y-extra -plain
  amortize scenarios

OUTPUT:
  Reports are markdown. On a terminal they are rendered with glamour;
  -plain prints the raw markdown for piping into other tools.

SEE ALSO:
  - report/markdown.go: Report rendering
  - store/sqlite/sqlite.go: -db output format
*/
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
