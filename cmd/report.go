package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/payments/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct {
	ledgerFlags
	currency   string
	outputFile string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "apply transactions and render a summary of the run" }
func (*reportCmd) Usage() string {
	return `pay report [-currency <code>] [<transactions.csv>]

  Applies the transactions like 'pay process' and renders a markdown report:
  run counters, the accounts, and every rejected record with its reason.

  With -currency, amounts are displayed in that currency, rounded to its
  minor unit.

`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	c.ledgerFlags.SetFlags(f)
	f.StringVar(&c.currency, "currency", "", "ISO 4217 currency code used to display amounts. Defaults to $"+EnvCurrency)
	f.StringVar(&c.outputFile, "out", "", "Write the raw markdown to this file instead of the terminal")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	currency := getenv(EnvCurrency, "")
	if c.currency != "" {
		currency = c.currency
	}
	if err := renderer.ValidateCurrency(currency); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	p, err := c.process(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	md, err := renderer.ReportMarkdown(&renderer.Report{
		Snapshot:   p.Snapshot(),
		Stats:      p.Stats(),
		Rejections: p.Rejections(),
		Currency:   currency,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering report: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := writeMarkdown(c.outputFile, md); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
