package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/payments"
	"github.com/google/subcommands"
)

type processCmd struct {
	ledgerFlags
	output     string
	outputFile string
}

func (*processCmd) Name() string     { return "process" }
func (*processCmd) Synopsis() string { return "apply transactions and print the accounts" }
func (*processCmd) Usage() string {
	return `pay process [<transactions.csv>]

  Reads transactions from the file, or stdin, applies them in order and prints
  the final state of every client account, sorted by client id.

  Rejected records are logged on stderr. A record that cannot be read aborts
  the run: nothing is printed and the exit status is 1.

  'pay <file>' is a shortcut for 'pay process <file>'.

Usage Examples:
$ pay process transactions.csv > accounts.csv
$ pay process -format jsonl -o json < transactions.jsonl

`
}

func (c *processCmd) SetFlags(f *flag.FlagSet) {
	c.ledgerFlags.SetFlags(f)
	f.StringVar(&c.output, "o", "csv", "Output format: csv or json (one object per line)")
	f.StringVar(&c.outputFile, "out", "", "Write the accounts to this file instead of stdout")
}

func (c *processCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var format payments.Format
	switch c.output {
	case "csv":
		format = payments.FormatCSV
	case "json", "jsonl":
		format = payments.FormatJSONL
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown output format %q, want csv or json\n", c.output)
		return subcommands.ExitUsageError
	}

	p, err := c.process(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	w, err := openOutput(c.outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := payments.EncodeSnapshot(w, p.Snapshot(), format); err != nil {
		w.Close()
		fmt.Fprintf(os.Stderr, "Error writing accounts: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := w.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing accounts: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
