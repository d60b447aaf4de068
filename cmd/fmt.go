package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/payments"
	"github.com/google/subcommands"
)

type fmtCmd struct {
	format     string
	to         string
	outputFile string
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats a transaction file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `pay fmt [-to csv|jsonl] [<transactions.csv>]

  Validates every record of the transaction file, without applying them, and
  writes them back in a canonical form: trimmed values, amounts with 4
  fractional digits, and no amount for disputes, resolves and chargebacks.

  It also converts between the csv and jsonl formats.

Usage Examples:
$ pay fmt -to jsonl transactions.csv > transactions.jsonl

`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "", "Input format: csv or jsonl. Defaults to $"+EnvFormat+", then to the file extension")
	f.StringVar(&c.to, "to", "csv", "Output format: csv or jsonl")
	f.StringVar(&c.outputFile, "out", "", "Write to this file instead of stdout")
}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	to, err := payments.ParseFormat(c.to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	in, name, err := openInput(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	from, err := inputFormat(c.format, name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	r, err := payments.NewReader(in, from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	txs, err := payments.ReadAll(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	w, err := openOutput(c.outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := payments.EncodeTransactions(w, txs, to); err != nil {
		w.Close()
		fmt.Fprintf(os.Stderr, "Error writing transactions: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := w.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing transactions: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
