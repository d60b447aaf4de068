package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type queryCmd struct {
	ledgerFlags
	expr       string
	outputFile string
}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "apply transactions and query the accounts with JSONPath" }
func (*queryCmd) Usage() string {
	return `pay query -e <jsonpath> [<transactions.csv>]

  Applies the transactions like 'pay process' and evaluates a JSONPath
  expression against the accounts. The accounts are an array of objects with
  properties client, available, held, total and locked.

Usage Examples:
# list locked clients
$ pay query -e '$[?(@.locked)].client' transactions.csv
# available funds of the first account
$ pay query -e '$[0].available' transactions.csv

`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {
	c.ledgerFlags.SetFlags(f)
	f.StringVar(&c.expr, "e", "$", "JSONPath expression")
	f.StringVar(&c.outputFile, "out", "", "Write the result to this file instead of stdout")
}

func (c *queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := c.process(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	v, err := p.Snapshot().Query(c.expr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
		return subcommands.ExitFailure
	}

	w, err := openOutput(c.outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer w.Close()
	if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing result: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
