package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/payments/docs"
	"github.com/google/subcommands"
)

type topicCmd struct {
	list       bool
	outputFile string
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show the help topics" }
func (*topicCmd) Usage() string {
	return `pay topic [-list] [<topic>...]

  Shows the help topics, the readme when none is given, and every topic
  with '*'.

Usage Examples:
$ pay topic disputes policy
$ pay topic '*'

`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "list", false, "Print the topic names only")
	f.StringVar(&c.outputFile, "out", "", "Write the raw markdown to this file instead of stdout")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.list {
		fmt.Println(strings.Join(docs.Names(), "\n"))
		return subcommands.ExitSuccess
	}
	md, err := docs.Topics(f.Args()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := writeMarkdown(c.outputFile, md); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", c.outputFile, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
