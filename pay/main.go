// Command pay replays a stream of client transactions and prints the final
// state of every account.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/etnz/payments/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// exits when run by the shell completion.
	cmd.Completion(flag.CommandLine).Complete("pay")

	flag.Parse()
	if err := cmd.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", flag.Lookup("env").Value, err)
		os.Exit(int(subcommands.ExitFailure))
	}

	if args, ok := cmd.Shortcut(flag.Args()); ok {
		flag.CommandLine.Parse(args)
	} else if len(args) > 0 && !cmd.IsCommand(args[0]) && !cmd.IsBuiltin(args[0]) {
		if found, code := cmd.RunExtension(args[0], args[1:]); found {
			os.Exit(code)
		}
	}

	os.Exit(int(commander.Execute(context.Background())))
}
