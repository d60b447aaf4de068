// Package cmd implements the pay command line application.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/etnz/payments"
	"github.com/google/subcommands"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Environment variables used as defaults for flags.
const (
	EnvLogLevel = "PAYMENTS_LOG_LEVEL"
	EnvFormat   = "PAYMENTS_FORMAT"
	EnvCurrency = "PAYMENTS_CURRENCY"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var logLevel = flag.String("log-level", "", "Log level: debug, info, warn or error. Defaults to $"+EnvLogLevel+" or warn")
var envFile = flag.String("env", ".env", "Dotenv file loaded into the environment, if it exists")

// Commands are all the subcommands of the application.
var Commands = []subcommands.Command{
	&processCmd{},
	&reportCmd{},
	&queryCmd{},
	&fmtCmd{},
	&topicCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, "")
	}
}

// IsCommand returns true if 'name' is a registered subcommand.
func IsCommand(name string) bool {
	for _, cmd := range Commands {
		if cmd.Name() == name {
			return true
		}
	}
	return false
}

// IsBuiltin returns true if 'name' is one of the commander's own commands.
func IsBuiltin(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	return false
}

// Shortcut turns 'pay <file> ...' into 'pay process <file> ...'. It returns
// false, and 'args' unchanged, when the first argument is a command or not an
// existing file.
func Shortcut(args []string) ([]string, bool) {
	if len(args) == 0 || IsCommand(args[0]) || IsBuiltin(args[0]) {
		return args, false
	}
	if _, err := os.Stat(args[0]); err != nil {
		return args, false
	}
	return append([]string{"process"}, args...), true
}

// LoadEnv loads the dotenv file into the environment. Variables already set
// are kept, and a missing file is not an error.
func LoadEnv() error {
	err := godotenv.Load(*envFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// getenv returns the value of the environment variable 'key', or 'fallback'
// if it is empty.
func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// NewLogger creates the logger of a run, writing to 'w'. Every entry carries
// the run id.
func NewLogger(w io.Writer) (*log.Logger, error) {
	level := *logLevel
	if level == "" {
		level = getenv(EnvLogLevel, "warn")
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger := log.NewWithOptions(w, log.Options{Level: lvl, Prefix: "pay"})
	return logger.With("run", uuid.NewString()), nil
}

// inputFormat resolves the input format: the flag value first, then the
// environment, then the file extension. CSV is the default.
func inputFormat(flagValue, filename string) (payments.Format, error) {
	if flagValue == "" {
		flagValue = os.Getenv(EnvFormat)
	}
	if flagValue == "" && strings.EqualFold(filepath.Ext(filename), ".jsonl") {
		flagValue = string(payments.FormatJSONL)
	}
	if flagValue == "" {
		return payments.FormatCSV, nil
	}
	return payments.ParseFormat(flagValue)
}

// openInput opens the file named by args, or stdin if there is none or if it
// is "-".
func openInput(args []string) (io.ReadCloser, string, error) {
	switch {
	case len(args) == 0 || (len(args) == 1 && args[0] == "-"):
		return io.NopCloser(os.Stdin), "", nil
	case len(args) == 1:
		f, err := os.Open(args[0])
		if err != nil {
			return nil, "", err
		}
		return f, args[0], nil
	default:
		return nil, "", fmt.Errorf("too many arguments, want a single input file: %v", args)
	}
}

// openOutput creates the file 'name', or returns stdout if 'name' is empty.
func openOutput(name string) (io.WriteCloser, error) {
	if name == "" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(name)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// ledgerFlags are the flags of the commands processing a transaction file.
type ledgerFlags struct {
	format string
	policy payments.Policy
}

func (l *ledgerFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&l.format, "format", "", "Input format: csv or jsonl. Defaults to $"+EnvFormat+", then to the file extension")
	f.BoolVar(&l.policy.DisputeWithdrawals, "dispute-withdrawals", false, "Withdrawals can be disputed too")
	f.BoolVar(&l.policy.Redispute, "redispute", false, "A resolved transaction can be disputed again")
	f.BoolVar(&l.policy.StrictAccounts, "strict-accounts", false, "Only a deposit can open an account")
}

// process applies all the transactions of the input file named by args.
func (l *ledgerFlags) process(args []string) (*payments.Processor, error) {
	logger, err := NewLogger(os.Stderr)
	if err != nil {
		return nil, err
	}
	in, name, err := openInput(args)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	format, err := inputFormat(l.format, name)
	if err != nil {
		return nil, err
	}
	r, err := payments.NewReader(in, format)
	if err != nil {
		return nil, err
	}

	p := payments.NewProcessor(payments.NewStore(), l.policy, logger)
	if err := p.Run(r); err != nil {
		return nil, err
	}
	stats := p.Stats()
	logger.Info("run complete", "records", stats.Records, "applied", stats.Applied, "rejected", stats.Rejected)
	return p, nil
}
