package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/payments"
	"github.com/google/subcommands"
)

const transactions = `type, client, tx, amount
deposit, 1, 1, 1.0
deposit, 2, 2, 2.0
deposit, 1, 3, 2.0
withdrawal, 1, 4, 1.5
withdrawal, 2, 5, 3.0
dispute, 2, 2,
`

// createTempFile creates a file with 'content' in a temporary directory.
func createTempFile(t *testing.T, name, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return filename
}

// execute runs 'cmd' with 'args' and returns the exit status.
func execute(t *testing.T, cmd subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("invalid arguments %v: %v", args, err)
	}
	return cmd.Execute(context.Background(), f)
}

func readFile(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", name, err)
	}
	return string(data)
}

func TestProcessCmd(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	input := createTempFile(t, "transactions.csv", transactions)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "csv",
			want: `client,available,held,total,locked
1,1.5000,0.0000,1.5000,false
2,0.0000,2.0000,2.0000,false
`,
		},
		{
			name: "json",
			args: []string{"-o", "json"},
			want: `{"client":1,"available":1.5000,"held":0.0000,"total":1.5000,"locked":false}
{"client":2,"available":0.0000,"held":2.0000,"total":2.0000,"locked":false}
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "accounts")
			args := append(append([]string{"-out", out}, tt.args...), input)
			if status := execute(t, &processCmd{}, args...); status != subcommands.ExitSuccess {
				t.Fatalf("Execute() = %v, want ExitSuccess", status)
			}
			if got := readFile(t, out); got != tt.want {
				t.Errorf("output =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestProcessCmd_Fatal(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	input := createTempFile(t, "transactions.csv", "type,client,tx,amount\ndeposit,1,1,1.00001\n")
	out := filepath.Join(t.TempDir(), "accounts.csv")

	if status := execute(t, &processCmd{}, "-out", out, input); status != subcommands.ExitFailure {
		t.Errorf("Execute() = %v, want ExitFailure", status)
	}
	if _, err := os.Stat(out); err == nil {
		t.Errorf("a failed run wrote %s", out)
	}
}

func TestProcessCmd_Policy(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	input := createTempFile(t, "transactions.csv", "type,client,tx,amount\ndeposit,1,1,10\nwithdrawal,1,2,4\ndispute,1,2,\n")
	out := filepath.Join(t.TempDir(), "accounts.csv")

	if status := execute(t, &processCmd{}, "-dispute-withdrawals", "-out", out, input); status != subcommands.ExitSuccess {
		t.Fatalf("Execute() = %v, want ExitSuccess", status)
	}
	want := "client,available,held,total,locked\n1,6.0000,4.0000,10.0000,false\n"
	if got := readFile(t, out); got != want {
		t.Errorf("output =\n%s\nwant\n%s", got, want)
	}
}

func TestFmtCmd(t *testing.T) {
	input := createTempFile(t, "transactions.csv", transactions)
	out := filepath.Join(t.TempDir(), "transactions.jsonl")

	if status := execute(t, &fmtCmd{}, "-to", "jsonl", "-out", out, input); status != subcommands.ExitSuccess {
		t.Fatalf("Execute() = %v, want ExitSuccess", status)
	}
	got := readFile(t, out)
	if lines := strings.Count(got, "\n"); lines != 6 {
		t.Errorf("output has %d lines, want 6:\n%s", lines, got)
	}
	if want := `{"type":"dispute","client":2,"tx":2}`; !strings.Contains(got, want) {
		t.Errorf("output does not contain %s:\n%s", want, got)
	}

	// and back, the jsonl format is guessed from the extension.
	back := filepath.Join(t.TempDir(), "transactions.csv")
	if status := execute(t, &fmtCmd{}, "-out", back, out); status != subcommands.ExitSuccess {
		t.Fatalf("Execute() = %v, want ExitSuccess", status)
	}
	want := `type,client,tx,amount
deposit,1,1,1.0000
deposit,2,2,2.0000
deposit,1,3,2.0000
withdrawal,1,4,1.5000
withdrawal,2,5,3.0000
dispute,2,2,
`
	if got := readFile(t, back); got != want {
		t.Errorf("output =\n%s\nwant\n%s", got, want)
	}
}

func TestQueryCmd(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	input := createTempFile(t, "transactions.csv", transactions)
	out := filepath.Join(t.TempDir(), "result.json")

	if status := execute(t, &queryCmd{}, "-e", "$[?(@.held > 0)].client", "-out", out, input); status != subcommands.ExitSuccess {
		t.Fatalf("Execute() = %v, want ExitSuccess", status)
	}
	want := "[\n  2\n]\n"
	if got := readFile(t, out); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestReportCmd(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	input := createTempFile(t, "transactions.csv", transactions)
	out := filepath.Join(t.TempDir(), "report.md")

	if status := execute(t, &reportCmd{}, "-currency", "EUR", "-out", out, input); status != subcommands.ExitSuccess {
		t.Fatalf("Execute() = %v, want ExitSuccess", status)
	}
	got := readFile(t, out)
	for _, want := range []string{"# Ledger Report", "## Rejected Records", "insufficient_funds"} {
		if !strings.Contains(got, want) {
			t.Errorf("report does not contain %q:\n%s", want, got)
		}
	}

	if status := execute(t, &reportCmd{}, "-currency", "XYZW", input); status != subcommands.ExitUsageError {
		t.Errorf("Execute() with an unknown currency = %v, want ExitUsageError", status)
	}
}

func TestInputFormat(t *testing.T) {
	tests := []struct {
		flag, env, filename string
		want                payments.Format
	}{
		{want: payments.FormatCSV},
		{filename: "in.jsonl", want: payments.FormatJSONL},
		{env: "jsonl", filename: "in.csv", want: payments.FormatJSONL},
		{flag: "csv", env: "jsonl", filename: "in.jsonl", want: payments.FormatCSV},
	}
	for _, tt := range tests {
		t.Setenv(EnvFormat, tt.env)
		got, err := inputFormat(tt.flag, tt.filename)
		if err != nil || got != tt.want {
			t.Errorf("inputFormat(%q, %q) with env %q = %q, %v, want %q", tt.flag, tt.filename, tt.env, got, err, tt.want)
		}
	}
	t.Setenv(EnvFormat, "")
	if _, err := inputFormat("xml", ""); err == nil {
		t.Error("inputFormat(xml) want error, got nil")
	}
}

func TestNewLogger(t *testing.T) {
	t.Setenv(EnvLogLevel, "loud")
	if _, err := NewLogger(os.Stderr); err == nil {
		t.Error("NewLogger() with an invalid level want error, got nil")
	}
	t.Setenv(EnvLogLevel, "debug")
	if _, err := NewLogger(os.Stderr); err != nil {
		t.Errorf("NewLogger() unexpected error: %v", err)
	}
}

func TestLoadEnv(t *testing.T) {
	old := *envFile
	defer func() { *envFile = old }()

	*envFile = filepath.Join(t.TempDir(), "missing.env")
	if err := LoadEnv(); err != nil {
		t.Errorf("LoadEnv() with a missing file unexpected error: %v", err)
	}

	t.Setenv(EnvCurrency, "")
	os.Unsetenv(EnvCurrency)
	*envFile = createTempFile(t, ".env", EnvCurrency+"=CHF\n")
	if err := LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() unexpected error: %v", err)
	}
	if got := os.Getenv(EnvCurrency); got != "CHF" {
		t.Errorf("%s = %q, want CHF", EnvCurrency, got)
	}
}

func TestCompletion(t *testing.T) {
	c := Completion(flag.NewFlagSet("pay", flag.ContinueOnError))
	for _, cmd := range Commands {
		if !IsCommand(cmd.Name()) {
			t.Errorf("IsCommand(%q) = false", cmd.Name())
		}
		if _, ok := c.Sub[cmd.Name()]; !ok {
			t.Errorf("command %q has no completion", cmd.Name())
		}
	}
	if IsCommand("nope") {
		t.Error("IsCommand(nope) = true")
	}
}

func TestShortcut(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	input := createTempFile(t, "transactions.csv", transactions)
	missing := filepath.Join(t.TempDir(), "nope.csv")

	tests := []struct {
		name   string
		args   []string
		want   []string
		wantOK bool
	}{
		{name: "file", args: []string{input}, want: []string{"process", input}, wantOK: true},
		{name: "command", args: []string{"process", input}, want: []string{"process", input}},
		{name: "builtin", args: []string{"help"}, want: []string{"help"}},
		{name: "missing file", args: []string{missing}, want: []string{missing}},
		{name: "none"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Shortcut(tt.args)
			if ok != tt.wantOK || strings.Join(got, " ") != strings.Join(tt.want, " ") {
				t.Errorf("Shortcut(%v) = %v, %v, want %v, %v", tt.args, got, ok, tt.want, tt.wantOK)
			}
		})
	}

	// the rewritten arguments run like pay process.
	args, _ := Shortcut([]string{input})
	out := filepath.Join(t.TempDir(), "accounts.csv")
	if status := execute(t, &processCmd{}, "-out", out, args[1]); status != subcommands.ExitSuccess {
		t.Fatalf("Execute() = %v, want ExitSuccess", status)
	}
	if got := readFile(t, out); !strings.HasPrefix(got, "client,available,held,total,locked\n") {
		t.Errorf("output =\n%s\nwant the accounts", got)
	}
}
