// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "tracecodec",
		Subcommands: []*Command{
			{
				Name: "diag",
				Run: func(args []string) error {
					called = "diag"
					return nil
				},
			},
			{
				Name: "convert",
				Run: func(args []string) error {
					called = "convert"
					receivedArgs = args
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"convert", "entries.json"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "convert" {
		t.Errorf("dispatched to %q, want %q", called, "convert")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "entries.json" {
		t.Errorf("args = %v, want [entries.json]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var from, to string

	command := &Command{
		Name: "convert",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("convert", pflag.ContinueOnError)
			flagSet.StringVar(&from, "from", "json", "input format")
			flagSet.StringVar(&to, "to", "json", "output format")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	if err := command.Execute([]string{"--from", "cbor", "--to=yaml"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if from != "cbor" || to != "yaml" {
		t.Errorf("from/to = %q/%q, want cbor/yaml", from, to)
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "convert",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("convert", pflag.ContinueOnError)
			flagSet.String("from", "json", "input format")
			flagSet.String("config", "", "config file")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--confg", "x.yaml"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	message := err.Error()
	if !strings.Contains(message, "did you mean --config") {
		t.Errorf("error = %q, want suggestion for --config", message)
	}
	if !strings.Contains(message, "--help") {
		t.Errorf("error = %q, should point to --help", message)
	}
}

func TestCommand_Execute_UnknownFlagNoSuggestion(t *testing.T) {
	command := &Command{
		Name: "convert",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("convert", pflag.ContinueOnError)
			flagSet.String("from", "json", "input format")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--zzzzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not suggest for distant flag", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "tracecodec",
		Subcommands: []*Command{
			{Name: "convert"},
			{Name: "unpack"},
			{Name: "sample"},
		},
	}

	err := root.Execute([]string{"unpakc"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), `did you mean "unpack"`) {
		t.Errorf("error = %q, want suggestion for unpack", err.Error())
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	for _, helpArg := range []string{"-h", "--help", "help"} {
		t.Run(helpArg, func(t *testing.T) {
			var output bytes.Buffer
			root := &Command{
				Name:    "tracecodec",
				Summary: "Inspect and convert trace data",
				Output:  &output,
				Subcommands: []*Command{
					{Name: "convert", Summary: "Convert an entry stream"},
				},
			}

			if err := root.Execute([]string{helpArg}); err != nil {
				t.Fatalf("Execute(%q) error: %v", helpArg, err)
			}
			help := output.String()
			for _, want := range []string{"Inspect and convert trace data", "convert", "Convert an entry stream"} {
				if !strings.Contains(help, want) {
					t.Errorf("help output missing %q:\n%s", want, help)
				}
			}
		})
	}
}

func TestCommand_Execute_SubcommandHelpInheritsOutput(t *testing.T) {
	var output bytes.Buffer
	root := &Command{
		Name:   "tracecodec",
		Output: &output,
		Subcommands: []*Command{
			{
				Name:        "diag",
				Description: "Print CBOR diagnostic notation.",
				Flags: func() *pflag.FlagSet {
					flagSet := pflag.NewFlagSet("diag", pflag.ContinueOnError)
					flagSet.Bool("hex", false, "input is hex")
					return flagSet
				},
				Examples: []Example{{Description: "From a file", Command: "tracecodec diag frame.cbor"}},
				Run:      func(args []string) error { return errors.New("should not run") },
			},
		},
	}

	if err := root.Execute([]string{"diag", "--help"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	help := output.String()
	for _, want := range []string{"Print CBOR diagnostic notation.", "tracecodec diag [flags]", "--hex", "# From a file"} {
		if !strings.Contains(help, want) {
			t.Errorf("help output missing %q:\n%s", want, help)
		}
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	root := &Command{
		Name:        "tracecodec",
		Output:      &bytes.Buffer{},
		Subcommands: []*Command{{Name: "convert"}},
	}

	err := root.Execute(nil)
	if err == nil || !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("Execute(nil) = %v, want subcommand required", err)
	}
}

func TestCommand_Execute_RunError(t *testing.T) {
	want := errors.New("boom")
	command := &Command{
		Name: "sample",
		Run:  func(args []string) error { return want },
	}
	if err := command.Execute(nil); !errors.Is(err, want) {
		t.Errorf("Execute() = %v, want %v", err, want)
	}
}
