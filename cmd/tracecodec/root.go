// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !tracecodec_bounded

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tracecodec/cmd/tracecodec/cli"
	"github.com/bureau-foundation/tracecodec/lib/config"
)

// Root returns the command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name:    "tracecodec",
		Summary: "Inspect and convert trace entry streams",
		Description: `Inspect and convert trace entry streams.

An entry stream is a sequence of span creations, events and span
records, encoded as a JSON array, a CBOR array or a YAML sequence. Each
entry is a single-key map: {"new_span": ...}, {"event": ...} or
{"record": ...}.

Packed streams are concatenated frames: a CBOR header carrying the
compression, sizes and a BLAKE3 digest, followed by the compressed CBOR
batch.

Every command takes --config, falling back to $TRACECODEC_CONFIG and
then to built-in defaults.`,
		Subcommands: []*cli.Command{
			convertCommand(),
			diagCommand(),
			packCommand(),
			unpackCommand(),
			sampleCommand(),
		},
	}
}

// commonFlags are accepted by every subcommand.
type commonFlags struct {
	configPath string
	verbose    bool
}

func (f *commonFlags) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&f.configPath, "config", "", "configuration file (default $"+config.EnvVar+")")
	flagSet.BoolVarP(&f.verbose, "verbose", "v", false, "log at debug level")
}

// load resolves configuration: the --config file, then the environment
// variable, then defaults.
func (f *commonFlags) load() (*config.Config, error) {
	switch {
	case f.configPath != "":
		return config.LoadFile(f.configPath)
	case os.Getenv(config.EnvVar) != "":
		return config.Load()
	default:
		return config.Default(), nil
	}
}

func (f *commonFlags) logger(command string) *slog.Logger {
	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	return cli.NewLogger(level).With("command", command)
}

func renderer(cfg *config.Config) cli.Renderer {
	return cli.Renderer{Color: cfg.Output.Color, Style: cfg.Output.Style}
}

// choose returns flagValue when set and fallback otherwise.
func choose(flagValue, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	return fallback
}

func noArgsBeyond(command string, args []string, allowed int) error {
	if len(args) > allowed {
		return fmt.Errorf("%s: unexpected argument %q", command, args[allowed])
	}
	return nil
}
