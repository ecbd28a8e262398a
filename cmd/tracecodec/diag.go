// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !tracecodec_bounded

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tracecodec/cmd/tracecodec/cli"
	"github.com/bureau-foundation/tracecodec/lib/codec"
)

func diagCommand() *cli.Command {
	var (
		common   commonFlags
		hexInput bool
	)
	return &cli.Command{
		Name:    "diag",
		Summary: "Print CBOR in diagnostic notation",
		Description: `Write RFC 8949 diagnostic notation for each CBOR item in the input,
one per line.

Diagnostic notation shows the exact wire form: definite versus
indefinite length containers, integer versus float, and the tagged map
that carries each field value ({"U64": 404}).`,
		Usage: "tracecodec diag [--hex] [file]",
		Examples: []cli.Example{
			{
				Description: "Inspect a CBOR entry stream",
				Command:     "tracecodec diag entries.cbor",
			},
			{
				Description: "Inspect hex pasted from a log",
				Command:     "echo 'a1 62 69 64 07' | tracecodec diag --hex",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("diag", pflag.ContinueOnError)
			common.register(flagSet)
			flagSet.BoolVarP(&hexInput, "hex", "x", false, "input is hex-encoded CBOR")
			return flagSet
		},
		Run: func(args []string) error {
			if err := noArgsBeyond("diag", args, 1); err != nil {
				return err
			}
			data, err := readInput(args, os.Stdin, hexInput)
			if err != nil {
				return err
			}
			return diagCBOR(data, os.Stdout)
		},
	}
}

// diagCBOR writes diagnostic notation for each item of a CBOR
// sequence in data.
func diagCBOR(data []byte, w io.Writer) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected CBOR data")
	}
	remaining := data
	for len(remaining) > 0 {
		notation, rest, err := codec.DiagnoseFirst(remaining)
		if err != nil {
			return fmt.Errorf("diagnose CBOR at byte %d: %w", len(data)-len(remaining), err)
		}
		if _, err := fmt.Fprintln(w, notation); err != nil {
			return err
		}
		remaining = rest
	}
	return nil
}
