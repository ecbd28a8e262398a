// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !tracecodec_bounded

package main

import (
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tracecodec/cmd/tracecodec/cli"
)

func convertCommand() *cli.Command {
	var (
		common   commonFlags
		from, to string
	)
	return &cli.Command{
		Name:    "convert",
		Summary: "Re-encode an entry stream in another format",
		Description: `Decode an entry stream and encode it again in another format.

Entry order, field order and value kinds are preserved, so converting
json -> cbor -> json reproduces the input up to whitespace.`,
		Usage: "tracecodec convert [--from F] [--to G] [file]",
		Examples: []cli.Example{
			{
				Description: "JSON fixture to CBOR",
				Command:     "tracecodec convert --to cbor entries.json > entries.cbor",
			},
			{
				Description: "Inspect a CBOR stream as YAML",
				Command:     "tracecodec convert --from cbor --to yaml < entries.cbor",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("convert", pflag.ContinueOnError)
			common.register(flagSet)
			flagSet.StringVarP(&from, "from", "f", "", "input format: json, cbor or yaml (default from config)")
			flagSet.StringVarP(&to, "to", "t", "", "output format: json, cbor or yaml (default from config)")
			return flagSet
		},
		Run: func(args []string) error {
			if err := noArgsBeyond("convert", args, 1); err != nil {
				return err
			}
			cfg, err := common.load()
			if err != nil {
				return err
			}
			data, err := readInput(args, os.Stdin, false)
			if err != nil {
				return err
			}
			output, target, err := convertEntries(data, choose(from, cfg.Format.Input), choose(to, cfg.Format.Output))
			if err != nil {
				return err
			}
			common.logger("convert").Debug("converted entry stream",
				"from", choose(from, cfg.Format.Input),
				"to", target,
				"input_bytes", len(data),
				"output_bytes", len(output),
			)
			return renderer(cfg).Write(os.Stdout, target, output)
		},
	}
}

// convertEntries decodes data as an entry stream in format from and
// encodes it in format to. It returns the output and the name of the
// output format.
func convertEntries(data []byte, from, to string) ([]byte, string, error) {
	input, err := lookupFormat(from)
	if err != nil {
		return nil, "", err
	}
	output, err := lookupFormat(to)
	if err != nil {
		return nil, "", err
	}
	stream, err := readEntries(data, input)
	if err != nil {
		return nil, "", err
	}
	encoded, err := output.encode(stream)
	if err != nil {
		return nil, "", err
	}
	return encoded, output.name, nil
}
