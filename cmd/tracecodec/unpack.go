// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !tracecodec_bounded

package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tracecodec/cmd/tracecodec/cli"
	"github.com/bureau-foundation/tracecodec/lib/tracebuf"
)

func unpackCommand() *cli.Command {
	var (
		common  commonFlags
		to      string
		flatten bool
	)
	return &cli.Command{
		Name:    "unpack",
		Summary: "Verify and decode packed frames",
		Description: `Decode a run of concatenated frames written by "tracecodec pack".

Every frame's digest is checked before its batch is decoded; a corrupt
or truncated frame stops the run with an error. By default each batch is
written as {"sequence": n, "entries": [...]}. With --entries the batches
are flattened into one entry stream, suitable for "tracecodec convert".`,
		Usage: "tracecodec unpack [--to F] [--entries] [file]",
		Examples: []cli.Example{
			{
				Description: "Show batches with their sequence numbers",
				Command:     "tracecodec unpack traces.bin",
			},
			{
				Description: "Recover the original entry stream as CBOR",
				Command:     "tracecodec unpack --entries --to cbor traces.bin > entries.cbor",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("unpack", pflag.ContinueOnError)
			common.register(flagSet)
			flagSet.StringVarP(&to, "to", "t", "json", "output format: json, cbor or yaml")
			flagSet.BoolVar(&flatten, "entries", false, "write one entry stream instead of batches")
			return flagSet
		},
		Run: func(args []string) error {
			if err := noArgsBeyond("unpack", args, 1); err != nil {
				return err
			}
			cfg, err := common.load()
			if err != nil {
				return err
			}
			output, err := lookupFormat(to)
			if err != nil {
				return err
			}
			data, err := readInput(args, os.Stdin, false)
			if err != nil {
				return err
			}
			encoded, err := unpackFrames(data, output, flatten, common.logger("unpack"))
			if err != nil {
				return err
			}
			return renderer(cfg).Write(os.Stdout, output.name, encoded)
		},
	}
}

// unpackFrames decodes every frame in data and encodes the result in
// format output.
func unpackFrames(data []byte, output format, flatten bool, logger *slog.Logger) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty input: expected packed frames")
	}

	var (
		stream  entryStream
		encoded bytes.Buffer
	)
	remaining := data
	for len(remaining) > 0 {
		offset := len(data) - len(remaining)
		batch, info, rest, err := tracebuf.DecodeBatch(remaining)
		if err != nil {
			return nil, fmt.Errorf("frame at byte %d: %w", offset, err)
		}
		logger.Debug("decoded frame",
			"offset", offset,
			"sequence", batch.Sequence,
			"entries", len(batch.Entries),
			"compression", info.Compression.String(),
			"size", info.Size,
			"compressed_size", info.CompressedSize,
			"digest", info.Digest.String(),
		)
		remaining = rest

		if flatten {
			stream = append(stream, batch.Entries...)
			continue
		}
		frame, err := output.encode(&batch)
		if err != nil {
			return nil, fmt.Errorf("batch %d: %w", batch.Sequence, err)
		}
		if output.name == "yaml" {
			encoded.WriteString("---\n")
		}
		encoded.Write(frame)
	}

	if flatten {
		return output.encode(stream)
	}
	return encoded.Bytes(), nil
}
