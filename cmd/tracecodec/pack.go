// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !tracecodec_bounded

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/sys/unix"

	"github.com/bureau-foundation/tracecodec/cmd/tracecodec/cli"
	"github.com/bureau-foundation/tracecodec/lib/config"
	"github.com/bureau-foundation/tracecodec/lib/tracebuf"
)

func packCommand() *cli.Command {
	var (
		common         commonFlags
		from           string
		compression    string
		output         string
		flushThreshold int
		maxBytes       int
	)
	return &cli.Command{
		Name:    "pack",
		Summary: "Batch, compress and frame an entry stream",
		Description: `Read an entry stream and write it as concatenated frames.

Entries are accumulated until their encoded size reaches the flush
threshold, then cut into a batch, compressed and framed. Frames pass
through a bounded buffer on their way to the output; if the output falls
behind by more than the buffer size, the oldest frames are dropped and a
warning is logged.

File outputs are opened for append and locked exclusively for the
duration of the run, so concurrent packs into one spool do not
interleave frames.`,
		Usage: "tracecodec pack [--from F] [--compression C] [-o path] [file]",
		Examples: []cli.Example{
			{
				Description: "Pack a JSON fixture with zstd",
				Command:     "tracecodec pack -o traces.bin entries.json",
			},
			{
				Description: "Small batches, LZ4, to stdout",
				Command:     "tracecodec pack --compression lz4 --flush-threshold 4096 < entries.json | tracecodec unpack",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("pack", pflag.ContinueOnError)
			common.register(flagSet)
			flagSet.StringVarP(&from, "from", "f", "", "input format: json, cbor or yaml (default from config)")
			flagSet.StringVar(&compression, "compression", "", "none, lz4 or zstd (default from config)")
			flagSet.StringVarP(&output, "output", "o", "", `output path, "-" for stdout (default buffer.spool)`)
			flagSet.IntVar(&flushThreshold, "flush-threshold", 0, "batch size in bytes (default from config)")
			flagSet.IntVar(&maxBytes, "max-bytes", 0, "frame buffer bound in bytes (default from config)")
			return flagSet
		},
		Run: func(args []string) error {
			if err := noArgsBeyond("pack", args, 1); err != nil {
				return err
			}
			cfg, err := common.load()
			if err != nil {
				return err
			}
			logger := common.logger("pack")

			settings, err := resolvePackSettings(cfg, compression, flushThreshold, maxBytes)
			if err != nil {
				return err
			}
			input, err := lookupFormat(choose(from, cfg.Format.Input))
			if err != nil {
				return err
			}
			data, err := readInput(args, os.Stdin, false)
			if err != nil {
				return err
			}
			stream, err := readEntries(data, input)
			if err != nil {
				return err
			}

			w, closeOutput, err := openSpool(choose(output, cfg.Buffer.Spool))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			stats, packErr := packEntries(ctx, stream, settings, w, logger)
			closeErr := closeOutput()
			if packErr != nil {
				return packErr
			}
			if closeErr != nil {
				return closeErr
			}
			logger.Info("packed entry stream",
				"entries", stats.entries,
				"frames", stats.frames,
				"written", stats.written,
				"dropped", stats.dropped,
				"bytes", stats.bytes,
				"compression", settings.compression.String(),
			)
			return nil
		},
	}
}

type packSettings struct {
	compression    tracebuf.Compression
	flushThreshold int
	maxBytes       int
}

// resolvePackSettings applies flag overrides to the configured
// buffer settings.
func resolvePackSettings(cfg *config.Config, compression string, flushThreshold, maxBytes int) (packSettings, error) {
	parsed, err := tracebuf.ParseCompression(choose(compression, cfg.Buffer.Compression))
	if err != nil {
		return packSettings{}, err
	}
	settings := packSettings{
		compression:    parsed,
		flushThreshold: cfg.Buffer.FlushThreshold,
		maxBytes:       cfg.Buffer.MaxBytes,
	}
	if flushThreshold > 0 {
		settings.flushThreshold = flushThreshold
	}
	if maxBytes > 0 {
		settings.maxBytes = maxBytes
	}
	if settings.maxBytes <= settings.flushThreshold {
		return packSettings{}, fmt.Errorf("max bytes (%d) must exceed flush threshold (%d)",
			settings.maxBytes, settings.flushThreshold)
	}
	return settings, nil
}

type packStats struct {
	entries int
	frames  int
	written int
	dropped uint64
	bytes   int
}

// packer turns entries into frames queued on a bounded buffer.
type packer struct {
	accumulator *tracebuf.Accumulator
	buffer      *tracebuf.Buffer
	compression tracebuf.Compression
	frames      int
	logger      *slog.Logger
}

func newPacker(settings packSettings, logger *slog.Logger) *packer {
	return &packer{
		accumulator: tracebuf.NewAccumulator(settings.flushThreshold),
		buffer:      tracebuf.NewBuffer(settings.maxBytes, logger),
		compression: settings.compression,
		logger:      logger,
	}
}

func (p *packer) add(entry tracebuf.Entry) error {
	full, err := p.accumulator.Add(entry)
	if err != nil {
		return err
	}
	if full {
		return p.flush()
	}
	return nil
}

// flush frames whatever the accumulator holds.
func (p *packer) flush() error {
	batch := p.accumulator.Flush()
	if batch == nil {
		return nil
	}
	frame, err := tracebuf.EncodeBatch(batch, p.compression)
	if err != nil {
		return err
	}
	if err := p.buffer.Push(frame); err != nil {
		return fmt.Errorf("batch %d: %w", batch.Sequence, err)
	}
	p.frames++
	p.logger.Debug("framed batch",
		"sequence", batch.Sequence,
		"entries", len(batch.Entries),
		"frame_bytes", len(frame),
	)
	return nil
}

// drainFrames writes frames from buffer to w as they arrive. It
// returns once produced is closed and the buffer is empty.
func drainFrames(ctx context.Context, buffer *tracebuf.Buffer, produced <-chan struct{}, w io.Writer) (written, size int, err error) {
	drain := func() error {
		for frame := buffer.Take(); frame != nil; frame = buffer.Take() {
			if _, err := w.Write(frame); err != nil {
				return fmt.Errorf("write frame: %w", err)
			}
			written++
			size += len(frame)
		}
		return nil
	}
	for {
		if err := drain(); err != nil {
			return written, size, err
		}
		select {
		case <-buffer.Notify():
		case <-produced:
			return written, size, drain()
		case <-ctx.Done():
			return written, size, ctx.Err()
		}
	}
}

// packEntries frames stream onto w. Framing and writing run
// concurrently, joined by the bounded buffer.
func packEntries(ctx context.Context, stream entryStream, settings packSettings, w io.Writer, logger *slog.Logger) (packStats, error) {
	p := newPacker(settings, logger)
	produced := make(chan struct{})

	type drainResult struct {
		written, size int
		err           error
	}
	results := make(chan drainResult, 1)
	go func() {
		written, size, err := drainFrames(ctx, p.buffer, produced, w)
		results <- drainResult{written, size, err}
	}()

	produceErr := func() error {
		defer close(produced)
		for i, entry := range stream {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := p.add(entry); err != nil {
				return fmt.Errorf("entry %d: %w", i, err)
			}
		}
		return p.flush()
	}()
	result := <-results

	stats := packStats{
		entries: len(stream),
		frames:  p.frames,
		written: result.written,
		dropped: p.buffer.Dropped(),
		bytes:   result.size,
	}
	if produceErr != nil {
		return stats, produceErr
	}
	return stats, result.err
}

// openSpool opens path for appending frames, holding an exclusive
// lock until the returned close function runs. "-" is stdout.
func openSpool(path string) (io.Writer, func() error, error) {
	if path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open spool: %w", err)
	}
	if err := unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		file.Close()
		return nil, nil, fmt.Errorf("lock spool %s: %w", path, err)
	}
	closeSpool := func() error {
		syncErr := file.Sync()
		if err := file.Close(); err != nil {
			return fmt.Errorf("close spool: %w", err)
		}
		if syncErr != nil {
			return fmt.Errorf("sync spool: %w", syncErr)
		}
		return nil
	}
	return file, closeSpool, nil
}
