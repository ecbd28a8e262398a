// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !tracecodec_bounded

package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/bureau-foundation/tracecodec/lib/config"
	"github.com/bureau-foundation/tracecodec/lib/testutil"
	"github.com/bureau-foundation/tracecodec/lib/tracebuf"
	"github.com/bureau-foundation/tracecodec/lib/traceserde"
	"github.com/bureau-foundation/tracecodec/lib/tracing"
)

var discard = slog.New(slog.DiscardHandler)

func sampleJSON(t *testing.T) []byte {
	t.Helper()
	stream, err := sampleStream()
	if err != nil {
		t.Fatalf("sampleStream: %v", err)
	}
	data, err := formats["json"].encode(stream)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return data
}

func TestSampleEventJSON(t *testing.T) {
	data, err := formats["json"].encode(traceserde.AsSerde(requestEvent(nil)))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `{"fields":{"code":{"U64":404},"msg":{"Str":"not found"}},` +
		`"metadata":{"name":"request","target":"svc","level":"WARN",` +
		`"module_path":null,"file":null,"line":null,"fields":["code","msg"],` +
		`"is_span":false,"is_event":true},"parent":null}` + "\n"
	if string(data) != want {
		t.Fatalf("got  %s\nwant %s", data, want)
	}
}

func TestSampleStream(t *testing.T) {
	stream, err := sampleStream()
	if err != nil {
		t.Fatalf("sampleStream: %v", err)
	}

	var kinds []tracebuf.EntryKind
	for _, entry := range stream {
		kinds = append(kinds, entry.Kind())
	}
	wantKinds := []tracebuf.EntryKind{tracebuf.EntryNewSpan, tracebuf.EntryEvent, tracebuf.EntryEvent, tracebuf.EntryRecord}
	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Fatalf("entry kinds (-want +got):\n%s", diff)
	}

	if stream[0].Span().Uint64() != 42 || stream[3].Span().Uint64() != 42 {
		t.Errorf("span ids = %d/%d, want 42", stream[0].Span().Uint64(), stream[3].Span().Uint64())
	}
	if parent, ok := stream[1].Event().Parent(); !ok || parent.Uint64() != 42 {
		t.Errorf("request event parent = %v/%v, want 42", parent, ok)
	}
	if !stream[0].Attributes().IsRoot() {
		t.Error("span should be a root")
	}

	var names []string
	for name := range stream[2].Event().Metadata().Fields().All() {
		names = append(names, name.String())
	}
	if diff := cmp.Diff([]string{"message", "attempt", "backoff.policy"}, names); diff != "" {
		t.Errorf("slog event fields (-want +got):\n%s", diff)
	}
}

func TestConvertRoundTrip(t *testing.T) {
	original := sampleJSON(t)

	current, name := original, "json"
	for _, next := range []string{"cbor", "yaml", "cbor", "json"} {
		converted, got, err := convertEntries(current, name, next)
		if err != nil {
			t.Fatalf("%s -> %s: %v", name, next, err)
		}
		if got != next {
			t.Fatalf("output format = %s, want %s", got, next)
		}
		current, name = converted, next
	}
	if !bytes.Equal(current, original) {
		t.Fatalf("round trip changed the stream\ngot  %s\nwant %s", current, original)
	}
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		from, to string
		want     string
	}{
		{"unknown input format", `[]`, "xml", "json", `unknown format "xml"`},
		{"unknown output format", `[]`, "json", "toml", `unknown format "toml"`},
		{"not a sequence", `{"event":{}}`, "json", "json", "decode json entry stream"},
		{"unknown entry kind", `[{"close":{}}]`, "json", "json", "entry 0"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := convertEntries([]byte(test.data), test.from, test.to)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error = %q, want it to contain %q", err, test.want)
			}
		})
	}
}

func TestConvertEmptyStream(t *testing.T) {
	output, _, err := convertEntries([]byte(" [ ] "), "json", "json")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if string(output) != "[]\n" {
		t.Errorf("output = %q, want []", output)
	}
}

func TestDiagCBOR(t *testing.T) {
	event, err := formats["cbor"].encode(traceserde.AsSerde(requestEvent(nil)))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	id, err := formats["cbor"].encode(traceserde.AdaptID(tracing.NewID(42)))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var output bytes.Buffer
	if err := diagCBOR(append(event, id...), &output); err != nil {
		t.Fatalf("diagCBOR: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(output.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), output.String())
	}
	if !strings.Contains(lines[0], `"U64": 404`) {
		t.Errorf("first item should show the tagged value: %s", lines[0])
	}
	if lines[1] != `{"id": 42}` {
		t.Errorf("second item = %s, want {\"id\": 42}", lines[1])
	}
}

func TestDiagCBORErrors(t *testing.T) {
	if err := diagCBOR(nil, &bytes.Buffer{}); err == nil {
		t.Error("empty input accepted")
	}
	err := diagCBOR([]byte{0xa1, 0x62, 0x69}, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "at byte 0") {
		t.Errorf("truncated input error = %v", err)
	}
}

func TestReadInputHex(t *testing.T) {
	data, err := readInput(nil, strings.NewReader("a1 62 69\n64 07"), true)
	if err != nil {
		t.Fatalf("readInput: %v", err)
	}
	if !bytes.Equal(data, []byte{0xa1, 0x62, 0x69, 0x64, 0x07}) {
		t.Errorf("decoded %x", data)
	}
	if _, err := readInput(nil, strings.NewReader("  \n"), true); err == nil {
		t.Error("blank hex accepted")
	}
	if _, err := readInput(nil, strings.NewReader("zz"), true); err == nil {
		t.Error("invalid hex accepted")
	}
}

func TestReadInputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.json")
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}
	data, err := readInput([]string{path}, strings.NewReader("ignored"), false)
	if err != nil {
		t.Fatalf("readInput: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("read %q", data)
	}
	if _, err := readInput([]string{filepath.Join(t.TempDir(), "absent")}, nil, false); err == nil {
		t.Error("missing file accepted")
	}
}

func TestPackUnpack(t *testing.T) {
	original := sampleJSON(t)
	stream, err := readEntries(original, formats["json"])
	if err != nil {
		t.Fatalf("readEntries: %v", err)
	}

	for _, compression := range []tracebuf.Compression{tracebuf.CompressionNone, tracebuf.CompressionLZ4, tracebuf.CompressionZstd} {
		t.Run(compression.String(), func(t *testing.T) {
			settings := packSettings{compression: compression, flushThreshold: 1, maxBytes: 1 << 20}
			var packed bytes.Buffer
			stats, err := packEntries(context.Background(), stream, settings, &packed, discard)
			if err != nil {
				t.Fatalf("packEntries: %v", err)
			}
			// A threshold of one byte cuts every entry into its own frame.
			if stats.frames != len(stream) || stats.written != len(stream) || stats.dropped != 0 {
				t.Fatalf("stats = %+v, want %d frames written, none dropped", stats, len(stream))
			}
			if stats.bytes != packed.Len() {
				t.Fatalf("stats.bytes = %d, wrote %d", stats.bytes, packed.Len())
			}

			unpacked, err := unpackFrames(packed.Bytes(), formats["json"], true, discard)
			if err != nil {
				t.Fatalf("unpackFrames: %v", err)
			}
			if !bytes.Equal(unpacked, original) {
				t.Fatalf("unpacked stream differs\ngot  %s\nwant %s", unpacked, original)
			}
		})
	}
}

func TestUnpackBatches(t *testing.T) {
	stream, err := sampleStream()
	if err != nil {
		t.Fatal(err)
	}
	var packed bytes.Buffer
	settings := packSettings{compression: tracebuf.CompressionZstd, flushThreshold: 0, maxBytes: 1 << 20}
	if _, err := packEntries(context.Background(), stream, settings, &packed, discard); err != nil {
		t.Fatalf("packEntries: %v", err)
	}

	output, err := unpackFrames(packed.Bytes(), formats["yaml"], false, discard)
	if err != nil {
		t.Fatalf("unpackFrames: %v", err)
	}
	text := string(output)
	if !strings.HasPrefix(text, "---\nsequence: 0\nentries:\n") {
		t.Errorf("unexpected batch document:\n%s", text)
	}
	if strings.Count(text, "---\n") != 1 {
		t.Errorf("zero threshold should produce a single batch:\n%s", text)
	}
}

func TestUnpackRejectsCorruptFrame(t *testing.T) {
	stream, err := sampleStream()
	if err != nil {
		t.Fatal(err)
	}
	var packed bytes.Buffer
	settings := packSettings{compression: tracebuf.CompressionNone, flushThreshold: 0, maxBytes: 1 << 20}
	if _, err := packEntries(context.Background(), stream, settings, &packed, discard); err != nil {
		t.Fatal(err)
	}
	frame := packed.Bytes()
	frame[len(frame)-2] ^= 0xff

	_, err = unpackFrames(frame, formats["json"], true, discard)
	if !errors.Is(err, tracebuf.ErrDigestMismatch) {
		t.Fatalf("error = %v, want digest mismatch", err)
	}
}

func TestPackerDropsOldestWhenOutputStalls(t *testing.T) {
	stream, err := sampleStream()
	if err != nil {
		t.Fatal(err)
	}
	entry := stream[1]

	single, err := tracebuf.EncodeBatch(&tracebuf.Batch{Entries: []tracebuf.Entry{entry}}, tracebuf.CompressionNone)
	if err != nil {
		t.Fatal(err)
	}
	// Room for two frames; every entry is cut into its own frame.
	p := newPacker(packSettings{
		compression:    tracebuf.CompressionNone,
		flushThreshold: 1,
		maxBytes:       2 * len(single),
	}, discard)
	for range 10 {
		if err := p.add(entry); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if p.frames != 10 || p.buffer.Dropped() != 8 {
		t.Fatalf("frames=%d dropped=%d, want 10 and 8", p.frames, p.buffer.Dropped())
	}

	produced := make(chan struct{})
	close(produced)
	var output bytes.Buffer
	written, _, err := drainFrames(context.Background(), p.buffer, produced, &output)
	if err != nil {
		t.Fatalf("drainFrames: %v", err)
	}
	if written != 2 {
		t.Fatalf("wrote %d frames, want 2", written)
	}

	var sequences []uint64
	for remaining := output.Bytes(); len(remaining) > 0; {
		batch, _, rest, err := tracebuf.DecodeBatch(remaining)
		if err != nil {
			t.Fatal(err)
		}
		sequences = append(sequences, batch.Sequence)
		remaining = rest
	}
	if !slices.Equal(sequences, []uint64{8, 9}) {
		t.Errorf("surviving sequences = %v, want [8 9]", sequences)
	}
}

func TestDrainFramesFollowsProducer(t *testing.T) {
	buffer := tracebuf.NewBuffer(1024, nil)
	produced := make(chan struct{})
	var output bytes.Buffer
	done := make(chan int)
	go func() {
		written, _, err := drainFrames(context.Background(), buffer, produced, &output)
		if err != nil {
			t.Errorf("drainFrames: %v", err)
		}
		done <- written
	}()

	for _, frame := range []string{"a", "b", "c"} {
		if err := buffer.Push([]byte(frame)); err != nil {
			t.Fatal(err)
		}
	}
	close(produced)

	if written := testutil.RequireReceive(t, done, 5*time.Second, "drain to finish"); written != 3 {
		t.Fatalf("wrote %d frames, want 3", written)
	}
	if output.String() != "abc" {
		t.Errorf("output = %q, want abc", output.String())
	}
}

func TestDrainFramesCancelled(t *testing.T) {
	buffer := tracebuf.NewBuffer(1024, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := drainFrames(ctx, buffer, make(chan struct{}), &bytes.Buffer{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestResolvePackSettings(t *testing.T) {
	cfg := config.Default()

	settings, err := resolvePackSettings(cfg, "", 0, 0)
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if settings.compression != tracebuf.CompressionZstd ||
		settings.flushThreshold != cfg.Buffer.FlushThreshold ||
		settings.maxBytes != cfg.Buffer.MaxBytes {
		t.Errorf("defaults not applied: %+v", settings)
	}

	settings, err = resolvePackSettings(cfg, "lz4", 100, 1000)
	if err != nil {
		t.Fatalf("overrides: %v", err)
	}
	if settings.compression != tracebuf.CompressionLZ4 || settings.flushThreshold != 100 || settings.maxBytes != 1000 {
		t.Errorf("overrides not applied: %+v", settings)
	}

	if _, err := resolvePackSettings(cfg, "gzip", 0, 0); err == nil {
		t.Error("unknown compression accepted")
	}
	if _, err := resolvePackSettings(cfg, "", 1000, 1000); err == nil {
		t.Error("max bytes equal to threshold accepted")
	}
}

func TestOpenSpoolLocksAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces.bin")

	w, closeSpool, err := openSpool(path)
	if err != nil {
		t.Fatalf("openSpool: %v", err)
	}
	if _, err := w.Write([]byte("one")); err != nil {
		t.Fatal(err)
	}
	if _, _, err := openSpool(path); err == nil {
		t.Fatal("second open of a locked spool succeeded")
	}
	if err := closeSpool(); err != nil {
		t.Fatalf("close: %v", err)
	}

	w, closeSpool, err = openSpool(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	w.Write([]byte("two"))
	if err := closeSpool(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "onetwo" {
		t.Errorf("spool = %q, want onetwo", data)
	}
}

func TestRootHelp(t *testing.T) {
	var output bytes.Buffer
	root := Root()
	root.Output = &output
	if err := root.Execute([]string{"--help"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	for _, name := range []string{"convert", "diag", "pack", "unpack", "sample"} {
		if !strings.Contains(output.String(), name) {
			t.Errorf("help does not list %s", name)
		}
	}
}

func TestCommonFlagsLoad(t *testing.T) {
	t.Setenv(config.EnvVar, "")

	var flags commonFlags
	cfg, err := flags.load()
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if diff := cmp.Diff(config.Default(), cfg); diff != "" {
		t.Errorf("defaults (-want +got):\n%s", diff)
	}

	path := filepath.Join(t.TempDir(), "tracecodec.yaml")
	if err := os.WriteFile(path, []byte("format:\n  output: yaml\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvVar, path)
	cfg, err = flags.load()
	if err != nil {
		t.Fatalf("load from env: %v", err)
	}
	if cfg.Format.Output != "yaml" {
		t.Errorf("format.output = %s, want yaml", cfg.Format.Output)
	}

	flags.configPath = filepath.Join(t.TempDir(), "absent.yaml")
	if _, err := flags.load(); err == nil {
		t.Error("missing --config file accepted")
	}
}
