// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !tracecodec_bounded

package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/bureau-foundation/tracecodec/cmd/tracecodec/cli"
	"github.com/bureau-foundation/tracecodec/lib/serial"
	"github.com/bureau-foundation/tracecodec/lib/tracebuf"
	"github.com/bureau-foundation/tracecodec/lib/traceserde"
	"github.com/bureau-foundation/tracecodec/lib/tracing"
	"github.com/bureau-foundation/tracecodec/lib/tracing/otelbridge"
	"github.com/bureau-foundation/tracecodec/lib/tracing/slogbridge"
)

func sampleCommand() *cli.Command {
	var (
		common commonFlags
		to     string
		stream bool
	)
	return &cli.Command{
		Name:    "sample",
		Summary: "Write a sample event or entry stream",
		Description: `Write sample trace data for fixtures and smoke tests.

By default writes one WARN event from target "svc" named "request", with
fields code=404 (unsigned) and msg="not found". The event is serialized
straight from the live tracing value, without copying.

With --stream, writes a four-entry stream instead: a root span opened
from OpenTelemetry attributes, the same request event as its child, a
contextual event logged through slog, and a record of the response
status onto the span.`,
		Usage: "tracecodec sample [--to F] [--stream]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("sample", pflag.ContinueOnError)
			common.register(flagSet)
			flagSet.StringVarP(&to, "to", "t", "", "output format: json, cbor or yaml (default from config)")
			flagSet.BoolVar(&stream, "stream", false, "write an entry stream instead of one event")
			return flagSet
		},
		Run: func(args []string) error {
			if err := noArgsBeyond("sample", args, 0); err != nil {
				return err
			}
			cfg, err := common.load()
			if err != nil {
				return err
			}
			output, err := lookupFormat(choose(to, cfg.Format.Output))
			if err != nil {
				return err
			}

			var value serial.Serializable
			if stream {
				entries, err := sampleStream()
				if err != nil {
					return err
				}
				value = entries
			} else {
				value = traceserde.AsSerde(requestEvent(nil))
			}
			data, err := output.encode(value)
			if err != nil {
				return err
			}
			return renderer(cfg).Write(os.Stdout, output.name, data)
		},
	}
}

// sampleSpanID is the OpenTelemetry span the sample stream opens.
var sampleSpanID = trace.SpanID{0, 0, 0, 0, 0, 0, 0, 0x2a}

var sampleSpan = otelbridge.Callsite{
	Name:   "request",
	Target: "svc::http",
	Level:  tracing.LevelInfo,
}

// requestEvent is the WARN "request" event from target "svc". When
// parent is non-nil the event is its explicit child.
func requestEvent(parent *tracing.ID) *tracing.Event {
	metadata := tracing.NewMetadata(tracing.Callsite{
		Name:   "request",
		Target: "svc",
		Level:  tracing.LevelWarn,
		Fields: []string{"code", "msg"},
		Kind:   tracing.KindEvent,
	})
	values := metadata.Fields().Values(tracing.Uint64(404), tracing.String("not found"))
	if parent != nil {
		return tracing.NewChildEvent(*parent, metadata, values)
	}
	return tracing.NewEvent(metadata, values)
}

// sampleStream builds the --stream entries. Every live value is
// converted to owned form before it is queued.
func sampleStream() (entryStream, error) {
	span, _ := otelbridge.ID(sampleSpanID)
	id := traceserde.AdaptID(span)

	var entries entryStream

	attributes := otelbridge.Attributes(sampleSpan, trace.SpanContext{},
		attribute.String("http.method", "GET"),
		attribute.String("http.route", "/items/{id}"),
	)
	entries = append(entries, tracebuf.NewSpanEntry(id, traceserde.AdaptAttributes(attributes).ToOwned()))

	entries = append(entries, tracebuf.EventEntry(traceserde.AdaptEvent(requestEvent(&span)).ToOwned()))

	handler := slogbridge.NewHandler("svc::retry", slog.LevelDebug, func(_ context.Context, event *tracing.Event) error {
		entries = append(entries, tracebuf.EventEntry(traceserde.AdaptEvent(event).ToOwned()))
		return nil
	})
	record := slog.NewRecord(time.Time{}, slog.LevelWarn, "retrying", 0)
	record.AddAttrs(slog.Int("attempt", 2), slog.Group("backoff", slog.String("policy", "exponential")))
	if err := handler.Handle(context.Background(), record); err != nil {
		return nil, err
	}

	status := otelbridge.Record(sampleSpan, attribute.Int("http.status_code", 404))
	entries = append(entries, tracebuf.RecordEntry(id, traceserde.AdaptRecord(status).ToOwned()))

	return entries, nil
}
