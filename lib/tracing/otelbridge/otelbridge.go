// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package otelbridge builds tracing entities from OpenTelemetry
// attributes and span contexts.
//
// OpenTelemetry span IDs are 8 bytes; they map to tracing IDs as a
// big-endian uint64. An invalid (all-zero) span ID has no tracing
// equivalent and is reported as absent.
package otelbridge

import (
	"encoding/binary"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/bureau-foundation/tracecodec/lib/tracing"
)

// ID converts an OpenTelemetry span ID.
func ID(spanID trace.SpanID) (tracing.ID, bool) {
	if !spanID.IsValid() {
		return tracing.ID{}, false
	}
	return tracing.NewID(binary.BigEndian.Uint64(spanID[:])), true
}

// SpanID converts a tracing ID back to an OpenTelemetry span ID.
func SpanID(id tracing.ID) trace.SpanID {
	var spanID trace.SpanID
	binary.BigEndian.PutUint64(spanID[:], id.Uint64())
	return spanID
}

// Value converts an attribute value. Slices have no primitive form and
// are recorded as debug values.
func Value(value attribute.Value) tracing.Value {
	switch value.Type() {
	case attribute.BOOL:
		return tracing.Bool(value.AsBool())
	case attribute.INT64:
		return tracing.Int64(value.AsInt64())
	case attribute.FLOAT64:
		return tracing.Float64(value.AsFloat64())
	case attribute.STRING:
		return tracing.String(value.AsString())
	case attribute.INVALID:
		return nil
	default:
		return tracing.Debug(value.AsInterface())
	}
}

// Callsite describes where an event or span was recorded. Fields are
// filled in from the attribute keys.
type Callsite struct {
	Name       string
	Target     string
	Level      tracing.Level
	ModulePath string
	File       string
	Line       uint32
}

// bind builds metadata whose fields are the attribute keys in order.
// A repeated key keeps its first position and its last value.
func bind(callsite Callsite, kind tracing.Kind, attributes []attribute.KeyValue) (*tracing.Metadata, *tracing.ValueSet) {
	var (
		names  []string
		values []tracing.Value
		index  = make(map[attribute.Key]int, len(attributes))
	)
	for _, kv := range attributes {
		if i, ok := index[kv.Key]; ok {
			values[i] = Value(kv.Value)
			continue
		}
		index[kv.Key] = len(names)
		names = append(names, string(kv.Key))
		values = append(values, Value(kv.Value))
	}
	metadata := tracing.NewMetadata(tracing.Callsite{
		Name:       callsite.Name,
		Target:     callsite.Target,
		Level:      callsite.Level,
		ModulePath: callsite.ModulePath,
		File:       callsite.File,
		Line:       callsite.Line,
		Fields:     names,
		Kind:       kind,
	})
	return metadata, metadata.Fields().Values(values...)
}

// Event builds an event. When parent carries a valid span ID the event
// is an explicit child of that span; otherwise it is contextual.
func Event(callsite Callsite, parent trace.SpanContext, attributes ...attribute.KeyValue) *tracing.Event {
	metadata, values := bind(callsite, tracing.KindEvent, attributes)
	if id, ok := ID(parent.SpanID()); ok {
		return tracing.NewChildEvent(id, metadata, values)
	}
	return tracing.NewEvent(metadata, values)
}

// Attributes builds span attributes. A parent with a valid span ID
// makes the span its explicit child; an invalid parent makes it a
// root.
func Attributes(callsite Callsite, parent trace.SpanContext, attributes ...attribute.KeyValue) *tracing.Attributes {
	metadata, values := bind(callsite, tracing.KindSpan, attributes)
	if id, ok := ID(parent.SpanID()); ok {
		return tracing.NewChildAttributes(id, metadata, values)
	}
	return tracing.NewRootAttributes(metadata, values)
}

// Record builds a record of attributes set on an existing span. The
// callsite is the span's, so that field names resolve against it.
func Record(callsite Callsite, attributes ...attribute.KeyValue) *tracing.Record {
	_, values := bind(callsite, tracing.KindSpan, attributes)
	return tracing.NewRecord(values)
}
