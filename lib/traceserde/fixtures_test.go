// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package traceserde_test

import (
	"github.com/bureau-foundation/tracecodec/lib/serial"
	"github.com/bureau-foundation/tracecodec/lib/serial/cbor"
	"github.com/bureau-foundation/tracecodec/lib/serial/json"
	"github.com/bureau-foundation/tracecodec/lib/serial/yaml"
	"github.com/bureau-foundation/tracecodec/lib/tracing"
)

type backend struct {
	name      string
	marshal   func(serial.Serializable) ([]byte, error)
	unmarshal func([]byte, serial.Deserializable) error
}

var backends = []backend{
	{"cbor", cbor.Marshal, cbor.Unmarshal},
	{"json", json.Marshal, json.Unmarshal},
	{"yaml", yaml.Marshal, yaml.Unmarshal},
}

type point struct {
	X, Y int
}

// requestEvent is a WARN event from target "svc" with code=404 and
// msg="not found".
func requestEvent() *tracing.Event {
	metadata := tracing.NewMetadata(tracing.Callsite{
		Name:   "request",
		Target: "svc",
		Level:  tracing.LevelWarn,
		Fields: []string{"code", "msg"},
		Kind:   tracing.KindEvent,
	})
	values := metadata.Fields().Values(tracing.Uint64(404), tracing.String("not found"))
	return tracing.NewEvent(metadata, values)
}

// richMetadata declares fields in an order that is not sorted, with
// one field left unrecorded by the entity constructors below.
func richMetadata(kind tracing.Kind) *tracing.Metadata {
	return tracing.NewMetadata(tracing.Callsite{
		Name:       "handle",
		Target:     "svc::http",
		Level:      tracing.LevelInfo,
		ModulePath: "svc/http",
		File:       "server.go",
		Line:       42,
		Fields:     []string{"zulu", "alpha", "mid", "flag", "text", "dbg", "skipped"},
		Kind:       kind,
	})
}

func richValues(metadata *tracing.Metadata) *tracing.ValueSet {
	return metadata.Fields().Values(
		tracing.Int64(-7),
		tracing.Uint64(7),
		tracing.Float64(2.5),
		tracing.Bool(true),
		tracing.String("hello"),
		tracing.Debug(point{X: 1, Y: 2}),
		nil,
	)
}

func richEvent() *tracing.Event {
	metadata := richMetadata(tracing.KindEvent)
	return tracing.NewChildEvent(tracing.NewID(9), metadata, richValues(metadata))
}

func richAttributes() *tracing.Attributes {
	metadata := richMetadata(tracing.KindSpan)
	return tracing.NewRootAttributes(metadata, richValues(metadata))
}

func richRecord() *tracing.Record {
	return tracing.NewRecord(richValues(richMetadata(tracing.KindSpan)))
}

// wantRichKeys is the visitation order of richValues.
var wantRichKeys = []string{"zulu", "alpha", "mid", "flag", "text", "dbg"}
