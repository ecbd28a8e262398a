// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package traceserde

import (
	"iter"

	"github.com/bureau-foundation/tracecodec/lib/serial"
	"github.com/bureau-foundation/tracecodec/lib/tracing"
)

// fieldSource is the part of a tracing entity that records values.
// *tracing.Event, *tracing.Attributes, *tracing.Record and
// *tracing.ValueSet all satisfy it.
type fieldSource interface {
	Len() int
	Record(visitor tracing.Visitor)
}

// fields is the shared state behind the three field wrappers: either a
// live source or an owned map.
type fields struct {
	live  fieldSource
	owned RecordMap
}

func (f *fields) isLive() bool { return f.live != nil }

func (f *fields) len() int {
	if f.live != nil {
		return f.live.Len()
	}
	return f.owned.Len()
}

func (f *fields) serialize(serializer serial.Serializer) error {
	if f.live == nil {
		return f.owned.Serialize(serializer)
	}
	out, err := serializer.SerializeMap(f.live.Len())
	if err != nil {
		return err
	}
	collector := NewCollector(out)
	f.live.Record(collector)
	return collector.Finish()
}

// all yields entries. Live entries are converted as the source visits
// them; strings stay borrowed.
func (f *fields) all() iter.Seq2[StringRef, FieldValue] {
	if f.live == nil {
		return f.owned.All()
	}
	source := f.live
	return func(yield func(StringRef, FieldValue) bool) {
		stopped := false
		source.Record(fieldVisitor{sink: func(key string, value FieldValue) {
			if stopped {
				return
			}
			stopped = !yield(Borrow(key), value)
		}})
	}
}

func (f *fields) get(key string) (FieldValue, bool) {
	for k, v := range f.all() {
		if k.String() == key {
			return v, true
		}
	}
	return FieldValue{}, false
}

// EventFields is the recorded values of an event.
type EventFields[L Lifetime] struct{ fields }

// SpanFields is the values a span was created with.
type SpanFields[L Lifetime] struct{ fields }

// Record is a set of values recorded onto an existing span.
type Record[L Lifetime] struct{ fields }

// IsLive reports whether the values are read from the tracing entity.
func (f EventFields[L]) IsLive() bool { return f.isLive() }

// Len returns the number of recorded values.
func (f EventFields[L]) Len() int { return f.len() }

// All yields values in recorded order.
func (f EventFields[L]) All() iter.Seq2[StringRef, FieldValue] { return f.all() }

// Get returns the value recorded for the named field.
func (f EventFields[L]) Get(name string) (FieldValue, bool) { return f.get(name) }

func (f EventFields[L]) Serialize(serializer serial.Serializer) error {
	return f.serialize(serializer)
}

func (f SpanFields[L]) IsLive() bool                          { return f.isLive() }
func (f SpanFields[L]) Len() int                              { return f.len() }
func (f SpanFields[L]) All() iter.Seq2[StringRef, FieldValue] { return f.all() }
func (f SpanFields[L]) Get(name string) (FieldValue, bool)    { return f.get(name) }

func (f SpanFields[L]) Serialize(serializer serial.Serializer) error {
	return f.serialize(serializer)
}

func (r Record[L]) IsLive() bool                          { return r.isLive() }
func (r Record[L]) Len() int                              { return r.len() }
func (r Record[L]) All() iter.Seq2[StringRef, FieldValue] { return r.all() }
func (r Record[L]) Get(name string) (FieldValue, bool)    { return r.get(name) }

func (r Record[L]) Serialize(serializer serial.Serializer) error {
	return r.serialize(serializer)
}

func (Record[L]) sealed() {}

func decodeFields(deserializer serial.Deserializer) (fields, error) {
	m, err := DecodeRecordMap(deserializer)
	if err != nil {
		return fields{}, err
	}
	return fields{owned: m}, nil
}

// DecodeRecord reads a span record update.
func DecodeRecord(deserializer serial.Deserializer) (Record[Static], error) {
	f, err := decodeFields(deserializer)
	return Record[Static]{f}, err
}
