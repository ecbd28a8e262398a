// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !tracecodec_bounded

package traceserde

import (
	"strings"
)

// ToOwned returns a StringRef that does not share storage with the
// instrumentation source. Owned strings are returned unchanged.
func (s StringRef) ToOwned() StringRef {
	if !s.borrowed {
		return s
	}
	return Own(strings.Clone(s.value))
}

// ToOwned formats live debug values and detaches borrowed strings.
func (value FieldValue) ToOwned() FieldValue {
	switch {
	case value.debugLive:
		return DebugText(Own(value.debugText()))
	case value.kind == KindString || value.kind == KindDebug:
		value.text = value.text.ToOwned()
		return value
	default:
		return value
	}
}

// ToOwned returns a deep copy that owns all of its strings.
func (m *RecordMap) ToOwned() RecordMap {
	owned := NewRecordMap(m.Len())
	for key, value := range m.All() {
		// Keys are already unique, so Insert only appends.
		_ = owned.Insert(key.ToOwned(), value.ToOwned())
	}
	return owned
}

func (f *fields) toOwned() fields {
	if f.live == nil {
		return fields{owned: f.owned.ToOwned()}
	}
	owned := NewRecordMap(f.live.Len())
	f.live.Record(fieldVisitor{sink: func(key string, value FieldValue) {
		_ = owned.Insert(Own(strings.Clone(key)), value.ToOwned())
	}})
	return fields{owned: owned}
}

// ToOwned materializes the values.
func (f EventFields[L]) ToOwned() EventFields[Static] { return EventFields[Static]{f.toOwned()} }

// ToOwned materializes the values.
func (f SpanFields[L]) ToOwned() SpanFields[Static] { return SpanFields[Static]{f.toOwned()} }

// ToOwned materializes the values.
func (r Record[L]) ToOwned() Record[Static] { return Record[Static]{r.toOwned()} }

// ToOwned copies the field names.
func (f FieldSet[L]) ToOwned() FieldSet[Static] {
	names := newList[StringRef](f.Len())
	for name := range f.All() {
		_ = names.push(name.ToOwned())
	}
	return FieldSet[Static]{names: names}
}

// ToOwned copies the metadata.
func (m Metadata[L]) ToOwned() Metadata[Static] {
	return Metadata[Static]{
		name:       m.name.ToOwned(),
		target:     m.target.ToOwned(),
		level:      m.level,
		modulePath: m.modulePath.ToOwned(),
		hasModule:  m.hasModule,
		file:       m.file.ToOwned(),
		hasFile:    m.hasFile,
		line:       m.line,
		hasLine:    m.hasLine,
		fields:     m.fields.ToOwned(),
		isSpan:     m.isSpan,
		isEvent:    m.isEvent,
	}
}

// ToOwned materializes the event. The result may be retained and
// shared between goroutines.
func (e Event[L]) ToOwned() Event[Static] {
	return Event[Static]{
		fields:    e.fields.ToOwned(),
		metadata:  e.metadata.ToOwned(),
		parent:    e.parent,
		hasParent: e.hasParent,
	}
}

// ToOwned materializes the span attributes.
func (a Attributes[L]) ToOwned() Attributes[Static] {
	return Attributes[Static]{
		metadata:  a.metadata.ToOwned(),
		parent:    a.parent,
		hasParent: a.hasParent,
		isRoot:    a.isRoot,
		fields:    a.fields.ToOwned(),
	}
}
