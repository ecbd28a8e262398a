// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package traceserde

import (
	"errors"
	"fmt"
	"iter"

	"github.com/bureau-foundation/tracecodec/lib/serial"
	"github.com/bureau-foundation/tracecodec/lib/tracing"
)

// FieldSet is the ordered list of field names a callsite declares.
type FieldSet[L Lifetime] struct {
	live  *tracing.FieldSet
	names list[StringRef]
}

// IsLive reports whether names are read from the tracing field set.
func (f FieldSet[L]) IsLive() bool { return f.live != nil }

// Len returns the number of declared fields.
func (f FieldSet[L]) Len() int {
	if f.live != nil {
		return f.live.Len()
	}
	return f.names.len()
}

// All yields field names in declaration order.
func (f FieldSet[L]) All() iter.Seq[StringRef] {
	return func(yield func(StringRef) bool) {
		if f.live != nil {
			for field := range f.live.All() {
				if !yield(Borrow(field.Name())) {
					return
				}
			}
			return
		}
		for _, name := range f.names.slice() {
			if !yield(name) {
				return
			}
		}
	}
}

func (f FieldSet[L]) Serialize(serializer serial.Serializer) error {
	out, err := serializer.SerializeSeq(f.Len())
	if err != nil {
		return err
	}
	for name := range f.All() {
		if err := out.SerializeElement(name); err != nil {
			return err
		}
	}
	return out.End()
}

// DecodeFieldSet reads a sequence of field names.
func DecodeFieldSet(deserializer serial.Deserializer) (FieldSet[Static], error) {
	names := newList[StringRef](0)
	err := deserializer.DeserializeSeq(func(element serial.Deserializer) error {
		name, err := decodeString(element)
		if err != nil {
			return err
		}
		if err := names.push(name); err != nil {
			return fmt.Errorf("field name %q: %w", name.String(), err)
		}
		return nil
	})
	if err != nil {
		return FieldSet[Static]{}, fmt.Errorf("field set: %w", err)
	}
	return FieldSet[Static]{names: names}, nil
}

// Metadata describes a callsite. Absent module path, file and line are
// written as null.
type Metadata[L Lifetime] struct {
	name       StringRef
	target     StringRef
	level      Level
	modulePath StringRef
	hasModule  bool
	file       StringRef
	hasFile    bool
	line       uint32
	hasLine    bool
	fields     FieldSet[L]
	isSpan     bool
	isEvent    bool
}

// AdaptMetadata wraps callsite metadata without copying it.
func AdaptMetadata(metadata *tracing.Metadata) Metadata[Borrowed] {
	adapted := Metadata[Borrowed]{
		name:    Borrow(metadata.Name()),
		target:  Borrow(metadata.Target()),
		level:   AdaptLevel(metadata.Level()),
		fields:  FieldSet[Borrowed]{live: metadata.Fields()},
		isSpan:  metadata.IsSpan(),
		isEvent: metadata.IsEvent(),
	}
	if modulePath, ok := metadata.ModulePath(); ok {
		adapted.modulePath, adapted.hasModule = Borrow(modulePath), true
	}
	if file, ok := metadata.File(); ok {
		adapted.file, adapted.hasFile = Borrow(file), true
	}
	adapted.line, adapted.hasLine = metadata.Line()
	return adapted
}

func (m Metadata[L]) Name() StringRef   { return m.name }
func (m Metadata[L]) Target() StringRef { return m.target }
func (m Metadata[L]) Level() Level      { return m.level }

func (m Metadata[L]) ModulePath() (StringRef, bool) { return m.modulePath, m.hasModule }
func (m Metadata[L]) File() (StringRef, bool)       { return m.file, m.hasFile }
func (m Metadata[L]) Line() (uint32, bool)          { return m.line, m.hasLine }

func (m Metadata[L]) Fields() FieldSet[L] { return m.fields }
func (m Metadata[L]) IsSpan() bool        { return m.isSpan }
func (m Metadata[L]) IsEvent() bool       { return m.isEvent }

func (m Metadata[L]) Serialize(serializer serial.Serializer) error {
	out, err := serializer.SerializeMap(9)
	if err != nil {
		return err
	}
	entries := []struct {
		key   string
		value serial.Serializable
	}{
		{"name", m.name},
		{"target", m.target},
		{"level", m.level},
		{"module_path", serial.Optional(m.modulePath, m.hasModule)},
		{"file", serial.Optional(m.file, m.hasFile)},
		{"line", serial.Optional(serial.Uint64(m.line), m.hasLine)},
		{"fields", m.fields},
		{"is_span", serial.Bool(m.isSpan)},
		{"is_event", serial.Bool(m.isEvent)},
	}
	for _, entry := range entries {
		if err := out.SerializeEntry(entry.key, entry.value); err != nil {
			return fmt.Errorf("metadata %s: %w", entry.key, err)
		}
	}
	return out.End()
}

func (Metadata[L]) sealed() {}

// DecodeMetadata reads callsite metadata. Unknown keys are skipped.
func DecodeMetadata(deserializer serial.Deserializer) (Metadata[Static], error) {
	var (
		m    Metadata[Static]
		seen = map[string]bool{}
	)
	err := deserializer.DeserializeMap(func(key string, value serial.Deserializer) error {
		var err error
		switch key {
		case "name":
			m.name, err = decodeString(value)
		case "target":
			m.target, err = decodeString(value)
		case "level":
			m.level, err = DecodeLevel(value)
		case "module_path":
			m.modulePath, m.hasModule, err = decodeOptionalString(value)
		case "file":
			m.file, m.hasFile, err = decodeOptionalString(value)
		case "line":
			m.line, m.hasLine, err = decodeOptionalLine(value)
		case "fields":
			m.fields, err = DecodeFieldSet(value)
		case "is_span":
			m.isSpan, err = value.DeserializeBool()
		case "is_event":
			m.isEvent, err = value.DeserializeBool()
		default:
			return value.Skip()
		}
		if err != nil {
			return fmt.Errorf("metadata %s: %w", key, err)
		}
		seen[key] = true
		return nil
	})
	if err != nil {
		return Metadata[Static]{}, err
	}
	for _, required := range []string{"name", "target", "level", "fields", "is_span", "is_event"} {
		if !seen[required] {
			return Metadata[Static]{}, fmt.Errorf("metadata: missing %q", required)
		}
	}
	if m.isSpan == m.isEvent {
		return Metadata[Static]{}, errors.New("metadata: exactly one of is_span and is_event must be set")
	}
	return m, nil
}

func decodeOptionalString(deserializer serial.Deserializer) (StringRef, bool, error) {
	null, err := deserializer.DeserializeNull()
	if err != nil || null {
		return StringRef{}, false, err
	}
	value, err := decodeString(deserializer)
	return value, err == nil, err
}

func decodeOptionalLine(deserializer serial.Deserializer) (uint32, bool, error) {
	null, err := deserializer.DeserializeNull()
	if err != nil || null {
		return 0, false, err
	}
	value, err := deserializer.DeserializeUint64()
	if err != nil {
		return 0, false, err
	}
	if value > 1<<32-1 {
		return 0, false, fmt.Errorf("line %d out of range", value)
	}
	return uint32(value), true, nil
}
