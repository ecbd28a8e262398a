// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package traceserde

import (
	"fmt"
	"iter"

	"github.com/bureau-foundation/tracecodec/lib/serial"
)

type recordEntry struct {
	key   StringRef
	value FieldValue
}

// RecordMap is an ordered map from field name to value. Keys are
// unique; iteration follows insertion order, and re-inserting a key
// replaces its value without moving it.
//
// Copying a RecordMap shares its storage in the default build. Treat a
// RecordMap reached through a wrapper as read-only.
type RecordMap struct {
	entries list[recordEntry]
}

// NewRecordMap returns an empty map with room for capacity entries.
func NewRecordMap(capacity int) RecordMap {
	return RecordMap{entries: newList[recordEntry](capacity)}
}

// Len returns the number of entries.
func (m *RecordMap) Len() int { return m.entries.len() }

// Insert adds key with value, or replaces the value if key is present.
// In a bounded build Insert fails with ErrCapacity when the map is full
// and key is new; the map is unchanged in that case.
func (m *RecordMap) Insert(key StringRef, value FieldValue) error {
	entries := m.entries.slice()
	for i := range entries {
		if entries[i].key.Equal(key) {
			entries[i].value = value
			return nil
		}
	}
	if err := m.entries.push(recordEntry{key: key, value: value}); err != nil {
		return fmt.Errorf("inserting field %q: %w", key.String(), err)
	}
	return nil
}

// Get returns the value stored under key.
func (m *RecordMap) Get(key string) (FieldValue, bool) {
	for _, entry := range m.entries.slice() {
		if entry.key.String() == key {
			return entry.value, true
		}
	}
	return FieldValue{}, false
}

// All yields entries in insertion order.
func (m *RecordMap) All() iter.Seq2[StringRef, FieldValue] {
	return func(yield func(StringRef, FieldValue) bool) {
		for _, entry := range m.entries.slice() {
			if !yield(entry.key, entry.value) {
				return
			}
		}
	}
}

// Equal reports whether both maps hold equal entries in the same order.
func (m *RecordMap) Equal(other *RecordMap) bool {
	a, b := m.entries.slice(), other.entries.slice()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].key.Equal(b[i].key) || !a[i].value.Equal(b[i].value) {
			return false
		}
	}
	return true
}

// Serialize writes the entries as a map of known size.
func (m *RecordMap) Serialize(serializer serial.Serializer) error {
	out, err := serializer.SerializeMap(m.Len())
	if err != nil {
		return err
	}
	for _, entry := range m.entries.slice() {
		if err := out.SerializeEntry(entry.key.String(), entry.value); err != nil {
			return err
		}
	}
	return out.End()
}

// DecodeRecordMap reads a field map, keeping the encoded entry order.
func DecodeRecordMap(deserializer serial.Deserializer) (RecordMap, error) {
	m := NewRecordMap(0)
	err := deserializer.DeserializeMap(func(key string, value serial.Deserializer) error {
		fieldValue, err := DecodeFieldValue(value)
		if err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		return m.Insert(Own(key), fieldValue)
	})
	if err != nil {
		return RecordMap{}, err
	}
	return m, nil
}
