// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tracing

import (
	"fmt"
	"iter"
)

// Field is one named slot in a [FieldSet]. A Field is only meaningful
// relative to the set it came from: two sets may both contain a
// "message" field at different indexes.
type Field struct {
	name  string
	index int
	set   *FieldSet
}

// Name returns the field's name.
func (field Field) Name() string { return field.name }

// Index returns the field's position in its set's declaration order.
func (field Field) Index() int { return field.index }

// String returns the field's name.
func (field Field) String() string { return field.name }

// FieldSet is the declaration-ordered, duplicate-free list of field
// names for one callsite. A FieldSet is immutable after construction
// and shared by every event or span created at the callsite.
type FieldSet struct {
	names []string
}

// NewFieldSet creates a FieldSet from names in declaration order.
// Panics on a duplicate name: every consumer keys values by name, so a
// duplicate would silently shadow a value.
func NewFieldSet(names ...string) *FieldSet {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, duplicate := seen[name]; duplicate {
			panic(fmt.Sprintf("tracing: duplicate field name %q", name))
		}
		seen[name] = struct{}{}
	}
	return &FieldSet{names: append([]string(nil), names...)}
}

// Len returns the number of declared fields.
func (set *FieldSet) Len() int { return len(set.names) }

// Field returns the field at index. Panics if index is out of range.
func (set *FieldSet) Field(index int) Field {
	return Field{name: set.names[index], index: index, set: set}
}

// Lookup returns the field with the given name.
func (set *FieldSet) Lookup(name string) (Field, bool) {
	for index, candidate := range set.names {
		if candidate == name {
			return Field{name: candidate, index: index, set: set}, true
		}
	}
	return Field{}, false
}

// Contains reports whether field belongs to this set.
func (set *FieldSet) Contains(field Field) bool {
	return field.set == set
}

// All iterates the fields in declaration order.
func (set *FieldSet) All() iter.Seq[Field] {
	return func(yield func(Field) bool) {
		for index := range set.names {
			if !yield(set.Field(index)) {
				return
			}
		}
	}
}

// Values binds values to this set's fields positionally: values[i] is
// recorded for Field(i). A nil entry means the field was declared but
// not recorded. Panics if more values than fields are given.
func (set *FieldSet) Values(values ...Value) *ValueSet {
	if len(values) > len(set.names) {
		panic(fmt.Sprintf("tracing: %d values for a set of %d fields", len(values), len(set.names)))
	}
	bound := make([]Value, len(set.names))
	copy(bound, values)
	return &ValueSet{fields: set, values: bound}
}
