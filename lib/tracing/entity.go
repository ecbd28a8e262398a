// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tracing

import "fmt"

// ValueSet holds the values recorded against a [FieldSet]. Fields that
// were declared but not recorded are skipped by Record and not counted
// by Len.
type ValueSet struct {
	fields *FieldSet
	values []Value
}

// Fields returns the set the values are bound to.
func (values *ValueSet) Fields() *FieldSet { return values.fields }

// Len returns the number of recorded values.
func (values *ValueSet) Len() int {
	count := 0
	for _, value := range values.values {
		if value != nil {
			count++
		}
	}
	return count
}

// IsEmpty reports whether no values were recorded.
func (values *ValueSet) IsEmpty() bool { return values.Len() == 0 }

// Contains reports whether a value was recorded for field.
func (values *ValueSet) Contains(field Field) bool {
	return values.fields.Contains(field) && values.values[field.index] != nil
}

// Record visits every recorded value in declaration order.
func (values *ValueSet) Record(visitor Visitor) {
	for index, value := range values.values {
		if value == nil {
			continue
		}
		value.Record(values.fields.Field(index), visitor)
	}
}

// parent says where an event or span sits in the span tree.
type parent struct {
	kind parentKind
	id   ID
}

type parentKind uint8

const (
	// parentContextual: the parent is whatever span the consumer
	// considers current.
	parentContextual parentKind = iota
	parentRoot
	parentExplicit
)

func contextualParent() parent { return parent{kind: parentContextual} }

func rootParent() parent { return parent{kind: parentRoot} }

func explicitParent(id ID) parent {
	if id.IsZero() {
		panic("tracing: explicit parent must be a nonzero ID")
	}
	return parent{kind: parentExplicit, id: id}
}

func checkBinding(metadata *Metadata, values *ValueSet, kind Kind) {
	if values.fields != metadata.fields {
		panic(fmt.Sprintf("tracing: values for callsite %q are bound to a different field set", metadata.name))
	}
	if metadata.kind != kind {
		panic(fmt.Sprintf("tracing: callsite %q has kind %d, want %d", metadata.name, metadata.kind, kind))
	}
}

// Event is a point-in-time record produced at an event callsite.
type Event struct {
	metadata *Metadata
	values   *ValueSet
	parent   parent
}

// NewEvent creates an event whose parent is the consumer's current
// span. Panics if values are not bound to metadata's field set or if
// metadata is not an event callsite.
func NewEvent(metadata *Metadata, values *ValueSet) *Event {
	checkBinding(metadata, values, KindEvent)
	return &Event{metadata: metadata, values: values, parent: contextualParent()}
}

// NewRootEvent creates an event with no parent span.
func NewRootEvent(metadata *Metadata, values *ValueSet) *Event {
	checkBinding(metadata, values, KindEvent)
	return &Event{metadata: metadata, values: values, parent: rootParent()}
}

// NewChildEvent creates an event explicitly parented to span.
func NewChildEvent(span ID, metadata *Metadata, values *ValueSet) *Event {
	checkBinding(metadata, values, KindEvent)
	return &Event{metadata: metadata, values: values, parent: explicitParent(span)}
}

// Metadata returns the event's callsite metadata.
func (event *Event) Metadata() *Metadata { return event.metadata }

// Parent returns the explicit parent span, if one was given.
func (event *Event) Parent() (ID, bool) {
	return event.parent.id, event.parent.kind == parentExplicit
}

// IsRoot reports whether the event was explicitly created without a
// parent.
func (event *Event) IsRoot() bool { return event.parent.kind == parentRoot }

// IsContextual reports whether the event's parent is the consumer's
// current span.
func (event *Event) IsContextual() bool { return event.parent.kind == parentContextual }

// Len returns the number of recorded field values.
func (event *Event) Len() int { return event.values.Len() }

// Record visits the event's recorded values in declaration order.
func (event *Event) Record(visitor Visitor) { event.values.Record(visitor) }

// Attributes are the initial values of a newly created span.
type Attributes struct {
	metadata *Metadata
	values   *ValueSet
	parent   parent
}

// NewAttributes creates span attributes whose parent is the consumer's
// current span. Panics if values are not bound to metadata's field set
// or if metadata is not a span callsite.
func NewAttributes(metadata *Metadata, values *ValueSet) *Attributes {
	checkBinding(metadata, values, KindSpan)
	return &Attributes{metadata: metadata, values: values, parent: contextualParent()}
}

// NewRootAttributes creates attributes for a span with no parent.
func NewRootAttributes(metadata *Metadata, values *ValueSet) *Attributes {
	checkBinding(metadata, values, KindSpan)
	return &Attributes{metadata: metadata, values: values, parent: rootParent()}
}

// NewChildAttributes creates attributes for a span explicitly parented
// to span.
func NewChildAttributes(span ID, metadata *Metadata, values *ValueSet) *Attributes {
	checkBinding(metadata, values, KindSpan)
	return &Attributes{metadata: metadata, values: values, parent: explicitParent(span)}
}

// Metadata returns the span's callsite metadata.
func (attributes *Attributes) Metadata() *Metadata { return attributes.metadata }

// Values returns the span's initial values.
func (attributes *Attributes) Values() *ValueSet { return attributes.values }

// Parent returns the explicit parent span, if one was given.
func (attributes *Attributes) Parent() (ID, bool) {
	return attributes.parent.id, attributes.parent.kind == parentExplicit
}

// IsRoot reports whether the span was explicitly created without a
// parent.
func (attributes *Attributes) IsRoot() bool { return attributes.parent.kind == parentRoot }

// IsContextual reports whether the span's parent is the consumer's
// current span.
func (attributes *Attributes) IsContextual() bool {
	return attributes.parent.kind == parentContextual
}

// Len returns the number of recorded field values.
func (attributes *Attributes) Len() int { return attributes.values.Len() }

// Record visits the span's recorded values in declaration order.
func (attributes *Attributes) Record(visitor Visitor) { attributes.values.Record(visitor) }

// Record is a set of values recorded on an existing span after it was
// created.
type Record struct {
	values *ValueSet
}

// NewRecord wraps values recorded on an existing span.
func NewRecord(values *ValueSet) *Record { return &Record{values: values} }

// Len returns the number of recorded values.
func (record *Record) Len() int { return record.values.Len() }

// IsEmpty reports whether no values were recorded.
func (record *Record) IsEmpty() bool { return record.values.IsEmpty() }

// Contains reports whether a value was recorded for field.
func (record *Record) Contains(field Field) bool { return record.values.Contains(field) }

// Record visits the recorded values in declaration order.
func (record *Record) Record(visitor Visitor) { record.values.Record(visitor) }
