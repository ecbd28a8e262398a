// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package traceserde

import (
	"fmt"

	"github.com/bureau-foundation/tracecodec/lib/serial"
	"github.com/bureau-foundation/tracecodec/lib/tracing"
)

// Event is a serializable event.
type Event[L Lifetime] struct {
	fields    EventFields[L]
	metadata  Metadata[L]
	parent    ID
	hasParent bool
}

// AdaptEvent wraps event without copying it.
func AdaptEvent(event *tracing.Event) Event[Borrowed] {
	adapted := Event[Borrowed]{
		fields:   EventFields[Borrowed]{fields{live: event}},
		metadata: AdaptMetadata(event.Metadata()),
	}
	if parent, ok := event.Parent(); ok {
		adapted.parent, adapted.hasParent = AdaptID(parent), true
	}
	return adapted
}

func (e Event[L]) Fields() EventFields[L] { return e.fields }
func (e Event[L]) Metadata() Metadata[L]  { return e.metadata }

// Parent returns the explicit parent span, if any.
func (e Event[L]) Parent() (ID, bool) { return e.parent, e.hasParent }

// IsLive reports whether the event's values are read from the tracing
// entity.
func (e Event[L]) IsLive() bool { return e.fields.IsLive() }

func (e Event[L]) Serialize(serializer serial.Serializer) error {
	out, err := serializer.SerializeMap(3)
	if err != nil {
		return err
	}
	if err := out.SerializeEntry("fields", e.fields); err != nil {
		return fmt.Errorf("event fields: %w", err)
	}
	if err := out.SerializeEntry("metadata", e.metadata); err != nil {
		return fmt.Errorf("event metadata: %w", err)
	}
	if err := out.SerializeEntry("parent", serial.Optional(e.parent, e.hasParent)); err != nil {
		return fmt.Errorf("event parent: %w", err)
	}
	return out.End()
}

func (Event[L]) sealed() {}

// DecodeEvent reads an event. The result owns all of its data.
func DecodeEvent(deserializer serial.Deserializer) (Event[Static], error) {
	var (
		event                    Event[Static]
		seenFields, seenMetadata bool
	)
	err := deserializer.DeserializeMap(func(key string, value serial.Deserializer) error {
		var err error
		switch key {
		case "fields":
			var f fields
			f, err = decodeFields(value)
			event.fields, seenFields = EventFields[Static]{f}, true
		case "metadata":
			event.metadata, err = DecodeMetadata(value)
			seenMetadata = true
		case "parent":
			event.parent, event.hasParent, err = decodeOptionalID(value)
		default:
			return value.Skip()
		}
		if err != nil {
			return fmt.Errorf("event %s: %w", key, err)
		}
		return nil
	})
	if err != nil {
		return Event[Static]{}, err
	}
	if !seenFields || !seenMetadata {
		return Event[Static]{}, fmt.Errorf("event: missing fields or metadata")
	}
	return event, nil
}

// Attributes is a serializable span creation record.
type Attributes[L Lifetime] struct {
	metadata  Metadata[L]
	parent    ID
	hasParent bool
	isRoot    bool
	fields    SpanFields[L]
}

// AdaptAttributes wraps attributes without copying them.
func AdaptAttributes(attributes *tracing.Attributes) Attributes[Borrowed] {
	adapted := Attributes[Borrowed]{
		metadata: AdaptMetadata(attributes.Metadata()),
		isRoot:   attributes.IsRoot(),
		fields:   SpanFields[Borrowed]{fields{live: attributes}},
	}
	if parent, ok := attributes.Parent(); ok {
		adapted.parent, adapted.hasParent = AdaptID(parent), true
	}
	return adapted
}

func (a Attributes[L]) Metadata() Metadata[L] { return a.metadata }
func (a Attributes[L]) Parent() (ID, bool)    { return a.parent, a.hasParent }
func (a Attributes[L]) IsRoot() bool          { return a.isRoot }
func (a Attributes[L]) Fields() SpanFields[L] { return a.fields }
func (a Attributes[L]) IsLive() bool          { return a.fields.IsLive() }

func (a Attributes[L]) Serialize(serializer serial.Serializer) error {
	out, err := serializer.SerializeMap(4)
	if err != nil {
		return err
	}
	if err := out.SerializeEntry("metadata", a.metadata); err != nil {
		return fmt.Errorf("attributes metadata: %w", err)
	}
	if err := out.SerializeEntry("parent", serial.Optional(a.parent, a.hasParent)); err != nil {
		return fmt.Errorf("attributes parent: %w", err)
	}
	if err := out.SerializeEntry("is_root", serial.Bool(a.isRoot)); err != nil {
		return fmt.Errorf("attributes is_root: %w", err)
	}
	if err := out.SerializeEntry("fields", a.fields); err != nil {
		return fmt.Errorf("attributes fields: %w", err)
	}
	return out.End()
}

func (Attributes[L]) sealed() {}

// DecodeAttributes reads a span creation record.
func DecodeAttributes(deserializer serial.Deserializer) (Attributes[Static], error) {
	var (
		attributes               Attributes[Static]
		seenFields, seenMetadata bool
	)
	err := deserializer.DeserializeMap(func(key string, value serial.Deserializer) error {
		var err error
		switch key {
		case "metadata":
			attributes.metadata, err = DecodeMetadata(value)
			seenMetadata = true
		case "parent":
			attributes.parent, attributes.hasParent, err = decodeOptionalID(value)
		case "is_root":
			attributes.isRoot, err = value.DeserializeBool()
		case "fields":
			var f fields
			f, err = decodeFields(value)
			attributes.fields, seenFields = SpanFields[Static]{f}, true
		default:
			return value.Skip()
		}
		if err != nil {
			return fmt.Errorf("attributes %s: %w", key, err)
		}
		return nil
	})
	if err != nil {
		return Attributes[Static]{}, err
	}
	if !seenFields || !seenMetadata {
		return Attributes[Static]{}, fmt.Errorf("attributes: missing fields or metadata")
	}
	return attributes, nil
}

// AdaptRecord wraps a span record update without copying it.
func AdaptRecord(record *tracing.Record) Record[Borrowed] {
	return Record[Borrowed]{fields{live: record}}
}

func decodeOptionalID(deserializer serial.Deserializer) (ID, bool, error) {
	null, err := deserializer.DeserializeNull()
	if err != nil || null {
		return ID{}, false, err
	}
	id, err := DecodeID(deserializer)
	return id, err == nil, err
}
