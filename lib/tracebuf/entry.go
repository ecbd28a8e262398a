// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !tracecodec_bounded

package tracebuf

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/tracecodec/lib/serial"
	"github.com/bureau-foundation/tracecodec/lib/traceserde"
)

// EntryKind identifies what an Entry carries.
type EntryKind uint8

const (
	EntryNewSpan EntryKind = iota + 1
	EntryEvent
	EntryRecord
)

const (
	keyNewSpan = "new_span"
	keyEvent   = "event"
	keyRecord  = "record"
)

func (kind EntryKind) String() string {
	switch kind {
	case EntryNewSpan:
		return keyNewSpan
	case EntryEvent:
		return keyEvent
	case EntryRecord:
		return keyRecord
	default:
		return fmt.Sprintf("EntryKind(%d)", uint8(kind))
	}
}

// Entry is one owned tracing item: a span creation, an event, or
// values recorded onto an existing span.
type Entry struct {
	kind       EntryKind
	span       traceserde.ID
	attributes traceserde.Attributes[traceserde.Static]
	event      traceserde.Event[traceserde.Static]
	record     traceserde.Record[traceserde.Static]
}

// NewSpanEntry records the creation of span with the given attributes.
func NewSpanEntry(span traceserde.ID, attributes traceserde.Attributes[traceserde.Static]) Entry {
	return Entry{kind: EntryNewSpan, span: span, attributes: attributes}
}

// EventEntry records an event.
func EventEntry(event traceserde.Event[traceserde.Static]) Entry {
	return Entry{kind: EntryEvent, event: event}
}

// RecordEntry records values added to span after creation.
func RecordEntry(span traceserde.ID, record traceserde.Record[traceserde.Static]) Entry {
	return Entry{kind: EntryRecord, span: span, record: record}
}

func (e Entry) Kind() EntryKind { return e.kind }

// Span returns the span a NewSpan or Record entry refers to.
func (e Entry) Span() traceserde.ID { return e.span }

func (e Entry) Attributes() traceserde.Attributes[traceserde.Static] { return e.attributes }
func (e Entry) Event() traceserde.Event[traceserde.Static]           { return e.event }
func (e Entry) Record() traceserde.Record[traceserde.Static]         { return e.record }

// Serialize writes the entry as a single-key map naming its kind.
func (e Entry) Serialize(serializer serial.Serializer) error {
	var body serial.Serializable
	switch e.kind {
	case EntryNewSpan:
		body = spanBody{span: e.span, key: "attributes", value: e.attributes}
	case EntryEvent:
		body = e.event
	case EntryRecord:
		body = spanBody{span: e.span, key: "values", value: e.record}
	default:
		return fmt.Errorf("serializing entry: invalid kind %d", uint8(e.kind))
	}
	out, err := serializer.SerializeMap(1)
	if err != nil {
		return err
	}
	if err := out.SerializeEntry(e.kind.String(), body); err != nil {
		return fmt.Errorf("%s entry: %w", e.kind, err)
	}
	return out.End()
}

// spanBody is {"span": {"id": n}, key: value}.
type spanBody struct {
	span  traceserde.ID
	key   string
	value serial.Serializable
}

func (b spanBody) Serialize(serializer serial.Serializer) error {
	out, err := serializer.SerializeMap(2)
	if err != nil {
		return err
	}
	if err := out.SerializeEntry("span", b.span); err != nil {
		return err
	}
	if err := out.SerializeEntry(b.key, b.value); err != nil {
		return err
	}
	return out.End()
}

// DecodeEntry reads one entry.
func DecodeEntry(deserializer serial.Deserializer) (Entry, error) {
	var (
		entry Entry
		count int
	)
	err := deserializer.DeserializeMap(func(key string, value serial.Deserializer) error {
		count++
		if count > 1 {
			return fmt.Errorf("entry has more than one kind (second key %q)", key)
		}
		var err error
		switch key {
		case keyNewSpan:
			entry.kind = EntryNewSpan
			err = decodeSpanBody(value, "attributes", &entry.span, func(d serial.Deserializer) (err error) {
				entry.attributes, err = traceserde.DecodeAttributes(d)
				return err
			})
		case keyEvent:
			entry.kind = EntryEvent
			entry.event, err = traceserde.DecodeEvent(value)
		case keyRecord:
			entry.kind = EntryRecord
			err = decodeSpanBody(value, "values", &entry.span, func(d serial.Deserializer) (err error) {
				entry.record, err = traceserde.DecodeRecord(d)
				return err
			})
		default:
			return fmt.Errorf("unknown entry kind %q: %w", key, serial.ErrUnexpectedKind)
		}
		if err != nil {
			return fmt.Errorf("%s entry: %w", key, err)
		}
		return nil
	})
	if err != nil {
		return Entry{}, err
	}
	if count == 0 {
		return Entry{}, errors.New("empty entry")
	}
	return entry, nil
}

func decodeSpanBody(deserializer serial.Deserializer, key string, span *traceserde.ID, decodeValue func(serial.Deserializer) error) error {
	var seenSpan, seenValue bool
	err := deserializer.DeserializeMap(func(name string, value serial.Deserializer) error {
		switch name {
		case "span":
			id, err := traceserde.DecodeID(value)
			if err != nil {
				return err
			}
			*span, seenSpan = id, true
			return nil
		case key:
			seenValue = true
			return decodeValue(value)
		default:
			return value.Skip()
		}
	})
	if err != nil {
		return err
	}
	if !seenSpan || !seenValue {
		return fmt.Errorf("missing \"span\" or %q", key)
	}
	return nil
}
