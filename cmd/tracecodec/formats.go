// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !tracecodec_bounded

package main

import (
	"fmt"

	"github.com/bureau-foundation/tracecodec/lib/serial"
	"github.com/bureau-foundation/tracecodec/lib/serial/cbor"
	"github.com/bureau-foundation/tracecodec/lib/serial/json"
	"github.com/bureau-foundation/tracecodec/lib/serial/yaml"
	"github.com/bureau-foundation/tracecodec/lib/tracebuf"
)

// format is one wire encoding the CLI reads and writes.
type format struct {
	name      string
	marshal   func(serial.Serializable) ([]byte, error)
	unmarshal func([]byte, serial.Deserializable) error
}

var formats = map[string]format{
	"json": {"json", json.Marshal, json.Unmarshal},
	"cbor": {"cbor", cbor.Marshal, cbor.Unmarshal},
	"yaml": {"yaml", yaml.Marshal, yaml.Unmarshal},
}

func lookupFormat(name string) (format, error) {
	f, ok := formats[name]
	if !ok {
		return format{}, fmt.Errorf("unknown format %q (want json, cbor or yaml)", name)
	}
	return f, nil
}

// encode marshals value, ending text formats with a newline.
func (f format) encode(value serial.Serializable) ([]byte, error) {
	data, err := f.marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", f.name, err)
	}
	if f.name != "cbor" && (len(data) == 0 || data[len(data)-1] != '\n') {
		data = append(data, '\n')
	}
	return data, nil
}

// entryStream is a whole document of entries: a top-level sequence.
type entryStream []tracebuf.Entry

func (s entryStream) Serialize(serializer serial.Serializer) error {
	seq, err := serializer.SerializeSeq(len(s))
	if err != nil {
		return err
	}
	for i, entry := range s {
		if err := seq.SerializeElement(entry); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return seq.End()
}

func decodeEntryStream(deserializer serial.Deserializer) (entryStream, error) {
	var stream entryStream
	err := deserializer.DeserializeSeq(func(element serial.Deserializer) error {
		entry, err := tracebuf.DecodeEntry(element)
		if err != nil {
			return fmt.Errorf("entry %d: %w", len(stream), err)
		}
		stream = append(stream, entry)
		return nil
	})
	return stream, err
}

// readEntries decodes an entry stream document in format f.
func readEntries(data []byte, f format) (entryStream, error) {
	var stream entryStream
	if err := f.unmarshal(data, serial.Into(decodeEntryStream, &stream)); err != nil {
		return nil, fmt.Errorf("decode %s entry stream: %w", f.name, err)
	}
	return stream, nil
}
