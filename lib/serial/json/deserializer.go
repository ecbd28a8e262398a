// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/tracecodec/lib/serial"
)

// Deserializer reads JSON values from a jsoniter iterator.
type Deserializer struct {
	iterator *jsoniter.Iterator
}

// NewDeserializer returns a Deserializer over data. data may be JSON or
// JSONC, and may hold several whitespace-separated values (JSON lines).
func NewDeserializer(data []byte) *Deserializer {
	return &Deserializer{iterator: jsoniter.ParseBytes(config, jsonc.ToJSON(data))}
}

// Unmarshal decodes exactly one JSON value from data into value.
func Unmarshal(data []byte, value serial.Deserializable) error {
	deserializer := NewDeserializer(data)
	if err := value.Deserialize(deserializer); err != nil {
		return err
	}
	if deserializer.More() {
		return fmt.Errorf("json: trailing data after value")
	}
	return nil
}

// More reports whether another value follows in the input.
func (d *Deserializer) More() bool {
	next := d.iterator.WhatIsNext()
	if errors.Is(d.iterator.Error, io.EOF) {
		return false
	}
	return next != jsoniter.InvalidValue
}

func (d *Deserializer) err() error {
	if errors.Is(d.iterator.Error, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return d.iterator.Error
}

func (d *Deserializer) expect(want jsoniter.ValueType, name string) error {
	next := d.iterator.WhatIsNext()
	if err := d.err(); err != nil {
		return err
	}
	if next != want {
		return fmt.Errorf("json: want %s: %w", name, serial.ErrUnexpectedKind)
	}
	return nil
}

// number reads a JSON number as its literal text so integers are parsed
// exactly rather than through float64.
func (d *Deserializer) number() (string, error) {
	if err := d.expect(jsoniter.NumberValue, "number"); err != nil {
		return "", err
	}
	literal := d.iterator.ReadNumber()
	// A number is the only value whose end is found by reading past
	// it, so a top-level number legitimately runs into end of input.
	if errors.Is(d.iterator.Error, io.EOF) && literal != "" {
		d.iterator.Error = nil
	}
	return string(literal), d.err()
}

func (d *Deserializer) DeserializeBool() (bool, error) {
	if err := d.expect(jsoniter.BoolValue, "bool"); err != nil {
		return false, err
	}
	value := d.iterator.ReadBool()
	return value, d.err()
}

func (d *Deserializer) DeserializeInt64() (int64, error) {
	literal, err := d.number()
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseInt(literal, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("json: %w", err)
	}
	return value, nil
}

func (d *Deserializer) DeserializeUint64() (uint64, error) {
	literal, err := d.number()
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseUint(literal, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("json: %w", err)
	}
	return value, nil
}

func (d *Deserializer) DeserializeFloat64() (float64, error) {
	literal, err := d.number()
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return 0, fmt.Errorf("json: %w", err)
	}
	return value, nil
}

func (d *Deserializer) DeserializeString() (string, error) {
	if err := d.expect(jsoniter.StringValue, "string"); err != nil {
		return "", err
	}
	value := d.iterator.ReadString()
	return value, d.err()
}

func (d *Deserializer) DeserializeNull() (bool, error) {
	next := d.iterator.WhatIsNext()
	if err := d.err(); err != nil {
		return false, err
	}
	if next != jsoniter.NilValue {
		return false, nil
	}
	d.iterator.ReadNil()
	return true, d.err()
}

func (d *Deserializer) DeserializeMap(fn func(key string, value serial.Deserializer) error) error {
	if err := d.expect(jsoniter.ObjectValue, "object"); err != nil {
		return err
	}
	var callbackErr error
	d.iterator.ReadMapCB(func(_ *jsoniter.Iterator, key string) bool {
		callbackErr = fn(key, d)
		return callbackErr == nil
	})
	if callbackErr != nil {
		return callbackErr
	}
	return d.err()
}

func (d *Deserializer) DeserializeSeq(fn func(element serial.Deserializer) error) error {
	if err := d.expect(jsoniter.ArrayValue, "array"); err != nil {
		return err
	}
	var callbackErr error
	d.iterator.ReadArrayCB(func(*jsoniter.Iterator) bool {
		callbackErr = fn(d)
		return callbackErr == nil
	})
	if callbackErr != nil {
		return callbackErr
	}
	return d.err()
}

func (d *Deserializer) Skip() error {
	d.iterator.Skip()
	return d.err()
}
