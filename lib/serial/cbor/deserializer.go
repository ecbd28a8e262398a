// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/bureau-foundation/tracecodec/lib/codec"
	"github.com/bureau-foundation/tracecodec/lib/serial"
)

// Deserializer reads CBOR items from a byte slice. Scalars are decoded
// by lib/codec; map and array headers are parsed here so that entries
// can be handed out one at a time in encoded order.
type Deserializer struct {
	data []byte
}

// NewDeserializer returns a Deserializer positioned at the start of
// data. data may hold a CBOR sequence; [Deserializer.Remaining]
// reports what is left after each item.
func NewDeserializer(data []byte) *Deserializer {
	return &Deserializer{data: data}
}

// Unmarshal decodes exactly one CBOR item from data into value.
func Unmarshal(data []byte, value serial.Deserializable) error {
	deserializer := NewDeserializer(data)
	if err := value.Deserialize(deserializer); err != nil {
		return err
	}
	if len(deserializer.data) != 0 {
		return fmt.Errorf("cbor: %d trailing bytes after value", len(deserializer.data))
	}
	return nil
}

// Remaining returns the bytes not yet consumed.
func (d *Deserializer) Remaining() []byte { return d.data }

// peek returns the initial byte of the next item.
func (d *Deserializer) peek() (byte, error) {
	if len(d.data) == 0 {
		return 0, io.ErrUnexpectedEOF
	}
	return d.data[0], nil
}

func (d *Deserializer) expect(want string, accept func(initial byte) bool) error {
	initial, err := d.peek()
	if err != nil {
		return err
	}
	if !accept(initial) {
		return fmt.Errorf("cbor: want %s, found initial byte 0x%02x: %w", want, initial, serial.ErrUnexpectedKind)
	}
	return nil
}

func (d *Deserializer) decode(target any) error {
	rest, err := codec.UnmarshalFirst(d.data, target)
	if err != nil {
		return err
	}
	d.data = rest
	return nil
}

func isMajor(major byte) func(byte) bool {
	return func(initial byte) bool { return initial&0xe0 == major }
}

func (d *Deserializer) DeserializeBool() (bool, error) {
	if err := d.expect("bool", func(initial byte) bool {
		return initial == simpleFalse || initial == simpleTrue
	}); err != nil {
		return false, err
	}
	var value bool
	err := d.decode(&value)
	return value, err
}

func (d *Deserializer) DeserializeInt64() (int64, error) {
	if err := d.expect("integer", func(initial byte) bool {
		return isMajor(majorUnsigned)(initial) || isMajor(majorNegative)(initial)
	}); err != nil {
		return 0, err
	}
	var value int64
	err := d.decode(&value)
	return value, err
}

func (d *Deserializer) DeserializeUint64() (uint64, error) {
	if err := d.expect("unsigned integer", isMajor(majorUnsigned)); err != nil {
		return 0, err
	}
	var value uint64
	err := d.decode(&value)
	return value, err
}

func (d *Deserializer) DeserializeFloat64() (float64, error) {
	if err := d.expect("float", func(initial byte) bool {
		return initial == floatHalf || initial == floatSingle || initial == floatDouble
	}); err != nil {
		return 0, err
	}
	var value float64
	err := d.decode(&value)
	return value, err
}

func (d *Deserializer) DeserializeString() (string, error) {
	if err := d.expect("text string", isMajor(majorText)); err != nil {
		return "", err
	}
	var value string
	err := d.decode(&value)
	return value, err
}

func (d *Deserializer) DeserializeNull() (bool, error) {
	initial, err := d.peek()
	if err != nil {
		return false, err
	}
	if initial != simpleNull && initial != simpleUndefined {
		return false, nil
	}
	d.data = d.data[1:]
	return true, nil
}

func (d *Deserializer) DeserializeMap(fn func(key string, value serial.Deserializer) error) error {
	if err := d.expect("map", isMajor(majorMap)); err != nil {
		return err
	}
	return d.walkContainer(func() error {
		key, err := d.DeserializeString()
		if err != nil {
			return fmt.Errorf("map key: %w", err)
		}
		return fn(key, d)
	})
}

func (d *Deserializer) DeserializeSeq(fn func(element serial.Deserializer) error) error {
	if err := d.expect("array", isMajor(majorArray)); err != nil {
		return err
	}
	return d.walkContainer(func() error { return fn(d) })
}

func (d *Deserializer) Skip() error {
	var ignored any
	return d.decode(&ignored)
}

// walkContainer consumes a map or array header and calls item once per
// entry. Definite-length containers stop after the declared count;
// indefinite-length containers stop at the break code.
func (d *Deserializer) walkContainer(item func() error) error {
	initial := d.data[0]
	if initial&0x1f == additionalIndefinite {
		d.data = d.data[1:]
		for {
			next, err := d.peek()
			if err != nil {
				return err
			}
			if next == breakCode {
				d.data = d.data[1:]
				return nil
			}
			if err := item(); err != nil {
				return err
			}
		}
	}

	count, err := d.readLength()
	if err != nil {
		return err
	}
	for range count {
		if err := item(); err != nil {
			return err
		}
	}
	return nil
}

// readLength consumes a definite-length header and returns its
// argument.
func (d *Deserializer) readLength() (uint64, error) {
	additional := d.data[0] & 0x1f
	var width int
	switch {
	case additional < 24:
		d.data = d.data[1:]
		return uint64(additional), nil
	case additional == 24:
		width = 1
	case additional == 25:
		width = 2
	case additional == 26:
		width = 4
	case additional == 27:
		width = 8
	default:
		return 0, fmt.Errorf("cbor: malformed length encoding 0x%02x", d.data[0])
	}
	if len(d.data) < 1+width {
		return 0, io.ErrUnexpectedEOF
	}
	argument := d.data[1 : 1+width]
	d.data = d.data[1+width:]
	switch width {
	case 1:
		return uint64(argument[0]), nil
	case 2:
		return uint64(binary.BigEndian.Uint16(argument)), nil
	case 4:
		return uint64(binary.BigEndian.Uint32(argument)), nil
	default:
		length := binary.BigEndian.Uint64(argument)
		if length > uint64(len(d.data)) {
			return 0, fmt.Errorf("cbor: container length %d exceeds input", length)
		}
		return length, nil
	}
}
