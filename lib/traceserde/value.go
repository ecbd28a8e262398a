// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package traceserde

import (
	"fmt"
	"math"

	"github.com/bureau-foundation/tracecodec/lib/serial"
)

// ValueKind identifies which variant a FieldValue holds.
type ValueKind uint8

const (
	KindBool ValueKind = iota + 1
	KindInt64
	KindUint64
	KindFloat64
	KindString
	KindDebug
)

// Wire tags for each variant.
const (
	tagBool    = "Bool"
	tagInt64   = "I64"
	tagUint64  = "U64"
	tagFloat64 = "F64"
	tagString  = "Str"
	tagDebug   = "Debug"
)

func (kind ValueKind) String() string {
	switch kind {
	case KindBool:
		return tagBool
	case KindInt64:
		return tagInt64
	case KindUint64:
		return tagUint64
	case KindFloat64:
		return tagFloat64
	case KindString:
		return tagString
	case KindDebug:
		return tagDebug
	default:
		return fmt.Sprintf("ValueKind(%d)", uint8(kind))
	}
}

// debugVerb is the format applied to values recorded through
// RecordDebug.
const debugVerb = "%+v"

// FieldValue is one recorded field value. The zero FieldValue is
// invalid; construct values with the kind-specific functions.
//
// A Debug value is either live (an argument that is formatted when the
// value is serialized) or owned (text already formatted). Both forms
// serialize to the same string.
type FieldValue struct {
	kind ValueKind
	bits uint64
	text StringRef

	// debugArg holds a live debug argument. When debugLive is false
	// the formatted text is in text.
	debugArg  any
	debugLive bool
}

// BoolValue returns a Bool field value.
func BoolValue(value bool) FieldValue {
	var bits uint64
	if value {
		bits = 1
	}
	return FieldValue{kind: KindBool, bits: bits}
}

// Int64Value returns an I64 field value.
func Int64Value(value int64) FieldValue {
	return FieldValue{kind: KindInt64, bits: uint64(value)}
}

// Uint64Value returns a U64 field value.
func Uint64Value(value uint64) FieldValue {
	return FieldValue{kind: KindUint64, bits: value}
}

// Float64Value returns an F64 field value.
func Float64Value(value float64) FieldValue {
	return FieldValue{kind: KindFloat64, bits: math.Float64bits(value)}
}

// StringValue returns a Str field value.
func StringValue(value StringRef) FieldValue {
	return FieldValue{kind: KindString, text: value}
}

// DebugText returns an owned Debug field value holding already
// formatted text.
func DebugText(text StringRef) FieldValue {
	return FieldValue{kind: KindDebug, text: text}
}

// liveDebug wraps an argument that is formatted only when the value is
// serialized. It is valid for as long as the argument is.
func liveDebug(arg any) FieldValue {
	return FieldValue{kind: KindDebug, debugArg: arg, debugLive: true}
}

// Kind reports the variant.
func (value FieldValue) Kind() ValueKind { return value.kind }

func (value FieldValue) Bool() (bool, bool) {
	return value.bits != 0, value.kind == KindBool
}

func (value FieldValue) Int64() (int64, bool) {
	return int64(value.bits), value.kind == KindInt64
}

func (value FieldValue) Uint64() (uint64, bool) {
	return value.bits, value.kind == KindUint64
}

func (value FieldValue) Float64() (float64, bool) {
	return math.Float64frombits(value.bits), value.kind == KindFloat64
}

// Str returns the string payload of a Str value.
func (value FieldValue) Str() (StringRef, bool) {
	if value.kind != KindString {
		return StringRef{}, false
	}
	return value.text, true
}

// Debug returns the formatted text of a Debug value. A live value is
// formatted on each call.
func (value FieldValue) Debug() (string, bool) {
	if value.kind != KindDebug {
		return "", false
	}
	return value.debugText(), true
}

// IsLive reports whether value is a Debug value that still refers to
// its unformatted argument.
func (value FieldValue) IsLive() bool { return value.debugLive }

func (value FieldValue) debugText() string {
	if value.debugLive {
		return fmt.Sprintf(debugVerb, value.debugArg)
	}
	return value.text.String()
}

// Equal reports whether two values have the same variant and payload.
// Live and owned Debug values compare by formatted text. NaN equals
// NaN so that decoded values compare equal to their source.
func (value FieldValue) Equal(other FieldValue) bool {
	if value.kind != other.kind {
		return false
	}
	switch value.kind {
	case KindString:
		return value.text.Equal(other.text)
	case KindDebug:
		return value.debugText() == other.debugText()
	case KindFloat64:
		a, _ := value.Float64()
		b, _ := other.Float64()
		return a == b || (math.IsNaN(a) && math.IsNaN(b))
	default:
		return value.bits == other.bits
	}
}

func (value FieldValue) String() string {
	switch value.kind {
	case KindBool:
		v, _ := value.Bool()
		return fmt.Sprintf("%s(%t)", value.kind, v)
	case KindInt64:
		v, _ := value.Int64()
		return fmt.Sprintf("%s(%d)", value.kind, v)
	case KindUint64:
		return fmt.Sprintf("%s(%d)", value.kind, value.bits)
	case KindFloat64:
		v, _ := value.Float64()
		return fmt.Sprintf("%s(%g)", value.kind, v)
	case KindString, KindDebug:
		return fmt.Sprintf("%s(%q)", value.kind, value.debugOrText())
	default:
		return value.kind.String()
	}
}

func (value FieldValue) debugOrText() string {
	if value.kind == KindDebug {
		return value.debugText()
	}
	return value.text.String()
}

// Serialize writes value as a single-entry map keyed by its variant
// tag.
func (value FieldValue) Serialize(serializer serial.Serializer) error {
	payload, err := value.payload()
	if err != nil {
		return err
	}
	m, err := serializer.SerializeMap(1)
	if err != nil {
		return err
	}
	if err := m.SerializeEntry(value.kind.String(), payload); err != nil {
		return err
	}
	return m.End()
}

func (value FieldValue) payload() (serial.Serializable, error) {
	switch value.kind {
	case KindBool:
		return serial.Bool(value.bits != 0), nil
	case KindInt64:
		return serial.Int64(int64(value.bits)), nil
	case KindUint64:
		return serial.Uint64(value.bits), nil
	case KindFloat64:
		return serial.Float64(math.Float64frombits(value.bits)), nil
	case KindString:
		return value.text, nil
	case KindDebug:
		return serial.String(value.debugText()), nil
	default:
		return nil, fmt.Errorf("serializing field value: invalid kind %d", uint8(value.kind))
	}
}

// DecodeFieldValue reads a tagged field value. Strings and debug text
// are owned.
func DecodeFieldValue(deserializer serial.Deserializer) (FieldValue, error) {
	var (
		value   FieldValue
		entries int
	)
	err := deserializer.DeserializeMap(func(tag string, payload serial.Deserializer) error {
		entries++
		if entries > 1 {
			return fmt.Errorf("field value has more than one variant (second tag %q): %w", tag, serial.ErrUnexpectedKind)
		}
		var err error
		value, err = decodePayload(tag, payload)
		return err
	})
	if err != nil {
		return FieldValue{}, err
	}
	if entries == 0 {
		return FieldValue{}, fmt.Errorf("field value has no variant: %w", serial.ErrUnexpectedKind)
	}
	return value, nil
}

func decodePayload(tag string, payload serial.Deserializer) (FieldValue, error) {
	switch tag {
	case tagBool:
		v, err := payload.DeserializeBool()
		if err != nil {
			return FieldValue{}, fmt.Errorf("field value %s: %w", tag, err)
		}
		return BoolValue(v), nil
	case tagInt64:
		v, err := payload.DeserializeInt64()
		if err != nil {
			return FieldValue{}, fmt.Errorf("field value %s: %w", tag, err)
		}
		return Int64Value(v), nil
	case tagUint64:
		v, err := payload.DeserializeUint64()
		if err != nil {
			return FieldValue{}, fmt.Errorf("field value %s: %w", tag, err)
		}
		return Uint64Value(v), nil
	case tagFloat64:
		v, err := payload.DeserializeFloat64()
		if err != nil {
			return FieldValue{}, fmt.Errorf("field value %s: %w", tag, err)
		}
		return Float64Value(v), nil
	case tagString:
		v, err := decodeString(payload)
		if err != nil {
			return FieldValue{}, fmt.Errorf("field value %s: %w", tag, err)
		}
		return StringValue(v), nil
	case tagDebug:
		v, err := decodeString(payload)
		if err != nil {
			return FieldValue{}, fmt.Errorf("field value %s: %w", tag, err)
		}
		return DebugText(v), nil
	default:
		return FieldValue{}, fmt.Errorf("unknown field value tag %q: %w", tag, serial.ErrUnexpectedKind)
	}
}
