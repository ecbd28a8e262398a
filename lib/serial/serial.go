// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package serial is the format-agnostic serialization interface that
// tracecodec writes to and reads from. It has two halves:
//
//   - [Serializer] accepts exactly one value of known shape: a scalar,
//     a map (opened with [Serializer.SerializeMap] and filled entry by
//     entry), or a sequence. Serializers stream; an entry written
//     before a failure may already be committed to the output.
//   - [Deserializer] is a pull reader over one encoded value. Maps and
//     sequences are walked with callbacks in encoded order, so callers
//     can rebuild ordered containers without an intermediate Go map.
//
// Concrete formats live in subpackages (cbor, json, yaml). Nothing in
// this package knows about a particular format.
package serial

import "errors"

// UnknownSize is passed to SerializeMap or SerializeSeq when the number
// of entries is not known up front.
const UnknownSize = -1

var (
	// ErrSizeMismatch is returned by End when a map or sequence opened
	// with a known size received a different number of entries.
	ErrSizeMismatch = errors.New("serial: entry count does not match declared size")

	// ErrUnexpectedKind is returned by a Deserializer when the encoded
	// value is not of the requested kind.
	ErrUnexpectedKind = errors.New("serial: unexpected value kind")
)

// Serializable is implemented by values that can write themselves to
// a Serializer.
type Serializable interface {
	Serialize(serializer Serializer) error
}

// Deserializable is implemented by values that can populate themselves
// from a Deserializer.
type Deserializable interface {
	Deserialize(deserializer Deserializer) error
}

// Serializer writes one value. Each method may be called at most once
// per Serializer; a map or sequence must be closed with End before the
// enclosing value is complete.
type Serializer interface {
	SerializeBool(value bool) error
	SerializeInt64(value int64) error
	SerializeUint64(value uint64) error
	SerializeFloat64(value float64) error
	SerializeString(value string) error
	SerializeNull() error

	// SerializeMap opens a map. size is the number of entries that will
	// follow, or UnknownSize.
	SerializeMap(size int) (MapSerializer, error)

	// SerializeSeq opens a sequence. size is the number of elements
	// that will follow, or UnknownSize.
	SerializeSeq(size int) (SeqSerializer, error)
}

// MapSerializer is an open map.
type MapSerializer interface {
	SerializeEntry(key string, value Serializable) error
	End() error
}

// SeqSerializer is an open sequence.
type SeqSerializer interface {
	SerializeElement(value Serializable) error
	End() error
}

// Deserializer reads one value.
type Deserializer interface {
	DeserializeBool() (bool, error)
	DeserializeInt64() (int64, error)
	DeserializeUint64() (uint64, error)
	DeserializeFloat64() (float64, error)
	DeserializeString() (string, error)

	// DeserializeNull consumes a null and returns true, or returns
	// false without consuming anything if the value is not null.
	DeserializeNull() (bool, error)

	// DeserializeMap calls fn for each entry in encoded order. fn must
	// consume the entry's value through the Deserializer it is given.
	DeserializeMap(fn func(key string, value Deserializer) error) error

	// DeserializeSeq calls fn for each element in encoded order. fn
	// must consume the element through the Deserializer it is given.
	DeserializeSeq(fn func(element Deserializer) error) error

	// Skip consumes and discards the next value. Map callbacks use it
	// for keys they do not recognize.
	Skip() error
}

// Into adapts a decode function to Deserializable, storing the decoded
// value in target. It lets format helpers such as cbor.Unmarshal drive
// decoders that return values instead of filling receivers:
//
//	var event traceserde.Event[traceserde.Static]
//	err := cbor.Unmarshal(data, serial.Into(traceserde.DecodeEvent, &event))
func Into[T any](decode func(Deserializer) (T, error), target *T) Deserializable {
	return deserializableFunc(func(deserializer Deserializer) error {
		value, err := decode(deserializer)
		if err != nil {
			return err
		}
		*target = value
		return nil
	})
}

type deserializableFunc func(Deserializer) error

func (fn deserializableFunc) Deserialize(deserializer Deserializer) error {
	return fn(deserializer)
}
