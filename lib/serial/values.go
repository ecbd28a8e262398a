// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package serial

// Scalar adapters let callers pass primitive values to SerializeEntry
// and SerializeElement without declaring a type per call site.

// Bool serializes as a boolean.
type Bool bool

func (value Bool) Serialize(serializer Serializer) error {
	return serializer.SerializeBool(bool(value))
}

// Int64 serializes as a signed integer.
type Int64 int64

func (value Int64) Serialize(serializer Serializer) error {
	return serializer.SerializeInt64(int64(value))
}

// Uint64 serializes as an unsigned integer.
type Uint64 uint64

func (value Uint64) Serialize(serializer Serializer) error {
	return serializer.SerializeUint64(uint64(value))
}

// Float64 serializes as a floating point number.
type Float64 float64

func (value Float64) Serialize(serializer Serializer) error {
	return serializer.SerializeFloat64(float64(value))
}

// String serializes as a string.
type String string

func (value String) Serialize(serializer Serializer) error {
	return serializer.SerializeString(string(value))
}

// Null serializes as null.
type Null struct{}

func (Null) Serialize(serializer Serializer) error {
	return serializer.SerializeNull()
}

// SerializableFunc adapts a function to Serializable.
type SerializableFunc func(serializer Serializer) error

func (fn SerializableFunc) Serialize(serializer Serializer) error {
	return fn(serializer)
}

// Optional serializes value, or null when present is false.
func Optional(value Serializable, present bool) Serializable {
	if !present {
		return Null{}
	}
	return value
}
