// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tracing

// Visitor receives recorded field values, one call per value, in
// declaration order. Implementations cannot abort a walk: every
// recorded value produces a call.
type Visitor interface {
	RecordBool(field Field, value bool)
	RecordInt64(field Field, value int64)
	RecordUint64(field Field, value uint64)
	RecordFloat64(field Field, value float64)
	RecordString(field Field, value string)

	// RecordDebug receives a value that has no primitive
	// representation. The visitor decides how to format it; the
	// value may not outlive the call.
	RecordDebug(field Field, value any)
}

// ValueVisitor is a Visitor that also accepts structured values
// recorded with [Structured]. Visitors that do not implement it receive
// structured values through RecordDebug.
type ValueVisitor interface {
	Visitor
	RecordStructured(field Field, value any)
}

// Value is a recorded field value. Record dispatches to the Visitor
// method matching the value's kind.
type Value interface {
	Record(field Field, visitor Visitor)
}

type boolValue bool

func (value boolValue) Record(field Field, visitor Visitor) {
	visitor.RecordBool(field, bool(value))
}

type int64Value int64

func (value int64Value) Record(field Field, visitor Visitor) {
	visitor.RecordInt64(field, int64(value))
}

type uint64Value uint64

func (value uint64Value) Record(field Field, visitor Visitor) {
	visitor.RecordUint64(field, uint64(value))
}

type float64Value float64

func (value float64Value) Record(field Field, visitor Visitor) {
	visitor.RecordFloat64(field, float64(value))
}

type stringValue string

func (value stringValue) Record(field Field, visitor Visitor) {
	visitor.RecordString(field, string(value))
}

type debugValue struct{ value any }

func (value debugValue) Record(field Field, visitor Visitor) {
	visitor.RecordDebug(field, value.value)
}

type structuredValue struct{ value any }

func (value structuredValue) Record(field Field, visitor Visitor) {
	if valueVisitor, ok := visitor.(ValueVisitor); ok {
		valueVisitor.RecordStructured(field, value.value)
		return
	}
	visitor.RecordDebug(field, value.value)
}

// Bool records a boolean.
func Bool(value bool) Value { return boolValue(value) }

// Int records a signed integer.
func Int(value int) Value { return int64Value(value) }

// Int64 records a signed integer.
func Int64(value int64) Value { return int64Value(value) }

// Uint64 records an unsigned integer.
func Uint64(value uint64) Value { return uint64Value(value) }

// Float64 records a floating point number.
func Float64(value float64) Value { return float64Value(value) }

// String records a string.
func String(value string) Value { return stringValue(value) }

// Debug records an arbitrary value that visitors format themselves.
func Debug(value any) Value { return debugValue{value: value} }

// Structured records a value that structure-aware visitors
// ([ValueVisitor]) receive intact and all other visitors receive as a
// debug value.
func Structured(value any) Value { return structuredValue{value: value} }
