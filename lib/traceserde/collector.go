// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package traceserde

import (
	"fmt"

	"github.com/bureau-foundation/tracecodec/lib/serial"
	"github.com/bureau-foundation/tracecodec/lib/tracing"
)

// Collector is a tracing visitor that writes each recorded value as one
// entry of an open map. tracing visitors cannot return errors, so the
// Collector keeps the first failure and ignores every value pushed
// after it. Callers check the result with Finish or TakeSerializer.
type Collector struct {
	out serial.MapSerializer
	err error
}

var (
	_ tracing.Visitor      = (*Collector)(nil)
	_ tracing.ValueVisitor = (*Collector)(nil)
)

// NewCollector returns a Collector writing into out.
func NewCollector(out serial.MapSerializer) *Collector {
	return &Collector{out: out}
}

func (c *Collector) entry(field tracing.Field, value serial.Serializable) {
	if c.err != nil {
		return
	}
	c.err = c.out.SerializeEntry(field.Name(), value)
}

func (c *Collector) RecordBool(field tracing.Field, value bool) {
	c.entry(field, BoolValue(value))
}

func (c *Collector) RecordInt64(field tracing.Field, value int64) {
	c.entry(field, Int64Value(value))
}

func (c *Collector) RecordUint64(field tracing.Field, value uint64) {
	c.entry(field, Uint64Value(value))
}

func (c *Collector) RecordFloat64(field tracing.Field, value float64) {
	c.entry(field, Float64Value(value))
}

func (c *Collector) RecordString(field tracing.Field, value string) {
	c.entry(field, StringValue(Borrow(value)))
}

// RecordDebug formats value while the call is in progress; the
// argument is not retained.
func (c *Collector) RecordDebug(field tracing.Field, value any) {
	c.entry(field, liveDebug(value))
}

// RecordStructured writes value directly when it implements
// serial.Serializable. Any other structured value fails the collection
// with ErrUnsupportedValue.
func (c *Collector) RecordStructured(field tracing.Field, value any) {
	if c.err != nil {
		return
	}
	serializable, ok := value.(serial.Serializable)
	if !ok {
		c.err = fmt.Errorf("field %q (%T): %w", field.Name(), value, ErrUnsupportedValue)
		return
	}
	c.entry(field, serializable)
}

// Err returns the first recorded error.
func (c *Collector) Err() error { return c.err }

// Finish closes the map, or returns the first recorded error without
// closing it.
func (c *Collector) Finish() error {
	if c.err != nil {
		return c.err
	}
	return c.out.End()
}

// TakeSerializer returns the still-open map so the caller can add
// entries of its own before closing it, or the first recorded error.
func (c *Collector) TakeSerializer() (serial.MapSerializer, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.out, nil
}

// fieldVisitor converts recorded values to FieldValues and passes them
// to sink. Debug values are formatted during the call. It does not
// implement tracing.ValueVisitor, so structured values arrive through
// RecordDebug.
type fieldVisitor struct {
	sink func(key string, value FieldValue)
}

func (v fieldVisitor) RecordBool(field tracing.Field, value bool) {
	v.sink(field.Name(), BoolValue(value))
}

func (v fieldVisitor) RecordInt64(field tracing.Field, value int64) {
	v.sink(field.Name(), Int64Value(value))
}

func (v fieldVisitor) RecordUint64(field tracing.Field, value uint64) {
	v.sink(field.Name(), Uint64Value(value))
}

func (v fieldVisitor) RecordFloat64(field tracing.Field, value float64) {
	v.sink(field.Name(), Float64Value(value))
}

func (v fieldVisitor) RecordString(field tracing.Field, value string) {
	v.sink(field.Name(), StringValue(Borrow(value)))
}

func (v fieldVisitor) RecordDebug(field tracing.Field, value any) {
	v.sink(field.Name(), DebugText(Own(fmt.Sprintf(debugVerb, value))))
}
