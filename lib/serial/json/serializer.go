// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package json implements [serial.Serializer] and [serial.Deserializer]
// for JSON using json-iterator's streaming writer and pull iterator.
//
// Output is compact. Floats that JSON cannot represent (NaN, ±Inf) are
// encoding errors rather than silently substituted values.
//
// Input may be JSONC: // and /* */ comments and trailing commas are
// stripped before parsing, which lets hand-written fixtures carry
// annotations. Object members are delivered in document order.
package json

import (
	"bytes"
	"fmt"
	"io"
	"math"

	jsoniter "github.com/json-iterator/go"

	"github.com/bureau-foundation/tracecodec/lib/serial"
)

// config matches encoding/json's escaping (HTML-safe) so output is
// interchangeable with the standard library's.
var config = jsoniter.ConfigCompatibleWithStandardLibrary

// Serializer writes JSON to a jsoniter stream. Call Flush after the
// top-level value is complete.
type Serializer struct {
	stream *jsoniter.Stream
}

// NewSerializer returns a Serializer writing to w.
func NewSerializer(w io.Writer) *Serializer {
	return &Serializer{stream: jsoniter.NewStream(config, w, 512)}
}

// Flush writes buffered output to the underlying writer.
func (s *Serializer) Flush() error {
	if s.stream.Error != nil {
		return s.stream.Error
	}
	return s.stream.Flush()
}

// Marshal serializes value into a new byte slice.
func Marshal(value serial.Serializable) ([]byte, error) {
	var buffer bytes.Buffer
	if err := Encode(&buffer, value); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// Encode serializes value to w and flushes.
func Encode(w io.Writer, value serial.Serializable) error {
	serializer := NewSerializer(w)
	if err := value.Serialize(serializer); err != nil {
		return err
	}
	return serializer.Flush()
}

func (s *Serializer) SerializeBool(value bool) error {
	s.stream.WriteBool(value)
	return s.stream.Error
}

func (s *Serializer) SerializeInt64(value int64) error {
	s.stream.WriteInt64(value)
	return s.stream.Error
}

func (s *Serializer) SerializeUint64(value uint64) error {
	s.stream.WriteUint64(value)
	return s.stream.Error
}

func (s *Serializer) SerializeFloat64(value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("json: unsupported float value %v", value)
	}
	s.stream.WriteFloat64(value)
	return s.stream.Error
}

func (s *Serializer) SerializeString(value string) error {
	s.stream.WriteString(value)
	return s.stream.Error
}

func (s *Serializer) SerializeNull() error {
	s.stream.WriteNil()
	return s.stream.Error
}

func (s *Serializer) SerializeMap(size int) (serial.MapSerializer, error) {
	s.stream.WriteObjectStart()
	return &mapSerializer{serializer: s, size: size}, s.stream.Error
}

func (s *Serializer) SerializeSeq(size int) (serial.SeqSerializer, error) {
	s.stream.WriteArrayStart()
	return &seqSerializer{serializer: s, size: size}, s.stream.Error
}

type mapSerializer struct {
	serializer *Serializer
	size       int
	count      int
}

func (m *mapSerializer) SerializeEntry(key string, value serial.Serializable) error {
	if m.size != serial.UnknownSize && m.count >= m.size {
		return fmt.Errorf("map entry %q beyond declared size %d: %w", key, m.size, serial.ErrSizeMismatch)
	}
	stream := m.serializer.stream
	if m.count > 0 {
		stream.WriteMore()
	}
	m.count++
	stream.WriteObjectField(key)
	if stream.Error != nil {
		return stream.Error
	}
	return value.Serialize(m.serializer)
}

func (m *mapSerializer) End() error {
	if m.size != serial.UnknownSize && m.count != m.size {
		return fmt.Errorf("map closed after %d of %d entries: %w", m.count, m.size, serial.ErrSizeMismatch)
	}
	m.serializer.stream.WriteObjectEnd()
	return m.serializer.stream.Error
}

type seqSerializer struct {
	serializer *Serializer
	size       int
	count      int
}

func (q *seqSerializer) SerializeElement(value serial.Serializable) error {
	if q.size != serial.UnknownSize && q.count >= q.size {
		return fmt.Errorf("sequence element beyond declared size %d: %w", q.size, serial.ErrSizeMismatch)
	}
	if q.count > 0 {
		q.serializer.stream.WriteMore()
	}
	q.count++
	return value.Serialize(q.serializer)
}

func (q *seqSerializer) End() error {
	if q.size != serial.UnknownSize && q.count != q.size {
		return fmt.Errorf("sequence closed after %d of %d elements: %w", q.count, q.size, serial.ErrSizeMismatch)
	}
	q.serializer.stream.WriteArrayEnd()
	return q.serializer.stream.Error
}
