// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cbor implements [serial.Serializer] and [serial.Deserializer]
// for CBOR (RFC 8949).
//
// Maps and sequences opened with a known size are written with a
// definite-length header, so the same logical content always produces
// the same bytes regardless of how it was produced. Maps opened with
// [serial.UnknownSize] use indefinite-length encoding. Scalars use the
// core deterministic rules from lib/codec.
//
// Decoding walks the input one data item at a time, so map entries are
// delivered in encoded order.
package cbor

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/bureau-foundation/tracecodec/lib/codec"
	"github.com/bureau-foundation/tracecodec/lib/serial"
)

// CBOR major types (RFC 8949 §3.1), pre-shifted into the high three
// bits of the initial byte.
const (
	majorUnsigned byte = 0 << 5
	majorNegative byte = 1 << 5
	majorText     byte = 3 << 5
	majorArray    byte = 4 << 5
	majorMap      byte = 5 << 5
)

const (
	additionalIndefinite byte = 31
	breakCode            byte = 0xff
	simpleFalse          byte = 0xf4
	simpleTrue           byte = 0xf5
	simpleNull           byte = 0xf6
	simpleUndefined      byte = 0xf7
	floatHalf            byte = 0xf9
	floatSingle          byte = 0xfa
	floatDouble          byte = 0xfb
)

// Serializer writes CBOR to an io.Writer. A Serializer and the map and
// sequence serializers it opens share one underlying stream; entries
// must be written in order and every map or sequence closed before the
// enclosing one.
type Serializer struct {
	writer  io.Writer
	encoder *codec.Encoder
}

// NewSerializer returns a Serializer writing to w.
func NewSerializer(w io.Writer) *Serializer {
	return &Serializer{writer: w, encoder: codec.NewStreamEncoder(w)}
}

// Marshal serializes value into a new byte slice.
func Marshal(value serial.Serializable) ([]byte, error) {
	var buffer bytes.Buffer
	if err := value.Serialize(NewSerializer(&buffer)); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func (s *Serializer) SerializeBool(value bool) error { return s.encoder.Encode(value) }

func (s *Serializer) SerializeInt64(value int64) error { return s.encoder.Encode(value) }

func (s *Serializer) SerializeUint64(value uint64) error { return s.encoder.Encode(value) }

func (s *Serializer) SerializeFloat64(value float64) error { return s.encoder.Encode(value) }

func (s *Serializer) SerializeString(value string) error { return s.encoder.Encode(value) }

func (s *Serializer) SerializeNull() error { return s.encoder.Encode(nil) }

func (s *Serializer) SerializeMap(size int) (serial.MapSerializer, error) {
	if size == serial.UnknownSize {
		if err := s.encoder.StartIndefiniteMap(); err != nil {
			return nil, err
		}
	} else if err := s.writeHead(majorMap, size); err != nil {
		return nil, err
	}
	return &mapSerializer{serializer: s, size: size}, nil
}

func (s *Serializer) SerializeSeq(size int) (serial.SeqSerializer, error) {
	if size == serial.UnknownSize {
		if err := s.encoder.StartIndefiniteArray(); err != nil {
			return nil, err
		}
	} else if err := s.writeHead(majorArray, size); err != nil {
		return nil, err
	}
	return &seqSerializer{serializer: s, size: size}, nil
}

// writeHead writes a definite-length header using the shortest
// argument encoding. fxamacker/cbor's Encoder only exposes
// indefinite-length containers, so definite headers are written to the
// shared stream directly.
func (s *Serializer) writeHead(major byte, size int) error {
	if size < 0 {
		return fmt.Errorf("cbor: invalid container size %d", size)
	}
	length := uint64(size)
	var head []byte
	switch {
	case length < 24:
		head = []byte{major | byte(length)}
	case length <= 0xff:
		head = []byte{major | 24, byte(length)}
	case length <= 0xffff:
		head = binary.BigEndian.AppendUint16([]byte{major | 25}, uint16(length))
	case length <= 0xffffffff:
		head = binary.BigEndian.AppendUint32([]byte{major | 26}, uint32(length))
	default:
		head = binary.BigEndian.AppendUint64([]byte{major | 27}, length)
	}
	_, err := s.writer.Write(head)
	return err
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
	m.count++
	if err := m.serializer.encoder.Encode(key); err != nil {
		return err
	}
	return value.Serialize(m.serializer)
}

func (m *mapSerializer) End() error {
	if m.size == serial.UnknownSize {
		return m.serializer.encoder.EndIndefinite()
	}
	if m.count != m.size {
		return fmt.Errorf("map closed after %d of %d entries: %w", m.count, m.size, serial.ErrSizeMismatch)
	}
	return nil
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
	q.count++
	return value.Serialize(q.serializer)
}

func (q *seqSerializer) End() error {
	if q.size == serial.UnknownSize {
		return q.serializer.encoder.EndIndefinite()
	}
	if q.count != q.size {
		return fmt.Errorf("sequence closed after %d of %d elements: %w", q.count, q.size, serial.ErrSizeMismatch)
	}
	return nil
}
