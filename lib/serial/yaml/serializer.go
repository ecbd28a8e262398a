// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package yaml implements [serial.Serializer] and [serial.Deserializer]
// over gopkg.in/yaml.v3 node trees.
//
// Serialization builds a yaml.Node tree in entry order and encodes it
// with two-space indentation. Every scalar carries an explicit core
// schema tag, so a string that looks like a number or a boolean is
// quoted on output and read back as a string.
package yaml

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/bureau-foundation/tracecodec/lib/serial"
)

const (
	tagBool  = "!!bool"
	tagInt   = "!!int"
	tagFloat = "!!float"
	tagStr   = "!!str"
	tagNull  = "!!null"
	tagMap   = "!!map"
	tagSeq   = "!!seq"
)

// Serializer fills in one yaml.Node.
type Serializer struct {
	node *yamlv3.Node
}

// NewSerializer returns a Serializer that writes into node.
func NewSerializer(node *yamlv3.Node) *Serializer {
	return &Serializer{node: node}
}

// Marshal serializes value as a YAML document.
func Marshal(value serial.Serializable) ([]byte, error) {
	var root yamlv3.Node
	if err := value.Serialize(NewSerializer(&root)); err != nil {
		return nil, err
	}
	var buffer bytes.Buffer
	encoder := yamlv3.NewEncoder(&buffer)
	encoder.SetIndent(2)
	if err := encoder.Encode(&root); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return buffer.Bytes(), nil
}

func (s *Serializer) scalar(tag, value string) error {
	*s.node = yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: tag, Value: value}
	return nil
}

func (s *Serializer) SerializeBool(value bool) error {
	return s.scalar(tagBool, strconv.FormatBool(value))
}

func (s *Serializer) SerializeInt64(value int64) error {
	return s.scalar(tagInt, strconv.FormatInt(value, 10))
}

func (s *Serializer) SerializeUint64(value uint64) error {
	return s.scalar(tagInt, strconv.FormatUint(value, 10))
}

func (s *Serializer) SerializeFloat64(value float64) error {
	switch {
	case math.IsNaN(value):
		return s.scalar(tagFloat, ".nan")
	case math.IsInf(value, 1):
		return s.scalar(tagFloat, ".inf")
	case math.IsInf(value, -1):
		return s.scalar(tagFloat, "-.inf")
	}
	text := strconv.FormatFloat(value, 'g', -1, 64)
	// Keep a float looking like a float so untagged readers do not
	// resolve it as !!int.
	if _, err := strconv.ParseInt(text, 10, 64); err == nil {
		text += ".0"
	}
	return s.scalar(tagFloat, text)
}

func (s *Serializer) SerializeString(value string) error {
	return s.scalar(tagStr, value)
}

func (s *Serializer) SerializeNull() error {
	return s.scalar(tagNull, "null")
}

func (s *Serializer) SerializeMap(size int) (serial.MapSerializer, error) {
	*s.node = yamlv3.Node{Kind: yamlv3.MappingNode, Tag: tagMap}
	if size > 0 {
		s.node.Content = make([]*yamlv3.Node, 0, 2*size)
	}
	return &mapSerializer{node: s.node, size: size}, nil
}

func (s *Serializer) SerializeSeq(size int) (serial.SeqSerializer, error) {
	*s.node = yamlv3.Node{Kind: yamlv3.SequenceNode, Tag: tagSeq}
	if size > 0 {
		s.node.Content = make([]*yamlv3.Node, 0, size)
	}
	return &seqSerializer{node: s.node, size: size}, nil
}

type mapSerializer struct {
	node  *yamlv3.Node
	size  int
	count int
}

func (m *mapSerializer) SerializeEntry(key string, value serial.Serializable) error {
	if m.size != serial.UnknownSize && m.count >= m.size {
		return fmt.Errorf("map entry %q beyond declared size %d: %w", key, m.size, serial.ErrSizeMismatch)
	}
	m.count++
	keyNode := &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: tagStr, Value: key}
	valueNode := &yamlv3.Node{}
	if err := value.Serialize(NewSerializer(valueNode)); err != nil {
		return err
	}
	m.node.Content = append(m.node.Content, keyNode, valueNode)
	return nil
}

func (m *mapSerializer) End() error {
	if m.size != serial.UnknownSize && m.count != m.size {
		return fmt.Errorf("map closed after %d of %d entries: %w", m.count, m.size, serial.ErrSizeMismatch)
	}
	return nil
}

type seqSerializer struct {
	node  *yamlv3.Node
	size  int
	count int
}

func (q *seqSerializer) SerializeElement(value serial.Serializable) error {
	if q.size != serial.UnknownSize && q.count >= q.size {
		return fmt.Errorf("sequence element beyond declared size %d: %w", q.size, serial.ErrSizeMismatch)
	}
	q.count++
	element := &yamlv3.Node{}
	if err := value.Serialize(NewSerializer(element)); err != nil {
		return err
	}
	q.node.Content = append(q.node.Content, element)
	return nil
}

func (q *seqSerializer) End() error {
	if q.size != serial.UnknownSize && q.count != q.size {
		return fmt.Errorf("sequence closed after %d of %d elements: %w", q.count, q.size, serial.ErrSizeMismatch)
	}
	return nil
}
