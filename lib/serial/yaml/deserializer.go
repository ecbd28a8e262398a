// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package yaml

import (
	"fmt"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/bureau-foundation/tracecodec/lib/serial"
)

// Deserializer reads one yaml.Node. Children are handed to callbacks
// as their own Deserializers, so nothing needs to be skipped.
type Deserializer struct {
	node *yamlv3.Node
}

// NewDeserializer returns a Deserializer over node. Alias nodes are
// followed.
func NewDeserializer(node *yamlv3.Node) *Deserializer {
	for node.Kind == yamlv3.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return &Deserializer{node: node}
}

// Unmarshal parses a single YAML document and decodes it into value.
func Unmarshal(data []byte, value serial.Deserializable) error {
	var document yamlv3.Node
	if err := yamlv3.Unmarshal(data, &document); err != nil {
		return fmt.Errorf("yaml: %w", err)
	}
	if document.Kind != yamlv3.DocumentNode || len(document.Content) != 1 {
		return fmt.Errorf("yaml: expected a single document")
	}
	return value.Deserialize(NewDeserializer(document.Content[0]))
}

func (d *Deserializer) scalar(name string, tags ...string) error {
	if d.node.Kind != yamlv3.ScalarNode {
		return fmt.Errorf("yaml: line %d: want %s: %w", d.node.Line, name, serial.ErrUnexpectedKind)
	}
	tag := d.node.ShortTag()
	for _, accepted := range tags {
		if tag == accepted {
			return nil
		}
	}
	return fmt.Errorf("yaml: line %d: want %s, found %s: %w", d.node.Line, name, tag, serial.ErrUnexpectedKind)
}

func (d *Deserializer) decode(target any) error {
	if err := d.node.Decode(target); err != nil {
		return fmt.Errorf("yaml: line %d: %w", d.node.Line, err)
	}
	return nil
}

func (d *Deserializer) DeserializeBool() (bool, error) {
	if err := d.scalar("bool", tagBool); err != nil {
		return false, err
	}
	var value bool
	err := d.decode(&value)
	return value, err
}

func (d *Deserializer) DeserializeInt64() (int64, error) {
	if err := d.scalar("integer", tagInt); err != nil {
		return 0, err
	}
	var value int64
	err := d.decode(&value)
	return value, err
}

func (d *Deserializer) DeserializeUint64() (uint64, error) {
	if err := d.scalar("unsigned integer", tagInt); err != nil {
		return 0, err
	}
	var value uint64
	err := d.decode(&value)
	return value, err
}

func (d *Deserializer) DeserializeFloat64() (float64, error) {
	if err := d.scalar("float", tagFloat, tagInt); err != nil {
		return 0, err
	}
	var value float64
	err := d.decode(&value)
	return value, err
}

func (d *Deserializer) DeserializeString() (string, error) {
	if err := d.scalar("string", tagStr); err != nil {
		return "", err
	}
	return d.node.Value, nil
}

func (d *Deserializer) DeserializeNull() (bool, error) {
	return d.node.Kind == yamlv3.ScalarNode && d.node.ShortTag() == tagNull, nil
}

func (d *Deserializer) DeserializeMap(fn func(key string, value serial.Deserializer) error) error {
	if d.node.Kind != yamlv3.MappingNode {
		return fmt.Errorf("yaml: line %d: want mapping: %w", d.node.Line, serial.ErrUnexpectedKind)
	}
	for index := 0; index+1 < len(d.node.Content); index += 2 {
		key, err := NewDeserializer(d.node.Content[index]).DeserializeString()
		if err != nil {
			return fmt.Errorf("map key: %w", err)
		}
		if err := fn(key, NewDeserializer(d.node.Content[index+1])); err != nil {
			return err
		}
	}
	return nil
}

func (d *Deserializer) DeserializeSeq(fn func(element serial.Deserializer) error) error {
	if d.node.Kind != yamlv3.SequenceNode {
		return fmt.Errorf("yaml: line %d: want sequence: %w", d.node.Line, serial.ErrUnexpectedKind)
	}
	for _, element := range d.node.Content {
		if err := fn(NewDeserializer(element)); err != nil {
			return err
		}
	}
	return nil
}

func (d *Deserializer) Skip() error { return nil }
