// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package traceserde

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/tracecodec/lib/serial"
	"github.com/bureau-foundation/tracecodec/lib/tracing"
)

// ID is a serializable span identifier, written as {"id": n}.
type ID struct {
	value uint64
}

// AdaptID converts a tracing span ID.
func AdaptID(id tracing.ID) ID { return ID{value: id.Uint64()} }

func (id ID) Uint64() uint64 { return id.value }

// Tracing converts back to the tracing ID.
func (id ID) Tracing() tracing.ID { return tracing.NewID(id.value) }

func (id ID) String() string { return fmt.Sprintf("%d", id.value) }

func (id ID) Serialize(serializer serial.Serializer) error {
	out, err := serializer.SerializeMap(1)
	if err != nil {
		return err
	}
	if err := out.SerializeEntry("id", serial.Uint64(id.value)); err != nil {
		return err
	}
	return out.End()
}

func (ID) sealed() {}

// DecodeID reads a span identifier. Zero is rejected.
func DecodeID(deserializer serial.Deserializer) (ID, error) {
	var (
		id   ID
		seen bool
	)
	err := deserializer.DeserializeMap(func(key string, value serial.Deserializer) error {
		if key != "id" {
			return value.Skip()
		}
		v, err := value.DeserializeUint64()
		if err != nil {
			return fmt.Errorf("id: %w", err)
		}
		id, seen = ID{value: v}, true
		return nil
	})
	if err != nil {
		return ID{}, err
	}
	if !seen {
		return ID{}, errors.New("span id: missing \"id\"")
	}
	if id.value == 0 {
		return ID{}, errors.New("span id: zero is not a valid id")
	}
	return id, nil
}
