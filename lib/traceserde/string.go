// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package traceserde

import (
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/bureau-foundation/tracecodec/lib/serial"
)

// StringRef is a string that either borrows storage from the
// instrumentation source or owns a detached copy. A borrowed string
// may share memory with a larger buffer the source reuses after the
// callback returns; an owned string never does.
//
// Equality, ordering and hashing look at content only: a borrowed and
// an owned StringRef with the same bytes are equal and hash the same.
type StringRef struct {
	value    string
	borrowed bool
}

// Borrow wraps s without copying it.
func Borrow(s string) StringRef { return StringRef{value: s, borrowed: true} }

// Own wraps s as owned data. The caller guarantees s does not alias
// storage that will be reused; decoders use this for strings they
// allocated themselves.
func Own(s string) StringRef { return StringRef{value: s} }

// String returns the content.
func (s StringRef) String() string { return s.value }

// IsBorrowed reports whether s refers to borrowed storage.
func (s StringRef) IsBorrowed() bool { return s.borrowed }

// Equal reports whether s and other have the same content.
func (s StringRef) Equal(other StringRef) bool { return s.value == other.value }

// Compare orders by content, like strings.Compare.
func (s StringRef) Compare(other StringRef) int { return strings.Compare(s.value, other.value) }

// Hash returns the 64-bit xxHash of the content.
func (s StringRef) Hash() uint64 { return xxhash.Sum64String(s.value) }

func (s StringRef) Serialize(serializer serial.Serializer) error {
	return serializer.SerializeString(s.value)
}

func decodeString(deserializer serial.Deserializer) (StringRef, error) {
	value, err := deserializer.DeserializeString()
	if err != nil {
		return StringRef{}, err
	}
	return Own(value), nil
}
