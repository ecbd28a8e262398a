// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tracing

import "strconv"

// ID identifies a span. IDs are assigned by whatever creates spans and
// are never zero; the zero value of ID means "no span".
type ID struct {
	value uint64
}

// NewID wraps a span identifier. Panics if value is zero, since a zero
// ID cannot be distinguished from "no span".
func NewID(value uint64) ID {
	if value == 0 {
		panic("tracing: span ID must be nonzero")
	}
	return ID{value: value}
}

// Uint64 returns the numeric identifier.
func (id ID) Uint64() uint64 { return id.value }

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool { return id.value == 0 }

// String returns the decimal identifier.
func (id ID) String() string { return strconv.FormatUint(id.value, 10) }
