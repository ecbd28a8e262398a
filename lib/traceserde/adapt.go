// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package traceserde

import (
	"fmt"

	"github.com/bureau-foundation/tracecodec/lib/serial"
	"github.com/bureau-foundation/tracecodec/lib/tracing"
)

// Entity is the closed set of tracing types that can be adapted.
type Entity interface {
	*tracing.Metadata | *tracing.Event | *tracing.Attributes | *tracing.Record | tracing.ID | tracing.Level
}

// Serializable is a wrapper produced by this package. Only types in
// this package implement it.
type Serializable interface {
	serial.Serializable
	sealed()
}

var (
	_ Serializable = Metadata[Borrowed]{}
	_ Serializable = Event[Borrowed]{}
	_ Serializable = Attributes[Borrowed]{}
	_ Serializable = Record[Borrowed]{}
	_ Serializable = ID{}
	_ Serializable = Level(0)
)

// AsSerde returns the serializable view of entity. Pointer entities are
// borrowed: the result is valid only while entity is, and must be
// converted with ToOwned before being retained.
//
// Use the typed functions (AdaptEvent, AdaptMetadata and so on) when
// the concrete wrapper type is needed.
func AsSerde[E Entity](entity E) Serializable {
	switch entity := any(entity).(type) {
	case *tracing.Metadata:
		return AdaptMetadata(entity)
	case *tracing.Event:
		return AdaptEvent(entity)
	case *tracing.Attributes:
		return AdaptAttributes(entity)
	case *tracing.Record:
		return AdaptRecord(entity)
	case tracing.ID:
		return AdaptID(entity)
	case tracing.Level:
		return AdaptLevel(entity)
	default:
		panic(fmt.Sprintf("traceserde: unhandled entity type %T", entity))
	}
}
