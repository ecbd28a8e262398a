// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package traceserde adapts lib/tracing entities to the generic
// serialization interface in lib/serial, and back.
//
// # Live and materialized values
//
// Every wrapper ([Metadata], [FieldSet], [EventFields], [SpanFields],
// [Record], [Event], [Attributes]) is in one of two states:
//
//   - Live: it points at the borrowed tracing entity. Serializing it
//     re-runs the entity's own Record walk through a [Collector] that
//     writes each value straight into the active map serializer. No
//     intermediate copy is made.
//   - Materialized: it holds an owned snapshot ([RecordMap], owned
//     name lists). Serializing it writes the snapshot.
//
// Both states produce identical output for the same logical content,
// so a consumer can serialize inside a callback or materialize first
// and serialize later without the bytes changing.
//
// # Lifetimes
//
// Wrappers carry a phantom type parameter that records where their
// data may live. [AsSerde] and the Adapt functions return
// Borrowed-instantiated wrappers, valid only until the callback that
// produced the tracing entity returns. ToOwned converts any wrapper to
// its Static instantiation by materializing live data and cloning
// borrowed strings. Decoding always produces Static wrappers. APIs that
// keep values past a callback or hand them to another goroutine
// (lib/tracebuf) accept only Static wrappers, so a live wrapper cannot
// reach them without going through ToOwned.
//
// # Wire shape
//
// Field values are externally tagged single-entry maps ({"U64": 404},
// {"Str": "not found"}) so integer signedness and debug-vs-string
// survive formats that cannot tell them apart. Levels are the literal
// tokens "TRACE" through "ERROR". Span IDs are {"id": n}. Field sets
// are sequences of names. Field maps keep the order values were
// visited or decoded in; nothing is sorted.
//
// # Bounded builds
//
// Building with the tracecodec_bounded tag replaces the growable
// containers with fixed-capacity ones holding at most [MaxEntries]
// items. Inserting past capacity fails with [ErrCapacity] and leaves
// existing entries untouched. ToOwned is not available in that build.
package traceserde
