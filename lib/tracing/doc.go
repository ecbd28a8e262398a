// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tracing is the instrumentation data model that tracecodec
// adapts: callsite [Metadata], [Event] and span [Attributes] records,
// span [Record] updates, span [ID]s and severity [Level]s.
//
// Field values are pushed, never pulled. Each entity exposes a Record
// method that walks its recorded values in declaration order and calls
// the matching method on a [Visitor]. There is no way for a visitor to
// stop the walk early; visitors that can fail must remember their own
// error state.
//
// Entities handed to a callback are borrowed: a producer (a log bridge,
// an OpenTelemetry span processor, a test) may reuse the underlying
// storage once the callback returns. Consumers that need to keep the
// data must copy it before returning. lib/traceserde provides that copy.
//
// This package is a data model only. It does not create spans, assign
// IDs, dispatch callbacks, or filter anything.
package tracing
