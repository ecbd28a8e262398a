// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !tracecodec_bounded

package tracebuf

import (
	"fmt"

	"github.com/bureau-foundation/tracecodec/lib/traceserde"
	"github.com/bureau-foundation/tracecodec/lib/tracing"
)

var (
	requestMetadata = tracing.NewMetadata(tracing.Callsite{
		Name:   "request",
		Target: "svc",
		Level:  tracing.LevelWarn,
		Fields: []string{"code", "msg"},
		Kind:   tracing.KindEvent,
	})
	handlerMetadata = tracing.NewMetadata(tracing.Callsite{
		Name:   "handler",
		Target: "svc::http",
		Level:  tracing.LevelInfo,
		Fields: []string{"route", "attempt"},
		Kind:   tracing.KindSpan,
	})
)

// ownedEvent builds the request event with code and a numbered
// message, converted to owned form as a subscriber would before
// buffering it.
func ownedEvent(code uint64, n int) traceserde.Event[traceserde.Static] {
	values := requestMetadata.Fields().Values(tracing.Uint64(code), tracing.String(fmt.Sprintf("request %d failed", n)))
	return traceserde.AdaptEvent(tracing.NewEvent(requestMetadata, values)).ToOwned()
}

func ownedSpan() traceserde.Attributes[traceserde.Static] {
	values := handlerMetadata.Fields().Values(tracing.String("/v1/items"), tracing.Int(1))
	return traceserde.AdaptAttributes(tracing.NewRootAttributes(handlerMetadata, values)).ToOwned()
}

func ownedRecord() traceserde.Record[traceserde.Static] {
	values := handlerMetadata.Fields().Values(nil, tracing.Int(2))
	return traceserde.AdaptRecord(tracing.NewRecord(values)).ToOwned()
}

var spanID = traceserde.AdaptID(tracing.NewID(17))
