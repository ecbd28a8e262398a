// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package traceserde

import "errors"

var (
	// ErrCapacity is returned when a fixed-capacity container is full.
	// It only occurs in builds with the tracecodec_bounded tag.
	ErrCapacity = errors.New("traceserde: container capacity exceeded")

	// ErrUnsupportedValue is recorded by a Collector when a structured
	// field value has no serialized form.
	ErrUnsupportedValue = errors.New("traceserde: structured value is not serializable")
)
