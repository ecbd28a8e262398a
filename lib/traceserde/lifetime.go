// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package traceserde

// Lifetime is the phantom type parameter carried by every wrapper.
type Lifetime interface {
	Borrowed | Static
}

// Borrowed marks a wrapper that may point into a tracing entity owned
// by the caller of the current callback. It must not be retained after
// the callback returns or passed to another goroutine.
type Borrowed struct{}

// Static marks a wrapper that owns all of its data.
type Static struct{}
