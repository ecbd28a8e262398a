// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"time"
)

// TB is the subset of testing.TB the helpers need.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
}

// RequireReceive returns the next value from ch, failing t if ch is
// closed or nothing arrives within timeout.
//
//	result := testutil.RequireReceive(t, results, 5*time.Second, "drain result")
func RequireReceive[T any](t TB, ch <-chan T, timeout time.Duration, message string, args ...any) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		if !ok {
			t.Fatalf("channel closed before a value arrived: %s", fmt.Sprintf(message, args...))
		}
		return v
	case <-time.After(timeout):
		t.Fatalf("timed out after %v: %s", timeout, fmt.Sprintf(message, args...))
	}
	panic("unreachable")
}

// RequireClosed waits for ch to close or deliver a value within
// timeout.
func RequireClosed(t TB, ch <-chan struct{}, timeout time.Duration, message string, args ...any) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(timeout):
		t.Fatalf("timed out after %v waiting for channel: %s", timeout, fmt.Sprintf(message, args...))
	}
}
