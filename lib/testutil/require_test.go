// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

type fatalRecorder struct {
	message string
}

func (r *fatalRecorder) Helper() {}

func (r *fatalRecorder) Fatalf(format string, args ...any) {
	r.message = fmt.Sprintf(format, args...)
	panic(r)
}

// capture runs fn and returns the Fatalf message, if any.
func capture(fn func(t TB)) (message string) {
	recorder := &fatalRecorder{}
	defer func() {
		if recovered := recover(); recovered != nil {
			if recovered != recorder {
				panic(recovered)
			}
			message = recorder.message
		}
	}()
	fn(recorder)
	return ""
}

func TestRequireReceive(t *testing.T) {
	ch := make(chan int, 1)
	ch <- 7
	if got := RequireReceive(t, ch, time.Second, "value"); got != 7 {
		t.Fatalf("RequireReceive = %d, want 7", got)
	}
}

func TestRequireReceiveClosed(t *testing.T) {
	ch := make(chan int)
	close(ch)
	message := capture(func(t TB) { RequireReceive(t, ch, time.Second, "frame %d", 3) })
	if !strings.Contains(message, "closed") || !strings.Contains(message, "frame 3") {
		t.Fatalf("message = %q", message)
	}
}

func TestRequireReceiveTimeout(t *testing.T) {
	message := capture(func(t TB) { RequireReceive(t, make(chan int), time.Millisecond, "drain") })
	if !strings.Contains(message, "timed out") {
		t.Fatalf("message = %q", message)
	}
}

func TestRequireClosed(t *testing.T) {
	done := make(chan struct{})
	close(done)
	RequireClosed(t, done, time.Second, "done")

	message := capture(func(t TB) { RequireClosed(t, make(chan struct{}), time.Millisecond, "ready") })
	if !strings.Contains(message, "ready") {
		t.Fatalf("message = %q", message)
	}
}
