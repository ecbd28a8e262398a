// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !tracecodec_bounded

package tracebuf

import (
	"fmt"
	"log/slog"
	"sync"
)

// Buffer is a byte-bounded FIFO of encoded frames. When a Push would
// exceed the bound, the oldest frames are dropped until the new one
// fits: a slow consumer loses old data instead of growing memory
// without limit.
//
// Notify returns a channel with capacity 1 that is signalled after
// each Push. Consumers select on it alongside their own cancellation.
//
// Safe for concurrent use.
type Buffer struct {
	mu        sync.Mutex
	frames    [][]byte
	totalSize int
	maxSize   int
	dropped   uint64
	notify    chan struct{}
	logger    *slog.Logger
}

// NewBuffer returns a Buffer holding at most maxSize bytes. Drops are
// logged at Warn to logger; a nil logger discards them. maxSize must
// be positive.
func NewBuffer(maxSize int, logger *slog.Logger) *Buffer {
	if maxSize <= 0 {
		panic(fmt.Sprintf("tracebuf: buffer maxSize must be positive, got %d", maxSize))
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Buffer{
		maxSize: maxSize,
		notify:  make(chan struct{}, 1),
		logger:  logger,
	}
}

// Push appends a frame, dropping the oldest frames if needed. A frame
// larger than the whole buffer is rejected; the flush threshold should
// be well below the buffer size.
func (b *Buffer) Push(frame []byte) error {
	size := len(frame)
	if size == 0 {
		return fmt.Errorf("tracebuf: refusing to push empty frame")
	}
	if size > b.maxSize {
		return fmt.Errorf("tracebuf: frame size %d exceeds buffer size %d", size, b.maxSize)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	dropped := 0
	for b.totalSize+size > b.maxSize && len(b.frames) > 0 {
		b.totalSize -= len(b.frames[0])
		b.frames[0] = nil
		b.frames = b.frames[1:]
		b.dropped++
		dropped++
	}
	if dropped > 0 {
		b.logger.Warn("trace buffer full, dropped oldest frames",
			"dropped", dropped,
			"dropped_total", b.dropped,
			"buffer_bytes", b.totalSize,
			"max_bytes", b.maxSize,
		)
	}

	b.frames = append(b.frames, frame)
	b.totalSize += size

	select {
	case b.notify <- struct{}{}:
	default:
	}
	return nil
}

// Peek returns the oldest frame without removing it, or nil.
func (b *Buffer) Peek() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.frames) == 0 {
		return nil
	}
	return b.frames[0]
}

// Pop removes the oldest frame.
func (b *Buffer) Pop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.frames) == 0 {
		return
	}
	b.totalSize -= len(b.frames[0])
	b.frames[0] = nil
	b.frames = b.frames[1:]
}

// Take removes and returns the oldest frame, or nil. Unlike Peek and
// Pop it is atomic with respect to concurrent drops.
func (b *Buffer) Take() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.frames) == 0 {
		return nil
	}
	frame := b.frames[0]
	b.totalSize -= len(frame)
	b.frames[0] = nil
	b.frames = b.frames[1:]
	return frame
}

// Len returns the number of queued frames.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.frames)
}

// SizeBytes returns the total size of queued frames.
func (b *Buffer) SizeBytes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.totalSize
}

// Dropped returns how many frames have been dropped since creation.
func (b *Buffer) Dropped() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// Notify returns the channel signalled after each Push.
func (b *Buffer) Notify() <-chan struct{} {
	return b.notify
}
