// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !tracecodec_bounded

package tracebuf

import (
	"fmt"
	"sync"

	"github.com/bureau-foundation/tracecodec/lib/serial"
	"github.com/bureau-foundation/tracecodec/lib/serial/cbor"
	"github.com/bureau-foundation/tracecodec/lib/traceserde"
)

// Accumulator collects owned entries and produces batches on demand.
// It tracks the CBOR size of what it holds so callers can flush once a
// threshold is crossed.
//
// Safe for concurrent use.
type Accumulator struct {
	mu             sync.Mutex
	entries        []Entry
	sizeBytes      int
	sequence       uint64
	flushThreshold int
}

// NewAccumulator returns an Accumulator that reports a flush is due
// once flushThreshold bytes are held. A threshold of 0 disables
// size-based flushing.
func NewAccumulator(flushThreshold int) *Accumulator {
	return &Accumulator{flushThreshold: flushThreshold}
}

// AddEvent appends an event. It reports whether the flush threshold
// has been reached.
func (a *Accumulator) AddEvent(event traceserde.Event[traceserde.Static]) (bool, error) {
	return a.add(EventEntry(event))
}

// AddSpan appends the creation of span.
func (a *Accumulator) AddSpan(span traceserde.ID, attributes traceserde.Attributes[traceserde.Static]) (bool, error) {
	return a.add(NewSpanEntry(span, attributes))
}

// AddRecord appends values recorded onto span.
func (a *Accumulator) AddRecord(span traceserde.ID, record traceserde.Record[traceserde.Static]) (bool, error) {
	return a.add(RecordEntry(span, record))
}

// Add appends an entry of any kind.
func (a *Accumulator) Add(entry Entry) (bool, error) {
	return a.add(entry)
}

func (a *Accumulator) add(entry Entry) (bool, error) {
	size, err := encodedSize(entry)
	if err != nil {
		return false, fmt.Errorf("measuring %s entry: %w", entry.Kind(), err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
	a.sizeBytes += size
	return a.flushThreshold > 0 && a.sizeBytes >= a.flushThreshold, nil
}

// Flush drains the held entries into a batch. It returns nil if
// nothing was added since the last flush. Each non-nil batch takes the
// next sequence number.
func (a *Accumulator) Flush() *Batch {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.entries) == 0 {
		return nil
	}
	batch := &Batch{Sequence: a.sequence, Entries: a.entries}
	a.entries = nil
	a.sizeBytes = 0
	a.sequence++
	return batch
}

// SizeBytes returns the CBOR size of the held entries.
func (a *Accumulator) SizeBytes() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sizeBytes
}

// Len returns the number of held entries.
func (a *Accumulator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}

// Sequence returns the number the next batch will carry.
func (a *Accumulator) Sequence() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sequence
}

func encodedSize(value serial.Serializable) (int, error) {
	data, err := cbor.Marshal(value)
	if err != nil {
		return 0, err
	}
	return len(data), nil
}
