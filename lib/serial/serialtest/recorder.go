// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package serialtest provides a [serial.Serializer] that records every
// call, for tests that assert on the exact sequence of serialization
// operations rather than on encoded bytes.
package serialtest

import (
	"fmt"
	"strconv"

	"github.com/bureau-foundation/tracecodec/lib/serial"
)

// Recorder is a serial.Serializer that appends one token per call to
// Tokens. Map and sequence serializers opened from a Recorder share its
// token list and entry counter.
//
// Tokens look like:
//
//	map(2) key(code) u64(404) key(msg) str(not found) end
//
// When FailAtEntry is k > 0, the k-th SerializeEntry call (counting
// across all maps) returns FailErr without recording anything, and
// every later call is still recorded so tests can detect calls that
// should not have happened.
type Recorder struct {
	Tokens      []string
	FailAtEntry int
	FailErr     error

	// Entries counts SerializeEntry calls, including the failing one.
	Entries int
}

// NewRecorder returns a Recorder that never fails.
func NewRecorder() *Recorder { return &Recorder{} }

// NewFailingRecorder returns a Recorder whose k-th entry fails with err.
func NewFailingRecorder(k int, err error) *Recorder {
	return &Recorder{FailAtEntry: k, FailErr: err}
}

func (r *Recorder) record(token string) error {
	r.Tokens = append(r.Tokens, token)
	return nil
}

func (r *Recorder) SerializeBool(value bool) error {
	return r.record("bool(" + strconv.FormatBool(value) + ")")
}

func (r *Recorder) SerializeInt64(value int64) error {
	return r.record("i64(" + strconv.FormatInt(value, 10) + ")")
}

func (r *Recorder) SerializeUint64(value uint64) error {
	return r.record("u64(" + strconv.FormatUint(value, 10) + ")")
}

func (r *Recorder) SerializeFloat64(value float64) error {
	return r.record("f64(" + strconv.FormatFloat(value, 'g', -1, 64) + ")")
}

func (r *Recorder) SerializeString(value string) error {
	return r.record("str(" + value + ")")
}

func (r *Recorder) SerializeNull() error { return r.record("null") }

func (r *Recorder) SerializeMap(size int) (serial.MapSerializer, error) {
	r.record(fmt.Sprintf("map(%d)", size))
	return &recordedMap{recorder: r}, nil
}

func (r *Recorder) SerializeSeq(size int) (serial.SeqSerializer, error) {
	r.record(fmt.Sprintf("seq(%d)", size))
	return &recordedSeq{recorder: r}, nil
}

type recordedMap struct {
	recorder *Recorder
}

func (m *recordedMap) SerializeEntry(key string, value serial.Serializable) error {
	m.recorder.Entries++
	if m.recorder.FailAtEntry > 0 && m.recorder.Entries == m.recorder.FailAtEntry {
		return m.recorder.FailErr
	}
	m.recorder.record("key(" + key + ")")
	return value.Serialize(m.recorder)
}

func (m *recordedMap) End() error { return m.recorder.record("end") }

type recordedSeq struct {
	recorder *Recorder
}

func (q *recordedSeq) SerializeElement(value serial.Serializable) error {
	return value.Serialize(q.recorder)
}

func (q *recordedSeq) End() error { return q.recorder.record("end") }
