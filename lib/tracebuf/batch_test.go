// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !tracecodec_bounded

package tracebuf

import (
	"bytes"
	"errors"
	"testing"

	"github.com/bureau-foundation/tracecodec/lib/serial/cbor"
	"github.com/bureau-foundation/tracecodec/lib/serial/json"
)

func sampleBatch(events int) *Batch {
	batch := &Batch{Sequence: 3}
	batch.Entries = append(batch.Entries, NewSpanEntry(spanID, ownedSpan()))
	for i := range events {
		batch.Entries = append(batch.Entries, EventEntry(ownedEvent(404, i)))
	}
	batch.Entries = append(batch.Entries, RecordEntry(spanID, ownedRecord()))
	return batch
}

func TestEncodeDecodeBatch(t *testing.T) {
	for _, compression := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd} {
		t.Run(compression.String(), func(t *testing.T) {
			batch := sampleBatch(50)
			frame, err := EncodeBatch(batch, compression)
			if err != nil {
				t.Fatalf("EncodeBatch: %v", err)
			}
			decoded, info, rest, err := DecodeBatch(frame)
			if err != nil {
				t.Fatalf("DecodeBatch: %v", err)
			}
			if len(rest) != 0 {
				t.Fatalf("%d bytes left after frame", len(rest))
			}
			if info.Compression != compression {
				t.Fatalf("frame compression = %s, want %s", info.Compression, compression)
			}
			if compression != CompressionNone && info.CompressedSize >= info.Size {
				t.Fatalf("compressed size %d not below payload size %d", info.CompressedSize, info.Size)
			}
			if decoded.Sequence != batch.Sequence || len(decoded.Entries) != len(batch.Entries) {
				t.Fatalf("decoded sequence %d with %d entries, want %d with %d",
					decoded.Sequence, len(decoded.Entries), batch.Sequence, len(batch.Entries))
			}

			want, err := cbor.Marshal(batch)
			if err != nil {
				t.Fatal(err)
			}
			got, err := cbor.Marshal(&decoded)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(want, got) {
				t.Fatal("decoded batch re-encodes differently")
			}
		})
	}
}

func TestIncompressibleFallsBackToNone(t *testing.T) {
	// An empty batch is a few bytes with nothing to match.
	batch := &Batch{Sequence: 0}
	frame, err := EncodeBatch(batch, CompressionLZ4)
	if err != nil {
		t.Fatalf("EncodeBatch: %v", err)
	}
	_, info, _, err := DecodeBatch(frame)
	if err != nil {
		t.Fatalf("DecodeBatch: %v", err)
	}
	if info.Compression != CompressionNone {
		t.Fatalf("empty batch compressed with %s, want fallback to none", info.Compression)
	}
}

func TestDecodeBatchDetectsCorruption(t *testing.T) {
	frame, err := EncodeBatch(sampleBatch(3), CompressionNone)
	if err != nil {
		t.Fatalf("EncodeBatch: %v", err)
	}
	// Flip a byte inside a string in the payload so it still parses.
	index := bytes.LastIndex(frame, []byte("failed"))
	if index < 0 {
		t.Fatal("payload does not contain the event message")
	}
	frame[index] = 'F'
	if _, _, _, err := DecodeBatch(frame); !errors.Is(err, ErrDigestMismatch) {
		t.Fatalf("got %v, want ErrDigestMismatch", err)
	}
}

func TestDecodeBatchTruncated(t *testing.T) {
	frame, err := EncodeBatch(sampleBatch(3), CompressionZstd)
	if err != nil {
		t.Fatalf("EncodeBatch: %v", err)
	}
	if _, _, _, err := DecodeBatch(frame[:len(frame)-1]); err == nil {
		t.Fatal("truncated frame decoded without error")
	}
}

func TestConcatenatedFrames(t *testing.T) {
	var stream []byte
	for sequence := range uint64(3) {
		batch := sampleBatch(int(sequence) + 1)
		batch.Sequence = sequence
		frame, err := EncodeBatch(batch, CompressionZstd)
		if err != nil {
			t.Fatalf("EncodeBatch: %v", err)
		}
		stream = append(stream, frame...)
	}
	for want := range uint64(3) {
		batch, _, rest, err := DecodeBatch(stream)
		if err != nil {
			t.Fatalf("frame %d: %v", want, err)
		}
		if batch.Sequence != want {
			t.Fatalf("frame %d has sequence %d", want, batch.Sequence)
		}
		stream = rest
	}
	if len(stream) != 0 {
		t.Fatalf("%d trailing bytes", len(stream))
	}
}

func TestEntryShape(t *testing.T) {
	data, err := json.Marshal(RecordEntry(spanID, ownedRecord()))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"record":{"span":{"id":17},"values":{"attempt":{"I64":2}}}}`
	if string(data) != want {
		t.Fatalf("got  %s\nwant %s", data, want)
	}
}

func TestDecodeEntryRejectsUnknownKind(t *testing.T) {
	for _, input := range []string{`{"metric":{}}`, `{}`, `{"event":{},"record":{}}`} {
		var entry Entry
		err := json.Unmarshal([]byte(input), deserializeEntry(&entry))
		if err == nil {
			t.Errorf("decoding %s succeeded", input)
		}
	}
}
