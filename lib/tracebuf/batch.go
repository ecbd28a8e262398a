// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !tracecodec_bounded

package tracebuf

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/tracecodec/lib/codec"
	"github.com/bureau-foundation/tracecodec/lib/serial"
	"github.com/bureau-foundation/tracecodec/lib/serial/cbor"
)

// FrameVersion is the frame header version this package writes and
// accepts.
const FrameVersion = 1

// ErrDigestMismatch is returned by DecodeBatch when the payload does
// not match the digest in the frame header.
var ErrDigestMismatch = errors.New("tracebuf: payload digest mismatch")

// Batch is a run of entries flushed together. Sequence numbers
// increase by one per flush from a single Accumulator.
type Batch struct {
	Sequence uint64
	Entries  []Entry
}

func (b *Batch) Serialize(serializer serial.Serializer) error {
	out, err := serializer.SerializeMap(2)
	if err != nil {
		return err
	}
	if err := out.SerializeEntry("sequence", serial.Uint64(b.Sequence)); err != nil {
		return err
	}
	entries := serial.SerializableFunc(func(serializer serial.Serializer) error {
		seq, err := serializer.SerializeSeq(len(b.Entries))
		if err != nil {
			return err
		}
		for i, entry := range b.Entries {
			if err := seq.SerializeElement(entry); err != nil {
				return fmt.Errorf("entry %d: %w", i, err)
			}
		}
		return seq.End()
	})
	if err := out.SerializeEntry("entries", entries); err != nil {
		return err
	}
	return out.End()
}

// DecodeBatchPayload reads an uncompressed batch payload.
func DecodeBatchPayload(deserializer serial.Deserializer) (Batch, error) {
	var (
		batch        Batch
		seenSequence bool
	)
	err := deserializer.DeserializeMap(func(key string, value serial.Deserializer) error {
		switch key {
		case "sequence":
			sequence, err := value.DeserializeUint64()
			if err != nil {
				return fmt.Errorf("sequence: %w", err)
			}
			batch.Sequence, seenSequence = sequence, true
			return nil
		case "entries":
			return value.DeserializeSeq(func(element serial.Deserializer) error {
				entry, err := DecodeEntry(element)
				if err != nil {
					return fmt.Errorf("entry %d: %w", len(batch.Entries), err)
				}
				batch.Entries = append(batch.Entries, entry)
				return nil
			})
		default:
			return value.Skip()
		}
	})
	if err != nil {
		return Batch{}, err
	}
	if !seenSequence {
		return Batch{}, errors.New("batch: missing sequence")
	}
	return batch, nil
}

type frameHeader struct {
	Version     uint8       `cbor:"version"`
	Compression Compression `cbor:"compression"`
	Size        int         `cbor:"size"`
	Stored      int         `cbor:"stored"`
	Digest      Digest      `cbor:"digest"`
}

// EncodeBatch returns the frame for batch. If compression does not
// shrink the payload the frame is written uncompressed.
func EncodeBatch(batch *Batch, compression Compression) ([]byte, error) {
	payload, err := cbor.Marshal(batch)
	if err != nil {
		return nil, fmt.Errorf("encoding batch %d: %w", batch.Sequence, err)
	}
	compressed, used, err := compress(payload, compression)
	if err != nil {
		return nil, fmt.Errorf("compressing batch %d: %w", batch.Sequence, err)
	}
	header, err := codec.Marshal(frameHeader{
		Version:     FrameVersion,
		Compression: used,
		Size:        len(payload),
		Stored:      len(compressed),
		Digest:      digestPayload(payload),
	})
	if err != nil {
		return nil, fmt.Errorf("encoding frame header: %w", err)
	}
	return append(header, compressed...), nil
}

// FrameInfo describes a frame without its entries.
type FrameInfo struct {
	Compression    Compression
	Size           int
	CompressedSize int
	Digest         Digest
}

// DecodeBatch verifies and decodes one frame. It returns the bytes
// following the frame so callers can walk a concatenated stream.
func DecodeBatch(frame []byte) (Batch, FrameInfo, []byte, error) {
	var header frameHeader
	rest, err := codec.UnmarshalFirst(frame, &header)
	if err != nil {
		return Batch{}, FrameInfo{}, nil, fmt.Errorf("decoding frame header: %w", err)
	}
	if header.Version != FrameVersion {
		return Batch{}, FrameInfo{}, nil, fmt.Errorf("unsupported frame version %d", header.Version)
	}

	if header.Size < 0 || header.Stored < 0 {
		return Batch{}, FrameInfo{}, nil, fmt.Errorf("invalid payload sizes %d/%d", header.Size, header.Stored)
	}
	if len(rest) < header.Stored {
		return Batch{}, FrameInfo{}, nil, fmt.Errorf("payload truncated: %d of %d bytes", len(rest), header.Stored)
	}
	compressed, rest := rest[:header.Stored], rest[header.Stored:]

	payload, err := decompress(compressed, header.Compression, header.Size)
	if err != nil {
		return Batch{}, FrameInfo{}, nil, err
	}
	if digestPayload(payload) != header.Digest {
		return Batch{}, FrameInfo{}, nil, ErrDigestMismatch
	}
	var batch Batch
	if err := cbor.Unmarshal(payload, serial.Into(DecodeBatchPayload, &batch)); err != nil {
		return Batch{}, FrameInfo{}, nil, fmt.Errorf("decoding batch payload: %w", err)
	}
	info := FrameInfo{
		Compression:    header.Compression,
		Size:           header.Size,
		CompressedSize: len(compressed),
		Digest:         header.Digest,
	}
	return batch, info, rest, nil
}
