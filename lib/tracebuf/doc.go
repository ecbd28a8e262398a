// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !tracecodec_bounded

// Package tracebuf holds tracing entries past the callback that
// produced them: an [Accumulator] gathers owned entries into batches,
// [EncodeBatch] frames a batch for storage or transport, and [Buffer]
// queues encoded frames with a byte bound.
//
// Every API here takes Static wrappers from lib/traceserde. A live
// wrapper must be converted with ToOwned first, which the type system
// enforces. The package is not available in tracecodec_bounded builds.
//
// # Frame format
//
// A frame is a CBOR header map followed by the batch payload:
//
//	{"version": 1, "compression": 0|1|2, "size": n, "stored": m, "digest": h'…'}
//	<payload>
//
// The payload is the CBOR encoding of {"sequence": n, "entries": [...]},
// compressed with the header's algorithm. size is the uncompressed
// length and stored the length that follows the header, so frames can
// be concatenated. digest is a keyed BLAKE3 hash of the uncompressed payload,
// checked by [DecodeBatch].
package tracebuf
