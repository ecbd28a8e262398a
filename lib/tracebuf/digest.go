// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !tracecodec_bounded

package tracebuf

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Digest is a keyed BLAKE3 hash of an uncompressed batch payload.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// payloadDomainKey separates batch digests from any other BLAKE3 use
// of the same bytes. It is the ASCII domain name, zero-padded.
var payloadDomainKey = [32]byte{
	't', 'r', 'a', 'c', 'e', 'c', 'o', 'd', 'e', 'c', '.', 't', 'r', 'a', 'c', 'e',
	'b', 'u', 'f', '.', 'b', 'a', 't', 'c', 'h', 0, 0, 0, 0, 0, 0, 0,
}

func digestPayload(payload []byte) Digest {
	hasher, err := blake3.NewKeyed(payloadDomainKey[:])
	if err != nil {
		panic("tracebuf: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(payload)
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}
