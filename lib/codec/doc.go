// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides tracecodec's CBOR encoding configuration.
//
// Two encoder modes share one set of deterministic rules (RFC 8949
// §4.2 core deterministic encoding: smallest integer and float forms,
// sorted struct/map keys):
//
//   - [Marshal] and [NewEncoder] forbid indefinite-length items. Use
//     them for fixed-shape Go values such as batch frame headers.
//   - [NewStreamEncoder] additionally allows indefinite-length maps and
//     arrays, which lib/serial/cbor needs when a map is opened before
//     its entry count is known.
//
// Decoding accepts standard CBOR, including indefinite-length items.
// When the target is interface{}/any, maps decode as map[string]any.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For CBOR sequences (RFC 8742), decode one item at a time:
//
//	rest, err := codec.UnmarshalFirst(data, &value)
package codec
