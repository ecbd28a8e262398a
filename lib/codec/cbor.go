// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the core deterministic encoder. Same logical data always
// produces identical bytes.
var encMode cbor.EncMode

// streamEncMode is encMode with indefinite-length items allowed, for
// maps and arrays whose size is not known when they are opened.
var streamEncMode cbor.EncMode

// decMode accepts standard CBOR. Unknown struct fields are ignored.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	streamOptions := cbor.CoreDetEncOptions()
	streamOptions.IndefLength = cbor.IndefLengthAllowed
	streamEncMode, err = streamOptions.EncMode()
	if err != nil {
		panic("codec: CBOR stream encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Field names and wire keys are always text. Without this,
		// any-typed targets decode maps as map[interface{}]interface{},
		// which encoding/json and the CLI cannot print.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		IndefLength:    cbor.IndefLengthAllowed,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v using core deterministic encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v. data must hold exactly one item.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// UnmarshalFirst decodes the first CBOR item in data into v and returns
// the bytes that follow it.
func UnmarshalFirst(data []byte, v any) ([]byte, error) {
	return decMode.UnmarshalFirst(data, v)
}

// Encoder is a CBOR stream encoder. Type alias so consumers import
// only lib/codec, not fxamacker/cbor directly.
type Encoder = cbor.Encoder

// NewEncoder returns a deterministic encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return encMode.NewEncoder(w)
}

// NewStreamEncoder returns a deterministic encoder writing to w that
// also accepts StartIndefiniteMap, StartIndefiniteArray and
// EndIndefinite.
func NewStreamEncoder(w io.Writer) *Encoder {
	return streamEncMode.NewEncoder(w)
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for the
// entire contents of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

// DiagnoseFirst returns the CBOR diagnostic notation for the first
// data item in data, along with the remaining unconsumed bytes.
func DiagnoseFirst(data []byte) (string, []byte, error) {
	return cbor.DiagnoseFirst(data)
}
