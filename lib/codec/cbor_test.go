// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"
)

type frameHeader struct {
	Version     uint8  `cbor:"version"`
	Compression string `cbor:"compression"`
	Size        int    `cbor:"size"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := frameHeader{Version: 1, Compression: "zstd", Size: 4096}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded frameHeader
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != original {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	value := map[string]any{"b": 2, "a": 1, "c": []string{"x"}}

	first, err := Marshal(value)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	second, err := Marshal(value)
	if err != nil {
		t.Fatalf("second Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("deterministic encoding violated: %x != %x", first, second)
	}
}

func TestStreamEncoderAllowsIndefiniteMaps(t *testing.T) {
	var buffer bytes.Buffer
	encoder := NewStreamEncoder(&buffer)
	if err := encoder.StartIndefiniteMap(); err != nil {
		t.Fatalf("StartIndefiniteMap: %v", err)
	}
	if err := encoder.Encode("key"); err != nil {
		t.Fatalf("Encode key: %v", err)
	}
	if err := encoder.Encode(uint64(7)); err != nil {
		t.Fatalf("Encode value: %v", err)
	}
	if err := encoder.EndIndefinite(); err != nil {
		t.Fatalf("EndIndefinite: %v", err)
	}

	var decoded map[string]any
	if err := Unmarshal(buffer.Bytes(), &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded["key"] != uint64(7) {
		t.Errorf("decoded = %v", decoded)
	}

	strict := NewEncoder(&bytes.Buffer{})
	if err := strict.StartIndefiniteMap(); err == nil {
		t.Error("deterministic encoder should reject indefinite-length maps")
	}
}

func TestUnmarshalFirstSequence(t *testing.T) {
	first, _ := Marshal("hello")
	second, _ := Marshal(int64(-3))
	sequence := append(append([]byte{}, first...), second...)

	var text string
	rest, err := UnmarshalFirst(sequence, &text)
	if err != nil {
		t.Fatalf("UnmarshalFirst: %v", err)
	}
	if text != "hello" || !bytes.Equal(rest, second) {
		t.Fatalf("first item = %q, rest = %x", text, rest)
	}

	var number int64
	rest, err = UnmarshalFirst(rest, &number)
	if err != nil {
		t.Fatalf("UnmarshalFirst second: %v", err)
	}
	if number != -3 || len(rest) != 0 {
		t.Errorf("second item = %d, rest = %x", number, rest)
	}
}

func TestUnmarshalInvalidCBOR(t *testing.T) {
	var header frameHeader
	if err := Unmarshal([]byte{0xFF, 0xFE, 0xFD}, &header); err == nil {
		t.Error("Unmarshal should reject invalid CBOR")
	}
}

func TestDiagnose(t *testing.T) {
	data, err := Marshal(map[string]any{"level": "WARN"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	notation, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(notation, `"level"`) || !strings.Contains(notation, `"WARN"`) {
		t.Errorf("notation %q missing expected text", notation)
	}
}
