// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package serial_test

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bureau-foundation/tracecodec/lib/serial"
	"github.com/bureau-foundation/tracecodec/lib/serial/cbor"
	"github.com/bureau-foundation/tracecodec/lib/serial/json"
	"github.com/bureau-foundation/tracecodec/lib/serial/yaml"
)

type backend struct {
	name      string
	marshal   func(serial.Serializable) ([]byte, error)
	unmarshal func([]byte, serial.Deserializable) error
}

var backends = []backend{
	{"cbor", cbor.Marshal, cbor.Unmarshal},
	{"json", json.Marshal, json.Unmarshal},
	{"yaml", yaml.Marshal, yaml.Unmarshal},
}

// sample is a map whose keys are deliberately not sorted, so a backend
// that reorders entries fails the ordering assertions.
func sample(size int) serial.Serializable {
	return serial.SerializableFunc(func(s serial.Serializer) error {
		m, err := s.SerializeMap(size)
		if err != nil {
			return err
		}
		entries := []struct {
			key   string
			value serial.Serializable
		}{
			{"zeta", serial.Bool(true)},
			{"neg", serial.Int64(-3)},
			{"max", serial.Uint64(math.MaxUint64)},
			{"ratio", serial.Float64(1.5)},
			{"alpha", serial.String("404")},
			{"none", serial.Null{}},
			{"list", serial.SerializableFunc(func(s serial.Serializer) error {
				q, err := s.SerializeSeq(2)
				if err != nil {
					return err
				}
				if err := q.SerializeElement(serial.Uint64(1)); err != nil {
					return err
				}
				if err := q.SerializeElement(serial.Uint64(2)); err != nil {
					return err
				}
				return q.End()
			})},
		}
		for _, entry := range entries {
			if err := m.SerializeEntry(entry.key, entry.value); err != nil {
				return err
			}
		}
		return m.End()
	})
}

// transcript reads the sample shape back into "key=value" strings in
// the order the decoder delivered them.
type transcript struct {
	lines []string
}

func (t *transcript) Deserialize(d serial.Deserializer) error {
	return d.DeserializeMap(func(key string, value serial.Deserializer) error {
		var line string
		switch key {
		case "zeta":
			v, err := value.DeserializeBool()
			if err != nil {
				return err
			}
			line = fmt.Sprint(v)
		case "neg":
			v, err := value.DeserializeInt64()
			if err != nil {
				return err
			}
			line = fmt.Sprint(v)
		case "max":
			v, err := value.DeserializeUint64()
			if err != nil {
				return err
			}
			line = fmt.Sprint(v)
		case "ratio":
			v, err := value.DeserializeFloat64()
			if err != nil {
				return err
			}
			line = fmt.Sprint(v)
		case "alpha":
			v, err := value.DeserializeString()
			if err != nil {
				return err
			}
			line = v
		case "none":
			null, err := value.DeserializeNull()
			if err != nil {
				return err
			}
			line = fmt.Sprint(null)
		case "list":
			var elements []string
			err := value.DeserializeSeq(func(element serial.Deserializer) error {
				v, err := element.DeserializeUint64()
				elements = append(elements, fmt.Sprint(v))
				return err
			})
			if err != nil {
				return err
			}
			line = strings.Join(elements, ",")
		default:
			return value.Skip()
		}
		t.lines = append(t.lines, key+"="+line)
		return nil
	})
}

var wantTranscript = []string{
	"zeta=true",
	"neg=-3",
	"max=18446744073709551615",
	"ratio=1.5",
	"alpha=404",
	"none=true",
	"list=1,2",
}

func TestRoundTripPreservesOrderAndKinds(t *testing.T) {
	for _, b := range backends {
		for _, size := range []int{7, serial.UnknownSize} {
			t.Run(fmt.Sprintf("%s/size=%d", b.name, size), func(t *testing.T) {
				data, err := b.marshal(sample(size))
				if err != nil {
					t.Fatalf("marshal: %v", err)
				}
				var got transcript
				if err := b.unmarshal(data, &got); err != nil {
					t.Fatalf("unmarshal: %v\n%s", err, data)
				}
				if diff := cmp.Diff(wantTranscript, got.lines); diff != "" {
					t.Fatalf("transcript mismatch (-want +got):\n%s", diff)
				}
			})
		}
	}
}

func TestSizeMismatch(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name+"/short", func(t *testing.T) {
			_, err := b.marshal(sample(8))
			if !errors.Is(err, serial.ErrSizeMismatch) {
				t.Fatalf("declared 8, wrote 7: got %v, want ErrSizeMismatch", err)
			}
		})
		t.Run(b.name+"/long", func(t *testing.T) {
			_, err := b.marshal(sample(6))
			if !errors.Is(err, serial.ErrSizeMismatch) {
				t.Fatalf("declared 6, wrote 7: got %v, want ErrSizeMismatch", err)
			}
		})
	}
}

func TestUnexpectedKind(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			data, err := b.marshal(serial.String("not a map"))
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var got transcript
			err = b.unmarshal(data, &got)
			if !errors.Is(err, serial.ErrUnexpectedKind) {
				t.Fatalf("got %v, want ErrUnexpectedKind", err)
			}
		})
	}
}

func TestJSONExactOutput(t *testing.T) {
	data, err := json.Marshal(sample(7))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"zeta":true,"neg":-3,"max":18446744073709551615,"ratio":1.5,"alpha":"404","none":null,"list":[1,2]}`
	if string(data) != want {
		t.Fatalf("got  %s\nwant %s", data, want)
	}
}

func TestJSONRejectsNonFiniteFloats(t *testing.T) {
	for _, value := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := json.Marshal(serial.Float64(value)); err == nil {
			t.Fatalf("json.Marshal(%v) succeeded, want error", value)
		}
	}
}

func TestJSONAcceptsComments(t *testing.T) {
	input := []byte(`{
		// fixture annotations are allowed
		"zeta": true,
		"neg": -3,
		"max": 18446744073709551615,
		"ratio": 1.5, /* block comment */
		"alpha": "404",
		"none": null,
		"list": [1, 2,],
	}`)
	var got transcript
	if err := json.Unmarshal(input, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(wantTranscript, got.lines); diff != "" {
		t.Fatalf("transcript mismatch (-want +got):\n%s", diff)
	}
}

func TestCBORContainerHeaders(t *testing.T) {
	definite, err := cbor.Marshal(sample(7))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if definite[0] != 0xa7 {
		t.Fatalf("known-size map header = %#x, want 0xa7", definite[0])
	}

	indefinite, err := cbor.Marshal(sample(serial.UnknownSize))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if indefinite[0] != 0xbf || indefinite[len(indefinite)-1] != 0xff {
		t.Fatalf("unknown-size map = % x, want 0xbf ... 0xff", indefinite)
	}
	if !bytes.Equal(definite[1:], indefinite[1:len(indefinite)-1]) {
		t.Fatal("entry bytes differ between definite and indefinite maps")
	}
}

func TestCBORRejectsTrailingData(t *testing.T) {
	data, err := cbor.Marshal(sample(7))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got transcript
	if err := cbor.Unmarshal(append(data, 0x01), &got); err == nil {
		t.Fatal("Unmarshal accepted trailing data")
	}
}

func TestYAMLQuotesAmbiguousStrings(t *testing.T) {
	data, err := yaml.Marshal(sample(7))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `alpha: "404"`) {
		t.Fatalf("string that looks like an int was not quoted:\n%s", data)
	}
}

func TestInto(t *testing.T) {
	data, err := json.Marshal(serial.String("hello"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got string
	decode := func(d serial.Deserializer) (string, error) { return d.DeserializeString() }
	if err := json.Unmarshal(data, serial.Into(decode, &got)); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}
