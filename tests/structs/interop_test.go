package structs

import (
	"bytes"
	"reflect"
	"testing"

	fxcbor "github.com/fxamacker/cbor/v2"

	cbor "github.com/jredrado/minicbor/codec"
)

// The integer-indexed map layout is plain CBOR, so any conforming
// implementation must be able to read our output and vice versa.

func TestPersonDecodesWithFxamacker(t *testing.T) {
	enc, err := cbor.Marshal(&Person{Name: "ann", Age: 30, Data: []byte{1, 2}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[uint64]any
	if err := fxcbor.Unmarshal(enc, &m); err != nil {
		t.Fatalf("fxamacker unmarshal: %v", err)
	}
	if m[0] != "ann" {
		t.Fatalf("index 0 = %#v, want ann", m[0])
	}
	if m[1] != uint64(30) {
		t.Fatalf("index 1 = %#v, want 30", m[1])
	}
	if data, ok := m[2].([]byte); !ok || !bytes.Equal(data, []byte{1, 2}) {
		t.Fatalf("index 2 = %#v, want [1 2]", m[2])
	}
}

func TestPersonDecodesFromFxamacker(t *testing.T) {
	enc, err := fxcbor.Marshal(map[uint64]any{
		0: "bob",
		1: uint64(7),
		2: []byte{9},
	})
	if err != nil {
		t.Fatalf("fxamacker marshal: %v", err)
	}
	var out Person
	if err := cbor.Unmarshal(enc, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := Person{Name: "bob", Age: 7, Data: []byte{9}}
	if !reflect.DeepEqual(out, want) {
		t.Fatalf("decoded %+v, want %+v", out, want)
	}
}

func TestShapeDecodesWithFxamacker(t *testing.T) {
	buf := cbor.GetByteBuffer()
	defer cbor.PutByteBuffer(buf)
	if err := EncodeShape(cbor.NewEncoder(buf), &Rect{W: 3, H: 4}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	var env []any
	if err := fxcbor.Unmarshal(buf.Bytes(), &env); err != nil {
		t.Fatalf("fxamacker unmarshal: %v", err)
	}
	if len(env) != 2 {
		t.Fatalf("envelope has %d elements, want 2", len(env))
	}
	if env[0] != uint64(1) {
		t.Fatalf("variant index = %#v, want 1", env[0])
	}
	payload, ok := env[1].(map[any]any)
	if !ok {
		t.Fatalf("payload = %#v, want map", env[1])
	}
	if payload[uint64(0)] != float64(3) || payload[uint64(1)] != float64(4) {
		t.Fatalf("payload fields: %#v", payload)
	}
}
