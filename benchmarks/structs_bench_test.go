package benchmarks

import (
	json "encoding/json"
	"testing"

	fxcbor "github.com/fxamacker/cbor/v2"
	msgp "github.com/tinylib/msgp/msgp"

	cbor "github.com/jredrado/minicbor/codec"
	"github.com/jredrado/minicbor/tests/structs"
)

// benchPerson mirrors structs.Person with tags for the comparison
// libraries, so the cborgen fixture keeps its own tag set.
type benchPerson struct {
	Name string `json:"name" msg:"name" cbor:"name"`
	Age  uint32 `json:"age" msg:"age" cbor:"age"`
	Data []byte `json:"data" msg:"data" cbor:"data"`
}

func newPerson() (structs.Person, benchPerson) {
	p := structs.Person{Name: "Alice", Age: 42, Data: []byte("hello world")}
	return p, benchPerson{Name: p.Name, Age: p.Age, Data: p.Data}
}

func BenchmarkCBOR_Person_Encode(b *testing.B) {
	p, _ := newPerson()
	buf := cbor.GetByteBuffer()
	defer cbor.PutByteBuffer(buf)
	e := cbor.NewEncoder(buf)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		if err := p.EncodeCBOR(e); err != nil {
			b.Fatalf("EncodeCBOR: %v", err)
		}
	}
}

func BenchmarkCBOR_Person_Decode(b *testing.B) {
	p, _ := newPerson()
	enc, err := cbor.Marshal(&p)
	if err != nil {
		b.Fatalf("Marshal: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var out structs.Person
		if err := out.DecodeCBOR(cbor.NewDecoder(enc)); err != nil {
			b.Fatalf("DecodeCBOR: %v", err)
		}
	}
}

func BenchmarkCBOR_Profile_Encode(b *testing.B) {
	p := sampleProfile()
	buf := cbor.GetByteBuffer()
	defer cbor.PutByteBuffer(buf)
	e := cbor.NewEncoder(buf)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		if err := p.EncodeCBOR(e); err != nil {
			b.Fatalf("EncodeCBOR: %v", err)
		}
	}
}

func BenchmarkCBOR_Profile_Decode(b *testing.B) {
	p := sampleProfile()
	enc, err := cbor.Marshal(&p)
	if err != nil {
		b.Fatalf("Marshal: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var out structs.Profile
		if err := out.DecodeCBOR(cbor.NewDecoder(enc)); err != nil {
			b.Fatalf("DecodeCBOR: %v", err)
		}
	}
}

func BenchmarkCBOR_Union_Roundtrip(b *testing.B) {
	d := structs.Drawing{Title: "bench", Main: &structs.Rect{W: 3, H: 4}}
	enc, err := cbor.Marshal(&d)
	if err != nil {
		b.Fatalf("Marshal: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var out structs.Drawing
		if err := out.DecodeCBOR(cbor.NewDecoder(enc)); err != nil {
			b.Fatalf("DecodeCBOR: %v", err)
		}
	}
}

func BenchmarkFXCBOR_Person_Encode(b *testing.B) {
	_, bp := newPerson()
	encMode, err := fxcbor.CanonicalEncOptions().EncMode()
	if err != nil {
		b.Fatalf("fxcbor EncMode: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	var out []byte
	for i := 0; i < b.N; i++ {
		out, err = encMode.Marshal(bp)
		if err != nil {
			b.Fatalf("fxcbor Marshal: %v", err)
		}
	}
	_ = out
}

func BenchmarkFXCBOR_Person_Decode(b *testing.B) {
	_, bp := newPerson()
	enc, err := fxcbor.Marshal(bp)
	if err != nil {
		b.Fatalf("fxcbor Marshal: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var out benchPerson
		if err := fxcbor.Unmarshal(enc, &out); err != nil {
			b.Fatalf("fxcbor Unmarshal: %v", err)
		}
	}
}

func BenchmarkJSONv1_Person_Encode(b *testing.B) {
	_, bp := newPerson()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := json.Marshal(bp); err != nil {
			b.Fatalf("json.Marshal: %v", err)
		}
	}
}

func BenchmarkJSONv1_Person_Decode(b *testing.B) {
	_, bp := newPerson()
	enc, err := json.Marshal(bp)
	if err != nil {
		b.Fatalf("json.Marshal: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var out benchPerson
		if err := json.Unmarshal(enc, &out); err != nil {
			b.Fatalf("json.Unmarshal: %v", err)
		}
	}
}

func BenchmarkMsgp_Person_Encode(b *testing.B) {
	_, bp := newPerson()
	m := map[string]any{"name": bp.Name, "age": int(bp.Age), "data": bp.Data}
	b.ReportAllocs()
	b.ResetTimer()
	var out []byte
	for i := 0; i < b.N; i++ {
		var err error
		out, err = msgp.AppendIntf(out[:0], m)
		if err != nil {
			b.Fatalf("msgp AppendIntf: %v", err)
		}
	}
	_ = out
}

func BenchmarkMsgp_Person_Decode(b *testing.B) {
	_, bp := newPerson()
	m := map[string]any{"name": bp.Name, "age": int(bp.Age), "data": bp.Data}
	enc, err := msgp.AppendIntf(nil, m)
	if err != nil {
		b.Fatalf("msgp AppendIntf: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := msgp.ReadIntfBytes(enc); err != nil {
			b.Fatalf("msgp ReadIntfBytes: %v", err)
		}
	}
}

func sampleProfile() structs.Profile {
	return structs.Profile{
		ID:     7,
		Tags:   []string{"alpha", "beta"},
		Attrs:  map[string]string{"env": "prod", "region": "us"},
		Home:   structs.Address{Street: "main st", City: "austin"},
		Scores: []float64{1.5, 2.75, -3.25},
	}
}
