package cbor

import (
	"bytes"
	"errors"
	"math"
	bigmath "math/big"
	"testing"
	"time"
)

func TestDecoderUintWidths(t *testing.T) {
	cases := []struct {
		in   string
		want uint64
	}{
		{"00", 0},
		{"17", 23},
		{"1818", 24},
		{"18ff", 255},
		{"190100", 256},
		{"1a000f4240", 1000000},
		{"1bffffffffffffffff", math.MaxUint64},
	}
	for _, c := range cases {
		d := NewDecoder(mustHex(t, c.in))
		got, err := d.Uint()
		if err != nil {
			t.Fatalf("Uint(%s): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("Uint(%s) = %d, want %d", c.in, got, c.want)
		}
		if d.Remaining() != 0 {
			t.Fatalf("Uint(%s) left %d bytes", c.in, d.Remaining())
		}
	}
}

func TestDecoderIntRange(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"00", 0},
		{"17", 23},
		{"20", -1},
		{"29", -10},
		{"37", -24},
		{"3818", -25},
		{"3903e7", -1000},
		{"3b7fffffffffffffff", math.MinInt64},
		{"1b7fffffffffffffff", math.MaxInt64},
	}
	for _, c := range cases {
		d := NewDecoder(mustHex(t, c.in))
		got, err := d.Int()
		if err != nil {
			t.Fatalf("Int(%s): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("Int(%s) = %d, want %d", c.in, got, c.want)
		}
	}

	// -2^64 does not fit int64: Int fails, Negative exposes the wire
	// argument.
	d := NewDecoder(mustHex(t, "3bffffffffffffffff"))
	if _, err := d.Int(); err == nil {
		t.Fatal("expected overflow for -2^64 via Int")
	}
	if d.Position() != 0 {
		t.Fatal("failed Int advanced the cursor")
	}
	n, err := d.Negative()
	if err != nil || n != math.MaxUint64 {
		t.Fatalf("Negative: %d, %v", n, err)
	}

	// 2^64-1 does not fit int64 either; the error reports the unsigned
	// value as encoded, not a wrapped negative.
	d = NewDecoder(mustHex(t, "1bffffffffffffffff"))
	var uo UintOverflow
	if _, err := d.Int(); !errors.As(err, &uo) {
		t.Fatalf("expected UintOverflow, got %v", err)
	}
	if uo.Value != math.MaxUint64 || uo.FailedBitsize != 64 {
		t.Fatalf("UintOverflow{%d, %d}", uo.Value, uo.FailedBitsize)
	}
	if d.Position() != 0 {
		t.Fatal("failed Int advanced the cursor")
	}
}

func TestDecoderTypedOverflowKeepsCursor(t *testing.T) {
	d := NewDecoder(mustHex(t, "190100")) // 256
	if _, err := d.Uint8(); err == nil {
		t.Fatal("expected UintOverflow")
	}
	if d.Position() != 0 {
		t.Fatalf("failed Uint8 moved cursor to %d", d.Position())
	}
	v, err := d.Uint16()
	if err != nil || v != 256 {
		t.Fatalf("Uint16 after failed Uint8: %d, %v", v, err)
	}
}

func TestDecoderTypedOverflowKeepsCursorWideHeader(t *testing.T) {
	// Lenient mode accepts non-minimal widths, so the rewind must use
	// the bytes actually consumed, not the value's minimal encoding.
	d := NewDecoder(mustHex(t, "1a00000100")) // 256 in 4-byte width
	if _, err := d.Uint8(); err == nil {
		t.Fatal("expected UintOverflow")
	}
	if d.Position() != 0 {
		t.Fatalf("failed Uint8 moved cursor to %d", d.Position())
	}
	v, err := d.Uint32()
	if err != nil || v != 256 {
		t.Fatalf("Uint32 after failed Uint8: %d, %v", v, err)
	}

	d = NewDecoder(mustHex(t, "3b000000000000012b")) // -300 in 8-byte width
	if _, err := d.Int8(); err == nil {
		t.Fatal("expected IntOverflow")
	}
	if d.Position() != 0 {
		t.Fatalf("failed Int8 moved cursor to %d", d.Position())
	}
	i, err := d.Int16()
	if err != nil || i != -300 {
		t.Fatalf("Int16 after failed Int8: %d, %v", i, err)
	}
}

func TestDecoderUnderflowKeepsCursor(t *testing.T) {
	d := NewDecoder(mustHex(t, "1a0001")) // uint32 header, payload cut short
	if _, err := d.Uint(); !errors.Is(err, ErrShortBytes) {
		t.Fatalf("expected ErrShortBytes, got %v", err)
	}
	if d.Position() != 0 {
		t.Fatal("underflow advanced the cursor")
	}
}

func TestDecoderStringsAndBytes(t *testing.T) {
	d := NewDecoder(mustHex(t, "6449455446"))
	s, err := d.Text()
	if err != nil || s != "IETF" {
		t.Fatalf("Text: %q, %v", s, err)
	}

	d = NewDecoder(mustHex(t, "4401020304"))
	b, err := d.Bytes()
	if err != nil || !bytes.Equal(b, []byte{1, 2, 3, 4}) {
		t.Fatalf("Bytes: %x, %v", b, err)
	}

	// Indefinite chunked forms are assembled transparently.
	d = NewDecoder(mustHex(t, "5f42010243030405ff"))
	b, err = d.Bytes()
	if err != nil || !bytes.Equal(b, []byte{1, 2, 3, 4, 5}) {
		t.Fatalf("chunked Bytes: %x, %v", b, err)
	}

	d = NewDecoder(mustHex(t, "7f657374726561646d696e67ff"))
	s, err = d.Text()
	if err != nil || s != "streaming" {
		t.Fatalf("chunked Text: %q, %v", s, err)
	}
}

func TestDecoderInvalidUTF8(t *testing.T) {
	d := NewDecoder(mustHex(t, "62c328"))
	if _, err := d.Text(); !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
	if d.Position() != 0 {
		t.Fatal("failed Text advanced the cursor")
	}
	// TextZC skips validation for callers that handle raw bytes.
	raw, err := d.TextZC()
	if err != nil || len(raw) != 2 {
		t.Fatalf("TextZC: %x, %v", raw, err)
	}
}

func TestDecoderZeroCopyViews(t *testing.T) {
	buf := mustHex(t, "4401020304")
	d := NewDecoder(buf)
	view, err := d.BytesZC()
	if err != nil {
		t.Fatal(err)
	}
	if &view[0] != &buf[1] {
		t.Fatal("BytesZC copied instead of borrowing")
	}
}

func TestDecoderContainersDefiniteAndIndefinite(t *testing.T) {
	// [1, 2] in both length forms decodes identically.
	for _, in := range []string{"820102", "9f0102ff"} {
		d := NewDecoder(mustHex(t, in))
		sz, indef, err := d.ArrayHeader()
		if err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		var got []uint64
		if indef {
			for !d.IsBreak() {
				v, err := d.Uint()
				if err != nil {
					t.Fatal(err)
				}
				got = append(got, v)
			}
			if err := d.ReadBreak(); err != nil {
				t.Fatal(err)
			}
		} else {
			for i := uint32(0); i < sz; i++ {
				v, err := d.Uint()
				if err != nil {
					t.Fatal(err)
				}
				got = append(got, v)
			}
		}
		if len(got) != 2 || got[0] != 1 || got[1] != 2 {
			t.Fatalf("%s decoded to %v", in, got)
		}
		if d.Remaining() != 0 {
			t.Fatalf("%s left %d bytes", in, d.Remaining())
		}
	}
}

func TestDecoderSkipShapes(t *testing.T) {
	// Skip must consume exactly one complete item for every shape.
	items := []string{
		"00",
		"1a000f4240",
		"3903e7",
		"6449455446",
		"4401020304",
		"820102",
		"9f0102ff",
		"a201020304",
		"bf616101616202ff",
		"c11a514b67b0",
		"f4", "f6", "f7",
		"f93c00", "fa47c35000", "fb3ff199999999999a",
		"8301820203820405",
		"d9d9f700",
	}
	for _, in := range items {
		raw := mustHex(t, in)
		d := NewDecoder(raw)
		if err := d.Skip(); err != nil {
			t.Fatalf("Skip(%s): %v", in, err)
		}
		if d.Remaining() != 0 {
			t.Fatalf("Skip(%s) left %d bytes", in, d.Remaining())
		}
	}
}

func TestDecoderSkipDepthLimit(t *testing.T) {
	var deep []byte
	const n = 64
	for i := 0; i < n; i++ {
		deep = AppendArrayHeader(deep, 1)
	}
	deep = AppendUint64(deep, 0)

	d := NewDecoder(deep)
	d.SetMaxDepth(16)
	if err := d.Skip(); !errors.Is(err, ErrMaxDepthExceeded) {
		t.Fatalf("expected ErrMaxDepthExceeded, got %v", err)
	}
	if d.Position() != 0 {
		t.Fatal("failed Skip advanced the cursor")
	}

	d = NewDecoder(deep)
	d.SetMaxDepth(n + 1)
	if err := d.Skip(); err != nil {
		t.Fatalf("Skip within budget: %v", err)
	}
}

func TestDecoderProbing(t *testing.T) {
	// Save the cursor, attempt a read of the wrong type, restore, and
	// read the right one.
	raw := mustHex(t, "6449455446")
	d := NewDecoder(raw)
	mark := d.Position()
	if _, err := d.Uint(); err == nil {
		t.Fatal("expected type mismatch")
	}
	d.SetPosition(mark)
	s, err := d.Text()
	if err != nil || s != "IETF" {
		t.Fatalf("after restore: %q, %v", s, err)
	}
}

func TestDecoderPeekType(t *testing.T) {
	cases := []struct {
		in   string
		want Type
	}{
		{"00", UintType},
		{"20", IntType},
		{"40", BytesType},
		{"60", TextType},
		{"80", ArrayType},
		{"a0", MapType},
		{"c1", TagType},
		{"f4", BoolType},
		{"f5", BoolType},
		{"f6", NullType},
		{"f7", UndefinedType},
		{"f0", SimpleType},
		{"f93c00", Float16Type},
		{"fa47c35000", Float32Type},
		{"fb3ff199999999999a", Float64Type},
		{"ff", BreakType},
	}
	for _, c := range cases {
		d := NewDecoder(mustHex(t, c.in))
		got, err := d.PeekType()
		if err != nil {
			t.Fatalf("PeekType(%s): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("PeekType(%s) = %v, want %v", c.in, got, c.want)
		}
		if d.Position() != 0 {
			t.Fatalf("PeekType(%s) consumed input", c.in)
		}
	}
}

func TestDecoderStrictIntegers(t *testing.T) {
	// 0x1818 is canonical 24; 0x1817 encodes 23 non-minimally.
	d := NewDecoder(mustHex(t, "1818"))
	d.SetStrictDecode(true)
	if v, err := d.Uint(); err != nil || v != 24 {
		t.Fatalf("canonical 24: %d, %v", v, err)
	}

	d = NewDecoder(mustHex(t, "1817"))
	d.SetStrictDecode(true)
	if _, err := d.Uint(); !errors.Is(err, ErrNonCanonicalInteger) {
		t.Fatalf("expected ErrNonCanonicalInteger, got %v", err)
	}

	// Lenient mode accepts the same bytes.
	d = NewDecoder(mustHex(t, "1817"))
	if v, err := d.Uint(); err != nil || v != 23 {
		t.Fatalf("lenient 0x1817: %d, %v", v, err)
	}

	// Wide lengths are a separate error.
	d = NewDecoder(mustHex(t, "590001ff"))
	d.SetStrictDecode(true)
	if _, err := d.Bytes(); !errors.Is(err, ErrNonCanonicalLength) {
		t.Fatalf("expected ErrNonCanonicalLength, got %v", err)
	}
}

func TestDecoderStrictFloats(t *testing.T) {
	// 1.0 as f64 is not shortest form.
	d := NewDecoder(mustHex(t, "fb3ff0000000000000"))
	d.SetStrictDecode(true)
	if _, err := d.Float(); !errors.Is(err, ErrNonCanonicalFloat) {
		t.Fatalf("expected ErrNonCanonicalFloat, got %v", err)
	}

	d = NewDecoder(mustHex(t, "f93c00"))
	d.SetStrictDecode(true)
	if f, err := d.Float(); err != nil || f != 1.0 {
		t.Fatalf("canonical f16 1.0: %v, %v", f, err)
	}

	// 1.1 genuinely needs f64.
	d = NewDecoder(mustHex(t, "fb3ff199999999999a"))
	d.SetStrictDecode(true)
	if f, err := d.Float(); err != nil || f != 1.1 {
		t.Fatalf("canonical f64 1.1: %v, %v", f, err)
	}
}

func TestDecoderDeterministicForbidsIndefinite(t *testing.T) {
	for _, in := range []string{"9fff", "bfff", "5fff", "7fff"} {
		d := NewDecoder(mustHex(t, in))
		d.SetDeterministicDecode(true)
		var err error
		switch in {
		case "9fff":
			_, _, err = d.ArrayHeader()
		case "bfff":
			_, _, err = d.MapHeader()
		case "5fff":
			_, err = d.Bytes()
		case "7fff":
			_, err = d.Text()
		}
		if !errors.Is(err, ErrIndefiniteForbidden) {
			t.Fatalf("%s: expected ErrIndefiniteForbidden, got %v", in, err)
		}
	}
}

func TestDecoderMaxContainerLen(t *testing.T) {
	d := NewDecoder(mustHex(t, "9819")) // array(25)
	d.SetMaxContainerLen(4)
	if _, _, err := d.ArrayHeader(); !errors.Is(err, ErrContainerTooLarge) {
		t.Fatalf("expected ErrContainerTooLarge, got %v", err)
	}
}

func TestSkipHonorsDecodeLimits(t *testing.T) {
	// Skip walks nested items itself, so the per-instance limits apply
	// inside it too, not only on the header reads the caller makes.
	d := NewDecoder(mustHex(t, "819f01ff")) // [[_ 1]]
	d.SetDeterministicDecode(true)
	if err := d.Skip(); !errors.Is(err, ErrIndefiniteForbidden) {
		t.Fatalf("expected ErrIndefiniteForbidden, got %v", err)
	}
	if d.Position() != 0 {
		t.Fatal("failed Skip advanced the cursor")
	}

	d = NewDecoder(mustHex(t, "815f4101ff")) // [(_ h'01')]
	d.SetDeterministicDecode(true)
	if err := d.Skip(); !errors.Is(err, ErrIndefiniteForbidden) {
		t.Fatalf("chunked string: expected ErrIndefiniteForbidden, got %v", err)
	}

	d = NewDecoder(mustHex(t, "8183010203")) // [[1, 2, 3]]
	d.SetMaxContainerLen(2)
	if err := d.Skip(); !errors.Is(err, ErrContainerTooLarge) {
		t.Fatalf("expected ErrContainerTooLarge, got %v", err)
	}
	if d.Position() != 0 {
		t.Fatal("failed Skip advanced the cursor")
	}
}

func TestDecoderReservedInfo(t *testing.T) {
	for _, in := range []string{"1c", "1d", "1e"} {
		d := NewDecoder(mustHex(t, in))
		_, err := d.Uint()
		var re ReservedInfoError
		if !errors.As(err, &re) {
			t.Fatalf("%s: expected ReservedInfoError, got %v", in, err)
		}
	}
}

func TestDecoderSimpleValues(t *testing.T) {
	d := NewDecoder(mustHex(t, "f0"))
	if v, err := d.Simple(); err != nil || v != 16 {
		t.Fatalf("Simple: %d, %v", v, err)
	}
	d = NewDecoder(mustHex(t, "f8ff"))
	if v, err := d.Simple(); err != nil || v != 255 {
		t.Fatalf("Simple wide: %d, %v", v, err)
	}

	// Two-byte simple values below 32 are not well-formed.
	d = NewDecoder(mustHex(t, "f818"))
	var re ReservedInfoError
	if _, err := d.Simple(); !errors.As(err, &re) {
		t.Fatalf("expected ReservedInfoError for f818, got %v", err)
	}
	if d.Position() != 0 {
		t.Fatal("failed Simple advanced the cursor")
	}
}

func TestDecoderNullAndBool(t *testing.T) {
	d := NewDecoder(mustHex(t, "f6f5f4f7"))
	if !d.IsNull() {
		t.Fatal("IsNull on null")
	}
	if err := d.Null(); err != nil {
		t.Fatal(err)
	}
	if v, err := d.Bool(); err != nil || !v {
		t.Fatalf("Bool true: %v, %v", v, err)
	}
	if v, err := d.Bool(); err != nil || v {
		t.Fatalf("Bool false: %v, %v", v, err)
	}
	if err := d.Undefined(); err != nil {
		t.Fatal(err)
	}
	if err := d.Null(); !errors.Is(err, ErrShortBytes) {
		t.Fatalf("exhausted input: %v", err)
	}
}

func TestDecoderFloats(t *testing.T) {
	d := NewDecoder(mustHex(t, "f93c00"))
	if f, err := d.F16(); err != nil || f != 1.0 {
		t.Fatalf("F16: %v, %v", f, err)
	}
	d = NewDecoder(mustHex(t, "fa47c35000"))
	if f, err := d.F32(); err != nil || f != 100000.0 {
		t.Fatalf("F32: %v, %v", f, err)
	}
	d = NewDecoder(mustHex(t, "fb3ff199999999999a"))
	if f, err := d.F64(); err != nil || f != 1.1 {
		t.Fatalf("F64: %v, %v", f, err)
	}
	d = NewDecoder(mustHex(t, "f97c00"))
	if f, err := d.Float(); err != nil || !math.IsInf(f, 1) {
		t.Fatalf("Float inf: %v, %v", f, err)
	}
}

func TestDecoderTimeRoundTrip(t *testing.T) {
	raw := AppendTime(nil, time.Unix(1363896240, 0).UTC())
	d := NewDecoder(raw)
	got, err := d.Time()
	if err != nil {
		t.Fatal(err)
	}
	if got.Unix() != 1363896240 {
		t.Fatalf("Time: %v", got)
	}

	raw = AppendRFC3339Time(nil, time.Unix(1363896240, 0).UTC())
	d = NewDecoder(raw)
	got, err = d.Time()
	if err != nil {
		t.Fatal(err)
	}
	if got.Unix() != 1363896240 {
		t.Fatalf("RFC3339 Time: %v", got)
	}
}

func TestDecoderBigInt(t *testing.T) {
	big := new(bigmath.Int).Lsh(bigmath.NewInt(1), 64) // 2^64
	negBig := new(bigmath.Int).Neg(new(bigmath.Int).Add(big, bigmath.NewInt(1)))

	for _, z := range []*bigmath.Int{
		bigmath.NewInt(0),
		bigmath.NewInt(1000000),
		bigmath.NewInt(-500),
		big,
		negBig,
	} {
		d := NewDecoder(AppendBigInt(nil, z))
		got, err := d.BigInt()
		if err != nil {
			t.Fatalf("BigInt(%s): %v", z, err)
		}
		if got.Cmp(z) != 0 {
			t.Fatalf("BigInt = %s, want %s", got, z)
		}
		if d.Remaining() != 0 {
			t.Fatalf("BigInt(%s): %d leftover bytes", z, d.Remaining())
		}
	}

	// A non-bignum tag leaves the cursor at the tag.
	d := NewDecoder(mustHex(t, "c100"))
	if _, err := d.BigInt(); err == nil {
		t.Fatal("expected error for tag 1")
	}
	if d.Position() != 0 {
		t.Fatalf("cursor moved to %d on failed BigInt", d.Position())
	}
}

func TestDecoderRaw(t *testing.T) {
	raw := mustHex(t, "8301820203820405" + "00")
	d := NewDecoder(raw)
	item, err := d.Raw()
	if err != nil {
		t.Fatal(err)
	}
	checkHex(t, item, "8301820203820405")
	if v, err := d.Uint(); err != nil || v != 0 {
		t.Fatalf("after Raw: %d, %v", v, err)
	}
}

func TestUnionEnvelope(t *testing.T) {
	bb := GetByteBuffer()
	defer PutByteBuffer(bb)
	e := NewEncoder(bb)
	err := EncodeUnion(e, 3, func(e *Encoder) error { return e.Text("payload") })
	if err != nil {
		t.Fatal(err)
	}
	checkHex(t, bb.Bytes(), "8203677061796c6f6164")

	d := NewDecoder(bb.Bytes())
	idx, indef, err := DecodeUnionHeader(d)
	if err != nil || indef || idx != 3 {
		t.Fatalf("DecodeUnionHeader: %d, %v, %v", idx, indef, err)
	}
	s, err := d.Text()
	if err != nil || s != "payload" {
		t.Fatalf("payload: %q, %v", s, err)
	}

	// Wrong arity is rejected up front.
	d = NewDecoder(mustHex(t, "830101f6"))
	if _, _, err := DecodeUnionHeader(d); !errors.Is(err, ErrUnionShape) {
		t.Fatalf("expected ErrUnionShape, got %v", err)
	}
}

func TestBuiltinSliceHelpers(t *testing.T) {
	bb := GetByteBuffer()
	defer PutByteBuffer(bb)
	e := NewEncoder(bb)
	err := EncodeSlice(e, []uint64{1, 2, 3}, func(e *Encoder, v uint64) error {
		return e.Uint(v)
	})
	if err != nil {
		t.Fatal(err)
	}
	checkHex(t, bb.Bytes(), "83010203")

	d := NewDecoder(bb.Bytes())
	got, err := DecodeSlice(d, (*Decoder).Uint)
	if err != nil || len(got) != 3 || got[2] != 3 {
		t.Fatalf("DecodeSlice: %v, %v", got, err)
	}

	// Indefinite input decodes through the same helper.
	d = NewDecoder(mustHex(t, "9f010203ff"))
	got, err = DecodeSlice(d, (*Decoder).Uint)
	if err != nil || len(got) != 3 {
		t.Fatalf("DecodeSlice indefinite: %v, %v", got, err)
	}
}

func TestBuiltinMapHelpers(t *testing.T) {
	bb := GetByteBuffer()
	defer PutByteBuffer(bb)
	e := NewEncoder(bb)
	m := map[string]uint64{"b": 2, "a": 1}
	err := EncodeMapOf(e, m,
		func(e *Encoder, k string) error { return e.Text(k) },
		func(e *Encoder, v uint64) error { return e.Uint(v) })
	if err != nil {
		t.Fatal(err)
	}
	// Keys sorted, so output is reproducible.
	checkHex(t, bb.Bytes(), "a2616101616202")

	d := NewDecoder(bb.Bytes())
	got, err := DecodeMapOf(d, (*Decoder).Text, (*Decoder).Uint)
	if err != nil || len(got) != 2 || got["a"] != 1 || got["b"] != 2 {
		t.Fatalf("DecodeMapOf: %v, %v", got, err)
	}
}

func TestBuiltinOptionHelpers(t *testing.T) {
	bb := GetByteBuffer()
	defer PutByteBuffer(bb)
	e := NewEncoder(bb)
	if err := EncodeOption(e, (*uint64)(nil), func(e *Encoder, v uint64) error {
		return e.Uint(v)
	}); err != nil {
		t.Fatal(err)
	}
	v := uint64(7)
	if err := EncodeOption(e, &v, func(e *Encoder, v uint64) error {
		return e.Uint(v)
	}); err != nil {
		t.Fatal(err)
	}
	checkHex(t, bb.Bytes(), "f607")

	d := NewDecoder(bb.Bytes())
	p, err := DecodeOption(d, (*Decoder).Uint)
	if err != nil || p != nil {
		t.Fatalf("DecodeOption null: %v, %v", p, err)
	}
	p, err = DecodeOption(d, (*Decoder).Uint)
	if err != nil || p == nil || *p != 7 {
		t.Fatalf("DecodeOption value: %v, %v", p, err)
	}
}
