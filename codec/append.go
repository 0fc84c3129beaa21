package cbor

import (
	"encoding/binary"
	"math"
	bigmath "math/big"
	"strconv"
	"time"

	"github.com/x448/float16"
)

var be = binary.BigEndian

// ensure 'sz' extra bytes in 'b' btw len(b) and cap(b)
func ensure(b []byte, sz int) ([]byte, int) {
	l := len(b)
	c := cap(b)
	if c-l < sz {
		o := make([]byte, (2*c)+sz) // exponential growth
		n := copy(o, b)
		return o[:n+sz], n
	}
	return b[:l+sz], l
}

// appendUintCore encodes an unsigned argument with the given major type
// using the minimal number of bytes.
func appendUintCore(b []byte, majorType uint8, u uint64) []byte {
	switch {
	case u <= addInfoDirect:
		return append(b, makeByte(majorType, uint8(u)))
	case u <= math.MaxUint8:
		o, n := ensure(b, 2)
		o[n] = makeByte(majorType, addInfoUint8)
		o[n+1] = uint8(u)
		return o
	case u <= math.MaxUint16:
		o, n := ensure(b, 3)
		o[n] = makeByte(majorType, addInfoUint16)
		be.PutUint16(o[n+1:], uint16(u))
		return o
	case u <= math.MaxUint32:
		o, n := ensure(b, 5)
		o[n] = makeByte(majorType, addInfoUint32)
		be.PutUint32(o[n+1:], uint32(u))
		return o
	default:
		o, n := ensure(b, 9)
		o[n] = makeByte(majorType, addInfoUint64)
		be.PutUint64(o[n+1:], u)
		return o
	}
}

// AppendUint64 appends an unsigned integer.
func AppendUint64(b []byte, u uint64) []byte {
	return appendUintCore(b, majorTypeUint, u)
}

// AppendUint appends a uint.
func AppendUint(b []byte, u uint) []byte { return AppendUint64(b, uint64(u)) }

// AppendUint8 appends a uint8.
func AppendUint8(b []byte, u uint8) []byte { return appendUintCore(b, majorTypeUint, uint64(u)) }

// AppendUint16 appends a uint16.
func AppendUint16(b []byte, u uint16) []byte { return appendUintCore(b, majorTypeUint, uint64(u)) }

// AppendUint32 appends a uint32.
func AppendUint32(b []byte, u uint32) []byte { return appendUintCore(b, majorTypeUint, uint64(u)) }

// AppendNegative appends a negative integer from its unsigned wire
// argument n. The encoded value is -1 - n, which covers the full major
// type 1 range including values below math.MinInt64.
func AppendNegative(b []byte, n uint64) []byte {
	return appendUintCore(b, majorTypeNegInt, n)
}

// AppendInt64 appends an int64 using minimal-width CBOR integer encoding.
func AppendInt64(b []byte, i int64) []byte {
	// Fast path for small positive values 0..23 (single-byte encoding).
	if i >= 0 && i <= addInfoDirect {
		return append(b, makeByte(majorTypeUint, uint8(i)))
	}
	// CBOR encodes negative integers as -1-n with unsigned argument n.
	if i < 0 {
		neg := uint64(-1 - i)
		if neg <= addInfoDirect {
			return append(b, makeByte(majorTypeNegInt, uint8(neg)))
		}
		return appendUintCore(b, majorTypeNegInt, neg)
	}
	return appendUintCore(b, majorTypeUint, uint64(i))
}

// AppendInt appends an int.
func AppendInt(b []byte, i int) []byte { return AppendInt64(b, int64(i)) }

// AppendInt8 appends an int8.
func AppendInt8(b []byte, i int8) []byte { return AppendInt64(b, int64(i)) }

// AppendInt16 appends an int16.
func AppendInt16(b []byte, i int16) []byte { return AppendInt64(b, int64(i)) }

// AppendInt32 appends an int32.
func AppendInt32(b []byte, i int32) []byte { return AppendInt64(b, int64(i)) }

// AppendBytes appends a definite-length byte string.
func AppendBytes(b []byte, data []byte) []byte {
	b = appendUintCore(b, majorTypeBytes, uint64(len(data)))
	return append(b, data...)
}

// AppendString appends a definite-length text string.
func AppendString(b []byte, s string) []byte {
	b = appendUintCore(b, majorTypeText, uint64(len(s)))
	return append(b, s...)
}

// AppendStringFromBytes appends a text string from a byte slice.
func AppendStringFromBytes(b []byte, data []byte) []byte {
	b = appendUintCore(b, majorTypeText, uint64(len(data)))
	return append(b, data...)
}

// AppendArrayHeader appends a definite-length array header. The caller
// must append exactly sz following items.
func AppendArrayHeader(b []byte, sz uint32) []byte {
	return appendUintCore(b, majorTypeArray, uint64(sz))
}

// AppendMapHeader appends a definite-length map header. The caller must
// append exactly 2*sz following items, alternating key and value.
func AppendMapHeader(b []byte, sz uint32) []byte {
	return appendUintCore(b, majorTypeMap, uint64(sz))
}

// AppendArrayHeaderIndefinite appends an indefinite-length array header (0x9f).
func AppendArrayHeaderIndefinite(b []byte) []byte {
	return append(b, makeByte(majorTypeArray, addInfoIndefinite))
}

// AppendMapHeaderIndefinite appends an indefinite-length map header (0xbf).
func AppendMapHeaderIndefinite(b []byte) []byte {
	return append(b, makeByte(majorTypeMap, addInfoIndefinite))
}

// AppendBytesHeaderIndefinite appends an indefinite-length byte string header (0x5f).
func AppendBytesHeaderIndefinite(b []byte) []byte {
	return append(b, makeByte(majorTypeBytes, addInfoIndefinite))
}

// AppendTextHeaderIndefinite appends an indefinite-length text string header (0x7f).
func AppendTextHeaderIndefinite(b []byte) []byte {
	return append(b, makeByte(majorTypeText, addInfoIndefinite))
}

// AppendBreak appends a break stop code (0xff).
func AppendBreak(b []byte) []byte {
	return append(b, breakByte)
}

// AppendBool appends a bool.
func AppendBool(b []byte, val bool) []byte {
	if val {
		return append(b, makeByte(majorTypeSimple, simpleTrue))
	}
	return append(b, makeByte(majorTypeSimple, simpleFalse))
}

// AppendNull appends a null value.
func AppendNull(b []byte) []byte {
	return append(b, makeByte(majorTypeSimple, simpleNull))
}

// AppendUndefined appends an undefined value.
func AppendUndefined(b []byte) []byte {
	return append(b, makeByte(majorTypeSimple, simpleUndefined))
}

// AppendSimpleValue appends a generic simple value. Values 0..23 are
// encoded in the additional information; values 32..255 as 0xf8 XX.
// Values 24..31 have no well-formed encoding; passing one panics.
func AppendSimpleValue(b []byte, val uint8) []byte {
	if val <= addInfoDirect {
		return append(b, makeByte(majorTypeSimple, val))
	}
	if val < 32 {
		panic("cbor: simple value " + strconv.Itoa(int(val)) + " has no well-formed encoding")
	}
	o, n := ensure(b, 2)
	o[n] = makeByte(majorTypeSimple, addInfoUint8)
	o[n+1] = val
	return o
}

// AppendFloat64 appends a double-precision float.
func AppendFloat64(b []byte, f float64) []byte {
	o, n := ensure(b, 9)
	o[n] = makeByte(majorTypeSimple, simpleFloat64)
	be.PutUint64(o[n+1:], math.Float64bits(f))
	return o
}

// AppendFloat32 appends a single-precision float.
func AppendFloat32(b []byte, f float32) []byte {
	o, n := ensure(b, 5)
	o[n] = makeByte(majorTypeSimple, simpleFloat32)
	be.PutUint32(o[n+1:], math.Float32bits(f))
	return o
}

// AppendFloat16 appends a half-precision (IEEE 754 binary16) float.
// The value is converted with round-to-nearest-even.
func AppendFloat16(b []byte, f float32) []byte {
	o, n := ensure(b, 3)
	o[n] = makeByte(majorTypeSimple, simpleFloat16)
	be.PutUint16(o[n+1:], float16.Fromfloat32(f).Bits())
	return o
}

// AppendFloatCanonical appends the shortest-width float (f16/f32/f64)
// that preserves the value. NaN canonicalizes to the float16 NaN.
func AppendFloatCanonical(b []byte, f float64) []byte {
	if f == 0 && math.Signbit(f) {
		f = 0
	}
	if math.IsNaN(f) {
		o, n := ensure(b, 3)
		o[n] = makeByte(majorTypeSimple, simpleFloat16)
		be.PutUint16(o[n+1:], 0x7e00)
		return o
	}
	f32 := float32(f)
	if float64(f32) == f {
		if h := float16.Fromfloat32(f32); h.Float32() == f32 {
			o, n := ensure(b, 3)
			o[n] = makeByte(majorTypeSimple, simpleFloat16)
			be.PutUint16(o[n+1:], h.Bits())
			return o
		}
		return AppendFloat32(b, f32)
	}
	return AppendFloat64(b, f)
}

// AppendTag appends a semantic tag. The caller must append exactly one
// following item as the tagged value.
func AppendTag(b []byte, tag uint64) []byte {
	return appendUintCore(b, majorTypeTag, tag)
}

// AppendTagged appends a tag followed by a pre-encoded value.
func AppendTagged(b []byte, tag uint64, value []byte) []byte {
	b = AppendTag(b, tag)
	return append(b, value...)
}

// AppendSelfDescribeCBOR appends the self-describe CBOR tag (0xd9d9f7).
func AppendSelfDescribeCBOR(b []byte) []byte {
	return appendUintCore(b, majorTypeTag, tagSelfDescribeCBOR)
}

// AppendEmbeddedCBOR appends tag(24) with a byte string containing an
// embedded CBOR payload.
func AppendEmbeddedCBOR(b []byte, payload []byte) []byte {
	b = AppendTag(b, tagCBOR)
	return AppendBytes(b, payload)
}

// AppendTime appends a time.Time as CBOR tag 1 (epoch timestamp).
// Whole seconds use an integer payload, otherwise a float64.
func AppendTime(b []byte, t time.Time) []byte {
	b = AppendTag(b, tagEpochDateTime)
	sec := t.Unix()
	nsec := t.Nanosecond()
	if nsec == 0 {
		return AppendInt64(b, sec)
	}
	f := float64(sec) + float64(nsec)/1e9
	return AppendFloat64(b, f)
}

// AppendRFC3339Time appends a tag(0) RFC3339 datetime string.
func AppendRFC3339Time(b []byte, t time.Time) []byte {
	b = AppendTag(b, tagDateTimeString)
	return AppendString(b, t.Format(time.RFC3339Nano))
}

// AppendDuration appends a time.Duration as int64 nanoseconds.
func AppendDuration(b []byte, d time.Duration) []byte {
	return AppendInt64(b, int64(d))
}

// AppendBigInt appends a big integer using preferred serialization:
// values within the basic integer range use major types 0/1, anything
// wider uses bignum tags (2 positive, 3 negative, payload n = -1 - value).
func AppendBigInt(b []byte, z *bigmath.Int) []byte {
	if z == nil {
		return AppendNull(b)
	}
	if z.Sign() >= 0 {
		if z.IsUint64() {
			return AppendUint64(b, z.Uint64())
		}
		b = AppendTag(b, tagPosBignum)
		return AppendBytes(b, z.Bytes())
	}
	tmp := new(bigmath.Int).Neg(z)  // -z
	tmp.Sub(tmp, bigmath.NewInt(1)) // -z - 1
	if tmp.IsUint64() {
		return AppendNegative(b, tmp.Uint64())
	}
	b = AppendTag(b, tagNegBignum)
	return AppendBytes(b, tmp.Bytes())
}
