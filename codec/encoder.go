package cbor

import (
	"io"
	"math"
	"time"

	"github.com/x448/float16"
)

// Encoder writes CBOR items to an io.Writer sink. Each method emits
// exactly one item (or one container header); bytes reach the sink in
// call order with no buffering or reordering inside the Encoder.
//
// The Encoder owns its sink for its lifetime and holds no other state,
// so the only failure condition is a rejected sink write. Container
// element counts are not enforced here; that responsibility sits with
// the structural codec layer.
type Encoder struct {
	w       io.Writer
	ctx     any
	scratch [9]byte
}

// NewEncoder constructs an Encoder emitting to w. ByteBuffer and
// FixedBuffer are the provided sinks; any io.Writer works.
func NewEncoder(w io.Writer) *Encoder { return &Encoder{w: w} }

// SetContext attaches an opaque caller-supplied value for the duration
// of one encode call tree. The codec never inspects or retains it.
func (e *Encoder) SetContext(ctx any) { e.ctx = ctx }

// Context returns the value set with SetContext.
func (e *Encoder) Context() any { return e.ctx }

// writeArg emits a major type with its unsigned argument in minimal width.
func (e *Encoder) writeArg(majorType uint8, u uint64) error {
	s := e.scratch[:0]
	switch {
	case u <= addInfoDirect:
		s = append(s, makeByte(majorType, uint8(u)))
	case u <= math.MaxUint8:
		s = append(s, makeByte(majorType, addInfoUint8), uint8(u))
	case u <= math.MaxUint16:
		s = e.scratch[:3]
		s[0] = makeByte(majorType, addInfoUint16)
		be.PutUint16(s[1:], uint16(u))
	case u <= math.MaxUint32:
		s = e.scratch[:5]
		s[0] = makeByte(majorType, addInfoUint32)
		be.PutUint32(s[1:], uint32(u))
	default:
		s = e.scratch[:9]
		s[0] = makeByte(majorType, addInfoUint64)
		be.PutUint64(s[1:], u)
	}
	_, err := e.w.Write(s)
	return err
}

func (e *Encoder) writeByte(b byte) error {
	e.scratch[0] = b
	_, err := e.w.Write(e.scratch[:1])
	return err
}

// Uint emits an unsigned integer (major type 0).
func (e *Encoder) Uint(u uint64) error {
	return e.writeArg(majorTypeUint, u)
}

// Uint32 emits a uint32.
func (e *Encoder) Uint32(u uint32) error { return e.writeArg(majorTypeUint, uint64(u)) }

// Negative emits a negative integer (major type 1) from its unsigned
// wire argument n; the logical value is -1 - n. This covers the full
// CBOR range, including values below math.MinInt64.
func (e *Encoder) Negative(n uint64) error {
	return e.writeArg(majorTypeNegInt, n)
}

// Int emits a signed integer using major type 0 or 1 as appropriate.
func (e *Encoder) Int(i int64) error {
	if i >= 0 {
		return e.writeArg(majorTypeUint, uint64(i))
	}
	return e.writeArg(majorTypeNegInt, uint64(-1-i))
}

// Bytes emits a definite-length byte string.
func (e *Encoder) Bytes(v []byte) error {
	if err := e.writeArg(majorTypeBytes, uint64(len(v))); err != nil {
		return err
	}
	_, err := e.w.Write(v)
	return err
}

// Text emits a definite-length text string.
func (e *Encoder) Text(s string) error {
	if err := e.writeArg(majorTypeText, uint64(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(e.w, s)
	return err
}

// ArrayHeader emits a definite-length array header. The caller must
// emit exactly sz following items.
func (e *Encoder) ArrayHeader(sz uint32) error {
	return e.writeArg(majorTypeArray, uint64(sz))
}

// MapHeader emits a definite-length map header. The caller must emit
// exactly 2*sz following items, alternating key and value.
func (e *Encoder) MapHeader(sz uint32) error {
	return e.writeArg(majorTypeMap, uint64(sz))
}

// BeginArray starts an indefinite-length array; terminate with End.
func (e *Encoder) BeginArray() error {
	return e.writeByte(makeByte(majorTypeArray, addInfoIndefinite))
}

// BeginMap starts an indefinite-length map; terminate with End.
func (e *Encoder) BeginMap() error {
	return e.writeByte(makeByte(majorTypeMap, addInfoIndefinite))
}

// BeginBytes starts an indefinite-length byte string. Chunks are
// emitted with Bytes; terminate with End.
func (e *Encoder) BeginBytes() error {
	return e.writeByte(makeByte(majorTypeBytes, addInfoIndefinite))
}

// BeginText starts an indefinite-length text string. Chunks are
// emitted with Text; terminate with End.
func (e *Encoder) BeginText() error {
	return e.writeByte(makeByte(majorTypeText, addInfoIndefinite))
}

// End emits the break marker terminating an indefinite-length
// container. Nesting is caller-tracked.
func (e *Encoder) End() error {
	return e.writeByte(breakByte)
}

// Bool emits a boolean.
func (e *Encoder) Bool(v bool) error {
	if v {
		return e.writeByte(makeByte(majorTypeSimple, simpleTrue))
	}
	return e.writeByte(makeByte(majorTypeSimple, simpleFalse))
}

// Null emits a null value.
func (e *Encoder) Null() error {
	return e.writeByte(makeByte(majorTypeSimple, simpleNull))
}

// Undefined emits an undefined value.
func (e *Encoder) Undefined() error {
	return e.writeByte(makeByte(majorTypeSimple, simpleUndefined))
}

// Simple emits a simple value: 0..23 in one byte, 32..255 in the
// two-byte 0xf8 form. Values 24..31 have no well-formed encoding and
// are rejected.
func (e *Encoder) Simple(v uint8) error {
	if v <= addInfoDirect {
		return e.writeByte(makeByte(majorTypeSimple, v))
	}
	if v < 32 {
		return ReservedInfoError{Major: majorTypeSimple, Info: v}
	}
	e.scratch[0] = makeByte(majorTypeSimple, addInfoUint8)
	e.scratch[1] = v
	_, err := e.w.Write(e.scratch[:2])
	return err
}

// F16 emits a half-precision float, converted with round-to-nearest-even.
func (e *Encoder) F16(f float32) error {
	e.scratch[0] = makeByte(majorTypeSimple, simpleFloat16)
	be.PutUint16(e.scratch[1:3], float16.Fromfloat32(f).Bits())
	_, err := e.w.Write(e.scratch[:3])
	return err
}

// F32 emits a single-precision float.
func (e *Encoder) F32(f float32) error {
	e.scratch[0] = makeByte(majorTypeSimple, simpleFloat32)
	be.PutUint32(e.scratch[1:5], math.Float32bits(f))
	_, err := e.w.Write(e.scratch[:5])
	return err
}

// F64 emits a double-precision float.
func (e *Encoder) F64(f float64) error {
	e.scratch[0] = makeByte(majorTypeSimple, simpleFloat64)
	be.PutUint64(e.scratch[1:9], math.Float64bits(f))
	_, err := e.w.Write(e.scratch[:9])
	return err
}

// Tag emits a semantic tag (major type 6). The caller must emit
// exactly one following item as the wrapped value.
func (e *Encoder) Tag(tag uint64) error {
	return e.writeArg(majorTypeTag, tag)
}

// Time emits a time.Time as tag 1 (epoch timestamp): integer payload
// for whole seconds, float64 otherwise.
func (e *Encoder) Time(t time.Time) error {
	if err := e.writeArg(majorTypeTag, tagEpochDateTime); err != nil {
		return err
	}
	if t.Nanosecond() == 0 {
		return e.Int(t.Unix())
	}
	return e.F64(float64(t.Unix()) + float64(t.Nanosecond())/1e9)
}

// Raw copies pre-encoded CBOR to the sink. The payload must contain
// whole CBOR items; no validation is performed.
func (e *Encoder) Raw(item []byte) error {
	_, err := e.w.Write(item)
	return err
}
