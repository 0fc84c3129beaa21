package cbor

import (
	"math"
	bigmath "math/big"
	"time"

	"github.com/x448/float16"
)

// Decoder reads CBOR items from an in-memory buffer with an explicit
// cursor. It borrows the buffer for its lifetime and never copies it;
// zero-copy reads return views into it.
//
// Every read either consumes exactly one item (advancing the cursor) or
// fails leaving the cursor where it was, so a caller that probes with
// Position/SetPosition always observes a consistent state. Input is
// treated as untrusted: malformed data yields errors, never panics.
//
// The zero configuration is lenient: any well-formed CBOR decodes,
// including non-minimal argument widths and indefinite-length forms
// produced by foreign encoders. SetStrictDecode and
// SetDeterministicDecode tighten this per instance.
type Decoder struct {
	buf           []byte
	pos           int
	strict        bool
	deterministic bool
	maxDepth      int
	maxContainer  uint32
	ctx           any
}

// NewDecoder constructs a Decoder over the provided buffer.
func NewDecoder(b []byte) *Decoder {
	return &Decoder{buf: b, maxDepth: defaultMaxDepth}
}

// SetContext attaches an opaque caller-supplied value for the duration
// of one decode call tree. The codec never inspects or retains it.
func (d *Decoder) SetContext(ctx any) { d.ctx = ctx }

// Context returns the value set with SetContext.
func (d *Decoder) Context() any { return d.ctx }

// SetStrictDecode controls whether non-minimal integer and length
// encodings are rejected (ErrNonCanonicalInteger, ErrNonCanonicalLength,
// ErrNonCanonicalFloat). Off by default: lenient decoding accepts any
// well-formed width a foreign encoder chose.
func (d *Decoder) SetStrictDecode(strict bool) { d.strict = strict }

// SetDeterministicDecode controls whether indefinite-length items are
// forbidden (ErrIndefiniteForbidden).
func (d *Decoder) SetDeterministicDecode(det bool) { d.deterministic = det }

// SetMaxDepth configures the recursion budget for Skip and nested
// structural decoding. Values below 1 restore the default.
func (d *Decoder) SetMaxDepth(depth int) {
	if depth < 1 {
		depth = defaultMaxDepth
	}
	d.maxDepth = depth
}

// SetMaxContainerLen configures an upper bound on declared container
// lengths (arrays, maps). Zero disables the limit. When exceeded,
// ErrContainerTooLarge is returned before any element is read.
func (d *Decoder) SetMaxContainerLen(max uint32) { d.maxContainer = max }

// Position returns the current cursor offset for later SetPosition.
func (d *Decoder) Position() int { return d.pos }

// SetPosition rewinds or advances the cursor to a value previously
// obtained from Position. This is the only sanctioned cursor mutation
// besides forward consumption; it exists for save/attempt/restore
// probing of ambiguous encodings.
func (d *Decoder) SetPosition(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(d.buf) {
		pos = len(d.buf)
	}
	d.pos = pos
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int { return len(d.buf) - d.pos }

// rest returns the unread portion of the buffer.
func (d *Decoder) rest() []byte { return d.buf[d.pos:] }

// PeekType classifies the next item without consuming it.
func (d *Decoder) PeekType() (Type, error) {
	if d.pos >= len(d.buf) {
		return InvalidType, ErrShortBytes
	}
	return typeOf(d.buf[d.pos]), nil
}

// IsBreak reports whether the next byte is the break marker. It does
// not consume. Callers iterating an indefinite-length container use it
// to detect the terminator.
func (d *Decoder) IsBreak() bool {
	return d.pos < len(d.buf) && d.buf[d.pos] == breakByte
}

// ReadBreak consumes a break marker, failing with a TypeError if the
// next item is anything else.
func (d *Decoder) ReadBreak() error {
	if d.pos >= len(d.buf) {
		return ErrShortBytes
	}
	if d.buf[d.pos] != breakByte {
		return TypeError{Method: BreakType, Encoded: typeOf(d.buf[d.pos])}
	}
	d.pos++
	return nil
}

// readArg decodes the argument of the item at the cursor, requiring the
// given major type. It returns the argument value and the total header
// size in bytes without advancing the cursor.
func (d *Decoder) readArg(want uint8) (uint64, int, error) {
	b := d.rest()
	if len(b) < 1 {
		return 0, 0, ErrShortBytes
	}
	major := getMajorType(b[0])
	if major != want {
		return 0, 0, badPrefix(want, major)
	}
	add := getAddInfo(b[0])
	switch {
	case add <= addInfoDirect:
		return uint64(add), 1, nil
	case add == addInfoUint8:
		if len(b) < 2 {
			return 0, 0, ErrShortBytes
		}
		u := uint64(b[1])
		if d.strict && u <= addInfoDirect {
			return 0, 0, d.nonCanonicalErr(major)
		}
		return u, 2, nil
	case add == addInfoUint16:
		if len(b) < 3 {
			return 0, 0, ErrShortBytes
		}
		u := uint64(be.Uint16(b[1:]))
		if d.strict && u <= math.MaxUint8 {
			return 0, 0, d.nonCanonicalErr(major)
		}
		return u, 3, nil
	case add == addInfoUint32:
		if len(b) < 5 {
			return 0, 0, ErrShortBytes
		}
		u := uint64(be.Uint32(b[1:]))
		if d.strict && u <= math.MaxUint16 {
			return 0, 0, d.nonCanonicalErr(major)
		}
		return u, 5, nil
	case add == addInfoUint64:
		if len(b) < 9 {
			return 0, 0, ErrShortBytes
		}
		u := be.Uint64(b[1:])
		if d.strict && u <= math.MaxUint32 {
			return 0, 0, d.nonCanonicalErr(major)
		}
		return u, 9, nil
	default:
		return 0, 0, ReservedInfoError{Major: major, Info: add}
	}
}

// nonCanonicalErr selects the strict-mode error for a major type.
func (d *Decoder) nonCanonicalErr(major uint8) error {
	switch major {
	case majorTypeUint, majorTypeNegInt, majorTypeTag:
		return ErrNonCanonicalInteger
	default:
		return ErrNonCanonicalLength
	}
}

// Uint reads an unsigned integer (major type 0).
func (d *Decoder) Uint() (uint64, error) {
	u, n, err := d.readArg(majorTypeUint)
	if err != nil {
		return 0, err
	}
	d.pos += n
	return u, nil
}

// Uint8 reads an unsigned integer that must fit 8 bits.
func (d *Decoder) Uint8() (uint8, error) {
	start := d.pos
	u, err := d.Uint()
	if err != nil {
		return 0, err
	}
	return uint8(u), d.checkUintWidth(start, u, math.MaxUint8, 8)
}

// Uint16 reads an unsigned integer that must fit 16 bits.
func (d *Decoder) Uint16() (uint16, error) {
	start := d.pos
	u, err := d.Uint()
	if err != nil {
		return 0, err
	}
	return uint16(u), d.checkUintWidth(start, u, math.MaxUint16, 16)
}

// Uint32 reads an unsigned integer that must fit 32 bits.
func (d *Decoder) Uint32() (uint32, error) {
	start := d.pos
	u, err := d.Uint()
	if err != nil {
		return 0, err
	}
	return uint32(u), d.checkUintWidth(start, u, math.MaxUint32, 32)
}

// checkUintWidth restores the cursor to the position saved before an
// integer read whose value overflows the requested width. The saved
// position, not a recomputed header length, is what makes the rewind
// correct for non-minimal encodings too.
func (d *Decoder) checkUintWidth(start int, u uint64, max uint64, bits int) error {
	if u <= max {
		return nil
	}
	d.pos = start
	return UintOverflow{Value: u, FailedBitsize: bits}
}

// Negative reads a negative integer (major type 1) and returns its
// unsigned wire argument n; the logical value is -1 - n.
func (d *Decoder) Negative() (uint64, error) {
	u, n, err := d.readArg(majorTypeNegInt)
	if err != nil {
		return 0, err
	}
	d.pos += n
	return u, nil
}

// Int reads a signed integer from major type 0 or 1, failing with
// IntOverflow when the value does not fit an int64.
func (d *Decoder) Int() (int64, error) {
	b := d.rest()
	if len(b) < 1 {
		return 0, ErrShortBytes
	}
	switch getMajorType(b[0]) {
	case majorTypeUint:
		u, n, err := d.readArg(majorTypeUint)
		if err != nil {
			return 0, err
		}
		if u > math.MaxInt64 {
			return 0, UintOverflow{Value: u, FailedBitsize: 64}
		}
		d.pos += n
		return int64(u), nil
	case majorTypeNegInt:
		u, n, err := d.readArg(majorTypeNegInt)
		if err != nil {
			return 0, err
		}
		if u > math.MaxInt64 {
			return 0, IntOverflow{Value: -1, FailedBitsize: 64}
		}
		d.pos += n
		return -1 - int64(u), nil
	default:
		return 0, TypeError{Method: IntType, Encoded: typeOf(b[0])}
	}
}

// Int32 reads a signed integer that must fit 32 bits.
func (d *Decoder) Int32() (int32, error) {
	start := d.pos
	i, err := d.Int()
	if err != nil {
		return 0, err
	}
	if i > math.MaxInt32 || i < math.MinInt32 {
		d.pos = start
		return 0, IntOverflow{Value: i, FailedBitsize: 32}
	}
	return int32(i), nil
}

// Int16 reads a signed integer that must fit 16 bits.
func (d *Decoder) Int16() (int16, error) {
	start := d.pos
	i, err := d.Int()
	if err != nil {
		return 0, err
	}
	if i > math.MaxInt16 || i < math.MinInt16 {
		d.pos = start
		return 0, IntOverflow{Value: i, FailedBitsize: 16}
	}
	return int16(i), nil
}

// Int8 reads a signed integer that must fit 8 bits.
func (d *Decoder) Int8() (int8, error) {
	start := d.pos
	i, err := d.Int()
	if err != nil {
		return 0, err
	}
	if i > math.MaxInt8 || i < math.MinInt8 {
		d.pos = start
		return 0, IntOverflow{Value: i, FailedBitsize: 8}
	}
	return int8(i), nil
}

// Bool reads a boolean.
func (d *Decoder) Bool() (bool, error) {
	b := d.rest()
	if len(b) < 1 {
		return false, ErrShortBytes
	}
	switch b[0] {
	case makeByte(majorTypeSimple, simpleTrue):
		d.pos++
		return true, nil
	case makeByte(majorTypeSimple, simpleFalse):
		d.pos++
		return false, nil
	default:
		return false, TypeError{Method: BoolType, Encoded: typeOf(b[0])}
	}
}

// Null consumes a null item, failing with ErrNotNull otherwise.
func (d *Decoder) Null() error {
	b := d.rest()
	if len(b) < 1 {
		return ErrShortBytes
	}
	if b[0] != makeByte(majorTypeSimple, simpleNull) {
		return ErrNotNull
	}
	d.pos++
	return nil
}

// IsNull reports whether the next item is null, without consuming.
func (d *Decoder) IsNull() bool {
	return d.pos < len(d.buf) && d.buf[d.pos] == makeByte(majorTypeSimple, simpleNull)
}

// Undefined consumes an undefined item.
func (d *Decoder) Undefined() error {
	b := d.rest()
	if len(b) < 1 {
		return ErrShortBytes
	}
	if b[0] != makeByte(majorTypeSimple, simpleUndefined) {
		return TypeError{Method: UndefinedType, Encoded: typeOf(b[0])}
	}
	d.pos++
	return nil
}

// Simple reads a simple value: 0..23 directly, 32..255 via the 0xf8
// form. Float and break encodings are not simple values.
func (d *Decoder) Simple() (uint8, error) {
	b := d.rest()
	if len(b) < 1 {
		return 0, ErrShortBytes
	}
	if getMajorType(b[0]) != majorTypeSimple {
		return 0, badPrefix(majorTypeSimple, getMajorType(b[0]))
	}
	add := getAddInfo(b[0])
	switch {
	case add <= addInfoDirect:
		d.pos++
		return add, nil
	case add == addInfoUint8:
		if len(b) < 2 {
			return 0, ErrShortBytes
		}
		v := b[1]
		if v < 32 {
			// RFC 8949 3.3: two-byte simple values below 32 are not
			// well-formed.
			return 0, ReservedInfoError{Major: majorTypeSimple, Info: v}
		}
		d.pos += 2
		return v, nil
	default:
		return 0, ReservedInfoError{Major: majorTypeSimple, Info: add}
	}
}

// F16 reads a half-precision float, widened to float32.
func (d *Decoder) F16() (float32, error) {
	b := d.rest()
	if len(b) < 1 {
		return 0, ErrShortBytes
	}
	if b[0] != makeByte(majorTypeSimple, simpleFloat16) {
		return 0, TypeError{Method: Float16Type, Encoded: typeOf(b[0])}
	}
	if len(b) < 3 {
		return 0, ErrShortBytes
	}
	f := float16.Frombits(be.Uint16(b[1:])).Float32()
	d.pos += 3
	return f, nil
}

// F32 reads a single-precision float.
func (d *Decoder) F32() (float32, error) {
	b := d.rest()
	if len(b) < 1 {
		return 0, ErrShortBytes
	}
	if b[0] != makeByte(majorTypeSimple, simpleFloat32) {
		return 0, TypeError{Method: Float32Type, Encoded: typeOf(b[0])}
	}
	if len(b) < 5 {
		return 0, ErrShortBytes
	}
	f := math.Float32frombits(be.Uint32(b[1:]))
	d.pos += 5
	return f, nil
}

// F64 reads a double-precision float.
func (d *Decoder) F64() (float64, error) {
	b := d.rest()
	if len(b) < 1 {
		return 0, ErrShortBytes
	}
	if b[0] != makeByte(majorTypeSimple, simpleFloat64) {
		return 0, TypeError{Method: Float64Type, Encoded: typeOf(b[0])}
	}
	if len(b) < 9 {
		return 0, ErrShortBytes
	}
	f := math.Float64frombits(be.Uint64(b[1:]))
	d.pos += 9
	return f, nil
}

// Float reads a float of any width, widened to float64. In strict mode
// the encoding must be the shortest width preserving the value,
// otherwise ErrNonCanonicalFloat is returned.
func (d *Decoder) Float() (float64, error) {
	t, err := d.PeekType()
	if err != nil {
		return 0, err
	}
	start := d.pos
	var f float64
	switch t {
	case Float16Type:
		v, err := d.F16()
		if err != nil {
			return 0, err
		}
		f = float64(v)
	case Float32Type:
		v, err := d.F32()
		if err != nil {
			return 0, err
		}
		f = float64(v)
	case Float64Type:
		v, err := d.F64()
		if err != nil {
			return 0, err
		}
		f = v
	default:
		return 0, TypeError{Method: Float64Type, Encoded: t}
	}
	if d.strict {
		canon := AppendFloatCanonical(nil, f)
		if len(canon) != d.pos-start {
			d.pos = start
			return 0, ErrNonCanonicalFloat
		}
	}
	return f, nil
}

// BytesZC reads a definite-length byte string zero-copy, returning a
// view into the decode buffer.
func (d *Decoder) BytesZC() ([]byte, error) {
	sz, n, err := d.readArg(majorTypeBytes)
	if err != nil {
		return nil, err
	}
	b := d.rest()
	if uint64(len(b)-n) < sz {
		return nil, ErrShortBytes
	}
	d.pos += n + int(sz)
	return b[n : n+int(sz)], nil
}

// Bytes reads a byte string. Definite-length strings are returned
// zero-copy; indefinite-length strings are assembled from their chunks
// into a fresh slice. In deterministic mode the indefinite form is
// rejected.
func (d *Decoder) Bytes() ([]byte, error) {
	return d.chunkedString(majorTypeBytes)
}

// TextZC reads a definite-length text string zero-copy as raw bytes.
// UTF-8 is not validated on this path.
func (d *Decoder) TextZC() ([]byte, error) {
	sz, n, err := d.readArg(majorTypeText)
	if err != nil {
		return nil, err
	}
	b := d.rest()
	if uint64(len(b)-n) < sz {
		return nil, ErrShortBytes
	}
	d.pos += n + int(sz)
	return b[n : n+int(sz)], nil
}

// Text reads a text string, assembling indefinite-length chunks when
// present, and validates UTF-8.
func (d *Decoder) Text() (string, error) {
	start := d.pos
	v, err := d.chunkedString(majorTypeText)
	if err != nil {
		return "", err
	}
	if !isUTF8Valid(v) {
		d.pos = start
		return "", ErrInvalidUTF8
	}
	return string(v), nil
}

// chunkedString reads a byte or text string of either length form.
func (d *Decoder) chunkedString(major uint8) ([]byte, error) {
	b := d.rest()
	if len(b) < 1 {
		return nil, ErrShortBytes
	}
	if getMajorType(b[0]) != major {
		return nil, badPrefix(major, getMajorType(b[0]))
	}
	if getAddInfo(b[0]) != addInfoIndefinite {
		sz, n, err := d.readArg(major)
		if err != nil {
			return nil, err
		}
		if uint64(len(b)-n) < sz {
			return nil, ErrShortBytes
		}
		d.pos += n + int(sz)
		return b[n : n+int(sz)], nil
	}
	if d.deterministic {
		return nil, ErrIndefiniteForbidden
	}
	// Indefinite form: definite chunks of the same major type up to the
	// break marker. Assemble into a fresh slice; chunk boundaries are
	// not semantically visible.
	start := d.pos
	d.pos++
	var out []byte
	for {
		if d.pos >= len(d.buf) {
			d.pos = start
			return nil, ErrShortBytes
		}
		if d.buf[d.pos] == breakByte {
			d.pos++
			return out, nil
		}
		sz, n, err := d.readArg(major)
		if err != nil {
			d.pos = start
			return nil, err
		}
		rem := d.rest()
		if uint64(len(rem)-n) < sz {
			d.pos = start
			return nil, ErrShortBytes
		}
		out = append(out, rem[n:n+int(sz)]...)
		d.pos += n + int(sz)
	}
}

// ArrayHeader reads an array header, returning the declared length and
// whether the array is indefinite (in which case size is zero and the
// caller consumes elements until IsBreak/ReadBreak). The cursor is left
// at the first element.
func (d *Decoder) ArrayHeader() (size uint32, indefinite bool, err error) {
	return d.containerHeader(majorTypeArray)
}

// MapHeader reads a map header, returning the declared entry count and
// whether the map is indefinite. Each entry is a key item followed by a
// value item.
func (d *Decoder) MapHeader() (size uint32, indefinite bool, err error) {
	return d.containerHeader(majorTypeMap)
}

func (d *Decoder) containerHeader(major uint8) (uint32, bool, error) {
	b := d.rest()
	if len(b) < 1 {
		return 0, false, ErrShortBytes
	}
	if getMajorType(b[0]) != major {
		return 0, false, badPrefix(major, getMajorType(b[0]))
	}
	if getAddInfo(b[0]) == addInfoIndefinite {
		if d.deterministic {
			return 0, false, ErrIndefiniteForbidden
		}
		d.pos++
		return 0, true, nil
	}
	sz, n, err := d.readArg(major)
	if err != nil {
		return 0, false, err
	}
	if sz > math.MaxUint32 {
		return 0, false, UintOverflow{Value: sz, FailedBitsize: 32}
	}
	if d.maxContainer > 0 && uint32(sz) > d.maxContainer {
		return 0, false, ErrContainerTooLarge
	}
	d.pos += n
	return uint32(sz), false, nil
}

// Tag reads a semantic tag number (major type 6). The wrapped value
// follows as the next item.
func (d *Decoder) Tag() (uint64, error) {
	u, n, err := d.readArg(majorTypeTag)
	if err != nil {
		return 0, err
	}
	d.pos += n
	return u, nil
}

// Time reads a time.Time from tag 0 (RFC3339 string) or tag 1 (epoch
// timestamp with integer or float payload).
func (d *Decoder) Time() (time.Time, error) {
	start := d.pos
	tag, err := d.Tag()
	if err != nil {
		return time.Time{}, err
	}
	switch tag {
	case tagDateTimeString:
		s, err := d.Text()
		if err != nil {
			d.pos = start
			return time.Time{}, err
		}
		t, perr := time.Parse(time.RFC3339Nano, s)
		if perr != nil {
			d.pos = start
			return time.Time{}, perr
		}
		return t, nil
	case tagEpochDateTime:
		t, err := d.PeekType()
		if err != nil {
			d.pos = start
			return time.Time{}, err
		}
		switch t {
		case UintType, IntType:
			sec, err := d.Int()
			if err != nil {
				d.pos = start
				return time.Time{}, err
			}
			return time.Unix(sec, 0), nil
		case Float16Type, Float32Type, Float64Type:
			f, err := d.Float()
			if err != nil {
				d.pos = start
				return time.Time{}, err
			}
			sec := math.Floor(f)
			ns := int64(math.Round((f - sec) * 1e9))
			secs := int64(sec)
			if ns >= 1e9 {
				secs++
				ns -= 1e9
			}
			return time.Unix(secs, ns), nil
		default:
			d.pos = start
			return time.Time{}, TypeError{Method: Float64Type, Encoded: t}
		}
	default:
		d.pos = start
		return time.Time{}, TypeError{Method: TagType, Encoded: TagType}
	}
}

// Duration reads a time.Duration encoded as int64 nanoseconds.
func (d *Decoder) Duration() (time.Duration, error) {
	i, err := d.Int()
	if err != nil {
		return 0, err
	}
	return time.Duration(i), nil
}

// BigInt reads an arbitrary precision integer: a plain integer item or
// a tag 2/3 bignum with a byte string magnitude.
func (d *Decoder) BigInt() (*bigmath.Int, error) {
	start := d.pos
	t, err := d.PeekType()
	if err != nil {
		return nil, err
	}
	switch t {
	case UintType:
		u, err := d.Uint()
		if err != nil {
			return nil, err
		}
		return new(bigmath.Int).SetUint64(u), nil
	case IntType:
		n, err := d.Negative()
		if err != nil {
			return nil, err
		}
		z := new(bigmath.Int).SetUint64(n)
		z.Neg(z)
		return z.Sub(z, bigmath.NewInt(1)), nil
	case TagType:
		tag, err := d.Tag()
		if err != nil {
			return nil, err
		}
		if tag != tagPosBignum && tag != tagNegBignum {
			d.pos = start
			return nil, TypeError{Method: IntType, Encoded: TagType}
		}
		mag, err := d.BytesZC()
		if err != nil {
			d.pos = start
			return nil, err
		}
		z := new(bigmath.Int).SetBytes(mag)
		if tag == tagNegBignum {
			z.Neg(z)
			z.Sub(z, bigmath.NewInt(1))
		}
		return z, nil
	default:
		return nil, TypeError{Method: IntType, Encoded: t}
	}
}

// Raw consumes the next complete item and returns its raw encoding as
// a view into the decode buffer.
func (d *Decoder) Raw() ([]byte, error) {
	start := d.pos
	if err := d.Skip(); err != nil {
		return nil, err
	}
	return d.buf[start:d.pos], nil
}

// Skip consumes one complete item of arbitrary shape, recursing into
// containers and tags, without producing a value. Recursion is bounded
// by the configured depth budget; adversarial nesting fails with
// ErrMaxDepthExceeded. On any error the cursor is restored to the
// position before the call.
func (d *Decoder) Skip() error {
	start := d.pos
	if err := d.skip(d.maxDepth); err != nil {
		d.pos = start
		return err
	}
	return nil
}

// skip advances past one item with the given remaining depth budget.
// The budget is an explicit parameter so worst-case behavior on deep
// input is deterministic and independent of the host stack.
func (d *Decoder) skip(depth int) error {
	if depth <= 0 {
		return ErrMaxDepthExceeded
	}
	b := d.rest()
	if len(b) < 1 {
		return ErrShortBytes
	}
	major := getMajorType(b[0])
	add := getAddInfo(b[0])

	switch major {
	case majorTypeUint, majorTypeNegInt, majorTypeTag:
		_, n, err := d.readArg(major)
		if err != nil {
			return err
		}
		d.pos += n
		if major == majorTypeTag {
			return d.skip(depth - 1)
		}
		return nil

	case majorTypeBytes, majorTypeText:
		if add == addInfoIndefinite {
			if d.deterministic {
				return ErrIndefiniteForbidden
			}
			d.pos++
			for {
				if d.pos >= len(d.buf) {
					return ErrShortBytes
				}
				if d.buf[d.pos] == breakByte {
					d.pos++
					return nil
				}
				sz, n, err := d.readArg(major)
				if err != nil {
					return err
				}
				if uint64(d.Remaining()-n) < sz {
					return ErrShortBytes
				}
				d.pos += n + int(sz)
			}
		}
		sz, n, err := d.readArg(major)
		if err != nil {
			return err
		}
		if uint64(len(b)-n) < sz {
			return ErrShortBytes
		}
		d.pos += n + int(sz)
		return nil

	case majorTypeArray, majorTypeMap:
		items := 1
		if major == majorTypeMap {
			items = 2
		}
		if add == addInfoIndefinite {
			if d.deterministic {
				return ErrIndefiniteForbidden
			}
			d.pos++
			for {
				if d.pos >= len(d.buf) {
					return ErrShortBytes
				}
				if d.buf[d.pos] == breakByte {
					d.pos++
					return nil
				}
				for i := 0; i < items; i++ {
					if err := d.skip(depth - 1); err != nil {
						return err
					}
				}
			}
		}
		sz, n, err := d.readArg(major)
		if err != nil {
			return err
		}
		if d.maxContainer > 0 && sz > uint64(d.maxContainer) {
			return ErrContainerTooLarge
		}
		d.pos += n
		for i := uint64(0); i < sz; i++ {
			for j := 0; j < items; j++ {
				if err := d.skip(depth - 1); err != nil {
					return err
				}
			}
		}
		return nil

	case majorTypeSimple:
		switch add {
		case simpleFloat16:
			if len(b) < 3 {
				return ErrShortBytes
			}
			d.pos += 3
			return nil
		case simpleFloat32:
			if len(b) < 5 {
				return ErrShortBytes
			}
			d.pos += 5
			return nil
		case simpleFloat64:
			if len(b) < 9 {
				return ErrShortBytes
			}
			d.pos += 9
			return nil
		case addInfoUint8:
			if len(b) < 2 {
				return ErrShortBytes
			}
			if b[1] < 32 {
				return ReservedInfoError{Major: majorTypeSimple, Info: b[1]}
			}
			d.pos += 2
			return nil
		case simpleBreak:
			// A break is a terminator, never a standalone value.
			return ErrBreak
		default:
			if add <= addInfoDirect {
				d.pos++
				return nil
			}
			return ReservedInfoError{Major: majorTypeSimple, Info: add}
		}
	}
	return ReservedInfoError{Major: major, Info: add}
}
