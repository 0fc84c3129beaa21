package cbor

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
)

// DiagBytes renders the next CBOR item in RFC diagnostic notation and
// returns the remaining bytes. Callers iterate it over a sequence until
// the input is exhausted.
func DiagBytes(b []byte) (string, []byte, error) {
	bb := GetByteBuffer()
	defer PutByteBuffer(bb)
	d := NewDecoder(b)
	if err := diagItem(bb, d, d.maxDepth); err != nil {
		return "", b, err
	}
	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())
	return string(out), d.rest(), nil
}

// Diag renders all items of a CBOR sequence, one per line.
func Diag(b []byte) (string, error) {
	bb := GetByteBuffer()
	defer PutByteBuffer(bb)
	d := NewDecoder(b)
	for d.Remaining() > 0 {
		if bb.Len() > 0 {
			bb.WriteByte('\n')
		}
		if err := diagItem(bb, d, d.maxDepth); err != nil {
			return "", err
		}
	}
	return string(bb.Bytes()), nil
}

// DiagItem renders the next item from d into buf. The cursor advances
// past the item on success and stays put on failure.
func (d *Decoder) DiagItem(buf *ByteBuffer) error {
	start := d.pos
	if err := diagItem(buf, d, d.maxDepth); err != nil {
		d.pos = start
		return err
	}
	return nil
}

func diagItem(buf *ByteBuffer, d *Decoder, depth int) error {
	if depth <= 0 {
		return ErrMaxDepthExceeded
	}
	t, err := d.PeekType()
	if err != nil {
		return err
	}
	switch t {
	case UintType:
		u, err := d.Uint()
		if err != nil {
			return err
		}
		buf.WriteString(strconv.FormatUint(u, 10))
		return nil

	case IntType:
		n, err := d.Negative()
		if err != nil {
			return err
		}
		if n > math.MaxInt64 {
			// Below int64 range; render from the wire value directly.
			if n == math.MaxUint64 {
				buf.WriteString("-18446744073709551616")
				return nil
			}
			buf.WriteString("-" + strconv.FormatUint(n+1, 10))
			return nil
		}
		buf.WriteString(strconv.FormatInt(-1-int64(n), 10))
		return nil

	case BytesType:
		if getAddInfo(d.buf[d.pos]) == addInfoIndefinite {
			return diagChunks(buf, d, majorTypeBytes)
		}
		bs, err := d.BytesZC()
		if err != nil {
			return err
		}
		writeHexLiteral(buf, bs)
		return nil

	case TextType:
		if getAddInfo(d.buf[d.pos]) == addInfoIndefinite {
			return diagChunks(buf, d, majorTypeText)
		}
		s, err := d.Text()
		if err != nil {
			return err
		}
		buf.WriteString(strconv.Quote(s))
		return nil

	case ArrayType:
		sz, indef, err := d.ArrayHeader()
		if err != nil {
			return err
		}
		if indef {
			buf.WriteString("[_")
			first := true
			for !d.IsBreak() {
				diagSep(buf, &first)
				if err := diagItem(buf, d, depth-1); err != nil {
					return err
				}
			}
			if err := d.ReadBreak(); err != nil {
				return err
			}
			buf.WriteString("]")
			return nil
		}
		buf.WriteString("[")
		for i := uint32(0); i < sz; i++ {
			if i > 0 {
				buf.WriteString(", ")
			}
			if err := diagItem(buf, d, depth-1); err != nil {
				return err
			}
		}
		buf.WriteString("]")
		return nil

	case MapType:
		sz, indef, err := d.MapHeader()
		if err != nil {
			return err
		}
		if indef {
			buf.WriteString("{_")
			first := true
			for !d.IsBreak() {
				diagSep(buf, &first)
				if err := diagItem(buf, d, depth-1); err != nil {
					return err
				}
				buf.WriteString(": ")
				if err := diagItem(buf, d, depth-1); err != nil {
					return err
				}
			}
			if err := d.ReadBreak(); err != nil {
				return err
			}
			buf.WriteString("}")
			return nil
		}
		buf.WriteString("{")
		for i := uint32(0); i < sz; i++ {
			if i > 0 {
				buf.WriteString(", ")
			}
			if err := diagItem(buf, d, depth-1); err != nil {
				return err
			}
			buf.WriteString(": ")
			if err := diagItem(buf, d, depth-1); err != nil {
				return err
			}
		}
		buf.WriteString("}")
		return nil

	case TagType:
		tag, err := d.Tag()
		if err != nil {
			return err
		}
		buf.WriteString(strconv.FormatUint(tag, 10))
		buf.WriteString("(")
		if err := diagItem(buf, d, depth-1); err != nil {
			return err
		}
		buf.WriteString(")")
		return nil

	case BoolType:
		v, err := d.Bool()
		if err != nil {
			return err
		}
		if v {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil

	case NullType:
		if err := d.Null(); err != nil {
			return err
		}
		buf.WriteString("null")
		return nil

	case UndefinedType:
		if err := d.Undefined(); err != nil {
			return err
		}
		buf.WriteString("undefined")
		return nil

	case Float16Type:
		f, err := d.F16()
		if err != nil {
			return err
		}
		buf.WriteString(formatFloat32Diag(f))
		return nil

	case Float32Type:
		f, err := d.F32()
		if err != nil {
			return err
		}
		buf.WriteString(formatFloat32Diag(f))
		return nil

	case Float64Type:
		f, err := d.F64()
		if err != nil {
			return err
		}
		buf.WriteString(formatFloat64Diag(f))
		return nil

	case SimpleType:
		v, err := d.Simple()
		if err != nil {
			return err
		}
		buf.WriteString(fmt.Sprintf("simple(%d)", v))
		return nil

	case BreakType:
		return ErrBreak

	default:
		b := d.rest()
		return ReservedInfoError{Major: getMajorType(b[0]), Info: getAddInfo(b[0])}
	}
}

// diagChunks renders an indefinite-length string as its chunk sequence,
// matching the RFC's (_ h'..', h'..') notation.
func diagChunks(buf *ByteBuffer, d *Decoder, major uint8) error {
	d.pos++
	buf.WriteString("(_")
	first := true
	for {
		if d.pos >= len(d.buf) {
			return ErrShortBytes
		}
		if d.IsBreak() {
			d.pos++
			buf.WriteString(")")
			return nil
		}
		sz, n, err := d.readArg(major)
		if err != nil {
			return err
		}
		rem := d.rest()
		if uint64(len(rem)-n) < sz {
			return ErrShortBytes
		}
		chunk := rem[n : n+int(sz)]
		d.pos += n + int(sz)
		diagSep(buf, &first)
		if major == majorTypeBytes {
			writeHexLiteral(buf, chunk)
		} else {
			buf.WriteString(strconv.Quote(string(chunk)))
		}
	}
}

func diagSep(buf *ByteBuffer, first *bool) {
	if *first {
		buf.WriteString(" ")
		*first = false
	} else {
		buf.WriteString(", ")
	}
}

func writeHexLiteral(buf *ByteBuffer, bs []byte) {
	buf.WriteString("h'")
	dst := buf.Extend(hex.EncodedLen(len(bs)))
	hex.Encode(dst, bs)
	buf.WriteString("'")
}

// formatFloat64Diag returns a diagnostic string for float64 matching RFC examples
func formatFloat64Diag(f float64) string {
	if math.IsInf(f, +1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	if math.IsNaN(f) {
		return "NaN"
	}
	af := math.Abs(f)
	if af == 0 || af < 1e15 {
		return withDecimalPoint(strconv.FormatFloat(f, 'f', -1, 64))
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// formatFloat32Diag returns a diagnostic string for float32 matching RFC examples
func formatFloat32Diag(f float32) string {
	if math.IsInf(float64(f), +1) {
		return "Infinity"
	}
	if math.IsInf(float64(f), -1) {
		return "-Infinity"
	}
	if math.IsNaN(float64(f)) {
		return "NaN"
	}
	af := math.Abs(float64(f))
	if af == 0 || af < 1e15 {
		return withDecimalPoint(strconv.FormatFloat(float64(f), 'f', -1, 32))
	}
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

// withDecimalPoint keeps float output distinguishable from integers,
// matching the RFC's "1.0" rather than "1".
func withDecimalPoint(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return s
		}
	}
	return s + ".0"
}
