package cbor

import "io"

// Marshal encodes v into a fresh byte slice using a pooled scratch
// buffer for the intermediate rendering.
func Marshal(v Encodable) ([]byte, error) {
	bb := GetByteBuffer()
	defer PutByteBuffer(bb)
	if err := v.EncodeCBOR(NewEncoder(bb)); err != nil {
		return nil, err
	}
	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())
	return out, nil
}

// MarshalContext is Marshal with a caller context visible to EncodeCBOR
// implementations via Encoder.Context.
func MarshalContext(ctx any, v Encodable) ([]byte, error) {
	bb := GetByteBuffer()
	defer PutByteBuffer(bb)
	e := NewEncoder(bb)
	e.SetContext(ctx)
	if err := v.EncodeCBOR(e); err != nil {
		return nil, err
	}
	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())
	return out, nil
}

// Encode writes v to w.
func Encode(w io.Writer, v Encodable) error {
	return v.EncodeCBOR(NewEncoder(w))
}

// Unmarshal decodes one item from b into v. Trailing bytes after the
// item are not an error; use Decoder directly to consume sequences.
func Unmarshal(b []byte, v Decodable) error {
	return v.DecodeCBOR(NewDecoder(b))
}

// UnmarshalContext is Unmarshal with a caller context visible to
// DecodeCBOR implementations via Decoder.Context.
func UnmarshalContext(ctx any, b []byte, v Decodable) error {
	d := NewDecoder(b)
	d.SetContext(ctx)
	return v.DecodeCBOR(d)
}

// Decode decodes one item from b into v.
func Decode(b []byte, v Decodable) error {
	return Unmarshal(b, v)
}

// Sum types travel as a 2-element array of variant index and payload.
// Unit variants carry null as their payload and skip it on decode, so
// the array shape is uniform across variants.

// EncodeUnion writes the union envelope for the given variant index and
// delegates the payload to fn.
func EncodeUnion(e *Encoder, index uint32, fn func(*Encoder) error) error {
	if err := e.ArrayHeader(2); err != nil {
		return err
	}
	if err := e.Uint(uint64(index)); err != nil {
		return err
	}
	return fn(e)
}

// DecodeUnionHeader reads the union envelope and returns the variant
// index. When the envelope used the indefinite form, indefinite is true
// and the caller must consume the break marker after the payload.
func DecodeUnionHeader(d *Decoder) (index uint32, indefinite bool, err error) {
	start := d.Position()
	sz, indef, err := d.ArrayHeader()
	if err != nil {
		return 0, false, err
	}
	if !indef && sz != 2 {
		d.SetPosition(start)
		return 0, false, ErrUnionShape
	}
	idx, err := d.Uint32()
	if err != nil {
		d.SetPosition(start)
		return 0, false, err
	}
	return idx, indef, nil
}

// FixedBuffer is an io.Writer over a caller-provided byte slice. It
// never allocates; writes that would exceed the slice capacity fail
// with ErrBufferFull and consume nothing.
type FixedBuffer struct {
	b []byte
}

// NewFixedBuffer wraps buf as a write sink. The buffer length restarts
// at zero and grows toward cap(buf).
func NewFixedBuffer(buf []byte) *FixedBuffer {
	return &FixedBuffer{b: buf[:0]}
}

// Write implements io.Writer.
func (f *FixedBuffer) Write(p []byte) (int, error) {
	if len(f.b)+len(p) > cap(f.b) {
		return 0, ErrBufferFull
	}
	f.b = append(f.b, p...)
	return len(p), nil
}

// Bytes returns the written region.
func (f *FixedBuffer) Bytes() []byte { return f.b }

// Len returns the number of bytes written.
func (f *FixedBuffer) Len() int { return len(f.b) }

// Reset discards written content, keeping the underlying slice.
func (f *FixedBuffer) Reset() { f.b = f.b[:0] }
