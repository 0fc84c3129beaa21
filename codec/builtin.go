package cbor

import (
	"cmp"
	"slices"
)

// Helpers for common composite shapes. Generated code and hand-written
// Encodable/Decodable implementations use these so the wire conventions
// for slices, maps and optional values stay in one place.

// EncodeSlice writes s as a definite-length array, delegating each
// element to fn. A nil slice encodes as a zero-length array, not null;
// use EncodeOption for nullable semantics.
func EncodeSlice[T any](e *Encoder, s []T, fn func(*Encoder, T) error) error {
	if err := e.ArrayHeader(uint32(len(s))); err != nil {
		return err
	}
	for _, v := range s {
		if err := fn(e, v); err != nil {
			return err
		}
	}
	return nil
}

// DecodeSlice reads an array of either length form, building each
// element with fn.
func DecodeSlice[T any](d *Decoder, fn func(*Decoder) (T, error)) ([]T, error) {
	sz, indef, err := d.ArrayHeader()
	if err != nil {
		return nil, err
	}
	if indef {
		var out []T
		for !d.IsBreak() {
			v, err := fn(d)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		if err := d.ReadBreak(); err != nil {
			return nil, err
		}
		return out, nil
	}
	out := make([]T, 0, minCap(sz))
	for i := uint32(0); i < sz; i++ {
		v, err := fn(d)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// minCap bounds the pre-allocation for a declared container length so a
// hostile header cannot force a huge allocation before any element is
// actually present in the input.
func minCap(sz uint32) int {
	const limit = 4096
	if sz > limit {
		return limit
	}
	return int(sz)
}

// EncodeMapOf writes m as a definite-length map. Keys are emitted in
// sorted order so equal maps produce identical bytes.
func EncodeMapOf[K cmp.Ordered, V any](e *Encoder, m map[K]V,
	kfn func(*Encoder, K) error, vfn func(*Encoder, V) error) error {

	if err := e.MapHeader(uint32(len(m))); err != nil {
		return err
	}
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := kfn(e, k); err != nil {
			return err
		}
		if err := vfn(e, m[k]); err != nil {
			return err
		}
	}
	return nil
}

// DecodeMapOf reads a map of either length form, building each entry
// with kfn and vfn. Duplicate keys keep the last value.
func DecodeMapOf[K comparable, V any](d *Decoder,
	kfn func(*Decoder) (K, error), vfn func(*Decoder) (V, error)) (map[K]V, error) {

	sz, indef, err := d.MapHeader()
	if err != nil {
		return nil, err
	}
	out := make(map[K]V, minCap(sz))
	if indef {
		for !d.IsBreak() {
			k, err := kfn(d)
			if err != nil {
				return nil, err
			}
			v, err := vfn(d)
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		if err := d.ReadBreak(); err != nil {
			return nil, err
		}
		return out, nil
	}
	for i := uint32(0); i < sz; i++ {
		k, err := kfn(d)
		if err != nil {
			return nil, err
		}
		v, err := vfn(d)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

// EncodeOption writes null for a nil pointer, otherwise the pointed-to
// value via fn.
func EncodeOption[T any](e *Encoder, p *T, fn func(*Encoder, T) error) error {
	if p == nil {
		return e.Null()
	}
	return fn(e, *p)
}

// DecodeOption reads null as a nil pointer, otherwise a value via fn.
func DecodeOption[T any](d *Decoder, fn func(*Decoder) (T, error)) (*T, error) {
	if d.IsNull() {
		if err := d.Null(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	v, err := fn(d)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
