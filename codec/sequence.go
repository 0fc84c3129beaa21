package cbor

// CBOR sequence helpers (RFC 8742). A sequence is a plain concatenation
// of top level items with no framing.

// AppendSequence appends pre-encoded CBOR items to b. Each item must be
// a complete data item.
func AppendSequence(b []byte, items ...[]byte) []byte {
	for _, it := range items {
		b = append(b, it...)
	}
	return b
}

// ForEachSequence calls onItem for every item in the sequence b. The
// slice passed to onItem references b and holds exactly one item.
func ForEachSequence(b []byte, onItem func(item []byte) error) error {
	d := NewDecoder(b)
	for d.Remaining() > 0 {
		item, err := d.Raw()
		if err != nil {
			return err
		}
		if err := onItem(item); err != nil {
			return err
		}
	}
	return nil
}

// SplitSequence splits a sequence into per-item slices referencing b.
func SplitSequence(b []byte) (out [][]byte, err error) {
	err = ForEachSequence(b, func(it []byte) error { out = append(out, it); return nil })
	return out, err
}
