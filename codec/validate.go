package cbor

// ValidateWellFormedBytes validates that the next CBOR data item in b is
// well-formed per RFC 8949 and returns the remaining bytes after it.
// Checks performed:
// - Structural correctness of arrays, maps, tags, simple values
// - String UTF-8 validity (for major type 3)
// - Prohibits reserved additional info values 28, 29, 30
func ValidateWellFormedBytes(b []byte) (rest []byte, err error) {
	d := NewDecoder(b)
	if err := d.validate(d.maxDepth); err != nil {
		return b, err
	}
	return d.rest(), nil
}

// ValidateDocument validates that all items of a CBOR sequence in b are
// well-formed until the input is exhausted.
func ValidateDocument(b []byte) error {
	d := NewDecoder(b)
	for d.Remaining() > 0 {
		if err := d.validate(d.maxDepth); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the next item without producing a value, advancing the
// cursor past it on success. Unlike Skip it also validates UTF-8 of text
// strings.
func (d *Decoder) Validate() error {
	start := d.pos
	if err := d.validate(d.maxDepth); err != nil {
		d.pos = start
		return err
	}
	return nil
}

func (d *Decoder) validate(depth int) error {
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
			return d.validate(depth - 1)
		}
		return nil

	case majorTypeBytes:
		// Structure only; chunk content is opaque.
		if add == addInfoIndefinite {
			d.pos++
			for {
				if d.pos >= len(d.buf) {
					return ErrShortBytes
				}
				if d.buf[d.pos] == breakByte {
					d.pos++
					return nil
				}
				sz, n, err := d.readArg(majorTypeBytes)
				if err != nil {
					return err
				}
				if uint64(d.Remaining()-n) < sz {
					return ErrShortBytes
				}
				d.pos += n + int(sz)
			}
		}
		sz, n, err := d.readArg(majorTypeBytes)
		if err != nil {
			return err
		}
		if uint64(len(b)-n) < sz {
			return ErrShortBytes
		}
		d.pos += n + int(sz)
		return nil

	case majorTypeText:
		if add == addInfoIndefinite {
			d.pos++
			for {
				if d.pos >= len(d.buf) {
					return ErrShortBytes
				}
				if d.buf[d.pos] == breakByte {
					d.pos++
					return nil
				}
				chunk, err := d.TextZC()
				if err != nil {
					return err
				}
				if !isUTF8Valid(chunk) {
					return ErrInvalidUTF8
				}
			}
		}
		s, err := d.TextZC()
		if err != nil {
			return err
		}
		if !isUTF8Valid(s) {
			return ErrInvalidUTF8
		}
		return nil

	case majorTypeArray, majorTypeMap:
		items := 1
		if major == majorTypeMap {
			items = 2
		}
		if add == addInfoIndefinite {
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
					if err := d.validate(depth - 1); err != nil {
						return err
					}
				}
			}
		}
		sz, n, err := d.readArg(major)
		if err != nil {
			return err
		}
		d.pos += n
		for i := uint64(0); i < sz; i++ {
			for j := 0; j < items; j++ {
				if err := d.validate(depth - 1); err != nil {
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
				// RFC 8949 3.3: two-byte simple values below 32 are
				// not well-formed.
				return ReservedInfoError{Major: majorTypeSimple, Info: b[1]}
			}
			d.pos += 2
			return nil
		case simpleBreak:
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
