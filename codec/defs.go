// Package cbor implements a compact CBOR (RFC 8949) codec.
//
// The package is organized around three layers:
//
//   - AppendXxxx() functions append single CBOR items to a []byte using
//     minimal-width argument encoding. They are the allocation-free core.
//   - Encoder writes CBOR items to an io.Writer sink; Decoder reads items
//     from a []byte with an explicit cursor, supporting peek, typed reads,
//     Skip over unknown structure, and position save/restore for probing.
//   - The Encodable/Decodable interfaces bind application types to the
//     grammar. Implementations are hand-written or produced by cborgen;
//     structs map to integer-indexed CBOR maps, unions to a 2-element
//     array of variant index and payload.
//
// Once a type satisfies Encodable and Decodable it can be serialized with
//
//	cbor.Marshal(v)
//
// and deserialized with
//
//	cbor.Unmarshal(data, v)
package cbor

// CBOR major types (top 3 bits of the initial byte)
const (
	majorTypeUint   = 0 // unsigned integer
	majorTypeNegInt = 1 // negative integer, value = -1 - argument
	majorTypeBytes  = 2 // byte string
	majorTypeText   = 3 // text string (UTF-8)
	majorTypeArray  = 4 // array
	majorTypeMap    = 5 // map
	majorTypeTag    = 6 // semantic tag
	majorTypeSimple = 7 // simple values, floats, break
)

// Additional info values (low 5 bits of the initial byte)
const (
	// 0-23: argument stored directly
	addInfoDirect     = 23 // max direct value
	addInfoUint8      = 24 // 1-byte argument follows
	addInfoUint16     = 25 // 2-byte argument follows
	addInfoUint32     = 26 // 4-byte argument follows
	addInfoUint64     = 27 // 8-byte argument follows
	addInfoIndefinite = 31 // indefinite length (bytes, text, array, map)
)

// Simple values in major type 7
const (
	simpleFalse     = 20
	simpleTrue      = 21
	simpleNull      = 22
	simpleUndefined = 23
	simpleFloat16   = 25
	simpleFloat32   = 26
	simpleFloat64   = 27
	simpleBreak     = 31
)

// Well-known CBOR semantic tags
const (
	tagDateTimeString   = 0     // RFC3339 date/time string
	tagEpochDateTime    = 1     // Unix timestamp (int or float)
	tagPosBignum        = 2     // positive bignum
	tagNegBignum        = 3     // negative bignum
	tagCBOR             = 24    // embedded CBOR data item
	tagSelfDescribeCBOR = 55799 // self-describe CBOR (0xd9d9f7)
)

const (
	// defaultMaxDepth bounds recursion through nested containers and
	// tags during Skip, full decode and validation. Adversarial input
	// fails with ErrMaxDepthExceeded instead of exhausting the stack.
	// Override per Decoder with SetMaxDepth.
	defaultMaxDepth = 1024
)

// makeByte builds a CBOR initial byte from major type and additional info.
func makeByte(majorType, addInfo uint8) byte {
	return byte((majorType << 5) | addInfo)
}

// getMajorType extracts the major type from a CBOR initial byte.
func getMajorType(b byte) uint8 {
	return (b >> 5) & 0x07
}

// getAddInfo extracts the additional info from a CBOR initial byte.
func getAddInfo(b byte) uint8 {
	return b & 0x1f
}

// breakByte is the encoded break marker (0xff).
const breakByte = byte(majorTypeSimple<<5 | simpleBreak)

// Type classifies the next CBOR item for peek-before-consume dispatch.
type Type byte

// CBOR item types as reported by Decoder.PeekType and NextType.
const (
	InvalidType Type = iota

	UintType      // unsigned integer
	IntType       // negative integer
	BytesType     // byte string
	TextType      // text string
	ArrayType     // array (definite or indefinite)
	MapType       // map (definite or indefinite)
	TagType       // tagged value
	BoolType      // true or false
	NullType      // null
	UndefinedType // undefined
	SimpleType    // other simple value
	Float16Type   // half-precision float
	Float32Type   // single-precision float
	Float64Type   // double-precision float
	BreakType     // break marker (container terminator, never a value)
)

// String implements fmt.Stringer.
func (t Type) String() string {
	switch t {
	case UintType:
		return "uint"
	case IntType:
		return "int"
	case BytesType:
		return "bytes"
	case TextType:
		return "text"
	case ArrayType:
		return "array"
	case MapType:
		return "map"
	case TagType:
		return "tag"
	case BoolType:
		return "bool"
	case NullType:
		return "null"
	case UndefinedType:
		return "undefined"
	case SimpleType:
		return "simple"
	case Float16Type:
		return "float16"
	case Float32Type:
		return "float32"
	case Float64Type:
		return "float64"
	case BreakType:
		return "break"
	default:
		return "<invalid>"
	}
}

// typeOf classifies an initial byte.
func typeOf(b byte) Type {
	switch getMajorType(b) {
	case majorTypeUint:
		return UintType
	case majorTypeNegInt:
		return IntType
	case majorTypeBytes:
		return BytesType
	case majorTypeText:
		return TextType
	case majorTypeArray:
		return ArrayType
	case majorTypeMap:
		return MapType
	case majorTypeTag:
		return TagType
	case majorTypeSimple:
		switch getAddInfo(b) {
		case simpleFalse, simpleTrue:
			return BoolType
		case simpleNull:
			return NullType
		case simpleUndefined:
			return UndefinedType
		case simpleFloat16:
			return Float16Type
		case simpleFloat32:
			return Float32Type
		case simpleFloat64:
			return Float64Type
		case simpleBreak:
			return BreakType
		default:
			return SimpleType
		}
	}
	return InvalidType
}

// NextType returns the type of the next item in the slice.
func NextType(b []byte) Type {
	if len(b) == 0 {
		return InvalidType
	}
	return typeOf(b[0])
}

// Encodable is the interface implemented by types that know how to encode
// themselves as CBOR using an Encoder. Implementations must emit exactly
// one CBOR data item.
type Encodable interface {
	EncodeCBOR(e *Encoder) error
}

// Decodable is the interface implemented by types that know how to decode
// themselves from CBOR using a Decoder. Implementations must consume
// exactly one CBOR data item. On error the receiver's contents are
// unspecified and must not be used.
type Decodable interface {
	DecodeCBOR(d *Decoder) error
}
