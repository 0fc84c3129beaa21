package cbor

import "unicode/utf8"

// isUTF8Valid validates UTF-8 for a byte slice. It is a variable so an
// accelerated implementation can be installed via build tags.
var isUTF8Valid = func(b []byte) bool { return utf8.Valid(b) }
