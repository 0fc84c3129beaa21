package cbor

import (
	"errors"
	"strconv"
)

const resumableDefault = false

var (
	// ErrShortBytes is returned when the input ends before the declared
	// length of the item being decoded (underflow).
	ErrShortBytes error = errShort{}

	// ErrMaxDepthExceeded is returned when nested container or tag
	// recursion exceeds the configured depth budget.
	ErrMaxDepthExceeded error = errors.New("cbor: max depth exceeded")

	// ErrBufferFull is returned by a FixedBuffer sink when a write would
	// exceed its capacity. It is the Encoder's only failure condition on
	// that sink.
	ErrBufferFull error = errors.New("cbor: fixed buffer full")

	// ErrNotNull is returned when a null item was expected.
	ErrNotNull error = errors.New("cbor: not null")

	// ErrInvalidUTF8 is returned when a text string contains invalid UTF-8.
	ErrInvalidUTF8 error = errors.New("cbor: invalid UTF-8 in text string")

	// ErrNonCanonicalInteger is returned in strict mode when an integer
	// argument uses a wider encoding than necessary.
	ErrNonCanonicalInteger error = errors.New("cbor: non-canonical integer encoding")

	// ErrNonCanonicalLength is returned in strict mode when a container
	// or string length uses a wider encoding than necessary.
	ErrNonCanonicalLength error = errors.New("cbor: non-canonical length encoding")

	// ErrNonCanonicalFloat is returned in strict mode when a float is not
	// encoded in the shortest width that preserves its value.
	ErrNonCanonicalFloat = errors.New("cbor: non-canonical float encoding")

	// ErrIndefiniteForbidden is returned when an indefinite-length item is
	// present but deterministic decoding forbids it.
	ErrIndefiniteForbidden error = errors.New("cbor: indefinite-length item not allowed in deterministic mode")

	// ErrContainerTooLarge is returned when a container length exceeds the
	// configured Decoder limit.
	ErrContainerTooLarge = errors.New("cbor: container too large")

	// ErrBreak is returned by typed reads that encounter a break marker
	// where a value was expected.
	ErrBreak error = errors.New("cbor: unexpected break marker")

	// ErrUnionShape is returned when a sum-type envelope is not the
	// expected 2-element array of variant index and payload.
	ErrUnionShape error = errors.New("cbor: malformed union envelope")
)

// Error is the interface satisfied by all errors that originate from
// this package.
type Error interface {
	error

	// Resumable reports whether decoding may continue past the error,
	// or whether the stream is malformed and unrecoverable.
	Resumable() bool
}

// contextError allows Error instances to be enhanced with additional
// context about their origin.
type contextError interface {
	Error

	// withContext must not modify the error instance - it must clone and
	// return a new error with the context added.
	withContext(ctx string) error
}

// Cause returns the underlying cause of an error that has been wrapped
// with additional context.
func Cause(e error) error {
	out := e
	if e, ok := e.(errWrapped); ok && e.cause != nil {
		out = e.cause
	}
	return out
}

// Resumable reports whether decoding may continue past the error.
func Resumable(e error) bool {
	if e, ok := e.(Error); ok {
		return e.Resumable()
	}
	return resumableDefault
}

// WrapError wraps an error with additional context that allows the part
// of the serialized type that caused the problem to be identified.
// Underlying errors can be retrieved using Cause().
//
// ErrShortBytes is never wrapped so that callers can compare it directly.
func WrapError(err error, ctx ...any) error {
	switch e := err.(type) {
	case errShort:
		return e
	case contextError:
		return e.withContext(ctxString(ctx))
	default:
		return errWrapped{cause: err, ctx: ctxString(ctx)}
	}
}

func ctxString(ctx []any) string {
	out := ""
	for _, c := range ctx {
		switch v := c.(type) {
		case string:
			out = addCtx(out, v)
		case int:
			out = addCtx(out, strconv.Itoa(v))
		case uint32:
			out = addCtx(out, strconv.FormatUint(uint64(v), 10))
		default:
			out = addCtx(out, "?")
		}
	}
	return out
}

func addCtx(ctx, add string) string {
	if ctx != "" {
		return add + "/" + ctx
	}
	return add
}

// errWrapped allows arbitrary errors passed to WrapError to be enhanced
// with context and unwrapped with Cause().
type errWrapped struct {
	cause error
	ctx   string
}

func (e errWrapped) Error() string {
	if e.ctx != "" {
		return e.cause.Error() + " at " + e.ctx
	}
	return e.cause.Error()
}

func (e errWrapped) Resumable() bool {
	if e, ok := e.cause.(Error); ok {
		return e.Resumable()
	}
	return resumableDefault
}

// Unwrap returns the cause.
func (e errWrapped) Unwrap() error { return e.cause }

type errShort struct{}

func (e errShort) Error() string   { return "cbor: too few bytes left to read object" }
func (e errShort) Resumable() bool { return false }

// TypeError is returned when a typed read is unsuitable for the item
// actually present on the wire.
type TypeError struct {
	Method  Type // type expected by the method
	Encoded Type // type actually encoded

	ctx string
}

// Error implements the error interface.
func (t TypeError) Error() string {
	out := "cbor: attempted to decode type " + quoteStr(t.Encoded.String()) + " with method for " + quoteStr(t.Method.String())
	if t.ctx != "" {
		out += " at " + t.ctx
	}
	return out
}

// Resumable returns 'true' for TypeErrors.
func (t TypeError) Resumable() bool { return true }

func (t TypeError) withContext(ctx string) error { t.ctx = addCtx(t.ctx, ctx); return t }

// InvalidPrefixError is returned when an encoding uses a major type or
// additional info that is not valid where it appears. This kind of error
// is unrecoverable.
type InvalidPrefixError struct {
	Want uint8
	Got  uint8
}

// Error implements the error interface.
func (i InvalidPrefixError) Error() string {
	return "cbor: expected major type " + strconv.Itoa(int(i.Want)) + " but got " + strconv.Itoa(int(i.Got))
}

// Resumable returns 'false' for InvalidPrefixErrors.
func (i InvalidPrefixError) Resumable() bool { return false }

// badPrefix builds the type-mismatch error for an unexpected major type.
func badPrefix(want uint8, got uint8) error {
	return InvalidPrefixError{Want: want, Got: got}
}

// ReservedInfoError is returned when an initial byte carries one of the
// reserved additional info values 28-30, which no valid CBOR form uses.
type ReservedInfoError struct {
	Major uint8
	Info  uint8
}

// Error implements the error interface.
func (r ReservedInfoError) Error() string {
	return "cbor: reserved additional info " + strconv.Itoa(int(r.Info)) +
		" in major type " + strconv.Itoa(int(r.Major))
}

// Resumable returns 'false' for ReservedInfoErrors.
func (r ReservedInfoError) Resumable() bool { return false }

// IntOverflow is returned when a call would downcast an integer to a
// type with too few bits to hold its value.
type IntOverflow struct {
	Value         int64 // the value of the integer
	FailedBitsize int   // the bit size that the int64 could not fit into
	ctx           string
}

// Error implements the error interface.
func (i IntOverflow) Error() string {
	str := "cbor: " + strconv.FormatInt(i.Value, 10) + " overflows int" + strconv.Itoa(i.FailedBitsize)
	if i.ctx != "" {
		str += " at " + i.ctx
	}
	return str
}

// Resumable is always 'true' for overflows.
func (i IntOverflow) Resumable() bool { return true }

func (i IntOverflow) withContext(ctx string) error { i.ctx = addCtx(i.ctx, ctx); return i }

// UintOverflow is returned when a call would downcast an unsigned
// integer to a type with too few bits to hold its value.
type UintOverflow struct {
	Value         uint64 // value of the uint
	FailedBitsize int    // the bit size that couldn't fit the value
	ctx           string
}

// Error implements the error interface.
func (u UintOverflow) Error() string {
	str := "cbor: " + strconv.FormatUint(u.Value, 10) + " overflows uint" + strconv.Itoa(u.FailedBitsize)
	if u.ctx != "" {
		str += " at " + u.ctx
	}
	return str
}

// Resumable is always 'true' for overflows.
func (u UintOverflow) Resumable() bool { return true }

func (u UintOverflow) withContext(ctx string) error { u.ctx = addCtx(u.ctx, ctx); return u }

// MissingFieldError is returned by structural decoders when a required
// field is absent from the input and has no registered default.
type MissingFieldError struct {
	Index uint32 // wire index of the field
	Field string // qualified Go name, e.g. "Device.Serial"
}

// Error implements the error interface.
func (m MissingFieldError) Error() string {
	return "cbor: missing field " + quoteStr(m.Field) + " (index " + strconv.FormatUint(uint64(m.Index), 10) + ")"
}

// Resumable returns 'true' for MissingFieldErrors: the stream itself is
// well-formed, only the value is incomplete.
func (m MissingFieldError) Resumable() bool { return true }

// UnknownVariantError is returned by union decoders when the variant
// index on the wire matches no known variant.
type UnknownVariantError struct {
	Index uint32
}

// Error implements the error interface.
func (u UnknownVariantError) Error() string {
	return "cbor: unknown variant index " + strconv.FormatUint(uint64(u.Index), 10)
}

// Resumable returns 'true' for UnknownVariantErrors.
func (u UnknownVariantError) Resumable() bool { return true }

func quoteStr(s string) string { return "`" + s + "`" }
