// Package ber contains the subset of the Basic Encoding Rules used by KLV:
// length fields (short and long form) and BER-OID variable-length integers.
// Specification: SMPTE ST 336, MISB ST 0107
package ber

import (
	"errors"
	"fmt"
)

// ErrMalformedLength is returned when a length field is invalid or truncated.
var ErrMalformedLength = errors.New("malformed BER length")

// ErrMalformedTag is returned when a BER-OID value is truncated or too large.
var ErrMalformedTag = errors.New("malformed BER-OID value")

// ErrTruncated is wrapped together with ErrMalformedLength or ErrMalformedTag
// when decoding ran past the end of the buffer.
var ErrTruncated = errors.New("unexpected end of buffer")

// DecodeError is returned when decoding fails.
// It carries the offset of the field that could not be decoded.
type DecodeError struct {
	Offset int
	Err    error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Form is the form of an encoded BER value.
type Form int

// forms.
const (
	ShortForm Form = iota
	LongForm
	OIDForm
)

// String implements fmt.Stringer.
func (f Form) String() string {
	switch f {
	case ShortForm:
		return "short"
	case LongForm:
		return "long"
	case OIDForm:
		return "OID"
	}
	return "unknown"
}

// maximum value of a short form length.
const maxShortForm = 0x7f

// LengthField is a decoded length.
type LengthField struct {
	// decoded value.
	Value uint64

	// number of bytes used to encode the length itself.
	SizeOfLength int
}

// Field is a decoded BER-OID value.
type Field struct {
	// decoded value.
	Value uint64

	// number of bytes consumed.
	Length int
}
