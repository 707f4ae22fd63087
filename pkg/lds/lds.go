// Package lds contains a parser and a serializer of KLV Local Data Sets,
// that are sets of tag/length/value fields terminated by a checksum.
// Specification: SMPTE ST 336, MISB ST 0601
package lds

import (
	"errors"
	"fmt"

	"github.com/jackhart/jmisb/pkg/klv"
)

// ErrTruncatedField is returned when a field exceeds the declared size of the set.
var ErrTruncatedField = errors.New("truncated field")

// ErrUnknownTag is returned when a field has a tag that is not in the dictionary.
var ErrUnknownTag = errors.New("unknown tag")

// ErrChecksumMismatch is returned when the checksum field does not match the content.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// ErrMissingChecksum is returned when a set does not contain a checksum field.
var ErrMissingChecksum = errors.New("missing checksum")

// ErrUnexpectedLabel is returned when a packet does not start with the
// Universal Label of the dictionary.
var ErrUnexpectedLabel = errors.New("unexpected universal label")

// FieldError is returned when the value of a field cannot be decoded.
type FieldError struct {
	Tag uint64
	Err error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("unable to decode tag %d: %v", e.Tag, e.Err)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// Value is the value of a field.
type Value interface {
	// Bytes returns the encoded value.
	// An empty result causes the field to be omitted from the set.
	Bytes() []byte

	// DisplayName returns the name of the field.
	DisplayName() string

	// DisplayableValue returns the value in human-readable form.
	DisplayableValue() string
}

// Dictionary maps the tags of a local set to their values.
// A Dictionary must be safe for concurrent use.
type Dictionary interface {
	// UniversalLabel returns the key of the local set.
	UniversalLabel() klv.UniversalLabel

	// ChecksumTag returns the tag of the checksum field.
	ChecksumTag() uint64

	// Known checks whether a tag belongs to the local set.
	Known(tag uint64) bool

	// Decode decodes the value of a field.
	Decode(tag uint64, data []byte) (Value, error)
}
