// Package imap contains a quantizer that maps bounded real numbers
// to fixed-width unsigned integers and back (IMAP-style mapping).
package imap

import (
	"errors"
	"fmt"
	"math"

	"github.com/jackhart/jmisb/pkg/bits"
)

// ErrOutOfRange is returned when a value lies outside the domain
// and the encoder is configured to fail.
var ErrOutOfRange = errors.New("value out of range")

// ErrInvalidEncoding is returned when a buffer has the wrong size.
var ErrInvalidEncoding = errors.New("invalid encoding")

// ErrInvalidDomain is returned when an encoder is created with invalid parameters.
var ErrInvalidDomain = errors.New("invalid domain")

// OutOfRangeBehaviour is the behaviour of an Encoder
// when a value outside the domain is encoded.
type OutOfRangeBehaviour int

// behaviours.
const (
	// Clamp replaces the value with the nearest bound.
	Clamp OutOfRangeBehaviour = iota

	// Fail returns ErrOutOfRange.
	Fail
)

// String implements fmt.Stringer.
func (b OutOfRangeBehaviour) String() string {
	switch b {
	case Clamp:
		return "clamp"
	case Fail:
		return "fail"
	}
	return "unknown"
}

// Encoder is a quantizer of real numbers in [min, max]
// into unsigned big-endian integers of a fixed size.
// It is immutable and can be used by multiple goroutines.
//
// Arithmetic is performed in float64. A decoded value lies within
// Resolution()/2 of the encoded one, plus the float64 rounding error
// of the domain, which is at most two ULPs of max(|min|, |max|).
// With lengths of 7 and 8 bytes, Resolution() is usually smaller than that
// rounding error, which then dominates.
type Encoder struct {
	min       float64
	max       float64
	length    int
	behaviour OutOfRangeBehaviour

	maxInt uint64
}

// NewEncoder allocates an Encoder.
func NewEncoder(lower float64, upper float64, length int, behaviour OutOfRangeBehaviour) (*Encoder, error) {
	if math.IsNaN(lower) || math.IsNaN(upper) || math.IsInf(lower, 0) || math.IsInf(upper, 0) {
		return nil, fmt.Errorf("%w: bounds must be finite", ErrInvalidDomain)
	}
	if lower >= upper {
		return nil, fmt.Errorf("%w: min (%v) must be less than max (%v)", ErrInvalidDomain, lower, upper)
	}
	if length < 1 || length > 8 {
		return nil, fmt.Errorf("%w: length must be between 1 and 8, got %d", ErrInvalidDomain, length)
	}
	if behaviour != Clamp && behaviour != Fail {
		return nil, fmt.Errorf("%w: unsupported behaviour %v", ErrInvalidDomain, behaviour)
	}

	return &Encoder{
		min:       lower,
		max:       upper,
		length:    length,
		behaviour: behaviour,
		maxInt:    math.MaxUint64 >> (64 - 8*length),
	}, nil
}

// MustNewEncoder is like NewEncoder but panics in case of error.
// It is meant for package-level encoders with constant parameters.
func MustNewEncoder(lower float64, upper float64, length int, behaviour OutOfRangeBehaviour) *Encoder {
	e, err := NewEncoder(lower, upper, length, behaviour)
	if err != nil {
		panic(err)
	}
	return e
}

// Min returns the lower bound of the domain.
func (e *Encoder) Min() float64 {
	return e.min
}

// Max returns the upper bound of the domain.
func (e *Encoder) Max() float64 {
	return e.max
}

// Length returns the size of encoded values in bytes.
func (e *Encoder) Length() int {
	return e.length
}

// Resolution returns the distance between two consecutive encoded values.
func (e *Encoder) Resolution() float64 {
	return (e.max - e.min) / float64(e.maxInt)
}

func (e *Encoder) quantize(v float64) (uint64, error) {
	if math.IsNaN(v) {
		return 0, fmt.Errorf("%w: NaN", ErrOutOfRange)
	}

	if v < e.min || v > e.max {
		if e.behaviour == Fail {
			return 0, fmt.Errorf("%w: %v is not in [%v, %v]", ErrOutOfRange, v, e.min, e.max)
		}
		v = math.Max(e.min, math.Min(e.max, v))
	}

	step := math.Round((v - e.min) / (e.max - e.min) * float64(e.maxInt))

	// absorb rounding errors at the bounds
	switch {
	case step <= 0:
		return 0, nil
	case step >= float64(e.maxInt):
		return e.maxInt, nil
	}

	return uint64(step), nil
}

// Encode encodes a value.
func (e *Encoder) Encode(v float64) ([]byte, error) {
	return e.AppendEncode(make([]byte, 0, e.length), v)
}

// AppendEncode appends the encoding of a value to dst.
func (e *Encoder) AppendEncode(dst []byte, v float64) ([]byte, error) {
	step, err := e.quantize(v)
	if err != nil {
		return nil, err
	}
	return bits.AppendUint(dst, step, e.length), nil
}

// Decode decodes a value.
func (e *Encoder) Decode(buf []byte) (float64, error) {
	if len(buf) != e.length {
		return 0, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidEncoding, e.length, len(buf))
	}
	return e.DecodeAt(buf, 0)
}

// DecodeAt decodes a value that starts at the given offset of a buffer.
func (e *Encoder) DecodeAt(buf []byte, offset int) (float64, error) {
	if offset < 0 || (offset+e.length) > len(buf) {
		return 0, fmt.Errorf("%w: expected %d bytes at offset %d, buffer is %d bytes",
			ErrInvalidEncoding, e.length, offset, len(buf))
	}

	step, err := bits.ReadUint(buf, offset, e.length)
	if err != nil {
		return 0, err
	}

	return e.min + (float64(step)/float64(e.maxInt))*(e.max-e.min), nil
}
