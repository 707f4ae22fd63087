package fields

import (
	"fmt"
	"math"

	"github.com/jackhart/jmisb/pkg/bits"
	"github.com/jackhart/jmisb/pkg/imap"
)

// Real is a bounded floating point value mapped to an integer.
type Real struct {
	name    string
	format  string
	value   float64
	encoded []byte
}

// NewReal allocates a Real.
// The range of the value is the one of the encoder.
func NewReal(name string, format string, enc *imap.Encoder, v float64) (*Real, error) {
	encoded, err := enc.Encode(v)
	if err != nil {
		return nil, err
	}

	return &Real{
		name:    name,
		format:  format,
		value:   v,
		encoded: encoded,
	}, nil
}

// DecodeReal decodes a Real.
func DecodeReal(name string, format string, enc *imap.Encoder, data []byte) (*Real, error) {
	v, err := enc.Decode(data)
	if err != nil {
		return nil, err
	}

	return &Real{
		name:    name,
		format:  format,
		value:   v,
		encoded: append([]byte(nil), data...),
	}, nil
}

// Value returns the value.
func (r *Real) Value() float64 {
	return r.value
}

// Bytes implements lds.Value.
func (r *Real) Bytes() []byte {
	return r.encoded
}

// DisplayName implements lds.Value.
func (r *Real) DisplayName() string {
	return r.name
}

// DisplayableValue implements lds.Value.
func (r *Real) DisplayableValue() string {
	return fmt.Sprintf(r.format, r.value)
}

// SignedAngle is an angle in [-Limit, Limit] mapped linearly to a
// two's complement integer whose most negative value is an error indicator.
type SignedAngle struct {
	name  string
	limit float64
	width int
	value float64
}

func checkAngleWidth(width int) error {
	if width != 2 && width != 4 {
		return fmt.Errorf("unsupported width: %d", width)
	}
	return nil
}

func angleScale(width int) float64 {
	return float64(uint64(1)<<(width*8-1) - 1)
}

// NewSignedAngle allocates a SignedAngle.
func NewSignedAngle(name string, limit float64, width int, v float64) (*SignedAngle, error) {
	err := checkAngleWidth(width)
	if err != nil {
		return nil, err
	}

	if math.IsNaN(v) || v < -limit || v > limit {
		return nil, fmt.Errorf("%w: %v is not in [%v, %v]", ErrOutOfRange, v, -limit, limit)
	}

	return &SignedAngle{
		name:  name,
		limit: limit,
		width: width,
		value: v,
	}, nil
}

// DecodeSignedAngle decodes a SignedAngle.
func DecodeSignedAngle(name string, limit float64, width int, data []byte) (*SignedAngle, error) {
	err := checkAngleWidth(width)
	if err != nil {
		return nil, err
	}

	if len(data) != width {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidLength, width, len(data))
	}

	i, err := bits.ReadInt(data, 0, width)
	if err != nil {
		return nil, err
	}

	scale := angleScale(width)
	if i < -int64(scale) {
		return nil, ErrReservedValue
	}

	return &SignedAngle{
		name:  name,
		limit: limit,
		width: width,
		value: float64(i) / scale * limit,
	}, nil
}

// Value returns the angle in degrees.
func (a *SignedAngle) Value() float64 {
	return a.value
}

// Bytes implements lds.Value.
func (a *SignedAngle) Bytes() []byte {
	i := int64(math.Round(a.value / a.limit * angleScale(a.width)))
	return bits.AppendUint(nil, uint64(i), a.width)
}

// DisplayName implements lds.Value.
func (a *SignedAngle) DisplayName() string {
	return a.name
}

// DisplayableValue implements lds.Value.
func (a *SignedAngle) DisplayableValue() string {
	return fmt.Sprintf("%.4f°", a.value)
}
