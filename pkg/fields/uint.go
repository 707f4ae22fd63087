package fields

import (
	"fmt"

	"github.com/jackhart/jmisb/pkg/bits"
)

func checkWidth(width int) error {
	switch width {
	case 1, 2, 4, 8:
		return nil
	}
	return fmt.Errorf("unsupported width: %d", width)
}

// Uint is a fixed-width big-endian unsigned integer.
type Uint struct {
	Name  string
	Unit  string
	Width int
	Value uint64
}

// NewUint allocates a Uint.
func NewUint(name string, unit string, width int, v uint64) (*Uint, error) {
	err := checkWidth(width)
	if err != nil {
		return nil, err
	}

	if width < 8 && v >= (1<<(width*8)) {
		return nil, fmt.Errorf("%w: %d does not fit in %d bytes", ErrOutOfRange, v, width)
	}

	return &Uint{
		Name:  name,
		Unit:  unit,
		Width: width,
		Value: v,
	}, nil
}

// DecodeUint decodes a Uint.
func DecodeUint(name string, unit string, width int, data []byte) (*Uint, error) {
	err := checkWidth(width)
	if err != nil {
		return nil, err
	}

	if len(data) != width {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidLength, width, len(data))
	}

	v, err := bits.ReadUint(data, 0, width)
	if err != nil {
		return nil, err
	}

	return &Uint{
		Name:  name,
		Unit:  unit,
		Width: width,
		Value: v,
	}, nil
}

// Bytes implements lds.Value.
func (u *Uint) Bytes() []byte {
	return bits.AppendUint(nil, u.Value, u.Width)
}

// DisplayName implements lds.Value.
func (u *Uint) DisplayName() string {
	return u.Name
}

// DisplayableValue implements lds.Value.
func (u *Uint) DisplayableValue() string {
	return fmt.Sprintf("%d%s", u.Value, u.Unit)
}

// VariableUint is an unsigned integer encoded with the minimum number of bytes.
type VariableUint struct {
	Name  string
	Min   uint64
	Max   uint64
	Value uint64
}

// NewVariableUint allocates a VariableUint.
func NewVariableUint(name string, lower uint64, upper uint64, v uint64) (*VariableUint, error) {
	if v < lower || v > upper {
		return nil, fmt.Errorf("%w: %d is not in [%d, %d]", ErrOutOfRange, v, lower, upper)
	}

	return &VariableUint{
		Name:  name,
		Min:   lower,
		Max:   upper,
		Value: v,
	}, nil
}

// DecodeVariableUint decodes a VariableUint.
func DecodeVariableUint(name string, lower uint64, upper uint64, data []byte) (*VariableUint, error) {
	v, err := bits.ReadVariableUint(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLength, err)
	}

	return NewVariableUint(name, lower, upper, v)
}

// Bytes implements lds.Value.
func (u *VariableUint) Bytes() []byte {
	return bits.AppendVariableUint(nil, u.Value)
}

// DisplayName implements lds.Value.
func (u *VariableUint) DisplayName() string {
	return u.Name
}

// DisplayableValue implements lds.Value.
func (u *VariableUint) DisplayableValue() string {
	return fmt.Sprintf("%d", u.Value)
}
