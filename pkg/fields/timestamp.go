package fields

import (
	"fmt"
	"time"

	"github.com/jackhart/jmisb/pkg/bits"
	"github.com/jackhart/jmisb/pkg/misbtime"
)

// PrecisionTimeStamp is a point in time with microsecond resolution.
type PrecisionTimeStamp struct {
	name    string
	value   time.Time
	encoded []byte
}

// NewPrecisionTimeStamp allocates a PrecisionTimeStamp.
func NewPrecisionTimeStamp(name string, t time.Time) (*PrecisionTimeStamp, error) {
	encoded, err := misbtime.Marshal(t)
	if err != nil {
		return nil, err
	}

	return &PrecisionTimeStamp{
		name:    name,
		value:   t.Truncate(time.Microsecond),
		encoded: encoded,
	}, nil
}

// DecodePrecisionTimeStamp decodes a PrecisionTimeStamp.
func DecodePrecisionTimeStamp(name string, data []byte) (*PrecisionTimeStamp, error) {
	if len(data) != misbtime.Size {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidLength, misbtime.Size, len(data))
	}

	v, err := bits.ReadUint(data, 0, misbtime.Size)
	if err != nil {
		return nil, err
	}

	return &PrecisionTimeStamp{
		name:    name,
		value:   misbtime.Decode(v),
		encoded: append([]byte(nil), data...),
	}, nil
}

// Time returns the time.
func (p *PrecisionTimeStamp) Time() time.Time {
	return p.value
}

// Bytes implements lds.Value.
func (p *PrecisionTimeStamp) Bytes() []byte {
	return p.encoded
}

// DisplayName implements lds.Value.
func (p *PrecisionTimeStamp) DisplayName() string {
	return p.name
}

// DisplayableValue implements lds.Value.
func (p *PrecisionTimeStamp) DisplayableValue() string {
	return p.value.UTC().Format("2006-01-02T15:04:05.000000Z")
}
