// Package st0903 contains value types of the Video Moving Target Indicator Local Set.
// Specification: MISB ST 0903
package st0903

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/jackhart/jmisb/pkg/fields"
)

// TrackID identifies a target track.
type TrackID struct {
	ID uuid.UUID
}

// NewTrackID allocates a TrackID with a random identifier.
func NewTrackID() *TrackID {
	return &TrackID{ID: uuid.New()}
}

// DecodeTrackID decodes a TrackID.
func DecodeTrackID(data []byte) (*TrackID, error) {
	id, err := uuid.FromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fields.ErrInvalidLength, err)
	}
	return &TrackID{ID: id}, nil
}

// Bytes implements lds.Value.
func (t *TrackID) Bytes() []byte {
	buf := make([]byte, len(t.ID))
	copy(buf, t.ID[:])
	return buf
}

// DisplayName implements lds.Value.
func (t *TrackID) DisplayName() string {
	return "Track ID"
}

// DisplayableValue implements lds.Value.
func (t *TrackID) DisplayableValue() string {
	return t.ID.String()
}

const (
	minPixelIndex = 1
	maxPixelIndex = math.MaxUint32
)

// NewPixelRow allocates the row of a target centroid.
func NewPixelRow(v uint64) (*fields.VariableUint, error) {
	return fields.NewVariableUint("Centroid Pixel Row", minPixelIndex, maxPixelIndex, v)
}

// DecodePixelRow decodes the row of a target centroid.
func DecodePixelRow(data []byte) (*fields.VariableUint, error) {
	return fields.DecodeVariableUint("Centroid Pixel Row", minPixelIndex, maxPixelIndex, data)
}

// NewPixelColumn allocates the column of a target centroid.
func NewPixelColumn(v uint64) (*fields.VariableUint, error) {
	return fields.NewVariableUint("Centroid Pixel Column", minPixelIndex, maxPixelIndex, v)
}

// DecodePixelColumn decodes the column of a target centroid.
func DecodePixelColumn(data []byte) (*fields.VariableUint, error) {
	return fields.DecodeVariableUint("Centroid Pixel Column", minPixelIndex, maxPixelIndex, data)
}
