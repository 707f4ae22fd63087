// Package st1206 contains value types of the SAR Motion Imagery Local Set.
// Specification: MISB ST 1206
package st1206

import (
	"github.com/jackhart/jmisb/pkg/fields"
	"github.com/jackhart/jmisb/pkg/imap"
)

var (
	angle90Encoder  = imap.MustNewEncoder(-90, 90, 2, imap.Fail)
	distanceEncoder = imap.MustNewEncoder(0, 1e6, 4, imap.Fail)
)

// NewGrazingAngle allocates a grazing angle in degrees, in [-90, 90].
func NewGrazingAngle(v float64) (*fields.Real, error) {
	return fields.NewReal("Grazing Angle", "%.4f°", angle90Encoder, v)
}

// DecodeGrazingAngle decodes a grazing angle.
func DecodeGrazingAngle(data []byte) (*fields.Real, error) {
	return fields.DecodeReal("Grazing Angle", "%.4f°", angle90Encoder, data)
}

// NewRangeResolution allocates a range resolution in meters, in [0, 1e6].
func NewRangeResolution(v float64) (*fields.Real, error) {
	return fields.NewReal("Range Resolution", "%.2fm", distanceEncoder, v)
}

// DecodeRangeResolution decodes a range resolution.
func DecodeRangeResolution(data []byte) (*fields.Real, error) {
	return fields.DecodeReal("Range Resolution", "%.2fm", distanceEncoder, data)
}
