// Package st0806 contains a subset of the Remote Video Terminal Local Set.
// Specification: MISB ST 0806
package st0806

import (
	"fmt"
	"time"

	"github.com/jackhart/jmisb/pkg/fields"
	"github.com/jackhart/jmisb/pkg/klv"
	"github.com/jackhart/jmisb/pkg/lds"
)

// Tag is a tag of the RVT Local Set.
type Tag uint64

// tags.
const (
	Checksum                  Tag = 1
	UserDefinedTimeStamp      Tag = 2
	PlatformTrueAirspeed      Tag = 3
	PlatformIndicatedAirspeed Tag = 4
	FrameCode                 Tag = 7
	VersionNumber             Tag = 8
)

var names = map[Tag]string{
	Checksum:                  "Checksum",
	UserDefinedTimeStamp:      "User Defined Time Stamp",
	PlatformTrueAirspeed:      "Platform True Airspeed (TAS)",
	PlatformIndicatedAirspeed: "Platform Indicated Airspeed (IAS)",
	FrameCode:                 "Frame Code",
	VersionNumber:             "UAS LS Version Number",
}

// String implements fmt.Stringer.
func (t Tag) String() string {
	if name, ok := names[t]; ok {
		return name
	}
	return fmt.Sprintf("Tag(%d)", uint64(t))
}

// NewUserDefinedTimeStamp allocates the value of tag 2.
func NewUserDefinedTimeStamp(t time.Time) (*fields.PrecisionTimeStamp, error) {
	return fields.NewPrecisionTimeStamp(UserDefinedTimeStamp.String(), t)
}

// NewPlatformTrueAirspeed allocates the value of tag 3, in meters per second.
func NewPlatformTrueAirspeed(v uint16) *fields.Uint {
	return &fields.Uint{Name: PlatformTrueAirspeed.String(), Unit: "m/s", Width: 2, Value: uint64(v)}
}

// NewPlatformIndicatedAirspeed allocates the value of tag 4, in meters per second.
func NewPlatformIndicatedAirspeed(v uint16) *fields.Uint {
	return &fields.Uint{Name: PlatformIndicatedAirspeed.String(), Unit: "m/s", Width: 2, Value: uint64(v)}
}

// NewFrameCode allocates the value of tag 7.
func NewFrameCode(v uint32) *fields.Uint {
	return &fields.Uint{Name: FrameCode.String(), Width: 4, Value: uint64(v)}
}

// NewVersionNumber allocates the value of tag 8.
func NewVersionNumber(v uint8) *fields.Uint {
	return &fields.Uint{Name: VersionNumber.String(), Width: 1, Value: uint64(v)}
}

type dictionary struct{}

func (dictionary) UniversalLabel() klv.UniversalLabel {
	return klv.RVTLocalSet
}

func (dictionary) ChecksumTag() uint64 {
	return uint64(Checksum)
}

func (dictionary) Known(tag uint64) bool {
	_, ok := names[Tag(tag)]
	return ok
}

func (dictionary) Decode(tag uint64, data []byte) (lds.Value, error) {
	t := Tag(tag)

	switch t {
	case UserDefinedTimeStamp:
		return fields.DecodePrecisionTimeStamp(t.String(), data)

	case PlatformTrueAirspeed, PlatformIndicatedAirspeed:
		return fields.DecodeUint(t.String(), "m/s", 2, data)

	case FrameCode:
		return fields.DecodeUint(t.String(), "", 4, data)

	case VersionNumber:
		return fields.DecodeUint(t.String(), "", 1, data)
	}

	return nil, fmt.Errorf("%w: %d", lds.ErrUnknownTag, tag)
}

// Dictionary is the dictionary of the RVT Local Set.
var Dictionary lds.Dictionary = dictionary{}

// NewMessage allocates a RVT message.
func NewMessage(values map[Tag]lds.Value) *lds.Message {
	m := make(map[uint64]lds.Value, len(values))
	for t, v := range values {
		m[uint64(t)] = v
	}
	return lds.NewMessage(Dictionary, m)
}

// Unmarshal decodes a RVT message.
func Unmarshal(buf []byte) (*lds.Message, error) {
	return lds.Unmarshal(Dictionary, buf)
}
