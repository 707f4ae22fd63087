// Package st0601 contains a subset of the UAS Datalink Local Set.
// Specification: MISB ST 0601
package st0601

import (
	"fmt"
	"time"

	"github.com/jackhart/jmisb/pkg/fields"
	"github.com/jackhart/jmisb/pkg/imap"
	"github.com/jackhart/jmisb/pkg/klv"
	"github.com/jackhart/jmisb/pkg/lds"
)

// Tag is a tag of the UAS Datalink Local Set.
type Tag uint64

// tags.
const (
	Checksum                   Tag = 1
	PrecisionTimeStamp         Tag = 2
	MissionID                  Tag = 3
	PlatformTailNumber         Tag = 4
	PlatformHeadingAngle       Tag = 5
	SensorLatitude             Tag = 13
	SensorLongitude            Tag = 14
	SensorTrueAltitude         Tag = 15
	FrameCenterLatitude        Tag = 23
	FrameCenterLongitude       Tag = 24
	TargetLocationLatitude     Tag = 40
	TargetLocationLongitude    Tag = 41
	UASLSVersionNumber         Tag = 65
	AlternatePlatformLatitude  Tag = 67
	AlternatePlatformLongitude Tag = 68
	CornerLatitudePoint1       Tag = 82
	CornerLongitudePoint1      Tag = 83
	CornerLatitudePoint2       Tag = 84
	CornerLongitudePoint2      Tag = 85
	CornerLatitudePoint3       Tag = 86
	CornerLongitudePoint3      Tag = 87
	CornerLatitudePoint4       Tag = 88
	CornerLongitudePoint4      Tag = 89
	WaypointListTag            Tag = 141
)

// Version is the version of the local set written by NewVersion.
const Version = 17

var (
	headingEncoder  = imap.MustNewEncoder(0, 360, 2, imap.Fail)
	altitudeEncoder = imap.MustNewEncoder(-900, 19000, 2, imap.Fail)
)

type kind int

const (
	kindChecksum kind = iota
	kindTimeStamp
	kindString
	kindHeading
	kindAltitude
	kindLatitude
	kindLongitude
	kindVersion
	kindWaypoints
)

type tagInfo struct {
	name string
	kind kind
}

var tags = map[Tag]tagInfo{
	Checksum:                   {"Checksum", kindChecksum},
	PrecisionTimeStamp:         {"Precision Time Stamp", kindTimeStamp},
	MissionID:                  {"Mission ID", kindString},
	PlatformTailNumber:         {"Platform Tail Number", kindString},
	PlatformHeadingAngle:       {"Platform Heading Angle", kindHeading},
	SensorLatitude:             {"Sensor Latitude", kindLatitude},
	SensorLongitude:            {"Sensor Longitude", kindLongitude},
	SensorTrueAltitude:         {"Sensor True Altitude", kindAltitude},
	FrameCenterLatitude:        {"Frame Center Latitude", kindLatitude},
	FrameCenterLongitude:       {"Frame Center Longitude", kindLongitude},
	TargetLocationLatitude:     {"Target Location Latitude", kindLatitude},
	TargetLocationLongitude:    {"Target Location Longitude", kindLongitude},
	UASLSVersionNumber:         {"UAS LS Version Number", kindVersion},
	AlternatePlatformLatitude:  {"Alternate Platform Latitude", kindLatitude},
	AlternatePlatformLongitude: {"Alternate Platform Longitude", kindLongitude},
	CornerLatitudePoint1:       {"Corner Latitude Point 1 (Full)", kindLatitude},
	CornerLongitudePoint1:      {"Corner Longitude Point 1 (Full)", kindLongitude},
	CornerLatitudePoint2:       {"Corner Latitude Point 2 (Full)", kindLatitude},
	CornerLongitudePoint2:      {"Corner Longitude Point 2 (Full)", kindLongitude},
	CornerLatitudePoint3:       {"Corner Latitude Point 3 (Full)", kindLatitude},
	CornerLongitudePoint3:      {"Corner Longitude Point 3 (Full)", kindLongitude},
	CornerLatitudePoint4:       {"Corner Latitude Point 4 (Full)", kindLatitude},
	CornerLongitudePoint4:      {"Corner Longitude Point 4 (Full)", kindLongitude},
	WaypointListTag:            {"Waypoint List", kindWaypoints},
}

// String implements fmt.Stringer.
func (t Tag) String() string {
	if info, ok := tags[t]; ok {
		return info.name
	}
	return fmt.Sprintf("Tag(%d)", uint64(t))
}

func checkKind(t Tag, k kind) error {
	info, ok := tags[t]
	if !ok || info.kind != k {
		return fmt.Errorf("%v does not hold this kind of value", t)
	}
	return nil
}

// NewPrecisionTimeStamp allocates the value of tag 2.
func NewPrecisionTimeStamp(t time.Time) (*fields.PrecisionTimeStamp, error) {
	return fields.NewPrecisionTimeStamp(PrecisionTimeStamp.String(), t)
}

// NewString allocates the value of a string tag.
func NewString(t Tag, v string) (*fields.String, error) {
	err := checkKind(t, kindString)
	if err != nil {
		return nil, err
	}
	return &fields.String{Name: t.String(), Value: v}, nil
}

// NewPlatformHeadingAngle allocates the value of tag 5, in degrees.
func NewPlatformHeadingAngle(v float64) (*fields.Real, error) {
	return fields.NewReal(PlatformHeadingAngle.String(), "%.4f°", headingEncoder, v)
}

// NewSensorTrueAltitude allocates the value of tag 15, in meters.
func NewSensorTrueAltitude(v float64) (*fields.Real, error) {
	return fields.NewReal(SensorTrueAltitude.String(), "%.1fm", altitudeEncoder, v)
}

// NewLatitude allocates the value of a latitude tag, in degrees.
func NewLatitude(t Tag, v float64) (*fields.SignedAngle, error) {
	err := checkKind(t, kindLatitude)
	if err != nil {
		return nil, err
	}
	return fields.NewSignedAngle(t.String(), 90, 4, v)
}

// NewLongitude allocates the value of a longitude tag, in degrees.
func NewLongitude(t Tag, v float64) (*fields.SignedAngle, error) {
	err := checkKind(t, kindLongitude)
	if err != nil {
		return nil, err
	}
	return fields.NewSignedAngle(t.String(), 180, 4, v)
}

// NewVersion allocates the value of tag 65.
func NewVersion(v uint8) *fields.Uint {
	return &fields.Uint{Name: UASLSVersionNumber.String(), Width: 1, Value: uint64(v)}
}

func decodeValue(t Tag, data []byte) (lds.Value, error) {
	info, ok := tags[t]
	if !ok {
		return nil, fmt.Errorf("%w: %d", lds.ErrUnknownTag, uint64(t))
	}

	switch info.kind {
	case kindTimeStamp:
		return fields.DecodePrecisionTimeStamp(info.name, data)

	case kindString:
		return fields.DecodeString(info.name, data)

	case kindHeading:
		return fields.DecodeReal(info.name, "%.4f°", headingEncoder, data)

	case kindAltitude:
		return fields.DecodeReal(info.name, "%.1fm", altitudeEncoder, data)

	case kindLatitude:
		return fields.DecodeSignedAngle(info.name, 90, 4, data)

	case kindLongitude:
		return fields.DecodeSignedAngle(info.name, 180, 4, data)

	case kindVersion:
		return fields.DecodeUint(info.name, "", 1, data)

	case kindWaypoints:
		return DecodeWaypointList(data)
	}

	return nil, fmt.Errorf("%v cannot be decoded as a value", t)
}

type dictionary struct{}

func (dictionary) UniversalLabel() klv.UniversalLabel {
	return klv.UASDatalinkLocalSet
}

func (dictionary) ChecksumTag() uint64 {
	return uint64(Checksum)
}

func (dictionary) Known(tag uint64) bool {
	_, ok := tags[Tag(tag)]
	return ok
}

func (dictionary) Decode(tag uint64, data []byte) (lds.Value, error) {
	return decodeValue(Tag(tag), data)
}

// Dictionary is the dictionary of the UAS Datalink Local Set.
var Dictionary lds.Dictionary = dictionary{}

// NewMessage allocates a UAS Datalink message.
func NewMessage(values map[Tag]lds.Value) *lds.Message {
	m := make(map[uint64]lds.Value, len(values))
	for t, v := range values {
		m[uint64(t)] = v
	}
	return lds.NewMessage(Dictionary, m)
}

// Unmarshal decodes a UAS Datalink message.
func Unmarshal(buf []byte) (*lds.Message, error) {
	return lds.Unmarshal(Dictionary, buf)
}
