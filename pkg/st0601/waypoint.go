package st0601

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackhart/jmisb/pkg/ber"
	"github.com/jackhart/jmisb/pkg/bits"
	"github.com/jackhart/jmisb/pkg/imap"
)

// ErrMalformedWaypoint is returned when a waypoint record cannot be decoded.
var ErrMalformedWaypoint = errors.New("malformed waypoint")

const (
	waypointManualMode  = 0x01
	waypointAdhocSource = 0x02
)

var (
	waypointLatEncoder = imap.MustNewEncoder(-90, 90, 4, imap.Fail)
	waypointLonEncoder = imap.MustNewEncoder(-180, 180, 4, imap.Fail)
	waypointHAEEncoder = imap.MustNewEncoder(-900, 9000, 3, imap.Fail)
)

// Waypoint is an entry of a waypoint list.
type Waypoint struct {
	ID               uint64
	ProsecutionOrder int16
	ManualMode       bool
	AdhocSource      bool
	Latitude         float64
	Longitude        float64
	HAE              float64
}

func (w Waypoint) marshal(dst []byte) ([]byte, error) {
	var info uint64
	if w.ManualMode {
		info |= waypointManualMode
	}
	if w.AdhocSource {
		info |= waypointAdhocSource
	}

	body := ber.AppendOID(nil, w.ID)
	body = bits.AppendUint(body, uint64(uint16(w.ProsecutionOrder)), 2)
	body = ber.AppendOID(body, info)

	var err error
	body, err = waypointLatEncoder.AppendEncode(body, w.Latitude)
	if err != nil {
		return nil, fmt.Errorf("waypoint %d: latitude: %w", w.ID, err)
	}

	body, err = waypointLonEncoder.AppendEncode(body, w.Longitude)
	if err != nil {
		return nil, fmt.Errorf("waypoint %d: longitude: %w", w.ID, err)
	}

	body, err = waypointHAEEncoder.AppendEncode(body, w.HAE)
	if err != nil {
		return nil, fmt.Errorf("waypoint %d: HAE: %w", w.ID, err)
	}

	dst = ber.AppendLength(dst, uint64(len(body)))
	return append(dst, body...), nil
}

func (w *Waypoint) unmarshal(buf []byte) error {
	id, err := ber.DecodeOID(buf, 0)
	if err != nil {
		return err
	}
	w.ID = id.Value
	pos := id.Length

	order, err := bits.ReadInt(buf, pos, 2)
	if err != nil {
		return err
	}
	w.ProsecutionOrder = int16(order)
	pos += 2

	info, err := ber.DecodeOID(buf, pos)
	if err != nil {
		return err
	}
	w.ManualMode = (info.Value & waypointManualMode) != 0
	w.AdhocSource = (info.Value & waypointAdhocSource) != 0
	pos += info.Length

	w.Latitude, err = waypointLatEncoder.DecodeAt(buf, pos)
	if err != nil {
		return err
	}
	pos += waypointLatEncoder.Length()

	w.Longitude, err = waypointLonEncoder.DecodeAt(buf, pos)
	if err != nil {
		return err
	}
	pos += waypointLonEncoder.Length()

	w.HAE, err = waypointHAEEncoder.DecodeAt(buf, pos)
	return err
}

// WaypointList is the value of tag 141.
// Each waypoint is a record prefixed by its BER length.
type WaypointList struct {
	waypoints []Waypoint
	encoded   []byte
}

// NewWaypointList allocates a WaypointList.
func NewWaypointList(waypoints []Waypoint) (*WaypointList, error) {
	var buf []byte

	for _, w := range waypoints {
		var err error
		buf, err = w.marshal(buf)
		if err != nil {
			return nil, err
		}
	}

	return &WaypointList{
		waypoints: append([]Waypoint(nil), waypoints...),
		encoded:   buf,
	}, nil
}

// DecodeWaypointList decodes a WaypointList.
// Bytes that follow the known fields of a record are ignored.
func DecodeWaypointList(buf []byte) (*WaypointList, error) {
	var waypoints []Waypoint
	pos := 0

	for pos < len(buf) {
		l, err := ber.DecodeLength(buf, pos)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedWaypoint, err)
		}
		pos += l.SizeOfLength

		if l.Value > uint64(len(buf)-pos) {
			return nil, fmt.Errorf("%w: record declares %d bytes, %d available",
				ErrMalformedWaypoint, l.Value, len(buf)-pos)
		}
		n := int(l.Value)

		var w Waypoint
		err = w.unmarshal(buf[pos : pos+n])
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrMalformedWaypoint, len(waypoints), err)
		}

		waypoints = append(waypoints, w)
		pos += n
	}

	return &WaypointList{
		waypoints: waypoints,
		encoded:   append([]byte(nil), buf...),
	}, nil
}

// Waypoints returns a copy of the waypoints.
func (l *WaypointList) Waypoints() []Waypoint {
	return append([]Waypoint(nil), l.waypoints...)
}

// Bytes implements lds.Value.
func (l *WaypointList) Bytes() []byte {
	return l.encoded
}

// DisplayName implements lds.Value.
func (l *WaypointList) DisplayName() string {
	return WaypointListTag.String()
}

// DisplayableValue implements lds.Value.
func (l *WaypointList) DisplayableValue() string {
	ids := make([]string, len(l.waypoints))
	for i, w := range l.waypoints {
		ids[i] = fmt.Sprintf("%d", w.ID)
	}
	return "[" + strings.Join(ids, ", ") + "]"
}
