package rtpklv

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/pion/rtp"

	"github.com/jackhart/jmisb/pkg/klv"
)

const (
	rtpVersion = 2

	// UDP MTU minus IP, UDP and RTP headers, with room for SRTP.
	defaultPayloadMaxSize = 1450
)

// Encoder is a RTP/KLV encoder.
// Specification: RFC6597
type Encoder struct {
	// payload type of packets.
	PayloadType uint8

	// SSRC of packets (optional).
	// It defaults to a random value.
	SSRC *uint32

	// initial sequence number of packets (optional).
	// It defaults to a random value.
	InitialSequenceNumber *uint16

	// maximum size of packet payloads (optional).
	// It defaults to 1450.
	PayloadMaxSize int

	sequenceNumber uint16
}

// Init initializes the encoder.
func (e *Encoder) Init() error {
	if e.PayloadMaxSize < 0 {
		return fmt.Errorf("invalid PayloadMaxSize: %d", e.PayloadMaxSize)
	}
	if e.PayloadMaxSize == 0 {
		e.PayloadMaxSize = defaultPayloadMaxSize
	}

	if e.SSRC == nil || e.InitialSequenceNumber == nil {
		var buf [6]byte
		_, err := rand.Read(buf[:])
		if err != nil {
			return err
		}

		if e.SSRC == nil {
			v := binary.BigEndian.Uint32(buf[:4])
			e.SSRC = &v
		}
		if e.InitialSequenceNumber == nil {
			v := binary.BigEndian.Uint16(buf[4:])
			e.InitialSequenceNumber = &v
		}
	}

	e.sequenceNumber = *e.InitialSequenceNumber
	return nil
}

func (e *Encoder) packet(timestamp uint32, payload []byte) *rtp.Packet {
	pkt := &rtp.Packet{
		Header: rtp.Header{
			Version:        rtpVersion,
			PayloadType:    e.PayloadType,
			SequenceNumber: e.sequenceNumber,
			Timestamp:      timestamp,
			SSRC:           *e.SSRC,
		},
		Payload: payload,
	}
	e.sequenceNumber++
	return pkt
}

// Encode splits a KLV unit into RTP packets.
// All packets share the timestamp; the last one has the marker bit set.
func (e *Encoder) Encode(unit []byte, timestamp uint32) ([]*rtp.Packet, error) {
	if len(unit) == 0 {
		return nil, fmt.Errorf("KLV unit is empty")
	}

	if !klv.HasKLVPrefix(unit) {
		return nil, fmt.Errorf("KLV unit does not start with a universal label")
	}

	packets := make([]*rtp.Packet, 0, (len(unit)+e.PayloadMaxSize-1)/e.PayloadMaxSize)

	for len(unit) > 0 {
		n := min(len(unit), e.PayloadMaxSize)
		packets = append(packets, e.packet(timestamp, unit[:n]))
		unit = unit[n:]
	}

	packets[len(packets)-1].Marker = true

	return packets, nil
}

// EncodeMultiple joins KLV packets that share a presentation time
// into a single KLV unit and encodes it.
func (e *Encoder) EncodeMultiple(items [][]byte, timestamp uint32) ([]*rtp.Packet, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("no KLV items provided")
	}

	return e.Encode(bytes.Join(items, nil), timestamp)
}
