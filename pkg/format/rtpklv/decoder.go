package rtpklv

import (
	"errors"
	"fmt"

	"github.com/pion/rtp"

	"github.com/jackhart/jmisb/pkg/klv"
)

// ErrMorePacketsNeeded is returned when more packets are needed to complete a KLV unit.
var ErrMorePacketsNeeded = errors.New("need more packets")

// ErrNonStartingPacketAndNoPrevious is returned when we received a non-starting
// packet of a fragmented KLV unit and we didn't receive anything before.
// It's normal to receive this when decoding a stream that has been already
// running for some time.
var ErrNonStartingPacketAndNoPrevious = errors.New(
	"received a non-starting fragment without any previous starting fragment")

// Decoder is a RTP/KLV decoder.
// Specification: RFC6597
type Decoder struct {
	buffer     []byte
	timestamp  uint32
	assembling bool
	lastSeqNum uint16
	started    bool
}

// Init initializes the decoder.
func (d *Decoder) Init() error {
	d.reset()
	d.started = false
	return nil
}

func (d *Decoder) reset() {
	d.buffer = nil
	d.assembling = false
}

// Decode decodes a KLV unit from a RTP packet.
// The unit is complete when a packet with the marker bit is received;
// until then, ErrMorePacketsNeeded is returned.
// A gap in sequence numbers discards the unit being assembled.
func (d *Decoder) Decode(pkt *rtp.Packet) ([]byte, error) {
	// after a loss, any partial unit is dropped and the packet is
	// decoded as the possible start of a new unit.
	if d.started && pkt.SequenceNumber != d.lastSeqNum+1 {
		d.reset()
	}
	d.lastSeqNum = pkt.SequenceNumber
	d.started = true

	if !d.assembling {
		if !klv.HasKLVPrefix(pkt.Payload) {
			return nil, ErrNonStartingPacketAndNoPrevious
		}

		d.timestamp = pkt.Timestamp
		d.assembling = true
		d.buffer = append([]byte(nil), pkt.Payload...)
	} else {
		if pkt.Timestamp != d.timestamp {
			prev := d.timestamp
			d.reset()
			return nil, fmt.Errorf("incomplete KLV unit: timestamp changed from %d to %d",
				prev, pkt.Timestamp)
		}

		d.buffer = append(d.buffer, pkt.Payload...)
	}

	if !pkt.Marker {
		return nil, ErrMorePacketsNeeded
	}

	unit := d.buffer
	d.reset()

	_, err := klv.ReadPackets(unit)
	if err != nil {
		return nil, fmt.Errorf("invalid KLV unit: %w", err)
	}

	return unit, nil
}
