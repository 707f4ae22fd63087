package rtpreceiver

import (
	"github.com/pion/rtp"
)

// reorderer sorts RTP packets by sequence number and drops duplicates.
type reorderer struct {
	buffer   []*rtp.Packet
	pos      uint16
	expected uint16
	negative int
}

func (o *reorderer) initialize(size int, first uint16) {
	o.buffer = make([]*rtp.Packet, size)
	o.expected = first + 1
}

func (o *reorderer) mask() uint16 {
	return uint16(len(o.buffer) - 1)
}

// process returns the packets that can be delivered in order
// and the number of packets that are considered lost.
func (o *reorderer) process(pkt *rtp.Packet) ([]*rtp.Packet, uint64) {
	rel := int16(pkt.SequenceNumber - o.expected)

	// duplicate, or packet sent before the first one
	if rel < 0 {
		o.negative++

		// the sender restarted the stream
		if o.negative > len(o.buffer) {
			o.negative = 0
			clear(o.buffer)
			o.expected = pkt.SequenceNumber + 1
			return []*rtp.Packet{pkt}, 0
		}

		return nil, 0
	}

	o.negative = 0

	// the gap does not fit into the buffer: flush it
	if int(rel) >= len(o.buffer) {
		var ret []*rtp.Packet

		for i := range uint16(len(o.buffer)) {
			p := (o.pos + i) & o.mask()
			if o.buffer[p] != nil {
				ret = append(ret, o.buffer[p])
				o.buffer[p] = nil
			}
		}

		lost := uint64(rel) - uint64(len(ret))
		o.expected = pkt.SequenceNumber + 1

		return append(ret, pkt), lost
	}

	if rel != 0 {
		p := (o.pos + uint16(rel)) & o.mask()
		if o.buffer[p] == nil {
			o.buffer[p] = pkt
		}
		return nil, 0
	}

	ret := []*rtp.Packet{pkt}
	o.pos = (o.pos + 1) & o.mask()
	o.expected++

	for o.buffer[o.pos] != nil {
		ret = append(ret, o.buffer[o.pos])
		o.buffer[o.pos] = nil
		o.pos = (o.pos + 1) & o.mask()
		o.expected++
	}

	return ret, 0
}
