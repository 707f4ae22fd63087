package klv

import (
	"errors"
	"fmt"

	"github.com/jackhart/jmisb/pkg/ber"
)

// ErrTruncatedPacket is returned when a packet exceeds the buffer.
var ErrTruncatedPacket = errors.New("truncated KLV packet")

// Packet is a top-level KLV packet.
type Packet struct {
	// key of the packet.
	Key UniversalLabel

	// value of the packet.
	// It points to the parsed buffer.
	Value []byte

	// the whole packet, key and length included.
	Raw []byte
}

// ReadPacket reads the packet at the beginning of buf.
// It returns the packet and the number of consumed bytes.
func ReadPacket(buf []byte) (Packet, int, error) {
	if len(buf) < LabelLength {
		return Packet{}, 0, fmt.Errorf("%w: %d bytes are not enough for a key", ErrTruncatedPacket, len(buf))
	}

	if !HasKLVPrefix(buf) {
		return Packet{}, 0, fmt.Errorf("invalid key prefix: %x", buf[:4])
	}

	l, err := ber.DecodeLength(buf, LabelLength)
	if err != nil {
		if errors.Is(err, ber.ErrTruncated) {
			return Packet{}, 0, fmt.Errorf("%w: %w", ErrTruncatedPacket, err)
		}
		return Packet{}, 0, err
	}

	start := LabelLength + l.SizeOfLength
	if l.Value > uint64(len(buf)-start) {
		return Packet{}, 0, fmt.Errorf("%w: value is %d bytes, %d available",
			ErrTruncatedPacket, l.Value, len(buf)-start)
	}

	end := start + int(l.Value)

	return Packet{
		Key:   UniversalLabel(buf[:LabelLength]),
		Value: buf[start:end],
		Raw:   buf[:end],
	}, end, nil
}

// ReadPackets splits buf into consecutive packets.
func ReadPackets(buf []byte) ([]Packet, error) {
	var packets []Packet

	for len(buf) > 0 {
		pkt, n, err := ReadPacket(buf)
		if err != nil {
			return nil, err
		}
		packets = append(packets, pkt)
		buf = buf[n:]
	}

	return packets, nil
}
