package rtpreceiver

import (
	"sync"
	"testing"
	"time"

	"github.com/pion/rtcp"
	"github.com/pion/rtp"
	"github.com/stretchr/testify/require"

	"github.com/jackhart/jmisb/pkg/format/rtpklv"
	"github.com/jackhart/jmisb/pkg/misbtime"
)

type testClock struct {
	mutex sync.Mutex
	cur   time.Time
}

func (c *testClock) set(v time.Time) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.cur = v
}

func (c *testClock) now() time.Time {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.cur
}

func klvUnit(v byte) []byte {
	return []byte{
		0x06, 0x0e, 0x2b, 0x34, 0x02, 0x0b, 0x01, 0x01,
		0x0e, 0x01, 0x03, 0x01, 0x02, 0x00, 0x00, 0x00,
		0x01, v,
	}
}

func klvPacket(seq uint16, ts uint32, marker bool, payload []byte) *rtp.Packet {
	return &rtp.Packet{
		Header: rtp.Header{
			Version:        2,
			Marker:         marker,
			PayloadType:    96,
			SequenceNumber: seq,
			Timestamp:      ts,
			SSRC:           0xba9da416,
		},
		Payload: payload,
	}
}

func newReceiver(t *testing.T, unreliable bool, bufferSize int) *Receiver {
	r := &Receiver{
		ClockRate:           90000,
		UnreliableTransport: unreliable,
		BufferSize:          bufferSize,
		Period:              time.Hour,
		WritePacketRTCP:     func(rtcp.Packet) {},
	}
	err := r.Initialize()
	require.NoError(t, err)
	return r
}

func TestReceiver(t *testing.T) {
	clock := &testClock{}
	pktGenerated := make(chan rtcp.Packet)

	r := &Receiver{
		ClockRate: 90000,
		LocalSSRC: 0x65f83afb,
		Period:    500 * time.Millisecond,
		TimeNow:   clock.now,
		WritePacketRTCP: func(pkt rtcp.Packet) {
			pktGenerated <- pkt
		},
	}
	err := r.Initialize()
	require.NoError(t, err)
	defer r.Close()

	require.Nil(t, r.Stats())

	ntp0 := time.Date(2008, 5, 20, 22, 15, 20, 0, time.UTC)
	system0 := time.Date(2008, 5, 20, 22, 16, 20, 0, time.UTC)

	_, ok := r.UnitNTP(1000)
	require.False(t, ok)

	r.ProcessSenderReport(&rtcp.SenderReport{
		SSRC:    0xba9da416,
		NTPTime: misbtime.NTP(ntp0),
		RTPTime: 1000,
	}, system0)

	units, lost, err := r.ProcessPacket(klvPacket(100, 1000, true, klvUnit(1)), system0)
	require.NoError(t, err)
	require.Equal(t, uint64(0), lost)
	require.Equal(t, []*Unit{{
		Data:         klvUnit(1),
		RTPTime:      1000,
		NTP:          ntp0,
		NTPAvailable: true,
	}}, units)

	units, lost, err = r.ProcessPacket(klvPacket(101, 91000, true, klvUnit(2)), system0.Add(time.Second))
	require.NoError(t, err)
	require.Equal(t, uint64(0), lost)
	require.Equal(t, []*Unit{{
		Data:         klvUnit(2),
		RTPTime:      91000,
		NTP:          ntp0.Add(time.Second),
		NTPAvailable: true,
	}}, units)

	require.Equal(t, &Stats{
		RemoteSSRC:         0xba9da416,
		LastSequenceNumber: 101,
		LastRTP:            91000,
		LastNTP:            ntp0.Add(time.Second),
	}, r.Stats())

	clock.set(system0.Add(1500 * time.Millisecond))

	pkt := <-pktGenerated
	require.Equal(t, &rtcp.ReceiverReport{
		SSRC: 0x65f83afb,
		Reports: []rtcp.ReceptionReport{{
			SSRC:               0xba9da416,
			LastSequenceNumber: 101,
			LastSenderReport:   uint32(misbtime.NTP(ntp0) >> 16),
			Delay:              uint32(1.5 * 65536),
		}},
	}, pkt)
}

func TestReceiverFragmentedUnit(t *testing.T) {
	r := newReceiver(t, false, 0)
	defer r.Close()

	unit := klvUnit(3)
	now := time.Now()

	units, _, err := r.ProcessPacket(klvPacket(5, 200, false, unit[:10]), now)
	require.NoError(t, err)
	require.Empty(t, units)

	units, _, err = r.ProcessPacket(klvPacket(6, 200, true, unit[10:]), now)
	require.NoError(t, err)
	require.Len(t, units, 1)
	require.Equal(t, unit, units[0].Data)
	require.False(t, units[0].NTPAvailable)
}

func TestReceiverReorder(t *testing.T) {
	r := newReceiver(t, true, 0)
	defer r.Close()

	unitA := klvUnit(0x0a)
	now := time.Now()

	units, lost, err := r.ProcessPacket(klvPacket(10, 100, false, unitA[:8]), now)
	require.NoError(t, err)
	require.Equal(t, uint64(0), lost)
	require.Empty(t, units)

	units, lost, err = r.ProcessPacket(klvPacket(12, 200, true, klvUnit(0x0b)), now)
	require.NoError(t, err)
	require.Equal(t, uint64(0), lost)
	require.Empty(t, units)

	units, lost, err = r.ProcessPacket(klvPacket(11, 100, true, unitA[8:]), now)
	require.NoError(t, err)
	require.Equal(t, uint64(0), lost)
	require.Len(t, units, 2)
	require.Equal(t, unitA, units[0].Data)
	require.Equal(t, uint32(100), units[0].RTPTime)
	require.Equal(t, klvUnit(0x0b), units[1].Data)
	require.Equal(t, uint32(200), units[1].RTPTime)

	// duplicate
	units, lost, err = r.ProcessPacket(klvPacket(11, 100, true, unitA[8:]), now)
	require.NoError(t, err)
	require.Equal(t, uint64(0), lost)
	require.Empty(t, units)
}

func TestReceiverLoss(t *testing.T) {
	r := newReceiver(t, true, 4)
	defer r.Close()

	now := time.Now()

	units, lost, err := r.ProcessPacket(klvPacket(10, 100, true, klvUnit(1)), now)
	require.NoError(t, err)
	require.Equal(t, uint64(0), lost)
	require.Len(t, units, 1)

	units, lost, err = r.ProcessPacket(klvPacket(16, 700, true, klvUnit(2)), now)
	require.NoError(t, err)
	require.Equal(t, uint64(5), lost)
	require.Len(t, units, 1)
	require.Equal(t, klvUnit(2), units[0].Data)

	// late packet
	units, lost, err = r.ProcessPacket(klvPacket(13, 400, true, klvUnit(3)), now)
	require.NoError(t, err)
	require.Equal(t, uint64(0), lost)
	require.Empty(t, units)

	require.Equal(t, uint32(5), r.Stats().TotalLost)
}

func TestReceiverLossDropsPartialUnit(t *testing.T) {
	var decodeErrs []error

	r := &Receiver{
		ClockRate:       90000,
		Period:          time.Hour,
		WritePacketRTCP: func(rtcp.Packet) {},
		OnDecodeError: func(err error) {
			decodeErrs = append(decodeErrs, err)
		},
	}
	err := r.Initialize()
	require.NoError(t, err)
	defer r.Close()

	unit := klvUnit(4)
	now := time.Now()

	units, _, err := r.ProcessPacket(klvPacket(20, 100, false, unit[:10]), now)
	require.NoError(t, err)
	require.Empty(t, units)

	units, lost, err := r.ProcessPacket(klvPacket(22, 100, true, unit[12:]), now)
	require.NoError(t, err)
	require.Equal(t, uint64(1), lost)
	require.Empty(t, units)

	require.Len(t, decodeErrs, 1)
	require.ErrorIs(t, decodeErrs[0], rtpklv.ErrNonStartingPacketAndNoPrevious)

	units, _, err = r.ProcessPacket(klvPacket(23, 200, true, klvUnit(5)), now)
	require.NoError(t, err)
	require.Len(t, units, 1)
}

func TestReceiverWrongSSRC(t *testing.T) {
	r := newReceiver(t, false, 0)
	defer r.Close()

	_, _, err := r.ProcessPacket(klvPacket(1, 100, true, klvUnit(1)), time.Now())
	require.NoError(t, err)

	pkt := klvPacket(2, 200, true, klvUnit(2))
	pkt.SSRC = 0x1234

	_, _, err = r.ProcessPacket(pkt, time.Now())
	require.EqualError(t, err, "received packet with wrong SSRC 4660, expected 3130893334")
}

func TestReceiverInitializeErrors(t *testing.T) {
	for _, ca := range []struct {
		name string
		r    *Receiver
		err  string
	}{
		{
			"buffer size",
			&Receiver{BufferSize: 3, Period: time.Second},
			"BufferSize must be a power of two",
		},
		{
			"period",
			&Receiver{},
			"invalid Period",
		},
	} {
		t.Run(ca.name, func(t *testing.T) {
			err := ca.r.Initialize()
			require.EqualError(t, err, ca.err)
		})
	}
}
