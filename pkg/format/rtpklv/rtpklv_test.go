package rtpklv

import (
	"testing"

	"github.com/pion/rtp"
	"github.com/stretchr/testify/require"

	"github.com/jackhart/jmisb/pkg/klv"
)

func uint32Ptr(v uint32) *uint32 {
	return &v
}

func uint16Ptr(v uint16) *uint16 {
	return &v
}

var rvtUnit = []byte{
	0x06, 0x0e, 0x2b, 0x34, 0x02, 0x0b, 0x01, 0x01,
	0x0e, 0x01, 0x03, 0x01, 0x02, 0x00, 0x00, 0x00,
	0x09,
	0x03, 0x02, 0x00, 0x78,
	0x01, 0x81, 0x02, 0x4b, 0x56,
}

func twoItems() []byte {
	var buf []byte
	buf = append(buf, klv.VMTILocalSet[:]...)
	buf = append(buf, 0x02, 0xaa, 0xbb)
	return append(buf, rvtUnit...)
}

var cases = []struct {
	name    string
	maxSize int
	unit    []byte
	pkts    []*rtp.Packet
}{
	{
		"single packet",
		1450,
		rvtUnit,
		[]*rtp.Packet{
			{
				Header: rtp.Header{
					Version:        2,
					Marker:         true,
					PayloadType:    96,
					SequenceNumber: 17645,
					Timestamp:      2289526357,
					SSRC:           0x9dbb7812,
				},
				Payload: rvtUnit,
			},
		},
	},
	{
		"fragmented",
		10,
		rvtUnit,
		[]*rtp.Packet{
			{
				Header: rtp.Header{
					Version:        2,
					PayloadType:    96,
					SequenceNumber: 17645,
					Timestamp:      2289526357,
					SSRC:           0x9dbb7812,
				},
				Payload: rvtUnit[:10],
			},
			{
				Header: rtp.Header{
					Version:        2,
					PayloadType:    96,
					SequenceNumber: 17646,
					Timestamp:      2289526357,
					SSRC:           0x9dbb7812,
				},
				Payload: rvtUnit[10:20],
			},
			{
				Header: rtp.Header{
					Version:        2,
					Marker:         true,
					PayloadType:    96,
					SequenceNumber: 17647,
					Timestamp:      2289526357,
					SSRC:           0x9dbb7812,
				},
				Payload: rvtUnit[20:],
			},
		},
	},
	{
		"two items",
		32,
		twoItems(),
		[]*rtp.Packet{
			{
				Header: rtp.Header{
					Version:        2,
					PayloadType:    96,
					SequenceNumber: 17645,
					Timestamp:      2289526357,
					SSRC:           0x9dbb7812,
				},
				Payload: twoItems()[:32],
			},
			{
				Header: rtp.Header{
					Version:        2,
					Marker:         true,
					PayloadType:    96,
					SequenceNumber: 17646,
					Timestamp:      2289526357,
					SSRC:           0x9dbb7812,
				},
				Payload: twoItems()[32:],
			},
		},
	},
}

func TestDecode(t *testing.T) {
	for _, ca := range cases {
		t.Run(ca.name, func(t *testing.T) {
			d := &Decoder{}
			err := d.Init()
			require.NoError(t, err)

			var unit []byte

			for i, pkt := range ca.pkts {
				unit, err = d.Decode(pkt)
				if i != len(ca.pkts)-1 {
					require.Equal(t, ErrMorePacketsNeeded, err)
				} else {
					require.NoError(t, err)
				}
			}

			require.Equal(t, ca.unit, unit)
		})
	}
}

func TestEncode(t *testing.T) {
	for _, ca := range cases {
		t.Run(ca.name, func(t *testing.T) {
			e := &Encoder{
				PayloadType:           96,
				SSRC:                  uint32Ptr(0x9dbb7812),
				InitialSequenceNumber: uint16Ptr(0x44ed),
				PayloadMaxSize:        ca.maxSize,
			}
			err := e.Init()
			require.NoError(t, err)

			pkts, err := e.Encode(ca.unit, 2289526357)
			require.NoError(t, err)
			require.Equal(t, ca.pkts, pkts)
		})
	}
}

func TestEncodeMultiple(t *testing.T) {
	e := &Encoder{
		PayloadType:           96,
		SSRC:                  uint32Ptr(0x9dbb7812),
		InitialSequenceNumber: uint16Ptr(0x44ed),
		PayloadMaxSize:        32,
	}
	err := e.Init()
	require.NoError(t, err)

	item := append(append([]byte(nil), klv.VMTILocalSet[:]...), 0x02, 0xaa, 0xbb)

	pkts, err := e.EncodeMultiple([][]byte{item, rvtUnit}, 2289526357)
	require.NoError(t, err)
	require.Equal(t, cases[2].pkts, pkts)

	_, err = e.EncodeMultiple(nil, 0)
	require.Error(t, err)
}

func TestEncodeRandomInitialState(t *testing.T) {
	e := &Encoder{
		PayloadType: 96,
	}
	err := e.Init()
	require.NoError(t, err)
	require.NotNil(t, e.SSRC)
	require.NotNil(t, e.InitialSequenceNumber)
	require.Equal(t, defaultPayloadMaxSize, e.PayloadMaxSize)

	_, err = e.Encode(nil, 0)
	require.Error(t, err)
}

func TestEncodeErrors(t *testing.T) {
	e := &Encoder{
		PayloadType:    96,
		PayloadMaxSize: -1,
	}
	err := e.Init()
	require.EqualError(t, err, "invalid PayloadMaxSize: -1")

	e = &Encoder{
		PayloadType: 96,
	}
	err = e.Init()
	require.NoError(t, err)

	_, err = e.Encode([]byte{0x01, 0x02, 0x03}, 0)
	require.EqualError(t, err, "KLV unit does not start with a universal label")
}

func TestDecodeErrors(t *testing.T) {
	t.Run("non-starting fragment", func(t *testing.T) {
		d := &Decoder{}
		err := d.Init()
		require.NoError(t, err)

		_, err = d.Decode(cases[1].pkts[1])
		require.Equal(t, ErrNonStartingPacketAndNoPrevious, err)
	})

	t.Run("packet loss", func(t *testing.T) {
		d := &Decoder{}
		err := d.Init()
		require.NoError(t, err)

		_, err = d.Decode(cases[1].pkts[0])
		require.Equal(t, ErrMorePacketsNeeded, err)

		// the partial unit is dropped and the last fragment cannot start a new one
		_, err = d.Decode(cases[1].pkts[2])
		require.Equal(t, ErrNonStartingPacketAndNoPrevious, err)

		pkt := *cases[0].pkts[0]
		pkt.SequenceNumber = 17648
		unit, err := d.Decode(&pkt)
		require.NoError(t, err)
		require.Equal(t, rvtUnit, unit)
	})

	t.Run("packet loss between units", func(t *testing.T) {
		d := &Decoder{}
		err := d.Init()
		require.NoError(t, err)

		for _, seq := range []uint16{10, 12} {
			pkt := *cases[0].pkts[0]
			pkt.SequenceNumber = seq
			unit, err2 := d.Decode(&pkt)
			require.NoError(t, err2)
			require.Equal(t, rvtUnit, unit)
		}
	})

	t.Run("packet loss inside unit", func(t *testing.T) {
		d := &Decoder{}
		err := d.Init()
		require.NoError(t, err)

		_, err = d.Decode(cases[1].pkts[0])
		require.Equal(t, ErrMorePacketsNeeded, err)

		// a new unit starts right after the gap
		pkt := *cases[0].pkts[0]
		pkt.SequenceNumber = 17650
		unit, err := d.Decode(&pkt)
		require.NoError(t, err)
		require.Equal(t, rvtUnit, unit)
	})

	t.Run("timestamp change", func(t *testing.T) {
		d := &Decoder{}
		err := d.Init()
		require.NoError(t, err)

		_, err = d.Decode(cases[1].pkts[0])
		require.Equal(t, ErrMorePacketsNeeded, err)

		pkt := *cases[1].pkts[1]
		pkt.Timestamp++
		_, err = d.Decode(&pkt)
		require.EqualError(t, err, "incomplete KLV unit: timestamp changed from 2289526357 to 2289526358")
	})

	t.Run("truncated unit", func(t *testing.T) {
		d := &Decoder{}
		err := d.Init()
		require.NoError(t, err)

		pkt := *cases[1].pkts[0]
		pkt.Marker = true
		_, err = d.Decode(&pkt)
		require.ErrorIs(t, err, klv.ErrTruncatedPacket)
	})
}
