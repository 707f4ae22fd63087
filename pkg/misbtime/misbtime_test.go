package misbtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var casesPrecision = []struct {
	name string
	dec  time.Time
	enc  uint64
	byts []byte
}{
	{
		"epoch",
		time.Unix(0, 0).UTC(),
		0,
		[]byte{0, 0, 0, 0, 0, 0, 0, 0},
	},
	{
		"uas datalink sample",
		time.Date(2008, 10, 24, 0, 13, 29, 913000000, time.UTC),
		1224807209913000,
		[]byte{0x00, 0x04, 0x59, 0xf4, 0xa6, 0xaa, 0x4a, 0xa8},
	},
}

func TestEncode(t *testing.T) {
	for _, ca := range casesPrecision {
		t.Run(ca.name, func(t *testing.T) {
			v, err := Encode(ca.dec)
			require.NoError(t, err)
			require.Equal(t, ca.enc, v)

			buf, err := Marshal(ca.dec)
			require.NoError(t, err)
			require.Equal(t, ca.byts, buf)
		})
	}
}

func TestDecode(t *testing.T) {
	for _, ca := range casesPrecision {
		t.Run(ca.name, func(t *testing.T) {
			require.Equal(t, ca.dec, Decode(ca.enc))
		})
	}
}

func TestEncodeBeforeEpoch(t *testing.T) {
	_, err := Encode(time.Date(1969, 12, 31, 23, 59, 59, 0, time.UTC))
	require.ErrorIs(t, err, ErrBeforeEpoch)

	_, err = Marshal(time.Date(1969, 12, 31, 23, 59, 59, 0, time.UTC))
	require.ErrorIs(t, err, ErrBeforeEpoch)
}

var casesNTP = []struct {
	name string
	dec  time.Time
	enc  uint64
}{
	{
		"a",
		time.Date(2013, 4, 15, 11, 15, 17, 958404853, time.UTC),
		15354565283395798332,
	},
	{
		"b",
		time.Date(2013, 4, 15, 11, 15, 18, 0, time.UTC),
		15354565283574448128,
	},
}

func TestNTP(t *testing.T) {
	for _, ca := range casesNTP {
		t.Run(ca.name, func(t *testing.T) {
			require.Equal(t, ca.enc, NTP(ca.dec))
			dec := FromNTP(ca.enc)
			require.Equal(t, ca.dec, dec)
			require.Equal(t, time.UTC, dec.Location())
		})
	}
}
