package st0806

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jackhart/jmisb/pkg/checksum"
	"github.com/jackhart/jmisb/pkg/fields"
	"github.com/jackhart/jmisb/pkg/lds"
)

var rvtAirspeed = []byte{
	0x06, 0x0e, 0x2b, 0x34, 0x02, 0x0b, 0x01, 0x01,
	0x0e, 0x01, 0x03, 0x01, 0x02, 0x00, 0x00, 0x00,
	0x09,
	0x03, 0x02, 0x00, 0x78,
	0x01, 0x81, 0x02, 0x4b, 0x56,
}

func TestMarshal(t *testing.T) {
	m := NewMessage(map[Tag]lds.Value{
		PlatformTrueAirspeed: NewPlatformTrueAirspeed(120),
	})

	buf, err := m.Marshal(false)
	require.NoError(t, err)
	require.Equal(t, rvtAirspeed, buf)
	require.True(t, checksum.Verify(buf))
}

func TestUnmarshal(t *testing.T) {
	m, err := Unmarshal(rvtAirspeed)
	require.NoError(t, err)
	require.Equal(t, 1, m.Len())

	v, ok := m.Field(uint64(PlatformTrueAirspeed))
	require.True(t, ok)
	require.Equal(t, "Platform True Airspeed (TAS)", v.DisplayName())
	require.Equal(t, "120m/s", v.DisplayableValue())
	require.Equal(t, uint64(120), v.(*fields.Uint).Value)
}

func TestRoundTrip(t *testing.T) {
	ts, err := NewUserDefinedTimeStamp(time.Date(2020, 3, 1, 12, 0, 0, 123456000, time.UTC))
	require.NoError(t, err)

	m := NewMessage(map[Tag]lds.Value{
		UserDefinedTimeStamp:      ts,
		PlatformTrueAirspeed:      NewPlatformTrueAirspeed(65535),
		PlatformIndicatedAirspeed: NewPlatformIndicatedAirspeed(0),
		FrameCode:                 NewFrameCode(0xdeadbeef),
		VersionNumber:             NewVersionNumber(3),
	})

	buf, err := m.Marshal(false)
	require.NoError(t, err)

	dec, err := Unmarshal(buf)
	require.NoError(t, err)
	require.Equal(t, []uint64{2, 3, 4, 7, 8}, dec.Tags())

	for _, tag := range m.Tags() {
		v1, _ := m.Field(tag)
		v2, ok := dec.Field(tag)
		require.True(t, ok)
		require.Equal(t, v1.Bytes(), v2.Bytes())
		require.Equal(t, v1.DisplayableValue(), v2.DisplayableValue())
	}
}

func TestUnmarshalErrors(t *testing.T) {
	buf := append([]byte(nil), rvtAirspeed...)
	buf[19] = 0x79
	_, err := Unmarshal(buf)
	require.ErrorIs(t, err, lds.ErrChecksumMismatch)

	buf = append([]byte(nil), rvtAirspeed[:len(rvtAirspeed)-1]...)
	_, err = Unmarshal(buf)
	require.ErrorIs(t, err, lds.ErrTruncatedField)
}

func TestTagString(t *testing.T) {
	require.Equal(t, "Frame Code", FrameCode.String())
	require.Equal(t, "Tag(99)", Tag(99).String())
}
