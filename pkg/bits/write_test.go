package bits

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendUint(t *testing.T) {
	require.Equal(t, []byte{0x00, 0x78}, AppendUint(nil, 120, 2))
	require.Equal(t, []byte{0x01, 0x02, 0x03}, AppendUint(nil, 0x010203, 3))
	require.Equal(t, []byte{0xff, 0x34}, AppendUint([]byte{0xff}, 0x1234, 1))
}

func TestAppendVariableUint(t *testing.T) {
	for _, ca := range []struct {
		name string
		dec  uint64
		enc  []byte
	}{
		{
			"zero",
			0,
			[]byte{0x00},
		},
		{
			"one byte",
			0xff,
			[]byte{0xff},
		},
		{
			"two bytes",
			0x100,
			[]byte{0x01, 0x00},
		},
		{
			"four bytes",
			4294967295,
			[]byte{0xff, 0xff, 0xff, 0xff},
		},
	} {
		t.Run(ca.name, func(t *testing.T) {
			require.Equal(t, ca.enc, AppendVariableUint(nil, ca.dec))
			require.Equal(t, len(ca.enc), VariableUintSize(ca.dec))

			v, err := ReadVariableUint(ca.enc)
			require.NoError(t, err)
			require.Equal(t, ca.dec, v)
		})
	}
}
