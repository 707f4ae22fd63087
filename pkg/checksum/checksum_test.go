package checksum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSum(t *testing.T) {
	require.Equal(t, uint16(0), Sum(nil))
	require.Equal(t, uint16(0x0100), Sum([]byte{0x01}))
	require.Equal(t, uint16(0x0102), Sum([]byte{0x01, 0x02}))
	require.Equal(t, uint16(0x0402), Sum([]byte{0x01, 0x02, 0x03}))

	// wraps around
	require.Equal(t, uint16(0xfffe), Sum([]byte{0xff, 0xff, 0xff, 0xff}))
}

func TestCompute(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03, 0x04, 0x00, 0x00}

	v, err := Compute(buf, false)
	require.NoError(t, err)
	require.Equal(t, []byte{0x04, 0x06}, v)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x00, 0x00}, buf)

	v, err = Compute(buf, true)
	require.NoError(t, err)
	require.Equal(t, []byte{0x04, 0x06}, v)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x04, 0x06}, buf)

	require.True(t, Verify(buf))
}

func TestComputeShortBuffer(t *testing.T) {
	_, err := Compute([]byte{0x01}, false)
	require.ErrorIs(t, err, ErrShortBuffer)

	require.False(t, Verify([]byte{0x01}))

	v, err := Compute([]byte{0xaa, 0xbb}, false)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x00}, v)
}

func TestSingleBitFlip(t *testing.T) {
	buf := make([]byte, 40)
	for i := range buf {
		buf[i] = byte(i * 37)
	}
	_, err := Compute(buf, true)
	require.NoError(t, err)
	require.True(t, Verify(buf))

	for i := 0; i < len(buf)-2; i++ {
		for bit := 0; bit < 8; bit++ {
			buf[i] ^= 1 << bit
			require.False(t, Verify(buf), "byte %d bit %d", i, bit)
			buf[i] ^= 1 << bit
		}
	}

	require.True(t, Verify(buf))
}
