// Package checksum contains the 16-bit running sum used to protect local sets.
// Specification: MISB ST 0601, section 6.5
package checksum

import (
	"errors"
	"fmt"
)

// Size is the size of a checksum value.
const Size = 2

// ErrShortBuffer is returned when a buffer cannot hold a checksum.
var ErrShortBuffer = errors.New("buffer is too short to contain a checksum")

// Sum computes the 16-bit running sum of buf.
// Bytes at even positions are added to the high byte of the sum,
// bytes at odd positions to the low byte.
func Sum(buf []byte) uint16 {
	var sum uint16
	for i, b := range buf {
		sum += uint16(b) << (8 * ((i + 1) % 2))
	}
	return sum
}

// Compute computes the checksum of a buffer whose last two bytes
// are reserved for the checksum value.
// When stamp is true, the checksum is also written into those bytes.
func Compute(buf []byte, stamp bool) ([]byte, error) {
	if len(buf) < Size {
		return nil, fmt.Errorf("%w: %d bytes", ErrShortBuffer, len(buf))
	}

	sum := Sum(buf[:len(buf)-Size])
	v := []byte{byte(sum >> 8), byte(sum)}

	if stamp {
		copy(buf[len(buf)-Size:], v)
	}

	return v, nil
}

// Verify checks whether the last two bytes of buf
// hold the checksum of the preceding bytes.
func Verify(buf []byte) bool {
	v, err := Compute(buf, false)
	if err != nil {
		return false
	}
	return v[0] == buf[len(buf)-2] && v[1] == buf[len(buf)-1]
}
