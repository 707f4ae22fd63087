// Package bits contains functions to read and write big-endian unsigned
// and signed integers of arbitrary width from/to KLV value buffers.
package bits

import (
	"errors"
	"fmt"
)

// ErrShortBuffer is returned when an integer exceeds the buffer.
var ErrShortBuffer = errors.New("buffer is too short")

// ReadUint reads a big-endian unsigned integer of the given size in bytes.
func ReadUint(buf []byte, offset int, size int) (uint64, error) {
	if size < 1 || size > 8 {
		return 0, fmt.Errorf("invalid integer size: %d", size)
	}
	if offset < 0 || (offset+size) > len(buf) {
		return 0, fmt.Errorf("%w: %d bytes at offset %d, buffer is %d bytes",
			ErrShortBuffer, size, offset, len(buf))
	}

	var v uint64
	for _, b := range buf[offset : offset+size] {
		v = v<<8 | uint64(b)
	}
	return v, nil
}

// ReadInt reads a big-endian two's complement integer of the given size in bytes.
func ReadInt(buf []byte, offset int, size int) (int64, error) {
	v, err := ReadUint(buf, offset, size)
	if err != nil {
		return 0, err
	}

	// sign extension
	shift := 64 - size*8
	return int64(v<<shift) >> shift, nil
}

// ReadVariableUint reads an unsigned integer that occupies the whole buffer.
func ReadVariableUint(buf []byte) (uint64, error) {
	if len(buf) == 0 || len(buf) > 8 {
		return 0, fmt.Errorf("invalid integer size: %d", len(buf))
	}
	return ReadUint(buf, 0, len(buf))
}
