package bits

// AppendUint appends v as a big-endian unsigned integer of the given size in bytes.
// Bits of v that do not fit are discarded.
func AppendUint(dst []byte, v uint64, size int) []byte {
	for i := size - 1; i >= 0; i-- {
		dst = append(dst, byte(v>>(i*8)))
	}
	return dst
}

// VariableUintSize returns the minimum number of bytes needed to hold v.
// Zero needs one byte.
func VariableUintSize(v uint64) int {
	n := 1
	for v > 0xff {
		v >>= 8
		n++
	}
	return n
}

// AppendVariableUint appends v using the minimum number of bytes.
func AppendVariableUint(dst []byte, v uint64) []byte {
	return AppendUint(dst, v, VariableUintSize(v))
}
