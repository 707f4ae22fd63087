package ber

import (
	"fmt"
)

func bytesNeeded(v uint64) int {
	n := 1
	for v > 0xff {
		v >>= 8
		n++
	}
	return n
}

// LengthSize returns the size of the minimal length field of v.
func LengthSize(v uint64) int {
	if v <= maxShortForm {
		return 1
	}
	return 1 + bytesNeeded(v)
}

// AppendLength appends the minimal length field of v to dst.
func AppendLength(dst []byte, v uint64) []byte {
	if v <= maxShortForm {
		return append(dst, byte(v))
	}
	return appendLongForm(dst, v)
}

func appendLongForm(dst []byte, v uint64) []byte {
	n := bytesNeeded(v)
	dst = append(dst, 0x80|byte(n))
	for i := n - 1; i >= 0; i-- {
		dst = append(dst, byte(v>>(i*8)))
	}
	return dst
}

// EncodeLength encodes a length field in the minimal form.
func EncodeLength(v uint64) []byte {
	return AppendLength(make([]byte, 0, LengthSize(v)), v)
}

// EncodeLengthForm encodes a length field in the given form.
// LongForm can be used to force the long form on values that fit the short form.
func EncodeLengthForm(v uint64, form Form) ([]byte, error) {
	switch form {
	case ShortForm:
		if v > maxShortForm {
			return nil, fmt.Errorf("%w: %d does not fit the short form", ErrMalformedLength, v)
		}
		return []byte{byte(v)}, nil

	case LongForm:
		return appendLongForm(make([]byte, 0, 1+bytesNeeded(v)), v), nil

	case OIDForm:
		return EncodeOID(v), nil
	}

	return nil, fmt.Errorf("unsupported form: %v", form)
}

// OIDSize returns the size of the BER-OID encoding of v.
func OIDSize(v uint64) int {
	n := 1
	for v > 0x7f {
		v >>= 7
		n++
	}
	return n
}

// AppendOID appends the BER-OID encoding of v to dst.
func AppendOID(dst []byte, v uint64) []byte {
	n := OIDSize(v)
	for i := n - 1; i >= 0; i-- {
		b := byte(v>>(i*7)) & 0x7f
		if i > 0 {
			b |= 0x80
		}
		dst = append(dst, b)
	}
	return dst
}

// EncodeOID encodes v as a BER-OID value.
func EncodeOID(v uint64) []byte {
	return AppendOID(make([]byte, 0, OIDSize(v)), v)
}
