package ber

import (
	"fmt"
	"math"
)

// DecodeLength decodes a length field in short or long form.
func DecodeLength(buf []byte, offset int) (LengthField, error) {
	if offset < 0 || offset >= len(buf) {
		return LengthField{}, &DecodeError{
			Offset: offset,
			Err:    fmt.Errorf("%w: %w", ErrMalformedLength, ErrTruncated),
		}
	}

	first := buf[offset]

	// short form: bit 8 is 0, bits 1-7 contain the length
	if (first & 0x80) == 0 {
		return LengthField{Value: uint64(first), SizeOfLength: 1}, nil
	}

	// long form: bits 1-7 contain the number of subsequent length bytes
	n := int(first & 0x7f)
	if n == 0 {
		return LengthField{}, &DecodeError{
			Offset: offset,
			Err:    fmt.Errorf("%w: indefinite length", ErrMalformedLength),
		}
	}
	if n > 8 {
		return LengthField{}, &DecodeError{
			Offset: offset,
			Err:    fmt.Errorf("%w: %d length bytes", ErrMalformedLength, n),
		}
	}
	if (offset + 1 + n) > len(buf) {
		return LengthField{}, &DecodeError{
			Offset: offset,
			Err: fmt.Errorf("%w: %w: need %d bytes, %d available",
				ErrMalformedLength, ErrTruncated, n, len(buf)-offset-1),
		}
	}

	var v uint64
	for _, b := range buf[offset+1 : offset+1+n] {
		v = (v << 8) | uint64(b)
	}

	return LengthField{Value: v, SizeOfLength: 1 + n}, nil
}

// DecodeOID decodes a BER-OID value.
// Every byte carries 7 bits of the value, most significant group first;
// bit 8 is set on every byte but the last.
func DecodeOID(buf []byte, offset int) (Field, error) {
	if offset < 0 {
		return Field{}, &DecodeError{
			Offset: offset,
			Err:    fmt.Errorf("%w: %w", ErrMalformedTag, ErrTruncated),
		}
	}

	var v uint64
	for i := offset; i < len(buf); i++ {
		if v > (math.MaxUint64 >> 7) {
			return Field{}, &DecodeError{
				Offset: offset,
				Err:    fmt.Errorf("%w: value overflows 64 bits", ErrMalformedTag),
			}
		}

		b := buf[i]
		v = (v << 7) | uint64(b&0x7f)

		if (b & 0x80) == 0 {
			return Field{Value: v, Length: i - offset + 1}, nil
		}
	}

	return Field{}, &DecodeError{
		Offset: offset,
		Err:    fmt.Errorf("%w: %w", ErrMalformedTag, ErrTruncated),
	}
}

// DecodeLengthField decodes a length field.
// When oid is true, the length is encoded as a BER-OID value.
func DecodeLengthField(buf []byte, offset int, oid bool) (LengthField, error) {
	if !oid {
		return DecodeLength(buf, offset)
	}

	f, err := DecodeOID(buf, offset)
	if err != nil {
		return LengthField{}, err
	}

	return LengthField{Value: f.Value, SizeOfLength: f.Length}, nil
}
