package lds

import (
	"errors"
	"fmt"

	"github.com/jackhart/jmisb/pkg/ber"
)

// Field is a field of a local set.
type Field struct {
	// tag of the field.
	Tag uint64

	// value of the field.
	// It points to the parsed buffer and must not be modified.
	Data []byte

	// position of Data inside the parsed buffer.
	Offset int
}

// ParseFields splits the region buf[start:start+length] into fields.
// Fields are returned in the order they appear.
func ParseFields(buf []byte, start int, length int) ([]Field, error) {
	if start < 0 || length < 0 || (start+length) > len(buf) {
		return nil, fmt.Errorf("%w: region [%d, %d) exceeds buffer of %d bytes",
			ErrTruncatedField, start, start+length, len(buf))
	}

	end := start + length
	region := buf[:end]

	var fields []Field
	pos := start

	for pos < end {
		tag, err := ber.DecodeOID(region, pos)
		if err != nil {
			return nil, regionError(err, "tag", pos)
		}
		pos += tag.Length

		l, err := ber.DecodeLength(region, pos)
		if err != nil {
			return nil, regionError(err, "length", pos)
		}
		pos += l.SizeOfLength

		if l.Value > uint64(end-pos) {
			return nil, fmt.Errorf("%w: tag %d declares %d bytes, %d available",
				ErrTruncatedField, tag.Value, l.Value, end-pos)
		}

		n := int(l.Value)
		fields = append(fields, Field{
			Tag:    tag.Value,
			Data:   region[pos : pos+n],
			Offset: pos,
		})
		pos += n
	}

	return fields, nil
}

// regionError reports BER errors caused by the end of the region as truncated fields.
func regionError(err error, what string, pos int) error {
	if errors.Is(err, ber.ErrTruncated) {
		return fmt.Errorf("%w: %s at offset %d: %w", ErrTruncatedField, what, pos, err)
	}
	return err
}
