package lds

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"

	"github.com/jackhart/jmisb/pkg/ber"
	"github.com/jackhart/jmisb/pkg/checksum"
	"github.com/jackhart/jmisb/pkg/klv"
)

// Message is a local set message.
// It is immutable and can be read by multiple goroutines.
type Message struct {
	dict   Dictionary
	values map[uint64]Value
}

// NewMessage allocates a Message that contains the given values.
// The checksum is computed during serialization, therefore a value
// with the checksum tag is discarded. Nil values, including nil pointers
// wrapped in a Value, are discarded too.
func NewMessage(dict Dictionary, values map[uint64]Value) *Message {
	m := &Message{
		dict:   dict,
		values: make(map[uint64]Value, len(values)),
	}

	for tag, v := range values {
		if tag == dict.ChecksumTag() || isNil(v) {
			continue
		}
		m.values[tag] = v
	}

	return m
}

func isNil(v Value) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// Unmarshal decodes a message that starts with the Universal Label of the dictionary.
func Unmarshal(dict Dictionary, buf []byte) (*Message, error) {
	if len(buf) < klv.LabelLength {
		return nil, fmt.Errorf("%w: buffer is too short to contain a universal label", ErrTruncatedField)
	}

	ul := klv.UniversalLabel(buf[:klv.LabelLength])
	if ul != dict.UniversalLabel() {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedLabel, ul)
	}

	l, err := ber.DecodeLength(buf, klv.LabelLength)
	if err != nil {
		return nil, err
	}

	start := klv.LabelLength + l.SizeOfLength
	if l.Value > uint64(len(buf)-start) {
		return nil, fmt.Errorf("%w: set declares %d bytes, %d available",
			ErrTruncatedField, l.Value, len(buf)-start)
	}

	n := int(l.Value)
	return unmarshalRegion(dict, buf[:start+n], start, n)
}

// UnmarshalNested decodes a message that is the value of a field of another message,
// therefore has no Universal Label and no length.
func UnmarshalNested(dict Dictionary, buf []byte) (*Message, error) {
	return unmarshalRegion(dict, buf, 0, len(buf))
}

func unmarshalRegion(dict Dictionary, buf []byte, start int, length int) (*Message, error) {
	fields, err := ParseFields(buf, start, length)
	if err != nil {
		return nil, err
	}

	m := &Message{
		dict:   dict,
		values: make(map[uint64]Value),
	}
	checksumTag := dict.ChecksumTag()
	checksumFound := false

	for _, f := range fields {
		if f.Tag == checksumTag {
			err = verifyChecksum(buf, f)
			if err != nil {
				return nil, err
			}
			checksumFound = true
			continue
		}

		if !dict.Known(f.Tag) {
			return nil, fmt.Errorf("%w: %d", ErrUnknownTag, f.Tag)
		}

		v, err := dict.Decode(f.Tag, f.Data)
		if err != nil {
			return nil, &FieldError{Tag: f.Tag, Err: err}
		}

		m.values[f.Tag] = v
	}

	if !checksumFound {
		return nil, ErrMissingChecksum
	}

	return m, nil
}

// verifyChecksum checks the checksum field against the buffer that ends with it.
func verifyChecksum(buf []byte, f Field) error {
	if len(f.Data) != checksum.Size {
		return fmt.Errorf("%w: checksum field is %d bytes", ErrChecksumMismatch, len(f.Data))
	}

	expected, err := checksum.Compute(buf[:f.Offset+len(f.Data)], false)
	if err != nil {
		return err
	}

	if !bytes.Equal(expected, f.Data) {
		return fmt.Errorf("%w: expected %x, got %x", ErrChecksumMismatch, expected, f.Data)
	}

	return nil
}

// Marshal encodes the message.
// When nested is true, the Universal Label and the length are omitted,
// in order to use the message as the value of a field of another message.
func (m *Message) Marshal(nested bool) ([]byte, error) {
	checksumTag := m.dict.ChecksumTag()

	var region []byte

	for _, tag := range m.Tags() {
		v := m.values[tag].Bytes()
		if len(v) == 0 {
			continue
		}

		region = ber.AppendOID(region, tag)
		region = ber.AppendLength(region, uint64(len(v)))
		region = append(region, v...)
	}

	// the checksum is the last field, with a placeholder value
	checksumLength, err := ber.EncodeLengthForm(checksum.Size, ber.LongForm)
	if err != nil {
		return nil, err
	}
	region = ber.AppendOID(region, checksumTag)
	region = append(region, checksumLength...)
	region = append(region, make([]byte, checksum.Size)...)

	var buf []byte

	if nested {
		buf = region
	} else {
		buf = make([]byte, 0, klv.LabelLength+ber.LengthSize(uint64(len(region)))+len(region))
		ul := m.dict.UniversalLabel()
		buf = append(buf, ul[:]...)
		buf = ber.AppendLength(buf, uint64(len(region)))
		buf = append(buf, region...)
	}

	_, err = checksum.Compute(buf, true)
	if err != nil {
		return nil, err
	}

	return buf, nil
}

// Dictionary returns the dictionary of the message.
func (m *Message) Dictionary() Dictionary {
	return m.dict
}

// UniversalLabel returns the key of the message.
func (m *Message) UniversalLabel() klv.UniversalLabel {
	return m.dict.UniversalLabel()
}

// Field returns the value of a field.
func (m *Message) Field(tag uint64) (Value, bool) {
	v, ok := m.values[tag]
	return v, ok
}

// Len returns the number of fields, checksum excluded.
func (m *Message) Len() int {
	return len(m.values)
}

// Tags returns the tags of the message in ascending order.
// The checksum tag is never included.
func (m *Message) Tags() []uint64 {
	tags := make([]uint64, 0, len(m.values))
	for tag := range m.values {
		if tag == m.dict.ChecksumTag() {
			continue
		}
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		return tags[i] < tags[j]
	})
	return tags
}

// Values returns a copy of the fields of the message.
func (m *Message) Values() map[uint64]Value {
	ret := make(map[uint64]Value, len(m.values))
	for tag, v := range m.values {
		ret[tag] = v
	}
	return ret
}
