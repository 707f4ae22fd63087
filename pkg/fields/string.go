package fields

import (
	"encoding/hex"
	"fmt"
	"unicode/utf8"
)

// String is a UTF-8 string.
type String struct {
	Name  string
	Value string
}

// DecodeString decodes a String.
func DecodeString(name string, data []byte) (*String, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("invalid UTF-8 string")
	}

	return &String{
		Name:  name,
		Value: string(data),
	}, nil
}

// Bytes implements lds.Value.
func (s *String) Bytes() []byte {
	return []byte(s.Value)
}

// DisplayName implements lds.Value.
func (s *String) DisplayName() string {
	return s.Name
}

// DisplayableValue implements lds.Value.
func (s *String) DisplayableValue() string {
	return s.Value
}

// Raw is a value whose content is not interpreted.
type Raw struct {
	Name string
	Data []byte
}

// Bytes implements lds.Value.
func (r *Raw) Bytes() []byte {
	return r.Data
}

// DisplayName implements lds.Value.
func (r *Raw) DisplayName() string {
	return r.Name
}

// DisplayableValue implements lds.Value.
func (r *Raw) DisplayableValue() string {
	return "0x" + hex.EncodeToString(r.Data)
}
