// Package fields contains value types shared by local set dictionaries.
// Every type implements the Value interface of package lds.
package fields

import (
	"errors"
)

// ErrInvalidLength is returned when a value has an unexpected number of bytes.
var ErrInvalidLength = errors.New("invalid value length")

// ErrOutOfRange is returned when a value exceeds the range of its field.
var ErrOutOfRange = errors.New("value out of range")

// ErrReservedValue is returned when a value holds an error indicator.
var ErrReservedValue = errors.New("reserved value")
