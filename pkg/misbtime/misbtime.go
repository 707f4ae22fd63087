// Package misbtime contains functions to encode and decode timestamps
// to/from the MISB Precision Time Stamp and NTP formats.
package misbtime

import (
	"errors"
	"math"
	"time"
)

// ErrBeforeEpoch is returned when a time precedes the POSIX epoch.
var ErrBeforeEpoch = errors.New("time precedes the POSIX epoch")

// Size is the size of an encoded Precision Time Stamp.
const Size = 8

// Encode encodes a timestamp as the number of microseconds elapsed
// since the POSIX epoch.
// Specification: MISB ST 0603
func Encode(t time.Time) (uint64, error) {
	us := t.UnixMicro()
	if us < 0 {
		return 0, ErrBeforeEpoch
	}
	return uint64(us), nil
}

// Decode decodes a Precision Time Stamp.
// Specification: MISB ST 0603
func Decode(v uint64) time.Time {
	return time.UnixMicro(int64(v)).UTC()
}

// Marshal encodes a timestamp in big-endian byte order.
func Marshal(t time.Time) ([]byte, error) {
	v, err := Encode(t)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, Size)
	for i := Size - 1; i >= 0; i-- {
		buf[i] = byte(v)
		v >>= 8
	}
	return buf, nil
}

// NTP encodes a timestamp in NTP format.
// Specification: RFC3550, section 4
func NTP(t time.Time) uint64 {
	ntp := uint64(t.UnixNano()) + 2208988800*1000000000
	secs := ntp / 1000000000
	fractional := uint64(math.Round(float64((ntp%1000000000)*(1<<32)) / 1000000000))
	return secs<<32 | fractional
}

// FromNTP decodes a timestamp from NTP format.
// The returned time is in UTC.
// Specification: RFC3550, section 4
func FromNTP(v uint64) time.Time {
	secs := int64((v >> 32) - 2208988800)
	nanos := int64(math.Round(float64(((v & 0xFFFFFFFF) * 1000000000) / (1 << 32))))
	return time.Unix(secs, nanos).UTC()
}
