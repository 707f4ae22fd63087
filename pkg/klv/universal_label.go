// Package klv contains the SMPTE 336 Universal Label type and
// functions to split top-level KLV packets out of a byte stream.
package klv

import (
	"fmt"
	"strings"
)

// LabelLength is the size of a Universal Label.
const LabelLength = 16

// UniversalLabel is a 16-byte SMPTE Universal Label.
// Two labels are equal when all their bytes are equal.
type UniversalLabel [LabelLength]byte

// NewUniversalLabel allocates a UniversalLabel from a byte slice.
func NewUniversalLabel(buf []byte) (UniversalLabel, error) {
	var ul UniversalLabel
	if len(buf) != LabelLength {
		return ul, fmt.Errorf("universal label must be %d bytes, got %d", LabelLength, len(buf))
	}
	copy(ul[:], buf)
	return ul, nil
}

// Bytes returns the label as a new byte slice.
func (ul UniversalLabel) Bytes() []byte {
	buf := make([]byte, LabelLength)
	copy(buf, ul[:])
	return buf
}

// Equal reports whether two labels are identical.
func (ul UniversalLabel) Equal(other UniversalLabel) bool {
	return ul == other
}

// String implements fmt.Stringer.
func (ul UniversalLabel) String() string {
	parts := make([]string, LabelLength)
	for i, b := range ul {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, ".")
}

// HasKLVPrefix checks whether buf starts with the SMPTE designator
// shared by all Universal Labels: 0x060e2b34.
func HasKLVPrefix(buf []byte) bool {
	if len(buf) < 4 {
		return false
	}
	return buf[0] == 0x06 && buf[1] == 0x0e && buf[2] == 0x2b && buf[3] == 0x34
}

// well-known labels of local sets.
var (
	// UASDatalinkLocalSet is the key of the ST 0601 UAS Datalink Local Set.
	UASDatalinkLocalSet = UniversalLabel{
		0x06, 0x0e, 0x2b, 0x34, 0x02, 0x0b, 0x01, 0x01,
		0x0e, 0x01, 0x03, 0x01, 0x01, 0x00, 0x00, 0x00,
	}

	// RVTLocalSet is the key of the ST 0806 Remote Video Terminal Local Set.
	RVTLocalSet = UniversalLabel{
		0x06, 0x0e, 0x2b, 0x34, 0x02, 0x0b, 0x01, 0x01,
		0x0e, 0x01, 0x03, 0x01, 0x02, 0x00, 0x00, 0x00,
	}

	// SecurityMetadataLocalSet is the key of the ST 0102 Security Metadata Local Set.
	SecurityMetadataLocalSet = UniversalLabel{
		0x06, 0x0e, 0x2b, 0x34, 0x02, 0x03, 0x01, 0x01,
		0x0e, 0x01, 0x03, 0x03, 0x02, 0x00, 0x00, 0x00,
	}

	// VMTILocalSet is the key of the ST 0903 Video Moving Target Indicator Local Set.
	VMTILocalSet = UniversalLabel{
		0x06, 0x0e, 0x2b, 0x34, 0x02, 0x0b, 0x01, 0x01,
		0x0e, 0x01, 0x03, 0x03, 0x06, 0x00, 0x00, 0x00,
	}
)
