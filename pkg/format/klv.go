package format

import (
	"fmt"

	"github.com/pion/rtp"
	psdp "github.com/pion/sdp/v3"

	"github.com/jackhart/jmisb/pkg/format/rtpklv"
)

const (
	klvMediaType = "application"
	klvEncoding  = "smpte336m"
	klvClockRate = 90000
)

// KLV is the RTP format of SMPTE ST 336 KLV metadata.
// Specification: RFC6597
type KLV struct {
	PayloadTyp uint8

	// maximum size of packet payloads produced by encoders (optional).
	PayloadMaxSize int
}

func (f *KLV) unmarshal(ctx *unmarshalContext) error {
	if ctx.mediaType != klvMediaType {
		return fmt.Errorf("KLV is not allowed in media of type '%s'", ctx.mediaType)
	}

	f.PayloadTyp = ctx.payloadType
	return nil
}

// Codec implements Format.
func (f *KLV) Codec() string {
	return "KLV"
}

// ClockRate implements Format.
func (f *KLV) ClockRate() int {
	return klvClockRate
}

// PayloadType implements Format.
func (f *KLV) PayloadType() uint8 {
	return f.PayloadTyp
}

// RTPMap implements Format.
func (f *KLV) RTPMap() string {
	return fmt.Sprintf("%s/%d", klvEncoding, klvClockRate)
}

// FMTP implements Format. KLV has no format parameters.
func (f *KLV) FMTP() map[string]string {
	return nil
}

// PTSEqualsDTS implements Format.
// KLV units are never reordered, therefore every packet carries a DTS.
func (f *KLV) PTSEqualsDTS(*rtp.Packet) bool {
	return true
}

// MediaDescription returns a SDP media description of the format.
func (f *KLV) MediaDescription() *psdp.MediaDescription {
	return MediaDescription(klvMediaType, f)
}

// CreateDecoder creates a RTP/KLV decoder.
func (f *KLV) CreateDecoder() (*rtpklv.Decoder, error) {
	d := &rtpklv.Decoder{}
	return d, d.Init()
}

// CreateEncoder creates a RTP/KLV encoder that uses the payload type of the format.
func (f *KLV) CreateEncoder() (*rtpklv.Encoder, error) {
	e := &rtpklv.Encoder{
		PayloadType:    f.PayloadTyp,
		PayloadMaxSize: f.PayloadMaxSize,
	}
	return e, e.Init()
}
