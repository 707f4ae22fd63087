// Package format contains RTP format definitions, decoders and encoders.
package format

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pion/rtp"
	psdp "github.com/pion/sdp/v3"
)

// ErrUnsupportedFormat is returned when a media description does not carry a supported format.
var ErrUnsupportedFormat = errors.New("unsupported format")

func getFormatAttribute(attributes []psdp.Attribute, payloadType uint8, key string) string {
	for _, attr := range attributes {
		if attr.Key == key {
			v := strings.TrimSpace(attr.Value)
			if parts := strings.SplitN(v, " ", 2); len(parts) == 2 {
				if tmp, err := strconv.ParseUint(parts[0], 10, 8); err == nil && uint8(tmp) == payloadType {
					return parts[1]
				}
			}
		}
	}
	return ""
}

func getCodecAndClock(rtpMap string) (string, string) {
	parts2 := strings.SplitN(rtpMap, "/", 2)
	if len(parts2) != 2 {
		return "", ""
	}

	return strings.ToLower(parts2[0]), parts2[1]
}

type unmarshalContext struct {
	mediaType   string
	payloadType uint8
	clock       string
	codec       string
	rtpMap      string
}

// Format is a media format.
// It defines the payload type of RTP packets and how to encode/decode them.
type Format interface {
	unmarshal(ctx *unmarshalContext) error

	// Codec returns the codec name.
	Codec() string

	// ClockRate returns the clock rate.
	ClockRate() int

	// PayloadType returns the payload type.
	PayloadType() uint8

	// RTPMap returns the rtpmap attribute.
	RTPMap() string

	// FMTP returns the fmtp attribute.
	FMTP() map[string]string

	// PTSEqualsDTS checks whether PTS is equal to DTS in RTP packets.
	PTSEqualsDTS(*rtp.Packet) bool
}

// Unmarshal decodes a format from a media description.
func Unmarshal(md *psdp.MediaDescription, payloadTypeStr string) (Format, error) {
	tmp, err := strconv.ParseUint(payloadTypeStr, 10, 8)
	if err != nil {
		return nil, err
	}
	payloadType := uint8(tmp)

	rtpMap := getFormatAttribute(md.Attributes, payloadType, "rtpmap")
	codec, clock := getCodecAndClock(rtpMap)

	var format Format

	switch {
	case codec == "smpte336m" && clock == "90000" && payloadType >= 96 && payloadType <= 127:
		format = &KLV{}

	default:
		return nil, fmt.Errorf("%w: payload type %d, rtpmap '%s'", ErrUnsupportedFormat, payloadType, rtpMap)
	}

	err = format.unmarshal(&unmarshalContext{
		mediaType:   md.MediaName.Media,
		payloadType: payloadType,
		clock:       clock,
		codec:       codec,
		rtpMap:      rtpMap,
	})
	if err != nil {
		return nil, err
	}

	return format, nil
}

// MediaDescription returns a media description that carries a format.
func MediaDescription(mediaType string, f Format) *psdp.MediaDescription {
	pt := strconv.FormatUint(uint64(f.PayloadType()), 10)

	md := &psdp.MediaDescription{
		MediaName: psdp.MediaName{
			Media:   mediaType,
			Protos:  []string{"RTP", "AVP"},
			Formats: []string{pt},
		},
	}

	if rtpMap := f.RTPMap(); rtpMap != "" {
		md.Attributes = append(md.Attributes, psdp.Attribute{
			Key:   "rtpmap",
			Value: pt + " " + rtpMap,
		})
	}

	if fmtp := f.FMTP(); len(fmtp) != 0 {
		keys := make([]string, 0, len(fmtp))
		for key := range fmtp {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		tmp := make([]string, len(keys))
		for i, key := range keys {
			tmp[i] = key + "=" + fmtp[key]
		}

		md.Attributes = append(md.Attributes, psdp.Attribute{
			Key:   "fmtp",
			Value: pt + " " + strings.Join(tmp, "; "),
		})
	}

	return md
}
