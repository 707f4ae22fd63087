// Package rtpklv contains a RTP decoder and encoder for KLV units.
// A KLV unit is the set of KLV packets that share a presentation time.
// Specification: RFC6597
package rtpklv
