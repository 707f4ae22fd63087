// Package klvts contains a writer and a reader of KLV units carried in MPEG-TS.
// Specification: MISB ST 1402
package klvts

import (
	"bufio"
	"io"

	"github.com/bluenviron/mediacommon/v2/pkg/formats/mpegts"

	"github.com/jackhart/jmisb/pkg/lds"
)

// Writer writes KLV units into a MPEG-TS stream.
// Units are written as synchronous metadata, with a PTS in each PES header,
// so that streams without other tracks can be read back.
type Writer struct {
	// destination of the stream.
	W io.Writer

	bw    *bufio.Writer
	w     *mpegts.Writer
	track *mpegts.Track
}

// Initialize initializes a Writer.
func (w *Writer) Initialize() error {
	w.bw = bufio.NewWriter(w.W)

	w.track = &mpegts.Track{
		Codec: &mpegts.CodecKLV{
			Synchronous: true,
		},
	}

	w.w = mpegts.NewWriter(w.bw, []*mpegts.Track{w.track})

	return nil
}

// WriteUnit writes a KLV unit.
// pts is expressed in 90kHz units.
func (w *Writer) WriteUnit(pts int64, unit []byte) error {
	return w.w.WriteKLV(w.track, pts, unit)
}

// WriteMessage serializes a local set message and writes it.
func (w *Writer) WriteMessage(pts int64, msg *lds.Message) error {
	buf, err := msg.Marshal(false)
	if err != nil {
		return err
	}
	return w.WriteUnit(pts, buf)
}

// Flush writes buffered data to the destination.
func (w *Writer) Flush() error {
	return w.bw.Flush()
}
