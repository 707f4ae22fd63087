package klvts

import (
	"errors"
	"fmt"
	"io"

	"github.com/asticode/go-astits"
	"github.com/bluenviron/mediacommon/v2/pkg/formats/mpegts"
)

// ErrNoKLVTrack is returned when a stream does not contain KLV tracks.
var ErrNoKLVTrack = errors.New("no KLV track found")

// OnUnitFunc is the prototype of the callback passed to Reader.
type OnUnitFunc func(track *mpegts.Track, pts int64, unit []byte) error

// Reader reads KLV units from a MPEG-TS stream.
type Reader struct {
	// source of the stream.
	R io.Reader

	// called when a KLV unit is read.
	// pts is expressed in 90kHz units, never wraps around
	// and is relative to the first PTS of the track.
	OnUnit OnUnitFunc

	r      *mpegts.Reader
	tracks []*mpegts.Track
}

// Initialize initializes a Reader.
// It reads the stream until the KLV tracks are found.
func (r *Reader) Initialize() error {
	r.r = &mpegts.Reader{R: r.R}
	err := r.r.Initialize()
	if err != nil {
		return err
	}

	for _, track := range r.r.Tracks() {
		if _, ok := track.Codec.(*mpegts.CodecKLV); !ok {
			continue
		}

		r.tracks = append(r.tracks, track)

		td := &mpegts.TimeDecoder{}
		td.Initialize()

		cur := track
		r.r.OnDataKLV(cur, func(pts int64, data []byte) error {
			if r.OnUnit == nil {
				return nil
			}
			return r.OnUnit(cur, td.Decode(pts), data)
		})
	}

	if r.tracks == nil {
		return ErrNoKLVTrack
	}

	return nil
}

// Tracks returns the KLV tracks of the stream.
func (r *Reader) Tracks() []*mpegts.Track {
	return r.tracks
}

// Read reads the next chunk of the stream.
func (r *Reader) Read() error {
	return r.r.Read()
}

// ReadAll reads the stream until its end.
func (r *Reader) ReadAll() error {
	for {
		err := r.r.Read()
		if err != nil {
			if errors.Is(err, astits.ErrNoMorePackets) || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("unable to read MPEG-TS stream: %w", err)
		}
	}
}
