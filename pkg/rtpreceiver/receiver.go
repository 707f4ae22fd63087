// Package rtpreceiver contains a utility to receive KLV units from RTP packets.
package rtpreceiver

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pion/rtcp"
	"github.com/pion/rtp"

	"github.com/jackhart/jmisb/pkg/format/rtpklv"
	"github.com/jackhart/jmisb/pkg/misbtime"
)

// Unit is a KLV unit extracted from RTP packets.
type Unit struct {
	// content of the unit.
	Data []byte

	// RTP timestamp of the unit.
	RTPTime uint32

	// wall-clock time of the unit.
	// It is available after a sender report has been received.
	NTP          time.Time
	NTPAvailable bool
}

// Receiver extracts KLV units from RTP packets. It is in charge of:
// - removing packets with wrong SSRC
// - reordering packets and removing duplicates (when transport is unreliable)
// - counting lost packets
// - binding units to wall-clock time through sender reports
// - generating RTCP receiver reports
type Receiver struct {
	// clock rate of the stream.
	ClockRate int

	// SSRC of reports.
	LocalSSRC uint32

	// whether the transport is unreliable.
	UnreliableTransport bool

	// size of the reordering buffer. It must be a power of two.
	// It defaults to 64.
	BufferSize int

	// period of receiver reports.
	Period time.Duration

	// function that returns the current time (optional).
	// It defaults to time.Now.
	TimeNow func() time.Time

	// function that is called when a report is ready.
	WritePacketRTCP func(rtcp.Packet)

	// function that is called when a packet cannot be decoded (optional).
	OnDecodeError func(error)

	mutex sync.Mutex

	decoder   *rtpklv.Decoder
	reorderer reorderer

	started         bool
	remoteSSRC      uint32
	lastSeqNum      uint16
	seqNumCycles    uint16
	lastTimeRTP     uint32
	lastTimeSystem  time.Time
	jitter          float64
	totalLost       uint32
	lostSinceReport uint32
	seenSinceReport uint32

	srReceived   bool
	srTimeNTP    uint64
	srTimeRTP    uint32
	srTimeSystem time.Time

	terminate chan struct{}
	done      chan struct{}
}

// Initialize initializes a Receiver.
func (r *Receiver) Initialize() error {
	if r.BufferSize == 0 {
		r.BufferSize = 64
	}

	if r.BufferSize&(r.BufferSize-1) != 0 {
		return fmt.Errorf("BufferSize must be a power of two")
	}

	if r.Period == 0 {
		return fmt.Errorf("invalid Period")
	}

	if r.TimeNow == nil {
		r.TimeNow = time.Now
	}

	if r.OnDecodeError == nil {
		r.OnDecodeError = func(error) {}
	}

	r.decoder = &rtpklv.Decoder{}
	err := r.decoder.Init()
	if err != nil {
		return err
	}

	r.terminate = make(chan struct{})
	r.done = make(chan struct{})

	go r.run()

	return nil
}

// Close closes the Receiver.
func (r *Receiver) Close() {
	close(r.terminate)
	<-r.done
}

func (r *Receiver) run() {
	defer close(r.done)

	t := time.NewTicker(r.Period)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			report := r.report()
			if report != nil {
				r.WritePacketRTCP(report)
			}

		case <-r.terminate:
			return
		}
	}
}

func (r *Receiver) report() rtcp.Packet {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if !r.started || r.ClockRate == 0 {
		return nil
	}

	block := rtcp.ReceptionReport{
		SSRC:               r.remoteSSRC,
		LastSequenceNumber: uint32(r.seqNumCycles)<<16 | uint32(r.lastSeqNum),
		TotalLost:          r.totalLost,
		Jitter:             uint32(r.jitter),
	}

	if r.seenSinceReport != 0 {
		block.FractionLost = uint8(uint64(r.lostSinceReport) * 256 / uint64(r.seenSinceReport))
	}

	if r.srReceived {
		// middle 32 bits of the NTP timestamp
		block.LastSenderReport = uint32(r.srTimeNTP >> 16)

		// in units of 1/65536 seconds
		block.Delay = uint32(r.TimeNow().Sub(r.srTimeSystem).Seconds() * 65536)
	}

	r.lostSinceReport = 0
	r.seenSinceReport = 0

	return &rtcp.ReceiverReport{
		SSRC:    r.LocalSSRC,
		Reports: []rtcp.ReceptionReport{block},
	}
}

// ProcessPacket processes an incoming RTP packet.
// It returns the KLV units completed by the packet and the number of lost packets.
func (r *Receiver) ProcessPacket(pkt *rtp.Packet, system time.Time) ([]*Unit, uint64, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if !r.started {
		r.started = true
		r.remoteSSRC = pkt.SSRC
		r.lastSeqNum = pkt.SequenceNumber
		r.seenSinceReport = 1
		r.lastTimeRTP = pkt.Timestamp
		r.lastTimeSystem = system

		if r.UnreliableTransport {
			r.reorderer.initialize(r.BufferSize, pkt.SequenceNumber)
		}

		return r.decode(pkt), 0, nil
	}

	if pkt.SSRC != r.remoteSSRC {
		return nil, 0, fmt.Errorf("received packet with wrong SSRC %d, expected %d", pkt.SSRC, r.remoteSSRC)
	}

	var pkts []*rtp.Packet
	var lost uint64

	if r.UnreliableTransport {
		pkts, lost = r.reorderer.process(pkt)
	} else {
		pkts = []*rtp.Packet{pkt}
		if gap := int16(pkt.SequenceNumber - r.lastSeqNum - 1); gap > 0 {
			lost = uint64(gap)
		}
	}

	r.totalLost = min(r.totalLost+uint32(lost), 0xFFFFFF)
	r.lostSinceReport = min(r.lostSinceReport+uint32(lost), 0xFFFFFF)

	var units []*Unit

	for _, p := range pkts {
		if p.SequenceNumber < r.lastSeqNum {
			r.seqNumCycles++
		}

		r.seenSinceReport += uint32(p.SequenceNumber - r.lastSeqNum)
		r.lastSeqNum = p.SequenceNumber

		if r.ClockRate != 0 {
			// https://tools.ietf.org/html/rfc3550#page-39
			d := system.Sub(r.lastTimeSystem).Seconds()*float64(r.ClockRate) -
				(float64(p.Timestamp) - float64(r.lastTimeRTP))
			if d < 0 {
				d = -d
			}
			r.jitter += (d - r.jitter) / 16
		}

		r.lastTimeRTP = p.Timestamp
		r.lastTimeSystem = system

		units = append(units, r.decode(p)...)
	}

	return units, lost, nil
}

func (r *Receiver) decode(pkt *rtp.Packet) []*Unit {
	// partial units that span lost packets are dropped by the decoder
	data, err := r.decoder.Decode(pkt)
	if err != nil {
		if !errors.Is(err, rtpklv.ErrMorePacketsNeeded) {
			r.OnDecodeError(err)
		}
		return nil
	}

	u := &Unit{
		Data:    data,
		RTPTime: pkt.Timestamp,
	}
	u.NTP, u.NTPAvailable = r.unitNTPUnsafe(pkt.Timestamp)

	return []*Unit{u}
}

// ProcessSenderReport processes an incoming RTCP sender report.
func (r *Receiver) ProcessSenderReport(sr *rtcp.SenderReport, system time.Time) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.srReceived = true
	r.srTimeNTP = sr.NTPTime
	r.srTimeRTP = sr.RTPTime
	r.srTimeSystem = system
}

func (r *Receiver) unitNTPUnsafe(ts uint32) (time.Time, bool) {
	if !r.srReceived || r.ClockRate == 0 {
		return time.Time{}, false
	}

	diff := time.Duration(int32(ts-r.srTimeRTP)) * time.Second / time.Duration(r.ClockRate)

	return misbtime.FromNTP(r.srTimeNTP).Add(diff), true
}

// UnitNTP returns the wall-clock time of a RTP timestamp.
func (r *Receiver) UnitNTP(ts uint32) (time.Time, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.unitNTPUnsafe(ts)
}

// Stats are statistics.
type Stats struct {
	RemoteSSRC         uint32
	LastSequenceNumber uint16
	LastRTP            uint32
	LastNTP            time.Time
	TotalLost          uint32
	Jitter             float64
}

// Stats returns statistics.
func (r *Receiver) Stats() *Stats {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if !r.started {
		return nil
	}

	ntp, _ := r.unitNTPUnsafe(r.lastTimeRTP)

	return &Stats{
		RemoteSSRC:         r.remoteSSRC,
		LastSequenceNumber: r.lastSeqNum,
		LastRTP:            r.lastTimeRTP,
		LastNTP:            ntp,
		TotalLost:          r.totalLost,
		Jitter:             r.jitter,
	}
}
