// Package rtpsender contains a utility to generate RTCP sender reports
// for a stream of KLV units.
package rtpsender

import (
	"sync"
	"time"

	"github.com/pion/rtcp"
	"github.com/pion/rtp"

	"github.com/jackhart/jmisb/pkg/misbtime"
)

// Sender generates RTCP sender reports that bind the RTP timestamps
// of a KLV stream to the wall-clock time of the units.
type Sender struct {
	// clock rate of the stream.
	ClockRate int

	// period of sender reports.
	Period time.Duration

	// canonical name of the source (optional).
	// When set, reports are compound packets that contain a source description.
	CNAME string

	// function that returns the current time (optional).
	// It defaults to time.Now.
	TimeNow func() time.Time

	// function that is called when a report is ready.
	WritePacketRTCP func(rtcp.Packet)

	mutex sync.RWMutex

	started        bool
	lastTimeRTP    uint32
	lastTimeNTP    time.Time
	lastTimeSystem time.Time
	ssrc           uint32
	lastSeqNum     uint16
	packetCount    uint32
	octetCount     uint32

	terminate chan struct{}
	done      chan struct{}
}

// Initialize initializes a Sender.
func (s *Sender) Initialize() {
	if s.TimeNow == nil {
		s.TimeNow = time.Now
	}

	s.terminate = make(chan struct{})
	s.done = make(chan struct{})

	go s.run()
}

// Close closes the Sender.
func (s *Sender) Close() {
	close(s.terminate)
	<-s.done
}

func (s *Sender) run() {
	defer close(s.done)

	t := time.NewTicker(s.Period)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			report := s.report()
			if report != nil {
				s.WritePacketRTCP(report)
			}

		case <-s.terminate:
			return
		}
	}
}

func (s *Sender) report() rtcp.Packet {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if !s.started || s.ClockRate == 0 {
		return nil
	}

	elapsed := s.TimeNow().Sub(s.lastTimeSystem)

	sr := &rtcp.SenderReport{
		SSRC:        s.ssrc,
		NTPTime:     misbtime.NTP(s.lastTimeNTP.Add(elapsed)),
		RTPTime:     s.lastTimeRTP + uint32(elapsed.Seconds()*float64(s.ClockRate)),
		PacketCount: s.packetCount,
		OctetCount:  s.octetCount,
	}

	if s.CNAME == "" {
		return sr
	}

	return &rtcp.CompoundPacket{
		sr,
		&rtcp.SourceDescription{
			Chunks: []rtcp.SourceDescriptionChunk{{
				Source: s.ssrc,
				Items: []rtcp.SourceDescriptionItem{{
					Type: rtcp.SDESCNAME,
					Text: s.CNAME,
				}},
			}},
		},
	}
}

// ProcessPacket updates the state of the Sender with a RTP packet.
// ntp is the wall-clock time of the KLV unit the packet belongs to.
func (s *Sender) ProcessPacket(pkt *rtp.Packet, ntp time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.started = true
	s.lastTimeRTP = pkt.Timestamp
	s.lastTimeNTP = ntp
	s.lastTimeSystem = s.TimeNow()
	s.ssrc = pkt.SSRC
	s.lastSeqNum = pkt.SequenceNumber

	s.packetCount++
	s.octetCount += uint32(len(pkt.Payload))
}

// ProcessUnit updates the state of the Sender with the RTP packets of a KLV unit.
func (s *Sender) ProcessUnit(pkts []*rtp.Packet, ntp time.Time) {
	for _, pkt := range pkts {
		s.ProcessPacket(pkt, ntp)
	}
}

// Stats are statistics.
type Stats struct {
	LastSequenceNumber uint16
	LastRTP            uint32
	LastNTP            time.Time
	PacketCount        uint32
	OctetCount         uint32
}

// Stats returns statistics.
func (s *Sender) Stats() *Stats {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if !s.started {
		return nil
	}

	return &Stats{
		LastSequenceNumber: s.lastSeqNum,
		LastRTP:            s.lastTimeRTP,
		LastNTP:            s.lastTimeNTP,
		PacketCount:        s.packetCount,
		OctetCount:         s.octetCount,
	}
}
