package main

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/jackhart/jmisb/pkg/klv"
	"github.com/jackhart/jmisb/pkg/lds"
	"github.com/jackhart/jmisb/pkg/st0102"
	"github.com/jackhart/jmisb/pkg/st0601"
	"github.com/jackhart/jmisb/pkg/st0806"
)

type localSet struct {
	name      string
	unmarshal func([]byte) (*lds.Message, error)
}

var localSets = map[klv.UniversalLabel]localSet{
	klv.UASDatalinkLocalSet: {"UAS Datalink Local Set", st0601.Unmarshal},
	klv.RVTLocalSet:         {"RVT Local Set", st0806.Unmarshal},
}

// dumpUnit prints every packet of a KLV unit.
func dumpUnit(w io.Writer, l *zap.Logger, unit []byte) error {
	packets, err := klv.ReadPackets(unit)
	if err != nil {
		return err
	}

	for _, pkt := range packets {
		dumpPacket(w, l, pkt)
	}

	return nil
}

func dumpPacket(w io.Writer, l *zap.Logger, pkt klv.Packet) {
	ls, ok := localSets[pkt.Key]
	if !ok {
		if key, ok2 := st0102.Lookup(pkt.Key); ok2 {
			fmt.Fprintf(w, "%v: %x\n", key, pkt.Value)
			return
		}

		l.Debug("skipping packet with unknown key",
			zap.Stringer("key", pkt.Key),
			zap.Int("size", len(pkt.Value)))
		return
	}

	msg, err := ls.unmarshal(pkt.Raw)
	if err != nil {
		l.Warn("unable to decode local set",
			zap.String("set", ls.name),
			zap.Error(err))
		return
	}

	fmt.Fprintf(w, "%s (%d fields)\n", ls.name, msg.Len())

	for _, tag := range msg.Tags() {
		v, _ := msg.Field(tag)
		fmt.Fprintf(w, "  %d %s: %s\n", tag, v.DisplayName(), v.DisplayableValue())
	}
}
