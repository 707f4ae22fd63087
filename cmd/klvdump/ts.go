package main

import (
	"fmt"
	"os"
	"time"

	"github.com/bluenviron/mediacommon/v2/pkg/formats/mpegts"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jackhart/jmisb/pkg/klvts"
)

var tsCmd = &cobra.Command{
	Use:   "ts FILE",
	Short: "Print the KLV tracks of a MPEG-TS file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		w := cmd.OutOrStdout()

		r := &klvts.Reader{
			R: f,
			OnUnit: func(track *mpegts.Track, pts int64, unit []byte) error {
				fmt.Fprintf(w, "[PID %d, PTS %v]\n", track.PID,
					time.Duration(pts)*time.Second/90000)

				err2 := dumpUnit(w, logger, unit)
				if err2 != nil {
					logger.Warn("invalid KLV unit",
						zap.Uint16("pid", track.PID),
						zap.Error(err2))
				}
				return nil
			},
		}

		err = r.Initialize()
		if err != nil {
			return fmt.Errorf("unable to read %s: %w", args[0], err)
		}

		logger.Debug("KLV tracks found", zap.Int("count", len(r.Tracks())))

		return r.ReadAll()
	},
}
