package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rawCmd = &cobra.Command{
	Use:   "raw FILE",
	Short: "Print a file that contains a sequence of KLV packets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		buf, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		logger.Debug("file loaded",
			zap.String("path", args[0]),
			zap.Int("size", len(buf)))

		err = dumpUnit(cmd.OutOrStdout(), logger, buf)
		if err != nil {
			return fmt.Errorf("unable to read %s: %w", args[0], err)
		}

		return nil
	},
}
