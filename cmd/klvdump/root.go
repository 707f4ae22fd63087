package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type globalFlags struct {
	Verbose bool
}

var (
	flags  globalFlags
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "klvdump",
	Short:         "Print the content of KLV metadata",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		var err error
		logger, err = newLogger(flags.Verbose)
		if err != nil {
			return fmt.Errorf("unable to setup logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		logger.Sync() //nolint:errcheck
	},
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	conf := zap.NewProductionConfig()
	conf.Encoding = "console"
	conf.DisableStacktrace = true
	return conf.Build()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "print debug messages")

	rootCmd.AddCommand(rawCmd)
	rootCmd.AddCommand(tsCmd)
}
