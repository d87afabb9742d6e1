package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/geronimo/internal/config"
	"github.com/oshokin/geronimo/internal/logger"
	"github.com/oshokin/geronimo/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// logLevel overrides the configured log level.
	logLevel string

	// rootCmd represents the base command of the chess clock.
	rootCmd = &cobra.Command{
		Use:   "geronimo",
		Short: "Two-player chess clock.",
		Long: `Geronimo is a two-player chess clock.

Play on one terminal with "geronimo play", or run "geronimo serve" and drive
the clock from other devices with tap, pause, reset, set-time, status and watch.`,
		SilenceUsage: true,
	}
)

// Execute runs the geronimo CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	err := rootCmd.Execute()

	// Flush buffered log entries; os.Exit skips deferred calls.
	_ = logger.Logger().Sync()

	if err != nil {
		os.Exit(1)
	}
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().
		StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
}
