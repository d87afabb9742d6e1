package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/oshokin/geronimo/internal/service/remote"
)

var (
	// serverAddress overrides server_addr for remote commands.
	serverAddress string
	// confirmReset acknowledges the reset prompt.
	confirmReset bool
)

// remoteOptions collects the flags shared by the remote commands.
func remoteOptions(cmd *cobra.Command) *remote.Options {
	return &remote.Options{
		ConfigPath: configPath,
		Address:    serverAddress,
		LogLevel:   logLevel,
		Out:        cmd.OutOrStdout(),
	}
}

var (
	tapCmd = &cobra.Command{
		Use:   "tap <a|b>",
		Short: "Tap a player's face on the host.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return remote.Tap(cmd.Context(), remoteOptions(cmd), args[0])
		},
	}

	pauseCmd = &cobra.Command{
		Use:   "pause",
		Short: "Pause or resume the host clock.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return remote.Pause(cmd.Context(), remoteOptions(cmd))
		},
	}

	resetCmd = &cobra.Command{
		Use:   "reset --yes",
		Short: "Reset both clocks on the host.",
		Long:  "Restores both clocks to the default time. The host only resets while paused.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return remote.Reset(cmd.Context(), remoteOptions(cmd), confirmReset)
		},
	}

	setTimeCmd = &cobra.Command{
		Use:   "set-time <a|b> <M:SS>",
		Short: "Set a player's time before the game starts.",
		Long: `Sets the remaining time of one player. Minutes and seconds are each 0..59;
"2:30", "2 30" and "150s" are accepted. Ignored once the clock is running.`,
		Args: cobra.MinimumNArgs(2), //nolint:mnd // Player and time.
		RunE: func(cmd *cobra.Command, args []string) error {
			return remote.SetTime(cmd.Context(), remoteOptions(cmd), args[0], strings.Join(args[1:], " "))
		},
	}

	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Print the host clock.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return remote.Status(cmd.Context(), remoteOptions(cmd))
		},
	}

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Follow the host clock until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signalContext()
			defer stop()

			return remote.Watch(ctx, remoteOptions(cmd))
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	resetCmd.Flags().BoolVarP(&confirmReset, "yes", "y", false, "confirm the reset")

	for _, c := range []*cobra.Command{tapCmd, pauseCmd, resetCmd, setTimeCmd, statusCmd, watchCmd} {
		c.Flags().StringVarP(&serverAddress, "addr", "a", "", "clock host address (overrides server_addr)")
		rootCmd.AddCommand(c)
	}
}
