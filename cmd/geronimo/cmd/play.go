package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/geronimo/internal/service/play"
)

// noClear keeps earlier screens on the terminal.
var noClear bool

// playCmd runs the clock interactively.
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play on this terminal.",
	Long: `Runs the clock in this terminal. Type a or 1 to tap the first face, b or 2 for
the second, p to pause, r to reset while paused, "set a 5:00" before the first
tap, h for help and q to quit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signalContext()
		defer stop()

		return play.Run(ctx, &play.Options{
			ConfigPath: configPath,
			LogLevel:   logLevel,
			NoClear:    noClear,
			In:         cmd.InOrStdin(),
			Out:        cmd.OutOrStdout(),
		})
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	playCmd.Flags().BoolVar(&noClear, "no-clear", false, "do not clear the terminal between screens")
	rootCmd.AddCommand(playCmd)
}
