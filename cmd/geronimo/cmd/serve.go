package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/geronimo/internal/service/server"
)

// serveCmd runs the gRPC clock host.
var serveCmd = &cobra.Command{
	Use:   "serve [listen-address]",
	Short: "Run the clock as a gRPC host.",
	Long: `Starts one clock session and serves it over gRPC.

Only the port from server_addr config is used for listening (e.g., :7357).
Listen address can be provided as argument to override config (e.g., :9090, 0.0.0.0:8080).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		// Setup graceful shutdown handling.
		ctx, stop := signalContext()
		defer stop()

		// Use listen address argument if provided, otherwise rely on config.
		var listenAddress string
		if len(args) > 0 {
			listenAddress = args[0]
		}

		return server.Run(ctx, &server.Options{
			ConfigPath:    configPath,
			ListenAddress: listenAddress,
			LogLevel:      logLevel,
		})
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(serveCmd)
}
