// Package version exposes build metadata of the geronimo binary.
//
// Version, Commit and BuildTime are injected with -ldflags at build time and
// default to local-build placeholders. Full is printed by the version
// subcommand; Short is also sent as the gRPC user agent of remote controls.
package version
