// Package common holds helpers shared by the clock host and its remote
// controls.
//
// It provides a gRPC client wrapper with per-call timeouts, detection of the
// local device (username@hostname) that is attached to every remote call, and
// the server interceptor that puts that device into the request log context.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
