// Package logger wraps zap for the clock binaries:
//   - a global sugared logger with a console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and runtime level changes,
//   - leveled helpers (Infof, InfoKV, ErrorKV, ...).
//
// Services take a context and pull the logger from it, so a session or a
// host can scope every line it emits with its own name and fields.
package logger
