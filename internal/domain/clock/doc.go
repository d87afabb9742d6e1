// Package clock contains the core of the chess clock: the two-player turn and
// pause state machine.
//
// State is a plain value that callers may copy freely. Rules.Apply is a pure
// reducer from (State, Event) to State, and Machine wraps it for hosts that
// want a single mutable clock with haptic notifications. Every transition is
// total: events that make no sense in the current phase are no-ops.
package clock
