// Package session runs one clock session: it serializes events from every
// host goroutine into a clock.Machine, logs transitions, forwards haptic
// pulses and fans state changes out to subscribers.
package session
