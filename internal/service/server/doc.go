// Package server runs the gRPC clock host: one clock session, its tick
// driver and the ClockService endpoint for remote buttons and displays.
package server
