// Package config defines the clock settings shared by every geronimo command
// and provides helpers to load, validate and save them in YAML format.
//
// The Config type carries the rules of the clock (default time, tick cadence),
// the presentation labels, the haptic collaborator and the gRPC host address.
package config
