// Package clock implements the gRPC transport for a clock session.
//
// The geronimo.v1.ClockService descriptor is declared in Go over protobuf
// well-known types (Empty, StringValue, Struct), so the service needs no
// generated code. The package provides the server adapter, a typed client and
// the conversions between clock states and Struct snapshots.
package clock
