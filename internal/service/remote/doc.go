// Package remote implements the client commands that drive a clock host over
// gRPC: tapping faces, pausing, resetting, setting times and watching the
// clock from another device.
package remote
