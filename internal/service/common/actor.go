//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"fmt"
	"os"
	"os/user"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/oshokin/geronimo/internal/logger"
)

// DeviceMetadataKey carries the remote control identity on every call.
const DeviceMetadataKey = "x-geronimo-device"

// DetectDevice returns username@hostname of the local machine.
func DetectDevice() (string, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return "", fmt.Errorf("hostname: %w", err)
	}

	currentUser, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("current user: %w", err)
	}

	return currentUser.Username + "@" + hostname, nil
}

// deviceFromContext reads the device set by a remote control, if any.
func deviceFromContext(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}

	if values := md.Get(DeviceMetadataKey); len(values) > 0 {
		return values[0]
	}

	return ""
}

// DeviceUnaryInterceptor scopes the request logger with the calling device.
func DeviceUnaryInterceptor(
	ctx context.Context,
	req any,
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (any, error) {
	if device := deviceFromContext(ctx); device != "" {
		ctx = logger.WithKV(ctx, "device", device)
	}

	logger.DebugKV(ctx, "RPC", "method", info.FullMethod)

	return handler(ctx, req)
}

// loggingStream overrides the stream context with a scoped one.
type loggingStream struct {
	grpc.ServerStream

	ctx context.Context //nolint:containedctx // Stream contexts are per-call.
}

// Context returns the scoped context.
func (s *loggingStream) Context() context.Context {
	return s.ctx
}

// DeviceStreamInterceptor is the streaming counterpart of DeviceUnaryInterceptor.
func DeviceStreamInterceptor(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	ctx := ss.Context()
	if device := deviceFromContext(ctx); device != "" {
		ctx = logger.WithKV(ctx, "device", device)
	}

	logger.DebugKV(ctx, "Stream opened", "method", info.FullMethod)

	return handler(srv, &loggingStream{ServerStream: ss, ctx: ctx})
}
