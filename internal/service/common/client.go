//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	api "github.com/oshokin/geronimo/internal/api/grpc/clock"
	"github.com/oshokin/geronimo/internal/config"
	"github.com/oshokin/geronimo/internal/domain/clock"
	"github.com/oshokin/geronimo/internal/version"
)

// Client wraps the gRPC ClockService client with convenience helpers.
type Client struct {
	// conn is the underlying gRPC connection to the clock host.
	conn *grpc.ClientConn
	// api is the typed ClockService client.
	api *api.ClockServiceClient

	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
	// device identifies this remote control to the host.
	device string
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// WithDevice sets the identity attached to every call.
func WithDevice(device string) Option {
	return func(c *Client) {
		c.device = device
	}
}

// errAddressRequired is returned when a required address value is missing.
var errAddressRequired = errors.New("address must be provided")

// Dial creates a gRPC client for the clock host.
// Note: this uses insecure transport credentials; the host is meant for a
// trusted local network.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	conn, err := grpc.NewClient(address,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUserAgent("geronimo/"+version.Short()),
	)
	if err != nil {
		return nil, fmt.Errorf("dial clock host: %w", err)
	}

	client := &Client{
		conn:        conn,
		api:         api.NewClockServiceClient(conn),
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// TapClock taps the face of p.
func (c *Client) TapClock(ctx context.Context, p clock.Player) (api.Snapshot, error) {
	return c.unary(ctx, "tap clock", func(ctx context.Context) (*structpb.Struct, error) {
		return c.api.TapClock(ctx, wrapperspb.String(p.String()))
	})
}

// TogglePause pauses or resumes the clock.
func (c *Client) TogglePause(ctx context.Context) (api.Snapshot, error) {
	return c.unary(ctx, "toggle pause", func(ctx context.Context) (*structpb.Struct, error) {
		return c.api.TogglePause(ctx, new(emptypb.Empty))
	})
}

// Reset restores the defaults on the host.
func (c *Client) Reset(ctx context.Context) (api.Snapshot, error) {
	return c.unary(ctx, "reset", func(ctx context.Context) (*structpb.Struct, error) {
		return c.api.Reset(ctx, new(emptypb.Empty))
	})
}

// SetTime sets the remaining time of p from picker parts.
func (c *Client) SetTime(ctx context.Context, p clock.Player, minutes, seconds int) (api.Snapshot, error) {
	return c.unary(ctx, "set time", func(ctx context.Context) (*structpb.Struct, error) {
		return c.api.SetTime(ctx, api.NewSetTimeRequest(p, minutes, seconds))
	})
}

// GetState retrieves the current clock state.
func (c *Client) GetState(ctx context.Context) (api.Snapshot, error) {
	return c.unary(ctx, "get state", func(ctx context.Context) (*structpb.Struct, error) {
		return c.api.GetState(ctx, new(emptypb.Empty))
	})
}

// Watch calls fn for every message of the update stream until the stream
// ends, fn fails or ctx is done. The call timeout does not apply.
func (c *Client) Watch(ctx context.Context, fn func(api.Snapshot) error) error {
	stream, err := c.api.Watch(c.withDevice(ctx), new(emptypb.Empty))
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	for {
		msg, err := stream.Recv()
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}

		snap, err := api.SnapshotFromProto(msg)
		if err != nil {
			return fmt.Errorf("decode update: %w", err)
		}

		if err := fn(snap); err != nil {
			return err
		}
	}
}

// unary runs one RPC with the call timeout and decodes its snapshot.
func (c *Client) unary(
	ctx context.Context,
	name string,
	call func(context.Context) (*structpb.Struct, error),
) (api.Snapshot, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := call(c.withDevice(callCtx))
	if err != nil {
		return api.Snapshot{}, fmt.Errorf("%s: %w", name, err)
	}

	snap, err := api.SnapshotFromProto(resp)
	if err != nil {
		return api.Snapshot{}, fmt.Errorf("%s: decode: %w", name, err)
	}

	return snap, nil
}

// withDevice attaches the device identity, if known.
func (c *Client) withDevice(ctx context.Context) context.Context {
	if c.device == "" {
		return ctx
	}

	return metadata.AppendToOutgoingContext(ctx, DeviceMetadataKey, c.device)
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
