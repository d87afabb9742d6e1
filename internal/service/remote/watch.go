package remote

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/sethvargo/go-retry"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	api "github.com/oshokin/geronimo/internal/api/grpc/clock"
	"github.com/oshokin/geronimo/internal/logger"
)

const (
	// reconnectBase is the first delay before reconnecting a dropped stream.
	reconnectBase = 200 * time.Millisecond
	// reconnectCap bounds the reconnect delay.
	reconnectCap = 5 * time.Second
)

// reconnectBackoff is a capped Fibonacci backoff that starts over once a
// stream is healthy again.
type reconnectBackoff struct {
	current retry.Backoff
}

func newReconnectBackoff() *reconnectBackoff {
	b := new(reconnectBackoff)
	b.reset()

	return b
}

// Next implements retry.Backoff.
func (b *reconnectBackoff) Next() (time.Duration, bool) {
	return b.current.Next()
}

func (b *reconnectBackoff) reset() {
	b.current = retry.WithCappedDuration(reconnectCap, retry.NewFibonacci(reconnectBase))
}

// Watch prints every update of the host until ctx is canceled, reconnecting
// while the host is unavailable. Updates that carry a haptic pulse ring the
// configured pulser on this device too.
func Watch(ctx context.Context, opts *Options) error {
	r, err := connect(ctx, opts)
	if err != nil {
		return err
	}

	defer r.close(ctx)

	b := newReconnectBackoff()

	err = retry.Do(ctx, b, func(ctx context.Context) error {
		err := r.client.Watch(ctx, func(snap api.Snapshot) error {
			if snap.Cause == api.CauseSnapshot {
				b.reset()
			}

			r.print(snap)
			r.pulse(ctx, snap)

			return nil
		})

		switch {
		case ctx.Err() != nil:
			return nil
		case isReconnectable(err):
			logger.WarnKV(ctx, "Watch stream lost, reconnecting", "error", err)

			return retry.RetryableError(err)
		default:
			logger.ErrorKV(ctx, "Watch stream failed", "error", err)

			return err
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

// isReconnectable reports whether a stream error is worth another attempt.
func isReconnectable(err error) bool {
	if errors.Is(err, io.EOF) {
		return true
	}

	return status.Code(err) == codes.Unavailable
}
