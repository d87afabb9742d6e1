// Package ticker turns wall-clock time into clock ticks.
//
// The Driver keeps firing while the clock is paused or idle: ticks are inert
// no-ops in those phases, so nothing has to be started or stopped on pause.
package ticker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oshokin/geronimo/internal/config"
	"github.com/oshokin/geronimo/internal/domain/clock"
	"github.com/oshokin/geronimo/internal/logger"
)

// Target receives ticks.
type Target interface {
	Tick(ctx context.Context)
	TickPlayer(ctx context.Context, p clock.Player)
}

// Driver delivers ticks to a Target at a fixed interval.
type Driver struct {
	// target receives the ticks.
	target Target
	// interval is the real-time length of one clock second.
	interval time.Duration
	// mode is config.TickModeUnified or config.TickModePerClock.
	mode string
}

var (
	// errNoTarget is returned when the driver has nothing to tick.
	errNoTarget = errors.New("tick target is required")
	// errBadInterval is returned for non-positive intervals.
	errBadInterval = errors.New("tick interval must be positive")
	// errUnknownMode is returned for unsupported tick modes.
	errUnknownMode = errors.New("unknown tick mode")
)

// New validates the parameters and creates a Driver.
func New(target Target, interval time.Duration, mode string) (*Driver, error) {
	if target == nil {
		return nil, errNoTarget
	}

	if interval <= 0 {
		return nil, errBadInterval
	}

	if mode == "" {
		mode = config.TickModeUnified
	}

	if mode != config.TickModeUnified && mode != config.TickModePerClock {
		return nil, fmt.Errorf("%w: %q", errUnknownMode, mode)
	}

	return &Driver{
		target:   target,
		interval: interval,
		mode:     mode,
	}, nil
}

// Run delivers ticks until ctx is done.
func (d *Driver) Run(ctx context.Context) error {
	logger.DebugKV(ctx, "Tick driver started", "interval", d.interval.String(), "mode", d.mode)

	if d.mode == config.TickModeUnified {
		d.loop(ctx, d.target.Tick)

		return ctx.Err()
	}

	var wg sync.WaitGroup

	for _, p := range clock.Players {
		wg.Go(func() {
			d.loop(ctx, func(ctx context.Context) {
				d.target.TickPlayer(ctx, p)
			})
		})
	}

	wg.Wait()

	return ctx.Err()
}

// loop calls fn once per interval.
func (d *Driver) loop(ctx context.Context, fn func(context.Context)) {
	t := time.NewTicker(d.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			fn(ctx)
		}
	}
}
