package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/samber/lo"

	api "github.com/oshokin/geronimo/internal/api/grpc/clock"
	"github.com/oshokin/geronimo/internal/config"
	"github.com/oshokin/geronimo/internal/domain/clock"
	"github.com/oshokin/geronimo/internal/haptics"
	"github.com/oshokin/geronimo/internal/logger"
	"github.com/oshokin/geronimo/internal/service/common"
	"github.com/oshokin/geronimo/internal/view"
)

// Options holds the connection settings shared by every remote command.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// Address overrides the configured server address.
	Address string
	// LogLevel overrides the configured log level when set.
	LogLevel string
	// Out receives rendered screens; defaults to stdout.
	Out io.Writer
}

// ErrResetNotConfirmed is returned when reset is requested without confirmation.
var ErrResetNotConfirmed = errors.New("reset needs confirmation, pass --yes")

// unknownDevice names the caller when the local identity cannot be detected.
const unknownDevice = "unknown"

// remote is one connected command invocation.
type remote struct {
	cfg    *config.Config
	client *common.Client
	out    io.Writer
	pulser haptics.Pulser
}

// connect loads settings and dials the clock host.
func connect(ctx context.Context, opts *Options) (*remote, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if err := common.ApplyLogLevel(cfg.LogLevel, opts.LogLevel); err != nil {
		return nil, err
	}

	device, err := common.DetectDevice()
	if err != nil {
		logger.WarnKV(ctx, "Failed to detect device", "error", err)

		device = unknownDevice
	}

	address := lo.CoalesceOrEmpty(opts.Address, cfg.ServerAddress)

	client, err := common.Dial(ctx, address,
		common.WithCallTimeout(cfg.Timeout),
		common.WithDevice(device),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", address, err)
	}

	out := lo.Ternary[io.Writer](opts.Out != nil, opts.Out, os.Stdout)

	return &remote{
		cfg:    cfg,
		client: client,
		out:    out,
		pulser: haptics.New(cfg.Haptics, out),
	}, nil
}

// run connects, performs one call and prints the resulting screen.
func run(ctx context.Context, opts *Options, call func(context.Context, *common.Client) (api.Snapshot, error)) error {
	r, err := connect(ctx, opts)
	if err != nil {
		return err
	}

	defer r.close(ctx)

	snap, err := call(ctx, r.client)
	if err != nil {
		return err
	}

	r.print(snap)

	return nil
}

// Tap taps the face of the named player.
func Tap(ctx context.Context, opts *Options, player string) error {
	p, err := clock.ParsePlayer(player)
	if err != nil {
		return err
	}

	return run(ctx, opts, func(ctx context.Context, c *common.Client) (api.Snapshot, error) {
		return c.TapClock(ctx, p)
	})
}

// Pause toggles pause on the host.
func Pause(ctx context.Context, opts *Options) error {
	return run(ctx, opts, func(ctx context.Context, c *common.Client) (api.Snapshot, error) {
		return c.TogglePause(ctx)
	})
}

// Reset restores both clocks; the caller must have confirmed.
func Reset(ctx context.Context, opts *Options, confirmed bool) error {
	if !confirmed {
		return ErrResetNotConfirmed
	}

	return run(ctx, opts, func(ctx context.Context, c *common.Client) (api.Snapshot, error) {
		return c.Reset(ctx)
	})
}

// SetTime sets the remaining time of the named player from picker input.
func SetTime(ctx context.Context, opts *Options, player, input string) error {
	p, err := clock.ParsePlayer(player)
	if err != nil {
		return err
	}

	minutes, seconds, err := view.ParsePickerTime(input)
	if err != nil {
		return err
	}

	return run(ctx, opts, func(ctx context.Context, c *common.Client) (api.Snapshot, error) {
		return c.SetTime(ctx, p, minutes, seconds)
	})
}

// Status prints the current clock.
func Status(ctx context.Context, opts *Options) error {
	return run(ctx, opts, func(ctx context.Context, c *common.Client) (api.Snapshot, error) {
		return c.GetState(ctx)
	})
}

func (r *remote) print(snap api.Snapshot) {
	header := "session " + snap.SessionID
	if snap.Cause != "" && snap.Cause != api.CauseSnapshot {
		header += " (" + snap.Cause + ")"
	}

	_, _ = fmt.Fprintf(r.out, "%s\n%s", header, view.Render(snap.State, r.cfg.Labels))
}

// pulse forwards a tap pulse from the host. After a state-changing tap the
// turn has passed to the opponent, so the tapped face is the waiting one.
func (r *remote) pulse(ctx context.Context, snap api.Snapshot) {
	if !snap.Haptic || !snap.State.Active.Valid() {
		return
	}

	r.pulser.Pulse(ctx, snap.State.Active.Other())
}

func (r *remote) close(ctx context.Context) {
	if err := r.client.Close(); err != nil {
		logger.WarnKV(ctx, "Failed to close connection", "error", err)
	}
}
