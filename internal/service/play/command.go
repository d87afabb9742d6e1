package play

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap/zapcore"

	"github.com/oshokin/geronimo/internal/config"
	"github.com/oshokin/geronimo/internal/haptics"
	"github.com/oshokin/geronimo/internal/logger"
	"github.com/oshokin/geronimo/internal/service/common"
	"github.com/oshokin/geronimo/internal/service/session"
	"github.com/oshokin/geronimo/internal/ticker"
)

// Options controls the interactive clock.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// LogLevel overrides the configured log level when set.
	LogLevel string
	// NoClear keeps previous screens instead of clearing the terminal.
	NoClear bool

	// In and Out default to stdin and stdout.
	In  io.Reader
	Out io.Writer
}

// Run plays one session in the terminal until the player quits, input ends
// or ctx is canceled.
func Run(ctx context.Context, opts *Options) error {
	in, out := opts.In, opts.Out
	if in == nil {
		in = os.Stdin
	}

	if out == nil {
		out = os.Stdout
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	// Log lines go to stderr so they never tear the clock display.
	logger.SetLogger(logger.NewWithSink(nil, zapcore.AddSync(os.Stderr)))

	if err := common.ApplyLogLevel(cfg.LogLevel, opts.LogLevel); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(logger.WithName(ctx, "geronimo-play"))
	defer cancel()

	svc := session.New(ctx, cfg.Rules(), session.WithPulser(haptics.New(cfg.Haptics, out)))

	driver, err := ticker.New(svc, cfg.TickInterval, cfg.TickMode)
	if err != nil {
		return fmt.Errorf("create tick driver: %w", err)
	}

	updates := svc.Subscribe(ctx)

	go func() {
		_ = driver.Run(ctx)
	}()

	h := newHost(svc, cfg.Labels, out, !opts.NoClear)
	h.notice = h.help()
	h.render(svc.State(ctx))

	return loop(ctx, h, readLines(ctx, in), updates)
}

// loop multiplexes input lines and session updates until one source ends.
func loop(ctx context.Context, h *host, lines <-chan string, updates <-chan session.Update) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case u, ok := <-updates:
			if !ok {
				return nil
			}

			h.render(u.State)
		case line, ok := <-lines:
			if !ok {
				return nil
			}

			if h.handleLine(ctx, line) {
				return nil
			}
		}
	}
}

// readLines scans in on its own goroutine; the channel closes at EOF.
func readLines(ctx context.Context, in io.Reader) <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			logger.Errorf(ctx, "read input: %v", err)

			return
		}

		logger.Debug(ctx, "Input closed")
	}()

	return lines
}
