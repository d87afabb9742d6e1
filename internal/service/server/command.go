package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"google.golang.org/grpc"

	api "github.com/oshokin/geronimo/internal/api/grpc/clock"
	"github.com/oshokin/geronimo/internal/config"
	"github.com/oshokin/geronimo/internal/haptics"
	"github.com/oshokin/geronimo/internal/logger"
	"github.com/oshokin/geronimo/internal/service/common"
	"github.com/oshokin/geronimo/internal/service/session"
	"github.com/oshokin/geronimo/internal/ticker"
)

// Options controls the clock host process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress provides an optional listen address override for the gRPC server.
	ListenAddress string
	// LogLevel overrides the configured log level when set.
	LogLevel string
}

// ErrNoServerAddress indicates missing server configuration.
var ErrNoServerAddress = errors.New("no server address configured")

// Run starts the clock session, its tick driver and the gRPC server, and
// blocks until ctx is canceled or the server stops.
//
//nolint:funlen // Linear wiring of the host components.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "geronimo-serve")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if err := common.ApplyLogLevel(cfg.LogLevel, opts.LogLevel); err != nil {
		return err
	}

	// Determine listen address: CLI argument overrides config port extraction.
	listenAddress, err := resolveListenAddress(cfg.ServerAddress, opts.ListenAddress)
	if err != nil {
		return fmt.Errorf("resolve listen address: %w", err)
	}

	svc := session.New(ctx, cfg.Rules(), session.WithPulser(haptics.New(cfg.Haptics, os.Stdout)))
	ctx = logger.WithKV(ctx, "session_id", svc.ID())

	driver, err := ticker.New(svc, cfg.TickInterval, cfg.TickMode)
	if err != nil {
		return fmt.Errorf("create tick driver: %w", err)
	}

	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddress, err)
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(common.DeviceUnaryInterceptor),
		grpc.ChainStreamInterceptor(common.DeviceStreamInterceptor),
	)
	api.RegisterClockServiceServer(grpcServer, api.NewServer(svc))

	logger.InfoKV(ctx, "Clock host listening",
		"listen_address", listenAddress,
		"default_time", cfg.DefaultTime.String(),
		"tick_interval", cfg.TickInterval.String(),
		"tick_mode", cfg.TickMode,
	)
	logger.Infof(ctx, "Serving %s on %s", api.ServiceName, listenAddress)

	// The driver stops with ctx; its error is always the context's.
	return serve(ctx, grpcServer, lis, cfg.Timeout, func(ctx context.Context) {
		_ = driver.Run(ctx)
	})
}

// serve runs grpcServer on lis next to background until ctx is canceled or
// Serve fails. Both the background work and the shutdown are finished
// before serve returns.
func serve(
	ctx context.Context,
	grpcServer *grpc.Server,
	lis net.Listener,
	timeout time.Duration,
	background func(context.Context),
) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup

	wg.Go(func() {
		background(ctx)
	})

	wg.Go(func() {
		<-ctx.Done()
		logger.Info(ctx, "Shutting down gRPC server")
		stop(ctx, grpcServer, timeout)
	})

	err := grpcServer.Serve(lis)

	cancel()
	wg.Wait()

	if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		logger.ErrorKV(ctx, "GRPC server failed", "error", err)

		return fmt.Errorf("serve gRPC: %w", err)
	}

	logger.Info(ctx, "GRPC server stopped")

	return nil
}

// stop drains the server gracefully, then forces open Watch streams closed
// once timeout elapses.
func stop(ctx context.Context, s *grpc.Server, timeout time.Duration) {
	graceful := make(chan struct{})

	go func() {
		s.GracefulStop()
		close(graceful)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-graceful:
	case <-timer.C:
		logger.Warn(ctx, "Graceful stop timed out, closing open streams")
		s.Stop()
		<-graceful
	}
}

// resolveListenAddress determines the listen address for the gRPC server.
// If override is provided, uses it directly. Otherwise extracts port from configAddr.
// Returns appropriate listen address (e.g., ":8080" for port-only binding).
func resolveListenAddress(configAddr, override string) (string, error) {
	// Use override address if provided (e.g., ":9090", "0.0.0.0:8080").
	if override != "" {
		return override, nil
	}

	if configAddr == "" {
		return "", ErrNoServerAddress
	}

	// Extract port from config address (e.g., "clock.local:7357" -> ":7357").
	_, port, err := net.SplitHostPort(configAddr)
	if err != nil {
		return "", fmt.Errorf("invalid server address format %q: %w", configAddr, err)
	}

	// Return port-only listen address to bind on all interfaces.
	return ":" + port, nil
}
