package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/geronimo/internal/domain/clock"
	"github.com/oshokin/geronimo/internal/logger"
)

// Config holds the settings of the clock and of its hosts.
type Config struct {
	// DefaultTime is the starting time of each clock and the value restored by reset.
	DefaultTime time.Duration `yaml:"default_time" validate:"gte=1s"`
	// TickInterval is the real-time length of one clock second.
	TickInterval time.Duration `yaml:"tick_interval" validate:"gt=0"`
	// TickMode selects one shared ticker or one ticker per clock.
	TickMode string `yaml:"tick_mode" validate:"oneof=unified per-clock"`
	// Haptics selects the collaborator that receives tap pulses.
	Haptics string `yaml:"haptics" validate:"oneof=bell log off"`
	// ServerAddress is the gRPC address of the clock host.
	ServerAddress string `yaml:"server_addr" validate:"required"`
	// Timeout is the duration for network operations and RPC calls.
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
	// LogLevel is the zap level name.
	LogLevel string `yaml:"log_level" validate:"loglevel"`
	// Labels are the texts shown by the presentation layer.
	Labels Labels `yaml:"labels"`
}

// Labels are the user-facing strings of the clock screen.
type Labels struct {
	PlayerA   string `yaml:"player_a"`
	PlayerB   string `yaml:"player_b"`
	Pause     string `yaml:"pause"`
	Resume    string `yaml:"resume"`
	Reset     string `yaml:"reset"`
	MoveCount string `yaml:"move_count"`
	SetTime   string `yaml:"set_time"`
	Set       string `yaml:"set"`
	Minutes   string `yaml:"minutes"`
	Seconds   string `yaml:"seconds"`
}

const (
	// DefaultConfigFilename is the default filename for clock settings.
	DefaultConfigFilename = "geronimo.yaml"

	// DefaultServerAddress is the gRPC address used when none is configured.
	DefaultServerAddress = "127.0.0.1:7357"

	// DefaultTimeout is the default duration for network operations.
	DefaultTimeout = 5 * time.Second

	// DefaultTickInterval is one real second per clock second.
	DefaultTickInterval = time.Second

	// TickModeUnified drives both clocks from one ticker.
	TickModeUnified = "unified"
	// TickModePerClock gives each clock its own ticker.
	TickModePerClock = "per-clock"

	// HapticsBell rings the terminal bell on taps.
	HapticsBell = "bell"
	// HapticsLog writes a debug log line on taps.
	HapticsLog = "log"
	// HapticsOff disables tap pulses.
	HapticsOff = "off"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

// DefaultLabels returns the stock English texts of the clock screen.
func DefaultLabels() Labels {
	return Labels{
		PlayerA:   "Player A",
		PlayerB:   "Player B",
		Pause:     "Pause",
		Resume:    "Resume",
		Reset:     "Reset",
		MoveCount: "Move Count:",
		SetTime:   "Set Time",
		Set:       "Set",
		Minutes:   "Minutes",
		Seconds:   "Seconds",
	}
}

// Default returns a complete configuration with stock values.
func Default() *Config {
	return &Config{
		DefaultTime:   clock.DefaultTime * time.Second,
		TickInterval:  DefaultTickInterval,
		TickMode:      TickModeUnified,
		Haptics:       HapticsBell,
		ServerAddress: DefaultServerAddress,
		Timeout:       DefaultTimeout,
		LogLevel:      "info",
		Labels:        DefaultLabels(),
	}
}

// errConfigIsNotSet is returned when a nil configuration is provided.
var errConfigIsNotSet = errors.New("configuration is not set")

// Load reads configuration from the provided path, fills defaults and validates it.
// A missing file at the default path yields the stock configuration.
func Load(path string) (*Config, error) {
	explicit := path != "" && path != DefaultConfigFilename
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist) && !explicit:
		cfg := Default()

		return cfg, Validate(cfg)
	default:
		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := new(Config)
	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes cfg to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills unset fields with defaults and checks the result.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	applyDefaults(cfg)

	if err := structValidator().Validate(cfg); err != nil {
		return err
	}

	if _, err := net.ResolveTCPAddr("tcp", cfg.ServerAddress); err != nil {
		return fmt.Errorf("invalid server address: %w", err)
	}

	return nil
}

// Rules converts the configuration into state machine rules.
func (c *Config) Rules() clock.Rules {
	return clock.Rules{DefaultTime: int(c.DefaultTime / time.Second)}
}

func applyDefaults(cfg *Config) {
	stock := Default()

	if cfg.DefaultTime == 0 {
		cfg.DefaultTime = stock.DefaultTime
	}

	if cfg.TickInterval == 0 {
		cfg.TickInterval = stock.TickInterval
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = stock.Timeout
	}

	cfg.TickMode = lo.CoalesceOrEmpty(cfg.TickMode, stock.TickMode)
	cfg.Haptics = lo.CoalesceOrEmpty(cfg.Haptics, stock.Haptics)
	cfg.ServerAddress = lo.CoalesceOrEmpty(cfg.ServerAddress, stock.ServerAddress)
	cfg.LogLevel = lo.CoalesceOrEmpty(cfg.LogLevel, stock.LogLevel)

	labels, defaults := &cfg.Labels, stock.Labels
	labels.PlayerA = lo.CoalesceOrEmpty(labels.PlayerA, defaults.PlayerA)
	labels.PlayerB = lo.CoalesceOrEmpty(labels.PlayerB, defaults.PlayerB)
	labels.Pause = lo.CoalesceOrEmpty(labels.Pause, defaults.Pause)
	labels.Resume = lo.CoalesceOrEmpty(labels.Resume, defaults.Resume)
	labels.Reset = lo.CoalesceOrEmpty(labels.Reset, defaults.Reset)
	labels.MoveCount = lo.CoalesceOrEmpty(labels.MoveCount, defaults.MoveCount)
	labels.SetTime = lo.CoalesceOrEmpty(labels.SetTime, defaults.SetTime)
	labels.Set = lo.CoalesceOrEmpty(labels.Set, defaults.Set)
	labels.Minutes = lo.CoalesceOrEmpty(labels.Minutes, defaults.Minutes)
	labels.Seconds = lo.CoalesceOrEmpty(labels.Seconds, defaults.Seconds)
}

// validLogLevel backs the "loglevel" validation tag.
func validLogLevel(level string) bool {
	_, ok := logger.ParseLogLevel(level)

	return ok
}
