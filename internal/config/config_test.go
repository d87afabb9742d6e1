package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks default filling and the per-field rules.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Empty settings get stock values.
	cfg := new(Config)
	require.NoError(t, Validate(cfg))
	require.Equal(t, 600*time.Second, cfg.DefaultTime)
	require.Equal(t, TickModeUnified, cfg.TickMode)
	require.Equal(t, HapticsBell, cfg.Haptics)
	require.Equal(t, DefaultServerAddress, cfg.ServerAddress)
	require.Equal(t, DefaultLabels(), cfg.Labels)

	// Bad socket.
	cfg = &Config{ServerAddress: "bad:address"}
	require.Error(t, Validate(cfg))

	// Unknown tick mode and haptics are reported by YAML key.
	cfg = &Config{TickMode: "sometimes", Haptics: "buzz"}
	err := Validate(cfg)

	var ve ValidationError

	require.ErrorAs(t, err, &ve)
	require.Contains(t, ve, "tick_mode")
	require.Contains(t, ve, "haptics")

	// Sub-second default time.
	cfg = &Config{DefaultTime: 500 * time.Millisecond}
	require.ErrorAs(t, Validate(cfg), &ve)
	require.Contains(t, ve, "default_time")

	// Unknown log level.
	cfg = &Config{LogLevel: "chatty"}
	require.ErrorAs(t, Validate(cfg), &ve)
	require.Contains(t, ve, "log_level")

	require.Error(t, Validate(nil))
}

// TestRules verifies the conversion into whole-second state machine rules.
func TestRules(t *testing.T) {
	t.Parallel()

	cfg := &Config{DefaultTime: 3*time.Minute + 1500*time.Millisecond}
	require.NoError(t, Validate(cfg))
	require.Equal(t, 181, cfg.Rules().DefaultTime)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")

	cfg := &Config{
		DefaultTime:   5 * time.Minute,
		TickInterval:  250 * time.Millisecond,
		TickMode:      TickModePerClock,
		Haptics:       HapticsOff,
		ServerAddress: "127.0.0.1:50051",
		Labels: Labels{
			Pause: "Pausa",
		},
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.DefaultTime, loaded.DefaultTime)
	require.Equal(t, cfg.TickInterval, loaded.TickInterval)
	require.Equal(t, TickModePerClock, loaded.TickMode)
	require.Equal(t, HapticsOff, loaded.Haptics)
	require.Equal(t, "Pausa", loaded.Labels.Pause)
	require.Equal(t, "Resume", loaded.Labels.Resume)

	// File exists.
	_, err = os.Stat(path)
	require.NoError(t, err)
}

// TestLoadMissing distinguishes a missing default file from a missing explicit one.
func TestLoadMissing(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	require.Error(t, Save("", nil))
}

// TestLoadPartialYAML verifies that durations parse and unset keys fall back to defaults.
func TestLoadPartialYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_time: 3m\nlabels:\n  move_count: \"Moves:\"\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 180, cfg.Rules().DefaultTime)
	require.Equal(t, "Moves:", cfg.Labels.MoveCount)
	require.Equal(t, DefaultTickInterval, cfg.TickInterval)
}
