// Package haptics provides the collaborators that receive "pulse requested"
// notifications from state-changing taps.
package haptics

import (
	"context"
	"io"
	"sync"

	"github.com/oshokin/geronimo/internal/config"
	"github.com/oshokin/geronimo/internal/domain/clock"
	"github.com/oshokin/geronimo/internal/logger"
)

// Pulser receives fire-and-forget pulse requests.
type Pulser interface {
	Pulse(ctx context.Context, tapped clock.Player)
}

// bell is the ASCII BEL control character.
const bell = "\a"

// Bell rings the terminal bell on every pulse.
type Bell struct {
	// w is the terminal the bell is written to.
	w io.Writer
	// mu serializes writes from concurrent pulses.
	mu sync.Mutex
}

// NewBell creates a Bell writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// Pulse writes BEL; write errors are dropped.
func (b *Bell) Pulse(_ context.Context, _ clock.Player) {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, _ = io.WriteString(b.w, bell)
}

// Log records pulses in the debug log.
type Log struct{}

// Pulse implements Pulser.
func (Log) Pulse(ctx context.Context, tapped clock.Player) {
	logger.DebugKV(ctx, "Haptic pulse requested", "player", tapped.String())
}

// Nop ignores pulses.
type Nop struct{}

// Pulse implements Pulser.
func (Nop) Pulse(context.Context, clock.Player) {}

// New returns the pulser named by a config haptics value.
// Unknown names fall back to Nop.
//
//nolint:ireturn // Callers only need the interface.
func New(kind string, w io.Writer) Pulser {
	switch kind {
	case config.HapticsBell:
		return NewBell(w)
	case config.HapticsLog:
		return Log{}
	default:
		return Nop{}
	}
}
