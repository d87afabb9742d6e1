package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/oshokin/geronimo/internal/domain/clock"
	"github.com/oshokin/geronimo/internal/haptics"
	"github.com/oshokin/geronimo/internal/logger"
)

// subscriberBuffer holds only the latest update: a lagging subscriber skips
// straight to the current state instead of replaying stale ones.
const subscriberBuffer = 1

// Update is published after every state change.
type Update struct {
	// SessionID identifies the session that produced the update.
	SessionID string
	// State is the state after the change.
	State clock.State
	// Cause is the name of the event that caused the change.
	Cause string
	// Haptic is set when the change requested a haptic pulse.
	Haptic bool
}

// Option configures a Service.
type Option func(*Service)

// WithPulser sets the haptic collaborator.
func WithPulser(p haptics.Pulser) Option {
	return func(s *Service) {
		if p != nil {
			s.pulser = p
		}
	}
}

// WithID overrides the generated session identifier.
func WithID(id string) Option {
	return func(s *Service) {
		if id != "" {
			s.id = id
		}
	}
}

// Service is a concurrency-safe clock session.
type Service struct {
	// id is the session identifier.
	id string
	// machine holds the clock state; guarded by mu.
	machine *clock.Machine
	// pulser receives haptic pulses.
	pulser haptics.Pulser
	// subscribers receive updates; guarded by mu.
	subscribers map[chan Update]struct{}
	// mu serializes event delivery.
	mu sync.Mutex
}

// New creates a session in the initial state of rules.
func New(ctx context.Context, rules clock.Rules, opts ...Option) *Service {
	s := &Service{
		id:          newSessionID(),
		machine:     clock.NewMachine(rules),
		pulser:      haptics.Nop{},
		subscribers: make(map[chan Update]struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	logger.InfoKV(ctx, "Clock session created", "session_id", s.id, "default_time", rules.DefaultTime)

	return s
}

// ID returns the session identifier.
func (s *Service) ID() string {
	return s.id
}

// State returns the current state.
func (s *Service) State(context.Context) clock.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.machine.State()
}

// TapClock taps the face of p.
func (s *Service) TapClock(ctx context.Context, p clock.Player) clock.State {
	result := s.dispatch(ctx, clock.TapClock{Player: p})

	logger.InfoKV(ctx, "Clock tapped",
		"session_id", s.id,
		"player", p.String(),
		"changed", result.Changed,
		"active", result.State.Active.String(),
		"moves_a", result.State.Moves(clock.A),
		"moves_b", result.State.Moves(clock.B),
	)

	return result.State
}

// TogglePause pauses or resumes the clock.
func (s *Service) TogglePause(ctx context.Context) clock.State {
	result := s.dispatch(ctx, clock.TogglePause{})

	logger.InfoKV(ctx, "Pause toggled",
		"session_id", s.id,
		"changed", result.Changed,
		"phase", result.State.Phase().String(),
	)

	return result.State
}

// Reset restores the defaults unless a clock is running.
func (s *Service) Reset(ctx context.Context) clock.State {
	result := s.dispatch(ctx, clock.Reset{})

	logger.InfoKV(ctx, "Reset requested", "session_id", s.id, "changed", result.Changed)

	return result.State
}

// SetTime sets the remaining time of p from picker parts while no clock runs.
func (s *Service) SetTime(ctx context.Context, p clock.Player, minutes, seconds int) (clock.State, error) {
	event, err := clock.NewSetTime(p, minutes, seconds)
	if err != nil {
		return s.State(ctx), err
	}

	result := s.dispatch(ctx, event)

	logger.InfoKV(ctx, "Time set",
		"session_id", s.id,
		"player", p.String(),
		"seconds", event.Seconds,
		"changed", result.Changed,
	)

	return result.State, nil
}

// Tick delivers one unified second.
func (s *Service) Tick(ctx context.Context) {
	s.tick(ctx, clock.None)
}

// TickPlayer delivers one second from the timer stream of p.
func (s *Service) TickPlayer(ctx context.Context, p clock.Player) {
	s.tick(ctx, p)
}

func (s *Service) tick(ctx context.Context, p clock.Player) {
	result := s.dispatch(ctx, clock.Tick{Player: p})
	if !result.Changed {
		return
	}

	logger.DebugKV(ctx, "Tick",
		"session_id", s.id,
		"active", result.State.Active.String(),
		"remaining", result.State.TimeLeft(result.State.Active),
	)
}

// dispatch applies e under the lock, publishes the change and forwards the pulse.
func (s *Service) dispatch(ctx context.Context, e clock.Event) clock.Result {
	s.mu.Lock()

	result := s.machine.Dispatch(e)
	if result.Changed {
		s.publish(ctx, Update{
			SessionID: s.id,
			State:     result.State,
			Cause:     e.Name(),
			Haptic:    result.Haptic,
		})
	}

	s.mu.Unlock()

	if tap, ok := e.(clock.TapClock); ok && result.Haptic {
		s.pulser.Pulse(ctx, tap.Player)
	}

	return result
}

// publish delivers u to every subscriber without blocking. A pending update
// the subscriber has not read yet is replaced by u. Callers hold mu, so
// publish is the only sender and the second send never blocks.
func (s *Service) publish(ctx context.Context, u Update) {
	for ch := range s.subscribers {
		select {
		case ch <- u:
			continue
		default:
		}

		select {
		case stale := <-ch:
			logger.WarnKV(ctx, "Subscriber lagging, stale update replaced",
				"session_id", s.id,
				"dropped", stale.Cause,
				"cause", u.Cause,
			)
		default:
		}

		ch <- u
	}
}

// Subscribe returns a channel receiving subsequent updates. A subscriber that
// falls behind sees only the latest one, so its last received update always
// matches the current state. The channel is closed once ctx is done.
func (s *Service) Subscribe(ctx context.Context) <-chan Update {
	ch := make(chan Update, subscriberBuffer)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()

		s.mu.Lock()
		delete(s.subscribers, ch)
		close(ch)
		s.mu.Unlock()
	}()

	return ch
}

// newSessionID returns a time-ordered UUID, falling back to a random one.
func newSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}
