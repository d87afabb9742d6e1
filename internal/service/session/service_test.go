package session

import (
	"context"
	"sync"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/geronimo/internal/domain/clock"
)

// recordingPulser collects pulse requests for assertions.
type recordingPulser struct {
	mu     sync.Mutex
	tapped []clock.Player
}

// Pulse records the tapped player.
func (r *recordingPulser) Pulse(_ context.Context, tapped clock.Player) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tapped = append(r.tapped, tapped)
}

// pulses returns a copy of the recorded players.
func (r *recordingPulser) pulses() []clock.Player {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]clock.Player(nil), r.tapped...)
}

// TestService_Game plays a short game and checks the state and haptic pulses.
func TestService_Game(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pulser := new(recordingPulser)
	s := New(ctx, clock.Rules{DefaultTime: 10}, WithPulser(pulser), WithID("game-1"))

	require.Equal(t, "game-1", s.ID())

	state, err := s.SetTime(ctx, clock.A, 0, 30)
	require.NoError(t, err)
	require.Equal(t, 30, state.TimeLeft(clock.A))

	state = s.TapClock(ctx, clock.B)
	require.Equal(t, clock.A, state.Active)

	s.Tick(ctx)
	s.TickPlayer(ctx, clock.B)
	require.Equal(t, 29, s.State(ctx).TimeLeft(clock.A))
	require.Equal(t, 10, s.State(ctx).TimeLeft(clock.B))

	// Waiting face ignored, no pulse.
	s.TapClock(ctx, clock.B)

	state = s.TapClock(ctx, clock.A)
	require.Equal(t, 1, state.Moves(clock.A))
	require.Equal(t, clock.B, state.Active)

	state = s.TogglePause(ctx)
	require.True(t, state.IsPaused)

	state = s.Reset(ctx)
	require.Equal(t, clock.Rules{DefaultTime: 10}.Initial(), state)

	require.Equal(t, []clock.Player{clock.B, clock.A}, pulser.pulses())
}

// TestService_SetTimeValidation verifies picker bounds are enforced.
func TestService_SetTimeValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := New(ctx, clock.DefaultRules())

	_, err := s.SetTime(ctx, clock.A, 60, 0)
	require.ErrorIs(t, err, clock.ErrInvalidPickerTime)
	require.Equal(t, 600, s.State(ctx).TimeLeft(clock.A))
}

// TestService_GeneratesID verifies sessions get distinct identifiers.
func TestService_GeneratesID(t *testing.T) {
	t.Parallel()

	a := New(context.Background(), clock.DefaultRules())
	b := New(context.Background(), clock.DefaultRules())

	require.NotEmpty(t, a.ID())
	require.NotEqual(t, a.ID(), b.ID())
}

// TestService_Subscribe verifies updates are published for changes only and the channel closes with its context.
func TestService_Subscribe(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		ctx := context.Background()
		s := New(ctx, clock.DefaultRules(), WithID("watched"))

		subCtx, cancel := context.WithCancel(ctx)
		updates := s.Subscribe(subCtx)

		s.Tick(ctx) // Idle: inert, no update.
		require.Empty(t, updates)

		s.TapClock(ctx, clock.A)

		u := <-updates
		require.Equal(t, "watched", u.SessionID)
		require.Equal(t, "tap", u.Cause)
		require.True(t, u.Haptic)
		require.Equal(t, clock.B, u.State.Active)

		s.Tick(ctx)

		u = <-updates
		require.Equal(t, "tick", u.Cause)
		require.False(t, u.Haptic)
		require.Equal(t, 599, u.State.TimeLeft(clock.B))

		s.TogglePause(ctx)

		u = <-updates
		require.Equal(t, "toggle_pause", u.Cause)
		require.True(t, u.State.IsPaused)

		cancel()
		synctest.Wait()

		_, ok := <-updates
		require.False(t, ok)

		// Publishing after unsubscribe must not panic.
		s.TogglePause(ctx)
	})
}

// TestService_LaggingSubscriber verifies a slow subscriber never blocks the
// clock and still ends up on the current state once the clock goes quiet.
func TestService_LaggingSubscriber(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		s := New(ctx, clock.DefaultRules())
		updates := s.Subscribe(ctx)

		s.TapClock(ctx, clock.A)

		for range 32 {
			s.Tick(ctx)
		}

		require.Len(t, updates, subscriberBuffer)
		require.Equal(t, 600-32, s.State(ctx).TimeLeft(clock.B))

		// A paused clock publishes nothing more, so the pause itself must survive.
		s.TogglePause(ctx)

		u := <-updates
		require.Equal(t, "toggle_pause", u.Cause)
		require.True(t, u.State.IsPaused)
		require.Equal(t, s.State(ctx), u.State)
		require.Empty(t, updates)

		s.TogglePause(ctx)
		s.Tick(ctx)
		s.TogglePause(ctx)
		s.Reset(ctx)

		u = <-updates
		require.Equal(t, "reset", u.Cause)
		require.Equal(t, clock.DefaultRules().Initial(), u.State)
	})
}
