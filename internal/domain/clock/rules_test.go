package clock

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// running returns a state where p is on move with the given remaining time.
func running(p Player, remaining int) State {
	s := DefaultRules().Initial()
	s.Active = p
	s.HasStarted = true
	s.Remaining[p.index()] = remaining

	return s
}

// TestInitial verifies the defaults of a fresh clock.
func TestInitial(t *testing.T) {
	t.Parallel()

	s := DefaultRules().Initial()
	require.Equal(t, [2]int{600, 600}, s.Remaining)
	require.Equal(t, [2]int{0, 0}, s.MoveCount)
	require.Equal(t, None, s.Active)
	require.Equal(t, None, s.LastActive)
	require.False(t, s.IsPaused)
	require.False(t, s.HasStarted)
	require.Equal(t, PhaseIdle, s.Phase())
}

// TestTapFromIdleStartsOpponent verifies that the first tap starts the other clock.
func TestTapFromIdleStartsOpponent(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()

	s := rules.Apply(rules.Initial(), TapClock{Player: A})
	require.Equal(t, B, s.Active)
	require.True(t, s.HasStarted)
	require.Equal(t, [2]int{0, 0}, s.MoveCount)

	s = rules.Apply(rules.Initial(), TapClock{Player: B})
	require.Equal(t, A, s.Active)
}

// TestTapOwnFaceCountsMove verifies the turn hand-over and move attribution.
func TestTapOwnFaceCountsMove(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()

	s := rules.Apply(running(A, 300), TapClock{Player: A})
	require.Equal(t, 1, s.Moves(A))
	require.Equal(t, 0, s.Moves(B))
	require.Equal(t, B, s.Active)

	s = rules.Apply(s, TapClock{Player: B})
	require.Equal(t, 1, s.Moves(B))
	require.Equal(t, A, s.Active)
}

// TestTapIgnoredCases covers taps on the waiting face, while paused and for invalid players.
func TestTapIgnoredCases(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()

	s := running(B, 100)
	require.Equal(t, s, rules.Apply(s, TapClock{Player: A}))
	require.Equal(t, s, rules.Apply(s, TapClock{Player: None}))

	paused := rules.Apply(s, TogglePause{})
	require.Equal(t, paused, rules.Apply(paused, TapClock{Player: A}))
	require.Equal(t, paused, rules.Apply(paused, TapClock{Player: B}))
}

// TestPauseResume verifies that pause and resume restore the runner without touching times or moves.
func TestPauseResume(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()

	before := running(B, 42)
	before.MoveCount = [2]int{3, 2}

	paused := rules.Apply(before, TogglePause{})
	require.Equal(t, PhasePaused, paused.Phase())
	require.Equal(t, None, paused.Active)
	require.Equal(t, B, paused.LastActive)
	require.True(t, paused.IsPaused)

	resumed := rules.Apply(paused, TogglePause{})
	require.Equal(t, B, resumed.Active)
	require.False(t, resumed.IsPaused)
	require.Equal(t, before.Remaining, resumed.Remaining)
	require.Equal(t, before.MoveCount, resumed.MoveCount)
}

// TestPauseFromIdleIsNoop verifies there is nothing to pause before the first tap.
func TestPauseFromIdleIsNoop(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	s := rules.Initial()

	require.Equal(t, s, rules.Apply(s, TogglePause{}))
}

// TestReset verifies reset from paused and idle states, and that it is ignored while running.
func TestReset(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()

	s := running(A, 12)
	s.MoveCount = [2]int{7, 6}
	s.Remaining[1] = 90

	require.Equal(t, s, rules.Apply(s, Reset{}))

	paused := rules.Apply(s, TogglePause{})
	reset := rules.Apply(paused, Reset{})
	require.Equal(t, rules.Initial(), reset)
	require.Equal(t, [2]int{600, 600}, reset.Remaining)
	require.Equal(t, [2]int{0, 0}, reset.MoveCount)
	require.Equal(t, None, reset.Active)
	require.False(t, reset.IsPaused)
	require.False(t, reset.HasStarted)

	// Idempotent.
	require.Equal(t, reset, rules.Apply(reset, Reset{}))
}

// TestResetUsesInjectedDefault verifies that the configured default time is restored.
func TestResetUsesInjectedDefault(t *testing.T) {
	t.Parallel()

	rules := Rules{DefaultTime: 180}

	s := rules.Apply(rules.Initial(), SetTime{Player: A, Seconds: 5})
	require.Equal(t, [2]int{180, 180}, rules.Apply(s, Reset{}).Remaining)
}

// TestTickCountsDownToZero runs the five-second scenario and checks that zero is sticky.
func TestTickCountsDownToZero(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	s := running(B, 5)

	for range 5 {
		s = rules.Apply(s, Tick{})
	}

	require.Equal(t, 0, s.TimeLeft(B))
	require.Equal(t, B, s.Active)

	after := rules.Apply(s, Tick{})
	require.Equal(t, s, after)
}

// TestTickPerPlayerStreams verifies that a clock's own stream only moves that clock.
func TestTickPerPlayerStreams(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	s := running(A, 10)

	require.Equal(t, s, rules.Apply(s, Tick{Player: B}))

	s = rules.Apply(s, Tick{Player: A})
	require.Equal(t, 9, s.TimeLeft(A))
	require.Equal(t, 600, s.TimeLeft(B))
}

// TestTickIdleAndPaused verifies ticks are inert when no clock runs.
func TestTickIdleAndPaused(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()

	idle := rules.Initial()
	require.Equal(t, idle, rules.Apply(idle, Tick{}))

	paused := rules.Apply(running(A, 30), TogglePause{})
	require.Equal(t, paused, rules.Apply(paused, Tick{}))
	require.Equal(t, paused, rules.Apply(paused, Tick{Player: A}))
}

// TestSetTime covers the picker scenario, the running guard and the range guard.
func TestSetTime(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()

	ev, err := NewSetTime(A, 2, 30)
	require.NoError(t, err)
	require.Equal(t, 150, ev.Seconds)

	s := rules.Apply(rules.Initial(), ev)
	require.Equal(t, 150, s.TimeLeft(A))
	require.Equal(t, 600, s.TimeLeft(B))

	run := running(A, 20)
	require.Equal(t, run, rules.Apply(run, SetTime{Player: B, Seconds: 1}))

	idle := rules.Initial()
	require.Equal(t, idle, rules.Apply(idle, SetTime{Player: A, Seconds: MaxSetTime + 1}))
	require.Equal(t, idle, rules.Apply(idle, SetTime{Player: A, Seconds: -1}))
	require.Equal(t, idle, rules.Apply(idle, SetTime{Player: None, Seconds: 10}))

	paused := rules.Apply(run, TogglePause{})
	require.Equal(t, 0, rules.Apply(paused, SetTime{Player: B, Seconds: 0}).TimeLeft(B))
}

// TestNewSetTimeRange verifies picker bounds.
func TestNewSetTimeRange(t *testing.T) {
	t.Parallel()

	_, err := NewSetTime(A, 60, 0)
	require.ErrorIs(t, err, ErrInvalidPickerTime)

	_, err = NewSetTime(A, 0, 60)
	require.ErrorIs(t, err, ErrInvalidPickerTime)

	_, err = NewSetTime(B, -1, 0)
	require.ErrorIs(t, err, ErrInvalidPickerTime)

	ev, err := NewSetTime(B, 59, 59)
	require.NoError(t, err)
	require.Equal(t, MaxSetTime, ev.Seconds)
}
