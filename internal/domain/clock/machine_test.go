package clock

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestMachineHaptics verifies pulses are requested only for state-changing taps.
func TestMachineHaptics(t *testing.T) {
	t.Parallel()

	m := NewMachine(DefaultRules())

	res := m.TapClock(A)
	require.True(t, res.Changed)
	require.True(t, res.Haptic)
	require.Equal(t, B, res.State.Active)

	// Waiting face: ignored, no pulse.
	res = m.TapClock(A)
	require.False(t, res.Changed)
	require.False(t, res.Haptic)

	res = m.TogglePause()
	require.True(t, res.Changed)
	require.False(t, res.Haptic)
}

// TestMachineScenario plays a short game through the convenience methods.
func TestMachineScenario(t *testing.T) {
	t.Parallel()

	m := NewMachine(Rules{DefaultTime: 4})

	require.True(t, m.SetTime(A, 2).Changed)
	m.TapClock(B) // A starts.
	require.Equal(t, A, m.State().Active)

	m.Tick()
	m.Tick()
	require.False(t, m.Tick().Changed)
	require.Equal(t, 0, m.State().TimeLeft(A))

	m.TapClock(A)
	require.Equal(t, 1, m.State().Moves(A))
	require.Equal(t, B, m.State().Active)

	require.True(t, m.TickPlayer(B).Changed)
	require.False(t, m.TickPlayer(A).Changed)
	require.False(t, m.Reset().Changed)

	m.TogglePause()
	require.True(t, m.Reset().Changed)
	require.Equal(t, m.Rules().Initial(), m.State())
}
