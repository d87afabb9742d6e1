package clock

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

// randomEvent draws an event uniformly from every kind the machine accepts.
func randomEvent(r *rand.Rand) Event {
	players := []Player{None, A, B}

	switch r.IntN(5) {
	case 0:
		return TapClock{Player: players[r.IntN(len(players))]}
	case 1:
		return TogglePause{}
	case 2:
		return Reset{}
	case 3:
		return Tick{Player: players[r.IntN(len(players))]}
	default:
		return SetTime{Player: players[r.IntN(len(players))], Seconds: r.IntN(MaxSetTime+20) - 10}
	}
}

// requireInvariants checks every invariant that must hold in any reachable state.
func requireInvariants(t *testing.T, s State) {
	t.Helper()

	require.GreaterOrEqual(t, s.Remaining[0], 0)
	require.GreaterOrEqual(t, s.Remaining[1], 0)
	require.GreaterOrEqual(t, s.MoveCount[0], 0)
	require.GreaterOrEqual(t, s.MoveCount[1], 0)
	require.Contains(t, []Player{None, A, B}, s.Active)

	if s.IsPaused {
		require.Equal(t, None, s.Active)
		require.NotEqual(t, None, s.LastActive)
	}

	if s.Active != None {
		require.True(t, s.HasStarted)
	}
}

// TestRandomSequencesKeepInvariants drives long random event sequences through the reducer.
func TestRandomSequencesKeepInvariants(t *testing.T) {
	t.Parallel()

	rules := Rules{DefaultTime: 3}

	for seed := range uint64(50) {
		r := rand.New(rand.NewPCG(seed, seed*7+1))
		s := rules.Initial()

		for range 500 {
			e := randomEvent(r)
			next := rules.Apply(s, e)

			requireInvariants(t, next)

			// Moves only grow unless the clock was reset.
			if _, isReset := e.(Reset); !isReset {
				require.GreaterOrEqual(t, next.MoveCount[0], s.MoveCount[0])
				require.GreaterOrEqual(t, next.MoveCount[1], s.MoveCount[1])
			}

			// Only the active clock ever loses time.
			if tk, ok := e.(Tick); ok {
				for _, p := range Players {
					if p != s.Active || (tk.Player != None && tk.Player != p) {
						require.Equal(t, s.TimeLeft(p), next.TimeLeft(p))
					}
				}
			}

			s = next
		}
	}
}

// TestPauseResumeRoundTrip checks the pause/resume pair is the identity on any running state.
func TestPauseResumeRoundTrip(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	r := rand.New(rand.NewPCG(1, 2))

	for range 200 {
		s := rules.Initial()
		for range r.IntN(40) {
			s = rules.Apply(s, randomEvent(r))
		}

		if s.Phase() != PhaseRunning {
			continue
		}

		back := rules.Apply(rules.Apply(s, TogglePause{}), TogglePause{})
		require.Equal(t, s.Active, back.Active)
		require.Equal(t, s.Remaining, back.Remaining)
		require.Equal(t, s.MoveCount, back.MoveCount)
	}
}
