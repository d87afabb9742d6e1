package clock

import "fmt"

// DefaultTime is the starting time of each clock, in seconds.
const DefaultTime = 600

// Phase is the coarse state of the machine.
type Phase int

const (
	// PhaseIdle means no clock has been started since the last reset.
	PhaseIdle Phase = iota
	// PhaseRunning means exactly one clock is counting down.
	PhaseRunning
	// PhasePaused means a running clock was stopped by a pause.
	PhasePaused
)

// String returns a lower-case phase name.
func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	default:
		return "idle"
	}
}

// State is the complete observable state of the clock.
// It is a value type; a copy is a snapshot.
type State struct {
	// Remaining holds seconds left per player, indexed A=0, B=1.
	Remaining [2]int
	// MoveCount holds completed moves per player, indexed A=0, B=1.
	MoveCount [2]int
	// Active is the player whose clock is counting down, or None.
	Active Player
	// LastActive is the player who was running before the latest pause.
	LastActive Player
	// IsPaused is set while a started game is paused.
	IsPaused bool
	// HasStarted is set once either clock has run since the last reset.
	HasStarted bool
}

// TimeLeft returns the remaining seconds of p, or 0 for an invalid player.
func (s State) TimeLeft(p Player) int {
	if !p.Valid() {
		return 0
	}

	return s.Remaining[p.index()]
}

// Moves returns the move count of p, or 0 for an invalid player.
func (s State) Moves(p Player) int {
	if !p.Valid() {
		return 0
	}

	return s.MoveCount[p.index()]
}

// Phase derives the coarse machine phase.
func (s State) Phase() Phase {
	switch {
	case s.Active != None:
		return PhaseRunning
	case s.IsPaused:
		return PhasePaused
	default:
		return PhaseIdle
	}
}

// String renders a compact single-line description, mostly for logs.
func (s State) String() string {
	return fmt.Sprintf(
		"%s A=%s/%d B=%s/%d active=%s",
		s.Phase(),
		FormatSeconds(s.Remaining[0]), s.MoveCount[0],
		FormatSeconds(s.Remaining[1]), s.MoveCount[1],
		s.Active,
	)
}

// FormatSeconds renders seconds as MM:SS. Minutes are not capped.
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}

	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
