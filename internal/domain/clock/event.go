package clock

import (
	"errors"
	"fmt"
)

// Picker limits: each wheel of the time picker offers 0..59.
const (
	// MaxPickerMinutes is the largest minutes value the picker offers.
	MaxPickerMinutes = 59
	// MaxPickerSeconds is the largest seconds value the picker offers.
	MaxPickerSeconds = 59
	// MaxSetTime is the largest time SetTime accepts, in seconds.
	MaxSetTime = MaxPickerMinutes*60 + MaxPickerSeconds
)

// ErrInvalidPickerTime is returned when picker parts fall outside 0..59.
var ErrInvalidPickerTime = errors.New("picker time out of range")

// Event is an input to the state machine.
type Event interface {
	// Name is a short identifier used in logs and update streams.
	Name() string
}

// TapClock is a tap on the face of Player.
type TapClock struct {
	Player Player
}

// TogglePause pauses a running clock or resumes a paused one.
type TogglePause struct{}

// Reset restores the configured defaults.
type Reset struct{}

// Tick is one elapsed second. A zero Player is the unified tick and
// decrements whichever clock is active; a set Player comes from that
// clock's own timer stream.
type Tick struct {
	Player Player
}

// SetTime sets the remaining time of Player, in seconds.
type SetTime struct {
	Player  Player
	Seconds int
}

// NewSetTime builds a SetTime event from time picker parts.
func NewSetTime(p Player, minutes, seconds int) (SetTime, error) {
	if minutes < 0 || minutes > MaxPickerMinutes || seconds < 0 || seconds > MaxPickerSeconds {
		return SetTime{}, fmt.Errorf("%w: %d min %d sec", ErrInvalidPickerTime, minutes, seconds)
	}

	return SetTime{
		Player:  p,
		Seconds: minutes*60 + seconds,
	}, nil
}

// Name implements Event.
func (TapClock) Name() string { return "tap" }

// Name implements Event.
func (TogglePause) Name() string { return "toggle_pause" }

// Name implements Event.
func (Reset) Name() string { return "reset" }

// Name implements Event.
func (Tick) Name() string { return "tick" }

// Name implements Event.
func (SetTime) Name() string { return "set_time" }
