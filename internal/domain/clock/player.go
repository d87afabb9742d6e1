package clock

import (
	"errors"
	"fmt"
	"strings"
)

// Player identifies one side of the clock.
type Player int8

const (
	// None means no player: no clock is running, or the last runner is unset.
	None Player = iota
	// A is the first player, drawn as the top face.
	A
	// B is the second player.
	B
)

// Players lists both sides in index order.
//
//nolint:gochecknoglobals // Read-only table.
var Players = [2]Player{A, B}

// ErrUnknownPlayer is returned when a player name cannot be parsed.
var ErrUnknownPlayer = errors.New("unknown player")

// Other returns the opponent. None has no opponent and maps to None.
func (p Player) Other() Player {
	switch p {
	case A:
		return B
	case B:
		return A
	default:
		return None
	}
}

// Valid reports whether p is A or B.
func (p Player) Valid() bool {
	return p == A || p == B
}

// String returns "A", "B" or "none".
func (p Player) String() string {
	switch p {
	case A:
		return "A"
	case B:
		return "B"
	default:
		return "none"
	}
}

// index maps A and B to array positions 0 and 1.
func (p Player) index() int {
	return int(p) - 1
}

// ParsePlayer accepts "a", "b", "1" or "2" in any case.
func ParsePlayer(s string) (Player, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a", "1":
		return A, nil
	case "b", "2":
		return B, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrUnknownPlayer, s)
	}
}
