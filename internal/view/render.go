package view

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/oshokin/geronimo/internal/config"
	"github.com/oshokin/geronimo/internal/domain/clock"
)

// activeMarker flags the face whose clock is counting down.
const activeMarker = "▶"

// Face is the rendered content of one player's half of the screen.
type Face struct {
	Name    string
	Time    string
	Moves   string
	Active  bool
	SetTime string
}

// Screen is the rendered content of the whole clock.
type Screen struct {
	Faces [2]Face
	// Pause is the pause/resume control label, empty while idle.
	Pause string
	// Reset is the reset control label, offered only while paused.
	Reset string
}

// Build maps a state onto the controls the screen offers.
func Build(s clock.State, labels config.Labels) Screen {
	names := [2]string{labels.PlayerA, labels.PlayerB}

	var screen Screen

	for i, p := range clock.Players {
		screen.Faces[i] = Face{
			Name:    names[i],
			Time:    clock.FormatSeconds(s.TimeLeft(p)),
			Moves:   fmt.Sprintf("%s %d", labels.MoveCount, s.Moves(p)),
			Active:  s.Active == p,
			SetTime: lo.Ternary(s.HasStarted, "", labels.SetTime),
		}
	}

	if s.Phase() != clock.PhaseIdle {
		screen.Pause = lo.Ternary(s.IsPaused, labels.Resume, labels.Pause)
	}

	if s.IsPaused {
		screen.Reset = labels.Reset
	}

	return screen
}

// Render returns a multi-line text rendering of s.
func Render(s clock.State, labels config.Labels) string {
	screen := Build(s, labels)

	var b strings.Builder

	for _, face := range screen.Faces {
		marker := lo.Ternary(face.Active, activeMarker, " ")
		fmt.Fprintf(&b, "%s %-10s %s   %s", marker, face.Name, face.Time, face.Moves)

		if face.SetTime != "" {
			fmt.Fprintf(&b, "   [%s]", face.SetTime)
		}

		b.WriteByte('\n')
	}

	controls := lo.Compact([]string{screen.Pause, screen.Reset})
	if len(controls) > 0 {
		b.WriteString("  [" + strings.Join(controls, "] [") + "]\n")
	}

	return b.String()
}
