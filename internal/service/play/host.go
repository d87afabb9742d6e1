package play

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/oshokin/geronimo/internal/config"
	"github.com/oshokin/geronimo/internal/domain/clock"
	"github.com/oshokin/geronimo/internal/logger"
	"github.com/oshokin/geronimo/internal/service/session"
	"github.com/oshokin/geronimo/internal/view"
)

// clearScreen moves the cursor home and erases the terminal.
const clearScreen = "\033[H\033[2J"

// host turns input lines into session operations and draws the screen.
// It is driven from a single goroutine.
type host struct {
	svc    *session.Service
	labels config.Labels
	out    io.Writer
	clear  bool

	// confirmingReset is set while the reset prompt waits for an answer.
	confirmingReset bool
	// notice is shown under the clock until the next command.
	notice string
}

func newHost(svc *session.Service, labels config.Labels, out io.Writer, clear bool) *host {
	return &host{
		svc:    svc,
		labels: labels,
		out:    out,
		clear:  clear,
	}
}

// handleLine applies one line of input and reports whether the player quit.
func (h *host) handleLine(ctx context.Context, line string) bool {
	h.notice = ""

	if h.confirmingReset {
		h.confirmingReset = false

		if isConfirmation(line) {
			h.svc.Reset(ctx)
		} else {
			h.notice = "Reset canceled."
		}

		h.render(h.svc.State(ctx))

		return false
	}

	cmd, err := parseCommand(line)
	if err != nil {
		logger.DebugKV(ctx, "Rejected input", "line", line, "error", err)
		h.notice = err.Error() + " (h for help)"
		h.render(h.svc.State(ctx))

		return false
	}

	switch cmd.action {
	case actionNone:
	case actionTap:
		h.svc.TapClock(ctx, cmd.player)
	case actionPause:
		if h.svc.State(ctx).Phase() == clock.PhaseIdle {
			h.notice = "Tap a face to start the clock."
		} else {
			h.svc.TogglePause(ctx)
		}
	case actionReset:
		h.askReset(ctx)
	case actionSetTime:
		h.setTime(ctx, cmd)
	case actionHelp:
		h.notice = h.help()
	case actionQuit:
		return true
	}

	h.render(h.svc.State(ctx))

	return false
}

// askReset opens the confirmation prompt; reset is offered only while paused.
func (h *host) askReset(ctx context.Context) {
	if !h.svc.State(ctx).IsPaused {
		h.notice = fmt.Sprintf("%s is available only while paused.", h.labels.Reset)

		return
	}

	h.confirmingReset = true
	h.notice = fmt.Sprintf("%s both clocks? [y/N]", h.labels.Reset)
}

// setTime runs the picker; it is offered only before the first tap.
func (h *host) setTime(ctx context.Context, cmd command) {
	if h.svc.State(ctx).HasStarted {
		h.notice = fmt.Sprintf("%s is available only before the game starts.", h.labels.SetTime)

		return
	}

	state, err := h.svc.SetTime(ctx, cmd.player, cmd.minutes, cmd.seconds)
	if err != nil {
		h.notice = err.Error()

		return
	}

	h.notice = fmt.Sprintf("%s: %s %s", h.labels.Set, h.playerName(cmd.player), clock.FormatSeconds(state.TimeLeft(cmd.player)))
}

// render draws the clock, the current notice and the prompt.
func (h *host) render(s clock.State) {
	var b strings.Builder

	if h.clear {
		b.WriteString(clearScreen)
	}

	b.WriteString(view.Render(s, h.labels))

	if h.notice != "" {
		b.WriteString(h.notice + "\n")
	}

	b.WriteString("> ")

	_, _ = io.WriteString(h.out, b.String())
}

func (h *host) help() string {
	lines := []string{
		fmt.Sprintf("a, 1        tap %s", h.labels.PlayerA),
		fmt.Sprintf("b, 2        tap %s", h.labels.PlayerB),
		fmt.Sprintf("p           %s / %s", h.labels.Pause, h.labels.Resume),
		fmt.Sprintf("r           %s (while paused)", h.labels.Reset),
		fmt.Sprintf("set a 5:00  %s (%s:%s, before the first tap)", h.labels.SetTime, h.labels.Minutes, h.labels.Seconds),
		"h           help",
		"q           quit",
	}

	return strings.Join(lines, "\n")
}

func (h *host) playerName(p clock.Player) string {
	if p == clock.B {
		return h.labels.PlayerB
	}

	return h.labels.PlayerA
}
