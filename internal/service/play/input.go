package play

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oshokin/geronimo/internal/domain/clock"
	"github.com/oshokin/geronimo/internal/view"
)

// action is what a line of input asks the host to do.
type action int8

const (
	actionNone action = iota
	actionTap
	actionPause
	actionReset
	actionSetTime
	actionHelp
	actionQuit
)

// command is one parsed input line.
type command struct {
	action  action
	player  clock.Player
	minutes int
	seconds int
}

var (
	errUnknownCommand = errors.New("unknown command")
	errSetUsage       = errors.New("usage: set <a|b> <M:SS>")
)

// parseCommand reads one line of player input.
// Empty lines yield actionNone.
func parseCommand(line string) (command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return command{action: actionNone}, nil
	}

	switch fields[0] {
	case "a", "1":
		return command{action: actionTap, player: clock.A}, nil
	case "b", "2":
		return command{action: actionTap, player: clock.B}, nil
	case "p", "pause":
		return command{action: actionPause}, nil
	case "r", "reset":
		return command{action: actionReset}, nil
	case "set":
		return parseSetTime(fields[1:])
	case "h", "help", "?":
		return command{action: actionHelp}, nil
	case "q", "quit", "exit":
		return command{action: actionQuit}, nil
	default:
		return command{}, fmt.Errorf("%w %q", errUnknownCommand, fields[0])
	}
}

// parseSetTime reads "<player> <time>" where time is any picker form.
func parseSetTime(args []string) (command, error) {
	if len(args) < 2 {
		return command{}, errSetUsage
	}

	p, err := clock.ParsePlayer(args[0])
	if err != nil {
		return command{}, err
	}

	minutes, seconds, err := view.ParsePickerTime(strings.Join(args[1:], " "))
	if err != nil {
		return command{}, err
	}

	return command{action: actionSetTime, player: p, minutes: minutes, seconds: seconds}, nil
}

// isConfirmation reports whether the answer to a yes/no prompt is yes.
func isConfirmation(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
