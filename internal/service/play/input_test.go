package play

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/geronimo/internal/domain/clock"
	"github.com/oshokin/geronimo/internal/view"
)

// TestParseCommand covers every command word and the picker forms.
func TestParseCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want command
	}{
		{line: "", want: command{action: actionNone}},
		{line: "   ", want: command{action: actionNone}},
		{line: "a", want: command{action: actionTap, player: clock.A}},
		{line: "1", want: command{action: actionTap, player: clock.A}},
		{line: "B", want: command{action: actionTap, player: clock.B}},
		{line: "2", want: command{action: actionTap, player: clock.B}},
		{line: "p", want: command{action: actionPause}},
		{line: "r", want: command{action: actionReset}},
		{line: "h", want: command{action: actionHelp}},
		{line: "q", want: command{action: actionQuit}},
		{line: "set a 2:30", want: command{action: actionSetTime, player: clock.A, minutes: 2, seconds: 30}},
		{line: "set b 5 00", want: command{action: actionSetTime, player: clock.B, minutes: 5}},
		{line: "set 2 90s", want: command{action: actionSetTime, player: clock.B, minutes: 1, seconds: 30}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			got, err := parseCommand(tt.line)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

// TestParseCommand_Errors checks rejected input.
func TestParseCommand_Errors(t *testing.T) {
	t.Parallel()

	_, err := parseCommand("castle")
	require.ErrorIs(t, err, errUnknownCommand)

	_, err = parseCommand("set a")
	require.ErrorIs(t, err, errSetUsage)

	_, err = parseCommand("set c 1:00")
	require.ErrorIs(t, err, clock.ErrUnknownPlayer)

	_, err = parseCommand("set a 1:75")
	require.ErrorIs(t, err, clock.ErrInvalidPickerTime)

	_, err = parseCommand("set a soon")
	require.ErrorIs(t, err, view.ErrBadPickerInput)
}

// TestIsConfirmation checks the yes/no prompt answers.
func TestIsConfirmation(t *testing.T) {
	t.Parallel()

	require.True(t, isConfirmation("y"))
	require.True(t, isConfirmation(" YES "))
	require.False(t, isConfirmation(""))
	require.False(t, isConfirmation("n"))
	require.False(t, isConfirmation("r"))
}
