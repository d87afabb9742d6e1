package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/oshokin/geronimo/internal/domain/clock"
)

// ErrBadPickerInput is returned when picker input cannot be parsed.
var ErrBadPickerInput = errors.New("bad time input")

// ParsePickerTime reads the two picker wheels from text.
// Accepted forms are "M:SS", "M SS" and Go durations such as "2m30s" or "150s".
// Both parts must lie in 0..59.
func ParsePickerTime(input string) (minutes, seconds int, err error) {
	input = strings.TrimSpace(input)

	switch fields := strings.FieldsFunc(input, func(r rune) bool { return r == ':' || r == ' ' }); {
	case len(fields) == 2:
		minutes, err = strconv.Atoi(fields[0])
		if err != nil {
			return 0, 0, fmt.Errorf("%w: minutes %q", ErrBadPickerInput, fields[0])
		}

		seconds, err = strconv.Atoi(fields[1])
		if err != nil {
			return 0, 0, fmt.Errorf("%w: seconds %q", ErrBadPickerInput, fields[1])
		}
	case len(fields) == 1:
		d, parseErr := time.ParseDuration(fields[0])
		if parseErr != nil || d < 0 || d%time.Second != 0 {
			return 0, 0, fmt.Errorf("%w: %q", ErrBadPickerInput, input)
		}

		total := int(d / time.Second)
		minutes, seconds = total/60, total%60
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrBadPickerInput, input)
	}

	if _, err := clock.NewSetTime(clock.A, minutes, seconds); err != nil {
		return 0, 0, err
	}

	return minutes, seconds, nil
}
