package clock

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"

	domain "github.com/oshokin/geronimo/internal/domain/clock"
	"github.com/oshokin/geronimo/internal/service/session"
)

// Snapshot field names.
const (
	fieldSessionID  = "session_id"
	fieldRemainingA = "remaining_a"
	fieldRemainingB = "remaining_b"
	fieldMovesA     = "moves_a"
	fieldMovesB     = "moves_b"
	fieldActive     = "active"
	fieldLastActive = "last_active"
	fieldIsPaused   = "is_paused"
	fieldHasStarted = "has_started"
	fieldCause      = "cause"
	fieldHaptic     = "haptic"
	fieldPlayer     = "player"
	fieldMinutes    = "minutes"
	fieldSeconds    = "seconds"
)

// CauseSnapshot marks the first message of a Watch stream.
const CauseSnapshot = "snapshot"

var (
	// errMissingField is returned when a required struct field is absent.
	errMissingField = errors.New("missing field")
	// errNotInteger is returned when a numeric field has a fraction or is out of range.
	errNotInteger = errors.New("not an integer")
)

// Snapshot is the decoded form of a state message.
type Snapshot struct {
	SessionID string
	State     domain.State
	// Cause and Haptic are only set on Watch updates.
	Cause  string
	Haptic bool
}

// toProtoState encodes a state with its session identifier.
func toProtoState(sessionID string, s domain.State) *structpb.Struct {
	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			fieldSessionID:  structpb.NewStringValue(sessionID),
			fieldRemainingA: structpb.NewNumberValue(float64(s.TimeLeft(domain.A))),
			fieldRemainingB: structpb.NewNumberValue(float64(s.TimeLeft(domain.B))),
			fieldMovesA:     structpb.NewNumberValue(float64(s.Moves(domain.A))),
			fieldMovesB:     structpb.NewNumberValue(float64(s.Moves(domain.B))),
			fieldActive:     structpb.NewStringValue(s.Active.String()),
			fieldLastActive: structpb.NewStringValue(s.LastActive.String()),
			fieldIsPaused:   structpb.NewBoolValue(s.IsPaused),
			fieldHasStarted: structpb.NewBoolValue(s.HasStarted),
		},
	}
}

// toProtoUpdate encodes a session update.
func toProtoUpdate(u session.Update) *structpb.Struct {
	msg := toProtoState(u.SessionID, u.State)
	msg.Fields[fieldCause] = structpb.NewStringValue(u.Cause)
	msg.Fields[fieldHaptic] = structpb.NewBoolValue(u.Haptic)

	return msg
}

// SnapshotFromProto decodes a state or update message.
func SnapshotFromProto(msg *structpb.Struct) (Snapshot, error) {
	fields := msg.GetFields()

	var (
		snap Snapshot
		err  error
	)

	snap.SessionID = fields[fieldSessionID].GetStringValue()
	snap.Cause = fields[fieldCause].GetStringValue()
	snap.Haptic = fields[fieldHaptic].GetBoolValue()
	snap.State.IsPaused = fields[fieldIsPaused].GetBoolValue()
	snap.State.HasStarted = fields[fieldHasStarted].GetBoolValue()

	ints := []struct {
		name string
		dst  *int
	}{
		{fieldRemainingA, &snap.State.Remaining[0]},
		{fieldRemainingB, &snap.State.Remaining[1]},
		{fieldMovesA, &snap.State.MoveCount[0]},
		{fieldMovesB, &snap.State.MoveCount[1]},
	}
	for _, f := range ints {
		if *f.dst, err = intField(fields, f.name); err != nil {
			return Snapshot{}, err
		}
	}

	if snap.State.Active, err = optionalPlayer(fields[fieldActive].GetStringValue()); err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", fieldActive, err)
	}

	if snap.State.LastActive, err = optionalPlayer(fields[fieldLastActive].GetStringValue()); err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", fieldLastActive, err)
	}

	return snap, nil
}

// NewSetTimeRequest builds the SetTime request message.
func NewSetTimeRequest(p domain.Player, minutes, seconds int) *structpb.Struct {
	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			fieldPlayer:  structpb.NewStringValue(p.String()),
			fieldMinutes: structpb.NewNumberValue(float64(minutes)),
			fieldSeconds: structpb.NewNumberValue(float64(seconds)),
		},
	}
}

// setTimeFromProto decodes the SetTime request message.
func setTimeFromProto(msg *structpb.Struct) (p domain.Player, minutes, seconds int, err error) {
	fields := msg.GetFields()

	if p, err = domain.ParsePlayer(fields[fieldPlayer].GetStringValue()); err != nil {
		return domain.None, 0, 0, err
	}

	if minutes, err = intField(fields, fieldMinutes); err != nil {
		return domain.None, 0, 0, err
	}

	if seconds, err = intField(fields, fieldSeconds); err != nil {
		return domain.None, 0, 0, err
	}

	return p, minutes, seconds, nil
}

// intField reads a whole number field.
func intField(fields map[string]*structpb.Value, name string) (int, error) {
	v, ok := fields[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", errMissingField, name)
	}

	n := v.GetNumberValue()
	if n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s=%v", errNotInteger, name, n)
	}

	return int(n), nil
}

// optionalPlayer parses a player name where "none" or empty means no player.
func optionalPlayer(s string) (domain.Player, error) {
	if s == "" || strings.EqualFold(s, domain.None.String()) {
		return domain.None, nil
	}

	return domain.ParsePlayer(s)
}
