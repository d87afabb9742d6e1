package clock

// Result describes the outcome of a dispatched event.
type Result struct {
	// State is the state after the event.
	State State
	// Changed is set when the event altered the state.
	Changed bool
	// Haptic is set when the event was a state-changing tap. The host owns
	// the pulse itself so it can fire it outside its own locks.
	Haptic bool
}

// Machine holds one clock state and applies events to it.
// It is not safe for concurrent use; hosts must serialize calls.
type Machine struct {
	// rules is the reducer configuration.
	rules Rules
	// state is the current clock state.
	state State
}

// NewMachine creates a machine in the initial state for rules.
func NewMachine(rules Rules) *Machine {
	return &Machine{
		rules: rules,
		state: rules.Initial(),
	}
}

// State returns a snapshot of the current state.
func (m *Machine) State() State {
	return m.state
}

// Rules returns the machine configuration.
func (m *Machine) Rules() Rules {
	return m.rules
}

// Dispatch applies e and reports what happened.
func (m *Machine) Dispatch(e Event) Result {
	next := m.rules.Apply(m.state, e)
	changed := next != m.state
	m.state = next

	_, tapped := e.(TapClock)

	return Result{
		State:   next,
		Changed: changed,
		Haptic:  tapped && changed,
	}
}

// TapClock taps the face of p.
func (m *Machine) TapClock(p Player) Result {
	return m.Dispatch(TapClock{Player: p})
}

// TogglePause pauses or resumes.
func (m *Machine) TogglePause() Result {
	return m.Dispatch(TogglePause{})
}

// Reset restores the defaults unless a clock is running.
func (m *Machine) Reset() Result {
	return m.Dispatch(Reset{})
}

// Tick delivers one unified second.
func (m *Machine) Tick() Result {
	return m.Dispatch(Tick{})
}

// TickPlayer delivers one second from the timer stream of p.
func (m *Machine) TickPlayer(p Player) Result {
	return m.Dispatch(Tick{Player: p})
}

// SetTime sets the remaining seconds of p while no clock runs.
func (m *Machine) SetTime(p Player, seconds int) Result {
	return m.Dispatch(SetTime{Player: p, Seconds: seconds})
}
