package clock

// Rules is the configuration injected into the reducer.
type Rules struct {
	// DefaultTime is the starting time of each clock, in seconds.
	DefaultTime int
}

// DefaultRules returns rules with the stock ten-minute clocks.
func DefaultRules() Rules {
	return Rules{DefaultTime: DefaultTime}
}

// Initial returns the state of a freshly created or reset clock.
func (r Rules) Initial() State {
	t := max(r.DefaultTime, 0)

	return State{
		Remaining: [2]int{t, t},
	}
}

// Apply returns the state that follows s after e.
// Events are passed by value. Unknown events and events that are invalid in the current phase leave s unchanged.
func (r Rules) Apply(s State, e Event) State {
	switch e := e.(type) {
	case TapClock:
		return tapClock(s, e.Player)
	case TogglePause:
		return togglePause(s)
	case Reset:
		return r.reset(s)
	case Tick:
		return tick(s, e.Player)
	case SetTime:
		return setTime(s, e)
	default:
		return s
	}
}

// tapClock hands the turn from the tapped face to the opponent.
func tapClock(s State, p Player) State {
	if !p.Valid() {
		return s
	}

	switch {
	case s.IsPaused:
		return s
	case s.Active == None:
		s.Active = p.Other()
		s.HasStarted = true
	case s.Active == p:
		s.MoveCount[p.index()]++
		s.Active = p.Other()
	}

	return s
}

func togglePause(s State) State {
	switch {
	case s.Active != None:
		s.LastActive = s.Active
		s.Active = None
		s.IsPaused = true
	case s.IsPaused:
		s.Active = s.LastActive
		s.IsPaused = false
	}

	return s
}

// reset is ignored while a clock runs: the game must be paused first.
func (r Rules) reset(s State) State {
	if s.Active != None {
		return s
	}

	return r.Initial()
}

func tick(s State, p Player) State {
	if s.Active == None {
		return s
	}

	if p != None && p != s.Active {
		return s
	}

	i := s.Active.index()
	if s.Remaining[i] > 0 {
		s.Remaining[i]--
	}

	return s
}

func setTime(s State, e SetTime) State {
	if s.Active != None || !e.Player.Valid() {
		return s
	}

	if e.Seconds < 0 || e.Seconds > MaxSetTime {
		return s
	}

	s.Remaining[e.Player.index()] = e.Seconds

	return s
}
