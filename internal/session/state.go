package session

// StateType represents the current state of the session engine.
type StateType int

const (
	// StatePresenting indicates a question is being shown.
	StatePresenting StateType = iota
	// StateJudging indicates an answer is being compared.
	StateJudging
	// StateAdvancing indicates the engine is moving to the next card or pass.
	StateAdvancing
	// StateFinished indicates the session is over.
	StateFinished
)

// String returns the string representation of the state.
func (s StateType) String() string {
	switch s {
	case StatePresenting:
		return "presenting"
	case StateJudging:
		return "judging"
	case StateAdvancing:
		return "advancing"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// StateMachine manages state transitions for the session engine.
type StateMachine struct {
	current     StateType
	transitions map[StateType][]StateType
}

// NewStateMachine creates a state machine with the valid session
// transitions. Advancing loops back to Presenting for the next card (or
// the next pass) until the queue drains.
func NewStateMachine() *StateMachine {
	return &StateMachine{
		current: StatePresenting,
		transitions: map[StateType][]StateType{
			StatePresenting: {StateJudging},
			StateJudging:    {StateAdvancing},
			StateAdvancing:  {StatePresenting, StateFinished},
			StateFinished:   {},
		},
	}
}

// Transition attempts to move to the given state and reports whether the
// transition is valid.
func (sm *StateMachine) Transition(to StateType) bool {
	for _, state := range sm.transitions[sm.current] {
		if state == to {
			sm.current = to
			return true
		}
	}
	return false
}

// Current returns the current state.
func (sm *StateMachine) Current() StateType {
	return sm.current
}
