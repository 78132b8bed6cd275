package models

// State represents the current phase of a chat session
type State string

const (
	StateIdle        State = "idle"
	StateRegistering State = "registering"
	StatePlaying     State = "playing"
	StateVoting      State = "voting"
	StateRevealing   State = "revealing"
	StateConcluded   State = "concluded"
)

var transitions = map[State][]State{
	StateIdle:        {StateRegistering},
	StateRegistering: {StatePlaying, StateIdle},
	StatePlaying:     {StateVoting, StateRevealing, StateConcluded, StatePlaying},
	StateVoting:      {StatePlaying, StateConcluded},
	StateRevealing:   {StatePlaying, StateConcluded},
	StateConcluded:   {StateIdle},
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// CanTransitionTo checks if a transition from s to target is allowed
func (s State) CanTransitionTo(target State) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// InGame reports whether roles have been assigned and the game is running
func (s State) InGame() bool {
	switch s {
	case StatePlaying, StateVoting, StateRevealing:
		return true
	default:
		return false
	}
}
