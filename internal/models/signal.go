package models

// SignalKind names an inbound player action
type SignalKind string

const (
	SignalStart     SignalKind = "start"
	SignalJoin      SignalKind = "join"
	SignalStartNow  SignalKind = "start-now"
	SignalDone      SignalKind = "done"
	SignalVoteReady SignalKind = "vote-ready"
	SignalVote      SignalKind = "vote"
	SignalReveal    SignalKind = "reveal"
	SignalGuess     SignalKind = "guess"
	SignalMessage   SignalKind = "message"
	SignalRole      SignalKind = "role"
	SignalRules     SignalKind = "rules"
)

// Signal is one inbound action carrying an optional payload
type Signal struct {
	Kind  SignalKind `json:"kind"`
	Value string     `json:"value,omitempty"`
	Text  string     `json:"text,omitempty"`
	Ref   MessageRef `json:"ref,omitempty"`
}
