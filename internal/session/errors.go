package session

import (
	"errors"
	"fmt"
)

// RejectionError is a player-facing refusal. The session is left
// unchanged and the transport shows Message to the acting player only
type RejectionError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *RejectionError) Error() string {
	return e.Message
}

var (
	ErrWrongPhase          = &RejectionError{Code: "wrong_phase", Message: "That can't be done right now."}
	ErrNotInGame           = &RejectionError{Code: "not_in_game", Message: "You are not in the game."}
	ErrNotYourTurn         = &RejectionError{Code: "not_your_turn", Message: "It's not your turn!"}
	ErrAlreadyVoted        = &RejectionError{Code: "already_voted", Message: "You have already voted."}
	ErrAlreadyReady        = &RejectionError{Code: "already_ready", Message: "You are already ready to vote."}
	ErrUnknownCandidate    = &RejectionError{Code: "unknown_candidate", Message: "That player is not in the game."}
	ErrNotEnoughPlayers    = &RejectionError{Code: "not_enough_players", Message: "Not enough players to start the game."}
	ErrRegistrationRunning = &RejectionError{Code: "registration_running", Message: "Registration has already started!"}
	ErrGameRunning         = &RejectionError{Code: "game_running", Message: "The game is already running!"}
	ErrNotRevealedSpy      = &RejectionError{Code: "not_revealed_spy", Message: "Only the revealed spy may guess."}
	ErrRulesShown          = &RejectionError{Code: "rules_shown", Message: "The rules are already in the chat!"}
	ErrNoSession           = &RejectionError{Code: "no_session", Message: "No game in this chat."}
)

// ErrIgnored marks a malformed or out-of-phase signal that transports
// drop without telling anyone
var ErrIgnored = errors.New("session: signal ignored")

// ErrInvariant marks an internal breach. The session that raised it has
// already been reset to idle when the caller sees it
var ErrInvariant = errors.New("session: invariant violated")

// IsRejection reports whether err is a player-facing rejection
func IsRejection(err error) bool {
	var r *RejectionError
	return errors.As(err, &r)
}

// AsRejection extracts the rejection carried by err
func AsRejection(err error) (*RejectionError, bool) {
	var r *RejectionError
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// errReleased is returned when a command reaches a Machine that left the
// registry while another took its chat. Manager.Apply retries
var errReleased = errors.New("session: machine released")

func invariant(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInvariant, op, err)
}
