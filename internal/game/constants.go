package game

import "errors"

const (
	// MinPlayers is the lowest minimal player count a deployment may
	// configure. With fewer, the spy ratio would make every player a spy.
	MinPlayers = 2

	// VoteQuorum is the fraction of survivors that must be exceeded to
	// open a vote or eject a candidate
	VoteQuorum = 0.5
)

var (
	ErrNoSurvivors     = errors.New("game: no surviving players")
	ErrUnknownSlot     = errors.New("game: slot not in numbering")
	ErrRosterTooSmall  = errors.New("game: roster below minimal player count")
	ErrInvalidMinimum  = errors.New("game: minimal player count below 2")
	ErrAlreadyVoted    = errors.New("game: player already voted")
	ErrAlreadyReady    = errors.New("game: player already ready to vote")
	ErrGuessOutOfRange = errors.New("game: guess outside location pool")
	ErrEmptyPool       = errors.New("game: empty location pool")
)
