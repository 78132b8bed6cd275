package models

// NoticeKind identifies what an outbound message is about
type NoticeKind string

const (
	NoticeRegistrationOpened    NoticeKind = "registration_opened"
	NoticeRegistrationUpdated   NoticeKind = "registration_updated"
	NoticeRegistrationCancelled NoticeKind = "registration_cancelled"
	NoticeGameStarting          NoticeKind = "game_starting"
	NoticeLocations             NoticeKind = "locations"
	NoticeRole                  NoticeKind = "role"
	NoticeHeadcount             NoticeKind = "headcount"
	NoticeQuestionTurn          NoticeKind = "question_turn"
	NoticeAnswerTurn            NoticeKind = "answer_turn"
	NoticeReadyToVote           NoticeKind = "ready_to_vote"
	NoticeVotingOpened          NoticeKind = "voting_opened"
	NoticeVoteCast              NoticeKind = "vote_cast"
	NoticeVoteAccepted          NoticeKind = "vote_accepted"
	NoticeVotingClosed          NoticeKind = "voting_closed"
	NoticeVoteTally             NoticeKind = "vote_tally"
	NoticeNoVotes               NoticeKind = "no_votes"
	NoticeNoMajority            NoticeKind = "no_majority"
	NoticeEjected               NoticeKind = "ejected"
	NoticeRevealRequested       NoticeKind = "reveal_requested"
	NoticeRevealedWorker        NoticeKind = "revealed_worker"
	NoticeRevealedSpy           NoticeKind = "revealed_spy"
	NoticeGuessCorrect          NoticeKind = "guess_correct"
	NoticeGuessWrong            NoticeKind = "guess_wrong"
	NoticeWorkersWin            NoticeKind = "workers_win"
	NoticeDraw                  NoticeKind = "draw"
	NoticeRules                 NoticeKind = "rules"
)

// Choice is one button attached to a notice. Action names the signal the
// button sends back and Value its payload.
type Choice struct {
	Label  string `json:"label"`
	Action string `json:"action"`
	Value  string `json:"value,omitempty"`
}

// Tally is the vote count for one candidate
type Tally struct {
	Seat  Seat `json:"seat"`
	Count int  `json:"count"`
}

// Notice is the typed payload of an outbound effect. Only the fields
// relevant to Kind are set; the transport renders the text.
type Notice struct {
	Kind      NoticeKind `json:"kind"`
	Actor     *Seat      `json:"actor,omitempty"`
	Target    *Seat      `json:"target,omitempty"`
	Seats     []Seat     `json:"seats,omitempty"`
	Players   []Player   `json:"players,omitempty"`
	Workers   int        `json:"workers,omitempty"`
	Spies     int        `json:"spies,omitempty"`
	IsSpy     bool       `json:"is_spy,omitempty"`
	Location  string     `json:"location,omitempty"`
	Locations []string   `json:"locations,omitempty"`
	Tally     []Tally    `json:"tally,omitempty"`
	Minimum   int        `json:"minimum,omitempty"`
	Choices   []Choice   `json:"choices,omitempty"`
}

// MessageRef identifies a message previously sent or received by the transport
type MessageRef string
