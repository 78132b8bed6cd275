package models

import (
	"sort"
	"time"
)

// Snapshot is the typed, serialisable copy of one chat's session.
// It is the only shape that crosses the persistence boundary.
type Snapshot struct {
	ChatID          string         `json:"chat_id" cbor:"1,keyasint"`
	State           State          `json:"state" cbor:"2,keyasint"`
	Roster          []Player       `json:"roster" cbor:"3,keyasint"`
	TurnOrder       []Player       `json:"turn_order" cbor:"4,keyasint"`
	Numbering       map[int]Player `json:"numbering" cbor:"5,keyasint"`
	Spies           []Player       `json:"spies" cbor:"6,keyasint"`
	Location        string         `json:"location" cbor:"7,keyasint"`
	CurrentSlot     int            `json:"current_slot" cbor:"8,keyasint"`
	IsQuestionPhase bool           `json:"is_question_phase" cbor:"9,keyasint"`
	ReadyToVote     []Player       `json:"ready_to_vote" cbor:"10,keyasint"`
	VotedPlayers    []Player       `json:"voted_players" cbor:"11,keyasint"`
	Votes           map[int]int    `json:"votes" cbor:"12,keyasint"`
	RevealedSpy     *Player        `json:"revealed_spy,omitempty" cbor:"13,keyasint,omitempty"`
	RulesShown      bool           `json:"rules_shown" cbor:"14,keyasint"`

	RegistrationTimerActive bool `json:"registration_timer_active" cbor:"15,keyasint"`
	VoteTimerActive         bool `json:"vote_timer_active" cbor:"16,keyasint"`

	UpdatedAt time.Time `json:"updated_at" cbor:"17,keyasint"`
}

// Survivors returns the numbering as seats ordered by slot
func (s *Snapshot) Survivors() []Seat {
	slots := make([]int, 0, len(s.Numbering))
	for slot := range s.Numbering {
		slots = append(slots, slot)
	}
	sort.Ints(slots)

	seats := make([]Seat, 0, len(slots))
	for _, slot := range slots {
		seats = append(seats, Seat{Slot: slot, Player: s.Numbering[slot]})
	}
	return seats
}
