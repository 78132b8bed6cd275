package game

import (
	"sort"

	"github.com/aaronzipp/spyfall-chat/internal/models"
)

// VerdictKind is the resolution of a voting round
type VerdictKind int

const (
	VerdictNoVotes VerdictKind = iota
	VerdictNoMajority
	VerdictEject
)

// Verdict represents the outcome of vote counting
type Verdict struct {
	Kind     VerdictKind
	Slot     int
	MaxCount int
	Counts   map[int]int
}

// Ballot collects readiness and votes for one voting round
type Ballot struct {
	ready map[string]models.Player
	voted map[string]models.Player
	votes map[int]int
}

// NewBallot creates an empty ballot
func NewBallot() *Ballot {
	return &Ballot{
		ready: make(map[string]models.Player),
		voted: make(map[string]models.Player),
		votes: make(map[int]int),
	}
}

// MarkReady records that p wants to vote. It returns ErrAlreadyReady on
// repeats.
func (b *Ballot) MarkReady(p models.Player) error {
	if _, ok := b.ready[p.ID]; ok {
		return ErrAlreadyReady
	}
	b.ready[p.ID] = p
	return nil
}

// ReadyCount returns how many players are ready to vote
func (b *Ballot) ReadyCount() int {
	return len(b.ready)
}

// QuorumReached determines if strictly more than half of the survivors
// are ready to vote
func (b *Ballot) QuorumReached(survivors int) bool {
	return exceedsQuorum(len(b.ready), survivors)
}

// Cast records one vote for a candidate slot
func (b *Ballot) Cast(voter models.Player, slot int) error {
	if _, ok := b.voted[voter.ID]; ok {
		return ErrAlreadyVoted
	}
	b.voted[voter.ID] = voter
	b.votes[slot]++
	return nil
}

// HasVoted reports whether the player id already voted this round
func (b *Ballot) HasVoted(id string) bool {
	_, ok := b.voted[id]
	return ok
}

// VotedCount returns how many ballots were cast
func (b *Ballot) VotedCount() int {
	return len(b.voted)
}

// AllVoted reports whether every survivor has cast a ballot
func (b *Ballot) AllVoted(survivors int) bool {
	return len(b.voted) >= survivors
}

// Resolve counts the ballots. A candidate is ejected only with strictly
// more than half of the survivors' votes; ties on the top count go to the
// lowest slot.
func (b *Ballot) Resolve(survivors int) Verdict {
	counts := b.Votes()
	if len(counts) == 0 {
		return Verdict{Kind: VerdictNoVotes, Counts: counts}
	}

	maxCount := 0
	var leaders []int
	for slot, count := range counts {
		if count > maxCount {
			maxCount = count
			leaders = []int{slot}
		} else if count == maxCount {
			leaders = append(leaders, slot)
		}
	}
	sort.Ints(leaders)

	v := Verdict{Kind: VerdictNoMajority, MaxCount: maxCount, Counts: counts}
	if exceedsQuorum(maxCount, survivors) {
		v.Kind = VerdictEject
		v.Slot = leaders[0]
	}
	return v
}

// Votes returns a copy of the per-slot counts
func (b *Ballot) Votes() map[int]int {
	out := make(map[int]int, len(b.votes))
	for slot, count := range b.votes {
		out[slot] = count
	}
	return out
}

// ReadyPlayers returns the players ready to vote, sorted
func (b *Ballot) ReadyPlayers() []models.Player {
	return SortPlayers(b.ready)
}

// VotedPlayers returns the players who voted, sorted
func (b *Ballot) VotedPlayers() []models.Player {
	return SortPlayers(b.voted)
}

// Reset clears readiness and votes for the next round
func (b *Ballot) Reset() {
	clear(b.ready)
	clear(b.voted)
	clear(b.votes)
}

func exceedsQuorum(count, survivors int) bool {
	return float64(count) > float64(survivors)*VoteQuorum
}
