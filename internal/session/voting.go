package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/aaronzipp/spyfall-chat/internal/game"
	"github.com/aaronzipp/spyfall-chat/internal/logging"
	"github.com/aaronzipp/spyfall-chat/internal/models"
	"github.com/aaronzipp/spyfall-chat/internal/timer"
)

// ReadyToVote records that p wants to vote. Voting opens once strictly
// more than half of the survivors are ready
func (m *Machine) ReadyToVote(ctx context.Context, p models.Player) error {
	return m.do(ctx, "ready_to_vote", func() error {
		if m.state != models.StatePlaying {
			return ErrWrongPhase
		}
		seat, ok := m.seatOf(p)
		if !ok {
			return ErrNotInGame
		}
		if err := m.ballot.MarkReady(seat.Player); err != nil {
			if errors.Is(err, game.ErrAlreadyReady) {
				return ErrAlreadyReady
			}
			return invariant("ready to vote", err)
		}
		m.announce(ctx, models.Notice{Kind: models.NoticeReadyToVote, Actor: &seat})

		if !m.ballot.QuorumReached(m.cycle.Len()) {
			return nil
		}
		return m.openVoting(ctx)
	})
}

// CastVote records p's ballot for the candidate at slot. Once every
// survivor has voted the round resolves without waiting for the timer
func (m *Machine) CastVote(ctx context.Context, p models.Player, slot int) error {
	return m.do(ctx, "cast_vote", func() error {
		if m.state != models.StateVoting {
			return ErrWrongPhase
		}
		voter, ok := m.seatOf(p)
		if !ok {
			return ErrNotInGame
		}
		holder, ok := m.cycle.Holder(slot)
		if !ok {
			return ErrUnknownCandidate
		}
		if err := m.ballot.Cast(voter.Player, slot); err != nil {
			if errors.Is(err, game.ErrAlreadyVoted) {
				return ErrAlreadyVoted
			}
			return invariant("cast vote", err)
		}

		candidate := models.Seat{Slot: slot, Player: holder}
		m.announce(ctx, models.Notice{Kind: models.NoticeVoteCast, Actor: &voter})
		m.prompt(ctx, voter.Player, models.Notice{Kind: models.NoticeVoteAccepted, Target: &candidate})

		m.log.Debug().
			Str(logging.FieldPlayerID, p.ID).
			Int(logging.FieldSlot, slot).
			Int("voted", m.ballot.VotedCount()).
			Msg("vote cast")

		if !m.ballot.AllVoted(m.cycle.Len()) {
			return nil
		}
		if !m.voteTimer.Cancel() {
			return nil
		}
		m.voteTimer = nil
		return m.resolveVote(ctx)
	})
}

func (m *Machine) openVoting(ctx context.Context) error {
	if err := m.transition(models.StateVoting); err != nil {
		return err
	}

	seats := m.cycle.Seats()
	choices := make([]models.Choice, len(seats))
	for i, seat := range seats {
		choices[i] = models.Choice{
			Label:  fmt.Sprintf("%d. %s", seat.Slot, seat.Player.Name),
			Action: string(models.SignalVote),
			Value:  strconv.Itoa(seat.Slot),
		}
	}
	m.voteMsg = m.announce(ctx, models.Notice{Kind: models.NoticeVotingOpened, Seats: seats, Choices: choices})
	m.voteTimer = m.timers.StartDelayed(m.cfg.VoteTimeout, m.onVoteTimeout)
	return nil
}

func (m *Machine) onVoteTimeout(h *timer.Handle) {
	ctx := m.background()
	_ = m.do(ctx, "vote_timeout", func() error {
		if m.voteTimer != h || m.state != models.StateVoting {
			return nil
		}
		m.voteTimer = nil
		return m.resolveVote(ctx)
	})
}

// resolveVote closes the round, ejects the majority candidate if there is
// one and evaluates the win rules. The vote timer must already be released
func (m *Machine) resolveVote(ctx context.Context) error {
	survivors := m.cycle.Len()
	verdict := m.ballot.Resolve(survivors)

	m.edit(ctx, m.voteMsg, models.Notice{Kind: models.NoticeVotingClosed})
	m.voteMsg = ""

	if verdict.Kind != game.VerdictNoVotes {
		m.announce(ctx, models.Notice{Kind: models.NoticeVoteTally, Tally: m.tally(verdict.Counts)})
	}

	switch verdict.Kind {
	case game.VerdictNoVotes:
		m.announce(ctx, models.Notice{Kind: models.NoticeNoVotes})
	case game.VerdictNoMajority:
		m.announce(ctx, models.Notice{Kind: models.NoticeNoMajority})
	case game.VerdictEject:
		holder, ok := m.cycle.Holder(verdict.Slot)
		if !ok {
			return invariant("resolve vote", fmt.Errorf("%w: %d", game.ErrUnknownSlot, verdict.Slot))
		}
		target := models.Seat{Slot: verdict.Slot, Player: holder}
		m.announce(ctx, models.Notice{Kind: models.NoticeEjected, Target: &target, IsSpy: m.isSpy(holder.ID)})
		if _, err := m.eliminate(verdict.Slot); err != nil {
			return err
		}
	}

	m.log.Info().
		Int("survivors", survivors).
		Int("max_count", verdict.MaxCount).
		Int(logging.FieldSlot, verdict.Slot).
		Msg("vote resolved")

	m.ballot.Reset()
	return m.evaluate(ctx)
}

func (m *Machine) tally(counts map[int]int) []models.Tally {
	out := make([]models.Tally, 0, len(counts))
	for slot, count := range counts {
		holder, ok := m.cycle.Holder(slot)
		if !ok {
			continue
		}
		out = append(out, models.Tally{Seat: models.Seat{Slot: slot, Player: holder}, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Seat.Slot < out[j].Seat.Slot
	})
	return out
}
