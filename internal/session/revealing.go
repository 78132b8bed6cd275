package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aaronzipp/spyfall-chat/internal/game"
	"github.com/aaronzipp/spyfall-chat/internal/logging"
	"github.com/aaronzipp/spyfall-chat/internal/models"
)

// Reveal exposes p's role. A worker is eliminated on the spot; a spy gets
// one guess at the location
func (m *Machine) Reveal(ctx context.Context, p models.Player) error {
	return m.do(ctx, "reveal", func() error {
		if m.state != models.StatePlaying {
			return ErrWrongPhase
		}
		seat, ok := m.seatOf(p)
		if !ok {
			return ErrNotInGame
		}
		if err := m.transition(models.StateRevealing); err != nil {
			return err
		}
		m.announce(ctx, models.Notice{Kind: models.NoticeRevealRequested, Actor: &seat})

		if !m.isSpy(p.ID) {
			m.announce(ctx, models.Notice{Kind: models.NoticeRevealedWorker, Actor: &seat})
			if _, err := m.eliminate(seat.Slot); err != nil {
				return err
			}
			return m.evaluate(ctx)
		}

		spy := seat.Player
		m.revealedSpy = &spy

		pool := m.cfg.Locations
		choices := make([]models.Choice, len(pool))
		for i, loc := range pool {
			choices[i] = models.Choice{
				Label:  fmt.Sprintf("%d. %s", i+1, loc),
				Action: string(models.SignalGuess),
				Value:  strconv.Itoa(i + 1),
			}
		}
		m.announce(ctx, models.Notice{
			Kind:      models.NoticeRevealedSpy,
			Actor:     &seat,
			Locations: []string(pool.Clone()),
			Choices:   choices,
		})
		m.log.Info().Str(logging.FieldPlayerID, p.ID).Msg("spy revealed")
		return nil
	})
}

// Guess resolves the revealed spy's location guess, a 1-based index into
// the pool. Guesses outside Revealing or off the pool are ignored
func (m *Machine) Guess(ctx context.Context, p models.Player, index int) error {
	return m.do(ctx, "guess", func() error {
		if m.state != models.StateRevealing {
			return ErrIgnored
		}
		if m.revealedSpy == nil {
			return invariant("guess", errors.New("revealing without a revealed spy"))
		}
		if p.ID != m.revealedSpy.ID {
			return ErrNotRevealedSpy
		}
		guess, correct, err := game.CheckGuess(m.cfg.Locations, index, m.location)
		if err != nil {
			return ErrIgnored
		}
		seat, ok := m.seatOf(p)
		if !ok {
			return invariant("guess", fmt.Errorf("%w: revealed spy %s", game.ErrUnknownSlot, p.ID))
		}

		if correct {
			m.announce(ctx, models.Notice{Kind: models.NoticeGuessCorrect, Actor: &seat, Location: m.location})
			return m.conclude(game.OutcomeSpiesWin)
		}

		m.announce(ctx, models.Notice{Kind: models.NoticeGuessWrong, Actor: &seat, Location: guess})
		if _, err := m.eliminate(seat.Slot); err != nil {
			return err
		}
		return m.evaluate(ctx)
	})
}
