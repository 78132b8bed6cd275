package session

import (
	"context"

	"github.com/aaronzipp/spyfall-chat/internal/game"
	"github.com/aaronzipp/spyfall-chat/internal/logging"
	"github.com/aaronzipp/spyfall-chat/internal/models"
)

var (
	doneChoice = models.Choice{Label: "Done", Action: string(models.SignalDone)}
	roleChoice = models.Choice{Label: "My role", Action: string(models.SignalRole)}
)

// EndTurn passes the turn on. Only the current turn holder may end it
func (m *Machine) EndTurn(ctx context.Context, p models.Player) error {
	return m.do(ctx, "end_turn", func() error {
		if m.state != models.StatePlaying {
			return ErrWrongPhase
		}
		cur, err := m.cycle.Current()
		if err != nil {
			return invariant("end turn", err)
		}
		if cur.Player.ID != p.ID {
			return ErrNotYourTurn
		}
		if _, err := m.cycle.Advance(); err != nil {
			return invariant("advance turn", err)
		}
		return m.announceTurn(ctx)
	})
}

// Message decides whether an ordinary chat message must be suppressed.
// While playing, only the turn holder may talk; commands always pass
func (m *Machine) Message(ctx context.Context, from models.Player, ref models.MessageRef, isCommand bool) (bool, error) {
	var suppressed bool
	err := m.view(ctx, "message", func() error {
		if m.state != models.StatePlaying || isCommand {
			return nil
		}
		cur, err := m.cycle.Current()
		if err != nil {
			return invariant("message", err)
		}
		if cur.Player.ID == from.ID {
			return nil
		}
		suppressed = true
		m.remove(ctx, ref)
		return nil
	})
	return suppressed, err
}

// MyRole privately repeats the player's role
func (m *Machine) MyRole(ctx context.Context, p models.Player) error {
	return m.view(ctx, "my_role", func() error {
		if !m.state.InGame() {
			return ErrNoSession
		}
		seat, ok := m.seatOf(p)
		if !ok {
			return ErrNotInGame
		}
		m.prompt(ctx, p, m.roleNotice(seat))
		return nil
	})
}

// ShowRules posts the rules to the chat. Once a session is running they
// are shown only once; an idle chat may ask any time
func (m *Machine) ShowRules(ctx context.Context, p models.Player) error {
	return m.do(ctx, "show_rules", func() error {
		if m.rulesShown {
			return ErrRulesShown
		}
		m.rulesShown = m.state != models.StateIdle
		m.announce(ctx, models.Notice{Kind: models.NoticeRules, Minimum: m.cfg.MinimalPlayerCount})
		m.log.Debug().Str(logging.FieldPlayerID, p.ID).Msg("rules shown")
		return nil
	})
}

func (m *Machine) announceTurn(ctx context.Context) error {
	cur, err := m.cycle.Current()
	if err != nil {
		return invariant("current turn", err)
	}

	n := models.Notice{Kind: models.NoticeAnswerTurn, Actor: &cur, Choices: []models.Choice{doneChoice}}
	if m.cycle.IsQuestion() {
		answerer, err := m.cycle.Answerer()
		if err != nil {
			return invariant("answerer", err)
		}
		n.Kind = models.NoticeQuestionTurn
		n.Target = &answerer
	}
	m.announce(ctx, n)

	m.log.Debug().
		Int(logging.FieldSlot, cur.Slot).
		Bool("question", m.cycle.IsQuestion()).
		Msg("turn")
	return nil
}

func (m *Machine) roleNotice(seat models.Seat) models.Notice {
	n := models.Notice{Kind: models.NoticeRole, Actor: &seat, IsSpy: m.isSpy(seat.Player.ID)}
	if !n.IsSpy {
		n.Location = m.location
	}
	return n
}

func (m *Machine) headcountNotice() models.Notice {
	spies := len(m.spies)
	return models.Notice{
		Kind:    models.NoticeHeadcount,
		Seats:   m.cycle.Seats(),
		Workers: m.cycle.Len() - spies,
		Spies:   spies,
		Choices: []models.Choice{roleChoice},
	}
}

// eliminate removes a slot from the game and from the spies
func (m *Machine) eliminate(slot int) (models.Player, error) {
	p, err := m.cycle.Eliminate(slot)
	if err != nil {
		return models.Player{}, invariant("eliminate", err)
	}
	delete(m.spies, p.ID)
	m.log.Info().
		Int(logging.FieldSlot, slot).
		Str(logging.FieldPlayerID, p.ID).
		Int("survivors", m.cycle.Len()).
		Msg("player eliminated")
	return p, nil
}

// evaluate applies the win rules after an elimination and either
// concludes or resumes play
func (m *Machine) evaluate(ctx context.Context) error {
	outcome := game.Evaluate(m.cycle.Len(), len(m.spies))
	switch outcome {
	case game.OutcomeWorkersWin:
		m.announce(ctx, models.Notice{Kind: models.NoticeWorkersWin, Location: m.location})
		return m.conclude(outcome)
	case game.OutcomeDraw:
		m.announce(ctx, models.Notice{
			Kind:     models.NoticeDraw,
			Players:  game.SortPlayers(m.spies),
			Location: m.location,
		})
		return m.conclude(outcome)
	}

	m.ballot.Reset()
	m.revealedSpy = nil
	if err := m.transition(models.StatePlaying); err != nil {
		return err
	}
	m.announce(ctx, m.headcountNotice())
	return m.announceTurn(ctx)
}

// conclude ends the game. Concluded is transient: the session is
// destroyed straight away
func (m *Machine) conclude(outcome game.Outcome) error {
	if err := m.transition(models.StateConcluded); err != nil {
		return err
	}
	m.log.Info().Str(logging.FieldOutcome, outcome.String()).Msg("game concluded")
	if err := m.transition(models.StateIdle); err != nil {
		return err
	}
	m.reset()
	return nil
}
