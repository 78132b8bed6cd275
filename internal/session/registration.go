package session

import (
	"context"

	"github.com/aaronzipp/spyfall-chat/internal/game"
	"github.com/aaronzipp/spyfall-chat/internal/logging"
	"github.com/aaronzipp/spyfall-chat/internal/models"
	"github.com/aaronzipp/spyfall-chat/internal/timer"
)

var registrationChoices = []models.Choice{
	{Label: "Join", Action: string(models.SignalJoin)},
	{Label: "Start now", Action: string(models.SignalStartNow)},
	{Label: "Rules", Action: string(models.SignalRules)},
}

// BeginRegistration opens registration and starts the registration timer
func (m *Machine) BeginRegistration(ctx context.Context, by models.Player) error {
	return m.do(ctx, "begin_registration", func() error {
		switch {
		case m.state == models.StateRegistering:
			return ErrRegistrationRunning
		case m.state != models.StateIdle:
			return ErrGameRunning
		}
		if err := m.transition(models.StateRegistering); err != nil {
			return err
		}

		m.roster.Reset()
		m.regMsg = m.announce(ctx, m.registrationNotice(models.NoticeRegistrationOpened))
		m.regTimer = m.timers.StartDelayed(m.cfg.RegistrationTimeout, m.onRegistrationTimeout)

		m.log.Info().
			Str(logging.FieldPlayerID, by.ID).
			Dur("timeout", m.cfg.RegistrationTimeout).
			Msg("registration opened")
		return nil
	})
}

// ToggleJoin adds p to the roster, or removes p if already registered.
// It reports whether p is registered afterwards
func (m *Machine) ToggleJoin(ctx context.Context, p models.Player) (bool, error) {
	var joined bool
	err := m.do(ctx, "toggle_join", func() error {
		if m.state != models.StateRegistering {
			return ErrWrongPhase
		}
		joined = m.roster.Toggle(p)
		m.edit(ctx, m.regMsg, m.registrationNotice(models.NoticeRegistrationUpdated))

		m.log.Debug().
			Str(logging.FieldPlayerID, p.ID).
			Bool("joined", joined).
			Int("registered", m.roster.Len()).
			Msg("registration toggled")
		return nil
	})
	return joined, err
}

// StartNow skips the rest of the registration window. It is only allowed
// once enough players are registered. If the timer already expired the
// call does nothing; expiry starts the game instead
func (m *Machine) StartNow(ctx context.Context, p models.Player) error {
	return m.do(ctx, "start_now", func() error {
		if m.state != models.StateRegistering {
			return ErrWrongPhase
		}
		if !m.roster.IsEnough() {
			return ErrNotEnoughPlayers
		}
		if !m.regTimer.Cancel() {
			return nil
		}
		m.regTimer = nil

		m.log.Info().Str(logging.FieldPlayerID, p.ID).Msg("registration ended early")
		return m.startGame(ctx)
	})
}

func (m *Machine) onRegistrationTimeout(h *timer.Handle) {
	ctx := m.background()
	_ = m.do(ctx, "registration_timeout", func() error {
		if m.regTimer != h || m.state != models.StateRegistering {
			return nil
		}
		m.regTimer = nil

		if !m.roster.IsEnough() {
			m.edit(ctx, m.regMsg, models.Notice{
				Kind:    models.NoticeRegistrationCancelled,
				Players: m.roster.Players(),
				Minimum: m.cfg.MinimalPlayerCount,
			})
			if err := m.transition(models.StateIdle); err != nil {
				return err
			}
			m.log.Info().Int("registered", m.roster.Len()).Msg("registration cancelled, not enough players")
			m.reset()
			return nil
		}
		return m.startGame(ctx)
	})
}

func (m *Machine) registrationNotice(kind models.NoticeKind) models.Notice {
	return models.Notice{
		Kind:    kind,
		Players: m.roster.Players(),
		Minimum: m.cfg.MinimalPlayerCount,
		Choices: registrationChoices,
	}
}

// startGame assigns roles and seats, picks the location and announces
// the first turn. The registration timer must already be released
func (m *Machine) startGame(ctx context.Context) error {
	players := m.roster.Players()
	assignment, err := game.AssignRoles(players, m.cfg.MinimalPlayerCount, m.rng)
	if err != nil {
		return invariant("assign roles", err)
	}
	location, err := game.PickLocation(m.cfg.Locations, m.rng)
	if err != nil {
		return invariant("pick location", err)
	}
	cycle, err := game.NewTurnCycle(assignment.Seats)
	if err != nil {
		return invariant("turn cycle", err)
	}
	if err := m.transition(models.StatePlaying); err != nil {
		return err
	}

	m.order = assignment.Order
	m.cycle = cycle
	m.spies = assignment.Spies
	m.location = location
	m.ballot.Reset()
	m.revealedSpy = nil

	m.edit(ctx, m.regMsg, models.Notice{Kind: models.NoticeGameStarting, Players: players})
	m.regMsg = ""

	m.announce(ctx, models.Notice{Kind: models.NoticeLocations, Locations: []string(m.cfg.Locations.Clone())})
	for _, seat := range cycle.Seats() {
		m.prompt(ctx, seat.Player, m.roleNotice(seat))
	}
	m.announce(ctx, m.headcountNotice())

	m.log.Info().
		Int("players", len(players)).
		Int("spies", len(m.spies)).
		Msg("game started")
	return m.announceTurn(ctx)
}
