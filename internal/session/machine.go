// Package session is the per-chat game state machine. A Machine owns one
// chat's roster, turn cycle, ballot and timers; every command runs under
// the Machine's own lock so sessions never serialise on each other.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aaronzipp/spyfall-chat/internal/game"
	"github.com/aaronzipp/spyfall-chat/internal/logging"
	"github.com/aaronzipp/spyfall-chat/internal/models"
	"github.com/aaronzipp/spyfall-chat/internal/timer"
)

// Machine is the session of one chat
type Machine struct {
	mu sync.Mutex
	// sendMu is taken before mu, and keeps deliveries in command order
	sendMu sync.Mutex
	outbox []func(context.Context)

	owner   *Manager
	retired bool

	chatID  string
	cfg     Config
	effects Effects
	store   Store
	timers  *timer.Facility
	rng     *rand.Rand
	log     zerolog.Logger

	state       models.State
	roster      *game.Roster
	order       []models.Player
	cycle       *game.TurnCycle
	spies       map[string]models.Player
	location    string
	ballot      *game.Ballot
	revealedSpy *models.Player
	rulesShown  bool

	regTimer  *timer.Handle
	voteTimer *timer.Handle
	regMsg    models.MessageRef
	voteMsg   models.MessageRef
}

func newMachine(chatID string, cfg Config, effects Effects, store Store, timers *timer.Facility, rng *rand.Rand, log zerolog.Logger) *Machine {
	return &Machine{
		chatID:  chatID,
		cfg:     cfg,
		effects: effects,
		store:   store,
		timers:  timers,
		rng:     rng,
		log:     log.With().Str(logging.FieldChatID, chatID).Logger(),
		state:   models.StateIdle,
		roster:  game.NewRoster(cfg.MinimalPlayerCount),
		spies:   make(map[string]models.Player),
		ballot:  game.NewBallot(),
	}
}

// ChatID returns the chat this session belongs to
func (m *Machine) ChatID() string {
	return m.chatID
}

// State returns the current state
func (m *Machine) State() models.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Snapshot returns a typed copy of the session
func (m *Machine) Snapshot() *models.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

// do runs a mutating command and persists the result
func (m *Machine) do(ctx context.Context, op string, fn func() error) error {
	return m.exec(ctx, op, true, fn)
}

// view runs a command that leaves session state alone
func (m *Machine) view(ctx context.Context, op string, fn func() error) error {
	return m.exec(ctx, op, false, fn)
}

func (m *Machine) exec(ctx context.Context, op string, persist bool, fn func() error) error {
	m.mu.Lock()
	err := m.run(ctx, op, persist, fn)
	if !errors.Is(err, errReleased) && m.state == models.StateIdle && m.regTimer == nil && m.voteTimer == nil {
		m.release()
	}
	m.mu.Unlock()

	m.flush(ctx)
	return err
}

// flush delivers queued effects in the order commands queued them. mu is
// only held to take the queue, never while the transport runs
func (m *Machine) flush(ctx context.Context) {
	m.sendMu.Lock()
	defer m.sendMu.Unlock()

	m.mu.Lock()
	outbox := m.outbox
	m.outbox = nil
	m.mu.Unlock()

	for _, send := range outbox {
		send(ctx)
	}
}

func (m *Machine) run(ctx context.Context, op string, persist bool, fn func() error) (err error) {
	if m.retired {
		if m.owner != nil && !m.owner.adopt(m) {
			return errReleased
		}
		m.retired = false
	}
	queued := len(m.outbox)

	defer func() {
		if r := recover(); r != nil {
			err = invariant(op, fmt.Errorf("panic: %v", r))
		}
		switch {
		case err == nil:
			if persist {
				m.persist(ctx)
			}
		case errors.Is(err, ErrInvariant):
			m.log.Error().Err(err).Str(logging.FieldState, m.state.String()).Msg("invariant violated, resetting session")
			m.outbox = m.outbox[:queued]
			m.reset()
			m.persist(ctx)
		case IsRejection(err):
			m.log.Debug().Str("op", op).Err(err).Msg("rejected")
		}
	}()

	return fn()
}

// release drops an idle Machine from the registry. A caller still holding
// it puts it back on its next command
func (m *Machine) release() {
	if m.owner == nil || m.retired {
		return
	}
	m.owner.forget(m)
	m.retired = true
}

// background is the context timer callbacks run under
func (m *Machine) background() context.Context {
	return logging.WithLogger(context.Background(), m.log)
}

func (m *Machine) transition(to models.State) error {
	if !m.state.CanTransitionTo(to) {
		return invariant("transition", fmt.Errorf("%s -> %s", m.state, to))
	}
	if m.state != to {
		m.log.Info().
			Str("from", m.state.String()).
			Str(logging.FieldState, to.String()).
			Msg("session transition")
	}
	m.state = to
	return nil
}

// reset destroys the session: every timer is cancelled and all game state
// cleared. The caller persists
func (m *Machine) reset() {
	m.regTimer.Cancel()
	m.voteTimer.Cancel()
	m.regTimer, m.voteTimer = nil, nil
	m.regMsg, m.voteMsg = "", ""

	m.state = models.StateIdle
	m.roster.Reset()
	m.order = nil
	m.cycle = nil
	clear(m.spies)
	m.location = ""
	m.ballot.Reset()
	m.revealedSpy = nil
	m.rulesShown = false
}

// stopTimers cancels pending timers without touching game state
func (m *Machine) stopTimers() {
	m.regTimer.Cancel()
	m.voteTimer.Cancel()
}

func (m *Machine) persist(ctx context.Context) {
	if m.store == nil {
		return
	}
	var err error
	if m.state == models.StateIdle {
		err = m.store.Clear(ctx, m.chatID)
	} else {
		err = m.store.Save(ctx, m.chatID, m.snapshot())
	}
	if err != nil {
		m.log.Warn().Err(err).Msg("failed to persist session")
	}
}

func (m *Machine) snapshot() *models.Snapshot {
	s := &models.Snapshot{
		ChatID:                  m.chatID,
		State:                   m.state,
		Roster:                  m.roster.Players(),
		TurnOrder:               slices.Clone(m.order),
		Spies:                   game.SortPlayers(m.spies),
		Location:                m.location,
		ReadyToVote:             m.ballot.ReadyPlayers(),
		VotedPlayers:            m.ballot.VotedPlayers(),
		Votes:                   m.ballot.Votes(),
		RulesShown:              m.rulesShown,
		RegistrationTimerActive: m.regTimer.Active(),
		VoteTimerActive:         m.voteTimer.Active(),
		UpdatedAt:               m.timers.Clock().Now(),
	}
	if m.cycle != nil {
		s.Numbering = m.cycle.Numbering()
		s.CurrentSlot = m.cycle.CurrentSlot()
		s.IsQuestionPhase = m.cycle.IsQuestion()
	}
	if m.revealedSpy != nil {
		p := *m.revealedSpy
		s.RevealedSpy = &p
	}
	return s
}

// Effects wrappers. Calls are queued and delivered after the lock is
// released; transport failures are logged only

func (m *Machine) announce(_ context.Context, n models.Notice) models.MessageRef {
	ref := models.MessageRef(uuid.NewString())
	m.outbox = append(m.outbox, func(ctx context.Context) {
		if err := m.effects.Announce(ctx, m.chatID, ref, n); err != nil {
			m.log.Warn().Err(err).Str("notice", string(n.Kind)).Msg("announce failed")
		}
	})
	return ref
}

func (m *Machine) prompt(_ context.Context, to models.Player, n models.Notice) {
	m.outbox = append(m.outbox, func(ctx context.Context) {
		if err := m.effects.Prompt(ctx, m.chatID, to, n); err != nil {
			m.log.Warn().Err(err).Str(logging.FieldPlayerID, to.ID).Str("notice", string(n.Kind)).Msg("prompt failed")
		}
	})
}

func (m *Machine) edit(ctx context.Context, ref models.MessageRef, n models.Notice) {
	if ref == "" {
		m.announce(ctx, n)
		return
	}
	m.outbox = append(m.outbox, func(ctx context.Context) {
		if err := m.effects.Edit(ctx, m.chatID, ref, n); err != nil {
			m.log.Warn().Err(err).Str("notice", string(n.Kind)).Msg("edit failed")
		}
	})
}

func (m *Machine) remove(_ context.Context, ref models.MessageRef) {
	if ref == "" {
		return
	}
	m.outbox = append(m.outbox, func(ctx context.Context) {
		if err := m.effects.Delete(ctx, m.chatID, ref); err != nil {
			m.log.Warn().Err(err).Msg("delete failed")
		}
	})
}

// seatOf finds a surviving player's seat
func (m *Machine) seatOf(p models.Player) (models.Seat, bool) {
	if m.cycle == nil {
		return models.Seat{}, false
	}
	slot, ok := m.cycle.SlotOf(p.ID)
	if !ok {
		return models.Seat{}, false
	}
	holder, _ := m.cycle.Holder(slot)
	return models.Seat{Slot: slot, Player: holder}, true
}

func (m *Machine) isSpy(id string) bool {
	_, ok := m.spies[id]
	return ok
}
