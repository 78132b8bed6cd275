package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/aaronzipp/spyfall-chat/internal/models"
	"github.com/aaronzipp/spyfall-chat/internal/session"
)

// Result carries what a signal produced beyond success or failure
type Result struct {
	Joined     bool `json:"joined,omitempty"`
	Suppressed bool `json:"suppressed,omitempty"`
}

// Dispatcher routes an inbound signal to the chat's session
type Dispatcher interface {
	Dispatch(ctx context.Context, chatID string, p models.Player, sig models.Signal) (Result, error)
}

// SessionDispatcher calls the session operation matching each signal
type SessionDispatcher struct {
	manager      *session.Manager
	startCommand string
}

// NewDispatcher builds a dispatcher. startCommand is the command name,
// without the slash, that opens registration.
func NewDispatcher(manager *session.Manager, startCommand string) *SessionDispatcher {
	if startCommand == "" {
		startCommand = "start_game"
	}
	return &SessionDispatcher{manager: manager, startCommand: startCommand}
}

// Dispatch runs sig against the chat. Malformed payloads and unknown
// kinds return session.ErrIgnored without touching the session. Only the
// start and rules commands bring a session into being; chatter and
// choices sent to a chat without one are dropped.
func (d *SessionDispatcher) Dispatch(ctx context.Context, chatID string, p models.Player, sig models.Signal) (Result, error) {
	var (
		res    Result
		number int
		err    error
	)
	switch sig.Kind {
	case models.SignalVote, models.SignalGuess:
		if number, err = strconv.Atoi(strings.TrimSpace(sig.Value)); err != nil {
			return res, session.ErrIgnored
		}
	}

	create := sig.Kind == models.SignalStart || sig.Kind == models.SignalRules
	err = d.manager.Apply(chatID, create, func(m *session.Machine) error {
		res = Result{}
		switch sig.Kind {
		case models.SignalStart:
			return m.BeginRegistration(ctx, p)
		case models.SignalJoin:
			joined, err := m.ToggleJoin(ctx, p)
			res.Joined = joined
			return err
		case models.SignalStartNow:
			return m.StartNow(ctx, p)
		case models.SignalDone:
			return m.EndTurn(ctx, p)
		case models.SignalVoteReady:
			return m.ReadyToVote(ctx, p)
		case models.SignalVote:
			return m.CastVote(ctx, p, number)
		case models.SignalReveal:
			return m.Reveal(ctx, p)
		case models.SignalGuess:
			return m.Guess(ctx, p, number)
		case models.SignalMessage:
			suppressed, err := m.Message(ctx, p, sig.Ref, strings.HasPrefix(sig.Text, "/"))
			res.Suppressed = suppressed
			return err
		case models.SignalRole:
			return m.MyRole(ctx, p)
		case models.SignalRules:
			return m.ShowRules(ctx, p)
		default:
			return session.ErrIgnored
		}
	})

	if errors.Is(err, session.ErrNoSession) {
		switch sig.Kind {
		case models.SignalJoin, models.SignalStartNow, models.SignalDone,
			models.SignalVoteReady, models.SignalReveal, models.SignalRole:
		default:
			return res, session.ErrIgnored
		}
	}
	return res, err
}

// ParseText turns a chat line into a signal. Known commands map to their
// operation; anything else, unknown commands included, is a message.
func (d *SessionDispatcher) ParseText(text string, ref models.MessageRef) models.Signal {
	msg := models.Signal{Kind: models.SignalMessage, Text: text, Ref: ref}

	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return msg
	}
	// "/vote@spybot" addresses a bot explicitly
	cmd, _, _ := strings.Cut(strings.TrimPrefix(fields[0], "/"), "@")

	switch cmd {
	case d.startCommand:
		return models.Signal{Kind: models.SignalStart, Ref: ref}
	case "vote":
		return models.Signal{Kind: models.SignalVoteReady, Ref: ref}
	case "reveal":
		return models.Signal{Kind: models.SignalReveal, Ref: ref}
	case "rules":
		return models.Signal{Kind: models.SignalRules, Ref: ref}
	case "role":
		return models.Signal{Kind: models.SignalRole, Ref: ref}
	default:
		return msg
	}
}
