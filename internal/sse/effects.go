package sse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/aaronzipp/spyfall-chat/internal/models"
	"github.com/aaronzipp/spyfall-chat/internal/render"
)

// ErrNoRecipient is returned when a private prompt finds no connected
// client for the player
var ErrNoRecipient = errors.New("sse: player has no connected client")

// Effects delivers session effects through a Hub. Announced messages
// carry the caller's ref so later edits and deletes can address them;
// prompts get a fresh uuid.
type Effects struct {
	hub *Hub
}

// NewEffects wraps a hub
func NewEffects(hub *Hub) *Effects {
	return &Effects{hub: hub}
}

func (e *Effects) Announce(_ context.Context, chatID string, ref models.MessageRef, n models.Notice) error {
	data, err := encode(chatID, ref, n)
	if err != nil {
		return err
	}
	e.hub.Broadcast(chatID, EventAnnounce, data)
	return nil
}

func (e *Effects) Prompt(_ context.Context, chatID string, to models.Player, n models.Notice) error {
	data, err := encode(chatID, models.MessageRef(uuid.New().String()), n)
	if err != nil {
		return err
	}
	if e.hub.SendTo(chatID, to.ID, EventPrompt, data) == 0 {
		return fmt.Errorf("%w: %s", ErrNoRecipient, to.ID)
	}
	return nil
}

func (e *Effects) Edit(_ context.Context, chatID string, ref models.MessageRef, n models.Notice) error {
	data, err := encode(chatID, ref, n)
	if err != nil {
		return err
	}
	e.hub.Broadcast(chatID, EventEdit, data)
	return nil
}

func (e *Effects) Delete(_ context.Context, chatID string, ref models.MessageRef) error {
	data, err := json.Marshal(Payload{Ref: ref})
	if err != nil {
		return err
	}
	e.hub.Broadcast(chatID, EventDelete, string(data))
	return nil
}

func encode(chatID string, ref models.MessageRef, n models.Notice) (string, error) {
	data, err := json.Marshal(Payload{
		Ref:     ref,
		Kind:    n.Kind,
		Text:    render.Text(n),
		HTML:    render.HTML(chatID, string(ref), n),
		Choices: n.Choices,
	})
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", n.Kind, err)
	}
	return string(data), nil
}
