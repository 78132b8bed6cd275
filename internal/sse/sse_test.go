package sse

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/aaronzipp/spyfall-chat/internal/models"
)

func TestHubRoutesByChatAndPlayer(t *testing.T) {
	hub := NewHub(10*time.Millisecond, zerolog.Nop())
	alice := make(chan Message, BufferSize)
	bob := make(chan Message, BufferSize)
	elsewhere := make(chan Message, BufferSize)

	hub.AddClient("chat-1", alice, "a")
	hub.AddClient("chat-1", bob, "b")
	hub.AddClient("chat-2", elsewhere, "c")

	if n := hub.Broadcast("chat-1", EventAnnounce, "hi"); n != 2 {
		t.Errorf("Broadcast reached %d clients, want 2", n)
	}
	if n := hub.SendTo("chat-1", "b", EventPrompt, "secret"); n != 1 {
		t.Errorf("SendTo reached %d clients, want 1", n)
	}

	if len(alice) != 1 || len(bob) != 2 || len(elsewhere) != 0 {
		t.Errorf("queue lengths = %d/%d/%d", len(alice), len(bob), len(elsewhere))
	}
	if !hub.Connected("chat-1", "a") || hub.Connected("chat-1", "c") {
		t.Error("Connected reports wrong membership")
	}

	hub.RemoveClient("chat-1", alice)
	hub.RemoveClient("chat-1", bob)
	if hub.ClientCount("chat-1") != 0 {
		t.Errorf("ClientCount = %d after removal", hub.ClientCount("chat-1"))
	}
}

func TestHubSkipsSlowClient(t *testing.T) {
	hub := NewHub(5*time.Millisecond, zerolog.Nop())
	stuck := make(chan Message)
	hub.AddClient("chat-1", stuck, "a")

	if n := hub.Broadcast("chat-1", EventAnnounce, "hi"); n != 0 {
		t.Errorf("Broadcast to unbuffered idle client = %d, want 0", n)
	}
}

func TestEffects(t *testing.T) {
	hub := NewHub(10*time.Millisecond, zerolog.Nop())
	client := make(chan Message, BufferSize)
	hub.AddClient("chat-1", client, "a")
	fx := NewEffects(hub)
	ctx := context.Background()

	ref := models.MessageRef("m-1")
	err := fx.Announce(ctx, "chat-1", ref, models.Notice{
		Kind:    models.NoticeVotingOpened,
		Choices: []models.Choice{{Label: "1. Alice", Action: "vote", Value: "1"}},
	})
	if err != nil {
		t.Fatalf("Announce: %v", err)
	}

	msg := <-client
	var p Payload
	if err := json.Unmarshal([]byte(msg.Data), &p); err != nil {
		t.Fatal(err)
	}
	if msg.Event != EventAnnounce || p.Ref != ref || p.Text == "" || len(p.Choices) != 1 {
		t.Errorf("announce event = %s %+v", msg.Event, p)
	}

	if err := fx.Delete(ctx, "chat-1", ref); err != nil {
		t.Fatal(err)
	}
	if msg := <-client; msg.Event != EventDelete {
		t.Errorf("event = %s, want delete", msg.Event)
	}

	err = fx.Prompt(ctx, "chat-1", models.Player{ID: "ghost"}, models.Notice{Kind: models.NoticeRole})
	if !errors.Is(err, ErrNoRecipient) {
		t.Errorf("Prompt to absent player: err = %v", err)
	}
}
