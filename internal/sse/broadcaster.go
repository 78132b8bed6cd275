// Package sse fans session effects out to the clients connected to each
// chat, over Server-Sent Events or any other transport that drains a
// Message channel.
package sse

import (
	"maps"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aaronzipp/spyfall-chat/internal/logging"
)

// Hub tracks the client channels of every chat. Sends never hold the
// registry lock and give up on a slow client after the send timeout.
type Hub struct {
	mu      sync.RWMutex
	chats   map[string]map[chan Message]string // chat -> channel -> playerID
	timeout time.Duration
	log     zerolog.Logger
}

// NewHub creates an empty hub. timeout bounds each send to one client.
func NewHub(timeout time.Duration, log zerolog.Logger) *Hub {
	if timeout <= 0 {
		timeout = time.Second
	}
	return &Hub{
		chats:   make(map[string]map[chan Message]string),
		timeout: timeout,
		log:     log,
	}
}

// AddClient registers a client channel for a player in a chat
func (h *Hub) AddClient(chatID string, client chan Message, playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.chats[chatID]
	if !ok {
		clients = make(map[chan Message]string)
		h.chats[chatID] = clients
	}

	dup := 0
	for _, pid := range clients {
		if pid == playerID {
			dup++
		}
	}
	if dup > 0 {
		h.log.Debug().
			Str(logging.FieldChatID, chatID).
			Str(logging.FieldPlayerID, playerID).
			Int("connections", dup+1).
			Msg("player opened an additional connection")
	}
	clients[client] = playerID
}

// RemoveClient unregisters a client channel
func (h *Hub) RemoveClient(chatID string, client chan Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.chats[chatID]
	delete(clients, client)
	if len(clients) == 0 {
		delete(h.chats, chatID)
	}
	h.log.Debug().Str(logging.FieldChatID, chatID).Int("clients", len(clients)).Msg("client removed")
}

// ClientCount returns how many clients a chat has
func (h *Hub) ClientCount(chatID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.chats[chatID])
}

// Connected reports whether the player has at least one client in the chat
func (h *Hub) Connected(chatID, playerID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, pid := range h.chats[chatID] {
		if pid == playerID {
			return true
		}
	}
	return false
}

// Broadcast sends a message to every client of a chat and returns how
// many received it
func (h *Hub) Broadcast(chatID, event, data string) int {
	return h.send(chatID, Message{Event: event, Data: data}, func(string) bool { return true })
}

// SendTo sends a message to the clients of one player only
func (h *Hub) SendTo(chatID, playerID, event, data string) int {
	return h.send(chatID, Message{Event: event, Data: data}, func(pid string) bool { return pid == playerID })
}

func (h *Hub) send(chatID string, msg Message, match func(playerID string) bool) int {
	h.mu.RLock()
	clients := maps.Clone(h.chats[chatID])
	h.mu.RUnlock()

	sent := 0
	for client, pid := range clients {
		if !match(pid) {
			continue
		}
		select {
		case client <- msg:
			sent++
		case <-time.After(h.timeout):
			h.log.Debug().
				Str(logging.FieldChatID, chatID).
				Str(logging.FieldPlayerID, pid).
				Str("event", msg.Event).
				Msg("timeout sending to client")
		}
	}
	return sent
}
