package sse

import "github.com/aaronzipp/spyfall-chat/internal/models"

// SSE event type constants
const (
	EventAnnounce = "announce"
	EventPrompt   = "prompt"
	EventEdit     = "edit"
	EventDelete   = "delete"
	EventSnapshot = "snapshot"
)

const (
	// BufferSize is the per-client channel capacity
	BufferSize = 16
)

// Message is one event queued for a client
type Message struct {
	Event string
	Data  string
}

// Payload is the JSON body of announce, prompt, edit and delete events
type Payload struct {
	Ref     models.MessageRef `json:"ref"`
	Kind    models.NoticeKind `json:"kind,omitempty"`
	Text    string            `json:"text,omitempty"`
	HTML    string            `json:"html,omitempty"`
	Choices []models.Choice   `json:"choices,omitempty"`
}
