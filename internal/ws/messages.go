package ws

import (
	"encoding/json"

	"github.com/aaronzipp/spyfall-chat/internal/handlers"
)

// Frame types
const (
	TypeMessage = "message"
	TypeAction  = "action"
	TypePing    = "ping"
	TypePong    = "pong"
	TypeEvent   = "event"
	TypeResult  = "result"
	TypeError   = "error"
)

const errCodeBadRequest = "bad_request"

// Inbound is a frame sent by the player
type Inbound struct {
	Type   string `json:"type"`
	Text   string `json:"text,omitempty"`
	Ref    string `json:"ref,omitempty"`
	Action string `json:"action,omitempty"`
	Value  string `json:"value,omitempty"`
}

// EventFrame relays one hub event
type EventFrame struct {
	Type  string          `json:"type"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ResultFrame answers an inbound frame that ran
type ResultFrame struct {
	Type    string `json:"type"`
	Ignored bool   `json:"ignored,omitempty"`
	handlers.Result
}

// ErrorFrame answers an inbound frame that was refused
type ErrorFrame struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newError(code, message string) ErrorFrame {
	return ErrorFrame{Type: TypeError, Code: code, Message: message}
}
