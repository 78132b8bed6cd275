package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/aaronzipp/spyfall-chat/internal/handlers"
	"github.com/aaronzipp/spyfall-chat/internal/logging"
	"github.com/aaronzipp/spyfall-chat/internal/models"
	"github.com/aaronzipp/spyfall-chat/internal/session"
	"github.com/aaronzipp/spyfall-chat/internal/sse"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Dispatcher runs signals and parses chat lines
type Dispatcher interface {
	handlers.Dispatcher
	ParseText(text string, ref models.MessageRef) models.Signal
}

// Handler upgrades /chats/{chat}/ws requests
type Handler struct {
	hub        *sse.Hub
	dispatcher Dispatcher
	cfg        Config
	log        zerolog.Logger
}

// NewHandler builds the gateway
func NewHandler(hub *sse.Hub, dispatcher Dispatcher, cfg Config, log zerolog.Logger) *Handler {
	return &Handler{
		hub:        hub,
		dispatcher: dispatcher,
		cfg:        cfg.withDefaults(),
		log:        log,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	player, ok := handlers.PlayerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	chatID := mux.Vars(r)["chat"]

	// registered before the handshake completes so no event is missed
	events := make(chan sse.Message, sse.BufferSize)
	h.hub.AddClient(chatID, events, player.ID)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.hub.RemoveClient(chatID, events)
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	log := h.log.With().Str(logging.FieldChatID, chatID).Str(logging.FieldPlayerID, player.ID).Logger()
	client := newClient(chatID, player, conn, events, h.cfg, log)

	go client.WritePump()
	go func() {
		defer h.hub.RemoveClient(chatID, client.events)
		client.ReadPump(h.handleMessage)
	}()
}

func (h *Handler) handleMessage(client *Client, message []byte) {
	var in Inbound
	if err := json.Unmarshal(message, &in); err != nil {
		client.SendMessage(newError(errCodeBadRequest, "Invalid message format"))
		return
	}

	var sig models.Signal
	switch in.Type {
	case TypeMessage:
		sig = h.dispatcher.ParseText(in.Text, models.MessageRef(in.Ref))
	case TypeAction:
		sig = models.Signal{Kind: models.SignalKind(in.Action), Value: in.Value}
		if sig.Kind == models.SignalMessage {
			client.SendMessage(ResultFrame{Type: TypeResult, Ignored: true})
			return
		}
	case TypePing:
		client.SendMessage(map[string]string{"type": TypePong})
		return
	default:
		client.SendMessage(newError(errCodeBadRequest, "Unknown message type"))
		return
	}

	ctx := logging.WithLogger(context.Background(), client.log.With().Str(logging.FieldSignal, string(sig.Kind)).Logger())
	res, err := h.dispatcher.Dispatch(ctx, client.ChatID, client.Player, sig)
	switch {
	case err == nil:
		client.SendMessage(ResultFrame{Type: TypeResult, Result: res})
	case errors.Is(err, session.ErrIgnored):
		client.SendMessage(ResultFrame{Type: TypeResult, Ignored: true})
	default:
		if rej, ok := session.AsRejection(err); ok {
			client.SendMessage(newError(rej.Code, rej.Message))
			return
		}
		client.log.Error().Err(err).Str(logging.FieldSignal, string(sig.Kind)).Msg("signal failed")
		client.SendMessage(newError("internal", "the game was stopped after an internal error"))
	}
}
