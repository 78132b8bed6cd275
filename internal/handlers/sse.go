package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aaronzipp/spyfall-chat/internal/logging"
	"github.com/aaronzipp/spyfall-chat/internal/sse"
)

// HandleSSE streams the chat's events to one logged-in player. The first
// event is the current public state so late joiners can catch up.
func (ctx *Context) HandleSSE(w http.ResponseWriter, r *http.Request) {
	chatID := mux.Vars(r)["chat"]
	player, ok := PlayerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	log := logging.Ctx(r.Context()).With().
		Str(logging.FieldChatID, chatID).
		Str(logging.FieldPlayerID, player.ID).
		Logger()

	snap, err := ctx.loadSnapshot(r.Context(), chatID)
	if err != nil {
		log.Error().Err(err).Msg("load snapshot")
		http.Error(w, "Failed to load session", http.StatusInternalServerError)
		return
	}

	// Set headers for SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable buffering in nginx/proxies

	clientChan := make(chan sse.Message, sse.BufferSize)
	ctx.Hub.AddClient(chatID, clientChan, player.ID)
	defer ctx.Hub.RemoveClient(chatID, clientChan)

	log.Debug().Int("clients", ctx.Hub.ClientCount(chatID)).Msg("sse client connected")

	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", sse.EventSnapshot, encodeState(NewPublicState(snap)))
	flusher.Flush()

	// Listen for updates
	reqCtx := r.Context()
	for {
		select {
		case <-reqCtx.Done():
			log.Debug().Msg("sse client disconnected")
			return
		case msg := <-clientChan:
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, msg.Data)
			flusher.Flush()
		}
	}
}
