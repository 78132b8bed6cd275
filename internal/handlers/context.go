// Package handlers exposes the chat sessions over HTTP: player login,
// chat messages and button callbacks in, Server-Sent Events out.
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/aaronzipp/spyfall-chat/internal/logging"
	"github.com/aaronzipp/spyfall-chat/internal/session"
	"github.com/aaronzipp/spyfall-chat/internal/sse"
)

// Context holds the dependencies shared by every handler
type Context struct {
	Manager    *session.Manager
	Hub        *sse.Hub
	Store      session.Store
	Dispatcher *SessionDispatcher
	// Socket serves /chats/{chat}/ws when set
	Socket http.Handler
	Log    zerolog.Logger

	loads singleflight.Group
}

// NewContext wires the handlers onto a session manager
func NewContext(manager *session.Manager, hub *sse.Hub, store session.Store, startCommand string, log zerolog.Logger) *Context {
	return &Context{
		Manager:    manager,
		Hub:        hub,
		Store:      store,
		Dispatcher: NewDispatcher(manager, startCommand),
		Log:        log,
	}
}

// Routes returns the router with request logging installed
func (ctx *Context) Routes() http.Handler {
	r := mux.NewRouter()
	r.Use(logging.HTTPMiddleware(ctx.Log))

	r.HandleFunc("/health", ctx.HandleHealth).Methods(http.MethodGet)
	r.HandleFunc("/login", ctx.HandleLogin).Methods(http.MethodPost)

	chats := r.PathPrefix("/chats/{chat}").Subrouter()
	chats.HandleFunc("", ctx.HandleState).Methods(http.MethodGet)
	chats.HandleFunc("/events", ctx.HandleSSE).Methods(http.MethodGet)
	chats.HandleFunc("/messages", ctx.HandleMessage).Methods(http.MethodPost)
	chats.HandleFunc("/actions/{action}", ctx.HandleAction).Methods(http.MethodPost)
	if ctx.Socket != nil {
		chats.Handle("/ws", ctx.Socket).Methods(http.MethodGet)
	}
	return r
}

// HandleHealth reports liveness
func (ctx *Context) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": ctx.Manager.Len(),
	})
}
