package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/aaronzipp/spyfall-chat/internal/logging"
	"github.com/aaronzipp/spyfall-chat/internal/models"
	"github.com/aaronzipp/spyfall-chat/internal/session"
)

const (
	cookiePlayerID   = "player_id"
	cookiePlayerName = "player_name"
)

// PlayerFromRequest reads the identity set at login
func PlayerFromRequest(r *http.Request) (models.Player, bool) {
	id, err := r.Cookie(cookiePlayerID)
	if err != nil || id.Value == "" {
		return models.Player{}, false
	}
	p := models.Player{ID: cookieValue(id), Name: cookieValue(id)}
	if name, err := r.Cookie(cookiePlayerName); err == nil && name.Value != "" {
		p.Name = cookieValue(name)
	}
	return p, true
}

func cookieValue(c *http.Cookie) string {
	if v, err := url.QueryUnescape(c.Value); err == nil {
		return v
	}
	return c.Value
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeSignalError maps the session error taxonomy onto HTTP statuses
func writeSignalError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, session.ErrIgnored) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if rej, ok := session.AsRejection(err); ok {
		writeJSON(w, http.StatusConflict, errorBody{Code: rej.Code, Message: rej.Message})
		return
	}

	log := logging.Ctx(r.Context())
	log.Error().Err(err).Msg("signal failed")
	code := "internal"
	if errors.Is(err, session.ErrInvariant) {
		code = "session_reset"
	}
	writeJSON(w, http.StatusInternalServerError, errorBody{Code: code, Message: "the game was stopped after an internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
