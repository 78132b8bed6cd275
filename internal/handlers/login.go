package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/aaronzipp/spyfall-chat/internal/logging"
)

const maxNameLength = 32

// HandleLogin assigns a player id and stores it with the display name
// in session cookies. An existing id is kept so reconnects stay seated.
func (ctx *Context) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}
	if len([]rune(name)) > maxNameLength {
		name = string([]rune(name)[:maxNameLength])
	}

	playerID := uuid.New().String()
	if existing, ok := PlayerFromRequest(r); ok {
		playerID = existing.ID
	}

	// cookie values are restricted to ASCII, names are not
	for cookieName, value := range map[string]string{cookiePlayerID: playerID, cookiePlayerName: name} {
		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Value:    url.QueryEscape(value),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	log := logging.Ctx(r.Context())
	log.Info().Str(logging.FieldPlayerID, playerID).Str("name", name).Msg("player logged in")

	writeJSON(w, http.StatusOK, map[string]string{"id": playerID, "name": name})
}
