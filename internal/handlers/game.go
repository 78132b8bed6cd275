package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/aaronzipp/spyfall-chat/internal/logging"
	"github.com/aaronzipp/spyfall-chat/internal/models"
)

// HandleMessage accepts one chat line. Commands run their operation;
// ordinary text is checked against the turn rule and may be removed.
func (ctx *Context) HandleMessage(w http.ResponseWriter, r *http.Request) {
	player, ok := PlayerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	text := strings.TrimSpace(r.FormValue("text"))
	if text == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	ref := models.MessageRef(r.FormValue("ref"))
	ctx.dispatch(w, r, player, ctx.Dispatcher.ParseText(text, ref))
}

// HandleAction accepts a button callback: the action names the signal and
// the form value carries its payload.
func (ctx *Context) HandleAction(w http.ResponseWriter, r *http.Request) {
	player, ok := PlayerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	kind := models.SignalKind(mux.Vars(r)["action"])
	if kind == models.SignalMessage {
		// messages go through HandleMessage so commands are recognised
		w.WriteHeader(http.StatusNoContent)
		return
	}
	ctx.dispatch(w, r, player, models.Signal{Kind: kind, Value: r.FormValue("value")})
}

func (ctx *Context) dispatch(w http.ResponseWriter, r *http.Request, player models.Player, sig models.Signal) {
	chatID := mux.Vars(r)["chat"]
	log := logging.Ctx(r.Context()).With().
		Str(logging.FieldChatID, chatID).
		Str(logging.FieldPlayerID, player.ID).
		Str(logging.FieldSignal, string(sig.Kind)).
		Logger()
	reqCtx := logging.WithLogger(r.Context(), log)

	res, err := ctx.Dispatcher.Dispatch(reqCtx, chatID, player, sig)
	if err != nil {
		writeSignalError(w, r.WithContext(reqCtx), err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
