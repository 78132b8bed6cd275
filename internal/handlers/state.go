package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/aaronzipp/spyfall-chat/internal/logging"
	"github.com/aaronzipp/spyfall-chat/internal/models"
)

// PublicState is what any chat member may see of a session. The location
// and the spies stay hidden until the game is over.
type PublicState struct {
	ChatID          string          `json:"chat_id"`
	State           models.State    `json:"state"`
	Roster          []models.Player `json:"roster"`
	Survivors       []models.Seat   `json:"survivors,omitempty"`
	CurrentSlot     int             `json:"current_slot,omitempty"`
	IsQuestionPhase bool            `json:"is_question_phase,omitempty"`
	ReadyCount      int             `json:"ready_count"`
	VotedCount      int             `json:"voted_count"`
	Location        string          `json:"location,omitempty"`
	Spies           []models.Player `json:"spies,omitempty"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// NewPublicState strips the secrets from a snapshot
func NewPublicState(snap *models.Snapshot) PublicState {
	ps := PublicState{
		ChatID:          snap.ChatID,
		State:           snap.State,
		Roster:          snap.Roster,
		Survivors:       snap.Survivors(),
		CurrentSlot:     snap.CurrentSlot,
		IsQuestionPhase: snap.IsQuestionPhase,
		ReadyCount:      len(snap.ReadyToVote),
		VotedCount:      len(snap.VotedPlayers),
		UpdatedAt:       snap.UpdatedAt,
	}
	if snap.State == models.StateConcluded {
		ps.Location = snap.Location
		ps.Spies = snap.Spies
	}
	return ps
}

// HandleState returns the public view of a chat's session
func (ctx *Context) HandleState(w http.ResponseWriter, r *http.Request) {
	chatID := mux.Vars(r)["chat"]
	snap, err := ctx.loadSnapshot(r.Context(), chatID)
	if err != nil {
		log := logging.Ctx(r.Context())
		log.Error().Err(err).Str(logging.FieldChatID, chatID).Msg("load snapshot")
		http.Error(w, "Failed to load session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, NewPublicState(snap))
}

const storeLoadTimeout = 5 * time.Second

// loadSnapshot prefers the live session and falls back to the store.
// Concurrent store reads for one chat share a single round trip.
func (ctx *Context) loadSnapshot(reqCtx context.Context, chatID string) (*models.Snapshot, error) {
	if m, ok := ctx.Manager.Lookup(chatID); ok {
		return m.Snapshot(), nil
	}
	idle := &models.Snapshot{ChatID: chatID, State: models.StateIdle}
	if ctx.Store == nil {
		return idle, nil
	}

	v, err, _ := ctx.loads.Do(chatID, func() (any, error) {
		// shared by every waiter, so it must outlive the first request
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(reqCtx), storeLoadTimeout)
		defer cancel()
		snap, ok, err := ctx.Store.Load(loadCtx, chatID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return idle, nil
		}
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Snapshot), nil
}

func encodeState(ps PublicState) string {
	data, err := json.Marshal(ps)
	if err != nil {
		return "{}"
	}
	return string(data)
}
