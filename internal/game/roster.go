package game

import (
	"sort"
	"strings"

	"github.com/aaronzipp/spyfall-chat/internal/models"
)

// Roster is the set of players registered for one session
type Roster struct {
	players map[string]models.Player
	minimum int
}

// NewRoster creates an empty roster gated on the given minimal player count
func NewRoster(minimum int) *Roster {
	return &Roster{
		players: make(map[string]models.Player),
		minimum: minimum,
	}
}

// Toggle adds p if absent and removes it if present. It reports whether
// p is registered afterwards.
func (r *Roster) Toggle(p models.Player) bool {
	if _, ok := r.players[p.ID]; ok {
		delete(r.players, p.ID)
		return false
	}
	r.players[p.ID] = p
	return true
}

// Contains reports whether the player id is registered
func (r *Roster) Contains(id string) bool {
	_, ok := r.players[id]
	return ok
}

// Len returns the number of registered players
func (r *Roster) Len() int {
	return len(r.players)
}

// Minimum returns the configured minimal player count
func (r *Roster) Minimum() int {
	return r.minimum
}

// IsEnough reports whether the roster may start a game
func (r *Roster) IsEnough() bool {
	return len(r.players) >= r.minimum
}

// Players returns the roster sorted by name, then id
func (r *Roster) Players() []models.Player {
	return SortPlayers(r.players)
}

// Reset empties the roster
func (r *Roster) Reset() {
	clear(r.players)
}

// SortPlayers converts a player map to a slice sorted by name, then id
func SortPlayers(players map[string]models.Player) []models.Player {
	list := make([]models.Player, 0, len(players))
	for _, p := range players {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		ni, nj := strings.ToLower(list[i].Name), strings.ToLower(list[j].Name)
		if ni == nj {
			return list[i].ID < list[j].ID
		}
		return ni < nj
	})
	return list
}
