package game

import (
	"fmt"
	"math/rand"

	"github.com/aaronzipp/spyfall-chat/internal/models"
)

// Assignment is the outcome of splitting a roster into spies and workers
type Assignment struct {
	Order []models.Player
	Seats []models.Seat
	Spies map[string]models.Player
}

// SpyCount returns how many spies a roster of n players gets: n divided
// by the minimal player count, rounded down
func SpyCount(n, minimum int) int {
	if minimum <= 0 {
		return 0
	}
	return n / minimum
}

// AssignRoles samples spies without replacement and shuffles an
// independent turn order. Seats number the turn order from 1 and are
// never renumbered afterwards.
func AssignRoles(players []models.Player, minimum int, rng *rand.Rand) (*Assignment, error) {
	if minimum < MinPlayers {
		return nil, ErrInvalidMinimum
	}
	if len(players) < minimum {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrRosterTooSmall, len(players), minimum)
	}

	spyCount := SpyCount(len(players), minimum)
	spies := make(map[string]models.Player, spyCount)
	for _, i := range rng.Perm(len(players))[:spyCount] {
		spies[players[i].ID] = players[i]
	}

	order := make([]models.Player, len(players))
	copy(order, players)
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	seats := make([]models.Seat, len(order))
	for i, p := range order {
		seats[i] = models.Seat{Slot: i + 1, Player: p}
	}

	return &Assignment{Order: order, Seats: seats, Spies: spies}, nil
}

// PickLocation chooses the secret location uniformly from the pool
func PickLocation(pool models.LocationPool, rng *rand.Rand) (string, error) {
	if len(pool) == 0 {
		return "", ErrEmptyPool
	}
	return pool[rng.Intn(len(pool))], nil
}
