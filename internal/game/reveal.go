package game

import (
	"fmt"

	"github.com/aaronzipp/spyfall-chat/internal/models"
)

// CheckGuess resolves a revealed spy's guess, given as a 1-based index
// into the pool. Only an exact match wins.
func CheckGuess(pool models.LocationPool, index int, location string) (string, bool, error) {
	guess, ok := pool.At(index)
	if !ok {
		return "", false, fmt.Errorf("%w: %d of %d", ErrGuessOutOfRange, index, len(pool))
	}
	return guess, guess == location, nil
}
