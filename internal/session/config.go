package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/aaronzipp/spyfall-chat/internal/game"
	"github.com/aaronzipp/spyfall-chat/internal/models"
)

// Config is fixed per deployment and handed to every Machine
type Config struct {
	MinimalPlayerCount  int
	RegistrationTimeout time.Duration
	VoteTimeout         time.Duration
	Locations           models.LocationPool
}

// Validate checks the settings the machine relies on
func (c Config) Validate() error {
	if c.MinimalPlayerCount < game.MinPlayers {
		return fmt.Errorf("minimal player count %d below %d", c.MinimalPlayerCount, game.MinPlayers)
	}
	if c.RegistrationTimeout <= 0 {
		return errors.New("registration timeout must be positive")
	}
	if c.VoteTimeout <= 0 {
		return errors.New("vote timeout must be positive")
	}
	if len(c.Locations) == 0 {
		return errors.New("location pool is empty")
	}
	return nil
}
