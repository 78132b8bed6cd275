package session

import (
	"context"

	"github.com/aaronzipp/spyfall-chat/internal/models"
)

// Effects is the outbound side of the transport. Announce with a non-empty
// Notice.Choices is an announce-with-choices; ref is minted by the machine
// and later passed to Edit and Delete. Calls arrive in command order
// after the session lock is released. Failures are logged by the machine
// and never undo a transition
type Effects interface {
	Announce(ctx context.Context, chatID string, ref models.MessageRef, n models.Notice) error
	Prompt(ctx context.Context, chatID string, to models.Player, n models.Notice) error
	Edit(ctx context.Context, chatID string, ref models.MessageRef, n models.Notice) error
	Delete(ctx context.Context, chatID string, ref models.MessageRef) error
}

// Store persists session snapshots, one key per chat
type Store interface {
	Load(ctx context.Context, key string) (*models.Snapshot, bool, error)
	Save(ctx context.Context, key string, snap *models.Snapshot) error
	Clear(ctx context.Context, key string) error
}
