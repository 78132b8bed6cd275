package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/aaronzipp/spyfall-chat/internal/models"
)

// MemoryStore keeps encoded snapshots in process memory. Readers always
// get a fresh copy.
type MemoryStore struct {
	snapshots map[string][]byte
	mu        sync.RWMutex
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snapshots: make(map[string][]byte),
	}
}

// Load retrieves a snapshot by chat id
func (s *MemoryStore) Load(ctx context.Context, key string) (*models.Snapshot, bool, error) {
	data, ok, _ := s.Raw(ctx, key)
	if !ok {
		return nil, false, nil
	}
	snap, err := Decode(data)
	if err != nil {
		return nil, false, fmt.Errorf("decode snapshot %s: %w", key, err)
	}
	return snap, true, nil
}

// Save stores a snapshot
func (s *MemoryStore) Save(_ context.Context, key string, snap *models.Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[key] = data
	return nil
}

// Clear removes a snapshot
func (s *MemoryStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, key)
	return nil
}

// Raw returns the stored bytes
func (s *MemoryStore) Raw(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.snapshots[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

// Keys lists the chats with a stored snapshot
func (s *MemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.snapshots))
	for k := range s.snapshots {
		keys = append(keys, k)
	}
	return keys
}

func (s *MemoryStore) Close() error {
	return nil
}
