package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aaronzipp/spyfall-chat/internal/logging"
	"github.com/aaronzipp/spyfall-chat/internal/models"
)

// RedisStore keeps encoded snapshots under <prefix>:session:<chat> with
// a TTL, so abandoned sessions expire on their own.
type RedisStore struct {
	client *redis.Client
	prefix string
	keyTTL time.Duration
}

// NewRedisStore connects and pings the server
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	l := logging.L()
	l.Info().Str("address", cfg.Address).Dur("ttl", cfg.KeyTTL).Msg("connected to redis")

	return newRedisStore(client, cfg), nil
}

func newRedisStore(client *redis.Client, cfg RedisConfig) *RedisStore {
	return &RedisStore{client: client, prefix: cfg.Prefix, keyTTL: cfg.KeyTTL}
}

func (s *RedisStore) keyFor(chatID string) string {
	return fmt.Sprintf("%s:session:%s", s.prefix, chatID)
}

// Load retrieves a snapshot; a missing key is not an error
func (s *RedisStore) Load(ctx context.Context, key string) (*models.Snapshot, bool, error) {
	data, ok, err := s.Raw(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	snap, err := Decode(data)
	if err != nil {
		return nil, false, fmt.Errorf("decode snapshot %s: %w", key, err)
	}
	return snap, true, nil
}

// Save writes a snapshot and refreshes its TTL
func (s *RedisStore) Save(ctx context.Context, key string, snap *models.Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", key, err)
	}
	if err := s.client.Set(ctx, s.keyFor(key), data, s.keyTTL).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Clear deletes a snapshot
func (s *RedisStore) Clear(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.keyFor(key)).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Raw returns the stored bytes
func (s *RedisStore) Raw(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.keyFor(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load session: %w", err)
	}
	return data, true, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
