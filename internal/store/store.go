// Package store persists session snapshots behind a small key-value
// interface, in process memory or in Redis.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/aaronzipp/spyfall-chat/internal/models"
)

const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Store is a snapshot store keyed by chat id
type Store interface {
	Load(ctx context.Context, key string) (*models.Snapshot, bool, error)
	Save(ctx context.Context, key string, snap *models.Snapshot) error
	Clear(ctx context.Context, key string) error
	// Raw returns the encoded bytes as stored
	Raw(ctx context.Context, key string) ([]byte, bool, error)
	Close() error
}

// Config selects and configures a driver
type Config struct {
	Driver string      `mapstructure:"driver"`
	Redis  RedisConfig `mapstructure:"redis"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Address  string        `mapstructure:"address"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	KeyTTL   time.Duration `mapstructure:"key_ttl"`
}

// Open builds the store named by cfg.Driver
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case DriverMemory, "":
		return NewMemoryStore(), nil
	case DriverRedis:
		return NewRedisStore(ctx, cfg.Redis)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
