package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aaronzipp/spyfall-chat/internal/store"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "STORE_DRIVER", "REDIS_ADDRESS", "REDIS_PASSWORD", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Game.MinimalPlayerCount != 4 {
		t.Errorf("minimal_player_count = %d", cfg.Game.MinimalPlayerCount)
	}
	if cfg.Game.RegistrationTimeout != time.Minute || cfg.Game.VoteTimeout != time.Minute {
		t.Errorf("timeouts = %v / %v", cfg.Game.RegistrationTimeout, cfg.Game.VoteTimeout)
	}
	if cfg.Game.StartCommand != "start_game" || cfg.Store.Driver != store.DriverMemory {
		t.Errorf("start_command = %q driver = %q", cfg.Game.StartCommand, cfg.Store.Driver)
	}
	if cfg.WebSocket.MaxMessageSize != 4096 || cfg.WebSocket.PongWait != time.Minute {
		t.Errorf("websocket = %+v", cfg.WebSocket)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "spyfall.yaml")
	body := `
game:
  minimal_player_count: 6
  registration_timeout: 90s
  vote_timeout: 2m
  start_command: /spyfall
store:
  driver: redis
  redis:
    prefix: test
    key_ttl: 1h
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("REDIS_ADDRESS", "redis:6380")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Game.MinimalPlayerCount != 6 || cfg.Game.RegistrationTimeout != 90*time.Second || cfg.Game.VoteTimeout != 2*time.Minute {
		t.Errorf("game = %+v", cfg.Game)
	}
	if cfg.Game.StartCommand != "spyfall" {
		t.Errorf("start_command = %q, want leading slash stripped", cfg.Game.StartCommand)
	}
	if cfg.Store.Driver != store.DriverRedis || cfg.Store.Redis.Prefix != "test" || cfg.Store.Redis.KeyTTL != time.Hour {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Store.Redis.Address != "redis:6380" {
		t.Errorf("redis address = %q, want env override", cfg.Store.Redis.Address)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing explicit file accepted")
	}
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	base, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"min players", func(c *Config) { c.Game.MinimalPlayerCount = 1 }, "minimal_player_count"},
		{"registration timeout", func(c *Config) { c.Game.RegistrationTimeout = 0 }, "registration_timeout"},
		{"vote timeout", func(c *Config) { c.Game.VoteTimeout = -time.Second }, "vote_timeout"},
		{"start command", func(c *Config) { c.Game.StartCommand = "start game" }, "start_command"},
		{"driver", func(c *Config) { c.Store.Driver = "etcd" }, "store.driver"},
		{"port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want mention of %s", err, tt.want)
			}
		})
	}
}

func TestLocations(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	pool, err := cfg.Locations()
	if err != nil {
		t.Fatal(err)
	}
	if len(pool) < 20 || pool[0] != "Airplane" {
		t.Errorf("default pool = %v", pool)
	}

	sc := cfg.Session(pool)
	if err := sc.Validate(); err != nil {
		t.Errorf("session config invalid: %v", err)
	}
	sc.Locations[0] = "changed"
	if pool[0] != "Airplane" {
		t.Error("session config aliases the pool")
	}

	path := filepath.Join(t.TempDir(), "places.yaml")
	if err := os.WriteFile(path, []byte("locations: [\" Moon \", Mars]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg.Game.LocationsFile = path
	pool, err = cfg.Locations()
	if err != nil || len(pool) != 2 || pool[0] != "Moon" {
		t.Errorf("file pool = %v, %v", pool, err)
	}
}

func TestParseLocationsRejects(t *testing.T) {
	for _, doc := range []string{
		"locations: []",
		"locations: [Bank, bank]",
		"locations: [Bank, '  ']",
		"locations: {bad: map}",
	} {
		if _, err := ParseLocations([]byte(doc)); err == nil {
			t.Errorf("ParseLocations(%q) accepted", doc)
		}
	}
}
