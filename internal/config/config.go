// Package config loads deployment settings from config/config.yaml and
// the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/aaronzipp/spyfall-chat/internal/game"
	"github.com/aaronzipp/spyfall-chat/internal/logging"
	"github.com/aaronzipp/spyfall-chat/internal/models"
	"github.com/aaronzipp/spyfall-chat/internal/session"
	"github.com/aaronzipp/spyfall-chat/internal/store"
	"github.com/aaronzipp/spyfall-chat/internal/ws"
)

type Config struct {
	Server    ServerConfig
	Game      GameConfig
	Store     store.Config
	WebSocket ws.Config
	Log       logging.Config
}

type ServerConfig struct {
	Host string
	Port int
}

// Addr is the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type GameConfig struct {
	MinimalPlayerCount  int           `mapstructure:"minimal_player_count"`
	RegistrationTimeout time.Duration `mapstructure:"registration_timeout"`
	VoteTimeout         time.Duration `mapstructure:"vote_timeout"`
	StartCommand        string        `mapstructure:"start_command"`
	LocationsFile       string        `mapstructure:"locations_file"`
}

// Load reads the configuration. file names an explicit YAML file; when
// empty, config/config.yaml is used if present.
func Load(file string) (*Config, error) {
	v, err := newViper(file)
	if err != nil {
		return nil, err
	}

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("game.minimal_player_count", 4)
	v.SetDefault("game.registration_timeout", "60s")
	v.SetDefault("game.vote_timeout", "60s")
	v.SetDefault("game.start_command", "start_game")
	v.SetDefault("game.locations_file", "")
	v.SetDefault("store.driver", store.DriverMemory)
	v.SetDefault("store.redis.address", "localhost:6379")
	v.SetDefault("store.redis.password", "")
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("store.redis.prefix", "spyfall")
	v.SetDefault("store.redis.key_ttl", "24h")
	v.SetDefault("websocket.ping_interval", "54s")
	v.SetDefault("websocket.pong_wait", "60s")
	v.SetDefault("websocket.write_wait", "10s")
	v.SetDefault("websocket.max_message_size", 4096)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// Override from environment
	v.BindEnv("server.port", "PORT")
	v.BindEnv("store.driver", "STORE_DRIVER")
	v.BindEnv("store.redis.address", "REDIS_ADDRESS")
	v.BindEnv("store.redis.password", "REDIS_PASSWORD")
	v.BindEnv("log.level", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	// Parse durations
	cfg.Game.RegistrationTimeout = parseDuration(v, "game.registration_timeout", 60*time.Second)
	cfg.Game.VoteTimeout = parseDuration(v, "game.vote_timeout", 60*time.Second)
	cfg.Store.Redis.KeyTTL = parseDuration(v, "store.redis.key_ttl", 24*time.Hour)
	cfg.WebSocket.PingInterval = parseDuration(v, "websocket.ping_interval", 54*time.Second)
	cfg.WebSocket.PongWait = parseDuration(v, "websocket.pong_wait", 60*time.Second)
	cfg.WebSocket.WriteWait = parseDuration(v, "websocket.write_wait", 10*time.Second)

	cfg.Game.StartCommand = strings.TrimPrefix(strings.TrimSpace(cfg.Game.StartCommand), "/")

	return &cfg, nil
}

func newViper(file string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// Environment variable support
	v.SetEnvPrefix("SPYFALL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file == "" && errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return v, nil
}

func parseDuration(v *viper.Viper, key string, defaultVal time.Duration) time.Duration {
	str := v.GetString(key)
	d, err := time.ParseDuration(str)
	if err != nil {
		return defaultVal
	}
	return d
}

// Validate rejects settings the service cannot run with
func (c *Config) Validate() error {
	var errs []error
	if c.Game.MinimalPlayerCount < game.MinPlayers {
		errs = append(errs, fmt.Errorf("game.minimal_player_count must be at least %d, got %d", game.MinPlayers, c.Game.MinimalPlayerCount))
	}
	if c.Game.RegistrationTimeout <= 0 {
		errs = append(errs, errors.New("game.registration_timeout must be positive"))
	}
	if c.Game.VoteTimeout <= 0 {
		errs = append(errs, errors.New("game.vote_timeout must be positive"))
	}
	if c.Game.StartCommand == "" || strings.ContainsAny(c.Game.StartCommand, " \t@/") {
		errs = append(errs, fmt.Errorf("game.start_command %q is not a valid command name", c.Game.StartCommand))
	}
	switch c.Store.Driver {
	case store.DriverMemory, store.DriverRedis:
	default:
		errs = append(errs, fmt.Errorf("store.driver %q is not one of %s, %s", c.Store.Driver, store.DriverMemory, store.DriverRedis))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	return errors.Join(errs...)
}

// Session builds the per-deployment settings handed to every session
func (c *Config) Session(pool models.LocationPool) session.Config {
	return session.Config{
		MinimalPlayerCount:  c.Game.MinimalPlayerCount,
		RegistrationTimeout: c.Game.RegistrationTimeout,
		VoteTimeout:         c.Game.VoteTimeout,
		Locations:           pool.Clone(),
	}
}
