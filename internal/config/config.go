// Package config provides YAML-based configuration loading for TheoryGames:
// game timing rules, difficulty bands, per-mode overrides, storage, servers
// and logging.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/theory-games/internal/core"
	"github.com/vovakirdan/theory-games/internal/game"
	"github.com/vovakirdan/theory-games/internal/storage"
)

// Config is the complete application configuration.
type Config struct {
	Game       GameConfig            `yaml:"game"`
	Difficulty Bands                 `yaml:"difficulty"`
	Modes      map[string]ModeConfig `yaml:"modes"`
	Storage    StorageConfig         `yaml:"storage"`
	Server     ServerConfig          `yaml:"server"`
	Log        LogConfig             `yaml:"log"`
}

// GameConfig defines the timing rules shared by every mode.
type GameConfig struct {
	Mode          string        `yaml:"mode"` // Default mode for `play`
	Seed          int64         `yaml:"seed"` // 0 = time based
	TickRate      int           `yaml:"tick_rate"`
	TimersEnabled bool          `yaml:"timers_enabled"`
	TurnPause     time.Duration `yaml:"turn_pause"`
	RoundPause    time.Duration `yaml:"round_pause"` // 0 = wait for the next-round key
	FreezeWindow  time.Duration `yaml:"freeze_window"`
	ExtraTime     time.Duration `yaml:"extra_time"`
	MaxTurnTime   time.Duration `yaml:"max_turn_time"`
	PowerUpEvery  int           `yaml:"power_up_every"`
	Categories    []string      `yaml:"categories"` // Empty = every registered category
}

// ModeConfig overrides a mode's preset. Zero fields keep the preset.
type ModeConfig struct {
	Rounds   int           `yaml:"rounds"`
	TurnTime time.Duration `yaml:"turn_time"`
}

// StorageConfig selects the profile store backend.
type StorageConfig struct {
	Backend string      `yaml:"backend"` // "sqlite" or "redis"
	Path    string      `yaml:"path"`
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// ServerConfig defines the SSH and HTTP listeners.
type ServerConfig struct {
	SSHAddr     string        `yaml:"ssh_addr"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	MaxTimeout  time.Duration `yaml:"max_timeout"`
	HTTPAddr    string        `yaml:"http_addr"`
}

// LogConfig defines logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Runtime returns the core runtime config for a game.
func (c Config) Runtime() core.RuntimeConfig {
	return core.RuntimeConfig{
		Seed:          c.Game.Seed,
		TickRate:      c.Game.TickRate,
		TimersEnabled: c.Game.TimersEnabled,
		TurnPause:     c.Game.TurnPause,
		FreezeWindow:  c.Game.FreezeWindow,
		ExtraTime:     c.Game.ExtraTime,
		MaxTurnTime:   c.Game.MaxTurnTime,
		PowerUpEvery:  c.Game.PowerUpEvery,
	}
}

// GameFor builds the rules of one game in the given mode. An empty
// categories list uses the configured categories.
func (c Config) GameFor(mode core.Mode, categories []string) game.Config {
	if len(categories) == 0 {
		categories = c.Game.Categories
	}
	mc := c.Modes[mode.String()]
	return game.Config{
		Mode:       mode,
		Rounds:     mc.Rounds,
		TurnTime:   mc.TurnTime,
		Categories: append([]string(nil), categories...),
		Runtime:    c.Runtime(),
		RoundPause: c.Game.RoundPause,
	}
}

// DefaultMode parses the configured default mode.
func (c Config) DefaultMode() core.Mode {
	m, err := core.ParseMode(c.Game.Mode)
	if err != nil {
		return core.ModeClassic
	}
	return m
}

// KV returns the storage backend configuration.
func (s StorageConfig) KV() storage.Config {
	return storage.Config{
		Backend:       s.Backend,
		Path:          s.Path,
		RedisAddr:     s.Redis.Addr,
		RedisPassword: s.Redis.Password,
		RedisDB:       s.Redis.DB,
		RedisPrefix:   s.Redis.Prefix,
	}
}

// ParseLevel returns the configured log level.
func (l LogConfig) ParseLevel() (log.Level, error) {
	if l.Level == "" {
		return log.InfoLevel, nil
	}
	return log.ParseLevel(l.Level)
}

// Validate reports every nonsensical value in the configuration.
func (c Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("config: "+format, args...))
	}

	g := c.Game
	if _, err := core.ParseMode(g.Mode); err != nil {
		add("game.mode: %v", err)
	}
	if g.TickRate <= 0 {
		add("game.tick_rate must be positive, got %d", g.TickRate)
	}
	if g.TurnPause < 0 || g.RoundPause < 0 {
		add("game pauses cannot be negative")
	}
	if g.FreezeWindow <= 0 {
		add("game.freeze_window must be positive, got %s", g.FreezeWindow)
	}
	if g.ExtraTime <= 0 {
		add("game.extra_time must be positive, got %s", g.ExtraTime)
	}
	if g.MaxTurnTime <= 0 {
		add("game.max_turn_time must be positive, got %s", g.MaxTurnTime)
	}
	if g.PowerUpEvery <= 0 {
		add("game.power_up_every must be positive, got %d", g.PowerUpEvery)
	}

	if err := c.Difficulty.Validate(); err != nil {
		errs = append(errs, err)
	}

	for name, mc := range c.Modes {
		if _, err := core.ParseMode(name); err != nil {
			add("modes: %v", err)
		}
		if mc.Rounds < 0 {
			add("modes.%s.rounds cannot be negative", name)
		}
		if mc.TurnTime < 0 {
			add("modes.%s.turn_time cannot be negative", name)
		} else if mc.TurnTime > 0 && mc.TurnTime > g.MaxTurnTime {
			add("modes.%s.turn_time %s exceeds max_turn_time %s", name, mc.TurnTime, g.MaxTurnTime)
		}
	}

	switch c.Storage.Backend {
	case storage.BackendSQLite:
		if c.Storage.Path == "" {
			add("storage.path is required for sqlite")
		}
	case storage.BackendRedis:
		if c.Storage.Redis.Addr == "" {
			add("storage.redis.addr is required for redis")
		}
	default:
		add("storage.backend must be sqlite or redis, got %q", c.Storage.Backend)
	}

	if c.Server.IdleTimeout < 0 || c.Server.MaxTimeout < 0 {
		add("server timeouts cannot be negative")
	}

	if _, err := c.Log.ParseLevel(); err != nil {
		add("log.level: %v", err)
	}

	return errors.Join(errs...)
}
