package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by KV.Get for a missing key.
var ErrNotFound = errors.New("storage: not found")

// KV is the key-value backend behind the profile store. Values are opaque
// blobs; lists hold blobs in insertion order and are read newest first.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	// Keys returns every key with the prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)
	// Append adds a value to a list, keeping only the newest keep values
	// when keep is positive.
	Append(ctx context.Context, list string, value []byte, keep int) error
	// Range returns up to limit values of a list, newest first.
	Range(ctx context.Context, list string, limit int) ([][]byte, error)
	Close() error
}

// Backend names.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config selects and configures a backend.
type Config struct {
	Backend string // "sqlite" (default) or "redis"
	Path    string // SQLite database file, ~ expanded

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// DefaultConfig returns the local SQLite configuration.
func DefaultConfig() Config {
	return Config{
		Backend:     BackendSQLite,
		Path:        "~/.theorygames/theorygames.db",
		RedisAddr:   "localhost:6379",
		RedisPrefix: "theorygames:",
	}
}

// OpenKV opens the configured backend.
func OpenKV(ctx context.Context, cfg Config) (KV, error) {
	switch cfg.Backend {
	case BackendSQLite, "":
		return Open(cfg.Path)
	case BackendRedis:
		return OpenRedis(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.Backend)
	}
}
