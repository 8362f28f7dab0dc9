package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures the Redis backend.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // Prepended to every key
}

// Redis is the Redis key-value backend. Values are plain strings; lists are
// Redis lists pushed on the left so LRANGE reads newest first.
type Redis struct {
	client *redis.Client
	prefix string
}

var _ KV = (*Redis)(nil)

// OpenRedis connects to Redis and verifies the connection.
func OpenRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("storage: cannot connect to redis at %s: %w", opts.Addr, err)
	}
	return &Redis{client: rdb, prefix: opts.Prefix}, nil
}

// Get returns the value stored under key, or ErrNotFound.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get %s: %w", key, err)
	}
	return v, nil
}

// Put stores value under key without expiry.
func (r *Redis) Put(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("storage: cannot put %s: %w", key, err)
	}
	return nil
}

// Keys scans for every key with the prefix.
func (r *Redis) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, r.prefix+prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), r.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("storage: cannot scan keys: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

// Append pushes value onto a list and trims it to the newest keep values.
func (r *Redis) Append(ctx context.Context, list string, value []byte, keep int) error {
	key := r.prefix + list
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, value)
		if keep > 0 {
			pipe.LTrim(ctx, key, 0, int64(keep-1))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("storage: cannot append to %s: %w", list, err)
	}
	return nil
}

// Range returns up to limit values of a list, newest first.
func (r *Redis) Range(ctx context.Context, list string, limit int) ([][]byte, error) {
	if limit <= 0 {
		limit = 20
	}
	vals, err := r.client.LRange(ctx, r.prefix+list, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query %s: %w", list, err)
	}
	out := make([][]byte, 0, len(vals))
	for _, v := range vals {
		out = append(out, []byte(v))
	}
	return out, nil
}

// Close closes the client.
func (r *Redis) Close() error {
	return r.client.Close()
}
