// Package redisstore is a fiber.Storage on redis for sessions and rate limits.
package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"

	"github.com/growfastwithus/growfast/internal/config"
)

// scanCount is the batch size used by Reset.
const scanCount = 100

// client is the part of redis.Client the storage uses.
type client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// Storage implements fiber.Storage for Redis. Keys are namespaced by prefix.
type Storage struct {
	client client
	prefix string
}

var _ fiber.Storage = (*Storage)(nil)

// New connects to the configured redis server.
func New(cfg config.Redis) *Storage {
	return &Storage{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		prefix: cfg.Prefix,
	}
}

// WithPrefix returns a storage sharing the connection under an extra prefix.
func (s *Storage) WithPrefix(prefix string) *Storage {
	return &Storage{client: s.client, prefix: s.prefix + prefix}
}

// Ping checks the connection.
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err() //nolint:wrapcheck
}

func (s *Storage) key(k string) string {
	return s.prefix + k
}

// Get returns nil, nil for missing keys as fiber.Storage requires.
func (s *Storage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}

	val, err := s.client.Get(context.Background(), s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}

	return val, err //nolint:wrapcheck
}

// Set stores val under key, exp 0 means no expiry.
func (s *Storage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}

	return s.client.Set(context.Background(), s.key(key), val, exp).Err() //nolint:wrapcheck
}

// Delete removes key.
func (s *Storage) Delete(key string) error {
	if key == "" {
		return nil
	}

	return s.client.Del(context.Background(), s.key(key)).Err() //nolint:wrapcheck
}

// Reset deletes every key under the prefix.
func (s *Storage) Reset() error {
	ctx := context.Background()

	var cursor uint64

	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", scanCount).Result()
		if err != nil {
			return err //nolint:wrapcheck
		}

		if len(keys) > 0 {
			if err = s.client.Del(ctx, keys...).Err(); err != nil {
				return err //nolint:wrapcheck
			}
		}

		if next == 0 {
			return nil
		}

		cursor = next
	}
}

// Close closes the connection.
func (s *Storage) Close() error {
	return s.client.Close() //nolint:wrapcheck
}
