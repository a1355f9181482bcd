package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/unhappychoice/gittype-sub005/internal/challenge"
)

// redisKeyPrefix namespaces every key written by RedisStore.
const redisKeyPrefix = "gittype:challenges:"

// RedisConfig configures a RedisStore.
type RedisConfig struct {
	Addr     string
	DB       int
	Password string

	// TTL expires entries; zero keeps them until cleared.
	TTL time.Duration
}

// RedisStore keeps challenge sets in redis, one string value per set.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if cfg.Addr == "" {
		cfg.Addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		DB:       cfg.DB,
		Password: cfg.Password,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s; %w", cfg.Addr, err)
	}

	return &RedisStore{client: client, ttl: cfg.TTL}, nil
}

func redisKey(key string) string {
	return redisKeyPrefix + key
}

// Backend returns "redis".
func (s *RedisStore) Backend() string {
	return BackendRedis
}

// Get retrieves a cached challenge set. A corrupt entry is deleted and
// reported as a miss.
func (s *RedisStore) Get(ctx context.Context, key string) ([]challenge.Challenge, error) {
	data, err := s.client.Get(ctx, redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read redis key; %w", err)
	}
	challenges, err := decodeEntry(data)
	if err != nil {
		return nil, dropCorrupt(ctx, s, key, err)
	}
	return challenges, nil
}

// Set stores a challenge set with the configured TTL.
func (s *RedisStore) Set(ctx context.Context, key string, challenges []challenge.Challenge) error {
	data, err := encodeEntry(challenges)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, redisKey(key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write redis key; %w", err)
	}
	return nil
}

// Delete removes a cached entry.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, redisKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete redis key; %w", err)
	}
	return nil
}

// Clear removes every key under the store's prefix.
func (s *RedisStore) Clear(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 100 {
			if err := s.client.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("failed to clear redis keys; %w", err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan redis keys; %w", err)
	}
	if len(batch) > 0 {
		if err := s.client.Del(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("failed to clear redis keys; %w", err)
		}
	}
	return nil
}

// Stats returns cache statistics.
func (s *RedisStore) Stats(ctx context.Context) (CacheStats, error) {
	var stats CacheStats
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		stats.EntryCount++
		n, err := s.client.StrLen(ctx, iter.Val()).Result()
		if err == nil {
			stats.TotalSize += n
		}
	}
	if err := iter.Err(); err != nil {
		return stats, fmt.Errorf("failed to scan redis keys; %w", err)
	}
	return stats, nil
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
