// Package cache stores generated challenge sets keyed by a digest of the
// chunk set they were generated from.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/unhappychoice/gittype-sub005/internal/challenge"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
	"github.com/unhappychoice/gittype-sub005/internal/fsutil"
	"github.com/unhappychoice/gittype-sub005/internal/metrics"
)

// Version is bumped whenever the cached challenge format or the generation
// rules change; entries of other versions are ignored.
const Version = 1

var (
	// ErrCacheMiss is returned when an entry is not found in the cache.
	ErrCacheMiss = errors.New("cache miss")

	// ErrVersionMismatch is returned when the cached version doesn't match.
	ErrVersionMismatch = errors.New("version mismatch")

	// ErrCorruptEntry is returned when a stored entry cannot be decoded.
	ErrCorruptEntry = errors.New("corrupt cache entry")

	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown cache backend")
)

// Backend names accepted by Open.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendBolt  = "bolt"
	BackendRedis = "redis"
)

// Store persists challenge sets.
type Store interface {
	// Get returns the challenges stored under key, or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]challenge.Challenge, error)

	// Set stores challenges under key, replacing any previous entry.
	Set(ctx context.Context, key string, challenges []challenge.Challenge) error

	// Delete removes the entry under key. Missing entries are not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// Stats returns entry counts and sizes.
	Stats(ctx context.Context) (CacheStats, error)

	// Backend returns the backend name used in logs and metrics.
	Backend() string

	Close() error
}

// CacheStats contains cache statistics.
type CacheStats struct {
	EntryCount int64
	TotalSize  int64
}

// Config selects and configures a cache backend.
type Config struct {
	// Backend is one of none, file, bolt or redis.
	Backend string `mapstructure:"backend" yaml:"backend"`

	// Path is the directory (file) or database file (bolt).
	Path string `mapstructure:"path" yaml:"path"`

	RedisAddr     string `mapstructure:"redis_addr" yaml:"redis_addr"`
	RedisDB       int    `mapstructure:"redis_db" yaml:"redis_db"`
	RedisPassword string `mapstructure:"redis_password" yaml:"redis_password"`

	// TTLHours expires redis entries; zero keeps them forever.
	TTLHours int `mapstructure:"ttl_hours" yaml:"ttl_hours"`
}

// TTL returns the configured entry lifetime.
func (c Config) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// Open returns the store selected by cfg. A "none" backend yields a nil
// store and no error.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendNone:
		return nil, nil
	case BackendFile:
		return NewFileStore(cfg.Path)
	case BackendBolt:
		return NewBoltStore(cfg.Path)
	case BackendRedis:
		return NewRedisStore(ctx, RedisConfig{
			Addr:     cfg.RedisAddr,
			DB:       cfg.RedisDB,
			Password: cfg.RedisPassword,
			TTL:      cfg.TTL(),
		})
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
}

// Key digests a chunk set. The key depends on the set of chunks, not their
// order, so repeated extractions of an unchanged tree hit the same entry.
func Key(chunks []chunkers.Chunk) string {
	digests := make([]string, len(chunks))
	var b strings.Builder
	for i, c := range chunks {
		b.Reset()
		b.WriteString(c.Language)
		b.WriteByte(0)
		b.WriteString(c.Kind.String())
		b.WriteByte(0)
		b.WriteString(c.Name)
		b.WriteByte(0)
		b.WriteString(c.FilePath)
		b.WriteByte(0)
		b.WriteString(strconv.Itoa(c.StartLine))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(c.EndLine))
		b.WriteByte(0)
		for _, r := range c.CommentRanges {
			b.WriteString(strconv.Itoa(r.Start))
			b.WriteByte('-')
			b.WriteString(strconv.Itoa(r.End))
			b.WriteByte(',')
		}
		b.WriteByte(0)
		b.WriteString(c.Content)
		digests[i] = fsutil.HashBytes([]byte(b.String()))
	}
	sort.Strings(digests)

	set := fmt.Sprintf("v%d\n%s", Version, strings.Join(digests, "\n"))
	return fsutil.HashBytes([]byte(set))
}

// entry is the stored form of a challenge set.
type entry struct {
	Version    int                   `json:"version"`
	CreatedAt  time.Time             `json:"created_at"`
	Challenges []challenge.Challenge `json:"challenges"`
}

func encodeEntry(challenges []challenge.Challenge) ([]byte, error) {
	data, err := json.Marshal(entry{
		Version:    Version,
		CreatedAt:  time.Now().UTC(),
		Challenges: challenges,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cache entry; %w", err)
	}
	return data, nil
}

func decodeEntry(data []byte) ([]challenge.Challenge, error) {
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("%w; %v", ErrCorruptEntry, err)
	}
	if e.Version != Version {
		return nil, fmt.Errorf("%w: have %d, want %d", ErrVersionMismatch, e.Version, Version)
	}
	return e.Challenges, nil
}

// dropCorrupt deletes the entry under key when err reports a corrupt entry
// and converts err to ErrCacheMiss.
func dropCorrupt(ctx context.Context, store Store, key string, err error) error {
	if !errors.Is(err, ErrCorruptEntry) {
		return err
	}
	slog.Default().Warn("deleting corrupt cache entry", "backend", store.Backend(), "key", key, "error", err)
	if derr := store.Delete(ctx, key); derr != nil {
		slog.Default().Warn("failed to delete corrupt cache entry", "backend", store.Backend(), "key", key, "error", derr)
	}
	return ErrCacheMiss
}

// GetOrGenerate returns the challenges cached for chunks, calling generate
// and storing its result on a miss. The boolean reports a hit. A nil store
// always generates, and so does a store whose read fails. When storing
// fails the generated challenges are still returned together with the
// error.
func GetOrGenerate(ctx context.Context, store Store, chunks []chunkers.Chunk, generate func() ([]challenge.Challenge, error)) ([]challenge.Challenge, bool, error) {
	if store == nil {
		challenges, err := generate()
		return challenges, false, err
	}

	key := Key(chunks)
	challenges, err := store.Get(ctx, key)
	if err == nil {
		metrics.RecordCacheAccess(store.Backend(), true)
		return challenges, true, nil
	}
	metrics.RecordCacheAccess(store.Backend(), false)
	if !errors.Is(err, ErrCacheMiss) && !errors.Is(err, ErrVersionMismatch) {
		slog.Default().Warn("failed to read challenge cache; generating", "backend", store.Backend(), "error", err)
	}

	challenges, err = generate()
	if err != nil {
		return nil, false, err
	}
	if err := store.Set(ctx, key, challenges); err != nil {
		return challenges, false, fmt.Errorf("failed to write cache; %w", err)
	}
	return challenges, false, nil
}

// ensureDir creates a directory if it doesn't exist.
func ensureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// hashToPath converts a content hash to a cache file path with fan-out.
// Uses 2-level directory fan-out: xx/yy/full_hash
func hashToPath(baseDir, hash, suffix string) string {
	cleanHash := hash
	if idx := strings.Index(hash, ":"); idx != -1 {
		cleanHash = hash[idx+1:]
	}

	if len(cleanHash) < 4 {
		return filepath.Join(baseDir, cleanHash+suffix)
	}

	return filepath.Join(baseDir, cleanHash[:2], cleanHash[2:4], cleanHash+suffix)
}
