package cache

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/unhappychoice/gittype-sub005/internal/challenge"
)

// FileStore keeps one JSON file per challenge set under a fanned-out
// directory tree.
type FileStore struct {
	baseDir string
	mu      sync.RWMutex
	logger  *slog.Logger
}

// NewFileStore creates a file store rooted at baseDir.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		baseDir = GetCacheBaseDir()
	}
	dir := filepath.Join(baseDir, "challenges")
	if err := ensureDir(dir); err != nil {
		return nil, fmt.Errorf("failed to create cache directory; %w", err)
	}
	return &FileStore{
		baseDir: dir,
		logger:  slog.Default().With("component", "challenge-cache"),
	}, nil
}

func (c *FileStore) path(key string) string {
	return hashToPath(c.baseDir, key, fmt.Sprintf("-v%d.json", Version))
}

// Backend returns "file".
func (c *FileStore) Backend() string {
	return BackendFile
}

// Get retrieves a cached challenge set. A corrupt entry is deleted and
// reported as a miss.
func (c *FileStore) Get(_ context.Context, key string) ([]challenge.Challenge, error) {
	c.mu.RLock()
	path := c.path(key)
	data, err := os.ReadFile(path)
	c.mu.RUnlock()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read cache file; %w", err)
	}

	challenges, err := decodeEntry(data)
	if err != nil {
		c.logger.Warn("deleting corrupt cache entry", "key", key, "error", err)
		c.mu.Lock()
		_ = os.Remove(path)
		c.mu.Unlock()
		return nil, ErrCacheMiss
	}
	return challenges, nil
}

// Set stores a challenge set.
func (c *FileStore) Set(_ context.Context, key string, challenges []challenge.Challenge) error {
	data, err := encodeEntry(challenges)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	path := c.path(key)
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create cache directory; %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file; %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write cache file; %w", err)
	}
	return nil
}

// Delete removes a cached entry.
func (c *FileStore) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.Remove(c.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete cache file; %w", err)
	}
	return nil
}

// Clear removes all cached entries.
func (c *FileStore) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.RemoveAll(c.baseDir); err != nil {
		return fmt.Errorf("failed to clear cache; %w", err)
	}
	return ensureDir(c.baseDir)
}

// Stats returns cache statistics.
func (c *FileStore) Stats(_ context.Context) (CacheStats, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := CacheStats{}
	err := filepath.Walk(c.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			stats.EntryCount++
			stats.TotalSize += info.Size()
		}
		return nil
	})
	return stats, err
}

// Close is a no-op.
func (c *FileStore) Close() error {
	return nil
}

// GetCacheBaseDir returns the default cache directory.
func GetCacheBaseDir() string {
	if dir := os.Getenv("GITTYPE_CACHE_DIR"); dir != "" {
		return dir
	}
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "gittype")
	}
	return filepath.Join(os.TempDir(), "gittype-cache")
}
