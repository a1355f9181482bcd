package cache

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/unhappychoice/gittype-sub005/internal/challenge"
)

var bucketChallenges = []byte("challenges")

// BoltStore keeps challenge sets in a single bbolt database file.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens or creates the database at path. An empty path uses
// challenges.db in the default cache directory.
func NewBoltStore(path string) (*BoltStore, error) {
	if path == "" {
		path = filepath.Join(GetCacheBaseDir(), "challenges.db")
	}
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("failed to create cache directory; %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db; %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketChallenges); err != nil {
			return fmt.Errorf("failed to create bucket %s; %w", bucketChallenges, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// Backend returns "bolt".
func (s *BoltStore) Backend() string {
	return BackendBolt
}

// Get retrieves a cached challenge set. A corrupt entry is deleted and
// reported as a miss.
func (s *BoltStore) Get(ctx context.Context, key string) ([]challenge.Challenge, error) {
	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketChallenges).Get([]byte(key))
		if v == nil {
			return ErrCacheMiss
		}
		// v is only valid inside the transaction.
		data = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	challenges, err := decodeEntry(data)
	if err != nil {
		return nil, dropCorrupt(ctx, s, key, err)
	}
	return challenges, nil
}

// Set stores a challenge set.
func (s *BoltStore) Set(_ context.Context, key string, challenges []challenge.Challenge) error {
	data, err := encodeEntry(challenges)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketChallenges).Put([]byte(key), data)
	})
}

// Delete removes a cached entry.
func (s *BoltStore) Delete(_ context.Context, key string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketChallenges).Delete([]byte(key))
	})
}

// Clear removes all cached entries.
func (s *BoltStore) Clear(_ context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketChallenges); err != nil {
			return fmt.Errorf("failed to delete bucket; %w", err)
		}
		_, err := tx.CreateBucket(bucketChallenges)
		return err
	})
}

// Stats returns cache statistics.
func (s *BoltStore) Stats(_ context.Context) (CacheStats, error) {
	var stats CacheStats
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketChallenges).ForEach(func(_, v []byte) error {
			stats.EntryCount++
			stats.TotalSize += int64(len(v))
			return nil
		})
	})
	return stats, err
}

// Path returns the database file path.
func (s *BoltStore) Path() string {
	return s.db.Path()
}

// Close closes the database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
