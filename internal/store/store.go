package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// DefaultCapacity is the number of recent searches kept when none is given
const DefaultCapacity = 5

// Bucket and key names
var (
	bucketRecents = []byte("recents")
	keyRecents    = []byte("recents")
)

// RecentStore implements domain.RecentsStore using BoltDB.
// The persisted value is a JSON array of strings, most recent first.
type RecentStore struct {
	db       *bolt.DB
	capacity int

	mu      sync.Mutex // Protects recents and serializes mutations
	recents []string
}

var _ domain.RecentsStore = (*RecentStore)(nil)

// NewRecentStore opens (or creates) the database at dbPath and loads the
// persisted sequence. An empty dbPath keeps everything in memory.
func NewRecentStore(dbPath string, capacity int) (*RecentStore, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	if dbPath == "" {
		// Memory-only mode (no persistence)
		return &RecentStore{capacity: capacity, recents: []string{}}, nil
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open bolt db: %w", domain.ErrStorage, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRecents)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	s := &RecentStore{db: db, capacity: capacity}
	recents, err := s.Load()
	if err != nil {
		db.Close()
		return nil, err
	}
	s.recents = recents

	return s, nil
}

// Close releases the database
func (s *RecentStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Capacity returns the maximum number of entries kept
func (s *RecentStore) Capacity() int {
	return s.capacity
}

// Load reads the persisted sequence. First run returns an empty sequence, as
// does a value that is not a JSON string array; the next mutation overwrites it.
// Entries beyond the capacity (from a larger earlier setting) are dropped.
func (s *RecentStore) Load() ([]string, error) {
	if s.db == nil {
		return s.List(), nil
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRecents)
		if b == nil {
			return nil
		}
		if v := b.Get(keyRecents); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	recents := []string{}
	if data == nil {
		return recents, nil
	}
	if err := json.Unmarshal(data, &recents); err != nil {
		slog.Warn("ignoring unreadable recent searches", "error", err)
		return []string{}, nil
	}
	if len(recents) > s.capacity {
		recents = recents[:s.capacity]
	}
	return recents, nil
}

// List returns a copy of the in-memory sequence, most recent first
func (s *RecentStore) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.recents)
}

// Add inserts value at the front. A value already present anywhere is a
// no-op and keeps its position. The last entry is dropped past capacity.
func (s *RecentStore) Add(value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.recents, value) {
		return nil
	}

	next := make([]string, 0, len(s.recents)+1)
	next = append(next, value)
	next = append(next, s.recents...)
	if len(next) > s.capacity {
		next = next[:s.capacity]
	}

	return s.commit(next)
}

// RemoveAt drops the entries at the given zero-based positions. Every
// position refers to the sequence as it was before the call; repeated and
// out-of-range positions are ignored.
func (s *RecentStore) RemoveAt(indices ...int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(s.recents) {
			drop[i] = true
		}
	}
	if len(drop) == 0 {
		return nil
	}

	next := make([]string, 0, len(s.recents)-len(drop))
	for i, v := range s.recents {
		if !drop[i] {
			next = append(next, v)
		}
	}

	return s.commit(next)
}

// Clear drops every entry
func (s *RecentStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.recents) == 0 {
		return nil
	}
	return s.commit([]string{})
}

// commit persists next and only then swaps it in, so the in-memory and
// persisted views never diverge. Caller must hold s.mu.
func (s *RecentStore) commit(next []string) error {
	if s.db != nil {
		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrStorage, err)
		}
		err = s.db.Update(func(tx *bolt.Tx) error {
			b, err := tx.CreateBucketIfNotExists(bucketRecents)
			if err != nil {
				return err
			}
			return b.Put(keyRecents, data)
		})
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrStorage, err)
		}
	}

	s.recents = next
	return nil
}
