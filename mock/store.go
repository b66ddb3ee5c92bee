package mock

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dochive/dochive"
)

var _ dochive.Store = (*Store)(nil)

// Store is an in-memory implementation of dochive.Store for tests. It
// honors TTLs against the wall clock and records basic call counts.
type Store struct {
	mu       sync.Mutex
	entries  map[string]storeEntry
	baseline string

	SetCalls int
	GetCalls int
}

type storeEntry struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

// NewStore creates a new in-memory Store.
func NewStore() *Store {
	return &Store{entries: make(map[string]storeEntry)}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.GetCalls++
	entry, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && !time.Now().Before(entry.expiresAt) {
		delete(s.entries, key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.SetCalls++
	entry := storeEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	s.entries[key] = entry
	return nil
}

func (s *Store) DeleteMatching(ctx context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
	return nil
}

func (s *Store) Baseline(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.baseline, nil
}

func (s *Store) SetBaseline(ctx context.Context, fingerprint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseline = fingerprint
	return nil
}

func (s *Store) DeleteBaseline(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseline = ""
	return nil
}

// Len returns the number of live entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
