package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/gate-discovery/internal/core/domain"
	"github.com/custodia-labs/gate-discovery/internal/core/ports/driven"
)

// Ensure KVStore implements the interface.
var _ driven.KeyValueStore = (*KVStore)(nil)

type kvEntry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

// KVStore is an in-memory implementation of driven.KeyValueStore.
// Expired entries are removed lazily on access.
type KVStore struct {
	mu      sync.Mutex
	entries map[string]kvEntry
	now     func() time.Time
	closed  bool
}

// NewKVStore creates a new in-memory key-value store.
func NewKVStore() *KVStore {
	return &KVStore{
		entries: make(map[string]kvEntry),
		now:     time.Now,
	}
}

// SetClock replaces the store's time source. Useful for testing expiry.
func (s *KVStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Get retrieves a value by key.
func (s *KVStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", false, domain.ErrStoreClosed
	}

	entry, ok := s.entries[key]
	if !ok {
		return "", false, nil
	}
	if !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt) {
		delete(s.entries, key)
		return "", false, nil
	}
	return entry.value, true, nil
}

// Put stores a value with an optional TTL.
func (s *KVStore) Put(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrStoreClosed
	}

	entry := kvEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}
	s.entries[key] = entry
	return nil
}

// Delete removes a key.
func (s *KVStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrStoreClosed
	}
	delete(s.entries, key)
	return nil
}

// Len returns the number of stored entries, including expired ones not yet evicted.
func (s *KVStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close marks the store closed. Subsequent calls fail with domain.ErrStoreClosed.
func (s *KVStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.entries = make(map[string]kvEntry)
	return nil
}
