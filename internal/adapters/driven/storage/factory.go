// Package storage selects and opens the configured key-value store backend.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/gate-discovery/internal/adapters/driven/storage/badger"
	"github.com/custodia-labs/gate-discovery/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/gate-discovery/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/gate-discovery/internal/core/domain"
	"github.com/custodia-labs/gate-discovery/internal/core/ports/driven"
	"github.com/custodia-labs/gate-discovery/internal/logger"
)

// DefaultMaintenanceInterval is how often persistent backends reclaim expired entries.
const DefaultMaintenanceInterval = 10 * time.Minute

// Open opens the key-value store selected by settings.
func Open(settings domain.CacheSettings) (driven.KeyValueStore, error) {
	switch settings.Backend {
	case domain.CacheBackendMemory, "":
		logger.Debug("cache backend: memory")
		return memory.NewKVStore(), nil
	case domain.CacheBackendSQLite:
		store, err := sqlite.NewStore(settings.Dir)
		if err != nil {
			return nil, fmt.Errorf("open sqlite cache: %w", err)
		}
		logger.Debug("cache backend: sqlite (%s)", store.Path())
		return store, nil
	case domain.CacheBackendBadger:
		store, err := badger.NewStore(settings.Dir)
		if err != nil {
			return nil, fmt.Errorf("open badger cache: %w", err)
		}
		logger.Debug("cache backend: badger (%s)", store.Path())
		return store, nil
	default:
		return nil, fmt.Errorf("%w: unknown cache backend %q", domain.ErrInvalidInput, settings.Backend)
	}
}

// StartMaintenance runs the backend's background cleanup until ctx is cancelled.
// It is a no-op for backends that need none.
func StartMaintenance(ctx context.Context, kv driven.KeyValueStore, interval time.Duration) {
	switch store := kv.(type) {
	case *sqlite.Store:
		go store.RunPurger(ctx, interval)
	case *badger.Store:
		go store.RunGC(ctx, interval)
	}
}
