package badger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/custodia-labs/gate-discovery/internal/core/domain"
	"github.com/custodia-labs/gate-discovery/internal/core/ports/driven"
	"github.com/custodia-labs/gate-discovery/internal/logger"
)

// DatabaseDir is the Badger directory name inside the data directory.
const DatabaseDir = "badger"

// Ensure Store implements the interface.
var _ driven.KeyValueStore = (*Store)(nil)

// Store is a Badger-backed key-value store. Expiry uses Badger's native
// per-entry TTL, so expired keys are never returned.
type Store struct {
	db     *badger.DB
	path   string
	closed atomic.Bool
}

// NewStore opens (or creates) a Badger database in dataDir.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".gate-discovery", "data")
	}

	dbPath := filepath.Join(dataDir, DatabaseDir)
	if err := os.MkdirAll(dbPath, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	opts := badger.DefaultOptions(dbPath).WithLogger(badgerLogger{})
	return open(opts, dbPath)
}

// NewInMemoryStore opens a Badger database that lives only in memory.
func NewInMemoryStore() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(badgerLogger{})
	return open(opts, ":memory:")
}

func open(opts badger.Options, path string) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger database: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}

// Path returns the database directory.
func (s *Store) Path() string {
	return s.path
}

// Get returns the value stored under key.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	if s.closed.Load() {
		return "", false, domain.ErrStoreClosed
	}

	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: get %q: %w", domain.ErrCacheUnavailable, key, err)
	}
	return string(value), true, nil
}

// Put stores value under key. A ttl of zero means no expiry.
func (s *Store) Put(_ context.Context, key, value string, ttl time.Duration) error {
	if s.closed.Load() {
		return domain.ErrStoreClosed
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), []byte(value))
		if ttl > 0 {
			entry = entry.WithTTL(ttl)
		}
		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("%w: put %q: %w", domain.ErrCacheUnavailable, key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(_ context.Context, key string) error {
	if s.closed.Load() {
		return domain.ErrStoreClosed
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("%w: delete %q: %w", domain.ErrCacheUnavailable, key, err)
	}
	return nil
}

// RunGC reclaims value log space every interval until ctx is cancelled.
func (s *Store) RunGC(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.closed.Load() {
				return
			}
			// Rewrite until there is nothing left worth collecting.
			for {
				if err := s.db.RunValueLogGC(0.5); err != nil {
					break
				}
			}
		}
	}
}

// badgerLogger routes Badger's internal logging through the application logger.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...any) {
	logger.Error("badger: "+strings.TrimSuffix(format, "\n"), args...)
}

func (badgerLogger) Warningf(format string, args ...any) {
	logger.Warn("badger: "+strings.TrimSuffix(format, "\n"), args...)
}

func (badgerLogger) Infof(format string, args ...any) {
	logger.Debug("badger: "+strings.TrimSuffix(format, "\n"), args...)
}

func (badgerLogger) Debugf(format string, args ...any) {
	logger.Debug("badger: "+strings.TrimSuffix(format, "\n"), args...)
}
