package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/gate-discovery/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/gate-discovery/internal/core/domain"
	"github.com/custodia-labs/gate-discovery/internal/core/ports/driven"
	"github.com/custodia-labs/gate-discovery/internal/logger"
)

// DatabaseFile is the database file name inside the data directory.
const DatabaseFile = "cache.db"

// Ensure Store implements the interface.
var _ driven.KeyValueStore = (*Store)(nil)

// Store is a SQLite-backed key-value store with per-entry expiry.
type Store struct {
	db     *sql.DB
	path   string
	now    func() time.Time
	closed atomic.Bool
}

// NewStore creates a new SQLite store in the specified data directory.
// If dataDir is empty, defaults to ~/.gate-discovery/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".gate-discovery", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
		now:  time.Now,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Get returns the value stored under key.
// Expired rows are reported as missing and removed.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if s.closed.Load() {
		return "", false, domain.ErrStoreClosed
	}

	var (
		value     string
		expiresAt int64
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT value, expires_at FROM kv_entries WHERE key = ?", key,
	).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: get %q: %w", domain.ErrCacheUnavailable, key, err)
	}

	if expiresAt > 0 && s.now().UnixNano() >= expiresAt {
		if _, err := s.db.ExecContext(ctx,
			"DELETE FROM kv_entries WHERE key = ? AND expires_at = ?", key, expiresAt,
		); err != nil {
			logger.Debug("sqlite: removing expired %q: %v", key, err)
		}
		return "", false, nil
	}

	return value, true, nil
}

// Put stores value under key. A ttl of zero means no expiry.
func (s *Store) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	if s.closed.Load() {
		return domain.ErrStoreClosed
	}

	now := s.now()
	var expiresAt int64
	if ttl > 0 {
		expiresAt = now.Add(ttl).UnixNano()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_entries (key, value, expires_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at
	`, key, value, expiresAt, now.UnixNano())
	if err != nil {
		return fmt.Errorf("%w: put %q: %w", domain.ErrCacheUnavailable, key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if s.closed.Load() {
		return domain.ErrStoreClosed
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv_entries WHERE key = ?", key); err != nil {
		return fmt.Errorf("%w: delete %q: %w", domain.ErrCacheUnavailable, key, err)
	}
	return nil
}

// Purge removes every expired row and returns how many were removed.
func (s *Store) Purge(ctx context.Context) (int64, error) {
	if s.closed.Load() {
		return 0, domain.ErrStoreClosed
	}

	res, err := s.db.ExecContext(ctx,
		"DELETE FROM kv_entries WHERE expires_at > 0 AND expires_at <= ?", s.now().UnixNano(),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: purge: %w", domain.ErrCacheUnavailable, err)
	}
	return res.RowsAffected()
}

// RunPurger purges expired rows every interval until ctx is cancelled.
func (s *Store) RunPurger(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.Purge(ctx)
			if err != nil {
				if !errors.Is(err, domain.ErrStoreClosed) && ctx.Err() == nil {
					logger.Warn("sqlite purge failed: %v", err)
				}
				continue
			}
			if n > 0 {
				logger.Debug("sqlite purge removed %d expired entries", n)
			}
		}
	}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_kv_entries.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
