// Package sqlite provides a SQLite-backed implementation of driven.KeyValueStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Entries live in a single kv_entries table; expires_at holds a Unix
// nanosecond deadline, or 0 for entries that never expire.
//
// # Expiry
//
// Expired rows are treated as missing on read and removed lazily. Purge and
// RunPurger delete them in bulk so the file does not grow unbounded.
//
// # Data Location
//
// By default, the database is stored at ~/.gate-discovery/data/cache.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
