package driven

import (
	"context"
	"time"
)

// KeyValueStore is a shared string cache with per-key expiry.
// Implementations provide atomic per-key Get and Put and are responsible
// for expiry: a value returned by Get is fresh by definition.
type KeyValueStore interface {
	// Get returns the value stored under key.
	// found is false when the key is absent or expired.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Put stores value under key for ttl. A ttl of zero means no expiry.
	Put(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the store.
	Close() error
}
