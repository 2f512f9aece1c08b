package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/custodia-labs/gate-discovery/internal/core/ports/driven"
	"github.com/custodia-labs/gate-discovery/internal/logger"
)

// ResultCache is a read-through cache of serialised pipeline results.
// It never fails its caller: read errors degrade to a miss and
// write errors are logged and dropped.
type ResultCache struct {
	kv driven.KeyValueStore
}

// NewResultCache creates a result cache over kv.
func NewResultCache(kv driven.KeyValueStore) *ResultCache {
	return &ResultCache{kv: kv}
}

// Get decodes the entry stored under key into dst.
// Returns false on a miss, a store error, or an undecodable payload.
func (c *ResultCache) Get(ctx context.Context, key string, dst any) bool {
	raw, found, err := c.kv.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read %q failed, treating as miss: %v", key, err)
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		logger.Warn("cache entry %q is corrupt, treating as miss: %v", key, err)
		return false
	}
	return true
}

// Put serialises value and stores it under key for ttl.
func (c *ResultCache) Put(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.Warn("cache encode %q failed: %v", key, err)
		return
	}
	if err := c.kv.Put(ctx, key, string(data), ttl); err != nil {
		logger.Warn("cache write %q failed: %v", key, err)
	}
}

// Invalidate removes the entries stored under keys.
func (c *ResultCache) Invalidate(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if err := c.kv.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete %q: %w", key, err)
		}
	}
	return nil
}
