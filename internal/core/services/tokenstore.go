package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/custodia-labs/gate-discovery/internal/core/domain"
	"github.com/custodia-labs/gate-discovery/internal/core/ports/driven"
)

// TokenStore holds one credential in the shared key-value store under a fixed key.
type TokenStore struct {
	kv  driven.KeyValueStore
	key string
}

// NewTokenStore creates a token store for credentials of the given kind.
func NewTokenStore(kv driven.KeyValueStore, kind domain.CredentialKind) *TokenStore {
	return &TokenStore{
		kv:  kv,
		key: kind.CacheKey(),
	}
}

// Key returns the store key the credential lives under.
func (s *TokenStore) Key() string {
	return s.key
}

// Load returns the cached credential, or nil when none is cached.
func (s *TokenStore) Load(ctx context.Context) (*domain.Credential, error) {
	raw, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.key, err)
	}
	if !found || raw == "" {
		return nil, nil
	}

	var cred domain.Credential
	if err := json.Unmarshal([]byte(raw), &cred); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.key, err)
	}
	if cred.Token == "" {
		return nil, nil
	}
	return &cred, nil
}

// Save caches the credential for ttl.
func (s *TokenStore) Save(ctx context.Context, cred domain.Credential, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("save %s: %w: ttl must be positive", s.key, domain.ErrInvalidInput)
	}

	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.key, err)
	}
	if err := s.kv.Put(ctx, s.key, string(data), ttl); err != nil {
		return fmt.Errorf("write %s: %w", s.key, err)
	}
	return nil
}

// Clear removes the cached credential.
func (s *TokenStore) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, s.key)
}
