package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/gate-discovery/internal/core/ports/driven"
	"github.com/custodia-labs/gate-discovery/internal/logger"
)

// Ensure TokenManager implements the interface.
var _ driven.TokenProvider = (*TokenManager)(nil)

// TokenManager produces a valid upstream credential on demand.
// It consults the TokenStore first and only contacts the identity provider on a miss.
//
// Concurrent misses may each issue a fresh credential. Redundant short-lived
// credentials are harmless, so no lock is taken.
type TokenManager struct {
	store  *TokenStore
	issuer driven.CredentialIssuer
	now    func() time.Time
}

// NewTokenManager creates a token manager backed by store and issuer.
func NewTokenManager(store *TokenStore, issuer driven.CredentialIssuer) *TokenManager {
	return &TokenManager{
		store:  store,
		issuer: issuer,
		now:    time.Now,
	}
}

// GetToken returns a cached credential or issues and caches a new one.
func (m *TokenManager) GetToken(ctx context.Context) (string, error) {
	cached, err := m.store.Load(ctx)
	if err != nil {
		logger.Warn("token cache read failed, issuing fresh credential: %v", err)
	}
	if cached != nil {
		logger.Debug("using cached %s credential", cached.Kind)
		return cached.Token, nil
	}

	cred, err := m.issuer.Issue(ctx)
	if err != nil {
		return "", fmt.Errorf("issue %s credential: %w", m.issuer.Kind(), err)
	}

	ttl := cred.CacheTTL(m.now())
	if ttl <= 0 {
		logger.Warn("%s credential expires too soon to cache", cred.Kind)
		return cred.Token, nil
	}
	if err := m.store.Save(ctx, *cred, ttl); err != nil {
		logger.Warn("token cache write failed: %v", err)
	} else {
		logger.Debug("cached %s credential for %s", cred.Kind, ttl)
	}

	return cred.Token, nil
}

// Invalidate drops the cached credential.
func (m *TokenManager) Invalidate(ctx context.Context) error {
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear token cache: %w", err)
	}
	return nil
}
