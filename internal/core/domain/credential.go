package domain

import "time"

// CredentialKind identifies how a credential was issued.
type CredentialKind string

// Credential kinds.
const (
	// CredentialApp is a signed App JWT (valid up to 10 minutes).
	CredentialApp CredentialKind = "app"

	// CredentialInstallation is an installation access token (valid 1 hour).
	CredentialInstallation CredentialKind = "installation"
)

// CacheKey returns the fixed Token Store key for this kind.
func (k CredentialKind) CacheKey() string {
	if k == CredentialInstallation {
		return "github-installation-token"
	}
	return "github-jwt-token"
}

// CredentialCacheRatio is the fraction of a credential's lifetime it may stay cached.
const CredentialCacheRatio = 0.8

// MinCredentialTTL is the shortest TTL worth writing to the store.
const MinCredentialTTL = time.Second

// Credential is a short-lived bearer token for the upstream API.
// It is replaced on refresh, never mutated.
type Credential struct {
	Token     string         `json:"token"`
	Kind      CredentialKind `json:"kind"`
	IssuedAt  time.Time      `json:"issued_at"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// Lifetime returns the provider's validity window.
func (c Credential) Lifetime() time.Duration {
	return c.ExpiresAt.Sub(c.IssuedAt)
}

// CacheTTL returns how long the credential may be cached as of now.
// The result is always strictly less than the remaining validity and is
// zero when the credential is too short-lived to cache.
func (c Credential) CacheTTL(now time.Time) time.Duration {
	remaining := c.ExpiresAt.Sub(now)
	ttl := time.Duration(float64(remaining) * CredentialCacheRatio).Truncate(time.Second)
	if ttl < MinCredentialTTL || ttl >= remaining {
		return 0
	}
	return ttl
}

// IsExpired returns true if the credential is no longer valid at now.
func (c Credential) IsExpired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
