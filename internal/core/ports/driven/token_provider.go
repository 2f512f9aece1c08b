package driven

import (
	"context"

	"github.com/custodia-labs/gate-discovery/internal/core/domain"
)

// TokenProvider provides bearer tokens for authenticated upstream calls.
// Implementations handle caching and refresh transparently.
type TokenProvider interface {
	// GetToken returns a valid bearer token.
	GetToken(ctx context.Context) (string, error)
}

// CredentialIssuer obtains fresh credentials from the identity provider.
type CredentialIssuer interface {
	// Issue signs or exchanges a new credential.
	// Returns domain.ErrAuthConfiguration before any network call when the
	// identity is not configured, and domain.ErrAuthProvider when the
	// provider rejects the request.
	Issue(ctx context.Context) (*domain.Credential, error)

	// Kind returns the kind of credential this issuer produces.
	Kind() domain.CredentialKind
}
