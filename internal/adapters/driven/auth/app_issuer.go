package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/custodia-labs/gate-discovery/internal/core/domain"
	"github.com/custodia-labs/gate-discovery/internal/core/ports/driven"
)

const (
	// AppJWTLifetime is how long a signed App JWT is valid. GitHub caps it at 10 minutes.
	AppJWTLifetime = 10 * time.Minute

	// ClockSkew backdates the issued-at claim to tolerate clock drift.
	ClockSkew = 60 * time.Second
)

// Ensure AppIssuer implements the interface.
var _ driven.CredentialIssuer = (*AppIssuer)(nil)

// KeySource supplies the app's PEM-encoded RSA private key.
type KeySource interface {
	PrivateKey() string
}

// StaticKey is a private key fixed at startup.
type StaticKey string

// PrivateKey returns the key.
func (k StaticKey) PrivateKey() string {
	return string(k)
}

// AppIssuer signs GitHub App JWTs with the app's RSA private key.
type AppIssuer struct {
	appID string
	key   KeySource
	now   func() time.Time
}

// NewAppIssuer creates an issuer for the given app identity.
// Missing values are reported on Issue, not here.
func NewAppIssuer(appID string, key KeySource) *AppIssuer {
	if key == nil {
		key = StaticKey("")
	}
	return &AppIssuer{
		appID: appID,
		key:   key,
		now:   time.Now,
	}
}

// Kind returns CredentialApp.
func (i *AppIssuer) Kind() domain.CredentialKind {
	return domain.CredentialApp
}

// Issue signs a new RS256 App JWT.
// Returns domain.ErrAuthConfiguration without any network call when the
// identity is incomplete.
func (i *AppIssuer) Issue(_ context.Context) (*domain.Credential, error) {
	privateKey := i.key.PrivateKey()
	if i.appID == "" || privateKey == "" {
		return nil, domain.ErrAuthConfiguration
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privateKey))
	if err != nil {
		return nil, fmt.Errorf("%w: parse private key: %w", domain.ErrAuthProvider, err)
	}

	now := i.now()
	expiresAt := now.Add(AppJWTLifetime)
	claims := jwt.RegisteredClaims{
		Issuer:    i.appID,
		IssuedAt:  jwt.NewNumericDate(now.Add(-ClockSkew)),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return nil, fmt.Errorf("%w: sign app jwt: %w", domain.ErrAuthProvider, err)
	}

	return &domain.Credential{
		Token:     signed,
		Kind:      domain.CredentialApp,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}, nil
}
