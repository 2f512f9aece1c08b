package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/gate-discovery/internal/core/domain"
	"github.com/custodia-labs/gate-discovery/internal/core/ports/driven"
)

// TokenExchanger trades an App JWT for an installation access token.
type TokenExchanger interface {
	CreateInstallationToken(ctx context.Context, appJWT string, installationID int64) (*domain.Credential, error)
}

// Ensure InstallationIssuer implements the interface.
var _ driven.CredentialIssuer = (*InstallationIssuer)(nil)

// InstallationIssuer issues installation access tokens.
// Each issue signs a fresh App JWT and exchanges it.
type InstallationIssuer struct {
	app            *AppIssuer
	installationID int64
	exchanger      TokenExchanger
}

// NewInstallationIssuer creates an issuer for one app installation.
func NewInstallationIssuer(app *AppIssuer, installationID int64, exchanger TokenExchanger) *InstallationIssuer {
	return &InstallationIssuer{
		app:            app,
		installationID: installationID,
		exchanger:      exchanger,
	}
}

// Kind returns CredentialInstallation.
func (i *InstallationIssuer) Kind() domain.CredentialKind {
	return domain.CredentialInstallation
}

// Issue signs an App JWT and exchanges it for an installation token.
func (i *InstallationIssuer) Issue(ctx context.Context) (*domain.Credential, error) {
	appCred, err := i.app.Issue(ctx)
	if err != nil {
		return nil, err
	}

	cred, err := i.exchanger.CreateInstallationToken(ctx, appCred.Token, i.installationID)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: installation %d: %w", domain.ErrAuthProvider, i.installationID, err)
	}
	return cred, nil
}
