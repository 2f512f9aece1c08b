package auth

import (
	"github.com/custodia-labs/gate-discovery/internal/core/domain"
	"github.com/custodia-labs/gate-discovery/internal/core/ports/driven"
)

// NewIssuer creates the credential issuer for the configured identity.
// A nil key uses the private key from settings. An installation id selects
// installation tokens; otherwise the App JWT itself is the bearer credential.
func NewIssuer(settings domain.GitHubSettings, key KeySource, exchanger TokenExchanger) driven.CredentialIssuer {
	if key == nil {
		key = StaticKey(settings.PrivateKey)
	}
	app := NewAppIssuer(settings.AppID, key)
	if settings.InstallationID > 0 && exchanger != nil {
		return NewInstallationIssuer(app, settings.InstallationID, exchanger)
	}
	return app
}
