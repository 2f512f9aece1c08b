package cli

import (
	"context"
	"fmt"

	"github.com/custodia-labs/gate-discovery/internal/adapters/driven/auth"
	"github.com/custodia-labs/gate-discovery/internal/adapters/driven/config/file"
	"github.com/custodia-labs/gate-discovery/internal/adapters/driven/storage"
	"github.com/custodia-labs/gate-discovery/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/gate-discovery/internal/connectors/github"
	"github.com/custodia-labs/gate-discovery/internal/core/ports/driven"
	"github.com/custodia-labs/gate-discovery/internal/core/ports/driving"
	"github.com/custodia-labs/gate-discovery/internal/core/services"
	"github.com/custodia-labs/gate-discovery/internal/logger"
)

// TokenInvalidator drops a cached credential.
type TokenInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Services holds the wired application services used by the commands.
type Services struct {
	Settings  driving.SettingsService
	Discovery driving.DiscoveryService
	Tokens    TokenInvalidator
	Store     driven.KeyValueStore
	// KeyFile is set when the private key is read from disk and can be watched.
	KeyFile *auth.KeyFile
}

// Close releases the key-value store.
func (s *Services) Close() error {
	if s.Store == nil {
		return nil
	}
	return s.Store.Close()
}

// Services used by the commands.
var (
	settingsService  driving.SettingsService
	discoveryService driving.DiscoveryService
	tokenManager     TokenInvalidator
	cacheStore       driven.KeyValueStore
	keyFile          *auth.KeyFile

	// ownedServices is non-nil when setupServices wired the services itself.
	ownedServices *Services
)

// SetServices installs the services used by the commands.
func SetServices(s *Services) {
	settingsService = s.Settings
	discoveryService = s.Discovery
	tokenManager = s.Tokens
	cacheStore = s.Store
	keyFile = s.KeyFile
}

// Wire builds the service graph from the configuration at path.
// An empty path uses the default config location. Overrides are
// "key=value" pairs layered over the file and the environment.
func Wire(path string, overrides ...string) (*Services, error) {
	fileStore, err := file.NewConfigStore(path, file.DefaultEnvBindings)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger.Debug("config file: %s", fileStore.Path())

	configStore := memory.NewOverlayConfigStore(fileStore)
	for _, o := range overrides {
		if err := configStore.SetAssignment(o); err != nil {
			return nil, err
		}
	}

	settingsSvc := services.NewSettingsService(configStore)
	settings, err := settingsSvc.Get()
	if err != nil {
		return nil, fmt.Errorf("resolve settings: %w", err)
	}

	kv, err := storage.Open(settings.Cache)
	if err != nil {
		return nil, err
	}

	client, err := github.NewClient(github.ConfigFromSettings(settings.GitHub))
	if err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("create github client: %w", err)
	}

	// A key read from disk is watched only when no inline key overrides it.
	var key auth.KeySource
	var kf *auth.KeyFile
	if settings.GitHub.PrivateKeyPath != "" {
		loaded, err := auth.NewKeyFile(settings.GitHub.PrivateKeyPath)
		if err == nil && loaded.PrivateKey() == settings.GitHub.PrivateKey {
			key, kf = loaded, loaded
		}
	}

	issuer := auth.NewIssuer(settings.GitHub, key, client)
	logger.Debug("credential kind: %s", issuer.Kind())

	tokens := services.NewTokenManager(services.NewTokenStore(kv, issuer.Kind()), issuer)

	discovery := services.NewDiscoveryService(services.NewResultCache(kv), tokens, client)
	discovery.SetResultTTL(settings.Cache.ResultTTL)
	discovery.SetEnrichConcurrency(settings.Discovery.EnrichConcurrency)

	return &Services{
		Settings:  settingsSvc,
		Discovery: discovery,
		Tokens:    tokens,
		Store:     kv,
		KeyFile:   kf,
	}, nil
}
