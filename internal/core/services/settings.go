package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/gate-discovery/internal/core/domain"
	"github.com/custodia-labs/gate-discovery/internal/core/ports/driven"
	"github.com/custodia-labs/gate-discovery/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyServerAddr        = "server.addr"
	keyRequestTimeout    = "server.request_timeout"
	keyCacheBackend      = "cache.backend"
	keyCacheDir          = "cache.dir"
	keyResultTTL         = "cache.result_ttl"
	keyAppID             = "github.app_id"
	keyPrivateKey        = "github.private_key"
	keyPrivateKeyPath    = "github.private_key_path"
	keyInstallationID    = "github.installation_id"
	keyBaseURL           = "github.base_url"
	keyRequestsPerSecond = "github.requests_per_second"
	keyEnrichConcurrency = "discovery.enrich_concurrency"
)

// SettingsService resolves application settings from a ConfigStore.
type SettingsService struct {
	configStore driven.ConfigStore
	validate    *validator.Validate
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		validate:    validator.New(),
	}
}

// Get resolves current settings, applying defaults for unset keys.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := s.GetDefaults()

	privateKey, err := s.getPrivateKey()
	if err != nil {
		return nil, err
	}

	settings := &domain.Settings{
		Server: domain.ServerSettings{
			Addr:           s.getString(keyServerAddr, defaults.Server.Addr),
			RequestTimeout: s.getSeconds(keyRequestTimeout, defaults.Server.RequestTimeout),
		},
		Cache: domain.CacheSettings{
			Backend:   domain.CacheBackend(strings.ToLower(s.getString(keyCacheBackend, defaults.Cache.Backend.String()))),
			Dir:       s.getString(keyCacheDir, defaults.Cache.Dir),
			ResultTTL: s.getSeconds(keyResultTTL, defaults.Cache.ResultTTL),
		},
		GitHub: domain.GitHubSettings{
			AppID:          s.getID(keyAppID),
			PrivateKey:     privateKey,
			PrivateKeyPath: s.configStore.GetString(keyPrivateKeyPath),
			InstallationID: s.getInt64(keyInstallationID),
			BaseURL:        s.configStore.GetString(keyBaseURL),

			RequestsPerSecond: s.getFloat(keyRequestsPerSecond, defaults.GitHub.RequestsPerSecond),
		},
		Discovery: domain.DiscoverySettings{
			EnrichConcurrency: s.getInt(keyEnrichConcurrency, defaults.Discovery.EnrichConcurrency),
		},
	}

	if err := s.validate.Struct(settings); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, describeValidation(err))
	}

	return settings, nil
}

// GetDefaults returns default settings with the cache directory resolved.
func (s *SettingsService) GetDefaults() domain.Settings {
	defaults := domain.DefaultSettings()
	if home, err := os.UserHomeDir(); err == nil {
		defaults.Cache.Dir = filepath.Join(home, ".gate-discovery", "data")
	}
	return defaults
}

// getPrivateKey returns the inline PEM key, or reads it from the configured path.
// Escaped newlines are expanded so keys can be passed through env vars.
func (s *SettingsService) getPrivateKey() (string, error) {
	key := s.configStore.GetString(keyPrivateKey)
	if key == "" {
		path := s.configStore.GetString(keyPrivateKeyPath)
		if path == "" {
			return "", nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read private key: %w", err)
		}
		key = string(data)
	}
	return strings.TrimSpace(strings.ReplaceAll(key, `\n`, "\n")), nil
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

// getInt64 accepts both numeric and string values (env vars arrive as strings).
func (s *SettingsService) getInt64(key string) int64 {
	val, ok := s.configStore.Get(key)
	if !ok {
		return 0
	}
	switch v := val.(type) {
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return -1 // rejected by validation
		}
		return n
	default:
		return int64(s.configStore.GetInt(key))
	}
}

// getFloat accepts TOML floats and integers as well as env strings.
func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal
	}
	switch v := val.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return -1 // rejected by validation
		}
		return f
	default:
		return -1
	}
}

// getID returns an identifier that may be written as a TOML integer or string.
func (s *SettingsService) getID(key string) string {
	val, ok := s.configStore.Get(key)
	if !ok {
		return ""
	}
	switch v := val.(type) {
	case string:
		return strings.TrimSpace(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}

func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return time.Duration(s.configStore.GetInt(key)) * time.Second
}

// describeValidation flattens validator errors into "Field: tag" pairs.
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
