package domain

import "time"

// CacheBackend selects the key-value store implementation.
type CacheBackend string

// Available cache backends.
const (
	// CacheBackendMemory keeps entries in process memory.
	CacheBackendMemory CacheBackend = "memory"

	// CacheBackendSQLite persists entries in a SQLite database.
	CacheBackendSQLite CacheBackend = "sqlite"

	// CacheBackendBadger persists entries in a Badger database.
	CacheBackendBadger CacheBackend = "badger"
)

// IsValid returns true if the backend is recognised.
func (b CacheBackend) IsValid() bool {
	switch b {
	case CacheBackendMemory, CacheBackendSQLite, CacheBackendBadger:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b CacheBackend) String() string {
	return string(b)
}

// DefaultRequestsPerSecond leaves a cold module run with 30 matches
// a few seconds of throttling, well inside the request timeout.
const DefaultRequestsPerSecond = 10

// Settings is the typed application configuration.
type Settings struct {
	Server    ServerSettings
	Cache     CacheSettings
	GitHub    GitHubSettings
	Discovery DiscoverySettings
}

// ServerSettings configures the HTTP boundary.
type ServerSettings struct {
	Addr           string        `validate:"required"`
	RequestTimeout time.Duration `validate:"gt=0"`
}

// CacheSettings configures the key-value store.
type CacheSettings struct {
	Backend   CacheBackend  `validate:"required,oneof=memory sqlite badger"`
	Dir       string        `validate:"required_unless=Backend memory"`
	ResultTTL time.Duration `validate:"gte=1s"`
}

// GitHubSettings holds the GitHub App identity and API location.
// AppID and PrivateKey are checked lazily by the token issuer.
type GitHubSettings struct {
	AppID          string
	PrivateKey     string `json:"-"`
	PrivateKeyPath string
	InstallationID int64  `validate:"gte=0"`
	BaseURL        string `validate:"omitempty,url"`

	// RequestsPerSecond paces every upstream call, including detail
	// lookups, through one shared bucket.
	RequestsPerSecond float64 `validate:"gt=0,lte=100"`
}

// DiscoverySettings tunes the pipelines.
type DiscoverySettings struct {
	EnrichConcurrency int `validate:"gte=1,lte=32"`
}

// HasIdentity returns true if both the app id and private key are present.
func (g GitHubSettings) HasIdentity() bool {
	return g.AppID != "" && g.PrivateKey != ""
}

// DefaultSettings returns the default application settings.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{
			Addr:           ":8080",
			RequestTimeout: 30 * time.Second,
		},
		Cache: CacheSettings{
			Backend:   CacheBackendMemory,
			ResultTTL: DefaultResultTTL,
		},
		GitHub: GitHubSettings{
			RequestsPerSecond: DefaultRequestsPerSecond,
		},
		Discovery: DiscoverySettings{
			EnrichConcurrency: 4,
		},
	}
}
