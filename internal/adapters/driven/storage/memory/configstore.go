package memory

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/custodia-labs/gate-discovery/internal/core/domain"
	"github.com/custodia-labs/gate-discovery/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore holds configuration values in memory. Given a base store it
// acts as an overlay: values set here shadow the base, which stays untouched.
// Command line overrides are layered over the config file this way.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
	base   driven.ConfigStore
}

// NewConfigStore creates a standalone in-memory config store.
func NewConfigStore() *ConfigStore {
	return NewOverlayConfigStore(nil)
}

// NewOverlayConfigStore creates a store whose unset keys fall through to base.
func NewOverlayConfigStore(base driven.ConfigStore) *ConfigStore {
	return &ConfigStore{
		values: make(map[string]any),
		base:   base,
	}
}

// Get retrieves a configuration value by key, preferring overlay values.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	val, ok := s.values[key]
	s.mu.RUnlock()
	if ok || s.base == nil {
		return val, ok
	}
	return s.base.Get(key)
}

// SetAssignment applies a "key=value" pair, as given on the command line.
func (s *ConfigStore) SetAssignment(assignment string) error {
	key, value, ok := strings.Cut(assignment, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("%w: config override %q must be key=value", domain.ErrInvalidInput, assignment)
	}
	return s.Set(key, strings.TrimSpace(value))
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	val, ok := s.Get(key)
	if !ok {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}

// GetInt retrieves an integer configuration value.
// Numeric strings are accepted.
func (s *ConfigStore) GetInt(key string) int {
	val, ok := s.Get(key)
	if !ok {
		return 0
	}
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// GetBool retrieves a boolean configuration value.
func (s *ConfigStore) GetBool(key string) bool {
	val, ok := s.Get(key)
	if !ok {
		return false
	}
	if b, ok := val.(bool); ok {
		return b
	}
	return false
}

// Set stores a configuration value. The base store is never written.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Load reloads the base store. Overlay values survive a reload.
func (s *ConfigStore) Load() error {
	if s.base == nil {
		return nil
	}
	return s.base.Load()
}

// Path returns the base store's path, or ":memory:" without one.
func (s *ConfigStore) Path() string {
	if s.base == nil {
		return ":memory:"
	}
	return s.base.Path()
}
