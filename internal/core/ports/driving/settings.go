package driving

import "github.com/custodia-labs/gate-discovery/internal/core/domain"

// SettingsService resolves application settings.
type SettingsService interface {
	// Get resolves current settings from configuration and defaults.
	// Returns domain.ErrInvalidInput when the result fails validation.
	Get() (*domain.Settings, error)

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}
