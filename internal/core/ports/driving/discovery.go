package driving

import (
	"context"

	"github.com/custodia-labs/gate-discovery/internal/core/domain"
)

// DiscoveryService surfaces a cached snapshot of discovered repositories.
type DiscoveryService interface {
	// ListExtensionRepositories returns repositories tagged with the extension
	// topic, most starred first.
	ListExtensionRepositories(ctx context.Context) ([]domain.ExtensionRepository, error)

	// ListModuleRepositories returns repositories whose go.mod requires the
	// module, one entry per repository, most recently indexed first.
	ListModuleRepositories(ctx context.Context) ([]domain.ModuleRepository, error)

	// Invalidate drops cached pipeline results so the next call refetches.
	Invalidate(ctx context.Context) error
}
