package httpapi

import (
	"context"
	"sync"

	"github.com/custodia-labs/gate-discovery/internal/core/domain"
)

// mockDiscoveryService implements driving.DiscoveryService for testing.
type mockDiscoveryService struct {
	mu sync.Mutex

	extensions    []domain.ExtensionRepository
	extensionsErr error
	modules       []domain.ModuleRepository
	modulesErr    error
	invalidateErr error

	calls   int
	lastCtx context.Context
}

func (m *mockDiscoveryService) ListExtensionRepositories(ctx context.Context) ([]domain.ExtensionRepository, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastCtx = ctx
	return m.extensions, m.extensionsErr
}

func (m *mockDiscoveryService) ListModuleRepositories(ctx context.Context) ([]domain.ModuleRepository, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastCtx = ctx
	return m.modules, m.modulesErr
}

func (m *mockDiscoveryService) Invalidate(_ context.Context) error {
	return m.invalidateErr
}

func (m *mockDiscoveryService) lastContext() context.Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastCtx
}
