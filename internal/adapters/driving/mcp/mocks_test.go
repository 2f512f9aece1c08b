package mcp

import (
	"context"

	"github.com/custodia-labs/gate-discovery/internal/core/domain"
)

// mockDiscoveryService is a mock implementation of driving.DiscoveryService.
type mockDiscoveryService struct {
	extensions  []domain.ExtensionRepository
	modules     []domain.ModuleRepository
	err         error
	invalidated int
}

func (m *mockDiscoveryService) ListExtensionRepositories(_ context.Context) ([]domain.ExtensionRepository, error) {
	return m.extensions, m.err
}

func (m *mockDiscoveryService) ListModuleRepositories(_ context.Context) ([]domain.ModuleRepository, error) {
	return m.modules, m.err
}

func (m *mockDiscoveryService) Invalidate(_ context.Context) error {
	if m.err != nil {
		return m.err
	}
	m.invalidated++
	return nil
}

func sampleModules() []domain.ModuleRepository {
	return []domain.ModuleRepository{
		{Name: "proxy-a", Owner: "alice", Description: domain.StringPtr("A"), Stars: 3, URL: "https://github.com/alice/proxy-a"},
		{Name: "proxy-b", Owner: "bob", Description: domain.StringPtr(domain.NoDescription), Stars: 1, URL: "https://github.com/bob/proxy-b"},
		{Name: "proxy-c", Owner: "Alice", Description: domain.StringPtr("C"), Stars: 0, URL: "https://github.com/Alice/proxy-c"},
	}
}
