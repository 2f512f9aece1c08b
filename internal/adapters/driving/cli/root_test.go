package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gate-discovery/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/gate-discovery/internal/core/domain"
	"github.com/custodia-labs/gate-discovery/internal/core/services"
)

// mockDiscoveryService implements driving.DiscoveryService for testing.
type mockDiscoveryService struct {
	mu          sync.Mutex
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
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.invalidated++
	return nil
}

// mockTokenInvalidator counts invalidations.
type mockTokenInvalidator struct {
	calls int
}

func (m *mockTokenInvalidator) Invalidate(_ context.Context) error {
	m.calls++
	return nil
}

// testServices bundles the mocks installed by setupTestServices.
type testServices struct {
	discovery *mockDiscoveryService
	tokens    *mockTokenInvalidator
	store     *memory.KVStore
	config    *memory.ConfigStore
}

// setupTestServices installs mock services and returns them with a cleanup func.
func setupTestServices() (*testServices, func()) {
	ts := &testServices{
		discovery: &mockDiscoveryService{
			extensions: []domain.ExtensionRepository{
				{Name: "gate-lite", Owner: "minekube", Description: domain.StringPtr("Lite mode"), Stars: 42,
					URL: "https://github.com/minekube/gate-lite"},
			},
			modules: []domain.ModuleRepository{
				{Name: "proxy", Owner: "alice", Description: domain.StringPtr(domain.NoDescription), Stars: 3,
					URL: "https://github.com/alice/proxy"},
			},
		},
		tokens: &mockTokenInvalidator{},
		store:  memory.NewKVStore(),
		config: memory.NewConfigStore(),
	}

	SetServices(&Services{
		Settings:  services.NewSettingsService(ts.config),
		Discovery: ts.discovery,
		Tokens:    ts.tokens,
		Store:     ts.store,
	})

	return ts, func() {
		SetServices(&Services{})
	}
}

// execute runs the root command with args and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetContext(context.Background())
		configPath, verbose = "", false
		configOverrides = nil
		discoverJSON, cacheClearAll, serveAddr = false, false, ""
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "gate-discovery", rootCmd.Use)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("config")
	require.NotNil(t, flag, "config flag should exist")
	assert.Equal(t, "c", flag.Shorthand)

	flag = rootCmd.PersistentFlags().Lookup("set")
	require.NotNil(t, flag, "set flag should exist")
	assert.Equal(t, "stringArray", flag.Value.Type())

	flag = rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, flag, "verbose flag should exist")
	assert.Equal(t, "false", flag.DefValue)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}

	for _, want := range []string{"serve", "discover", "cache", "config", "mcp", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestNeedsServices(t *testing.T) {
	assert.False(t, needsServices(versionCmd))
	assert.True(t, needsServices(discoverExtensionsCmd))
	assert.True(t, needsServices(serveCmd))
}

func TestSetServices(t *testing.T) {
	ts, cleanup := setupTestServices()

	assert.Equal(t, ts.discovery, discoveryService)
	assert.Equal(t, ts.tokens, tokenManager)
	assert.Equal(t, ts.store, cacheStore)
	assert.Nil(t, keyFile)

	cleanup()

	assert.Nil(t, discoveryService)
	assert.Nil(t, settingsService)
	assert.Nil(t, tokenManager)
	assert.Nil(t, cacheStore)
}
