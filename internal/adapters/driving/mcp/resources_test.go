package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gate-discovery/internal/core/domain"
)

func TestExtractOwner(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid owner URI",
			uri:      "gate://go-modules/alice",
			expected: "alice",
		},
		{
			name:     "invalid prefix",
			uri:      "file://go-modules/alice",
			expected: "",
		},
		{
			name:     "missing owner",
			uri:      "gate://go-modules/",
			expected: "",
		},
		{
			name:     "nested path",
			uri:      "gate://go-modules/alice/proxy",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractOwner(tt.uri)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func decodeRepositories(t *testing.T, result *mcp.ReadResourceResult) []domain.Repository {
	t.Helper()
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)

	var repos []domain.Repository
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &repos))
	return repos
}

func TestServer_handleExtensionsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("empty list renders as array", func(t *testing.T) {
		server := newTestServer(t, &mockDiscoveryService{})

		result, err := server.handleExtensionsResource(ctx, makeReadResourceRequest("gate://extensions"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
		assert.Equal(t, "gate://extensions", result.Contents[0].URI)
	})

	t.Run("returns extensions", func(t *testing.T) {
		svc := &mockDiscoveryService{extensions: []domain.ExtensionRepository{
			{Name: "gate-lite", Owner: "minekube", Stars: 10, URL: "https://github.com/minekube/gate-lite"},
		}}
		server := newTestServer(t, svc)

		result, err := server.handleExtensionsResource(ctx, makeReadResourceRequest("gate://extensions"))

		require.NoError(t, err)
		assert.Equal(t, svc.extensions, decodeRepositories(t, result))
	})

	t.Run("returns error on pipeline failure", func(t *testing.T) {
		server := newTestServer(t, &mockDiscoveryService{err: errors.New("boom")})

		_, err := server.handleExtensionsResource(ctx, makeReadResourceRequest("gate://extensions"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing extensions")
	})
}

func TestServer_handleGoModulesResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns modules", func(t *testing.T) {
		svc := &mockDiscoveryService{modules: sampleModules()}
		server := newTestServer(t, svc)

		result, err := server.handleGoModulesResource(ctx, makeReadResourceRequest("gate://go-modules"))

		require.NoError(t, err)
		assert.Equal(t, svc.modules, decodeRepositories(t, result))
	})

	t.Run("returns error on pipeline failure", func(t *testing.T) {
		server := newTestServer(t, &mockDiscoveryService{err: errors.New("boom")})

		_, err := server.handleGoModulesResource(ctx, makeReadResourceRequest("gate://go-modules"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing go modules")
	})
}

func TestServer_handleOwnerModulesResource(t *testing.T) {
	ctx := context.Background()

	t.Run("filters by owner", func(t *testing.T) {
		server := newTestServer(t, &mockDiscoveryService{modules: sampleModules()})

		result, err := server.handleOwnerModulesResource(ctx, makeReadResourceRequest("gate://go-modules/alice"))

		require.NoError(t, err)
		repos := decodeRepositories(t, result)
		require.Len(t, repos, 2)
		assert.Equal(t, "proxy-a", repos[0].Name)
		assert.Equal(t, "proxy-c", repos[1].Name)
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		server := newTestServer(t, &mockDiscoveryService{modules: sampleModules()})

		_, err := server.handleOwnerModulesResource(ctx, makeReadResourceRequest("gate://invalid/uri"))

		require.Error(t, err)
	})

	t.Run("returns error on pipeline failure", func(t *testing.T) {
		server := newTestServer(t, &mockDiscoveryService{err: errors.New("boom")})

		_, err := server.handleOwnerModulesResource(ctx, makeReadResourceRequest("gate://go-modules/alice"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing go modules")
	})
}
