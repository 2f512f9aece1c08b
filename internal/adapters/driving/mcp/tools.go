package mcp

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/gate-discovery/internal/core/domain"
)

// ListInput is the input schema for the listing tools.
type ListInput struct {
	Owner string `json:"owner,omitempty" jsonschema:"only return repositories owned by this account (case-insensitive)"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of repositories to return (default all)"`
}

// ListOutput is the output schema for the listing tools.
type ListOutput struct {
	Repositories []domain.Repository `json:"repositories"`
	Count        int                 `json:"count"`
}

// ClearCacheInput is the (empty) input schema for the clear_cache tool.
type ClearCacheInput struct{}

// ClearCacheOutput is the output schema for the clear_cache tool.
type ClearCacheOutput struct {
	Cleared bool `json:"cleared"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_extensions",
		Description: "List GitHub repositories tagged with the gate-extension topic",
	}, s.handleListExtensions)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_go_modules",
		Description: "List GitHub repositories whose go.mod requires go.minekube.com/gate",
	}, s.handleListGoModules)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "clear_cache",
		Description: "Drop cached discovery results so the next listing refetches from GitHub",
	}, s.handleClearCache)
}

func (s *Server) handleListExtensions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	repos, err := s.ports.Discovery.ListExtensionRepositories(ctx)
	if err != nil {
		return nil, ListOutput{}, err
	}
	return nil, filterRepositories(repos, input), nil
}

func (s *Server) handleListGoModules(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	repos, err := s.ports.Discovery.ListModuleRepositories(ctx)
	if err != nil {
		return nil, ListOutput{}, err
	}
	return nil, filterRepositories(repos, input), nil
}

func (s *Server) handleClearCache(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ClearCacheInput,
) (*mcp.CallToolResult, ClearCacheOutput, error) {
	if err := s.ports.Discovery.Invalidate(ctx); err != nil {
		return nil, ClearCacheOutput{}, err
	}
	return nil, ClearCacheOutput{Cleared: true}, nil
}

// filterRepositories applies the owner filter and limit, keeping result order.
func filterRepositories(repos []domain.Repository, input ListInput) ListOutput {
	out := make([]domain.Repository, 0, len(repos))
	for _, repo := range repos {
		if input.Owner != "" && !strings.EqualFold(repo.Owner, input.Owner) {
			continue
		}
		out = append(out, repo)
		if input.Limit > 0 && len(out) == input.Limit {
			break
		}
	}
	return ListOutput{Repositories: out, Count: len(out)}
}
