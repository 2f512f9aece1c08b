package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/gate-discovery/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for gate-discovery resources.
	uriScheme = "gate://"

	mimeJSON = "application/json"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "extensions",
		Name:        "extensions",
		Description: "Repositories tagged with the gate-extension topic",
		MIMEType:    mimeJSON,
	}, s.handleExtensionsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "go-modules",
		Name:        "go-modules",
		Description: "Repositories whose go.mod requires Gate",
		MIMEType:    mimeJSON,
	}, s.handleGoModulesResource)

	// Template for one owner's modules.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "go-modules/{owner}",
		Name:        "owner-go-modules",
		Description: "Gate Go modules published by a specific owner",
		MIMEType:    mimeJSON,
	}, s.handleOwnerModulesResource)
}

func (s *Server) handleExtensionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	repos, err := s.ports.Discovery.ListExtensionRepositories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing extensions: %w", err)
	}
	return jsonResource(req.Params.URI, repos)
}

func (s *Server) handleGoModulesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	repos, err := s.ports.Discovery.ListModuleRepositories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing go modules: %w", err)
	}
	return jsonResource(req.Params.URI, repos)
}

func (s *Server) handleOwnerModulesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract owner from URI: gate://go-modules/{owner}
	owner := extractOwner(req.Params.URI)
	if owner == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	repos, err := s.ports.Discovery.ListModuleRepositories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing go modules: %w", err)
	}

	filtered := filterRepositories(repos, ListInput{Owner: owner})
	return jsonResource(req.Params.URI, filtered.Repositories)
}

func jsonResource(uri string, repos []domain.Repository) (*mcp.ReadResourceResult, error) {
	if repos == nil {
		repos = []domain.Repository{}
	}

	data, err := json.MarshalIndent(repos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling repositories: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}, nil
}

// extractOwner extracts the owner from a URI like gate://go-modules/{owner}.
func extractOwner(uri string) string {
	const prefix = uriScheme + "go-modules/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	owner := strings.TrimPrefix(uri, prefix)
	if strings.Contains(owner, "/") {
		return ""
	}
	return owner
}
