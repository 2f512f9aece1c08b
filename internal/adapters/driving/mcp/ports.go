package mcp

import (
	"github.com/custodia-labs/gate-discovery/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Discovery runs the extension and module pipelines.
	Discovery driving.DiscoveryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Discovery == nil {
		return ErrMissingDiscoveryService
	}
	return nil
}
