// Package mcp provides an MCP (Model Context Protocol) server adapter for gate-discovery.
// It exposes the discovery pipelines as tools and resources so assistants can
// browse Gate extensions and Go modules.
package mcp

import "errors"

// ErrMissingDiscoveryService is returned when the discovery service is not provided.
var ErrMissingDiscoveryService = errors.New("mcp: discovery service is required")
