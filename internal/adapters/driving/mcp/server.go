package mcp

import (
	"context"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/gate-discovery/internal/adapters/driving/httpapi"
)

// Version is reported in the MCP initialize handshake.
const Version = "0.1.0"

// serverName identifies this implementation to MCP clients.
const serverName = "gate-discovery"

// Server exposes the discovery pipelines as MCP tools and resources.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates an MCP server backed by ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(&mcp.Implementation{Name: serverName, Version: Version}, nil),
	}
	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves JSON-RPC over stdio until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns the streamable HTTP transport for this server.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)
}

// ListenHTTP binds addr and returns an HTTP server for the streamable
// transport, sharing the discovery API's middleware and shutdown handling.
// Sessions are long-lived, so no request timeout applies.
func (s *Server) ListenHTTP(addr string) (*httpapi.Server, error) {
	server := httpapi.NewHandlerServer(addr, s.Handler(), 0)
	if err := server.Start(); err != nil {
		return nil, err
	}
	return server, nil
}
