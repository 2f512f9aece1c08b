// Package domain defines the core business entities for gate-discovery.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Repository: A discovered extension or Go module repository
//   - CodeMatch: One typed item from an upstream code search
//   - SearchQuery: A static upstream search descriptor
//   - Credential: A short-lived upstream bearer token
//   - Settings: Typed application configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
