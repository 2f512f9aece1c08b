// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - KeyValueStore: Shared TTL-aware cache (memory, SQLite, Badger)
//   - CredentialIssuer: Issues short-lived GitHub App credentials
//   - CodeHost: Upstream repository and code search
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - TokenProvider: Supplies bearer tokens to CodeHost calls. Core builds
//     one from a CredentialIssuer and a KeyValueStore.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
