// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The discovery subsystem is built from four pieces:
//
//   - TokenStore: one cached credential inside the shared KeyValueStore
//   - TokenManager: returns a cached credential or issues a fresh one
//   - ResultCache: read-through JSON cache that never fails its caller
//   - DiscoveryService: the repository and module search pipelines
//
// Services are pure Go with no CGO dependencies.
package services
