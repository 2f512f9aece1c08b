// Package badger provides a Badger-backed implementation of driven.KeyValueStore.
//
// Entries are written with Badger's native TTL so expired keys disappear
// without a sweep. The value log is compacted by RunGC. An in-memory
// variant is available for tests and ephemeral deployments.
//
// By default, the database lives at ~/.gate-discovery/data/badger
package badger
