// Package file provides the TOML file implementation of driven.ConfigStore.
//
// Nested TOML tables are flattened to dot-notation keys ("github.app_id").
// Environment variables bound via DefaultEnvBindings override file values,
// so a deployment can run from environment alone.
package file
