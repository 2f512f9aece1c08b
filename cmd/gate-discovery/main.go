// Command gate-discovery serves and queries the Gate extension and module
// discovery pipelines.
package main

import (
	"os"

	"github.com/custodia-labs/gate-discovery/internal/adapters/driving/cli"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
