// Package cli provides the gate-discovery command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/gate-discovery/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

var (
	configPath      string
	configOverrides []string
	verbose         bool
)

// annotationNoServices marks commands that run without wired services.
const annotationNoServices = "no-services"

var rootCmd = &cobra.Command{
	Use:   "gate-discovery",
	Short: "Discover Gate extensions and Go modules on GitHub",
	Long: `gate-discovery finds community projects for the Gate proxy on GitHub.

It lists repositories tagged with the gate-extension topic and repositories
whose go.mod requires go.minekube.com/gate, authenticating as a GitHub App
and caching results so repeated lookups stay within the API rate limits.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setupServices,
	PersistentPostRunE: teardownServices,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"config file (default ~/.gate-discovery/config.toml)")
	rootCmd.PersistentFlags().StringArrayVar(&configOverrides, "set", nil,
		"override a config key for this run (key=value, repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func setupServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if !needsServices(cmd) {
		return nil
	}
	// Already wired, either by a previous command or by tests.
	if discoveryService != nil {
		return nil
	}

	svc, err := Wire(configPath, configOverrides...)
	if err != nil {
		return err
	}
	SetServices(svc)
	ownedServices = svc
	return nil
}

func needsServices(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, skip := c.Annotations[annotationNoServices]; skip {
			return false
		}
		if c.Name() == "help" || c.Name() == "completion" {
			return false
		}
	}
	return true
}

func teardownServices(_ *cobra.Command, _ []string) error {
	if ownedServices == nil {
		return nil
	}
	err := ownedServices.Close()
	ownedServices = nil
	SetServices(&Services{})
	return err
}
