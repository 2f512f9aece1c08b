package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gate-discovery/internal/core/domain"
)

var discoverJSON bool

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Run a discovery pipeline and print the results",
	Long: `Runs one discovery pipeline once and prints the repositories found.
Results come from the cache when a fresh entry exists.`,
}

var discoverExtensionsCmd = &cobra.Command{
	Use:   "extensions",
	Short: "List repositories tagged with gate-extension",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if discoveryService == nil {
			return errors.New("discovery service not configured")
		}
		repos, err := discoveryService.ListExtensionRepositories(cmd.Context())
		if err != nil {
			return fmt.Errorf("discovery failed: %w", err)
		}
		return outputRepositories(cmd, repos)
	},
}

var discoverModulesCmd = &cobra.Command{
	Use:     "modules",
	Aliases: []string{"go-modules"},
	Short:   "List repositories whose go.mod requires Gate",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if discoveryService == nil {
			return errors.New("discovery service not configured")
		}
		repos, err := discoveryService.ListModuleRepositories(cmd.Context())
		if err != nil {
			return fmt.Errorf("discovery failed: %w", err)
		}
		return outputRepositories(cmd, repos)
	},
}

func init() {
	discoverCmd.PersistentFlags().BoolVar(&discoverJSON, "json", false, "output results as JSON")
	discoverCmd.AddCommand(discoverExtensionsCmd)
	discoverCmd.AddCommand(discoverModulesCmd)
	rootCmd.AddCommand(discoverCmd)
}

func outputRepositories(cmd *cobra.Command, repos []domain.Repository) error {
	if discoverJSON {
		return outputRepositoriesJSON(cmd, repos)
	}
	return outputRepositoriesTable(cmd, repos)
}

func outputRepositoriesJSON(cmd *cobra.Command, repos []domain.Repository) error {
	if repos == nil {
		repos = []domain.Repository{}
	}
	data, err := json.MarshalIndent(repos, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputRepositoriesTable(cmd *cobra.Command, repos []domain.Repository) error {
	if len(repos) == 0 {
		cmd.Println("No repositories found.")
		return nil
	}

	for i := range repos {
		// Format: [N] owner/name (★ stars)
		cmd.Printf("  [%d] %s (★ %d)\n", i+1, repos[i].FullName(), repos[i].Stars)
		if desc := repos[i].DescriptionOr(""); desc != "" {
			cmd.Printf("      %s\n", desc)
		}
		cmd.Printf("      %s\n", repos[i].URL)
		cmd.Println()
	}
	cmd.Printf("%d repositories\n", len(repos))

	return nil
}
