package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gate-discovery/internal/core/domain"
	"github.com/custodia-labs/gate-discovery/internal/core/services"
)

var cacheClearAll bool

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the result cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop cached discovery results",
	Long: `Drops cached extension and module results so the next request
refetches from GitHub. With --all, cached GitHub credentials are dropped too.

Only persistent cache backends (sqlite, badger) keep entries across runs.`,
	Args: cobra.NoArgs,
	RunE: runCacheClear,
}

func init() {
	cacheClearCmd.Flags().BoolVar(&cacheClearAll, "all", false, "also drop cached credentials")
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	if discoveryService == nil {
		return errors.New("discovery service not configured")
	}

	ctx := cmd.Context()
	if err := discoveryService.Invalidate(ctx); err != nil {
		return fmt.Errorf("failed to clear results: %w", err)
	}
	cmd.Println("Cleared cached discovery results.")

	if !cacheClearAll {
		return nil
	}
	if cacheStore == nil {
		return errors.New("cache store not configured")
	}
	for _, kind := range []domain.CredentialKind{domain.CredentialApp, domain.CredentialInstallation} {
		if err := services.NewTokenStore(cacheStore, kind).Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear %s credential: %w", kind, err)
		}
	}
	cmd.Println("Cleared cached credentials.")

	return nil
}
