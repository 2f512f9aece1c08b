package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gate-discovery/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long: `Inspect the resolved configuration.

Values come from the config file (default ~/.gate-discovery/config.toml),
overridden by environment variables such as GITHUB_APP_ID,
GITHUB_APP_PRIVATE_KEY and GATE_DISCOVERY_CACHE.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show resolved settings",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	cmd.Printf("  Request timeout: %s\n", settings.Server.RequestTimeout)
	cmd.Println()

	cmd.Println("[Cache]")
	cmd.Printf("  Backend: %s\n", settings.Cache.Backend)
	if settings.Cache.Backend != domain.CacheBackendMemory {
		cmd.Printf("  Directory: %s\n", settings.Cache.Dir)
	}
	cmd.Printf("  Result TTL: %s\n", settings.Cache.ResultTTL)
	cmd.Println()

	cmd.Println("[GitHub]")
	cmd.Printf("  App ID: %s\n", valueOrUnset(settings.GitHub.AppID))
	if settings.GitHub.PrivateKey != "" {
		cmd.Printf("  Private key: %s\n", maskSecret(settings.GitHub.PrivateKey))
	} else {
		cmd.Printf("  Private key: (not set)\n")
	}
	if settings.GitHub.PrivateKeyPath != "" {
		cmd.Printf("  Private key path: %s\n", settings.GitHub.PrivateKeyPath)
	}
	if settings.GitHub.InstallationID > 0 {
		cmd.Printf("  Installation ID: %d\n", settings.GitHub.InstallationID)
		cmd.Printf("  Credential: installation token\n")
	} else {
		cmd.Printf("  Credential: app JWT\n")
	}
	if settings.GitHub.BaseURL != "" {
		cmd.Printf("  API URL: %s\n", settings.GitHub.BaseURL)
	}
	cmd.Printf("  Requests per second: %g\n", settings.GitHub.RequestsPerSecond)
	status := "configured"
	if !settings.GitHub.HasIdentity() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Discovery]")
	cmd.Printf("  Enrich concurrency: %d\n", settings.Discovery.EnrichConcurrency)

	return nil
}

func valueOrUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

// maskSecret hides all but the ends of a secret.
func maskSecret(secret string) string {
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
