package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gate-discovery/internal/adapters/driven/storage"
	"github.com/custodia-labs/gate-discovery/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/gate-discovery/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the discovery HTTP API",
	Long: `Start the HTTP API serving the discovery endpoints:

  GET /api/extensions   repositories tagged with gate-extension
  GET /api/go-modules   repositories whose go.mod requires Gate
  GET /healthz          liveness probe

Responses carry permissive CORS headers. Failures return status 500 with a
plain-text body starting with "Error fetching data: ".`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (default from config, :8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if discoveryService == nil || settingsService == nil {
		return errors.New("discovery service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	addr := settings.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cacheStore != nil {
		storage.StartMaintenance(ctx, cacheStore, storage.DefaultMaintenanceInterval)
	}

	if keyFile != nil && tokenManager != nil {
		go func() {
			err := keyFile.Watch(ctx, func(ctx context.Context) {
				if err := tokenManager.Invalidate(ctx); err != nil {
					logger.Warn("drop cached credential: %v", err)
				}
			})
			if err != nil {
				logger.Warn("private key watch stopped: %v", err)
			}
		}()
	}

	server := httpapi.NewServer(addr, discoveryService, settings.Server.RequestTimeout)
	if err := server.Start(); err != nil {
		return err
	}
	cmd.Printf("Listening on http://%s\n", server.Addr())

	return server.Serve(ctx)
}
