package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gridbill/gridbill/internal/api"
	"github.com/gridbill/gridbill/internal/daemon"
	"github.com/gridbill/gridbill/internal/domain"
	"github.com/gridbill/gridbill/internal/logging"
	"github.com/gridbill/gridbill/internal/observability"
	"github.com/gridbill/gridbill/internal/store"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard server",
	Long:  `Start the HTTP server hosting the dashboard website and the accounts/payment API.`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := daemon.LoadConfig(configPath)
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Logging)

	var accounts domain.AccountStore
	switch cfg.Store.Backend {
	case "sqlite":
		db, err := store.OpenSQLite(cfg.Store.Path, nil)
		if err != nil {
			return fmt.Errorf("open account store: %w", err)
		}
		defer db.Close()
		accounts = db
		logger.Info("using sqlite account store", "path", cfg.Store.Path)
	default:
		accounts = store.NewMemory(nil)
		logger.Info("using in-memory account store")
	}

	server := api.NewServer(accounts, logger)
	server.SetAccountsDelay(time.Duration(cfg.API.AccountsDelayMS) * time.Millisecond)
	server.SetWebsiteDir(cfg.API.WebsiteDir)
	if cfg.API.Metrics {
		server.EnableMetrics(observability.New())
	}

	httpServer := &http.Server{
		Addr:              cfg.API.Addr(),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting http server", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(ctx)
}
