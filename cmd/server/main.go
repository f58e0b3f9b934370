package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"caseboard/internal/config"
	"caseboard/internal/logging"
	"caseboard/internal/roster"
	"caseboard/internal/roster/snapshot"
	"caseboard/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"storage_driver", cfg.Storage.Driver,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	// Open the snapshot backend
	var snap snapshot.Snapshot
	switch strings.ToLower(cfg.Storage.Driver) {
	case "file":
		snap, err = snapshot.OpenFile(cfg.Storage.Path)
	default:
		snap, err = snapshot.OpenSQLite(cfg.Storage.Path)
	}
	if err != nil {
		slog.Error("failed to open storage", "driver", cfg.Storage.Driver, "path", cfg.Storage.Path, "error", err)
		os.Exit(1)
	}
	defer snap.Close()

	// Load the roster
	store, err := roster.Open(snap, slog.Default())
	if err != nil {
		slog.Error("failed to load roster", "error", err)
		os.Exit(1)
	}
	slog.Info("roster loaded", "clients", store.Len())

	server := web.NewServer(store, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
