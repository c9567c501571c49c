package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/customs/internal/config"
	"github.com/JonMunkholm/customs/internal/core"
	"github.com/JonMunkholm/customs/internal/logging"
	"github.com/JonMunkholm/customs/internal/store"
	"github.com/JonMunkholm/customs/internal/web"
	"github.com/joho/godotenv"
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
		"store_driver", cfg.Store.Driver,
		"document_max_concurrent", cfg.Document.MaxConcurrent,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)
	slog.Debug("effective configuration", "config", cfg.String())

	ctx := context.Background()
	docs, err := store.Open(ctx, cfg.Store)
	if err != nil {
		slog.Error("failed to open store", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}
	defer closeStore(docs)
	slog.Info("store opened", "driver", cfg.Store.Driver)

	service := core.NewService(docs, cfg)

	if cfg.Tariff.SeedFile != "" {
		if err := seedTariffs(ctx, service, cfg.Tariff.SeedFile); err != nil {
			slog.Error("failed to seed tariffs", "file", cfg.Tariff.SeedFile, "error", err)
			closeStore(docs)
			os.Exit(1)
		}
	}

	server := web.NewServer(service, cfg, docs)

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}

		// Wait for in-flight documents to finish (with timeout)
		status := service.Limiter().Status()
		if status.Active > 0 {
			slog.Info("waiting for document generation to complete", "active", status.Active)
			if err := service.Limiter().WaitForDrain(shutdownCtx); err != nil {
				slog.Warn("document generation did not complete in time", "error", err)
			}
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		closeStore(docs)
		os.Exit(1)
	}
	<-done
	slog.Info("server stopped")
}

// closeStore flushes and closes the store. os.Exit skips deferred calls, so
// every exit path after the store is opened goes through here.
func closeStore(docs io.Closer) {
	if err := docs.Close(); err != nil {
		slog.Error("failed to close store", "error", err)
	}
}

// seedTariffs merges the tariff CSV at path into the stored table.
func seedTariffs(ctx context.Context, service *core.Service, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	result, err := service.ImportTariffs(ctx, f)
	if err != nil {
		return err
	}
	slog.Info("tariffs seeded",
		"file", path,
		"imported", result.Imported,
		"skipped", result.Skipped,
		"total", result.Total,
	)
	return nil
}
