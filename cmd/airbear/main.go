// main is the entry point of the AirBear web front-end.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Open the submission attempt journal (SQLite or in-memory)
//  4. Register all HTTP routes
//  5. Start the HTTP server in a separate goroutine
//  6. Block the main goroutine until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/airbear --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/airbear
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aanand-mishra/airbear/internal/config"
	"github.com/aanand-mishra/airbear/internal/form"
	"github.com/aanand-mishra/airbear/internal/http/router"
	"github.com/aanand-mishra/airbear/internal/metrics"
	"github.com/aanand-mishra/airbear/internal/storage"
	"github.com/aanand-mishra/airbear/internal/storage/memory"
	"github.com/aanand-mishra/airbear/internal/storage/sqlite"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting airbear",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Initialise Attempt Journal ─────────────────────────────────────
	store, err := openStorage(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	// ── 4. Register HTTP Routes ───────────────────────────────────────────
	handler := router.New(router.Deps{
		Store:          store,
		Metrics:        metrics.New(),
		Mode:           formMode(cfg.Env),
		ExposeAttempts: cfg.Env == "dev",
	})

	server := &http.Server{
		Addr:         cfg.HTTPServer.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// ── 5. Start Server in a Goroutine ────────────────────────────────────
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 6. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// openStorage picks the SQLite journal when a storage path is configured
// and the in-memory one otherwise.
func openStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.StoragePath == "" {
		slog.Info("storage initialised", slog.String("backend", "memory"))
		return memory.New(memory.DefaultCapacity), nil
	}

	store, err := sqlite.New(cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("storage initialised",
		slog.String("backend", "sqlite"),
		slog.String("path", cfg.StoragePath))
	return store, nil
}

// formMode fails fast on malformed field values in development and
// coerces them everywhere else.
func formMode(env string) form.Mode {
	if env == "dev" {
		return form.Strict
	}
	return form.Lenient
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
