// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/ogrim/mimir/internal/api"
	"github.com/ogrim/mimir/internal/gate"
	"github.com/ogrim/mimir/internal/repository"
	"github.com/ogrim/mimir/internal/snapshot"
	"github.com/ogrim/mimir/internal/sse"
	"github.com/ogrim/mimir/internal/wikiservice"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("snapshot_path", cfg.Snapshot.Path),
		slog.Int("gate_taps", cfg.Gate.Taps),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Build repository and load the snapshot. A missing file just means a
	// fresh, empty collection.
	repo := repository.New()
	svc := wikiservice.NewService(repo, cfg.Snapshot.Path)

	if n, ok := svc.ReloadFromDisk(ctx); ok {
		logger.Info("Snapshot loaded", slog.Int("articles", n))
	} else {
		logger.Warn("No snapshot found, starting with an empty collection",
			slog.String("path", cfg.Snapshot.Path))
	}

	// Tap gate, locked at startup.
	keeper := gate.New(cfg.Gate.Taps, cfg.Gate.Window())

	// SSE broker.
	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	// Build API router.
	apiRouter := api.NewRouter(svc, keeper, broker, broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints.
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	// Static UI assets, when configured.
	if cfg.Static.Path != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.Static.Path)))
	}

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Watch the snapshot file so out-of-band edits show up without a restart.
	if cfg.Snapshot.Watch {
		g.Go(func() error {
			err := snapshot.Watch(gCtx, cfg.Snapshot.Path, logger, func() {
				n, _ := svc.ReloadFromDisk(gCtx)
				logger.Info("Snapshot reloaded", slog.Int("articles", n))
				broker.PublishCollectionReplaced("reloaded", n)
			})
			if err != nil {
				logger.Warn("Snapshot watcher unavailable", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
