package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	pdhttp "github.com/sagecrest/pulsedash/internal/adapter/http"
	"github.com/sagecrest/pulsedash/internal/adapter/otel"
	"github.com/sagecrest/pulsedash/internal/adapter/postgres"
	"github.com/sagecrest/pulsedash/internal/adapter/ristretto"
	"github.com/sagecrest/pulsedash/internal/adapter/ws"
	"github.com/sagecrest/pulsedash/internal/config"
	"github.com/sagecrest/pulsedash/internal/logger"
	"github.com/sagecrest/pulsedash/internal/service"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "admin" {
		if err := runAdmin(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		return
	}

	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	slog.SetDefault(logger.New(cfg.Logging))
	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Logging.Level,
		"pg_max_conns", cfg.Postgres.MaxConns,
	)

	ctx := context.Background()

	// --- Telemetry ---

	shutdownOtel, err := otel.Init(ctx, cfg.Otel, cfg.Logging.Service)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOtel(shutdownCtx); err != nil {
			slog.Error("otel shutdown", "error", err)
		}
	}()

	meters, err := otel.NewMetrics()
	if err != nil {
		return fmt.Errorf("otel metrics: %w", err)
	}

	// --- Infrastructure ---

	if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	slog.Info("migrations applied")

	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()
	slog.Info("postgres connected")

	snapCache, err := ristretto.New(cfg.Cache.MaxSizeMB << 20)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer snapCache.Close()

	// --- Services ---

	hub := ws.NewHub()
	store := postgres.NewStore(pool)
	authSvc := service.NewAuthService(store, meters)
	agg := service.NewAggregator(store, snapCache, cfg.Cache.SnapshotTTL, meters)
	srv := pdhttp.NewServer(
		authSvc,
		agg,
		service.NewMonthlyService(store, agg, hub),
		service.NewOverrideService(store, agg, hub, meters),
		service.NewGoalService(store, agg, hub),
		service.NewContactService(store, hub, meters),
		service.NewEntityService(store, agg, hub),
		hub,
	)

	lim := pdhttp.NewLimiters(cfg.Rate)
	defer lim.Auth.StartCleanup(cfg.Rate.CleanupInterval, cfg.Rate.MaxIdleTime)()
	defer lim.Contact.StartCleanup(cfg.Rate.CleanupInterval, cfg.Rate.MaxIdleTime)()
	defer lim.Admin.StartCleanup(cfg.Rate.CleanupInterval, cfg.Rate.MaxIdleTime)()

	// --- HTTP ---

	r := chi.NewRouter()
	r.Use(pdhttp.RequestID)
	r.Use(pdhttp.Logger)
	r.Use(pdhttp.SecurityHeaders)
	r.Use(pdhttp.CORS(cfg.Server.AllowedOrigins))
	r.Use(otel.HTTPMiddleware("pulsedash"))

	pdhttp.MountRoutes(r, srv, lim, cfg.Server.APIKey)
	pdhttp.MountStatic(r)

	addr := ":" + cfg.Server.Port
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return httpSrv.Shutdown(shutdownCtx)
}
