// Package main is the entry point for the Query Dog server. It connects to
// the monitored ClickHouse instance, wires the application, and serves the
// JSON API under /api and the server-rendered dashboard under /ui.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/benjaminwootton/QueryDog-sub000/internal/api"
	"github.com/benjaminwootton/QueryDog-sub000/internal/app"
	"github.com/benjaminwootton/QueryDog-sub000/internal/clickhouse"
	"github.com/benjaminwootton/QueryDog-sub000/internal/config"
	"github.com/benjaminwootton/QueryDog-sub000/internal/middleware"
	"github.com/benjaminwootton/QueryDog-sub000/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file (if present)
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var logger *slog.Logger
	if cfg.IsProduction() {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, opts))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	slog.SetDefault(logger)
	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	conn, err := clickhouse.Open(ctx, cfg.ClickHouse)
	if err != nil {
		return fmt.Errorf("clickhouse: %w", err)
	}
	defer conn.Close() //nolint:errcheck
	logger.Info("connected to clickhouse",
		"addr", cfg.ClickHouse.Addr(), "user", cfg.ClickHouse.User, "secure", cfg.ClickHouse.Secure)

	a := app.New(app.Deps{Cfg: cfg, CH: conn, Logger: logger})
	a.Start(ctx)
	defer a.Stop()

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      newRouter(cfg, logger, a, conn),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("query dog listening", "addr", cfg.ListenAddr, "dashboard", dashboardURL(cfg.ListenAddr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// newRouter assembles the HTTP surface: shared middleware, the JSON API
// under /api, the dashboard under /ui, and the health and metrics probes.
func newRouter(cfg *config.Config, logger *slog.Logger, a *app.App, ping api.Pinger) chi.Router {
	apiHandler := api.NewHandler(
		logger.With("component", "api"),
		ping,
		a.Services.QueryLog,
		a.Services.PartLog,
		a.Services.Tables,
		a.Services.System,
		a.Services.Browser,
		a.Services.Analyze,
	)
	uiHandler := ui.NewHandler(
		logger.With("component", "ui"),
		a.Store,
		a.Coordinator,
		a.Services.QueryLog,
		a.Services.PartLog,
		a.Services.Tables,
		a.Services.System,
		a.Services.Browser,
		a.Services.Analyze,
		cfg.RefreshInterval,
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(middleware.RateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
	}))

	r.Get("/healthz", apiHandler.Health)
	r.Method(http.MethodGet, "/debug/metrics", promhttp.Handler())

	r.Mount("/api", apiHandler.Routes())
	r.Route("/ui", func(r chi.Router) {
		ui.MountRoutes(r, uiHandler)
	})
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui", http.StatusFound)
	})

	return r
}

// dashboardURL renders the startup hint for a configured listen address.
// Wildcard and empty hosts become localhost so the printed URL is browsable.
func dashboardURL(listenAddr string) string {
	addr := strings.TrimSpace(listenAddr)
	if addr == "" {
		addr = ":8080"
	}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr + "/ui"
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + "/ui"
}
