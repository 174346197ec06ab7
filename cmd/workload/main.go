// Package main is the entry point for the sample workload generator. It
// provisions a demo ecommerce schema on the monitored ClickHouse instance,
// then keeps issuing a randomized mix of analytical queries, inserts and
// mutations so the dashboard has live system-table activity to show.
package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/robfig/cron/v3"

	"github.com/benjaminwootton/QueryDog-sub000/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
	}

	cfg, err := loadWorkloadConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	if err := ensureDatabase(ctx, cfg); err != nil {
		return err
	}

	db := openDB(cfg, cfg.Database)
	defer db.Close() //nolint:errcheck
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping clickhouse at %s: %w", cfg.ClickHouse.Addr(), err)
	}
	logger.Info("connected to clickhouse", "addr", cfg.ClickHouse.Addr(), "database", cfg.Database)

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("migrate demo schema: %w", err)
	}
	logger.Info("demo schema ready", "database", cfg.Database)

	g := newGenerator(db, logger)
	if err := g.seed(ctx, cfg.SeedCustomers, cfg.SeedPageViews); err != nil {
		return fmt.Errorf("seed demo data: %w", err)
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger})))
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", cfg.BatchInterval), func() { g.runBatch(ctx) }); err != nil {
		return fmt.Errorf("schedule batch job: %w", err)
	}
	c.Start()
	defer c.Stop()

	logger.Info("workload running",
		"target_ops_per_second", cfg.OpsPerSecond,
		"batch_interval", cfg.BatchInterval.String())
	g.loadLoop(ctx, cfg.OpsPerSecond)
	logger.Info("workload stopped")
	return nil
}

// openDB opens a database/sql handle against the given database, with the
// same connection options the dashboard server uses.
func openDB(cfg *workloadConfig, database string) *sql.DB {
	opts := &clickhouse.Options{
		Addr: []string{cfg.ClickHouse.Addr()},
		Auth: clickhouse.Auth{
			Database: database,
			Username: cfg.ClickHouse.User,
			Password: cfg.ClickHouse.Password,
		},
		DialTimeout: cfg.ClickHouse.DialTimeout,
		Compression: &clickhouse.Compression{Method: clickhouse.CompressionLZ4},
	}
	if cfg.ClickHouse.Secure {
		opts.TLS = &tls.Config{ServerName: cfg.ClickHouse.Host}
	}
	return clickhouse.OpenDB(opts)
}

// ensureDatabase creates the demo database through a connection to the
// default database, so the real handle can open against it directly.
func ensureDatabase(ctx context.Context, cfg *workloadConfig) error {
	db := openDB(cfg, cfg.ClickHouse.Database)
	defer db.Close() //nolint:errcheck

	if _, err := db.ExecContext(ctx, "CREATE DATABASE IF NOT EXISTS "+cfg.Database); err != nil {
		return fmt.Errorf("create database %s: %w", cfg.Database, err)
	}
	return nil
}

// cronLogger adapts slog to the cron scheduler's logging interface.
type cronLogger struct {
	l *slog.Logger
}

func (c cronLogger) Info(msg string, kv ...any) {
	c.l.Debug(msg, kv...)
}

func (c cronLogger) Error(err error, msg string, kv ...any) {
	c.l.Error(msg, append(kv, "error", err)...)
}
