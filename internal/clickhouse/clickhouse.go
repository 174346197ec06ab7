// Package clickhouse opens native-protocol connections to the monitored
// server and scans arbitrary result sets into the untyped row model.
package clickhouse

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"

	"github.com/benjaminwootton/QueryDog-sub000/internal/config"
)

// Conn is the native-protocol connection handle used throughout the
// repositories.
type Conn = clickhouse.Conn

// Open connects to ClickHouse over the native protocol and verifies the
// connection with a ping before handing it out.
func Open(ctx context.Context, cfg config.ClickHouseConfig) (Conn, error) {
	opts := &clickhouse.Options{
		Addr: []string{cfg.Addr()},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.User,
			Password: cfg.Password,
		},
		DialTimeout: cfg.DialTimeout,
		Compression: &clickhouse.Compression{Method: clickhouse.CompressionLZ4},
	}
	if cfg.Secure {
		opts.TLS = &tls.Config{ServerName: cfg.Host}
	}

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("connect to clickhouse at %s: %w", cfg.Addr(), err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := conn.Ping(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping clickhouse at %s: %w", cfg.Addr(), err)
	}
	return conn, nil
}

// WithSettings attaches per-query ClickHouse settings to the context.
func WithSettings(ctx context.Context, settings map[string]any) context.Context {
	return clickhouse.Context(ctx, clickhouse.WithSettings(clickhouse.Settings(settings)))
}
