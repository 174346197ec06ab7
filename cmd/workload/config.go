package main

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/benjaminwootton/QueryDog-sub000/internal/config"
)

// identRe matches bare ClickHouse identifiers. The demo database name is
// interpolated into DDL, so anything else is rejected up front.
var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// workloadConfig holds the generator settings. The ClickHouse block reuses
// the server's variable names so a single .env drives both binaries.
type workloadConfig struct {
	ClickHouse config.ClickHouseConfig

	Database      string        // demo schema to create and load
	OpsPerSecond  float64       // target rate for the mixed query loop
	BatchInterval time.Duration // cadence of the scheduled insert batches
	SeedCustomers int
	SeedPageViews int
}

func loadWorkloadConfig() (*workloadConfig, error) {
	cfg := &workloadConfig{
		ClickHouse: config.ClickHouseConfig{
			Host:        "localhost",
			Port:        9000,
			User:        "default",
			Password:    os.Getenv("CLICKHOUSE_PASSWORD"),
			Database:    "default",
			DialTimeout: 10 * time.Second,
		},
		Database:      "ecommerce",
		OpsPerSecond:  15,
		BatchInterval: 15 * time.Second,
		SeedCustomers: 10,
		SeedPageViews: 20,
	}

	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		cfg.ClickHouse.Host = v
	}
	if v := strings.ToLower(os.Getenv("CLICKHOUSE_SECURE")); v == "1" || v == "true" {
		cfg.ClickHouse.Secure = true
		cfg.ClickHouse.Port = 9440
	}
	if v := os.Getenv("CLICKHOUSE_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid CLICKHOUSE_PORT %q", v)
		}
		cfg.ClickHouse.Port = port
	}
	if v := os.Getenv("CLICKHOUSE_USER"); v != "" {
		cfg.ClickHouse.User = v
	}

	if v := os.Getenv("WORKLOAD_DATABASE"); v != "" {
		cfg.Database = v
	}
	if !identRe.MatchString(cfg.Database) {
		return nil, fmt.Errorf("invalid WORKLOAD_DATABASE %q: must be a bare identifier", cfg.Database)
	}
	if v := os.Getenv("WORKLOAD_QPS"); v != "" {
		qps, err := strconv.ParseFloat(v, 64)
		if err != nil || qps <= 0 {
			return nil, fmt.Errorf("invalid WORKLOAD_QPS %q: must be a positive number", v)
		}
		cfg.OpsPerSecond = qps
	}
	if v := os.Getenv("WORKLOAD_BATCH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid WORKLOAD_BATCH_INTERVAL %q: must be a positive duration like 15s", v)
		}
		cfg.BatchInterval = d
	}

	return cfg, nil
}
