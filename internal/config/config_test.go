package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv("CLICKHOUSE_HOST", "")
	t.Setenv("CLICKHOUSE_PORT", "")
	t.Setenv("CLICKHOUSE_USER", "")
	t.Setenv("CLICKHOUSE_DATABASE", "")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("REFRESH_INTERVAL", "")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.ClickHouse.Host)
	assert.Equal(t, 9000, cfg.ClickHouse.Port)
	assert.Equal(t, "default", cfg.ClickHouse.User)
	assert.Equal(t, "default", cfg.ClickHouse.Database)
	assert.Equal(t, 10*time.Second, cfg.ClickHouse.DialTimeout)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 100.0, cfg.RateLimitRPS)
	assert.Equal(t, 200, cfg.RateLimitBurst)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.RefreshInterval)
	assert.Equal(t, 100, cfg.DefaultPageSize)
}

func TestLoadFromEnv_AllVarsSet(t *testing.T) {
	t.Setenv("CLICKHOUSE_HOST", "ch.internal")
	t.Setenv("CLICKHOUSE_PORT", "9001")
	t.Setenv("CLICKHOUSE_USER", "monitor")
	t.Setenv("CLICKHOUSE_PASSWORD", "s3cret")
	t.Setenv("CLICKHOUSE_DATABASE", "ecommerce")
	t.Setenv("CLICKHOUSE_SECURE", "true")
	t.Setenv("LISTEN_ADDR", ":9999")
	t.Setenv("REFRESH_INTERVAL", "1m")
	t.Setenv("PAGE_SIZE_DEFAULT", "250")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "ch.internal", cfg.ClickHouse.Host)
	assert.Equal(t, 9001, cfg.ClickHouse.Port)
	assert.Equal(t, "monitor", cfg.ClickHouse.User)
	assert.Equal(t, "s3cret", cfg.ClickHouse.Password)
	assert.Equal(t, "ecommerce", cfg.ClickHouse.Database)
	assert.True(t, cfg.ClickHouse.Secure)
	assert.Equal(t, "ch.internal:9001", cfg.ClickHouse.Addr())
	assert.Equal(t, ":9999", cfg.ListenAddr)
	assert.Equal(t, time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 250, cfg.DefaultPageSize)
}

func TestLoadFromEnv_SecureDefaultPort(t *testing.T) {
	t.Setenv("CLICKHOUSE_PORT", "")
	t.Setenv("CLICKHOUSE_SECURE", "true")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 9440, cfg.ClickHouse.Port)
}

func TestLoadFromEnv_BadPort(t *testing.T) {
	t.Setenv("CLICKHOUSE_PORT", "ninethousand")

	_, err := LoadFromEnv()
	require.Error(t, err)
}

func TestLoadFromEnv_BadRefreshInterval(t *testing.T) {
	t.Setenv("REFRESH_INTERVAL", "soon")

	_, err := LoadFromEnv()
	require.Error(t, err)
}

func TestLoadFromEnv_RefreshDisabled(t *testing.T) {
	t.Setenv("REFRESH_INTERVAL", "0s")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), cfg.RefreshInterval)
}

func TestLoadFromEnv_PasswordWarning(t *testing.T) {
	t.Setenv("CLICKHOUSE_PASSWORD", "")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Warnings)
}

func TestLoadFromEnv_ProductionRejectsCORSWildcard(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	_, err := LoadFromEnv()
	require.Error(t, err)

	t.Setenv("CORS_ALLOWED_ORIGINS", "https://dash.example.com")
	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://dash.example.com"}, cfg.CORSAllowedOrigins)
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  string
	}{
		{"debug", "DEBUG"},
		{"info", "INFO"},
		{"warn", "WARN"},
		{"warning", "WARN"},
		{"error", "ERROR"},
		{"", "INFO"},
		{"bogus", "INFO"},
	}
	for _, tc := range tests {
		cfg := &Config{LogLevel: tc.level}
		assert.Equal(t, tc.want, cfg.SlogLevel().String(), "level %q", tc.level)
	}
}

func TestLoadDotEnv_FileNotFound(t *testing.T) {
	err := LoadDotEnv("/nonexistent/.env")
	if err != nil {
		t.Errorf("expected no error for missing .env, got: %v", err)
	}
}

func TestLoadDotEnv_ParsesKeyValue(t *testing.T) {
	tmpDir := t.TempDir()
	envFile := filepath.Join(tmpDir, ".env")

	err := os.WriteFile(envFile, []byte("TEST_KEY=test_value\n"), 0644)
	if err != nil {
		t.Fatalf("write .env: %v", err)
	}

	if err := LoadDotEnv(envFile); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}

	if val := os.Getenv("TEST_KEY"); val != "test_value" {
		t.Errorf("TEST_KEY = %q, want %q", val, "test_value")
	}
	_ = os.Unsetenv("TEST_KEY")
}

func TestLoadDotEnv_EnvVarPrecedence(t *testing.T) {
	t.Setenv("TEST_PRECEDENCE_KEY", "from_env")

	tmpDir := t.TempDir()
	envFile := filepath.Join(tmpDir, ".env")

	err := os.WriteFile(envFile, []byte("TEST_PRECEDENCE_KEY=from_file\n"), 0644)
	if err != nil {
		t.Fatalf("write .env: %v", err)
	}

	if err := LoadDotEnv(envFile); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}

	if val := os.Getenv("TEST_PRECEDENCE_KEY"); val != "from_env" {
		t.Errorf("TEST_PRECEDENCE_KEY = %q, want %q (env precedence)", val, "from_env")
	}
}
