//go:build integration

// Package integration runs the API against a live ClickHouse server.
// Connection details come from the usual CLICKHOUSE_* variables; every test
// skips when no server is reachable, so the suite is safe to run anywhere.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/benjaminwootton/QueryDog-sub000/internal/api"
	"github.com/benjaminwootton/QueryDog-sub000/internal/app"
	"github.com/benjaminwootton/QueryDog-sub000/internal/clickhouse"
	"github.com/benjaminwootton/QueryDog-sub000/internal/config"
	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// testEnv is a wired Query Dog server talking to the ClickHouse instance the
// environment points at.
type testEnv struct {
	Server *httptest.Server
	App    *app.App
}

func setupServer(t *testing.T) *testEnv {
	t.Helper()

	cfg, err := config.LoadFromEnv()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := clickhouse.Open(ctx, cfg.ClickHouse)
	if err != nil {
		t.Skipf("clickhouse not reachable at %s: %v", cfg.ClickHouse.Addr(), err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a := app.New(app.Deps{Cfg: cfg, CH: conn, Logger: logger})

	apiHandler := api.NewHandler(
		logger,
		conn,
		a.Services.QueryLog,
		a.Services.PartLog,
		a.Services.Tables,
		a.Services.System,
		a.Services.Browser,
		a.Services.Analyze,
	)

	r := chi.NewRouter()
	r.Get("/healthz", apiHandler.Health)
	r.Mount("/api", apiHandler.Routes())

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{Server: srv, App: a}
}

// urlEncodeTime renders ts in the wire layout, escaped for a query string.
func urlEncodeTime(ts time.Time) string {
	return url.QueryEscape(domain.FormatTime(ts))
}

// getJSON issues a GET and decodes the body into out when the response is OK.
func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	} else {
		_, _ = io.Copy(io.Discard, resp.Body)
	}
	return resp.StatusCode
}

// postJSON issues a POST with a JSON body and decodes the response when OK.
func postJSON(t *testing.T, url string, body any, out any) int {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	} else {
		_, _ = io.Copy(io.Discard, resp.Body)
	}
	return resp.StatusCode
}
