package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// === System Service Mock ===

type mockSystemService struct {
	connectionFn   func() domain.ConnectionInfo
	processesFn    func(ctx context.Context) ([]domain.ProcessEntry, error)
	mergesFn       func(ctx context.Context) ([]domain.MergeEntry, error)
	mutationsFn    func(ctx context.Context) ([]domain.MutationEntry, error)
	metricsFn      func(ctx context.Context, search string) ([]domain.MetricEntry, error)
	asyncMetricsFn func(ctx context.Context, search string) ([]domain.MetricEntry, error)
	eventsFn       func(ctx context.Context, search string) ([]domain.MetricEntry, error)
	usersFn        func(ctx context.Context) ([]domain.UserEntry, error)
	settingsFn     func(ctx context.Context, search string) ([]domain.SettingEntry, error)
}

func (m *mockSystemService) Connection() domain.ConnectionInfo {
	if m.connectionFn == nil {
		panic("unexpected call to mockSystemService.Connection")
	}
	return m.connectionFn()
}

func (m *mockSystemService) Processes(ctx context.Context) ([]domain.ProcessEntry, error) {
	if m.processesFn == nil {
		panic("unexpected call to mockSystemService.Processes")
	}
	return m.processesFn(ctx)
}

func (m *mockSystemService) Merges(ctx context.Context) ([]domain.MergeEntry, error) {
	if m.mergesFn == nil {
		panic("unexpected call to mockSystemService.Merges")
	}
	return m.mergesFn(ctx)
}

func (m *mockSystemService) Mutations(ctx context.Context) ([]domain.MutationEntry, error) {
	if m.mutationsFn == nil {
		panic("unexpected call to mockSystemService.Mutations")
	}
	return m.mutationsFn(ctx)
}

func (m *mockSystemService) Metrics(ctx context.Context, search string) ([]domain.MetricEntry, error) {
	if m.metricsFn == nil {
		panic("unexpected call to mockSystemService.Metrics")
	}
	return m.metricsFn(ctx, search)
}

func (m *mockSystemService) AsyncMetrics(ctx context.Context, search string) ([]domain.MetricEntry, error) {
	if m.asyncMetricsFn == nil {
		panic("unexpected call to mockSystemService.AsyncMetrics")
	}
	return m.asyncMetricsFn(ctx, search)
}

func (m *mockSystemService) Events(ctx context.Context, search string) ([]domain.MetricEntry, error) {
	if m.eventsFn == nil {
		panic("unexpected call to mockSystemService.Events")
	}
	return m.eventsFn(ctx, search)
}

func (m *mockSystemService) Users(ctx context.Context) ([]domain.UserEntry, error) {
	if m.usersFn == nil {
		panic("unexpected call to mockSystemService.Users")
	}
	return m.usersFn(ctx)
}

func (m *mockSystemService) Settings(ctx context.Context, search string) ([]domain.SettingEntry, error) {
	if m.settingsFn == nil {
		panic("unexpected call to mockSystemService.Settings")
	}
	return m.settingsFn(ctx, search)
}

type mockPinger struct {
	pingFn func(ctx context.Context) error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	if m.pingFn == nil {
		panic("unexpected call to mockPinger.Ping")
	}
	return m.pingFn(ctx)
}

// === Connection Info ===

func TestHandler_ConnectionInfo(t *testing.T) {
	t.Parallel()

	svc := &mockSystemService{
		connectionFn: func() domain.ConnectionInfo {
			return domain.ConnectionInfo{Host: "ch.internal", Port: 9440, Secure: true, User: "monitor"}
		},
	}
	h := &Handler{logger: testLogger(), system: svc}

	rec := serveAPI(t, h, http.MethodGet, "/connection-info", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"host":"ch.internal","port":9440,"secure":true,"user":"monitor"}`, rec.Body.String())
}

// === Metric Panels ===

func TestHandler_Metrics(t *testing.T) {
	t.Parallel()

	svc := &mockSystemService{
		metricsFn: func(_ context.Context, search string) ([]domain.MetricEntry, error) {
			assert.Equal(t, "memory", search)
			return []domain.MetricEntry{{Name: "MemoryTracking", Value: 1 << 30}}, nil
		},
	}
	h := &Handler{logger: testLogger(), system: svc}

	rec := serveAPI(t, h, http.MethodGet, "/metrics?search=memory", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "MemoryTracking")
}

func TestHandler_Processes(t *testing.T) {
	t.Parallel()

	svc := &mockSystemService{
		processesFn: func(_ context.Context) ([]domain.ProcessEntry, error) {
			return []domain.ProcessEntry{{QueryID: "q-1", User: "app", Elapsed: 0.2}}, nil
		},
	}
	h := &Handler{logger: testLogger(), system: svc}

	rec := serveAPI(t, h, http.MethodGet, "/processes", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "q-1")
}

// === Health ===

func TestHandler_Health(t *testing.T) {
	t.Parallel()

	t.Run("reports ok while clickhouse answers", func(t *testing.T) {
		t.Parallel()

		h := &Handler{logger: testLogger(), ping: &mockPinger{pingFn: func(context.Context) error { return nil }}}
		rec := httptest.NewRecorder()
		h.Health(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("reports 503 when the ping fails", func(t *testing.T) {
		t.Parallel()

		h := &Handler{logger: testLogger(), ping: &mockPinger{pingFn: func(context.Context) error {
			return errors.New("dial tcp: connection refused")
		}}}
		rec := httptest.NewRecorder()
		h.Health(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "unreachable")
	})
}
