package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// recorder records the last request the test server saw.
type capture struct {
	method string
	path   string
	query  url.Values
	body   []byte
}

func newTestClient(t *testing.T, status int, response string) (*Client, *capture) {
	t.Helper()
	rec := &capture{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.EscapedPath()
		rec.query = r.URL.Query()
		rec.body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL), rec
}

func TestParamsValues(t *testing.T) {
	t.Parallel()

	minMemory := 1000000.0
	p := Params{
		Start:     time.Date(2026, 8, 21, 10, 0, 0, 0, time.UTC),
		End:       time.Date(2026, 8, 21, 16, 0, 0, 0, time.UTC),
		Search:    "orders",
		SortField: "query_duration_ms",
		SortOrder: "DESC",
		Limit:     100,
		Offset:    200,
		Bucket:    5 * time.Minute,
		Filters:   domain.FieldFilters{"type": {"QueryFinish", "ExceptionWhileProcessing"}},
		RangeFilters: domain.RangeFilters{
			"memory_usage": {Min: &minMemory},
		},
	}

	vals, err := p.values()
	require.NoError(t, err)

	assert.Equal(t, "2026-08-21 10:00:00", vals.Get("start"))
	assert.Equal(t, "2026-08-21 16:00:00", vals.Get("end"))
	assert.Equal(t, "orders", vals.Get("search"))
	assert.Equal(t, "query_duration_ms", vals.Get("sortField"))
	assert.Equal(t, "DESC", vals.Get("sortOrder"))
	assert.Equal(t, "100", vals.Get("limit"))
	assert.Equal(t, "200", vals.Get("offset"))
	assert.Equal(t, "300", vals.Get("bucket"))

	var filters domain.FieldFilters
	require.NoError(t, json.Unmarshal([]byte(vals.Get("filters")), &filters))
	assert.Equal(t, p.Filters, filters)

	var rangeFilters domain.RangeFilters
	require.NoError(t, json.Unmarshal([]byte(vals.Get("rangeFilters")), &rangeFilters))
	assert.Equal(t, p.RangeFilters, rangeFilters)
}

func TestParamsValuesOmitsZeroFields(t *testing.T) {
	t.Parallel()

	vals, err := Params{}.values()
	require.NoError(t, err)
	assert.Empty(t, vals)
}

func TestQueryLogList(t *testing.T) {
	t.Parallel()

	c, rec := newTestClient(t, http.StatusOK,
		`[{"user":"default","read_rows":42,"event_time":"2026-08-21 10:00:00"}]`)

	rows, err := c.QueryLog(context.Background(), Params{
		Start: time.Date(2026, 8, 21, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 8, 21, 16, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/api/query-log/", rec.path)
	assert.Equal(t, "2026-08-21 10:00:00", rec.query.Get("start"))

	require.Len(t, rows, 1)
	assert.Equal(t, "default", rows[0]["user"].Str)
	assert.Equal(t, 42.0, rows[0]["read_rows"].Num)
	assert.Equal(t, "2026-08-21 10:00:00", rows[0]["event_time"].Str)
}

func TestCountUnwrapsEnvelope(t *testing.T) {
	t.Parallel()

	c, rec := newTestClient(t, http.StatusOK, `{"total":120}`)

	total, err := c.QueryLogCount(context.Background(), Params{})
	require.NoError(t, err)
	assert.Equal(t, uint64(120), total)
	assert.Equal(t, "/api/query-log/count", rec.path)
}

func TestPartitionCountPath(t *testing.T) {
	t.Parallel()

	c, rec := newTestClient(t, http.StatusOK, `{"total":7}`)

	total, err := c.PartitionCount(context.Background(), Params{Search: "events"})
	require.NoError(t, err)
	assert.Equal(t, uint64(7), total)
	assert.Equal(t, "/api/partitions/count", rec.path)
	assert.Equal(t, "events", rec.query.Get("search"))
}

func TestBrowserPathsEscapeSegments(t *testing.T) {
	t.Parallel()

	c, rec := newTestClient(t, http.StatusOK, `[]`)

	_, err := c.PartitionParts(context.Background(), "my db", "page_views", "2026 08")
	require.NoError(t, err)
	assert.Equal(t, "/api/browser/parts/my%20db/page_views/2026%2008", rec.path)
}

func TestHistogramPath(t *testing.T) {
	t.Parallel()

	c, rec := newTestClient(t, http.StatusOK, `[{"name":"default","count":10}]`)

	buckets, err := c.QueryLogHistogram(context.Background(), "user", Params{Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, "/api/query-log/histogram/user", rec.path)
	assert.Equal(t, "20", rec.query.Get("limit"))
	require.Len(t, buckets, 1)
	assert.Equal(t, uint64(10), buckets[0].Count)
}

func TestExplainFlattensRows(t *testing.T) {
	t.Parallel()

	c, rec := newTestClient(t, http.StatusOK, `[{"explain":"Expression"},{"explain":"  ReadFromMergeTree"}]`)

	lines, err := c.Explain(context.Background(), domain.ExplainPlan, "SELECT 1")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/explain/plan", rec.path)
	assert.JSONEq(t, `{"query":"SELECT 1"}`, string(rec.body))
	assert.Equal(t, []string{"Expression", "  ReadFromMergeTree"}, lines)
}

func TestQueryPostsBody(t *testing.T) {
	t.Parallel()

	c, rec := newTestClient(t, http.StatusOK,
		`{"columns":[{"name":"n","type":"UInt8"}],"data":[{"n":1}],"rowCount":1,"duration":2.5}`)

	result, err := c.Query(context.Background(), domain.QueryRequest{Query: "SELECT 1 AS n", Limit: 50})
	require.NoError(t, err)

	assert.Equal(t, "/api/query", rec.path)
	assert.JSONEq(t, `{"query":"SELECT 1 AS n","limit":50}`, string(rec.body))
	assert.Equal(t, 1, result.RowCount)
	require.Len(t, result.Data, 1)
	assert.Equal(t, 1.0, result.Data[0]["n"].Num)
}

func TestAPIErrorEnvelope(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, http.StatusUnprocessableEntity, `{"code":422,"message":"start is required"}`)

	_, err := c.QueryLog(context.Background(), Params{})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Code)
	assert.Equal(t, "start is required", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "start is required")
}

func TestAPIErrorNonJSONBody(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, http.StatusBadGateway, "upstream timeout")

	_, err := c.Processes(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Code)
	assert.Equal(t, "upstream timeout", apiErr.Message)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	c, rec := newTestClient(t, http.StatusOK, `{"status":"ok"}`)
	require.NoError(t, c.Health(context.Background()))
	assert.Equal(t, "/healthz", rec.path)

	down, _ := newTestClient(t, http.StatusServiceUnavailable,
		`{"code":503,"message":"clickhouse unreachable: dial tcp: connection refused"}`)
	err := down.Health(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Code)
}

func TestBaseURLTrailingSlashTrimmed(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users", r.URL.Path)
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL + "/")
	_, err := c.Users(context.Background())
	require.NoError(t, err)
}
