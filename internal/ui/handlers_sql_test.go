package ui

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

func TestSQLPage(t *testing.T) {
	t.Parallel()

	t.Run("renders the empty editor", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		rec := env.get(t, "/ui/sql")

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "SQL Console")
		assert.Contains(t, body, "Read-only console")
	})

	t.Run("snippet links prefill the editor", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		rec := env.get(t, "/ui/sql?snippet=slow_queries")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "ORDER BY query_duration_ms DESC")
	})
}

func TestSQLRun(t *testing.T) {
	t.Parallel()

	t.Run("executes with the default row cap", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		var mu sync.Mutex
		var gotQuery string
		var gotLimit int
		env.analyze.ExecuteFn = func(_ context.Context, query string, limit int) (*domain.QueryResult, error) {
			mu.Lock()
			gotQuery, gotLimit = query, limit
			mu.Unlock()
			return &domain.QueryResult{
				Columns:  []domain.ColumnMeta{{Name: "n", Type: "UInt64"}},
				Data:     []domain.Row{{"n": domain.NumberValue(1)}},
				RowCount: 1,
				Duration: 2.5,
			}, nil
		}

		rec := env.post(t, "/ui/sql/run", url.Values{"sql": {"SELECT 1"}})

		require.Equal(t, http.StatusOK, rec.Code)
		mu.Lock()
		assert.Equal(t, "SELECT 1", gotQuery)
		assert.Equal(t, 1000, gotLimit)
		mu.Unlock()
		assert.Contains(t, rec.Body.String(), "1 rows in")
	})

	t.Run("a rejected statement reports inline", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		rec := env.post(t, "/ui/sql/run", url.Values{"sql": {"DROP TABLE ecommerce.orders"}})

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "DROP statements are not allowed from the console")
		assert.Contains(t, body, "DROP TABLE ecommerce.orders", "statement stays in the editor")
	})

	t.Run("an empty statement reports inline", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		rec := env.post(t, "/ui/sql/run", url.Values{"sql": {"   "}})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "query is required")
	})
}

func TestSQLExplain(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.analyze.ExplainFn = func(_ context.Context, kind domain.ExplainType, query string) ([]string, error) {
		if kind == domain.ExplainAST {
			return nil, domain.ErrUpstream(nil, "AST explain not supported")
		}
		return []string{"plan for " + query}, nil
	}

	rec := env.post(t, "/ui/sql/explain", url.Values{"sql": {"SELECT 1"}})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "plan for SELECT 1")
	assert.Contains(t, body, "AST explain not supported", "one failed variant must not hide the rest")
}

func TestSQLDownloadCSV(t *testing.T) {
	t.Parallel()

	t.Run("streams the result as an attachment", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		var mu sync.Mutex
		var gotLimit int
		env.analyze.ExecuteFn = func(_ context.Context, query string, limit int) (*domain.QueryResult, error) {
			mu.Lock()
			gotLimit = limit
			mu.Unlock()
			return &domain.QueryResult{
				Columns: []domain.ColumnMeta{{Name: "n", Type: "UInt64"}, {Name: "label", Type: "String"}},
				Data: []domain.Row{
					{"n": domain.NumberValue(1), "label": domain.StringValue("one")},
					{"n": domain.NumberValue(2), "label": domain.StringValue("two, maybe")},
				},
				RowCount: 2,
			}, nil
		}

		rec := env.post(t, "/ui/sql/download.csv", url.Values{"sql": {"SELECT n, label FROM t"}})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
		assert.Contains(t, rec.Header().Get("Content-Disposition"), `attachment`)
		assert.Empty(t, rec.Header().Get("X-QueryDog-Results-Truncated"))

		body := rec.Body.String()
		assert.Contains(t, body, "n,label\n")
		assert.Contains(t, body, "1,one\n")
		assert.Contains(t, body, `2,"two, maybe"`)

		mu.Lock()
		assert.Equal(t, 5000, gotLimit)
		mu.Unlock()
	})

	t.Run("flags a result that filled the export cap", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		env.analyze.ExecuteFn = func(_ context.Context, _ string, limit int) (*domain.QueryResult, error) {
			rows := make([]domain.Row, limit)
			for i := range rows {
				rows[i] = domain.Row{"n": domain.NumberValue(float64(i))}
			}
			return &domain.QueryResult{
				Columns:  []domain.ColumnMeta{{Name: "n", Type: "UInt64"}},
				Data:     rows,
				RowCount: len(rows),
			}, nil
		}

		rec := env.post(t, "/ui/sql/download.csv", url.Values{"sql": {"SELECT n FROM big"}})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "true", rec.Header().Get("X-QueryDog-Results-Truncated"))
	})

	t.Run("an execution failure falls back to the console", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		rec := env.post(t, "/ui/sql/download.csv", url.Values{"sql": {"TRUNCATE TABLE t"}})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rec.Body.String(), "TRUNCATE statements are not allowed from the console")
	})
}
