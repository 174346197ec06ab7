package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

func TestAnalyzeService_ExecuteBlocksDestructiveSQL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		query   string
		keyword string
	}{
		{"drop", "DROP TABLE ecommerce.orders", "DROP"},
		{"lowercase drop", "drop table ecommerce.orders", "DROP"},
		{"truncate", "TRUNCATE TABLE page_views", "TRUNCATE"},
		{"lightweight delete", "DELETE FROM orders WHERE order_id = 'a'", "DELETE"},
		{"alter delete", "ALTER TABLE orders DELETE WHERE status = 'cancelled'", "ALTER"},
		{"alter update", "ALTER TABLE orders UPDATE status = 'shipped' WHERE 1", "ALTER"},
		{"insert", "INSERT INTO orders VALUES (1)", "INSERT"},
		{"rename", "RENAME TABLE orders TO orders_old", "RENAME"},
		{"attach", "ATTACH TABLE orders", "ATTACH"},
		{"detach", "DETACH TABLE orders", "DETACH"},
		{"optimize", "OPTIMIZE TABLE orders FINAL", "OPTIMIZE"},
		{"system", "SYSTEM FLUSH LOGS", "SYSTEM"},
		{"create", "CREATE TABLE scratch (x Int32) ENGINE = Memory", "CREATE"},
		{"grant", "GRANT SELECT ON *.* TO bob", "GRANT"},
		{"revoke", "REVOKE SELECT ON *.* FROM bob", "REVOKE"},
		{"kill", "KILL QUERY WHERE query_id = 'abc'", "KILL"},
		{"set", "SET max_threads = 32", "SET"},
		{"second statement", "SELECT 1; DROP TABLE orders", "DROP"},
		{"behind block comment", "/* harmless */ DROP TABLE orders", "DROP"},
		{"behind line comment", "-- harmless\nDROP TABLE orders", "DROP"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := NewAnalyzeService(&mockAnalyzeRepo{})

			_, err := svc.Execute(context.Background(), domain.QueryRequest{Query: tt.query})

			var rejected *domain.RejectedError
			require.Error(t, err)
			require.ErrorAs(t, err, &rejected)
			assert.Contains(t, rejected.Message, tt.keyword)
		})
	}
}

func TestAnalyzeService_ExecuteAllowsReads(t *testing.T) {
	t.Parallel()

	queries := []string{
		"SELECT count() FROM system.query_log",
		"select event_time from system.part_log limit 5",
		"WITH t AS (SELECT 1) SELECT * FROM t",
		"(SELECT 1) UNION ALL (SELECT 2)",
		"SHOW TABLES FROM ecommerce",
		"DESCRIBE TABLE system.parts",
		"SELECT 'drop table orders' AS caption",
		"EXPLAIN SELECT * FROM system.settings",
	}
	for _, query := range queries {
		t.Run(query, func(t *testing.T) {
			t.Parallel()
			var gotQuery string
			var gotLimit int
			repo := &mockAnalyzeRepo{
				executeFn: func(_ context.Context, query string, limit int) (*domain.QueryResult, error) {
					gotQuery = query
					gotLimit = limit
					return &domain.QueryResult{}, nil
				},
			}
			svc := NewAnalyzeService(repo)

			_, err := svc.Execute(context.Background(), domain.QueryRequest{Query: query})

			require.NoError(t, err)
			assert.Equal(t, query, gotQuery)
			assert.Equal(t, DefaultQueryLimit, gotLimit)
		})
	}
}

func TestAnalyzeService_ExecuteRowLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		requested int
		want      int
	}{
		{"defaulted", 0, DefaultQueryLimit},
		{"explicit", 200, 200},
		{"capped", 50000, MaxQueryLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var gotLimit int
			repo := &mockAnalyzeRepo{
				executeFn: func(_ context.Context, _ string, limit int) (*domain.QueryResult, error) {
					gotLimit = limit
					return &domain.QueryResult{}, nil
				},
			}
			svc := NewAnalyzeService(repo)

			_, err := svc.Execute(context.Background(), domain.QueryRequest{Query: "SELECT 1", Limit: tt.requested})

			require.NoError(t, err)
			assert.Equal(t, tt.want, gotLimit)
		})
	}
}

func TestAnalyzeService_ExecuteRequiresQuery(t *testing.T) {
	t.Parallel()

	svc := NewAnalyzeService(&mockAnalyzeRepo{})

	_, err := svc.Execute(context.Background(), domain.QueryRequest{Query: "   \n\t"})

	var validation *domain.ValidationError
	require.Error(t, err)
	assert.ErrorAs(t, err, &validation)
}

func TestAnalyzeService_Explain(t *testing.T) {
	t.Parallel()

	t.Run("passes query through", func(t *testing.T) {
		t.Parallel()
		var gotKind domain.ExplainType
		var gotQuery string
		repo := &mockAnalyzeRepo{
			explainFn: func(_ context.Context, kind domain.ExplainType, query string) ([]string, error) {
				gotKind = kind
				gotQuery = query
				return []string{"Expression ((Projection + Before ORDER BY))"}, nil
			},
		}
		svc := NewAnalyzeService(repo)

		lines, err := svc.Explain(context.Background(), domain.ExplainPlan, "  SELECT 1  ")

		require.NoError(t, err)
		assert.Equal(t, domain.ExplainPlan, gotKind)
		assert.Equal(t, "SELECT 1", gotQuery)
		assert.Len(t, lines, 1)
	})

	t.Run("unknown type", func(t *testing.T) {
		t.Parallel()
		svc := NewAnalyzeService(&mockAnalyzeRepo{})

		_, err := svc.Explain(context.Background(), domain.ExplainType("profile"), "SELECT 1")

		var validation *domain.ValidationError
		require.Error(t, err)
		assert.ErrorAs(t, err, &validation)
	})

	t.Run("empty query", func(t *testing.T) {
		t.Parallel()
		svc := NewAnalyzeService(&mockAnalyzeRepo{})

		_, err := svc.Explain(context.Background(), domain.ExplainAST, "")

		var validation *domain.ValidationError
		require.Error(t, err)
		assert.ErrorAs(t, err, &validation)
	})

	t.Run("upstream failure surfaces unchanged", func(t *testing.T) {
		t.Parallel()
		upstream := domain.ErrUpstream(assert.AnError, "explain failed")
		repo := &mockAnalyzeRepo{
			explainFn: func(_ context.Context, _ domain.ExplainType, _ string) ([]string, error) {
				return nil, upstream
			},
		}
		svc := NewAnalyzeService(repo)

		_, err := svc.Explain(context.Background(), domain.ExplainPipeline, "SELECT broken FROM")

		assert.ErrorIs(t, err, upstream)
	})
}
