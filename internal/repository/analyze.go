package repository

import (
	"context"
	"strings"
	"time"

	ch "github.com/benjaminwootton/QueryDog-sub000/internal/clickhouse"
	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// AnalyzeRepo runs the SQL console statements: EXPLAIN variants and guarded
// execution. The destructive-statement guard lives in the service layer;
// this repo assumes vetted input.
type AnalyzeRepo struct {
	conn ch.Conn
}

func NewAnalyzeRepo(conn ch.Conn) *AnalyzeRepo {
	return &AnalyzeRepo{conn: conn}
}

// Ensure AnalyzeRepo implements the interface.
var _ domain.AnalyzeRepository = (*AnalyzeRepo)(nil)

var explainPrefixes = map[domain.ExplainType]string{
	domain.ExplainPlan:     "EXPLAIN PLAN",
	domain.ExplainIndexes:  "EXPLAIN PLAN indexes = 1",
	domain.ExplainPipeline: "EXPLAIN PIPELINE",
	domain.ExplainAST:      "EXPLAIN AST",
	domain.ExplainSyntax:   "EXPLAIN SYNTAX",
	domain.ExplainEstimate: "EXPLAIN ESTIMATE",
}

// Explain runs one EXPLAIN variant and returns its output lines. Most
// variants yield a single text column; ESTIMATE yields a small table, which
// flattens to name=value pairs per row.
func (r *AnalyzeRepo) Explain(ctx context.Context, kind domain.ExplainType, query string) ([]string, error) {
	prefix, ok := explainPrefixes[kind]
	if !ok {
		return nil, domain.ErrValidation("unknown explain type %q", kind)
	}
	rows, err := r.conn.Query(ctx, prefix+" "+query)
	if err != nil {
		return nil, domain.ErrUpstream(err, "explain %s", kind)
	}
	meta, data, err := ch.CollectRows(rows)
	if err != nil {
		return nil, domain.ErrUpstream(err, "read explain output")
	}

	lines := make([]string, 0, len(data))
	for _, row := range data {
		if len(meta) == 1 {
			lines = append(lines, row[meta[0].Name].Display())
			continue
		}
		pairs := make([]string, len(meta))
		for i, col := range meta {
			pairs[i] = col.Name + "=" + row[col.Name].Display()
		}
		lines = append(lines, strings.Join(pairs, " "))
	}
	return lines, nil
}

// Execute runs one statement and returns columns, rows and timing. The row
// cap is applied through the server-side limit setting rather than by
// rewriting the statement.
func (r *AnalyzeRepo) Execute(ctx context.Context, query string, limit int) (*domain.QueryResult, error) {
	if limit > 0 {
		ctx = ch.WithSettings(ctx, map[string]any{"limit": limit})
	}
	start := time.Now()
	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, domain.ErrUpstream(err, "execute query")
	}
	meta, data, err := ch.CollectRows(rows)
	if err != nil {
		return nil, domain.ErrUpstream(err, "read query result")
	}
	return &domain.QueryResult{
		Columns:  meta,
		Data:     data,
		RowCount: len(data),
		Duration: float64(time.Since(start).Microseconds()) / 1000.0,
	}, nil
}
