package repository

import (
	"context"
	"fmt"
	"time"

	ch "github.com/benjaminwootton/QueryDog-sub000/internal/clickhouse"
	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// QueryLogRepo reads system.query_log.
type QueryLogRepo struct {
	conn ch.Conn
}

func NewQueryLogRepo(conn ch.Conn) *QueryLogRepo {
	return &QueryLogRepo{conn: conn}
}

// Ensure QueryLogRepo implements the interface.
var _ domain.QueryLogRepository = (*QueryLogRepo)(nil)

// List returns raw query-log rows for the grid. Every column travels; the
// client decides which ones to show.
func (r *QueryLogRepo) List(ctx context.Context, p domain.TableQuery) ([]domain.Row, error) {
	where, err := logWhere(p, "event_time", "query")
	if err != nil {
		return nil, err
	}
	order, err := orderClause(p.Sort, domain.DefaultSort(domain.TableQueryLog))
	if err != nil {
		return nil, err
	}
	query := "SELECT * FROM system.query_log" + where.clause() + order + limitClause(p.Limit, p.Offset)
	rows, err := r.conn.Query(ctx, query, where.args...)
	if err != nil {
		return nil, domain.ErrUpstream(err, "query system.query_log")
	}
	_, data, err := ch.CollectRows(rows)
	if err != nil {
		return nil, domain.ErrUpstream(err, "read system.query_log rows")
	}
	return data, nil
}

// Count returns the total row count for the current filters.
func (r *QueryLogRepo) Count(ctx context.Context, p domain.TableQuery) (uint64, error) {
	where, err := logWhere(p, "event_time", "query")
	if err != nil {
		return 0, err
	}
	var total uint64
	query := "SELECT count() FROM system.query_log" + where.clause()
	if err := r.conn.QueryRow(ctx, query, where.args...).Scan(&total); err != nil {
		return 0, domain.ErrUpstream(err, "count system.query_log")
	}
	return total, nil
}

// TimeSeries returns one bucketed point per interval with every aggregate
// the chart can plot, so switching metric or aggregation is a local
// operation.
func (r *QueryLogRepo) TimeSeries(ctx context.Context, p domain.TableQuery, bucket time.Duration) ([]domain.TimeSeriesPoint, error) {
	where, err := logWhere(p, "event_time", "query")
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT
	%s AS bucket,
	count() AS total,
	toFloat64(avg(query_duration_ms)) AS avg_duration,
	toFloat64(sum(query_duration_ms)) AS sum_duration,
	toFloat64(min(query_duration_ms)) AS min_duration,
	toFloat64(max(query_duration_ms)) AS max_duration,
	toFloat64(avg(memory_usage)) AS avg_memory,
	toFloat64(sum(memory_usage)) AS sum_memory,
	toFloat64(min(memory_usage)) AS min_memory,
	toFloat64(max(memory_usage)) AS max_memory,
	toFloat64(avg(read_rows)) AS avg_read,
	toFloat64(sum(read_rows)) AS sum_read,
	toFloat64(min(read_rows)) AS min_read,
	toFloat64(max(read_rows)) AS max_read
FROM system.query_log%s
GROUP BY bucket
ORDER BY bucket`, bucketExpr("event_time", bucket), where.clause())

	rows, err := r.conn.Query(ctx, query, where.args...)
	if err != nil {
		return nil, domain.ErrUpstream(err, "aggregate system.query_log")
	}
	defer rows.Close()

	var out []domain.TimeSeriesPoint
	for rows.Next() {
		var (
			t time.Time
			p domain.TimeSeriesPoint
		)
		if err := rows.Scan(&t, &p.Count,
			&p.AvgDurationMs, &p.SumDurationMs, &p.MinDurationMs, &p.MaxDurationMs,
			&p.AvgMemoryUsage, &p.SumMemoryUsage, &p.MinMemoryUsage, &p.MaxMemoryUsage,
			&p.AvgReadRows, &p.SumReadRows, &p.MinReadRows, &p.MaxReadRows); err != nil {
			return nil, domain.ErrUpstream(err, "scan query-log series")
		}
		p.Time = domain.WireTime(t)
		out = append(out, p)
	}
	return out, rows.Err()
}

// Stacked returns bucketed counts split by query kind for the stacked chart.
func (r *QueryLogRepo) Stacked(ctx context.Context, p domain.TableQuery, bucket time.Duration) ([]domain.QueryStackedPoint, error) {
	where, err := logWhere(p, "event_time", "query")
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT
	%s AS bucket,
	countIf(query_kind = 'Select') AS selects,
	countIf(query_kind = 'Insert') AS inserts,
	countIf(query_kind = 'Delete') AS deletes,
	countIf(query_kind NOT IN ('Select', 'Insert', 'Delete')) AS other
FROM system.query_log%s
GROUP BY bucket
ORDER BY bucket`, bucketExpr("event_time", bucket), where.clause())

	rows, err := r.conn.Query(ctx, query, where.args...)
	if err != nil {
		return nil, domain.ErrUpstream(err, "aggregate system.query_log by kind")
	}
	defer rows.Close()

	var out []domain.QueryStackedPoint
	for rows.Next() {
		var (
			t time.Time
			p domain.QueryStackedPoint
		)
		if err := rows.Scan(&t, &p.Select, &p.Insert, &p.Delete, &p.Other); err != nil {
			return nil, domain.ErrUpstream(err, "scan query-log stacked series")
		}
		p.Time = domain.WireTime(t)
		out = append(out, p)
	}
	return out, rows.Err()
}

// Grouped returns query-log rows collapsed by normalized query hash, ordered
// by frequency.
func (r *QueryLogRepo) Grouped(ctx context.Context, p domain.TableQuery) ([]domain.GroupedQuery, error) {
	where, err := logWhere(p, "event_time", "query")
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT
	toString(normalized_query_hash) AS hash,
	any(query) AS sample_query,
	count() AS total,
	toFloat64(avg(query_duration_ms)) AS avg_duration,
	toFloat64(max(query_duration_ms)) AS max_duration,
	toFloat64(sum(read_rows)) AS sum_read,
	toFloat64(sum(memory_usage)) AS sum_memory
FROM system.query_log%s
GROUP BY hash
ORDER BY total DESC%s`, where.clause(), limitClause(p.Limit, p.Offset))

	rows, err := r.conn.Query(ctx, query, where.args...)
	if err != nil {
		return nil, domain.ErrUpstream(err, "group system.query_log")
	}
	defer rows.Close()

	var out []domain.GroupedQuery
	for rows.Next() {
		var g domain.GroupedQuery
		if err := rows.Scan(&g.NormalizedHash, &g.Query, &g.Count,
			&g.AvgDurationMs, &g.MaxDurationMs, &g.SumReadRows, &g.SumMemoryUsage); err != nil {
			return nil, domain.ErrUpstream(err, "scan grouped queries")
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Histogram returns the most frequent values of one column under the given
// conditions. Callers drop the histogrammed field from the filters they pass
// when the panel should keep showing the whole distribution.
func (r *QueryLogRepo) Histogram(ctx context.Context, p domain.TableQuery, field string, topN int) ([]domain.HistogramBucket, error) {
	return histogram(ctx, r.conn, "system.query_log", "event_time", p, field, topN, "query")
}

// Distinct returns the distinct values of one column inside the time window,
// for filter dropdowns.
func (r *QueryLogRepo) Distinct(ctx context.Context, tr domain.TimeRange, field string, limit int) ([]string, error) {
	return distinctValues(ctx, r.conn, "system.query_log", "event_time", tr, field, limit)
}

// Columns returns the query-log column metadata used to build grid configs.
func (r *QueryLogRepo) Columns(ctx context.Context) ([]domain.ColumnMeta, error) {
	return tableColumns(ctx, r.conn, "system", "query_log")
}
