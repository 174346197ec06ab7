package repository

import (
	"context"
	"fmt"
	"time"

	ch "github.com/benjaminwootton/QueryDog-sub000/internal/clickhouse"
	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// PartLogRepo reads system.part_log.
type PartLogRepo struct {
	conn ch.Conn
}

func NewPartLogRepo(conn ch.Conn) *PartLogRepo {
	return &PartLogRepo{conn: conn}
}

// Ensure PartLogRepo implements the interface.
var _ domain.PartLogRepository = (*PartLogRepo)(nil)

// List returns raw part-log rows for the grid.
func (r *PartLogRepo) List(ctx context.Context, p domain.TableQuery) ([]domain.Row, error) {
	where, err := logWhere(p, "event_time", "table", "part_name")
	if err != nil {
		return nil, err
	}
	order, err := orderClause(p.Sort, domain.DefaultSort(domain.TablePartLog))
	if err != nil {
		return nil, err
	}
	query := "SELECT * FROM system.part_log" + where.clause() + order + limitClause(p.Limit, p.Offset)
	rows, err := r.conn.Query(ctx, query, where.args...)
	if err != nil {
		return nil, domain.ErrUpstream(err, "query system.part_log")
	}
	_, data, err := ch.CollectRows(rows)
	if err != nil {
		return nil, domain.ErrUpstream(err, "read system.part_log rows")
	}
	return data, nil
}

// Count returns the total row count for the current filters.
func (r *PartLogRepo) Count(ctx context.Context, p domain.TableQuery) (uint64, error) {
	where, err := logWhere(p, "event_time", "table", "part_name")
	if err != nil {
		return 0, err
	}
	var total uint64
	query := "SELECT count() FROM system.part_log" + where.clause()
	if err := r.conn.QueryRow(ctx, query, where.args...).Scan(&total); err != nil {
		return 0, domain.ErrUpstream(err, "count system.part_log")
	}
	return total, nil
}

// TimeSeries returns bucketed aggregates for the part-log chart. The shared
// point shape maps per-table: duration stays duration_ms, the bytes metric
// is size_in_bytes and the rows metric is the part row count.
func (r *PartLogRepo) TimeSeries(ctx context.Context, p domain.TableQuery, bucket time.Duration) ([]domain.TimeSeriesPoint, error) {
	where, err := logWhere(p, "event_time", "table", "part_name")
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT
	%s AS bucket,
	count() AS total,
	toFloat64(avg(duration_ms)) AS avg_duration,
	toFloat64(sum(duration_ms)) AS sum_duration,
	toFloat64(min(duration_ms)) AS min_duration,
	toFloat64(max(duration_ms)) AS max_duration,
	toFloat64(avg(size_in_bytes)) AS avg_size,
	toFloat64(sum(size_in_bytes)) AS sum_size,
	toFloat64(min(size_in_bytes)) AS min_size,
	toFloat64(max(size_in_bytes)) AS max_size,
	toFloat64(avg(rows)) AS avg_rows,
	toFloat64(sum(rows)) AS sum_rows,
	toFloat64(min(rows)) AS min_rows,
	toFloat64(max(rows)) AS max_rows
FROM system.part_log%s
GROUP BY bucket
ORDER BY bucket`, bucketExpr("event_time", bucket), where.clause())

	rows, err := r.conn.Query(ctx, query, where.args...)
	if err != nil {
		return nil, domain.ErrUpstream(err, "aggregate system.part_log")
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
			return nil, domain.ErrUpstream(err, "scan part-log series")
		}
		p.Time = domain.WireTime(t)
		out = append(out, p)
	}
	return out, rows.Err()
}

// Stacked returns bucketed counts split by part event type.
func (r *PartLogRepo) Stacked(ctx context.Context, p domain.TableQuery, bucket time.Duration) ([]domain.PartStackedPoint, error) {
	where, err := logWhere(p, "event_time", "table", "part_name")
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT
	%s AS bucket,
	countIf(event_type = 'NewPart') AS new_parts,
	countIf(event_type = 'MergeParts') AS merges,
	countIf(event_type = 'RemovePart') AS removes,
	countIf(event_type NOT IN ('NewPart', 'MergeParts', 'RemovePart')) AS other
FROM system.part_log%s
GROUP BY bucket
ORDER BY bucket`, bucketExpr("event_time", bucket), where.clause())

	rows, err := r.conn.Query(ctx, query, where.args...)
	if err != nil {
		return nil, domain.ErrUpstream(err, "aggregate system.part_log by event type")
	}
	defer rows.Close()

	var out []domain.PartStackedPoint
	for rows.Next() {
		var (
			t time.Time
			p domain.PartStackedPoint
		)
		if err := rows.Scan(&t, &p.NewPart, &p.MergeParts, &p.RemovePart, &p.Other); err != nil {
			return nil, domain.ErrUpstream(err, "scan part-log stacked series")
		}
		p.Time = domain.WireTime(t)
		out = append(out, p)
	}
	return out, rows.Err()
}

// Histogram returns the most frequent values of one column under the given
// conditions.
func (r *PartLogRepo) Histogram(ctx context.Context, p domain.TableQuery, field string, topN int) ([]domain.HistogramBucket, error) {
	return histogram(ctx, r.conn, "system.part_log", "event_time", p, field, topN, "table", "part_name")
}

// Distinct returns the distinct values of one column inside the time window.
func (r *PartLogRepo) Distinct(ctx context.Context, tr domain.TimeRange, field string, limit int) ([]string, error) {
	return distinctValues(ctx, r.conn, "system.part_log", "event_time", tr, field, limit)
}

// Columns returns the part-log column metadata used to build grid configs.
func (r *PartLogRepo) Columns(ctx context.Context) ([]domain.ColumnMeta, error) {
	return tableColumns(ctx, r.conn, "system", "part_log")
}
