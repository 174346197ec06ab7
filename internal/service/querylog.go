package service

import (
	"context"
	"time"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// QueryLogService serves the query-log view: the entry grid, the charts, and
// the histogram and distinct-value panels the filters are built from.
type QueryLogService struct {
	repo domain.QueryLogRepository
}

func NewQueryLogService(repo domain.QueryLogRepository) *QueryLogService {
	return &QueryLogService{repo: repo}
}

// List returns one page of query-log rows.
func (s *QueryLogService) List(ctx context.Context, q domain.TableQuery) ([]domain.Row, error) {
	return s.repo.List(ctx, clampQuery(q))
}

// Count returns the total row count for the current filters.
func (s *QueryLogService) Count(ctx context.Context, q domain.TableQuery) (uint64, error) {
	return s.repo.Count(ctx, q)
}

// TimeSeries returns the bucketed aggregate series for the chart. A zero
// bucket is sized from the time range.
func (s *QueryLogService) TimeSeries(ctx context.Context, q domain.TableQuery, bucket time.Duration) ([]domain.TimeSeriesPoint, error) {
	return s.repo.TimeSeries(ctx, q, chartBucket(q.TimeRange, bucket))
}

// Stacked returns the per-kind counts for the stacked chart variants.
func (s *QueryLogService) Stacked(ctx context.Context, q domain.TableQuery, bucket time.Duration) ([]domain.QueryStackedPoint, error) {
	return s.repo.Stacked(ctx, q, chartBucket(q.TimeRange, bucket))
}

// Grouped returns the normalized-query rollup.
func (s *QueryLogService) Grouped(ctx context.Context, q domain.TableQuery) ([]domain.GroupedQuery, error) {
	if q.Limit <= 0 {
		q.Limit = DefaultGroupedLimit
	}
	return s.repo.Grouped(ctx, clampQuery(q))
}

// Histogram returns the most frequent values of field under the current
// filters, for the filter panels.
func (s *QueryLogService) Histogram(ctx context.Context, q domain.TableQuery, field string, topN int) ([]domain.HistogramBucket, error) {
	if topN > MaxHistogramBuckets {
		topN = MaxHistogramBuckets
	}
	return s.repo.Histogram(ctx, q, field, topN)
}

// Distinct returns field's distinct values inside the time window.
func (s *QueryLogService) Distinct(ctx context.Context, tr domain.TimeRange, field string, limit int) ([]string, error) {
	return s.repo.Distinct(ctx, tr, field, limit)
}

// Columns returns the query_log column metadata.
func (s *QueryLogService) Columns(ctx context.Context) ([]domain.ColumnMeta, error) {
	return s.repo.Columns(ctx)
}
