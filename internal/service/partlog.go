package service

import (
	"context"
	"time"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// PartLogService serves the part-log view with the same machinery as the
// query log, minus the normalized-query rollup.
type PartLogService struct {
	repo domain.PartLogRepository
}

func NewPartLogService(repo domain.PartLogRepository) *PartLogService {
	return &PartLogService{repo: repo}
}

// List returns one page of part-log rows.
func (s *PartLogService) List(ctx context.Context, q domain.TableQuery) ([]domain.Row, error) {
	return s.repo.List(ctx, clampQuery(q))
}

// Count returns the total row count for the current filters.
func (s *PartLogService) Count(ctx context.Context, q domain.TableQuery) (uint64, error) {
	return s.repo.Count(ctx, q)
}

// TimeSeries returns the bucketed aggregate series for the chart.
func (s *PartLogService) TimeSeries(ctx context.Context, q domain.TableQuery, bucket time.Duration) ([]domain.TimeSeriesPoint, error) {
	return s.repo.TimeSeries(ctx, q, chartBucket(q.TimeRange, bucket))
}

// Stacked returns the per-event-type counts for the stacked chart variants.
func (s *PartLogService) Stacked(ctx context.Context, q domain.TableQuery, bucket time.Duration) ([]domain.PartStackedPoint, error) {
	return s.repo.Stacked(ctx, q, chartBucket(q.TimeRange, bucket))
}

// Histogram returns the most frequent values of field under the current
// filters.
func (s *PartLogService) Histogram(ctx context.Context, q domain.TableQuery, field string, topN int) ([]domain.HistogramBucket, error) {
	if topN > MaxHistogramBuckets {
		topN = MaxHistogramBuckets
	}
	return s.repo.Histogram(ctx, q, field, topN)
}

// Distinct returns field's distinct values inside the time window.
func (s *PartLogService) Distinct(ctx context.Context, tr domain.TimeRange, field string, limit int) ([]string, error) {
	return s.repo.Distinct(ctx, tr, field, limit)
}

// Columns returns the part_log column metadata.
func (s *PartLogService) Columns(ctx context.Context) ([]domain.ColumnMeta, error) {
	return s.repo.Columns(ctx)
}
