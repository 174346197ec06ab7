package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

func TestPartLogService_ListClampsPaging(t *testing.T) {
	t.Parallel()

	var got domain.TableQuery
	repo := &mockPartLogRepo{
		listFn: func(_ context.Context, q domain.TableQuery) ([]domain.Row, error) {
			got = q
			return nil, nil
		},
	}
	svc := NewPartLogService(repo)

	_, err := svc.List(context.Background(), domain.TableQuery{Limit: 50000, Offset: -1})

	require.NoError(t, err)
	assert.Equal(t, MaxListLimit, got.Limit)
	assert.Zero(t, got.Offset)
}

func TestPartLogService_StackedBucketFromRange(t *testing.T) {
	t.Parallel()

	now := time.Now()
	day := domain.TimeRange{Start: now.Add(-24 * time.Hour), End: now}

	var got time.Duration
	repo := &mockPartLogRepo{
		stackedFn: func(_ context.Context, _ domain.TableQuery, bucket time.Duration) ([]domain.PartStackedPoint, error) {
			got = bucket
			return nil, nil
		},
	}
	svc := NewPartLogService(repo)

	_, err := svc.Stacked(context.Background(), domain.TableQuery{TimeRange: day}, 0)

	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, got, "24h span lands on the 30m step")
}

func TestPartLogService_HistogramCapsBuckets(t *testing.T) {
	t.Parallel()

	var got int
	repo := &mockPartLogRepo{
		histogramFn: func(_ context.Context, _ domain.TableQuery, _ string, topN int) ([]domain.HistogramBucket, error) {
			got = topN
			return nil, nil
		},
	}
	svc := NewPartLogService(repo)

	_, err := svc.Histogram(context.Background(), domain.TableQuery{}, "event_type", 500)

	require.NoError(t, err)
	assert.Equal(t, MaxHistogramBuckets, got)
}
