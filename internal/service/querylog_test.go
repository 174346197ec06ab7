package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

func TestQueryLogService_ListClampsPaging(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		in         domain.TableQuery
		wantLimit  int
		wantOffset int
	}{
		{"zero limit gets default", domain.TableQuery{}, DefaultListLimit, 0},
		{"oversized limit capped", domain.TableQuery{Limit: 50000}, MaxListLimit, 0},
		{"negative offset zeroed", domain.TableQuery{Limit: 100, Offset: -5}, 100, 0},
		{"sane request untouched", domain.TableQuery{Limit: 1000, Offset: 4000}, 1000, 4000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var got domain.TableQuery
			repo := &mockQueryLogRepo{
				listFn: func(_ context.Context, q domain.TableQuery) ([]domain.Row, error) {
					got = q
					return nil, nil
				},
			}
			svc := NewQueryLogService(repo)

			_, err := svc.List(context.Background(), tt.in)

			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, got.Limit)
			assert.Equal(t, tt.wantOffset, got.Offset)
		})
	}
}

func TestQueryLogService_BucketSelection(t *testing.T) {
	t.Parallel()

	now := time.Now()
	hour := domain.TimeRange{Start: now.Add(-time.Hour), End: now}

	t.Run("zero bucket sized from range", func(t *testing.T) {
		t.Parallel()
		var got time.Duration
		repo := &mockQueryLogRepo{
			timeSeriesFn: func(_ context.Context, _ domain.TableQuery, bucket time.Duration) ([]domain.TimeSeriesPoint, error) {
				got = bucket
				return nil, nil
			},
		}
		svc := NewQueryLogService(repo)

		_, err := svc.TimeSeries(context.Background(), domain.TableQuery{TimeRange: hour}, 0)

		require.NoError(t, err)
		assert.Equal(t, 30*time.Second, got)
	})

	t.Run("explicit bucket wins", func(t *testing.T) {
		t.Parallel()
		var got time.Duration
		repo := &mockQueryLogRepo{
			stackedFn: func(_ context.Context, _ domain.TableQuery, bucket time.Duration) ([]domain.QueryStackedPoint, error) {
				got = bucket
				return nil, nil
			},
		}
		svc := NewQueryLogService(repo)

		_, err := svc.Stacked(context.Background(), domain.TableQuery{TimeRange: hour}, 5*time.Minute)

		require.NoError(t, err)
		assert.Equal(t, 5*time.Minute, got)
	})
}

func TestQueryLogService_GroupedDefaultsLimit(t *testing.T) {
	t.Parallel()

	var got domain.TableQuery
	repo := &mockQueryLogRepo{
		groupedFn: func(_ context.Context, q domain.TableQuery) ([]domain.GroupedQuery, error) {
			got = q
			return nil, nil
		},
	}
	svc := NewQueryLogService(repo)

	_, err := svc.Grouped(context.Background(), domain.TableQuery{})

	require.NoError(t, err)
	assert.Equal(t, DefaultGroupedLimit, got.Limit)
}

func TestQueryLogService_HistogramCapsBuckets(t *testing.T) {
	t.Parallel()

	var got int
	repo := &mockQueryLogRepo{
		histogramFn: func(_ context.Context, _ domain.TableQuery, _ string, topN int) ([]domain.HistogramBucket, error) {
			got = topN
			return nil, nil
		},
	}
	svc := NewQueryLogService(repo)

	_, err := svc.Histogram(context.Background(), domain.TableQuery{}, "type", 500)

	require.NoError(t, err)
	assert.Equal(t, MaxHistogramBuckets, got)
}
