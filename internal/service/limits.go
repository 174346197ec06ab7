package service

import (
	"time"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

const (
	// DefaultListLimit is the page size applied when a request carries none.
	DefaultListLimit = 1000
	// MaxListLimit caps any requested grid page size.
	MaxListLimit = 10000
	// DefaultGroupedLimit is the row cap for the normalized-query rollup.
	DefaultGroupedLimit = 100
	// MaxHistogramBuckets caps the bars of a filter-panel histogram.
	MaxHistogramBuckets = 50
)

// clampQuery bounds a request's paging before it reaches the repository.
func clampQuery(q domain.TableQuery) domain.TableQuery {
	if q.Limit <= 0 {
		q.Limit = DefaultListLimit
	}
	if q.Limit > MaxListLimit {
		q.Limit = MaxListLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q
}

// chartBucket resolves the series bucket width: an explicit bucket wins,
// otherwise the range picks one sized for the chart.
func chartBucket(tr domain.TimeRange, bucket time.Duration) time.Duration {
	if bucket > 0 {
		return bucket
	}
	return tr.Bucket()
}
