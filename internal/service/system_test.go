package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

func TestSystemService_ConnectionIsConfigOnly(t *testing.T) {
	t.Parallel()

	info := domain.ConnectionInfo{Host: "ch.internal", Port: 9440, Secure: true, User: "monitor"}
	svc := NewSystemService(&mockSystemRepo{}, info)

	// No mock fns are wired; Connection must not touch the repository.
	assert.Equal(t, info, svc.Connection())
}

func TestSystemService_MetricSearchPassesThrough(t *testing.T) {
	t.Parallel()

	var got string
	repo := &mockSystemRepo{
		metricsFn: func(_ context.Context, search string) ([]domain.MetricEntry, error) {
			got = search
			return []domain.MetricEntry{{Name: "MemoryTracking", Value: 1 << 30}}, nil
		},
	}
	svc := NewSystemService(repo, domain.ConnectionInfo{})

	entries, err := svc.Metrics(context.Background(), "memory")

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "memory", got)
}
