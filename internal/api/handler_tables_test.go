package api

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// === Tables Service Mock ===

type mockTablesService struct {
	partsFn          func(ctx context.Context, q domain.TableQuery) ([]domain.PartInfo, error)
	partCountFn      func(ctx context.Context, q domain.TableQuery) (uint64, error)
	partitionsFn     func(ctx context.Context, q domain.TableQuery) ([]domain.PartitionInfo, error)
	partitionCountFn func(ctx context.Context, q domain.TableQuery) (uint64, error)
}

func (m *mockTablesService) Parts(ctx context.Context, q domain.TableQuery) ([]domain.PartInfo, error) {
	if m.partsFn == nil {
		panic("unexpected call to mockTablesService.Parts")
	}
	return m.partsFn(ctx, q)
}

func (m *mockTablesService) PartCount(ctx context.Context, q domain.TableQuery) (uint64, error) {
	if m.partCountFn == nil {
		panic("unexpected call to mockTablesService.PartCount")
	}
	return m.partCountFn(ctx, q)
}

func (m *mockTablesService) Partitions(ctx context.Context, q domain.TableQuery) ([]domain.PartitionInfo, error) {
	if m.partitionsFn == nil {
		panic("unexpected call to mockTablesService.Partitions")
	}
	return m.partitionsFn(ctx, q)
}

func (m *mockTablesService) PartitionCount(ctx context.Context, q domain.TableQuery) (uint64, error) {
	if m.partitionCountFn == nil {
		panic("unexpected call to mockTablesService.PartitionCount")
	}
	return m.partitionCountFn(ctx, q)
}

// === Parts Grid ===

func TestHandler_ListParts(t *testing.T) {
	t.Parallel()

	t.Run("works without a time window", func(t *testing.T) {
		t.Parallel()

		var got domain.TableQuery
		svc := &mockTablesService{
			partsFn: func(_ context.Context, q domain.TableQuery) ([]domain.PartInfo, error) {
				got = q
				return []domain.PartInfo{{Database: "ecommerce", Table: "orders", Name: "202608_1_12_3"}}, nil
			},
		}
		h := &Handler{logger: testLogger(), tables: svc}

		params := url.Values{}
		params.Set("sortField", "bytes_on_disk")
		params.Set("sortOrder", "desc")
		params.Set("limit", "250")
		params.Set("filters", `{"database":["ecommerce"]}`)

		rec := serveAPI(t, h, http.MethodGet, "/parts?"+params.Encode(), nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, got.TimeRange.Start.IsZero())
		assert.Equal(t, domain.SortSpec{Field: "bytes_on_disk", Order: domain.SortDesc}, got.Sort)
		assert.Equal(t, 250, got.Limit)
		assert.Equal(t, domain.FieldFilters{"database": {"ecommerce"}}, got.Filters)
		assert.Contains(t, rec.Body.String(), "202608_1_12_3")
	})

	t.Run("rejects a negative offset", func(t *testing.T) {
		t.Parallel()

		h := &Handler{logger: testLogger(), tables: &mockTablesService{}}
		rec := serveAPI(t, h, http.MethodGet, "/parts?offset=-5", nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeError(t, rec).Message, "offset")
	})
}

func TestHandler_CountPartitions(t *testing.T) {
	t.Parallel()

	svc := &mockTablesService{
		partitionCountFn: func(_ context.Context, _ domain.TableQuery) (uint64, error) {
			return 36, nil
		},
	}
	h := &Handler{logger: testLogger(), tables: svc}

	rec := serveAPI(t, h, http.MethodGet, "/partitions/count", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total":36}`, rec.Body.String())
}
