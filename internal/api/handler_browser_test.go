package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// === Browser Service Mock ===

type mockBrowserService struct {
	databasesFn   func(ctx context.Context) ([]domain.DatabaseInfo, error)
	tablesFn      func(ctx context.Context, database string) ([]domain.TableInfo, error)
	columnsFn     func(ctx context.Context, database, table string) ([]domain.ColumnMeta, error)
	partitionsFn  func(ctx context.Context, database, table string) ([]domain.PartitionInfo, error)
	partsFn       func(ctx context.Context, database, table, partition string) ([]domain.PartInfo, error)
	projectionsFn func(ctx context.Context, database, table string) ([]domain.ProjectionInfo, error)
	skipIndexesFn func(ctx context.Context, database, table string) ([]domain.SkipIndexInfo, error)
}

func (m *mockBrowserService) Databases(ctx context.Context) ([]domain.DatabaseInfo, error) {
	if m.databasesFn == nil {
		panic("unexpected call to mockBrowserService.Databases")
	}
	return m.databasesFn(ctx)
}

func (m *mockBrowserService) Tables(ctx context.Context, database string) ([]domain.TableInfo, error) {
	if m.tablesFn == nil {
		panic("unexpected call to mockBrowserService.Tables")
	}
	return m.tablesFn(ctx, database)
}

func (m *mockBrowserService) Columns(ctx context.Context, database, table string) ([]domain.ColumnMeta, error) {
	if m.columnsFn == nil {
		panic("unexpected call to mockBrowserService.Columns")
	}
	return m.columnsFn(ctx, database, table)
}

func (m *mockBrowserService) Partitions(ctx context.Context, database, table string) ([]domain.PartitionInfo, error) {
	if m.partitionsFn == nil {
		panic("unexpected call to mockBrowserService.Partitions")
	}
	return m.partitionsFn(ctx, database, table)
}

func (m *mockBrowserService) Parts(ctx context.Context, database, table, partition string) ([]domain.PartInfo, error) {
	if m.partsFn == nil {
		panic("unexpected call to mockBrowserService.Parts")
	}
	return m.partsFn(ctx, database, table, partition)
}

func (m *mockBrowserService) Projections(ctx context.Context, database, table string) ([]domain.ProjectionInfo, error) {
	if m.projectionsFn == nil {
		panic("unexpected call to mockBrowserService.Projections")
	}
	return m.projectionsFn(ctx, database, table)
}

func (m *mockBrowserService) SkipIndexes(ctx context.Context, database, table string) ([]domain.SkipIndexInfo, error) {
	if m.skipIndexesFn == nil {
		panic("unexpected call to mockBrowserService.SkipIndexes")
	}
	return m.skipIndexesFn(ctx, database, table)
}

// === Schema Browser ===

func TestHandler_BrowserDatabases(t *testing.T) {
	t.Parallel()

	svc := &mockBrowserService{
		databasesFn: func(_ context.Context) ([]domain.DatabaseInfo, error) {
			return []domain.DatabaseInfo{{Name: "ecommerce", Engine: "Atomic"}}, nil
		},
	}
	h := &Handler{logger: testLogger(), browser: svc}

	rec := serveAPI(t, h, http.MethodGet, "/browser/databases", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ecommerce")
}

func TestHandler_BrowserParts(t *testing.T) {
	t.Parallel()

	t.Run("forwards the selection path", func(t *testing.T) {
		t.Parallel()

		svc := &mockBrowserService{
			partsFn: func(_ context.Context, database, table, partition string) ([]domain.PartInfo, error) {
				assert.Equal(t, "ecommerce", database)
				assert.Equal(t, "orders", table)
				assert.Equal(t, "202608", partition)
				return []domain.PartInfo{{Name: "202608_1_12_3"}}, nil
			},
		}
		h := &Handler{logger: testLogger(), browser: svc}

		rec := serveAPI(t, h, http.MethodGet, "/browser/parts/ecommerce/orders/202608", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "202608_1_12_3")
	})

	t.Run("maps a service validation error to 400", func(t *testing.T) {
		t.Parallel()

		svc := &mockBrowserService{
			partsFn: func(_ context.Context, _, _, _ string) ([]domain.PartInfo, error) {
				return nil, domain.ErrValidation("partition is required")
			},
		}
		h := &Handler{logger: testLogger(), browser: svc}

		rec := serveAPI(t, h, http.MethodGet, "/browser/parts/ecommerce/orders/x", nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeError(t, rec).Message, "partition")
	})
}

func TestHandler_BrowserColumns(t *testing.T) {
	t.Parallel()

	svc := &mockBrowserService{
		columnsFn: func(_ context.Context, database, table string) ([]domain.ColumnMeta, error) {
			assert.Equal(t, "ecommerce", database)
			assert.Equal(t, "page_views", table)
			return []domain.ColumnMeta{{Name: "viewed_at", Type: "DateTime"}}, nil
		},
	}
	h := &Handler{logger: testLogger(), browser: svc}

	rec := serveAPI(t, h, http.MethodGet, "/browser/columns/ecommerce/page_views", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "viewed_at")
}
