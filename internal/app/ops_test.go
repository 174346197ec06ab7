package app

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
	"github.com/benjaminwootton/QueryDog-sub000/internal/service"
	"github.com/benjaminwootton/QueryDog-sub000/internal/state"
	"github.com/benjaminwootton/QueryDog-sub000/internal/testutil"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type opsEnv struct {
	store    *state.Store
	coord    *state.Coordinator
	queryLog *testutil.MockQueryLogRepo
	partLog  *testutil.MockPartLogRepo
	parts    *testutil.MockPartsRepo
}

// newOpsEnv registers the production load operations over mock repositories,
// so tests cover the same wiring main() runs.
func newOpsEnv(t *testing.T) *opsEnv {
	t.Helper()
	env := &opsEnv{
		queryLog: &testutil.MockQueryLogRepo{},
		partLog:  &testutil.MockPartLogRepo{},
		parts:    &testutil.MockPartsRepo{},
	}
	services := Services{
		QueryLog: service.NewQueryLogService(env.queryLog),
		PartLog:  service.NewPartLogService(env.partLog),
		Tables:   service.NewTablesService(env.parts),
	}
	env.store = state.New(25)
	env.coord = state.NewCoordinator(env.store, testLogger())
	RegisterLoadOps(env.coord, env.store, services)
	return env
}

func TestRegisterLoadOps(t *testing.T) {
	t.Parallel()
	env := newOpsEnv(t)

	assert.Equal(t, []string{OpQueryLog, OpPartLog, OpParts, OpPartitions}, env.coord.Names())
}

func TestQueryLogLoad(t *testing.T) {
	t.Parallel()
	env := newOpsEnv(t)

	var got domain.TableQuery
	env.queryLog.ListFn = func(_ context.Context, q domain.TableQuery) ([]domain.Row, error) {
		got = q
		return testutil.QueryLogRows(), nil
	}

	require.NoError(t, env.coord.Ensure(context.Background(), OpQueryLog))

	d := env.store.QueryLog()
	assert.Len(t, d.Entries, 3)
	assert.Equal(t, testutil.QueryLogTotal, d.Total)
	assert.Len(t, d.Series, 3)
	assert.NotEmpty(t, d.Stacked)
	assert.Empty(t, env.store.Error(domain.TableQueryLog))

	// The run snapshots the store's defaults into one repository request.
	assert.Equal(t, domain.FieldFilters{"type": {"QueryFinish"}}, got.Filters)
	assert.Equal(t, domain.SortSpec{Field: "event_time", Order: domain.SortDesc}, got.Sort)
	assert.Equal(t, 25, got.Limit)
	assert.Zero(t, got.Offset)

	cols := env.store.Columns(domain.TableQueryLog)
	require.Len(t, cols, 10)
	visible := 0
	for _, c := range cols {
		if c.Visible {
			visible++
		}
	}
	assert.Equal(t, 8, visible)
}

func TestPartLogLoad(t *testing.T) {
	t.Parallel()
	env := newOpsEnv(t)

	require.NoError(t, env.coord.Ensure(context.Background(), OpPartLog))

	d := env.store.PartLog()
	assert.Len(t, d.Entries, 2)
	assert.Equal(t, testutil.PartLogTotal, d.Total)
	assert.NotEmpty(t, env.store.Columns(domain.TablePartLog))
}

func TestPartsAndPartitionsLoad(t *testing.T) {
	t.Parallel()
	env := newOpsEnv(t)
	ctx := context.Background()

	require.NoError(t, env.coord.Ensure(ctx, OpParts))
	require.NoError(t, env.coord.Ensure(ctx, OpPartitions))

	parts := env.store.Parts()
	assert.Len(t, parts.Entries, 3)
	assert.Equal(t, testutil.PartsTotal, parts.Total)

	partitions := env.store.Partitions()
	assert.Len(t, partitions.Entries, 2)
	assert.Equal(t, testutil.PartitionTotal, partitions.Total)
}

func TestGridLoadsIgnoreTimeRange(t *testing.T) {
	t.Parallel()
	env := newOpsEnv(t)
	ctx := context.Background()

	var partLists, logLists atomic.Int64
	env.parts.ListFn = func(_ context.Context, _ domain.TableQuery) ([]domain.PartInfo, error) {
		partLists.Add(1)
		return testutil.PartRows(), nil
	}
	env.queryLog.ListFn = func(_ context.Context, _ domain.TableQuery) ([]domain.Row, error) {
		logLists.Add(1)
		return testutil.QueryLogRows(), nil
	}

	require.NoError(t, env.coord.Ensure(ctx, OpParts))
	require.NoError(t, env.coord.Ensure(ctx, OpQueryLog))

	env.store.SetTimeRange(domain.LastHours(6))

	// The parts grid reflects current state, so a window change must not
	// refetch it; the log load depends on the window and must.
	require.NoError(t, env.coord.Ensure(ctx, OpParts))
	require.NoError(t, env.coord.Ensure(ctx, OpQueryLog))
	assert.Equal(t, int64(1), partLists.Load())
	assert.Equal(t, int64(2), logLists.Load())
}

func TestLoadFailureIsolation(t *testing.T) {
	t.Parallel()
	env := newOpsEnv(t)
	ctx := context.Background()

	env.queryLog.CountFn = func(_ context.Context, _ domain.TableQuery) (uint64, error) {
		return 0, errors.New("code 159: timeout exceeded")
	}

	err := env.coord.Ensure(ctx, OpQueryLog)
	require.Error(t, err)
	assert.Contains(t, env.store.Error(domain.TableQueryLog), "timeout exceeded")
	assert.Empty(t, env.store.QueryLog().Entries, "failed run must not install partial data")

	// Other tables keep loading.
	require.NoError(t, env.coord.Ensure(ctx, OpPartLog))
	assert.Empty(t, env.store.Error(domain.TablePartLog))

	// Recovery: clear the fault and force a refresh.
	env.queryLog.CountFn = nil
	env.store.Refresh()
	require.NoError(t, env.coord.Ensure(ctx, OpQueryLog))
	assert.Empty(t, env.store.Error(domain.TableQueryLog))
	assert.Equal(t, testutil.QueryLogTotal, env.store.QueryLog().Total)
}

func TestColumnInitLatches(t *testing.T) {
	t.Parallel()
	env := newOpsEnv(t)
	ctx := context.Background()

	var columnCalls atomic.Int64
	env.queryLog.ColumnsFn = func(_ context.Context) ([]domain.ColumnMeta, error) {
		columnCalls.Add(1)
		return testutil.QueryLogColumns(), nil
	}

	require.NoError(t, env.coord.Ensure(ctx, OpQueryLog))
	env.store.SetSearch("orders")
	require.NoError(t, env.coord.Ensure(ctx, OpQueryLog))

	assert.Equal(t, int64(1), columnCalls.Load(), "column metadata is fetched once")
}

func TestColumnInitRetriesUntilSuccess(t *testing.T) {
	t.Parallel()
	env := newOpsEnv(t)
	ctx := context.Background()

	env.queryLog.ColumnsFn = func(_ context.Context) ([]domain.ColumnMeta, error) {
		return nil, errors.New("connection refused")
	}

	err := env.coord.Ensure(ctx, OpQueryLog)
	require.Error(t, err)
	assert.Empty(t, env.store.Columns(domain.TableQueryLog))

	env.queryLog.ColumnsFn = nil
	env.store.Refresh()
	require.NoError(t, env.coord.Ensure(ctx, OpQueryLog))
	assert.Len(t, env.store.Columns(domain.TableQueryLog), 10)
}
