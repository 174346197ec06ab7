package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
	"github.com/benjaminwootton/QueryDog-sub000/internal/state"
)

// Load operation names. Each table's load is registered under the table
// name itself, so handlers can ensure by string(table) without mapping.
const (
	OpQueryLog   = string(domain.TableQueryLog)
	OpPartLog    = string(domain.TablePartLog)
	OpParts      = string(domain.TableParts)
	OpPartitions = string(domain.TablePartitions)
)

// tableQuery converts a store snapshot into the repository request shape.
func tableQuery(p state.FetchParams) domain.TableQuery {
	return domain.TableQuery{
		TimeRange:    p.TimeRange,
		Search:       p.Search,
		Filters:      p.Filters,
		RangeFilters: p.RangeFilters,
		Sort:         p.Sort,
		Limit:        p.Page.PageSize,
		Offset:       p.Page.Offset(),
	}
}

// logFields lists the store fields a log-table load depends on.
func logFields(t domain.LogicalTable) []state.Field {
	return []state.Field{
		state.FieldTimeRange,
		state.FieldSearch,
		state.FieldBucket,
		state.FiltersField(t),
		state.RangeFiltersField(t),
		state.SortField(t),
		state.PageField(t),
	}
}

// gridFields lists the store fields a stateful-table load depends on. The
// parts grids reflect current state, so the time window is not among them.
func gridFields(t domain.LogicalTable) []state.Field {
	return []state.Field{
		state.FiltersField(t),
		state.RangeFiltersField(t),
		state.SortField(t),
		state.PageField(t),
	}
}

// RegisterLoadOps installs the four table loads. Each Run snapshots the
// store parameters once, fans its fetches out, and returns an apply closure
// installing every slot in one step, so a partially complete run never shows.
func RegisterLoadOps(coord *state.Coordinator, store *state.Store, services Services) {
	coord.Register(state.LoadOp{
		Name:   OpQueryLog,
		Table:  domain.TableQueryLog,
		Fields: logFields(domain.TableQueryLog),
		Init: func(ctx context.Context) error {
			meta, err := services.QueryLog.Columns(ctx)
			if err != nil {
				return err
			}
			store.SetColumns(domain.TableQueryLog, domain.DefaultColumnConfigs(domain.TableQueryLog, meta))
			return nil
		},
		Run: func(ctx context.Context) (func(), error) {
			p := store.FetchParams(domain.TableQueryLog)
			q := tableQuery(p)
			var d state.QueryLogData
			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				d.Entries, err = services.QueryLog.List(ctx, q)
				return err
			})
			g.Go(func() error {
				var err error
				d.Series, err = services.QueryLog.TimeSeries(ctx, q, p.Bucket)
				return err
			})
			g.Go(func() error {
				var err error
				d.Stacked, err = services.QueryLog.Stacked(ctx, q, p.Bucket)
				return err
			})
			g.Go(func() error {
				total, err := services.QueryLog.Count(ctx, q)
				d.Total = int(total)
				return err
			})
			if err := g.Wait(); err != nil {
				return nil, err
			}
			return func() { store.ApplyQueryLog(d) }, nil
		},
	})

	coord.Register(state.LoadOp{
		Name:   OpPartLog,
		Table:  domain.TablePartLog,
		Fields: logFields(domain.TablePartLog),
		Init: func(ctx context.Context) error {
			meta, err := services.PartLog.Columns(ctx)
			if err != nil {
				return err
			}
			store.SetColumns(domain.TablePartLog, domain.DefaultColumnConfigs(domain.TablePartLog, meta))
			return nil
		},
		Run: func(ctx context.Context) (func(), error) {
			p := store.FetchParams(domain.TablePartLog)
			q := tableQuery(p)
			var d state.PartLogData
			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				d.Entries, err = services.PartLog.List(ctx, q)
				return err
			})
			g.Go(func() error {
				var err error
				d.Series, err = services.PartLog.TimeSeries(ctx, q, p.Bucket)
				return err
			})
			g.Go(func() error {
				var err error
				d.Stacked, err = services.PartLog.Stacked(ctx, q, p.Bucket)
				return err
			})
			g.Go(func() error {
				total, err := services.PartLog.Count(ctx, q)
				d.Total = int(total)
				return err
			})
			if err := g.Wait(); err != nil {
				return nil, err
			}
			return func() { store.ApplyPartLog(d) }, nil
		},
	})

	coord.Register(state.LoadOp{
		Name:   OpParts,
		Table:  domain.TableParts,
		Fields: gridFields(domain.TableParts),
		Run: func(ctx context.Context) (func(), error) {
			q := tableQuery(store.FetchParams(domain.TableParts))
			var d state.PartsData
			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				d.Entries, err = services.Tables.Parts(ctx, q)
				return err
			})
			g.Go(func() error {
				total, err := services.Tables.PartCount(ctx, q)
				d.Total = int(total)
				return err
			})
			if err := g.Wait(); err != nil {
				return nil, err
			}
			return func() { store.ApplyParts(d) }, nil
		},
	})

	coord.Register(state.LoadOp{
		Name:   OpPartitions,
		Table:  domain.TablePartitions,
		Fields: gridFields(domain.TablePartitions),
		Run: func(ctx context.Context) (func(), error) {
			q := tableQuery(store.FetchParams(domain.TablePartitions))
			var d state.PartitionsData
			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				d.Entries, err = services.Tables.Partitions(ctx, q)
				return err
			})
			g.Go(func() error {
				total, err := services.Tables.PartitionCount(ctx, q)
				d.Total = int(total)
				return err
			})
			if err := g.Wait(); err != nil {
				return nil, err
			}
			return func() { store.ApplyPartitions(d) }, nil
		},
	})
}
