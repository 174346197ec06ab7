package service

import (
	"context"
	"time"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// === Query Log Repository Mock ===

type mockQueryLogRepo struct {
	listFn       func(ctx context.Context, q domain.TableQuery) ([]domain.Row, error)
	countFn      func(ctx context.Context, q domain.TableQuery) (uint64, error)
	timeSeriesFn func(ctx context.Context, q domain.TableQuery, bucket time.Duration) ([]domain.TimeSeriesPoint, error)
	stackedFn    func(ctx context.Context, q domain.TableQuery, bucket time.Duration) ([]domain.QueryStackedPoint, error)
	groupedFn    func(ctx context.Context, q domain.TableQuery) ([]domain.GroupedQuery, error)
	histogramFn  func(ctx context.Context, q domain.TableQuery, field string, topN int) ([]domain.HistogramBucket, error)
	distinctFn   func(ctx context.Context, tr domain.TimeRange, field string, limit int) ([]string, error)
	columnsFn    func(ctx context.Context) ([]domain.ColumnMeta, error)
}

func (m *mockQueryLogRepo) List(ctx context.Context, q domain.TableQuery) ([]domain.Row, error) {
	if m.listFn != nil {
		return m.listFn(ctx, q)
	}
	panic("unexpected call to mockQueryLogRepo.List")
}

func (m *mockQueryLogRepo) Count(ctx context.Context, q domain.TableQuery) (uint64, error) {
	if m.countFn != nil {
		return m.countFn(ctx, q)
	}
	panic("unexpected call to mockQueryLogRepo.Count")
}

func (m *mockQueryLogRepo) TimeSeries(ctx context.Context, q domain.TableQuery, bucket time.Duration) ([]domain.TimeSeriesPoint, error) {
	if m.timeSeriesFn != nil {
		return m.timeSeriesFn(ctx, q, bucket)
	}
	panic("unexpected call to mockQueryLogRepo.TimeSeries")
}

func (m *mockQueryLogRepo) Stacked(ctx context.Context, q domain.TableQuery, bucket time.Duration) ([]domain.QueryStackedPoint, error) {
	if m.stackedFn != nil {
		return m.stackedFn(ctx, q, bucket)
	}
	panic("unexpected call to mockQueryLogRepo.Stacked")
}

func (m *mockQueryLogRepo) Grouped(ctx context.Context, q domain.TableQuery) ([]domain.GroupedQuery, error) {
	if m.groupedFn != nil {
		return m.groupedFn(ctx, q)
	}
	panic("unexpected call to mockQueryLogRepo.Grouped")
}

func (m *mockQueryLogRepo) Histogram(ctx context.Context, q domain.TableQuery, field string, topN int) ([]domain.HistogramBucket, error) {
	if m.histogramFn != nil {
		return m.histogramFn(ctx, q, field, topN)
	}
	panic("unexpected call to mockQueryLogRepo.Histogram")
}

func (m *mockQueryLogRepo) Distinct(ctx context.Context, tr domain.TimeRange, field string, limit int) ([]string, error) {
	if m.distinctFn != nil {
		return m.distinctFn(ctx, tr, field, limit)
	}
	panic("unexpected call to mockQueryLogRepo.Distinct")
}

func (m *mockQueryLogRepo) Columns(ctx context.Context) ([]domain.ColumnMeta, error) {
	if m.columnsFn != nil {
		return m.columnsFn(ctx)
	}
	panic("unexpected call to mockQueryLogRepo.Columns")
}

// === Part Log Repository Mock ===

type mockPartLogRepo struct {
	listFn       func(ctx context.Context, q domain.TableQuery) ([]domain.Row, error)
	countFn      func(ctx context.Context, q domain.TableQuery) (uint64, error)
	timeSeriesFn func(ctx context.Context, q domain.TableQuery, bucket time.Duration) ([]domain.TimeSeriesPoint, error)
	stackedFn    func(ctx context.Context, q domain.TableQuery, bucket time.Duration) ([]domain.PartStackedPoint, error)
	histogramFn  func(ctx context.Context, q domain.TableQuery, field string, topN int) ([]domain.HistogramBucket, error)
	distinctFn   func(ctx context.Context, tr domain.TimeRange, field string, limit int) ([]string, error)
	columnsFn    func(ctx context.Context) ([]domain.ColumnMeta, error)
}

func (m *mockPartLogRepo) List(ctx context.Context, q domain.TableQuery) ([]domain.Row, error) {
	if m.listFn != nil {
		return m.listFn(ctx, q)
	}
	panic("unexpected call to mockPartLogRepo.List")
}

func (m *mockPartLogRepo) Count(ctx context.Context, q domain.TableQuery) (uint64, error) {
	if m.countFn != nil {
		return m.countFn(ctx, q)
	}
	panic("unexpected call to mockPartLogRepo.Count")
}

func (m *mockPartLogRepo) TimeSeries(ctx context.Context, q domain.TableQuery, bucket time.Duration) ([]domain.TimeSeriesPoint, error) {
	if m.timeSeriesFn != nil {
		return m.timeSeriesFn(ctx, q, bucket)
	}
	panic("unexpected call to mockPartLogRepo.TimeSeries")
}

func (m *mockPartLogRepo) Stacked(ctx context.Context, q domain.TableQuery, bucket time.Duration) ([]domain.PartStackedPoint, error) {
	if m.stackedFn != nil {
		return m.stackedFn(ctx, q, bucket)
	}
	panic("unexpected call to mockPartLogRepo.Stacked")
}

func (m *mockPartLogRepo) Histogram(ctx context.Context, q domain.TableQuery, field string, topN int) ([]domain.HistogramBucket, error) {
	if m.histogramFn != nil {
		return m.histogramFn(ctx, q, field, topN)
	}
	panic("unexpected call to mockPartLogRepo.Histogram")
}

func (m *mockPartLogRepo) Distinct(ctx context.Context, tr domain.TimeRange, field string, limit int) ([]string, error) {
	if m.distinctFn != nil {
		return m.distinctFn(ctx, tr, field, limit)
	}
	panic("unexpected call to mockPartLogRepo.Distinct")
}

func (m *mockPartLogRepo) Columns(ctx context.Context) ([]domain.ColumnMeta, error) {
	if m.columnsFn != nil {
		return m.columnsFn(ctx)
	}
	panic("unexpected call to mockPartLogRepo.Columns")
}

// === Parts Repository Mock ===

type mockPartsRepo struct {
	listFn           func(ctx context.Context, q domain.TableQuery) ([]domain.PartInfo, error)
	countFn          func(ctx context.Context, q domain.TableQuery) (uint64, error)
	partitionsFn     func(ctx context.Context, q domain.TableQuery) ([]domain.PartitionInfo, error)
	partitionCountFn func(ctx context.Context, q domain.TableQuery) (uint64, error)
}

func (m *mockPartsRepo) List(ctx context.Context, q domain.TableQuery) ([]domain.PartInfo, error) {
	if m.listFn != nil {
		return m.listFn(ctx, q)
	}
	panic("unexpected call to mockPartsRepo.List")
}

func (m *mockPartsRepo) Count(ctx context.Context, q domain.TableQuery) (uint64, error) {
	if m.countFn != nil {
		return m.countFn(ctx, q)
	}
	panic("unexpected call to mockPartsRepo.Count")
}

func (m *mockPartsRepo) Partitions(ctx context.Context, q domain.TableQuery) ([]domain.PartitionInfo, error) {
	if m.partitionsFn != nil {
		return m.partitionsFn(ctx, q)
	}
	panic("unexpected call to mockPartsRepo.Partitions")
}

func (m *mockPartsRepo) PartitionCount(ctx context.Context, q domain.TableQuery) (uint64, error) {
	if m.partitionCountFn != nil {
		return m.partitionCountFn(ctx, q)
	}
	panic("unexpected call to mockPartsRepo.PartitionCount")
}

// === System Repository Mock ===

type mockSystemRepo struct {
	processesFn    func(ctx context.Context) ([]domain.ProcessEntry, error)
	mergesFn       func(ctx context.Context) ([]domain.MergeEntry, error)
	mutationsFn    func(ctx context.Context) ([]domain.MutationEntry, error)
	metricsFn      func(ctx context.Context, search string) ([]domain.MetricEntry, error)
	asyncMetricsFn func(ctx context.Context, search string) ([]domain.MetricEntry, error)
	eventsFn       func(ctx context.Context, search string) ([]domain.MetricEntry, error)
	usersFn        func(ctx context.Context) ([]domain.UserEntry, error)
	settingsFn     func(ctx context.Context, search string) ([]domain.SettingEntry, error)
}

func (m *mockSystemRepo) Processes(ctx context.Context) ([]domain.ProcessEntry, error) {
	if m.processesFn != nil {
		return m.processesFn(ctx)
	}
	panic("unexpected call to mockSystemRepo.Processes")
}

func (m *mockSystemRepo) Merges(ctx context.Context) ([]domain.MergeEntry, error) {
	if m.mergesFn != nil {
		return m.mergesFn(ctx)
	}
	panic("unexpected call to mockSystemRepo.Merges")
}

func (m *mockSystemRepo) Mutations(ctx context.Context) ([]domain.MutationEntry, error) {
	if m.mutationsFn != nil {
		return m.mutationsFn(ctx)
	}
	panic("unexpected call to mockSystemRepo.Mutations")
}

func (m *mockSystemRepo) Metrics(ctx context.Context, search string) ([]domain.MetricEntry, error) {
	if m.metricsFn != nil {
		return m.metricsFn(ctx, search)
	}
	panic("unexpected call to mockSystemRepo.Metrics")
}

func (m *mockSystemRepo) AsyncMetrics(ctx context.Context, search string) ([]domain.MetricEntry, error) {
	if m.asyncMetricsFn != nil {
		return m.asyncMetricsFn(ctx, search)
	}
	panic("unexpected call to mockSystemRepo.AsyncMetrics")
}

func (m *mockSystemRepo) Events(ctx context.Context, search string) ([]domain.MetricEntry, error) {
	if m.eventsFn != nil {
		return m.eventsFn(ctx, search)
	}
	panic("unexpected call to mockSystemRepo.Events")
}

func (m *mockSystemRepo) Users(ctx context.Context) ([]domain.UserEntry, error) {
	if m.usersFn != nil {
		return m.usersFn(ctx)
	}
	panic("unexpected call to mockSystemRepo.Users")
}

func (m *mockSystemRepo) Settings(ctx context.Context, search string) ([]domain.SettingEntry, error) {
	if m.settingsFn != nil {
		return m.settingsFn(ctx, search)
	}
	panic("unexpected call to mockSystemRepo.Settings")
}

// === Browser Repository Mock ===

type mockBrowserRepo struct {
	databasesFn   func(ctx context.Context) ([]domain.DatabaseInfo, error)
	tablesFn      func(ctx context.Context, database string) ([]domain.TableInfo, error)
	columnsFn     func(ctx context.Context, database, table string) ([]domain.ColumnMeta, error)
	partitionsFn  func(ctx context.Context, database, table string) ([]domain.PartitionInfo, error)
	partsFn       func(ctx context.Context, database, table, partition string) ([]domain.PartInfo, error)
	projectionsFn func(ctx context.Context, database, table string) ([]domain.ProjectionInfo, error)
	skipIndexesFn func(ctx context.Context, database, table string) ([]domain.SkipIndexInfo, error)
}

func (m *mockBrowserRepo) Databases(ctx context.Context) ([]domain.DatabaseInfo, error) {
	if m.databasesFn != nil {
		return m.databasesFn(ctx)
	}
	panic("unexpected call to mockBrowserRepo.Databases")
}

func (m *mockBrowserRepo) Tables(ctx context.Context, database string) ([]domain.TableInfo, error) {
	if m.tablesFn != nil {
		return m.tablesFn(ctx, database)
	}
	panic("unexpected call to mockBrowserRepo.Tables")
}

func (m *mockBrowserRepo) Columns(ctx context.Context, database, table string) ([]domain.ColumnMeta, error) {
	if m.columnsFn != nil {
		return m.columnsFn(ctx, database, table)
	}
	panic("unexpected call to mockBrowserRepo.Columns")
}

func (m *mockBrowserRepo) Partitions(ctx context.Context, database, table string) ([]domain.PartitionInfo, error) {
	if m.partitionsFn != nil {
		return m.partitionsFn(ctx, database, table)
	}
	panic("unexpected call to mockBrowserRepo.Partitions")
}

func (m *mockBrowserRepo) Parts(ctx context.Context, database, table, partition string) ([]domain.PartInfo, error) {
	if m.partsFn != nil {
		return m.partsFn(ctx, database, table, partition)
	}
	panic("unexpected call to mockBrowserRepo.Parts")
}

func (m *mockBrowserRepo) Projections(ctx context.Context, database, table string) ([]domain.ProjectionInfo, error) {
	if m.projectionsFn != nil {
		return m.projectionsFn(ctx, database, table)
	}
	panic("unexpected call to mockBrowserRepo.Projections")
}

func (m *mockBrowserRepo) SkipIndexes(ctx context.Context, database, table string) ([]domain.SkipIndexInfo, error) {
	if m.skipIndexesFn != nil {
		return m.skipIndexesFn(ctx, database, table)
	}
	panic("unexpected call to mockBrowserRepo.SkipIndexes")
}

// === Analyze Repository Mock ===

type mockAnalyzeRepo struct {
	explainFn func(ctx context.Context, kind domain.ExplainType, query string) ([]string, error)
	executeFn func(ctx context.Context, query string, limit int) (*domain.QueryResult, error)
}

func (m *mockAnalyzeRepo) Explain(ctx context.Context, kind domain.ExplainType, query string) ([]string, error) {
	if m.explainFn != nil {
		return m.explainFn(ctx, kind, query)
	}
	panic("unexpected call to mockAnalyzeRepo.Explain")
}

func (m *mockAnalyzeRepo) Execute(ctx context.Context, query string, limit int) (*domain.QueryResult, error) {
	if m.executeFn != nil {
		return m.executeFn(ctx, query, limit)
	}
	panic("unexpected call to mockAnalyzeRepo.Execute")
}
