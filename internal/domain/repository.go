package domain

import (
	"context"
	"time"
)

// TableQuery is the common shape of a filtered, sorted, paged request
// against one system table. Zero limit means no LIMIT clause.
type TableQuery struct {
	TimeRange    TimeRange
	Search       string
	Filters      FieldFilters
	RangeFilters RangeFilters
	Sort         SortSpec
	Limit        int
	Offset       int
}

// QueryLogRepository reads system.query_log.
type QueryLogRepository interface {
	List(ctx context.Context, q TableQuery) ([]Row, error)
	Count(ctx context.Context, q TableQuery) (uint64, error)
	TimeSeries(ctx context.Context, q TableQuery, bucket time.Duration) ([]TimeSeriesPoint, error)
	Stacked(ctx context.Context, q TableQuery, bucket time.Duration) ([]QueryStackedPoint, error)
	Grouped(ctx context.Context, q TableQuery) ([]GroupedQuery, error)
	Histogram(ctx context.Context, q TableQuery, field string, topN int) ([]HistogramBucket, error)
	Distinct(ctx context.Context, tr TimeRange, field string, limit int) ([]string, error)
	Columns(ctx context.Context) ([]ColumnMeta, error)
}

// PartLogRepository reads system.part_log.
type PartLogRepository interface {
	List(ctx context.Context, q TableQuery) ([]Row, error)
	Count(ctx context.Context, q TableQuery) (uint64, error)
	TimeSeries(ctx context.Context, q TableQuery, bucket time.Duration) ([]TimeSeriesPoint, error)
	Stacked(ctx context.Context, q TableQuery, bucket time.Duration) ([]PartStackedPoint, error)
	Histogram(ctx context.Context, q TableQuery, field string, topN int) ([]HistogramBucket, error)
	Distinct(ctx context.Context, tr TimeRange, field string, limit int) ([]string, error)
	Columns(ctx context.Context) ([]ColumnMeta, error)
}

// PartsRepository reads system.parts, as raw parts and partition rollups.
type PartsRepository interface {
	List(ctx context.Context, q TableQuery) ([]PartInfo, error)
	Count(ctx context.Context, q TableQuery) (uint64, error)
	Partitions(ctx context.Context, q TableQuery) ([]PartitionInfo, error)
	PartitionCount(ctx context.Context, q TableQuery) (uint64, error)
}

// SystemRepository reads server introspection tables.
type SystemRepository interface {
	Processes(ctx context.Context) ([]ProcessEntry, error)
	Merges(ctx context.Context) ([]MergeEntry, error)
	Mutations(ctx context.Context) ([]MutationEntry, error)
	Metrics(ctx context.Context, search string) ([]MetricEntry, error)
	AsyncMetrics(ctx context.Context, search string) ([]MetricEntry, error)
	Events(ctx context.Context, search string) ([]MetricEntry, error)
	Users(ctx context.Context) ([]UserEntry, error)
	Settings(ctx context.Context, search string) ([]SettingEntry, error)
}

// BrowserRepository reads schema metadata for the drill-down browser.
type BrowserRepository interface {
	Databases(ctx context.Context) ([]DatabaseInfo, error)
	Tables(ctx context.Context, database string) ([]TableInfo, error)
	Columns(ctx context.Context, database, table string) ([]ColumnMeta, error)
	Partitions(ctx context.Context, database, table string) ([]PartitionInfo, error)
	Parts(ctx context.Context, database, table, partition string) ([]PartInfo, error)
	Projections(ctx context.Context, database, table string) ([]ProjectionInfo, error)
	SkipIndexes(ctx context.Context, database, table string) ([]SkipIndexInfo, error)
}

// AnalyzeRepository runs EXPLAIN variants and ad-hoc statements.
type AnalyzeRepository interface {
	Explain(ctx context.Context, kind ExplainType, query string) ([]string, error)
	Execute(ctx context.Context, query string, limit int) (*QueryResult, error)
}
