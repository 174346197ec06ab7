// Package testutil provides shared mock repositories and canned fixture
// data for tests across the codebase. Every mock answers from the package
// fixtures unless its Fn field is set, so handler-level tests wire only the
// calls they assert on.
package testutil

import (
	"context"
	"time"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// FixtureTime anchors every canned timestamp so assertions stay stable.
var FixtureTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// Fixture totals returned by the Count defaults. Larger than the fixture
// row slices so pagination math is exercised.
const (
	QueryLogTotal  = 120
	PartLogTotal   = 57
	PartsTotal     = 3
	PartitionTotal = 2
)

func Uint64Ptr(v uint64) *uint64 { return &v }

// === Fixtures ===

// QueryLogRows returns three finished queries in descending event_time.
func QueryLogRows() []domain.Row {
	return []domain.Row{
		{
			"query_id":          domain.StringValue("q-0001"),
			"event_time":        domain.TimeValue(FixtureTime),
			"type":              domain.StringValue("QueryFinish"),
			"query_kind":        domain.StringValue("Select"),
			"query":             domain.StringValue("SELECT count() FROM ecommerce.orders"),
			"query_duration_ms": domain.NumberValue(482),
			"memory_usage":      domain.NumberValue(52428800),
			"read_rows":         domain.NumberValue(150000),
			"user":              domain.StringValue("default"),
		},
		{
			"query_id":          domain.StringValue("q-0002"),
			"event_time":        domain.TimeValue(FixtureTime.Add(-time.Minute)),
			"type":              domain.StringValue("QueryFinish"),
			"query_kind":        domain.StringValue("Insert"),
			"query":             domain.StringValue("INSERT INTO ecommerce.orders VALUES"),
			"query_duration_ms": domain.NumberValue(95),
			"memory_usage":      domain.NumberValue(8388608),
			"read_rows":         domain.NumberValue(0),
			"user":              domain.StringValue("app_writer"),
		},
		{
			"query_id":          domain.StringValue("q-0003"),
			"event_time":        domain.TimeValue(FixtureTime.Add(-2 * time.Minute)),
			"type":              domain.StringValue("QueryFinish"),
			"query_kind":        domain.StringValue("Select"),
			"query":             domain.StringValue("SELECT * FROM ecommerce.customers LIMIT 10"),
			"query_duration_ms": domain.NumberValue(12),
			"memory_usage":      domain.NumberValue(1048576),
			"read_rows":         domain.NumberValue(10),
			"user":              domain.StringValue("default"),
		},
	}
}

func QueryLogColumns() []domain.ColumnMeta {
	return []domain.ColumnMeta{
		{Name: "event_time", Type: "DateTime"},
		{Name: "type", Type: "Enum8"},
		{Name: "query_kind", Type: "LowCardinality(String)"},
		{Name: "query", Type: "String"},
		{Name: "query_duration_ms", Type: "UInt64"},
		{Name: "read_rows", Type: "UInt64"},
		{Name: "memory_usage", Type: "Int64"},
		{Name: "user", Type: "LowCardinality(String)"},
		{Name: "query_id", Type: "String"},
		{Name: "exception", Type: "String"},
	}
}

func QueryLogSeries() []domain.TimeSeriesPoint {
	return []domain.TimeSeriesPoint{
		{Time: domain.WireTime(FixtureTime.Add(-2 * time.Minute)), Count: 14, AvgDurationMs: 120, SumDurationMs: 1680, AvgMemoryUsage: 4 << 20, AvgReadRows: 900},
		{Time: domain.WireTime(FixtureTime.Add(-time.Minute)), Count: 9, AvgDurationMs: 80, SumDurationMs: 720, AvgMemoryUsage: 2 << 20, AvgReadRows: 400},
		{Time: domain.WireTime(FixtureTime), Count: 21, AvgDurationMs: 310, SumDurationMs: 6510, AvgMemoryUsage: 9 << 20, AvgReadRows: 2500},
	}
}

func QueryLogStacked() []domain.QueryStackedPoint {
	return []domain.QueryStackedPoint{
		{Time: domain.WireTime(FixtureTime.Add(-2 * time.Minute)), Select: 10, Insert: 3, Delete: 0, Other: 1},
		{Time: domain.WireTime(FixtureTime.Add(-time.Minute)), Select: 6, Insert: 2, Delete: 1, Other: 0},
		{Time: domain.WireTime(FixtureTime), Select: 15, Insert: 4, Delete: 0, Other: 2},
	}
}

func QueryLogHistogram(field string) []domain.HistogramBucket {
	switch field {
	case "user":
		return []domain.HistogramBucket{{Name: "default", Count: 80}, {Name: "app_writer", Count: 40}}
	case "query_kind":
		return []domain.HistogramBucket{{Name: "Select", Count: 74}, {Name: "Insert", Count: 38}, {Name: "Delete", Count: 8}}
	default:
		return []domain.HistogramBucket{{Name: "QueryFinish", Count: 101}, {Name: "ExceptionWhileProcessing", Count: 19}}
	}
}

func GroupedQueries() []domain.GroupedQuery {
	return []domain.GroupedQuery{
		{NormalizedHash: "778899", Query: "SELECT count() FROM ecommerce.orders", Count: 40, AvgDurationMs: 410, MaxDurationMs: 900, SumReadRows: 6000000, SumMemoryUsage: 2 << 30},
		{NormalizedHash: "112233", Query: "SELECT * FROM ecommerce.customers LIMIT ?", Count: 25, AvgDurationMs: 15, MaxDurationMs: 60, SumReadRows: 250, SumMemoryUsage: 32 << 20},
	}
}

// PartLogRows returns two merge-tree part events.
func PartLogRows() []domain.Row {
	return []domain.Row{
		{
			"event_time":    domain.TimeValue(FixtureTime),
			"event_type":    domain.StringValue("MergeParts"),
			"database":      domain.StringValue("ecommerce"),
			"table":         domain.StringValue("orders"),
			"part_name":     domain.StringValue("202506_1_6_1"),
			"rows":          domain.NumberValue(420000),
			"size_in_bytes": domain.NumberValue(7340032),
			"duration_ms":   domain.NumberValue(340),
		},
		{
			"event_time":    domain.TimeValue(FixtureTime.Add(-90 * time.Second)),
			"event_type":    domain.StringValue("NewPart"),
			"database":      domain.StringValue("ecommerce"),
			"table":         domain.StringValue("order_items"),
			"part_name":     domain.StringValue("202506_7_7_0"),
			"rows":          domain.NumberValue(1200),
			"size_in_bytes": domain.NumberValue(65536),
			"duration_ms":   domain.NumberValue(12),
		},
	}
}

func PartLogColumns() []domain.ColumnMeta {
	return []domain.ColumnMeta{
		{Name: "event_time", Type: "DateTime"},
		{Name: "event_type", Type: "Enum8"},
		{Name: "database", Type: "String"},
		{Name: "table", Type: "String"},
		{Name: "part_name", Type: "String"},
		{Name: "rows", Type: "UInt64"},
		{Name: "size_in_bytes", Type: "UInt64"},
		{Name: "duration_ms", Type: "UInt64"},
		{Name: "error", Type: "UInt16"},
	}
}

func PartLogStacked() []domain.PartStackedPoint {
	return []domain.PartStackedPoint{
		{Time: domain.WireTime(FixtureTime.Add(-time.Minute)), NewPart: 5, MergeParts: 2, RemovePart: 1, Other: 0},
		{Time: domain.WireTime(FixtureTime), NewPart: 3, MergeParts: 4, RemovePart: 0, Other: 1},
	}
}

func PartLogHistogram(field string) []domain.HistogramBucket {
	switch field {
	case "database":
		return []domain.HistogramBucket{{Name: "ecommerce", Count: 50}, {Name: "system", Count: 7}}
	case "table":
		return []domain.HistogramBucket{{Name: "orders", Count: 31}, {Name: "order_items", Count: 19}}
	default:
		return []domain.HistogramBucket{{Name: "NewPart", Count: 33}, {Name: "MergeParts", Count: 18}, {Name: "RemovePart", Count: 6}}
	}
}

func PartRows() []domain.PartInfo {
	return []domain.PartInfo{
		{
			Database: "ecommerce", Table: "orders", Partition: "202506", Name: "202506_1_6_1",
			Active: true, Rows: 420000, BytesOnDisk: 7340032, CompressedBytes: 7003136,
			UncompressedBytes: 29360128, Level: 1, ModificationTime: domain.WireTime(FixtureTime),
		},
		{
			Database: "ecommerce", Table: "orders", Partition: "202505", Name: "202505_1_12_2",
			Active: true, Rows: 380000, BytesOnDisk: 6291456, CompressedBytes: 6029312,
			UncompressedBytes: 26214400, Level: 2, ModificationTime: domain.WireTime(FixtureTime.Add(-24 * time.Hour)),
		},
		{
			Database: "ecommerce", Table: "order_items", Partition: "202506", Name: "202506_7_7_0",
			Active: false, Rows: 1200, BytesOnDisk: 65536, CompressedBytes: 61440,
			UncompressedBytes: 262144, Level: 0, ModificationTime: domain.WireTime(FixtureTime.Add(-time.Hour)),
		},
	}
}

func PartitionRows() []domain.PartitionInfo {
	return []domain.PartitionInfo{
		{Database: "ecommerce", Table: "orders", Partition: "202506", PartCount: 4, Rows: 421200, BytesOnDisk: 7405568},
		{Database: "ecommerce", Table: "orders", Partition: "202505", PartCount: 1, Rows: 380000, BytesOnDisk: 6291456},
	}
}

func ProcessRows() []domain.ProcessEntry {
	return []domain.ProcessEntry{
		{
			QueryID: "p-1", User: "default", Address: "127.0.0.1", Elapsed: 1.5,
			Query: "SELECT sleep(3)", ReadRows: 1, TotalRowsApprox: 1, MemoryUsage: 1 << 20, PeakMemoryUsage: 2 << 20,
		},
	}
}

func MergeRows() []domain.MergeEntry {
	return []domain.MergeEntry{
		{
			Database: "ecommerce", Table: "orders", ResultPartName: "202506_1_8_2", Elapsed: 4.2,
			Progress: 0.62, NumParts: 3, TotalSizeBytes: 13631488, RowsRead: 500000, RowsWritten: 310000, MemoryUsage: 96 << 20,
		},
	}
}

func MutationRows() []domain.MutationEntry {
	return []domain.MutationEntry{
		{
			Database: "ecommerce", Table: "orders", MutationID: "mutation_42.txt",
			Command: "UPDATE status = 'shipped' WHERE order_id = 7", CreateTime: domain.WireTime(FixtureTime.Add(-10 * time.Minute)),
			PartsToDo: 2, IsDone: false,
		},
	}
}

func MetricRows() []domain.MetricEntry {
	return []domain.MetricEntry{
		{Name: "MemoryTracking", Value: 536870912, Description: "Total amount of memory allocated by the server."},
		{Name: "Query", Value: 3, Description: "Number of executing queries"},
	}
}

func AsyncMetricRows() []domain.MetricEntry {
	return []domain.MetricEntry{
		{Name: "Uptime", Value: 86742, Description: "The server uptime in seconds."},
		{Name: "OSMemoryAvailable", Value: 8589934592, Description: "Memory available to the host."},
	}
}

func EventRows() []domain.MetricEntry {
	return []domain.MetricEntry{
		{Name: "SelectQuery", Value: 10411, Description: "Same as Query, but only for SELECT queries."},
	}
}

func UserRows() []domain.UserEntry {
	return []domain.UserEntry{
		{Name: "default", ID: "94309a4b", Storage: "users_xml", AuthType: "no_password", DefaultRolesAll: true},
		{Name: "app_writer", ID: "b1e02c77", Storage: "local_directory", AuthType: "sha256_password"},
	}
}

func SettingRows() []domain.SettingEntry {
	return []domain.SettingEntry{
		{Name: "max_threads", Value: "16", Changed: true, Description: "The maximum number of query processing threads.", Type: "MaxThreads", Default: "auto"},
		{Name: "readonly", Value: "0", Description: "Restricts permissions for non-DDL queries.", Type: "UInt64", Default: "0"},
	}
}

func DatabaseRows() []domain.DatabaseInfo {
	return []domain.DatabaseInfo{
		{Name: "ecommerce", Engine: "Atomic"},
		{Name: "system", Engine: "Atomic"},
	}
}

func TableRows() []domain.TableInfo {
	return []domain.TableInfo{
		{Database: "ecommerce", Name: "orders", Engine: "MergeTree", TotalRows: Uint64Ptr(801200), TotalBytes: Uint64Ptr(13697024), Comment: "order headers"},
		{Database: "ecommerce", Name: "order_items", Engine: "MergeTree", TotalRows: Uint64Ptr(2400000), TotalBytes: Uint64Ptr(46137344)},
	}
}

func TableColumnRows() []domain.ColumnMeta {
	return []domain.ColumnMeta{
		{Name: "order_id", Type: "UInt64", Comment: "primary key"},
		{Name: "status", Type: "LowCardinality(String)"},
		{Name: "created_at", Type: "DateTime"},
	}
}

func ProjectionRows() []domain.ProjectionInfo {
	return []domain.ProjectionInfo{
		{Name: "by_status", PartName: "202506_1_6_1", Rows: 420000, BytesOnDisk: 1048576},
		{Name: "by_status", PartName: "202505_1_12_2", Rows: 380000, BytesOnDisk: 917504},
	}
}

func SkipIndexRows() []domain.SkipIndexInfo {
	return []domain.SkipIndexInfo{
		{Name: "idx_status", Type: "set", Expression: "status", Granularity: 4},
	}
}

// SampleResult returns a small console result set.
func SampleResult() *domain.QueryResult {
	return &domain.QueryResult{
		Columns: []domain.ColumnMeta{{Name: "n", Type: "UInt64"}, {Name: "label", Type: "String"}},
		Data: []domain.Row{
			{"n": domain.NumberValue(1), "label": domain.StringValue("one")},
			{"n": domain.NumberValue(2), "label": domain.StringValue("two")},
		},
		RowCount: 2,
		Duration: 4.2,
	}
}

// === Query Log Repository Mock ===

// MockQueryLogRepo implements domain.QueryLogRepository for testing.
type MockQueryLogRepo struct {
	ListFn       func(ctx context.Context, q domain.TableQuery) ([]domain.Row, error)
	CountFn      func(ctx context.Context, q domain.TableQuery) (uint64, error)
	TimeSeriesFn func(ctx context.Context, q domain.TableQuery, bucket time.Duration) ([]domain.TimeSeriesPoint, error)
	StackedFn    func(ctx context.Context, q domain.TableQuery, bucket time.Duration) ([]domain.QueryStackedPoint, error)
	GroupedFn    func(ctx context.Context, q domain.TableQuery) ([]domain.GroupedQuery, error)
	HistogramFn  func(ctx context.Context, q domain.TableQuery, field string, topN int) ([]domain.HistogramBucket, error)
	DistinctFn   func(ctx context.Context, tr domain.TimeRange, field string, limit int) ([]string, error)
	ColumnsFn    func(ctx context.Context) ([]domain.ColumnMeta, error)
}

func (m *MockQueryLogRepo) List(ctx context.Context, q domain.TableQuery) ([]domain.Row, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, q)
	}
	return QueryLogRows(), nil
}

func (m *MockQueryLogRepo) Count(ctx context.Context, q domain.TableQuery) (uint64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, q)
	}
	return QueryLogTotal, nil
}

func (m *MockQueryLogRepo) TimeSeries(ctx context.Context, q domain.TableQuery, bucket time.Duration) ([]domain.TimeSeriesPoint, error) {
	if m.TimeSeriesFn != nil {
		return m.TimeSeriesFn(ctx, q, bucket)
	}
	return QueryLogSeries(), nil
}

func (m *MockQueryLogRepo) Stacked(ctx context.Context, q domain.TableQuery, bucket time.Duration) ([]domain.QueryStackedPoint, error) {
	if m.StackedFn != nil {
		return m.StackedFn(ctx, q, bucket)
	}
	return QueryLogStacked(), nil
}

func (m *MockQueryLogRepo) Grouped(ctx context.Context, q domain.TableQuery) ([]domain.GroupedQuery, error) {
	if m.GroupedFn != nil {
		return m.GroupedFn(ctx, q)
	}
	return GroupedQueries(), nil
}

func (m *MockQueryLogRepo) Histogram(ctx context.Context, q domain.TableQuery, field string, topN int) ([]domain.HistogramBucket, error) {
	if m.HistogramFn != nil {
		return m.HistogramFn(ctx, q, field, topN)
	}
	return QueryLogHistogram(field), nil
}

func (m *MockQueryLogRepo) Distinct(ctx context.Context, tr domain.TimeRange, field string, limit int) ([]string, error) {
	if m.DistinctFn != nil {
		return m.DistinctFn(ctx, tr, field, limit)
	}
	return []string{"QueryFinish", "QueryStart", "ExceptionWhileProcessing"}, nil
}

func (m *MockQueryLogRepo) Columns(ctx context.Context) ([]domain.ColumnMeta, error) {
	if m.ColumnsFn != nil {
		return m.ColumnsFn(ctx)
	}
	return QueryLogColumns(), nil
}

var _ domain.QueryLogRepository = (*MockQueryLogRepo)(nil)

// === Part Log Repository Mock ===

// MockPartLogRepo implements domain.PartLogRepository for testing.
type MockPartLogRepo struct {
	ListFn       func(ctx context.Context, q domain.TableQuery) ([]domain.Row, error)
	CountFn      func(ctx context.Context, q domain.TableQuery) (uint64, error)
	TimeSeriesFn func(ctx context.Context, q domain.TableQuery, bucket time.Duration) ([]domain.TimeSeriesPoint, error)
	StackedFn    func(ctx context.Context, q domain.TableQuery, bucket time.Duration) ([]domain.PartStackedPoint, error)
	HistogramFn  func(ctx context.Context, q domain.TableQuery, field string, topN int) ([]domain.HistogramBucket, error)
	DistinctFn   func(ctx context.Context, tr domain.TimeRange, field string, limit int) ([]string, error)
	ColumnsFn    func(ctx context.Context) ([]domain.ColumnMeta, error)
}

func (m *MockPartLogRepo) List(ctx context.Context, q domain.TableQuery) ([]domain.Row, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, q)
	}
	return PartLogRows(), nil
}

func (m *MockPartLogRepo) Count(ctx context.Context, q domain.TableQuery) (uint64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, q)
	}
	return PartLogTotal, nil
}

func (m *MockPartLogRepo) TimeSeries(ctx context.Context, q domain.TableQuery, bucket time.Duration) ([]domain.TimeSeriesPoint, error) {
	if m.TimeSeriesFn != nil {
		return m.TimeSeriesFn(ctx, q, bucket)
	}
	return QueryLogSeries(), nil
}

func (m *MockPartLogRepo) Stacked(ctx context.Context, q domain.TableQuery, bucket time.Duration) ([]domain.PartStackedPoint, error) {
	if m.StackedFn != nil {
		return m.StackedFn(ctx, q, bucket)
	}
	return PartLogStacked(), nil
}

func (m *MockPartLogRepo) Histogram(ctx context.Context, q domain.TableQuery, field string, topN int) ([]domain.HistogramBucket, error) {
	if m.HistogramFn != nil {
		return m.HistogramFn(ctx, q, field, topN)
	}
	return PartLogHistogram(field), nil
}

func (m *MockPartLogRepo) Distinct(ctx context.Context, tr domain.TimeRange, field string, limit int) ([]string, error) {
	if m.DistinctFn != nil {
		return m.DistinctFn(ctx, tr, field, limit)
	}
	return []string{"NewPart", "MergeParts", "RemovePart"}, nil
}

func (m *MockPartLogRepo) Columns(ctx context.Context) ([]domain.ColumnMeta, error) {
	if m.ColumnsFn != nil {
		return m.ColumnsFn(ctx)
	}
	return PartLogColumns(), nil
}

var _ domain.PartLogRepository = (*MockPartLogRepo)(nil)

// === Parts Repository Mock ===

// MockPartsRepo implements domain.PartsRepository for testing.
type MockPartsRepo struct {
	ListFn           func(ctx context.Context, q domain.TableQuery) ([]domain.PartInfo, error)
	CountFn          func(ctx context.Context, q domain.TableQuery) (uint64, error)
	PartitionsFn     func(ctx context.Context, q domain.TableQuery) ([]domain.PartitionInfo, error)
	PartitionCountFn func(ctx context.Context, q domain.TableQuery) (uint64, error)
}

func (m *MockPartsRepo) List(ctx context.Context, q domain.TableQuery) ([]domain.PartInfo, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, q)
	}
	return PartRows(), nil
}

func (m *MockPartsRepo) Count(ctx context.Context, q domain.TableQuery) (uint64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, q)
	}
	return PartsTotal, nil
}

func (m *MockPartsRepo) Partitions(ctx context.Context, q domain.TableQuery) ([]domain.PartitionInfo, error) {
	if m.PartitionsFn != nil {
		return m.PartitionsFn(ctx, q)
	}
	return PartitionRows(), nil
}

func (m *MockPartsRepo) PartitionCount(ctx context.Context, q domain.TableQuery) (uint64, error) {
	if m.PartitionCountFn != nil {
		return m.PartitionCountFn(ctx, q)
	}
	return PartitionTotal, nil
}

var _ domain.PartsRepository = (*MockPartsRepo)(nil)

// === System Repository Mock ===

// MockSystemRepo implements domain.SystemRepository for testing.
type MockSystemRepo struct {
	ProcessesFn    func(ctx context.Context) ([]domain.ProcessEntry, error)
	MergesFn       func(ctx context.Context) ([]domain.MergeEntry, error)
	MutationsFn    func(ctx context.Context) ([]domain.MutationEntry, error)
	MetricsFn      func(ctx context.Context, search string) ([]domain.MetricEntry, error)
	AsyncMetricsFn func(ctx context.Context, search string) ([]domain.MetricEntry, error)
	EventsFn       func(ctx context.Context, search string) ([]domain.MetricEntry, error)
	UsersFn        func(ctx context.Context) ([]domain.UserEntry, error)
	SettingsFn     func(ctx context.Context, search string) ([]domain.SettingEntry, error)
}

func (m *MockSystemRepo) Processes(ctx context.Context) ([]domain.ProcessEntry, error) {
	if m.ProcessesFn != nil {
		return m.ProcessesFn(ctx)
	}
	return ProcessRows(), nil
}

func (m *MockSystemRepo) Merges(ctx context.Context) ([]domain.MergeEntry, error) {
	if m.MergesFn != nil {
		return m.MergesFn(ctx)
	}
	return MergeRows(), nil
}

func (m *MockSystemRepo) Mutations(ctx context.Context) ([]domain.MutationEntry, error) {
	if m.MutationsFn != nil {
		return m.MutationsFn(ctx)
	}
	return MutationRows(), nil
}

func (m *MockSystemRepo) Metrics(ctx context.Context, search string) ([]domain.MetricEntry, error) {
	if m.MetricsFn != nil {
		return m.MetricsFn(ctx, search)
	}
	return MetricRows(), nil
}

func (m *MockSystemRepo) AsyncMetrics(ctx context.Context, search string) ([]domain.MetricEntry, error) {
	if m.AsyncMetricsFn != nil {
		return m.AsyncMetricsFn(ctx, search)
	}
	return AsyncMetricRows(), nil
}

func (m *MockSystemRepo) Events(ctx context.Context, search string) ([]domain.MetricEntry, error) {
	if m.EventsFn != nil {
		return m.EventsFn(ctx, search)
	}
	return EventRows(), nil
}

func (m *MockSystemRepo) Users(ctx context.Context) ([]domain.UserEntry, error) {
	if m.UsersFn != nil {
		return m.UsersFn(ctx)
	}
	return UserRows(), nil
}

func (m *MockSystemRepo) Settings(ctx context.Context, search string) ([]domain.SettingEntry, error) {
	if m.SettingsFn != nil {
		return m.SettingsFn(ctx, search)
	}
	return SettingRows(), nil
}

var _ domain.SystemRepository = (*MockSystemRepo)(nil)

// === Browser Repository Mock ===

// MockBrowserRepo implements domain.BrowserRepository for testing.
type MockBrowserRepo struct {
	DatabasesFn   func(ctx context.Context) ([]domain.DatabaseInfo, error)
	TablesFn      func(ctx context.Context, database string) ([]domain.TableInfo, error)
	ColumnsFn     func(ctx context.Context, database, table string) ([]domain.ColumnMeta, error)
	PartitionsFn  func(ctx context.Context, database, table string) ([]domain.PartitionInfo, error)
	PartsFn       func(ctx context.Context, database, table, partition string) ([]domain.PartInfo, error)
	ProjectionsFn func(ctx context.Context, database, table string) ([]domain.ProjectionInfo, error)
	SkipIndexesFn func(ctx context.Context, database, table string) ([]domain.SkipIndexInfo, error)
}

func (m *MockBrowserRepo) Databases(ctx context.Context) ([]domain.DatabaseInfo, error) {
	if m.DatabasesFn != nil {
		return m.DatabasesFn(ctx)
	}
	return DatabaseRows(), nil
}

func (m *MockBrowserRepo) Tables(ctx context.Context, database string) ([]domain.TableInfo, error) {
	if m.TablesFn != nil {
		return m.TablesFn(ctx, database)
	}
	return TableRows(), nil
}

func (m *MockBrowserRepo) Columns(ctx context.Context, database, table string) ([]domain.ColumnMeta, error) {
	if m.ColumnsFn != nil {
		return m.ColumnsFn(ctx, database, table)
	}
	return TableColumnRows(), nil
}

func (m *MockBrowserRepo) Partitions(ctx context.Context, database, table string) ([]domain.PartitionInfo, error) {
	if m.PartitionsFn != nil {
		return m.PartitionsFn(ctx, database, table)
	}
	return PartitionRows(), nil
}

func (m *MockBrowserRepo) Parts(ctx context.Context, database, table, partition string) ([]domain.PartInfo, error) {
	if m.PartsFn != nil {
		return m.PartsFn(ctx, database, table, partition)
	}
	return PartRows(), nil
}

func (m *MockBrowserRepo) Projections(ctx context.Context, database, table string) ([]domain.ProjectionInfo, error) {
	if m.ProjectionsFn != nil {
		return m.ProjectionsFn(ctx, database, table)
	}
	return ProjectionRows(), nil
}

func (m *MockBrowserRepo) SkipIndexes(ctx context.Context, database, table string) ([]domain.SkipIndexInfo, error) {
	if m.SkipIndexesFn != nil {
		return m.SkipIndexesFn(ctx, database, table)
	}
	return SkipIndexRows(), nil
}

var _ domain.BrowserRepository = (*MockBrowserRepo)(nil)

// === Analyze Repository Mock ===

// MockAnalyzeRepo implements domain.AnalyzeRepository for testing.
type MockAnalyzeRepo struct {
	ExplainFn func(ctx context.Context, kind domain.ExplainType, query string) ([]string, error)
	ExecuteFn func(ctx context.Context, query string, limit int) (*domain.QueryResult, error)
}

func (m *MockAnalyzeRepo) Explain(ctx context.Context, kind domain.ExplainType, query string) ([]string, error) {
	if m.ExplainFn != nil {
		return m.ExplainFn(ctx, kind, query)
	}
	return []string{"Expression ((Projection + Before ORDER BY))", "  ReadFromMergeTree (ecommerce.orders)"}, nil
}

func (m *MockAnalyzeRepo) Execute(ctx context.Context, query string, limit int) (*domain.QueryResult, error) {
	if m.ExecuteFn != nil {
		return m.ExecuteFn(ctx, query, limit)
	}
	return SampleResult(), nil
}

var _ domain.AnalyzeRepository = (*MockAnalyzeRepo)(nil)
