// Package state holds the shared dashboard state and the coordination logic
// that keeps server-fetched data consistent with it.
//
// A single Store owns every filter and view parameter. Mutations are
// synchronous, cannot fail, and apply cross-field invalidation (changing a
// filter resets the owning table's page). Every fetching component derives
// its request from one FetchParams snapshot so the dozen panels never
// disagree about what is being shown.
package state

import (
	"sync"
	"time"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// QueryLogData holds the fetched query-log view data.
type QueryLogData struct {
	Entries []domain.Row
	Series  []domain.TimeSeriesPoint
	Stacked []domain.QueryStackedPoint
	Total   int
}

// PartLogData holds the fetched part-log view data.
type PartLogData struct {
	Entries []domain.Row
	Series  []domain.TimeSeriesPoint
	Stacked []domain.PartStackedPoint
	Total   int
}

// PartsData holds the fetched parts grid data.
type PartsData struct {
	Entries []domain.PartInfo
	Total   int
}

// PartitionsData holds the fetched partitions grid data.
type PartitionsData struct {
	Entries []domain.PartitionInfo
	Total   int
}

// tableState is the per-table slice of view parameters.
type tableState struct {
	filters      domain.FieldFilters
	rangeFilters domain.RangeFilters
	sort         domain.SortSpec
	page         domain.Pagination
	columns      []domain.ColumnConfig
}

// FetchParams is a consistent snapshot of everything one table's fetch
// depends on, assembled under a single lock acquisition.
type FetchParams struct {
	Table        domain.LogicalTable
	TimeRange    domain.TimeRange
	Bucket       time.Duration
	Search       string
	Filters      domain.FieldFilters
	RangeFilters domain.RangeFilters
	Sort         domain.SortSpec
	Page         domain.Pagination
}

// Store is the single source of truth for every filter/view parameter and
// for the data fetched against them. All methods are safe for concurrent
// use.
type Store struct {
	mu       sync.Mutex
	versions map[Field]uint64
	subs     map[*Subscription]struct{}

	timeRange  domain.TimeRange
	search     string
	bucket     time.Duration
	chart      domain.ChartConfig
	activeTab  string
	visited    bool
	refreshSeq uint64
	browser    domain.BrowserSelection

	tables map[domain.LogicalTable]*tableState

	queryLog   QueryLogData
	partLog    PartLogData
	parts      PartsData
	partitions PartitionsData

	loading map[domain.LogicalTable]bool
	errs    map[domain.LogicalTable]string
}

// New creates a Store with the documented default filters, sort orders and
// a last-hour time window. pageSize <= 0 falls back to the default.
func New(pageSize int) *Store {
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	s := &Store{
		versions: make(map[Field]uint64),
		subs:     make(map[*Subscription]struct{}),
		tables:   make(map[domain.LogicalTable]*tableState, len(domain.LogicalTables)),
		loading:  make(map[domain.LogicalTable]bool),
		errs:     make(map[domain.LogicalTable]string),
		chart: domain.ChartConfig{
			Metric:      domain.MetricCount,
			Type:        domain.ChartBar,
			Aggregation: domain.AggAvg,
		},
	}
	s.timeRange = domain.LastHours(1)
	s.bucket = s.timeRange.Bucket()
	for _, t := range domain.LogicalTables {
		s.tables[t] = &tableState{
			filters:      domain.DefaultFieldFilters(t),
			rangeFilters: domain.RangeFilters{},
			sort:         domain.DefaultSort(t),
			page:         domain.Pagination{PageSize: pageSize},
		}
	}
	return s
}

// bump increments versions and wakes matching subscriptions. Callers hold mu.
func (s *Store) bump(fields ...Field) {
	for _, f := range fields {
		s.versions[f]++
	}
	for sub := range s.subs {
		sub.notify(fields)
	}
}

// Version returns the current version of one field.
func (s *Store) Version(f Field) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.versions[f]
}

// Versions snapshots the versions of a set of fields in one lock hold.
func (s *Store) Versions(fields []Field) map[Field]uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[Field]uint64, len(fields))
	for _, f := range fields {
		out[f] = s.versions[f]
	}
	return out
}

// SetTimeRange replaces the window, recomputes the chart bucket, and resets
// the query-log page. Other tables observe the change through their own
// watched fields and reset independently.
func (s *Store) SetTimeRange(r domain.TimeRange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeRange = r
	changed := []Field{FieldTimeRange}
	if b := r.Bucket(); b != s.bucket {
		s.bucket = b
		changed = append(changed, FieldBucket)
	}
	if s.tables[domain.TableQueryLog].page.Page != 0 {
		s.tables[domain.TableQueryLog].page.Page = 0
		changed = append(changed, PageField(domain.TableQueryLog))
	}
	s.bump(changed...)
}

// TimeRange returns the current window.
func (s *Store) TimeRange() domain.TimeRange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeRange
}

// Bucket returns the current chart bucket width.
func (s *Store) Bucket() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bucket
}

// SetSearch replaces the free-text search and resets the page of both log
// tables (the only grids that match on query text).
func (s *Store) SetSearch(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = text
	changed := []Field{FieldSearch}
	for _, t := range []domain.LogicalTable{domain.TableQueryLog, domain.TablePartLog} {
		if s.tables[t].page.Page != 0 {
			s.tables[t].page.Page = 0
			changed = append(changed, PageField(t))
		}
	}
	s.bump(changed...)
}

// Search returns the current free-text search.
func (s *Store) Search() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search
}

// SetFieldFilter replaces the allowed-value set for one column and resets
// the table's page. Values are not validated; unknown values match nothing
// server-side.
func (s *Store) SetFieldFilter(t domain.LogicalTable, field string, values []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	vals := make([]string, len(values))
	copy(vals, values)
	s.tables[t].filters[field] = vals
	s.resetPageLocked(t, FiltersField(t))
}

// AddFieldFilterValue appends one value to a column's allowed set if absent.
// This is the histogram-bar click path.
func (s *Store) AddFieldFilterValue(t domain.LogicalTable, field, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.tables[t].filters[field] {
		if v == value {
			return
		}
	}
	s.tables[t].filters[field] = append(s.tables[t].filters[field], value)
	s.resetPageLocked(t, FiltersField(t))
}

// RemoveFieldFilterValue drops one value; the field is cleared entirely when
// its set becomes empty.
func (s *Store) RemoveFieldFilterValue(t domain.LogicalTable, field, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.tables[t].filters[field]
	kept := make([]string, 0, len(old))
	for _, v := range old {
		if v != value {
			kept = append(kept, v)
		}
	}
	if len(kept) == len(old) {
		return
	}
	if len(kept) == 0 {
		delete(s.tables[t].filters, field)
	} else {
		s.tables[t].filters[field] = kept
	}
	s.resetPageLocked(t, FiltersField(t))
}

// ClearFieldFilter removes one column's filter and resets the page.
func (s *Store) ClearFieldFilter(t domain.LogicalTable, field string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tables[t].filters[field]; !ok {
		return
	}
	delete(s.tables[t].filters, field)
	s.resetPageLocked(t, FiltersField(t))
}

// Filters returns a copy of one table's categorical filters.
func (s *Store) Filters(t domain.LogicalTable) domain.FieldFilters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tables[t].filters.Clone()
}

// SetRangeFilter replaces the bounds for one numeric column and resets the
// page. A Bounds with both sides open is stored as given; callers clear it
// explicitly to avoid retaining empty entries.
func (s *Store) SetRangeFilter(t domain.LogicalTable, field string, b domain.Bounds) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[t].rangeFilters[field] = b
	s.resetPageLocked(t, RangeFiltersField(t))
}

// ClearRangeFilter removes one numeric column's bounds and resets the page.
func (s *Store) ClearRangeFilter(t domain.LogicalTable, field string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tables[t].rangeFilters[field]; !ok {
		return
	}
	delete(s.tables[t].rangeFilters, field)
	s.resetPageLocked(t, RangeFiltersField(t))
}

// RangeFilters returns a copy of one table's numeric filters.
func (s *Store) RangeFilters(t domain.LogicalTable) domain.RangeFilters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tables[t].rangeFilters.Clone()
}

// ClearAllFilters restores every table's filters to the documented defaults
// (not to empty), drops all range filters, clears the search text, and
// resets every page.
func (s *Store) ClearAllFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := []Field{FieldSearch}
	s.search = ""
	for _, t := range domain.LogicalTables {
		ts := s.tables[t]
		ts.filters = domain.DefaultFieldFilters(t)
		ts.rangeFilters = domain.RangeFilters{}
		ts.page.Page = 0
		changed = append(changed, FiltersField(t), RangeFiltersField(t), PageField(t))
	}
	s.bump(changed...)
}

// SetSort replaces one table's sort spec and resets its page.
func (s *Store) SetSort(t domain.LogicalTable, spec domain.SortSpec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[t].sort = spec
	s.resetPageLocked(t, SortField(t))
}

// SetSortField replaces the sort column, keeping the direction, and resets
// the page.
func (s *Store) SetSortField(t domain.LogicalTable, field string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[t].sort.Field = field
	s.resetPageLocked(t, SortField(t))
}

// SetSortOrder replaces the sort direction and resets the page.
func (s *Store) SetSortOrder(t domain.LogicalTable, order domain.SortOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[t].sort.Order = order
	s.resetPageLocked(t, SortField(t))
}

// ToggleSort is the column-header click: same field flips direction, a new
// field starts descending. Resets the page either way.
func (s *Store) ToggleSort(t domain.LogicalTable, field string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tables[t].sort.Field == field {
		s.tables[t].sort.Order = s.tables[t].sort.Order.Toggle()
	} else {
		s.tables[t].sort = domain.SortSpec{Field: field, Order: domain.SortDesc}
	}
	s.resetPageLocked(t, SortField(t))
}

// Sort returns one table's sort spec.
func (s *Store) Sort(t domain.LogicalTable) domain.SortSpec {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tables[t].sort
}

// SetPage moves one table to a zero-based page. Out-of-range pages are not
// corrected; the server returns zero rows and the real total.
func (s *Store) SetPage(t domain.LogicalTable, page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if page < 0 {
		page = 0
	}
	if s.tables[t].page.Page == page {
		return
	}
	s.tables[t].page.Page = page
	s.bump(PageField(t))
}

// SetPageSize changes one table's page size and resets it to page zero.
func (s *Store) SetPageSize(t domain.LogicalTable, size int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if size <= 0 {
		return
	}
	s.tables[t].page = domain.Pagination{PageSize: size}
	s.bump(PageField(t))
}

// Page returns one table's pagination state.
func (s *Store) Page(t domain.LogicalTable) domain.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tables[t].page
}

// resetPageLocked bumps cause plus the page field, resetting the page to
// zero. Callers hold mu.
func (s *Store) resetPageLocked(t domain.LogicalTable, cause Field) {
	s.tables[t].page.Page = 0
	s.bump(cause, PageField(t))
}

// SetColumns installs one table's column configs (the once-latched metadata
// path).
func (s *Store) SetColumns(t domain.LogicalTable, cols []domain.ColumnConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[t].columns = cols
	s.bump(ColumnsField(t))
}

// ToggleColumnVisibility flips one column's visibility. Independent of data
// fetching.
func (s *Store) ToggleColumnVisibility(t domain.LogicalTable, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tables[t].columns {
		if s.tables[t].columns[i].Name == name {
			s.tables[t].columns[i].Visible = !s.tables[t].columns[i].Visible
			s.bump(ColumnsField(t))
			return
		}
	}
}

// Columns returns a copy of one table's column configs.
func (s *Store) Columns(t domain.LogicalTable) []domain.ColumnConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ColumnConfig, len(s.tables[t].columns))
	copy(out, s.tables[t].columns)
	return out
}

// SetChart replaces the chart display config. Display-only: never a fetch
// dependency and never resets pagination.
func (s *Store) SetChart(cfg domain.ChartConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chart = cfg
	s.bump(FieldChart)
}

// Chart returns the chart display config.
func (s *Store) Chart() domain.ChartConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chart
}

// SetActiveTab records the selected view tab.
func (s *Store) SetActiveTab(tab string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeTab == tab {
		return
	}
	s.activeTab = tab
	s.bump(FieldTab)
}

// ActiveTab returns the selected view tab.
func (s *Store) ActiveTab() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeTab
}

// SetVisited records the onboarding-seen flag (mirrors the browser cookie).
func (s *Store) SetVisited(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visited = v
}

// Visited reports whether onboarding was dismissed.
func (s *Store) Visited() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visited
}

// Refresh bumps the global refresh counter. Every load operation watches it,
// and independent panels poll RefreshSeq to piggyback on the broadcast.
func (s *Store) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshSeq++
	s.bump(FieldRefresh)
}

// RefreshSeq returns the monotonic global refresh counter.
func (s *Store) RefreshSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshSeq
}

// Browser returns the schema-browser selection path.
func (s *Store) Browser() domain.BrowserSelection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.browser
}

// UpdateBrowser applies fn to the selection path under the lock. The cascade
// rules live on domain.BrowserSelection.
func (s *Store) UpdateBrowser(fn func(*domain.BrowserSelection)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.browser)
	s.bump(FieldBrowser)
}

// FetchParams assembles one table's complete fetch inputs under a single
// lock hold. Search is populated only for the log tables; the parts grids
// do not match on query text.
func (s *Store) FetchParams(t domain.LogicalTable) FetchParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts := s.tables[t]
	p := FetchParams{
		Table:        t,
		TimeRange:    s.timeRange,
		Bucket:       s.bucket,
		Filters:      ts.filters.Clone(),
		RangeFilters: ts.rangeFilters.Clone(),
		Sort:         ts.sort,
		Page:         ts.page,
	}
	if t == domain.TableQueryLog || t == domain.TablePartLog {
		p.Search = s.search
	}
	return p
}

// SetLoading flags one table's fetch as in flight.
func (s *Store) SetLoading(t domain.LogicalTable, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading[t] = loading
	s.bump(DataField(t))
}

// Loading reports whether one table's fetch is in flight.
func (s *Store) Loading(t domain.LogicalTable) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading[t]
}

// SetError records one table's fetch failure message; empty clears it.
func (s *Store) SetError(t domain.LogicalTable, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg == "" {
		delete(s.errs, t)
	} else {
		s.errs[t] = msg
	}
	s.bump(DataField(t))
}

// Error returns one table's fetch failure message, empty when healthy.
func (s *Store) Error(t domain.LogicalTable) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errs[t]
}

// ApplyQueryLog installs fetched query-log data.
func (s *Store) ApplyQueryLog(d QueryLogData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queryLog = d
	s.bump(DataField(domain.TableQueryLog))
}

// QueryLog returns the fetched query-log data.
func (s *Store) QueryLog() QueryLogData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queryLog
}

// ApplyPartLog installs fetched part-log data.
func (s *Store) ApplyPartLog(d PartLogData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.partLog = d
	s.bump(DataField(domain.TablePartLog))
}

// PartLog returns the fetched part-log data.
func (s *Store) PartLog() PartLogData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.partLog
}

// ApplyParts installs fetched parts data.
func (s *Store) ApplyParts(d PartsData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parts = d
	s.bump(DataField(domain.TableParts))
}

// Parts returns the fetched parts data.
func (s *Store) Parts() PartsData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.parts
}

// ApplyPartitions installs fetched partitions data.
func (s *Store) ApplyPartitions(d PartitionsData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.partitions = d
	s.bump(DataField(domain.TablePartitions))
}

// Partitions returns the fetched partitions data.
func (s *Store) Partitions() PartitionsData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.partitions
}
