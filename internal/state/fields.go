package state

import "github.com/benjaminwootton/QueryDog-sub000/internal/domain"

// Field names one independently versioned piece of store state. Load
// operations declare the fields they read; a mutation bumps the version of
// every field it touches, and an operation re-runs iff one of its declared
// fields changed since its last issued run.
type Field string

const (
	FieldTimeRange Field = "time_range"
	FieldSearch    Field = "search"
	FieldBucket    Field = "bucket"
	FieldChart     Field = "chart"
	FieldTab       Field = "tab"
	FieldRefresh   Field = "refresh"
	FieldBrowser   Field = "browser"
)

// FiltersField is the categorical-filter state of one table.
func FiltersField(t domain.LogicalTable) Field {
	return Field(string(t) + ".filters")
}

// RangeFiltersField is the numeric-range-filter state of one table.
func RangeFiltersField(t domain.LogicalTable) Field {
	return Field(string(t) + ".range_filters")
}

// SortField is the sort state of one table.
func SortField(t domain.LogicalTable) Field {
	return Field(string(t) + ".sort")
}

// PageField is the pagination state of one table.
func PageField(t domain.LogicalTable) Field {
	return Field(string(t) + ".page")
}

// ColumnsField is the column-config state of one table. Never a fetch
// dependency; visibility toggles must not trigger reloads.
func ColumnsField(t domain.LogicalTable) Field {
	return Field(string(t) + ".columns")
}

// DataField is the fetched-data slot of one table (entries, series, totals,
// loading flag, error). Never a fetch dependency.
func DataField(t domain.LogicalTable) Field {
	return Field(string(t) + ".data")
}
