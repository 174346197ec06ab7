package domain

// LogicalTable identifies one of the independently paginated grids. Each has
// its own filters, sort, pagination, and column configuration.
type LogicalTable string

const (
	TableQueryLog   LogicalTable = "query_log"
	TablePartLog    LogicalTable = "part_log"
	TableParts      LogicalTable = "parts"
	TablePartitions LogicalTable = "partitions"
)

// LogicalTables lists every grid in display order.
var LogicalTables = []LogicalTable{TableQueryLog, TablePartLog, TableParts, TablePartitions}

// DefaultFieldFilters returns the documented baseline filters for a table.
// The query log starts restricted to completed queries.
func DefaultFieldFilters(t LogicalTable) FieldFilters {
	switch t {
	case TableQueryLog:
		return FieldFilters{"type": {"QueryFinish"}}
	default:
		return FieldFilters{}
	}
}

// DefaultSort returns the initial sort for a table.
func DefaultSort(t LogicalTable) SortSpec {
	switch t {
	case TableParts:
		return SortSpec{Field: "modification_time", Order: SortDesc}
	case TablePartitions:
		return SortSpec{Field: "bytes_on_disk", Order: SortDesc}
	default:
		return SortSpec{Field: "event_time", Order: SortDesc}
	}
}
