package domain

// ColumnMeta is server-reported column metadata from system.columns.
type ColumnMeta struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Comment string `json:"comment"`
}

// ColumnConfig is one column's display state: server metadata plus the
// client-assigned width and visibility flag.
type ColumnConfig struct {
	ColumnMeta
	Width   int
	Visible bool
}

// defaultVisibleColumns is the per-table allow-list applied when column
// metadata first arrives. Columns outside the list start hidden.
var defaultVisibleColumns = map[LogicalTable][]string{
	TableQueryLog: {
		"event_time", "type", "query_kind", "query",
		"query_duration_ms", "read_rows", "memory_usage", "user",
	},
	TablePartLog: {
		"event_time", "event_type", "database", "table",
		"part_name", "rows", "size_in_bytes", "duration_ms",
	},
}

// DefaultColumnConfigs builds the initial column set for a table from
// fetched metadata, applying the visibility allow-list.
func DefaultColumnConfigs(t LogicalTable, meta []ColumnMeta) []ColumnConfig {
	allowed := make(map[string]bool, 8)
	for _, name := range defaultVisibleColumns[t] {
		allowed[name] = true
	}
	out := make([]ColumnConfig, 0, len(meta))
	for _, m := range meta {
		out = append(out, ColumnConfig{
			ColumnMeta: m,
			Width:      defaultColumnWidth(m.Name),
			Visible:    allowed[m.Name],
		})
	}
	return out
}

func defaultColumnWidth(name string) int {
	switch name {
	case "query", "exception", "command":
		return 420
	case "event_time", "event_date":
		return 160
	default:
		return 120
	}
}
