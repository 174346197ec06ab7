package domain

// TimeSeriesPoint is one chart bucket. Every aggregate is computed in a
// single pass server-side; the chart picks the column it needs locally, so
// switching metric or aggregation never refetches.
type TimeSeriesPoint struct {
	Time           WireTime `json:"time"`
	Count          uint64   `json:"count"`
	AvgDurationMs  float64  `json:"avg_duration_ms"`
	SumDurationMs  float64  `json:"sum_duration_ms"`
	MinDurationMs  float64  `json:"min_duration_ms"`
	MaxDurationMs  float64  `json:"max_duration_ms"`
	AvgMemoryUsage float64  `json:"avg_memory_usage"`
	SumMemoryUsage float64  `json:"sum_memory_usage"`
	MinMemoryUsage float64  `json:"min_memory_usage"`
	MaxMemoryUsage float64  `json:"max_memory_usage"`
	AvgReadRows    float64  `json:"avg_read_rows"`
	SumReadRows    float64  `json:"sum_read_rows"`
	MinReadRows    float64  `json:"min_read_rows"`
	MaxReadRows    float64  `json:"max_read_rows"`
}

// Metric returns the plotted value for a metric/aggregation pair.
func (p TimeSeriesPoint) Metric(m ChartMetric, agg Aggregation) float64 {
	if m == MetricCount {
		return float64(p.Count)
	}
	switch m {
	case MetricDuration:
		switch agg {
		case AggSum:
			return p.SumDurationMs
		case AggMin:
			return p.MinDurationMs
		case AggMax:
			return p.MaxDurationMs
		default:
			return p.AvgDurationMs
		}
	case MetricMemory:
		switch agg {
		case AggSum:
			return p.SumMemoryUsage
		case AggMin:
			return p.MinMemoryUsage
		case AggMax:
			return p.MaxMemoryUsage
		default:
			return p.AvgMemoryUsage
		}
	case MetricReadRows:
		switch agg {
		case AggSum:
			return p.SumReadRows
		case AggMin:
			return p.MinReadRows
		case AggMax:
			return p.MaxReadRows
		default:
			return p.AvgReadRows
		}
	}
	return 0
}

// QueryStackedPoint is one bucket of the query-log chart stacked by query kind.
type QueryStackedPoint struct {
	Time   WireTime `json:"time"`
	Select uint64   `json:"Select"`
	Insert uint64   `json:"Insert"`
	Delete uint64   `json:"Delete"`
	Other  uint64   `json:"Other"`
}

// PartStackedPoint is one bucket of the part-log chart stacked by event type.
type PartStackedPoint struct {
	Time       WireTime `json:"time"`
	NewPart    uint64   `json:"NewPart"`
	MergeParts uint64   `json:"MergeParts"`
	RemovePart uint64   `json:"RemovePart"`
	Other      uint64   `json:"Other"`
}

// HistogramBucket is one bar of a per-field value histogram.
type HistogramBucket struct {
	Name  string `json:"name"`
	Count uint64 `json:"count"`
}

// GroupedQuery is a query-log summary row grouped by normalized query hash.
type GroupedQuery struct {
	NormalizedHash string  `json:"normalized_query_hash"`
	Query          string  `json:"query"`
	Count          uint64  `json:"count"`
	AvgDurationMs  float64 `json:"avg_duration_ms"`
	MaxDurationMs  float64 `json:"max_duration_ms"`
	SumReadRows    float64 `json:"sum_read_rows"`
	SumMemoryUsage float64 `json:"sum_memory_usage"`
}
