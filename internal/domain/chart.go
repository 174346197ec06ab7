package domain

// ChartMetric selects what the query-log chart plots.
type ChartMetric string

const (
	MetricCount    ChartMetric = "count"
	MetricDuration ChartMetric = "duration"
	MetricMemory   ChartMetric = "memory"
	MetricReadRows ChartMetric = "read_rows"
)

// ChartType is the requested chart rendering.
type ChartType string

const (
	ChartBar         ChartType = "bar"
	ChartStackedBar  ChartType = "stacked-bar"
	ChartLine        ChartType = "line"
	ChartStackedLine ChartType = "stacked-line"
	ChartScatter     ChartType = "scatter"
)

// Aggregation selects how a non-count metric is rolled up per bucket.
type Aggregation string

const (
	AggAvg Aggregation = "avg"
	AggSum Aggregation = "sum"
	AggMin Aggregation = "min"
	AggMax Aggregation = "max"
)

// ChartConfig is the chart display state. It never participates in fetch
// invalidation; the time-series response carries every aggregate and the
// chart re-slices it locally.
type ChartConfig struct {
	Metric      ChartMetric
	Type        ChartType
	Aggregation Aggregation
}

// EffectiveType downgrades disallowed combinations instead of erroring:
// scatter needs a per-query metric, stacking needs the count metric.
func (c ChartConfig) EffectiveType() ChartType {
	if c.Metric == MetricCount && c.Type == ChartScatter {
		return ChartLine
	}
	if c.Metric != MetricCount {
		switch c.Type {
		case ChartStackedBar:
			return ChartBar
		case ChartStackedLine:
			return ChartLine
		}
	}
	return c.Type
}

// Stacked reports whether the effective rendering uses the stacked series.
func (c ChartConfig) Stacked() bool {
	t := c.EffectiveType()
	return t == ChartStackedBar || t == ChartStackedLine
}
