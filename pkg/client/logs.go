package client

import (
	"context"
	"net/url"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

type countResponse struct {
	Total uint64 `json:"total"`
}

// === Query Log ===

// QueryLog lists query log entries for the window and filters in p.
func (c *Client) QueryLog(ctx context.Context, p Params) ([]domain.Row, error) {
	vals, err := p.values()
	if err != nil {
		return nil, err
	}
	var rows []domain.Row
	return rows, c.getJSON(ctx, "/api/query-log/", vals, &rows)
}

// QueryLogCount returns the total number of matching query log entries.
func (c *Client) QueryLogCount(ctx context.Context, p Params) (uint64, error) {
	vals, err := p.values()
	if err != nil {
		return 0, err
	}
	var out countResponse
	return out.Total, c.getJSON(ctx, "/api/query-log/count", vals, &out)
}

// QueryLogTimeSeries returns bucketed query activity for the charts.
func (c *Client) QueryLogTimeSeries(ctx context.Context, p Params) ([]domain.TimeSeriesPoint, error) {
	vals, err := p.values()
	if err != nil {
		return nil, err
	}
	var points []domain.TimeSeriesPoint
	return points, c.getJSON(ctx, "/api/query-log/timeseries", vals, &points)
}

// QueryLogStacked returns per-bucket counts split by query kind.
func (c *Client) QueryLogStacked(ctx context.Context, p Params) ([]domain.QueryStackedPoint, error) {
	vals, err := p.values()
	if err != nil {
		return nil, err
	}
	var points []domain.QueryStackedPoint
	return points, c.getJSON(ctx, "/api/query-log/timeseries-stacked", vals, &points)
}

// QueryLogGrouped returns entries collapsed by normalized query hash.
func (c *Client) QueryLogGrouped(ctx context.Context, p Params) ([]domain.GroupedQuery, error) {
	vals, err := p.values()
	if err != nil {
		return nil, err
	}
	var rows []domain.GroupedQuery
	return rows, c.getJSON(ctx, "/api/query-log/grouped", vals, &rows)
}

// QueryLogHistogram returns the top values of field under the current
// filters; p.Limit caps the bucket count.
func (c *Client) QueryLogHistogram(ctx context.Context, field string, p Params) ([]domain.HistogramBucket, error) {
	vals, err := p.values()
	if err != nil {
		return nil, err
	}
	var buckets []domain.HistogramBucket
	return buckets, c.getJSON(ctx, "/api/query-log/histogram/"+url.PathEscape(field), vals, &buckets)
}

// QueryLogDistinct returns the distinct values of field inside the window.
func (c *Client) QueryLogDistinct(ctx context.Context, field string, p Params) ([]string, error) {
	vals, err := p.values()
	if err != nil {
		return nil, err
	}
	var values []string
	return values, c.getJSON(ctx, "/api/query-log/distinct/"+url.PathEscape(field), vals, &values)
}

// QueryLogColumns returns the column metadata of system.query_log.
func (c *Client) QueryLogColumns(ctx context.Context) ([]domain.ColumnMeta, error) {
	var cols []domain.ColumnMeta
	return cols, c.getJSON(ctx, "/api/query-log/columns", nil, &cols)
}

// === Part Log ===

// PartLog lists part log entries for the window and filters in p.
func (c *Client) PartLog(ctx context.Context, p Params) ([]domain.Row, error) {
	vals, err := p.values()
	if err != nil {
		return nil, err
	}
	var rows []domain.Row
	return rows, c.getJSON(ctx, "/api/part-log/", vals, &rows)
}

// PartLogCount returns the total number of matching part log entries.
func (c *Client) PartLogCount(ctx context.Context, p Params) (uint64, error) {
	vals, err := p.values()
	if err != nil {
		return 0, err
	}
	var out countResponse
	return out.Total, c.getJSON(ctx, "/api/part-log/count", vals, &out)
}

// PartLogTimeSeries returns bucketed part activity for the charts.
func (c *Client) PartLogTimeSeries(ctx context.Context, p Params) ([]domain.TimeSeriesPoint, error) {
	vals, err := p.values()
	if err != nil {
		return nil, err
	}
	var points []domain.TimeSeriesPoint
	return points, c.getJSON(ctx, "/api/part-log/timeseries", vals, &points)
}

// PartLogStacked returns per-bucket counts split by part event type.
func (c *Client) PartLogStacked(ctx context.Context, p Params) ([]domain.PartStackedPoint, error) {
	vals, err := p.values()
	if err != nil {
		return nil, err
	}
	var points []domain.PartStackedPoint
	return points, c.getJSON(ctx, "/api/part-log/timeseries-stacked", vals, &points)
}

// PartLogHistogram returns the top values of field under the current
// filters; p.Limit caps the bucket count.
func (c *Client) PartLogHistogram(ctx context.Context, field string, p Params) ([]domain.HistogramBucket, error) {
	vals, err := p.values()
	if err != nil {
		return nil, err
	}
	var buckets []domain.HistogramBucket
	return buckets, c.getJSON(ctx, "/api/part-log/histogram/"+url.PathEscape(field), vals, &buckets)
}

// PartLogDistinct returns the distinct values of field inside the window.
func (c *Client) PartLogDistinct(ctx context.Context, field string, p Params) ([]string, error) {
	vals, err := p.values()
	if err != nil {
		return nil, err
	}
	var values []string
	return values, c.getJSON(ctx, "/api/part-log/distinct/"+url.PathEscape(field), vals, &values)
}

// PartLogColumns returns the column metadata of system.part_log.
func (c *Client) PartLogColumns(ctx context.Context) ([]domain.ColumnMeta, error) {
	var cols []domain.ColumnMeta
	return cols, c.getJSON(ctx, "/api/part-log/columns", nil, &cols)
}
