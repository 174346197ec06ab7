package client

import (
	"context"
	"net/url"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

type explainRow struct {
	Explain string `json:"explain"`
}

// Explain runs EXPLAIN of the given kind over query and returns the plan
// lines.
func (c *Client) Explain(ctx context.Context, kind domain.ExplainType, query string) ([]string, error) {
	var rows []explainRow
	err := c.postJSON(ctx, "/api/explain/"+url.PathEscape(string(kind)), domain.QueryRequest{Query: query}, &rows)
	if err != nil {
		return nil, err
	}
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = row.Explain
	}
	return lines, nil
}

// Query executes one read-only statement through the SQL console endpoint.
func (c *Client) Query(ctx context.Context, req domain.QueryRequest) (*domain.QueryResult, error) {
	var result domain.QueryResult
	if err := c.postJSON(ctx, "/api/query", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health probes the server's health endpoint, which in turn pings
// ClickHouse. A nil error means both are reachable.
func (c *Client) Health(ctx context.Context) error {
	return c.getJSON(ctx, "/healthz", nil, nil)
}
