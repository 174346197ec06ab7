package client

import (
	"context"
	"net/url"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

func searchValues(search string) url.Values {
	if search == "" {
		return nil
	}
	return url.Values{"search": {search}}
}

// Processes lists the queries currently executing on the server.
func (c *Client) Processes(ctx context.Context) ([]domain.ProcessEntry, error) {
	var entries []domain.ProcessEntry
	return entries, c.getJSON(ctx, "/api/processes", nil, &entries)
}

// Merges lists the merges currently running.
func (c *Client) Merges(ctx context.Context) ([]domain.MergeEntry, error) {
	var entries []domain.MergeEntry
	return entries, c.getJSON(ctx, "/api/merges", nil, &entries)
}

// Mutations lists recent mutations, unfinished first.
func (c *Client) Mutations(ctx context.Context) ([]domain.MutationEntry, error) {
	var entries []domain.MutationEntry
	return entries, c.getJSON(ctx, "/api/mutations", nil, &entries)
}

// Metrics returns current values from system.metrics, optionally filtered
// by a substring match on the name.
func (c *Client) Metrics(ctx context.Context, search string) ([]domain.MetricEntry, error) {
	var entries []domain.MetricEntry
	return entries, c.getJSON(ctx, "/api/metrics", searchValues(search), &entries)
}

// AsyncMetrics returns current values from system.asynchronous_metrics.
func (c *Client) AsyncMetrics(ctx context.Context, search string) ([]domain.MetricEntry, error) {
	var entries []domain.MetricEntry
	return entries, c.getJSON(ctx, "/api/async-metrics", searchValues(search), &entries)
}

// Events returns cumulative counters from system.events.
func (c *Client) Events(ctx context.Context, search string) ([]domain.MetricEntry, error) {
	var entries []domain.MetricEntry
	return entries, c.getJSON(ctx, "/api/events", searchValues(search), &entries)
}

// Users lists the accounts defined on the server.
func (c *Client) Users(ctx context.Context) ([]domain.UserEntry, error) {
	var entries []domain.UserEntry
	return entries, c.getJSON(ctx, "/api/users", nil, &entries)
}

// Settings returns server settings, optionally filtered by name substring.
func (c *Client) Settings(ctx context.Context, search string) ([]domain.SettingEntry, error) {
	var entries []domain.SettingEntry
	return entries, c.getJSON(ctx, "/api/settings", searchValues(search), &entries)
}

// ConnectionInfo describes the ClickHouse instance the server monitors.
func (c *Client) ConnectionInfo(ctx context.Context) (domain.ConnectionInfo, error) {
	var info domain.ConnectionInfo
	return info, c.getJSON(ctx, "/api/connection-info", nil, &info)
}
