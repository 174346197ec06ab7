package client

import (
	"context"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// Parts lists data parts matching the grid filters in p. The window fields
// are ignored; the grid reflects current state.
func (c *Client) Parts(ctx context.Context, p Params) ([]domain.PartInfo, error) {
	vals, err := p.values()
	if err != nil {
		return nil, err
	}
	var parts []domain.PartInfo
	return parts, c.getJSON(ctx, "/api/parts/", vals, &parts)
}

// PartCount returns the total number of matching parts.
func (c *Client) PartCount(ctx context.Context, p Params) (uint64, error) {
	vals, err := p.values()
	if err != nil {
		return 0, err
	}
	var out countResponse
	return out.Total, c.getJSON(ctx, "/api/parts/count", vals, &out)
}

// Partitions lists partition rollups matching the grid filters in p.
func (c *Client) Partitions(ctx context.Context, p Params) ([]domain.PartitionInfo, error) {
	vals, err := p.values()
	if err != nil {
		return nil, err
	}
	var partitions []domain.PartitionInfo
	return partitions, c.getJSON(ctx, "/api/partitions/", vals, &partitions)
}

// PartitionCount returns the total number of matching partitions.
func (c *Client) PartitionCount(ctx context.Context, p Params) (uint64, error) {
	vals, err := p.values()
	if err != nil {
		return 0, err
	}
	var out countResponse
	return out.Total, c.getJSON(ctx, "/api/partitions/count", vals, &out)
}
