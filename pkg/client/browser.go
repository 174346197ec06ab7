package client

import (
	"context"
	"net/url"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// Databases lists databases with table counts and sizes.
func (c *Client) Databases(ctx context.Context) ([]domain.DatabaseInfo, error) {
	var dbs []domain.DatabaseInfo
	return dbs, c.getJSON(ctx, "/api/browser/databases", nil, &dbs)
}

// DatabaseTables lists the tables of one database.
func (c *Client) DatabaseTables(ctx context.Context, database string) ([]domain.TableInfo, error) {
	var tables []domain.TableInfo
	return tables, c.getJSON(ctx, "/api/browser/tables/"+url.PathEscape(database), nil, &tables)
}

// TableColumns lists the columns of one table.
func (c *Client) TableColumns(ctx context.Context, database, table string) ([]domain.ColumnMeta, error) {
	var cols []domain.ColumnMeta
	return cols, c.getJSON(ctx,
		"/api/browser/columns/"+url.PathEscape(database)+"/"+url.PathEscape(table), nil, &cols)
}

// TablePartitions lists the partitions of one table.
func (c *Client) TablePartitions(ctx context.Context, database, table string) ([]domain.PartitionInfo, error) {
	var partitions []domain.PartitionInfo
	return partitions, c.getJSON(ctx,
		"/api/browser/partitions/"+url.PathEscape(database)+"/"+url.PathEscape(table), nil, &partitions)
}

// PartitionParts lists the parts inside one partition of a table.
func (c *Client) PartitionParts(ctx context.Context, database, table, partition string) ([]domain.PartInfo, error) {
	var parts []domain.PartInfo
	return parts, c.getJSON(ctx,
		"/api/browser/parts/"+url.PathEscape(database)+"/"+url.PathEscape(table)+"/"+url.PathEscape(partition),
		nil, &parts)
}

// TableProjections lists the projections defined on one table.
func (c *Client) TableProjections(ctx context.Context, database, table string) ([]domain.ProjectionInfo, error) {
	var projections []domain.ProjectionInfo
	return projections, c.getJSON(ctx,
		"/api/browser/projections/"+url.PathEscape(database)+"/"+url.PathEscape(table), nil, &projections)
}

// TableSkipIndexes lists the data skipping indexes defined on one table.
func (c *Client) TableSkipIndexes(ctx context.Context, database, table string) ([]domain.SkipIndexInfo, error) {
	var indexes []domain.SkipIndexInfo
	return indexes, c.getJSON(ctx,
		"/api/browser/skip-indexes/"+url.PathEscape(database)+"/"+url.PathEscape(table), nil, &indexes)
}
