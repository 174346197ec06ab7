package repository

import (
	"context"
	"time"

	ch "github.com/benjaminwootton/QueryDog-sub000/internal/clickhouse"
	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// BrowserRepo serves the schema browser drill-down: databases, their
// tables, and the per-table partition/column/projection/index views.
type BrowserRepo struct {
	conn ch.Conn
}

func NewBrowserRepo(conn ch.Conn) *BrowserRepo {
	return &BrowserRepo{conn: conn}
}

// Ensure BrowserRepo implements the interface.
var _ domain.BrowserRepository = (*BrowserRepo)(nil)

// Databases returns all databases on the server.
func (r *BrowserRepo) Databases(ctx context.Context) ([]domain.DatabaseInfo, error) {
	query := `SELECT name, engine, comment FROM system.databases ORDER BY name`
	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, domain.ErrUpstream(err, "query system.databases")
	}
	defer rows.Close()

	var out []domain.DatabaseInfo
	for rows.Next() {
		var d domain.DatabaseInfo
		if err := rows.Scan(&d.Name, &d.Engine, &d.Comment); err != nil {
			return nil, domain.ErrUpstream(err, "scan database row")
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Tables returns the tables of one database.
func (r *BrowserRepo) Tables(ctx context.Context, database string) ([]domain.TableInfo, error) {
	query := `SELECT database, name, engine, total_rows, total_bytes, comment
FROM system.tables
WHERE database = ?
ORDER BY name`
	rows, err := r.conn.Query(ctx, query, database)
	if err != nil {
		return nil, domain.ErrUpstream(err, "query system.tables for %s", database)
	}
	defer rows.Close()

	var out []domain.TableInfo
	for rows.Next() {
		var t domain.TableInfo
		if err := rows.Scan(&t.Database, &t.Name, &t.Engine, &t.TotalRows,
			&t.TotalBytes, &t.Comment); err != nil {
			return nil, domain.ErrUpstream(err, "scan table row")
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Columns returns one table's column metadata.
func (r *BrowserRepo) Columns(ctx context.Context, database, table string) ([]domain.ColumnMeta, error) {
	return tableColumns(ctx, r.conn, database, table)
}

// Partitions returns one table's partition rollup over active parts.
func (r *BrowserRepo) Partitions(ctx context.Context, database, table string) ([]domain.PartitionInfo, error) {
	query := `SELECT database, table, partition,
	count() AS part_count,
	sum(rows) AS rows,
	sum(bytes_on_disk) AS bytes_on_disk
FROM system.parts
WHERE database = ? AND table = ? AND active
GROUP BY database, table, partition
ORDER BY partition`
	rows, err := r.conn.Query(ctx, query, database, table)
	if err != nil {
		return nil, domain.ErrUpstream(err, "roll up partitions of %s.%s", database, table)
	}
	defer rows.Close()

	var out []domain.PartitionInfo
	for rows.Next() {
		var p domain.PartitionInfo
		if err := rows.Scan(&p.Database, &p.Table, &p.Partition, &p.PartCount,
			&p.Rows, &p.BytesOnDisk); err != nil {
			return nil, domain.ErrUpstream(err, "scan partition rollup")
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Parts returns the active parts of one partition.
func (r *BrowserRepo) Parts(ctx context.Context, database, table, partition string) ([]domain.PartInfo, error) {
	query := `SELECT database, table, partition, name, active, rows,
	bytes_on_disk, data_compressed_bytes, data_uncompressed_bytes, level,
	modification_time
FROM system.parts
WHERE database = ? AND table = ? AND partition = ? AND active
ORDER BY name`
	rows, err := r.conn.Query(ctx, query, database, table, partition)
	if err != nil {
		return nil, domain.ErrUpstream(err, "query parts of %s.%s", database, table)
	}
	defer rows.Close()

	var out []domain.PartInfo
	for rows.Next() {
		var (
			part   domain.PartInfo
			active uint8
			mtime  time.Time
		)
		if err := rows.Scan(&part.Database, &part.Table, &part.Partition, &part.Name,
			&active, &part.Rows, &part.BytesOnDisk, &part.CompressedBytes,
			&part.UncompressedBytes, &part.Level, &mtime); err != nil {
			return nil, domain.ErrUpstream(err, "scan part row")
		}
		part.Active = active != 0
		part.ModificationTime = domain.WireTime(mtime)
		out = append(out, part)
	}
	return out, rows.Err()
}

// Projections returns one table's projection parts.
func (r *BrowserRepo) Projections(ctx context.Context, database, table string) ([]domain.ProjectionInfo, error) {
	query := `SELECT name, parent_name, rows, bytes_on_disk
FROM system.projection_parts
WHERE database = ? AND table = ? AND active
ORDER BY name`
	rows, err := r.conn.Query(ctx, query, database, table)
	if err != nil {
		return nil, domain.ErrUpstream(err, "query projections of %s.%s", database, table)
	}
	defer rows.Close()

	var out []domain.ProjectionInfo
	for rows.Next() {
		var p domain.ProjectionInfo
		if err := rows.Scan(&p.Name, &p.PartName, &p.Rows, &p.BytesOnDisk); err != nil {
			return nil, domain.ErrUpstream(err, "scan projection row")
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SkipIndexes returns one table's data-skipping indices.
func (r *BrowserRepo) SkipIndexes(ctx context.Context, database, table string) ([]domain.SkipIndexInfo, error) {
	query := `SELECT name, type, expr, granularity
FROM system.data_skipping_indices
WHERE database = ? AND table = ?
ORDER BY name`
	rows, err := r.conn.Query(ctx, query, database, table)
	if err != nil {
		return nil, domain.ErrUpstream(err, "query skip indices of %s.%s", database, table)
	}
	defer rows.Close()

	var out []domain.SkipIndexInfo
	for rows.Next() {
		var idx domain.SkipIndexInfo
		if err := rows.Scan(&idx.Name, &idx.Type, &idx.Expression, &idx.Granularity); err != nil {
			return nil, domain.ErrUpstream(err, "scan skip index row")
		}
		out = append(out, idx)
	}
	return out, rows.Err()
}
