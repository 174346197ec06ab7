package repository

import (
	"context"
	"fmt"
	"time"

	ch "github.com/benjaminwootton/QueryDog-sub000/internal/clickhouse"
	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// PartsRepo reads system.parts, both as individual parts and rolled up per
// partition. No time window applies here; the table reflects current state.
type PartsRepo struct {
	conn ch.Conn
}

func NewPartsRepo(conn ch.Conn) *PartsRepo {
	return &PartsRepo{conn: conn}
}

// Ensure PartsRepo implements the interface.
var _ domain.PartsRepository = (*PartsRepo)(nil)

const partColumns = `database, table, partition, name, active, rows,
	bytes_on_disk, data_compressed_bytes, data_uncompressed_bytes, level,
	modification_time`

func partsWhere(p domain.TableQuery) (*whereBuilder, error) {
	b := &whereBuilder{}
	if err := b.fieldFilters(p.Filters); err != nil {
		return nil, err
	}
	if err := b.rangeFilters(p.RangeFilters); err != nil {
		return nil, err
	}
	return b, nil
}

// List returns part rows for the parts grid.
func (r *PartsRepo) List(ctx context.Context, p domain.TableQuery) ([]domain.PartInfo, error) {
	where, err := partsWhere(p)
	if err != nil {
		return nil, err
	}
	order, err := orderClause(p.Sort, domain.DefaultSort(domain.TableParts))
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT %s FROM system.parts%s%s%s",
		partColumns, where.clause(), order, limitClause(p.Limit, p.Offset))

	rows, err := r.conn.Query(ctx, query, where.args...)
	if err != nil {
		return nil, domain.ErrUpstream(err, "query system.parts")
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

// Count returns the part count for the current filters.
func (r *PartsRepo) Count(ctx context.Context, p domain.TableQuery) (uint64, error) {
	where, err := partsWhere(p)
	if err != nil {
		return 0, err
	}
	var total uint64
	query := "SELECT count() FROM system.parts" + where.clause()
	if err := r.conn.QueryRow(ctx, query, where.args...).Scan(&total); err != nil {
		return 0, domain.ErrUpstream(err, "count system.parts")
	}
	return total, nil
}

// partitionRollup renders the per-partition aggregation over active parts.
// Field filters narrow the parts that feed the rollup; range filters apply
// to the aggregated values, so they land in HAVING.
func partitionRollup(p domain.TableQuery) (string, []any, error) {
	where := &whereBuilder{}
	where.add("active")
	if err := where.fieldFilters(p.Filters); err != nil {
		return "", nil, err
	}
	having := &whereBuilder{keyword: "HAVING"}
	if err := having.rangeFilters(p.RangeFilters); err != nil {
		return "", nil, err
	}
	query := fmt.Sprintf(`SELECT
	database,
	table,
	partition,
	count() AS part_count,
	sum(rows) AS rows,
	sum(bytes_on_disk) AS bytes_on_disk
FROM system.parts%s
GROUP BY database, table, partition%s`, where.clause(), having.clause())
	return query, append(where.args, having.args...), nil
}

// Partitions returns the per-partition rollup for the partitions grid.
func (r *PartsRepo) Partitions(ctx context.Context, p domain.TableQuery) ([]domain.PartitionInfo, error) {
	rollup, args, err := partitionRollup(p)
	if err != nil {
		return nil, err
	}
	order, err := orderClause(p.Sort, domain.DefaultSort(domain.TablePartitions))
	if err != nil {
		return nil, err
	}
	query := rollup + order + limitClause(p.Limit, p.Offset)

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.ErrUpstream(err, "roll up system.parts partitions")
	}
	defer rows.Close()

	var out []domain.PartitionInfo
	for rows.Next() {
		var part domain.PartitionInfo
		if err := rows.Scan(&part.Database, &part.Table, &part.Partition,
			&part.PartCount, &part.Rows, &part.BytesOnDisk); err != nil {
			return nil, domain.ErrUpstream(err, "scan partition rollup")
		}
		out = append(out, part)
	}
	return out, rows.Err()
}

// PartitionCount returns how many partitions the rollup yields.
func (r *PartsRepo) PartitionCount(ctx context.Context, p domain.TableQuery) (uint64, error) {
	rollup, args, err := partitionRollup(p)
	if err != nil {
		return 0, err
	}
	var total uint64
	query := "SELECT count() FROM (" + rollup + ")"
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, domain.ErrUpstream(err, "count partitions")
	}
	return total, nil
}
