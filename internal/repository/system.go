package repository

import (
	"context"
	"time"

	ch "github.com/benjaminwootton/QueryDog-sub000/internal/clickhouse"
	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// SystemRepo reads the live-state system tables: processes, merges,
// mutations and the three metric families, plus users and settings.
type SystemRepo struct {
	conn ch.Conn
}

func NewSystemRepo(conn ch.Conn) *SystemRepo {
	return &SystemRepo{conn: conn}
}

// Ensure SystemRepo implements the interface.
var _ domain.SystemRepository = (*SystemRepo)(nil)

// Processes returns currently executing queries, longest-running first.
func (r *SystemRepo) Processes(ctx context.Context) ([]domain.ProcessEntry, error) {
	query := `SELECT query_id, user, toString(address) AS address, elapsed, query,
	read_rows, read_bytes, total_rows_approx, memory_usage, peak_memory_usage
FROM system.processes
ORDER BY elapsed DESC`
	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, domain.ErrUpstream(err, "query system.processes")
	}
	defer rows.Close()

	var out []domain.ProcessEntry
	for rows.Next() {
		var p domain.ProcessEntry
		if err := rows.Scan(&p.QueryID, &p.User, &p.Address, &p.Elapsed, &p.Query,
			&p.ReadRows, &p.ReadBytes, &p.TotalRowsApprox, &p.MemoryUsage,
			&p.PeakMemoryUsage); err != nil {
			return nil, domain.ErrUpstream(err, "scan process row")
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Merges returns in-flight merges, longest-running first.
func (r *SystemRepo) Merges(ctx context.Context) ([]domain.MergeEntry, error) {
	query := `SELECT database, table, result_part_name, elapsed, progress,
	num_parts, total_size_bytes_compressed, rows_read, rows_written,
	memory_usage, is_mutation
FROM system.merges
ORDER BY elapsed DESC`
	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, domain.ErrUpstream(err, "query system.merges")
	}
	defer rows.Close()

	var out []domain.MergeEntry
	for rows.Next() {
		var (
			m          domain.MergeEntry
			isMutation uint8
		)
		if err := rows.Scan(&m.Database, &m.Table, &m.ResultPartName, &m.Elapsed,
			&m.Progress, &m.NumParts, &m.TotalSizeBytes, &m.RowsRead,
			&m.RowsWritten, &m.MemoryUsage, &isMutation); err != nil {
			return nil, domain.ErrUpstream(err, "scan merge row")
		}
		m.IsMutation = isMutation != 0
		out = append(out, m)
	}
	return out, rows.Err()
}

// Mutations returns recent mutations, newest first.
func (r *SystemRepo) Mutations(ctx context.Context) ([]domain.MutationEntry, error) {
	query := `SELECT database, table, mutation_id, command, create_time,
	parts_to_do, is_done, latest_failed_part, latest_fail_reason
FROM system.mutations
ORDER BY create_time DESC
LIMIT 200`
	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, domain.ErrUpstream(err, "query system.mutations")
	}
	defer rows.Close()

	var out []domain.MutationEntry
	for rows.Next() {
		var (
			m       domain.MutationEntry
			created time.Time
			isDone  uint8
		)
		if err := rows.Scan(&m.Database, &m.Table, &m.MutationID, &m.Command,
			&created, &m.PartsToDo, &isDone, &m.LatestFailedPart,
			&m.LatestFailReason); err != nil {
			return nil, domain.ErrUpstream(err, "scan mutation row")
		}
		m.CreateTime = domain.WireTime(created)
		m.IsDone = isDone != 0
		out = append(out, m)
	}
	return out, rows.Err()
}

// metricQuery reads one name/value/description table with an optional
// case-insensitive name or description match.
func (r *SystemRepo) metricQuery(ctx context.Context, table, nameCol, valueExpr, search string) ([]domain.MetricEntry, error) {
	b := &whereBuilder{}
	b.search(search, nameCol, "description")
	query := "SELECT " + nameCol + ", " + valueExpr + ", description FROM " + table +
		b.clause() + " ORDER BY " + nameCol
	rows, err := r.conn.Query(ctx, query, b.args...)
	if err != nil {
		return nil, domain.ErrUpstream(err, "query %s", table)
	}
	defer rows.Close()

	var out []domain.MetricEntry
	for rows.Next() {
		var m domain.MetricEntry
		if err := rows.Scan(&m.Name, &m.Value, &m.Description); err != nil {
			return nil, domain.ErrUpstream(err, "scan %s row", table)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Metrics returns system.metrics, optionally narrowed by search.
func (r *SystemRepo) Metrics(ctx context.Context, search string) ([]domain.MetricEntry, error) {
	return r.metricQuery(ctx, "system.metrics", "metric", "toFloat64(value)", search)
}

// AsyncMetrics returns system.asynchronous_metrics, optionally narrowed by
// search.
func (r *SystemRepo) AsyncMetrics(ctx context.Context, search string) ([]domain.MetricEntry, error) {
	return r.metricQuery(ctx, "system.asynchronous_metrics", "metric", "toFloat64(value)", search)
}

// Events returns system.events, optionally narrowed by search.
func (r *SystemRepo) Events(ctx context.Context, search string) ([]domain.MetricEntry, error) {
	return r.metricQuery(ctx, "system.events", "event", "toFloat64(value)", search)
}

// Users returns the defined users.
func (r *SystemRepo) Users(ctx context.Context) ([]domain.UserEntry, error) {
	query := `SELECT name, toString(id) AS id, storage, toString(auth_type) AS auth_type,
	default_roles_all
FROM system.users
ORDER BY name`
	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, domain.ErrUpstream(err, "query system.users")
	}
	defer rows.Close()

	var out []domain.UserEntry
	for rows.Next() {
		var (
			u        domain.UserEntry
			rolesAll uint8
		)
		if err := rows.Scan(&u.Name, &u.ID, &u.Storage, &u.AuthType, &rolesAll); err != nil {
			return nil, domain.ErrUpstream(err, "scan user row")
		}
		u.DefaultRolesAll = rolesAll != 0
		out = append(out, u)
	}
	return out, rows.Err()
}

// Settings returns server settings, optionally narrowed by search.
func (r *SystemRepo) Settings(ctx context.Context, search string) ([]domain.SettingEntry, error) {
	b := &whereBuilder{}
	b.search(search, "name", "description")
	query := `SELECT name, value, changed, description, type, "default"
FROM system.settings` + b.clause() + ` ORDER BY name`
	rows, err := r.conn.Query(ctx, query, b.args...)
	if err != nil {
		return nil, domain.ErrUpstream(err, "query system.settings")
	}
	defer rows.Close()

	var out []domain.SettingEntry
	for rows.Next() {
		var (
			s       domain.SettingEntry
			changed uint8
		)
		if err := rows.Scan(&s.Name, &s.Value, &changed, &s.Description, &s.Type, &s.Default); err != nil {
			return nil, domain.ErrUpstream(err, "scan setting row")
		}
		s.Changed = changed != 0
		out = append(out, s)
	}
	return out, rows.Err()
}
