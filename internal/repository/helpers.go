// Package repository reads the ClickHouse system tables behind every view.
// All SQL is assembled here; identifiers coming from request parameters are
// validated before they are spliced in, values always travel as bind
// arguments.
package repository

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	ch "github.com/benjaminwootton/QueryDog-sub000/internal/clickhouse"
	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// validIdent reports whether s is safe to splice into SQL as an identifier.
func validIdent(s string) bool {
	return identPattern.MatchString(s)
}

// whereBuilder assembles a WHERE clause with positional placeholders.
// Conditions render in insertion order; map-driven conditions are added in
// sorted key order so the same inputs always produce the same SQL. Setting
// keyword switches the rendered clause to HAVING for post-aggregation
// conditions.
type whereBuilder struct {
	keyword string
	conds   []string
	args    []any
}

func (b *whereBuilder) add(cond string, args ...any) {
	b.conds = append(b.conds, cond)
	b.args = append(b.args, args...)
}

func (b *whereBuilder) timeRange(col string, r domain.TimeRange) {
	b.add(col+" >= ?", r.Start)
	b.add(col+" <= ?", r.End)
}

func (b *whereBuilder) search(text string, cols ...string) {
	if text == "" || len(cols) == 0 {
		return
	}
	ors := make([]string, len(cols))
	for i, c := range cols {
		ors[i] = fmt.Sprintf("positionCaseInsensitive(%s, ?) > 0", c)
		b.args = append(b.args, text)
	}
	b.conds = append(b.conds, "("+strings.Join(ors, " OR ")+")")
}

// fieldFilters adds one IN condition per filtered column. Matching goes
// through toString so enum, numeric and low-cardinality columns all compare
// against the string values the UI carries.
func (b *whereBuilder) fieldFilters(f domain.FieldFilters) error {
	for _, field := range sortedKeys(f) {
		values := f[field]
		if len(values) == 0 {
			continue
		}
		if !validIdent(field) {
			return domain.ErrValidation("invalid filter field %q", field)
		}
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ")
		b.conds = append(b.conds, fmt.Sprintf("toString(%s) IN (%s)", field, placeholders))
		for _, v := range values {
			b.args = append(b.args, v)
		}
	}
	return nil
}

func (b *whereBuilder) rangeFilters(f domain.RangeFilters) error {
	for _, field := range sortedKeys(f) {
		bounds := f[field]
		if bounds.Empty() {
			continue
		}
		if !validIdent(field) {
			return domain.ErrValidation("invalid range filter field %q", field)
		}
		if bounds.Min != nil {
			b.add(field+" >= ?", *bounds.Min)
		}
		if bounds.Max != nil {
			b.add(field+" <= ?", *bounds.Max)
		}
	}
	return nil
}

func (b *whereBuilder) clause() string {
	if len(b.conds) == 0 {
		return ""
	}
	kw := b.keyword
	if kw == "" {
		kw = "WHERE"
	}
	return " " + kw + " " + strings.Join(b.conds, " AND ")
}

// logWhere assembles the full WHERE of a log-table query: time window,
// free-text search over searchCols, then both filter families.
func logWhere(p domain.TableQuery, timeCol string, searchCols ...string) (*whereBuilder, error) {
	b := &whereBuilder{}
	b.timeRange(timeCol, p.TimeRange)
	b.search(p.Search, searchCols...)
	if err := b.fieldFilters(p.Filters); err != nil {
		return nil, err
	}
	if err := b.rangeFilters(p.RangeFilters); err != nil {
		return nil, err
	}
	return b, nil
}

// orderClause validates and renders ORDER BY. An empty sort field falls back
// to the table default; anything but an explicit ASC sorts descending.
func orderClause(spec, fallback domain.SortSpec) (string, error) {
	if spec.Field == "" {
		spec = fallback
	}
	if !validIdent(spec.Field) {
		return "", domain.ErrValidation("invalid sort field %q", spec.Field)
	}
	dir := "DESC"
	if spec.Order == domain.SortAsc {
		dir = "ASC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", spec.Field, dir), nil
}

func limitClause(limit, offset int) string {
	if limit <= 0 {
		return ""
	}
	if offset > 0 {
		return fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
	}
	return fmt.Sprintf(" LIMIT %d", limit)
}

// bucketExpr renders the chart bucketing expression. Sub-second buckets
// never occur; guard anyway so a zero duration cannot render INTERVAL 0.
func bucketExpr(col string, bucket time.Duration) string {
	secs := int(bucket.Seconds())
	if secs < 1 {
		secs = 1
	}
	return fmt.Sprintf("toStartOfInterval(%s, INTERVAL %d SECOND)", col, secs)
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// histogram counts the most frequent values of one column under the full
// condition set. toString keeps the bucket labels uniform across column
// types.
func histogram(ctx context.Context, conn ch.Conn, table, timeCol string, p domain.TableQuery, field string, topN int, searchCols ...string) ([]domain.HistogramBucket, error) {
	if !validIdent(field) {
		return nil, domain.ErrValidation("invalid histogram field %q", field)
	}
	if topN <= 0 {
		topN = 20
	}
	where, err := logWhere(p, timeCol, searchCols...)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT toString(%s) AS value, count() AS total
FROM %s%s
GROUP BY value
ORDER BY total DESC
LIMIT %d`, field, table, where.clause(), topN)

	rows, err := conn.Query(ctx, query, where.args...)
	if err != nil {
		return nil, domain.ErrUpstream(err, "histogram %s.%s", table, field)
	}
	defer rows.Close()

	var out []domain.HistogramBucket
	for rows.Next() {
		var b domain.HistogramBucket
		if err := rows.Scan(&b.Name, &b.Count); err != nil {
			return nil, domain.ErrUpstream(err, "scan histogram bucket")
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// distinctValues lists a column's distinct values inside the time window,
// for filter dropdowns.
func distinctValues(ctx context.Context, conn ch.Conn, table, timeCol string, tr domain.TimeRange, field string, limit int) ([]string, error) {
	if !validIdent(field) {
		return nil, domain.ErrValidation("invalid field %q", field)
	}
	if limit <= 0 {
		limit = 100
	}
	b := &whereBuilder{}
	b.timeRange(timeCol, tr)
	query := fmt.Sprintf(`SELECT DISTINCT toString(%s) AS value
FROM %s%s
ORDER BY value
LIMIT %d`, field, table, b.clause(), limit)

	rows, err := conn.Query(ctx, query, b.args...)
	if err != nil {
		return nil, domain.ErrUpstream(err, "distinct %s.%s", table, field)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, domain.ErrUpstream(err, "scan distinct value")
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// tableColumns reads one table's column metadata from system.columns.
func tableColumns(ctx context.Context, conn ch.Conn, database, table string) ([]domain.ColumnMeta, error) {
	query := `SELECT name, type, comment
FROM system.columns
WHERE database = ? AND table = ?
ORDER BY position`
	rows, err := conn.Query(ctx, query, database, table)
	if err != nil {
		return nil, domain.ErrUpstream(err, "columns of %s.%s", database, table)
	}
	defer rows.Close()

	var out []domain.ColumnMeta
	for rows.Next() {
		var c domain.ColumnMeta
		if err := rows.Scan(&c.Name, &c.Type, &c.Comment); err != nil {
			return nil, domain.ErrUpstream(err, "scan column metadata")
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
