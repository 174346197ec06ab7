package ui

import (
	"fmt"
	"strconv"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
	"github.com/benjaminwootton/QueryDog-sub000/internal/format"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// logGridView renders a log table from dynamic rows. Columns follow the
// stored column config: hidden columns are skipped, widths become min-width
// styles, and every header sorts through the view's sort route.
func logGridView(base string, cols []domain.ColumnConfig, rows []domain.Row, sort domain.SortSpec, page domain.Pagination, total int) Node {
	var headers []Node
	headers = append(headers, Th(Class("cell-detail"), Span(Class("sr-only"), Text("Detail"))))
	for _, c := range cols {
		if !c.Visible {
			continue
		}
		headers = append(headers, sortHeader(base, c.Name, c.Name, sort, c.Width))
	}

	var body []Node
	for i, row := range rows {
		var cells []Node
		cells = append(cells, Td(Class("cell-detail"),
			A(Href(fmt.Sprintf("%s?detail=%d", base, i)), Class("btn btn-sm btn-icon"), Title("Row detail"),
				I(Class("btn-icon-glyph"), Attr("data-lucide", "eye"), Attr("aria-hidden", "true")),
			),
		))
		for _, c := range cols {
			if !c.Visible {
				continue
			}
			v := row[c.Name]
			if c.Name == "query" {
				cells = append(cells, Td(Class("cell-query"), Title(v.Display()), Text(dashIfEmpty(v.Display()))))
				continue
			}
			cells = append(cells, Td(Text(formatCell(c.ColumnMeta, v))))
		}
		body = append(body, Tr(Group(cells)))
	}
	if len(rows) == 0 {
		span := 1
		for _, c := range cols {
			if c.Visible {
				span++
			}
		}
		body = append(body, Tr(Td(ColSpan(strconv.Itoa(span)), Class("cell-wrap"), P(Class(mutedClass()+" mb-0"), Text("No rows match the current filters.")))))
	}

	return Div(
		Div(Class("table-wrap"),
			Table(
				THead(Tr(Group(headers))),
				TBody(Group(body)),
			),
		),
		paginationFooter(base, page, total),
	)
}

// rowDetailModal shows every column of one row, visible or not. The query
// text gets its own block so long statements stay readable.
func rowDetailModal(base string, cols []domain.ColumnConfig, row domain.Row) Node {
	var fields []Node
	var query string
	for _, c := range cols {
		v, ok := row[c.Name]
		if !ok {
			continue
		}
		if c.Name == "query" {
			query = v.Display()
			continue
		}
		fields = append(fields, Dt(Text(c.Name)), Dd(Text(formatCell(c.ColumnMeta, v))))
	}

	var queryBlock Node
	if query != "" {
		queryBlock = Div(Class("mb-3"),
			H3(Class("text-small"), Text("Query")),
			Pre(Class("snippet"), Code(Text(query))),
		)
	}

	return Div(Class("modal-overlay"),
		Div(Class("modal modal-wide Box card"),
			Div(Class("d-flex flex-items-center flex-justify-between mb-3"),
				H2(Text("Row Detail")),
				A(Href(base), Class(secondaryButtonClass()+" btn-sm"), Text("Close")),
			),
			queryBlock,
			Dl(Class("detail-list"), Group(fields)),
		),
	)
}

// partsGridView is the fixed-column grid over system.parts rows.
func partsGridView(base string, parts []domain.PartInfo, sort domain.SortSpec, page domain.Pagination, total int) Node {
	headers := []Node{
		sortHeader(base, "database", "database", sort, 0),
		sortHeader(base, "table", "table", sort, 0),
		sortHeader(base, "partition", "partition", sort, 0),
		sortHeader(base, "name", "name", sort, 160),
		Th(Text("active")),
		sortHeader(base, "rows", "rows", sort, 0),
		sortHeader(base, "bytes_on_disk", "bytes on disk", sort, 0),
		Th(Text("compressed")),
		Th(Text("uncompressed")),
		sortHeader(base, "level", "level", sort, 0),
		sortHeader(base, "modification_time", "modified", sort, 160),
	}

	var body []Node
	for _, p := range parts {
		active := statusLabel("inactive", "secondary")
		if p.Active {
			active = statusLabel("active", "success")
		}
		body = append(body, Tr(
			Td(Text(p.Database)),
			Td(Text(p.Table)),
			Td(Text(dashIfEmpty(p.Partition))),
			Td(Text(p.Name)),
			Td(active),
			Td(Text(format.Count(p.Rows))),
			Td(Text(format.Bytes(p.BytesOnDisk))),
			Td(Text(format.Bytes(p.CompressedBytes))),
			Td(Text(format.Bytes(p.UncompressedBytes))),
			Td(Text(strconv.FormatUint(uint64(p.Level), 10))),
			Td(Text(format.Time(p.ModificationTime.Time()))),
		))
	}
	if len(parts) == 0 {
		body = append(body, Tr(Td(ColSpan("11"), P(Class(mutedClass()+" mb-0"), Text("No parts match the current filters.")))))
	}

	return Div(
		Div(Class("table-wrap"),
			Table(THead(Tr(Group(headers))), TBody(Group(body))),
		),
		paginationFooter(base, page, total),
	)
}

// partitionsGridView is the fixed-column grid over the per-partition rollup.
func partitionsGridView(base string, partitions []domain.PartitionInfo, sort domain.SortSpec, page domain.Pagination, total int) Node {
	headers := []Node{
		sortHeader(base, "database", "database", sort, 0),
		sortHeader(base, "table", "table", sort, 0),
		sortHeader(base, "partition", "partition", sort, 0),
		sortHeader(base, "part_count", "parts", sort, 0),
		sortHeader(base, "rows", "rows", sort, 0),
		sortHeader(base, "bytes_on_disk", "bytes on disk", sort, 0),
	}

	var body []Node
	for _, p := range partitions {
		body = append(body, Tr(
			Td(Text(p.Database)),
			Td(Text(p.Table)),
			Td(Text(dashIfEmpty(p.Partition))),
			Td(Text(format.Count(p.PartCount))),
			Td(Text(format.Count(p.Rows))),
			Td(Text(format.Bytes(p.BytesOnDisk))),
		))
	}
	if len(partitions) == 0 {
		body = append(body, Tr(Td(ColSpan("6"), P(Class(mutedClass()+" mb-0"), Text("No partitions match the current filters.")))))
	}

	return Div(
		Div(Class("table-wrap"),
			Table(THead(Tr(Group(headers))), TBody(Group(body))),
		),
		paginationFooter(base, page, total),
	)
}
