package ui

import (
	"context"
	"net/http"
	"slices"
	"strconv"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
	"github.com/benjaminwootton/QueryDog-sub000/internal/format"
)

func (h *Handler) BrowserPage(w http.ResponseWriter, r *http.Request) {
	renderHTML(w, http.StatusOK, appPage("Browser", "browser", h.chrome(r), browserPage(h.browserData(r.Context()))))
}

// BrowserSelect applies one drill-down click. Clicking a selected node
// deselects it; any selection clears everything below its level.
func (h *Handler) BrowserSelect(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	level, name := q.Get("level"), q.Get("name")
	if level == "category" && !slices.Contains(domain.BrowserCategories, domain.BrowserCategory(name)) {
		h.renderServiceError(w, r, domain.ErrValidation("unknown browser category %q", name))
		return
	}
	switch level {
	case "database", "table", "category", "item", "part":
	default:
		h.renderServiceError(w, r, domain.ErrValidation("unknown browser level %q", level))
		return
	}
	h.Store.UpdateBrowser(func(s *domain.BrowserSelection) {
		switch level {
		case "database":
			s.SelectDatabase(name)
		case "table":
			s.SelectTable(name)
		case "category":
			s.SelectCategory(domain.BrowserCategory(name))
		case "item":
			s.SelectItem(name)
		case "part":
			s.SelectPart(name)
		}
	})
	http.Redirect(w, r, "/ui/browser", http.StatusSeeOther)
}

// browserData walks the selection path, fetching one column per selected
// level. A failing level shows its error in place and leaves the shallower
// columns usable.
func (h *Handler) browserData(ctx context.Context) browserPageData {
	sel := h.Store.Browser()
	d := browserPageData{Sel: sel}

	dbCol := browserColumn{Title: "Databases", Level: "database"}
	databases, err := h.Browser.Databases(ctx)
	if err != nil {
		dbCol.Err = err.Error()
	}
	for _, db := range databases {
		dbCol.Nodes = append(dbCol.Nodes, browserNode{Name: db.Name, Sub: db.Engine, Selected: db.Name == sel.Database})
	}
	d.Columns = append(d.Columns, dbCol)
	if sel.Database == "" {
		return d
	}

	tableCol := browserColumn{Title: "Tables", Level: "table"}
	tables, err := h.Browser.Tables(ctx, sel.Database)
	if err != nil {
		tableCol.Err = err.Error()
	}
	var selectedTable *domain.TableInfo
	for i, t := range tables {
		sub := t.Engine
		if t.TotalRows != nil {
			sub = format.Count(*t.TotalRows) + " rows"
		}
		tableCol.Nodes = append(tableCol.Nodes, browserNode{Name: t.Name, Sub: sub, Selected: t.Name == sel.Table})
		if t.Name == sel.Table {
			selectedTable = &tables[i]
		}
	}
	d.Columns = append(d.Columns, tableCol)
	if sel.Table == "" {
		return d
	}

	catCol := browserColumn{Title: "Structure", Level: "category"}
	for _, c := range domain.BrowserCategories {
		catCol.Nodes = append(catCol.Nodes, browserNode{Name: string(c), Selected: c == sel.Category})
	}
	d.Columns = append(d.Columns, catCol)

	switch sel.Category {
	case domain.CategoryPartitions:
		d = h.browserPartitions(ctx, sel, d)
	case domain.CategoryColumns:
		d = h.browserColumns(ctx, sel, d)
	case domain.CategoryProjections:
		d = h.browserProjections(ctx, sel, d)
	case domain.CategoryIndexes:
		d = h.browserIndexes(ctx, sel, d)
	}

	if d.Detail == nil && selectedTable != nil {
		fields := [][2]string{
			{"database", selectedTable.Database},
			{"engine", selectedTable.Engine},
		}
		if selectedTable.TotalRows != nil {
			fields = append(fields, [2]string{"total rows", format.Count(*selectedTable.TotalRows)})
		}
		if selectedTable.TotalBytes != nil {
			fields = append(fields, [2]string{"total bytes", format.Bytes(*selectedTable.TotalBytes)})
		}
		if selectedTable.Comment != "" {
			fields = append(fields, [2]string{"comment", selectedTable.Comment})
		}
		d.Detail = &browserDetail{Title: selectedTable.Name, Fields: fields}
	}
	return d
}

func (h *Handler) browserPartitions(ctx context.Context, sel domain.BrowserSelection, d browserPageData) browserPageData {
	col := browserColumn{Title: "Partitions", Level: "item"}
	partitions, err := h.Browser.Partitions(ctx, sel.Database, sel.Table)
	if err != nil {
		col.Err = err.Error()
	}
	for _, p := range partitions {
		col.Nodes = append(col.Nodes, browserNode{
			Name:     p.Partition,
			Sub:      format.Count(p.PartCount) + " parts",
			Selected: p.Partition == sel.Item,
		})
	}
	d.Columns = append(d.Columns, col)
	if sel.Item == "" {
		return d
	}

	partCol := browserColumn{Title: "Parts", Level: "part"}
	parts, err := h.Browser.Parts(ctx, sel.Database, sel.Table, sel.Item)
	if err != nil {
		partCol.Err = err.Error()
	}
	for _, p := range parts {
		partCol.Nodes = append(partCol.Nodes, browserNode{
			Name:     p.Name,
			Sub:      format.Bytes(p.BytesOnDisk),
			Selected: p.Name == sel.Part,
		})
		if p.Name == sel.Part {
			active := "inactive"
			if p.Active {
				active = "active"
			}
			d.Detail = &browserDetail{Title: p.Name, Fields: [][2]string{
				{"partition", dashIfEmpty(p.Partition)},
				{"state", active},
				{"rows", format.Count(p.Rows)},
				{"bytes on disk", format.Bytes(p.BytesOnDisk)},
				{"compressed", format.Bytes(p.CompressedBytes)},
				{"uncompressed", format.Bytes(p.UncompressedBytes)},
				{"level", strconv.FormatUint(uint64(p.Level), 10)},
				{"modified", format.Time(p.ModificationTime.Time())},
			}}
		}
	}
	d.Columns = append(d.Columns, partCol)
	return d
}

func (h *Handler) browserColumns(ctx context.Context, sel domain.BrowserSelection, d browserPageData) browserPageData {
	col := browserColumn{Title: "Columns", Level: "item"}
	columns, err := h.Browser.Columns(ctx, sel.Database, sel.Table)
	if err != nil {
		col.Err = err.Error()
	}
	for _, c := range columns {
		col.Nodes = append(col.Nodes, browserNode{Name: c.Name, Sub: c.Type, Selected: c.Name == sel.Item})
		if c.Name == sel.Item {
			fields := [][2]string{{"type", c.Type}}
			if c.Comment != "" {
				fields = append(fields, [2]string{"comment", c.Comment})
			}
			d.Detail = &browserDetail{Title: c.Name, Fields: fields}
		}
	}
	d.Columns = append(d.Columns, col)
	return d
}

// browserProjections rolls the per-part projection rows up by name before
// listing them.
func (h *Handler) browserProjections(ctx context.Context, sel domain.BrowserSelection, d browserPageData) browserPageData {
	col := browserColumn{Title: "Projections", Level: "item"}
	projections, err := h.Browser.Projections(ctx, sel.Database, sel.Table)
	if err != nil {
		col.Err = err.Error()
	}
	type agg struct {
		parts int
		rows  uint64
		bytes uint64
	}
	byName := map[string]*agg{}
	var order []string
	for _, p := range projections {
		a, ok := byName[p.Name]
		if !ok {
			a = &agg{}
			byName[p.Name] = a
			order = append(order, p.Name)
		}
		a.parts++
		a.rows += p.Rows
		a.bytes += p.BytesOnDisk
	}
	for _, name := range order {
		a := byName[name]
		col.Nodes = append(col.Nodes, browserNode{
			Name:     name,
			Sub:      strconv.Itoa(a.parts) + " parts",
			Selected: name == sel.Item,
		})
		if name == sel.Item {
			d.Detail = &browserDetail{Title: name, Fields: [][2]string{
				{"parts", strconv.Itoa(a.parts)},
				{"rows", format.Count(a.rows)},
				{"bytes on disk", format.Bytes(a.bytes)},
			}}
		}
	}
	d.Columns = append(d.Columns, col)
	return d
}

func (h *Handler) browserIndexes(ctx context.Context, sel domain.BrowserSelection, d browserPageData) browserPageData {
	col := browserColumn{Title: "Skip indexes", Level: "item"}
	indexes, err := h.Browser.SkipIndexes(ctx, sel.Database, sel.Table)
	if err != nil {
		col.Err = err.Error()
	}
	for _, ix := range indexes {
		col.Nodes = append(col.Nodes, browserNode{Name: ix.Name, Sub: ix.Type, Selected: ix.Name == sel.Item})
		if ix.Name == sel.Item {
			d.Detail = &browserDetail{Title: ix.Name, Fields: [][2]string{
				{"type", ix.Type},
				{"expression", ix.Expression},
				{"granularity", format.Count(ix.Granularity)},
			}}
		}
	}
	d.Columns = append(d.Columns, col)
	return d
}
