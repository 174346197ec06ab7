package ui

import (
	"net/http"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// activeGridTable maps the tables-page tab to its logical table. Parts is
// the default tab.
func activeGridTable(tab string) domain.LogicalTable {
	if tab == "partitions" {
		return domain.TablePartitions
	}
	return domain.TableParts
}

func (h *Handler) TablesPage(w http.ResponseWriter, r *http.Request) {
	if tab := r.URL.Query().Get("tab"); tab == "parts" || tab == "partitions" {
		h.Store.SetActiveTab(tab)
	}
	h.ensure(r, activeGridTable(h.Store.ActiveTab()))
	renderHTML(w, http.StatusOK, appPage("Tables", "tables", h.chrome(r), tablesPage(h.tablesData())))
}

func (h *Handler) TablesFragment(w http.ResponseWriter, r *http.Request) {
	h.ensure(r, activeGridTable(h.Store.ActiveTab()))
	renderHTML(w, http.StatusOK, tablesView(h.tablesData()))
}

// TablesFilter applies the database/table narrowing form to the active tab.
// Blank values clear their filter.
func (h *Handler) TablesFilter(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	t := activeGridTable(h.Store.ActiveTab())
	for _, field := range []string{"database", "table"} {
		if v := formString(r.Form, field); v != "" {
			h.Store.SetFieldFilter(t, field, []string{v})
		} else {
			h.Store.ClearFieldFilter(t, field)
		}
	}
	http.Redirect(w, r, "/ui/tables", http.StatusSeeOther)
}

func (h *Handler) tablesData() tablesPageData {
	t := activeGridTable(h.Store.ActiveTab())
	d := tablesPageData{
		Tab:            string(t),
		Err:            h.Store.Error(t),
		RefreshSeconds: h.RefreshSeconds,
		Sort:           h.Store.Sort(t),
		Page:           h.Store.Page(t),
	}
	filters := h.Store.Filters(t)
	d.Database = first(filters["database"])
	d.TableName = first(filters["table"])
	if t == domain.TablePartitions {
		data := h.Store.Partitions()
		d.Partitions = data.Entries
		d.Total = data.Total
	} else {
		data := h.Store.Parts()
		d.Parts = data.Entries
		d.Total = data.Total
	}
	return d
}
