package ui

import (
	"net/http"
)

// systemPanels lists the system page panels in display order. Searchable
// panels get the filter box.
var systemPanels = []struct {
	ID         string
	Label      string
	Searchable bool
}{
	{ID: "processes", Label: "Processes"},
	{ID: "merges", Label: "Merges"},
	{ID: "mutations", Label: "Mutations"},
	{ID: "metrics", Label: "Metrics", Searchable: true},
	{ID: "async-metrics", Label: "Async metrics", Searchable: true},
	{ID: "events", Label: "Events", Searchable: true},
	{ID: "users", Label: "Users"},
	{ID: "settings", Label: "Settings", Searchable: true},
}

func validSystemPanel(id string) string {
	for _, p := range systemPanels {
		if p.ID == id {
			return id
		}
	}
	return systemPanels[0].ID
}

func (h *Handler) SystemPage(w http.ResponseWriter, r *http.Request) {
	renderHTML(w, http.StatusOK, appPage("System", "system", h.chrome(r), systemPage(h.systemData(r))))
}

func (h *Handler) SystemFragment(w http.ResponseWriter, r *http.Request) {
	renderHTML(w, http.StatusOK, systemView(h.systemData(r)))
}

// systemData fetches the active panel only. The panel and its search text
// live in the URL, not the store; system views are snapshots, not part of
// the coordinated filter state.
func (h *Handler) systemData(r *http.Request) systemPageData {
	ctx := r.Context()
	d := systemPageData{
		Panel:          validSystemPanel(r.URL.Query().Get("panel")),
		Query:          r.URL.Query().Get("q"),
		RefreshSeconds: h.RefreshSeconds,
	}

	var err error
	switch d.Panel {
	case "processes":
		d.Processes, err = h.System.Processes(ctx)
	case "merges":
		d.Merges, err = h.System.Merges(ctx)
	case "mutations":
		d.Mutations, err = h.System.Mutations(ctx)
	case "metrics":
		d.Metrics, err = h.System.Metrics(ctx, d.Query)
	case "async-metrics":
		d.Metrics, err = h.System.AsyncMetrics(ctx, d.Query)
	case "events":
		d.Metrics, err = h.System.Events(ctx, d.Query)
	case "users":
		d.Users, err = h.System.Users(ctx)
	case "settings":
		d.Settings, err = h.System.Settings(ctx, d.Query)
	}
	if err != nil {
		d.Err = err.Error()
	}
	return d
}
