package ui

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
	"github.com/benjaminwootton/QueryDog-sub000/internal/ui/assets"
)

// MountRoutes wires every dashboard page, action, and fragment endpoint.
// The router is expected to be mounted under /ui.
func MountRoutes(r chi.Router, h *Handler) {
	staticFS, err := fs.Sub(assets.StaticFS(), "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/ui/static/", http.FileServer(http.FS(staticFS))))
	}

	r.Get("/", h.Overview)
	r.Get("/overview/fragment", h.OverviewFragment)

	r.Route("/query-log", func(r chi.Router) {
		r.Get("/", h.QueryLogPage)
		r.Get("/fragment", h.QueryLogFragment)
		h.mountLogActions(r, domain.TableQueryLog, "/ui/query-log")
	})

	r.Route("/part-log", func(r chi.Router) {
		r.Get("/", h.PartLogPage)
		r.Get("/fragment", h.PartLogFragment)
		h.mountLogActions(r, domain.TablePartLog, "/ui/part-log")
	})

	r.Route("/tables", func(r chi.Router) {
		r.Get("/", h.TablesPage)
		r.Get("/fragment", h.TablesFragment)
		r.Post("/filter", h.TablesFilter)
		r.Get("/parts/sort", h.sortGrid(domain.TableParts, "/ui/tables"))
		r.Get("/parts/page", h.setPage(domain.TableParts, "/ui/tables"))
		r.Post("/parts/filters/clear", h.clearFilters(domain.TableParts, "/ui/tables"))
		r.Get("/partitions/sort", h.sortGrid(domain.TablePartitions, "/ui/tables"))
		r.Get("/partitions/page", h.setPage(domain.TablePartitions, "/ui/tables"))
		r.Post("/partitions/filters/clear", h.clearFilters(domain.TablePartitions, "/ui/tables"))
	})

	r.Get("/system", h.SystemPage)
	r.Get("/system/fragment", h.SystemFragment)

	r.Get("/browser", h.BrowserPage)
	r.Get("/browser/select", h.BrowserSelect)

	r.Get("/sql", h.SQLPage)
	r.Post("/sql/run", h.SQLRun)
	r.Post("/sql/explain", h.SQLExplain)
	r.Post("/sql/download.csv", h.SQLDownloadCSV)

	r.Post("/chart", h.ChartConfigSubmit)
	r.Post("/reset", h.ResetFilters)
	r.Post("/refresh", h.RefreshNow)
	r.Post("/onboarding/dismiss", h.DismissOnboarding)
}
