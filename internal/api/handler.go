// Package api provides the HTTP handlers for the dashboard REST API.
//
// Every endpoint lives under /api, takes its parameters from the query
// string (or a JSON body for the console endpoints), and returns JSON.
// Time values cross the wire as "2006-01-02 15:04:05" in the server's
// local zone; filters and range filters arrive as JSON-encoded strings
// inside a single query parameter.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/benjaminwootton/QueryDog-sub000/internal/service"
)

// Pinger is the probe the health endpoint uses to reach ClickHouse.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler implements the REST API over the service layer.
type Handler struct {
	logger   *slog.Logger
	ping     Pinger
	queryLog queryLogService
	partLog  partLogService
	tables   tablesService
	system   systemService
	browser  browserService
	analyze  analyzeService
}

// NewHandler creates a Handler with all required service dependencies.
func NewHandler(
	logger *slog.Logger,
	ping Pinger,
	queryLog *service.QueryLogService,
	partLog *service.PartLogService,
	tables *service.TablesService,
	system *service.SystemService,
	browser *service.BrowserService,
	analyze *service.AnalyzeService,
) *Handler {
	return &Handler{
		logger:   logger,
		ping:     ping,
		queryLog: queryLog,
		partLog:  partLog,
		tables:   tables,
		system:   system,
		browser:  browser,
		analyze:  analyze,
	}
}

// Routes returns the router for the /api subtree.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/query-log", func(r chi.Router) {
		r.Get("/", h.listQueryLog)
		r.Get("/timeseries", h.queryLogTimeSeries)
		r.Get("/timeseries-stacked", h.queryLogStacked)
		r.Get("/count", h.countQueryLog)
		r.Get("/columns", h.queryLogColumns)
		r.Get("/grouped", h.groupedQueryLog)
		r.Get("/histogram/{field}", h.queryLogHistogram)
		r.Get("/distinct/{field}", h.queryLogDistinct)
	})

	r.Route("/part-log", func(r chi.Router) {
		r.Get("/", h.listPartLog)
		r.Get("/timeseries", h.partLogTimeSeries)
		r.Get("/timeseries-stacked", h.partLogStacked)
		r.Get("/count", h.countPartLog)
		r.Get("/columns", h.partLogColumns)
		r.Get("/histogram/{field}", h.partLogHistogram)
		r.Get("/distinct/{field}", h.partLogDistinct)
	})

	r.Route("/parts", func(r chi.Router) {
		r.Get("/", h.listParts)
		r.Get("/count", h.countParts)
	})

	r.Route("/partitions", func(r chi.Router) {
		r.Get("/", h.listPartitions)
		r.Get("/count", h.countPartitions)
	})

	r.Route("/browser", func(r chi.Router) {
		r.Get("/databases", h.browserDatabases)
		r.Get("/tables/{db}", h.browserTables)
		r.Get("/columns/{db}/{table}", h.browserColumns)
		r.Get("/partitions/{db}/{table}", h.browserPartitions)
		r.Get("/parts/{db}/{table}/{partition}", h.browserParts)
		r.Get("/projections/{db}/{table}", h.browserProjections)
		r.Get("/skip-indexes/{db}/{table}", h.browserSkipIndexes)
	})

	r.Post("/explain/{type}", h.explain)
	r.Post("/query", h.executeQuery)

	r.Get("/processes", h.processes)
	r.Get("/merges", h.merges)
	r.Get("/mutations", h.mutations)
	r.Get("/metrics", h.metrics)
	r.Get("/async-metrics", h.asyncMetrics)
	r.Get("/events", h.events)
	r.Get("/users", h.users)
	r.Get("/settings", h.settings)
	r.Get("/connection-info", h.connectionInfo)

	return r
}

// Health reports whether ClickHouse is reachable. Mounted outside /api so
// load balancers can probe it without touching the API surface.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.ping.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, Error{
			Code:    http.StatusServiceUnavailable,
			Message: "clickhouse unreachable: " + err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
