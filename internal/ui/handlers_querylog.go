package ui

import (
	"net/http"
	"strconv"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

func (h *Handler) QueryLogPage(w http.ResponseWriter, r *http.Request) {
	h.ensure(r, domain.TableQueryLog)
	renderHTML(w, http.StatusOK, appPage("Query Log", "query-log", h.chrome(r), logPageBody(h.queryLogData(r))))
}

func (h *Handler) QueryLogFragment(w http.ResponseWriter, r *http.Request) {
	h.ensure(r, domain.TableQueryLog)
	renderHTML(w, http.StatusOK, logView(h.queryLogData(r)))
}

func (h *Handler) queryLogData(r *http.Request) logPageData {
	t := domain.TableQueryLog
	p := h.Store.FetchParams(t)
	data := h.Store.QueryLog()
	cfg := h.Store.Chart()
	d := logPageData{
		Title:          "Query Log",
		Base:           "/ui/query-log",
		Table:          t,
		TimeRange:      p.TimeRange,
		Search:         p.Search,
		SearchHint:     "Search query text",
		Chart:          cfg,
		ChartInput:     queryLogChartInput(cfg, data.Series, data.Stacked, p.Bucket, "/ui/query-log/drill"),
		RangeFilters:   p.RangeFilters,
		RangeFields:    rangeFilterFields(t),
		Histograms:     loadHistograms(r.Context(), p, histogramFields(t), h.QueryLog.Histogram),
		Columns:        h.Store.Columns(t),
		Rows:           data.Entries,
		Sort:           p.Sort,
		Page:           p.Page,
		Total:          data.Total,
		Err:            h.Store.Error(t),
		RefreshSeconds: h.RefreshSeconds,
	}
	if idx, err := strconv.Atoi(r.URL.Query().Get("detail")); err == nil && idx >= 0 && idx < len(data.Entries) {
		d.Detail = data.Entries[idx]
	}
	return d
}
