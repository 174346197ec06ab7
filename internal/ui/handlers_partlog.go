package ui

import (
	"net/http"
	"strconv"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

func (h *Handler) PartLogPage(w http.ResponseWriter, r *http.Request) {
	h.ensure(r, domain.TablePartLog)
	renderHTML(w, http.StatusOK, appPage("Part Log", "part-log", h.chrome(r), logPageBody(h.partLogData(r))))
}

func (h *Handler) PartLogFragment(w http.ResponseWriter, r *http.Request) {
	h.ensure(r, domain.TablePartLog)
	renderHTML(w, http.StatusOK, logView(h.partLogData(r)))
}

func (h *Handler) partLogData(r *http.Request) logPageData {
	t := domain.TablePartLog
	p := h.Store.FetchParams(t)
	data := h.Store.PartLog()
	cfg := h.Store.Chart()
	d := logPageData{
		Title:          "Part Log",
		Base:           "/ui/part-log",
		Table:          t,
		TimeRange:      p.TimeRange,
		Search:         p.Search,
		SearchHint:     "Search part and table names",
		Chart:          cfg,
		ChartInput:     partLogChartInput(cfg, data.Series, data.Stacked, p.Bucket, "/ui/part-log/drill"),
		RangeFilters:   p.RangeFilters,
		RangeFields:    rangeFilterFields(t),
		Histograms:     loadHistograms(r.Context(), p, histogramFields(t), h.PartLog.Histogram),
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
