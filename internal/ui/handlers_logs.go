package ui

import (
	"context"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
	"github.com/benjaminwootton/QueryDog-sub000/internal/state"

	"github.com/go-chi/chi/v5"
)

// histogramTopN caps each filter panel at the most frequent values.
const histogramTopN = 12

// timePresets are the one-click window choices, in display order.
var timePresets = []string{"15m", "1h", "6h", "24h", "7d"}

// histogramFields lists the filter-panel columns per log view.
func histogramFields(t domain.LogicalTable) []string {
	if t == domain.TablePartLog {
		return []string{"event_type", "database", "table"}
	}
	return []string{"type", "query_kind", "user"}
}

// rangeFilterFields lists the numeric columns offered as range filters.
func rangeFilterFields(t domain.LogicalTable) []string {
	if t == domain.TablePartLog {
		return []string{"duration_ms", "size_in_bytes"}
	}
	return []string{"query_duration_ms", "memory_usage"}
}

func parsePreset(last string) (time.Duration, bool) {
	if last == "7d" {
		return 7 * 24 * time.Hour, true
	}
	d, err := time.ParseDuration(last)
	if err != nil || d <= 0 {
		return 0, false
	}
	return d, true
}

// uiPath guards redirect targets taken from form input: only rooted
// dashboard paths pass, anything else falls back.
func uiPath(p, fallback string) string {
	if strings.HasPrefix(p, "/ui") && !strings.HasPrefix(p, "//") {
		return p
	}
	return fallback
}

func (h *Handler) redirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	http.Redirect(w, r, uiPath(r.FormValue("back"), fallback), http.StatusSeeOther)
}

// mountLogActions wires the store-mutating routes shared by the query-log
// and part-log views under their base path. Single-click navigations (sort
// headers, pagination, histogram bars, chart drill) are GETs that mutate
// the store and redirect; everything carrying user-typed input is a POST.
func (h *Handler) mountLogActions(r chi.Router, t domain.LogicalTable, base string) {
	r.Get("/range", h.rangePreset(base))
	r.Post("/range", h.rangeCustom(base))
	r.Get("/shift", h.shiftRange(base))
	r.Post("/search", h.searchSubmit(base))
	r.Get("/drill", h.drill(base))
	r.Get("/filter", h.toggleFilter(t, base))
	r.Post("/filters/clear", h.clearFilters(t, base))
	r.Post("/range-filter", h.rangeFilter(t, base))
	r.Get("/sort", h.sortGrid(t, base))
	r.Get("/page", h.setPage(t, base))
	r.Post("/columns", h.applyColumns(t, base))
}

// rangePreset applies ?last=15m|1h|6h|24h|7d.
func (h *Handler) rangePreset(back string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := parsePreset(r.URL.Query().Get("last"))
		if !ok {
			h.renderServiceError(w, r, domain.ErrValidation("unknown time range preset %q", r.URL.Query().Get("last")))
			return
		}
		now := time.Now()
		h.Store.SetTimeRange(domain.TimeRange{Start: now.Add(-d), End: now})
		http.Redirect(w, r, back, http.StatusSeeOther)
	}
}

// shiftRange steps the window back or forward by one full span.
func (h *Handler) shiftRange(back string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tr := h.Store.TimeRange()
		span := tr.Span()
		switch r.URL.Query().Get("dir") {
		case "back":
			span = -span
		case "fwd":
		default:
			h.renderServiceError(w, r, domain.ErrValidation("shift direction must be back or fwd"))
			return
		}
		h.Store.SetTimeRange(tr.Shift(span))
		http.Redirect(w, r, back, http.StatusSeeOther)
	}
}

// rangeCustom applies an explicit start/end pair from the range form.
func (h *Handler) rangeCustom(back string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !parseFormOrRenderBadRequest(w, r) {
			return
		}
		start, err := domain.ParseTime(formString(r.Form, "start"))
		if err != nil {
			h.renderServiceError(w, r, domain.ErrValidation("invalid start time: %v", err))
			return
		}
		end, err := domain.ParseTime(formString(r.Form, "end"))
		if err != nil {
			h.renderServiceError(w, r, domain.ErrValidation("invalid end time: %v", err))
			return
		}
		h.Store.SetTimeRange(domain.TimeRange{Start: start, End: end})
		http.Redirect(w, r, back, http.StatusSeeOther)
	}
}

func (h *Handler) searchSubmit(back string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !parseFormOrRenderBadRequest(w, r) {
			return
		}
		h.Store.SetSearch(formString(r.Form, "search"))
		http.Redirect(w, r, back, http.StatusSeeOther)
	}
}

// drill zooms the time range to one clicked chart bucket.
func (h *Handler) drill(back string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		start, err := domain.ParseTime(q.Get("start"))
		if err != nil {
			h.renderServiceError(w, r, domain.ErrValidation("invalid bucket start: %v", err))
			return
		}
		width, err := strconv.Atoi(q.Get("width"))
		if err != nil || width <= 0 {
			h.renderServiceError(w, r, domain.ErrValidation("invalid bucket width"))
			return
		}
		h.Store.SetTimeRange(domain.TimeRange{Start: start, End: start.Add(time.Duration(width) * time.Second)})
		http.Redirect(w, r, back, http.StatusSeeOther)
	}
}

// toggleFilter adds or removes one histogram value from the field filter.
func (h *Handler) toggleFilter(t domain.LogicalTable, back string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		field, value := q.Get("field"), q.Get("value")
		if field == "" {
			h.renderServiceError(w, r, domain.ErrValidation("filter field is required"))
			return
		}
		if slices.Contains(h.Store.Filters(t)[field], value) {
			h.Store.RemoveFieldFilterValue(t, field, value)
		} else {
			h.Store.AddFieldFilterValue(t, field, value)
		}
		http.Redirect(w, r, back, http.StatusSeeOther)
	}
}

// clearFilters resets one view back to its default filters.
func (h *Handler) clearFilters(t domain.LogicalTable, back string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for field := range h.Store.Filters(t) {
			h.Store.ClearFieldFilter(t, field)
		}
		for field, values := range domain.DefaultFieldFilters(t) {
			h.Store.SetFieldFilter(t, field, values)
		}
		for field := range h.Store.RangeFilters(t) {
			h.Store.ClearRangeFilter(t, field)
		}
		http.Redirect(w, r, back, http.StatusSeeOther)
	}
}

// rangeFilter applies min/max bounds to one numeric column. Both blank
// clears the filter.
func (h *Handler) rangeFilter(t domain.LogicalTable, back string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !parseFormOrRenderBadRequest(w, r) {
			return
		}
		field := formString(r.Form, "field")
		if field == "" {
			h.renderServiceError(w, r, domain.ErrValidation("range filter field is required"))
			return
		}
		minV, err := formOptionalFloat(r.Form, "min")
		if err != nil {
			h.renderServiceError(w, r, domain.ErrValidation("invalid minimum: %v", err))
			return
		}
		maxV, err := formOptionalFloat(r.Form, "max")
		if err != nil {
			h.renderServiceError(w, r, domain.ErrValidation("invalid maximum: %v", err))
			return
		}
		if minV == nil && maxV == nil {
			h.Store.ClearRangeFilter(t, field)
		} else {
			h.Store.SetRangeFilter(t, field, domain.Bounds{Min: minV, Max: maxV})
		}
		http.Redirect(w, r, back, http.StatusSeeOther)
	}
}

// sortGrid toggles sorting on the clicked column.
func (h *Handler) sortGrid(t domain.LogicalTable, back string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		field := r.URL.Query().Get("field")
		if field == "" {
			h.renderServiceError(w, r, domain.ErrValidation("sort field is required"))
			return
		}
		h.Store.ToggleSort(t, field)
		http.Redirect(w, r, back, http.StatusSeeOther)
	}
}

func (h *Handler) setPage(t domain.LogicalTable, back string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil {
			h.renderServiceError(w, r, domain.ErrValidation("invalid page"))
			return
		}
		h.Store.SetPage(t, page)
		http.Redirect(w, r, back, http.StatusSeeOther)
	}
}

// applyColumns reconciles the submitted visibility checkboxes against the
// stored column config.
func (h *Handler) applyColumns(t domain.LogicalTable, back string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !parseFormOrRenderBadRequest(w, r) {
			return
		}
		checked := make(map[string]bool, len(r.Form["col"]))
		for _, name := range r.Form["col"] {
			checked[name] = true
		}
		for _, c := range h.Store.Columns(t) {
			if c.Visible != checked[c.Name] {
				h.Store.ToggleColumnVisibility(t, c.Name)
			}
		}
		http.Redirect(w, r, back, http.StatusSeeOther)
	}
}

// ChartConfigSubmit updates the shared chart config and returns to the
// submitting view.
func (h *Handler) ChartConfigSubmit(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	cfg := domain.ChartConfig{
		Metric:      domain.ChartMetric(formString(r.Form, "metric")),
		Type:        domain.ChartType(formString(r.Form, "type")),
		Aggregation: domain.Aggregation(formString(r.Form, "aggregation")),
	}
	if !slices.Contains(chartMetrics, cfg.Metric) || !slices.Contains(chartTypes, cfg.Type) || !slices.Contains(chartAggregations, cfg.Aggregation) {
		h.renderServiceError(w, r, domain.ErrValidation("unknown chart option"))
		return
	}
	h.Store.SetChart(cfg)
	h.redirectBack(w, r, "/ui/query-log")
}

var (
	chartMetrics      = []domain.ChartMetric{domain.MetricCount, domain.MetricDuration, domain.MetricMemory, domain.MetricReadRows}
	chartTypes        = []domain.ChartType{domain.ChartBar, domain.ChartStackedBar, domain.ChartLine, domain.ChartStackedLine, domain.ChartScatter}
	chartAggregations = []domain.Aggregation{domain.AggAvg, domain.AggSum, domain.AggMin, domain.AggMax}
)

// ResetFilters clears every filter on every view from the topbar button.
func (h *Handler) ResetFilters(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	h.Store.ClearAllFilters()
	h.redirectBack(w, r, "/ui")
}

// RefreshNow invalidates every load so the next render refetches.
func (h *Handler) RefreshNow(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	h.Store.Refresh()
	h.redirectBack(w, r, "/ui")
}

// DismissOnboarding marks the dashboard as seen, both server side and in a
// year-long cookie.
func (h *Handler) DismissOnboarding(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	h.Store.SetVisited(true)
	http.SetCookie(w, &http.Cookie{
		Name:     visitedCookie,
		Value:    "1",
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	h.redirectBack(w, r, "/ui")
}

// histogramQuery builds the panel query for one field: the current fetch
// parameters minus the panel's own filter, so already-selected values keep
// their alternatives visible.
func histogramQuery(p state.FetchParams, field string) domain.TableQuery {
	filters := p.Filters.Clone()
	delete(filters, field)
	return domain.TableQuery{
		TimeRange:    p.TimeRange,
		Search:       p.Search,
		Filters:      filters,
		RangeFilters: p.RangeFilters,
	}
}

type histogramFunc func(ctx context.Context, q domain.TableQuery, field string, topN int) ([]domain.HistogramBucket, error)

// loadHistograms fans the filter panels out. A failing panel reports its
// own error and never takes the page down.
func loadHistograms(ctx context.Context, p state.FetchParams, fields []string, fetch histogramFunc) []histogramPanel {
	panels := make([]histogramPanel, len(fields))
	g, ctx := errgroup.WithContext(ctx)
	for i, field := range fields {
		panels[i].Field = field
		panels[i].Active = p.Filters[field]
		g.Go(func() error {
			buckets, err := fetch(ctx, histogramQuery(p, field), field, histogramTopN)
			if err != nil {
				panels[i].Err = err.Error()
				return nil
			}
			panels[i].Buckets = buckets
			return nil
		})
	}
	_ = g.Wait()
	return panels
}
