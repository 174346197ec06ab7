package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// queryLogService defines the query-log operations used by the API handler.
type queryLogService interface {
	List(ctx context.Context, q domain.TableQuery) ([]domain.Row, error)
	Count(ctx context.Context, q domain.TableQuery) (uint64, error)
	TimeSeries(ctx context.Context, q domain.TableQuery, bucket time.Duration) ([]domain.TimeSeriesPoint, error)
	Stacked(ctx context.Context, q domain.TableQuery, bucket time.Duration) ([]domain.QueryStackedPoint, error)
	Grouped(ctx context.Context, q domain.TableQuery) ([]domain.GroupedQuery, error)
	Histogram(ctx context.Context, q domain.TableQuery, field string, topN int) ([]domain.HistogramBucket, error)
	Distinct(ctx context.Context, tr domain.TimeRange, field string, limit int) ([]string, error)
	Columns(ctx context.Context) ([]domain.ColumnMeta, error)
}

// === Query Log ===

func (h *Handler) listQueryLog(w http.ResponseWriter, r *http.Request) {
	q, err := parseTableQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	rows, err := h.queryLog.List(r.Context(), q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *Handler) countQueryLog(w http.ResponseWriter, r *http.Request) {
	q, err := parseTableQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	total, err := h.queryLog.Count(r.Context(), q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Total: total})
}

func (h *Handler) queryLogTimeSeries(w http.ResponseWriter, r *http.Request) {
	q, err := parseTableQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	bucket, err := parseBucket(r.URL.Query())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	points, err := h.queryLog.TimeSeries(r.Context(), q, bucket)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (h *Handler) queryLogStacked(w http.ResponseWriter, r *http.Request) {
	q, err := parseTableQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	bucket, err := parseBucket(r.URL.Query())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	points, err := h.queryLog.Stacked(r.Context(), q, bucket)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (h *Handler) groupedQueryLog(w http.ResponseWriter, r *http.Request) {
	q, err := parseTableQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	rows, err := h.queryLog.Grouped(r.Context(), q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// queryLogHistogram serves the top values of one column, counted under the
// current filters. The limit parameter caps the number of buckets.
func (h *Handler) queryLogHistogram(w http.ResponseWriter, r *http.Request) {
	q, err := parseTableQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	buckets, err := h.queryLog.Histogram(r.Context(), q, chi.URLParam(r, "field"), q.Limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, buckets)
}

func (h *Handler) queryLogDistinct(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()
	tr, err := parseTimeRange(vals)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	limit, err := intParam(vals, "limit")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	values, err := h.queryLog.Distinct(r.Context(), tr, chi.URLParam(r, "field"), limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, values)
}

func (h *Handler) queryLogColumns(w http.ResponseWriter, r *http.Request) {
	cols, err := h.queryLog.Columns(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cols)
}
