package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// partLogService defines the part-log operations used by the API handler.
type partLogService interface {
	List(ctx context.Context, q domain.TableQuery) ([]domain.Row, error)
	Count(ctx context.Context, q domain.TableQuery) (uint64, error)
	TimeSeries(ctx context.Context, q domain.TableQuery, bucket time.Duration) ([]domain.TimeSeriesPoint, error)
	Stacked(ctx context.Context, q domain.TableQuery, bucket time.Duration) ([]domain.PartStackedPoint, error)
	Histogram(ctx context.Context, q domain.TableQuery, field string, topN int) ([]domain.HistogramBucket, error)
	Distinct(ctx context.Context, tr domain.TimeRange, field string, limit int) ([]string, error)
	Columns(ctx context.Context) ([]domain.ColumnMeta, error)
}

// === Part Log ===

func (h *Handler) listPartLog(w http.ResponseWriter, r *http.Request) {
	q, err := parseTableQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	rows, err := h.partLog.List(r.Context(), q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *Handler) countPartLog(w http.ResponseWriter, r *http.Request) {
	q, err := parseTableQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	total, err := h.partLog.Count(r.Context(), q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Total: total})
}

func (h *Handler) partLogTimeSeries(w http.ResponseWriter, r *http.Request) {
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
	points, err := h.partLog.TimeSeries(r.Context(), q, bucket)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (h *Handler) partLogStacked(w http.ResponseWriter, r *http.Request) {
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
	points, err := h.partLog.Stacked(r.Context(), q, bucket)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (h *Handler) partLogHistogram(w http.ResponseWriter, r *http.Request) {
	q, err := parseTableQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	buckets, err := h.partLog.Histogram(r.Context(), q, chi.URLParam(r, "field"), q.Limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, buckets)
}

func (h *Handler) partLogDistinct(w http.ResponseWriter, r *http.Request) {
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
	values, err := h.partLog.Distinct(r.Context(), tr, chi.URLParam(r, "field"), limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, values)
}

func (h *Handler) partLogColumns(w http.ResponseWriter, r *http.Request) {
	cols, err := h.partLog.Columns(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cols)
}
