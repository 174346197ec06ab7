package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// browserService defines the schema browser operations used by the API
// handler.
type browserService interface {
	Databases(ctx context.Context) ([]domain.DatabaseInfo, error)
	Tables(ctx context.Context, database string) ([]domain.TableInfo, error)
	Columns(ctx context.Context, database, table string) ([]domain.ColumnMeta, error)
	Partitions(ctx context.Context, database, table string) ([]domain.PartitionInfo, error)
	Parts(ctx context.Context, database, table, partition string) ([]domain.PartInfo, error)
	Projections(ctx context.Context, database, table string) ([]domain.ProjectionInfo, error)
	SkipIndexes(ctx context.Context, database, table string) ([]domain.SkipIndexInfo, error)
}

// === Schema Browser ===

func (h *Handler) browserDatabases(w http.ResponseWriter, r *http.Request) {
	dbs, err := h.browser.Databases(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dbs)
}

func (h *Handler) browserTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.browser.Tables(r.Context(), chi.URLParam(r, "db"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tables)
}

func (h *Handler) browserColumns(w http.ResponseWriter, r *http.Request) {
	cols, err := h.browser.Columns(r.Context(), chi.URLParam(r, "db"), chi.URLParam(r, "table"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cols)
}

func (h *Handler) browserPartitions(w http.ResponseWriter, r *http.Request) {
	partitions, err := h.browser.Partitions(r.Context(), chi.URLParam(r, "db"), chi.URLParam(r, "table"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, partitions)
}

func (h *Handler) browserParts(w http.ResponseWriter, r *http.Request) {
	parts, err := h.browser.Parts(r.Context(),
		chi.URLParam(r, "db"), chi.URLParam(r, "table"), chi.URLParam(r, "partition"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, parts)
}

func (h *Handler) browserProjections(w http.ResponseWriter, r *http.Request) {
	projections, err := h.browser.Projections(r.Context(), chi.URLParam(r, "db"), chi.URLParam(r, "table"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projections)
}

func (h *Handler) browserSkipIndexes(w http.ResponseWriter, r *http.Request) {
	indexes, err := h.browser.SkipIndexes(r.Context(), chi.URLParam(r, "db"), chi.URLParam(r, "table"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, indexes)
}
