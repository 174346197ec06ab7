package api

import (
	"context"
	"net/http"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// tablesService defines the parts and partitions grid operations used by
// the API handler.
type tablesService interface {
	Parts(ctx context.Context, q domain.TableQuery) ([]domain.PartInfo, error)
	PartCount(ctx context.Context, q domain.TableQuery) (uint64, error)
	Partitions(ctx context.Context, q domain.TableQuery) ([]domain.PartitionInfo, error)
	PartitionCount(ctx context.Context, q domain.TableQuery) (uint64, error)
}

// === Parts and Partitions ===

func (h *Handler) listParts(w http.ResponseWriter, r *http.Request) {
	q, err := parseGridQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	parts, err := h.tables.Parts(r.Context(), q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, parts)
}

func (h *Handler) countParts(w http.ResponseWriter, r *http.Request) {
	q, err := parseGridQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	total, err := h.tables.PartCount(r.Context(), q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Total: total})
}

func (h *Handler) listPartitions(w http.ResponseWriter, r *http.Request) {
	q, err := parseGridQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	partitions, err := h.tables.Partitions(r.Context(), q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, partitions)
}

func (h *Handler) countPartitions(w http.ResponseWriter, r *http.Request) {
	q, err := parseGridQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	total, err := h.tables.PartitionCount(r.Context(), q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Total: total})
}
