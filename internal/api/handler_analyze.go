package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// analyzeService defines the SQL console operations used by the API handler.
type analyzeService interface {
	Explain(ctx context.Context, kind domain.ExplainType, query string) ([]string, error)
	Execute(ctx context.Context, req domain.QueryRequest) (*domain.QueryResult, error)
}

// explainRow mirrors the single-column shape ClickHouse gives EXPLAIN output.
type explainRow struct {
	Explain string `json:"explain"`
}

// === SQL Console ===

func (h *Handler) explain(w http.ResponseWriter, r *http.Request) {
	var req domain.QueryRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	lines, err := h.analyze.Explain(r.Context(), domain.ExplainType(chi.URLParam(r, "type")), req.Query)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	rows := make([]explainRow, len(lines))
	for i, line := range lines {
		rows[i] = explainRow{Explain: line}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *Handler) executeQuery(w http.ResponseWriter, r *http.Request) {
	var req domain.QueryRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	result, err := h.analyze.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
