package api

import (
	"context"
	"net/http"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// systemService defines the introspection operations used by the API handler.
type systemService interface {
	Connection() domain.ConnectionInfo
	Processes(ctx context.Context) ([]domain.ProcessEntry, error)
	Merges(ctx context.Context) ([]domain.MergeEntry, error)
	Mutations(ctx context.Context) ([]domain.MutationEntry, error)
	Metrics(ctx context.Context, search string) ([]domain.MetricEntry, error)
	AsyncMetrics(ctx context.Context, search string) ([]domain.MetricEntry, error)
	Events(ctx context.Context, search string) ([]domain.MetricEntry, error)
	Users(ctx context.Context) ([]domain.UserEntry, error)
	Settings(ctx context.Context, search string) ([]domain.SettingEntry, error)
}

// === System Introspection ===

func (h *Handler) connectionInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.system.Connection())
}

func (h *Handler) processes(w http.ResponseWriter, r *http.Request) {
	entries, err := h.system.Processes(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) merges(w http.ResponseWriter, r *http.Request) {
	entries, err := h.system.Merges(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) mutations(w http.ResponseWriter, r *http.Request) {
	entries, err := h.system.Mutations(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) metrics(w http.ResponseWriter, r *http.Request) {
	entries, err := h.system.Metrics(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) asyncMetrics(w http.ResponseWriter, r *http.Request) {
	entries, err := h.system.AsyncMetrics(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) events(w http.ResponseWriter, r *http.Request) {
	entries, err := h.system.Events(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) users(w http.ResponseWriter, r *http.Request) {
	entries, err := h.system.Users(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) settings(w http.ResponseWriter, r *http.Request) {
	entries, err := h.system.Settings(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
