package api

import (
	"errors"
	"net/http"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// Error is the JSON envelope every endpoint returns on failure.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// httpStatusFromDomainError maps domain errors to HTTP status codes.
func httpStatusFromDomainError(err error) int {
	var validation *domain.ValidationError
	var notFound *domain.NotFoundError
	var rejected *domain.RejectedError
	var upstream *domain.UpstreamError

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &rejected):
		return http.StatusUnprocessableEntity
	case errors.As(err, &upstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError serializes err as the JSON error envelope. Server-side failures
// are logged; client mistakes are not.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := httpStatusFromDomainError(err)
	if status >= http.StatusInternalServerError && h.logger != nil {
		h.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"error", err)
	}
	writeJSON(w, status, Error{Code: status, Message: err.Error()})
}
