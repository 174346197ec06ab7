// Package ui serves the server-rendered dashboard. Pages are gomponents
// trees over the shared store: every data page applies its request
// parameters to the store first, ensures the matching load operation, and
// renders from the store snapshot, so the HTML views and the JSON API can
// never disagree about what is being shown. Panels carry stable element IDs
// and re-render through datastar-polled fragment endpoints.
package ui

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
	"github.com/benjaminwootton/QueryDog-sub000/internal/service"
	"github.com/benjaminwootton/QueryDog-sub000/internal/state"

	gomponents "maragu.dev/gomponents"
)

// visitedCookie marks that the onboarding modal was dismissed.
const visitedCookie = "querydog_seen"

type Handler struct {
	Logger      *slog.Logger
	Store       *state.Store
	Coordinator *state.Coordinator
	QueryLog    *service.QueryLogService
	PartLog     *service.PartLogService
	Tables      *service.TablesService
	System      *service.SystemService
	Browser     *service.BrowserService
	Analyze     *service.AnalyzeService

	// RefreshSeconds is the fragment polling cadence pushed to the browser.
	// Zero or negative disables polling.
	RefreshSeconds int
}

func NewHandler(
	logger *slog.Logger,
	store *state.Store,
	coord *state.Coordinator,
	queryLogSvc *service.QueryLogService,
	partLogSvc *service.PartLogService,
	tablesSvc *service.TablesService,
	systemSvc *service.SystemService,
	browserSvc *service.BrowserService,
	analyzeSvc *service.AnalyzeService,
	refreshInterval time.Duration,
) *Handler {
	return &Handler{
		Logger:         logger,
		Store:          store,
		Coordinator:    coord,
		QueryLog:       queryLogSvc,
		PartLog:        partLogSvc,
		Tables:         tablesSvc,
		System:         systemSvc,
		Browser:        browserSvc,
		Analyze:        analyzeSvc,
		RefreshSeconds: int(refreshInterval / time.Second),
	}
}

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}

// ensure brings one grid's load operation up to date before rendering it.
// A fetch failure is already recorded on the table and renders as the
// panel's error banner, so it never aborts the page.
func (h *Handler) ensure(r *http.Request, t domain.LogicalTable) {
	_ = h.Coordinator.Ensure(r.Context(), string(t))
}

// chrome carries the page-shell state every handler assembles the same way.
func (h *Handler) chrome(r *http.Request) pageChrome {
	return pageChrome{
		Path:       r.URL.Path,
		Host:       h.System.Connection().Host,
		Onboarding: !h.visited(r),
	}
}

// visited reports whether onboarding was dismissed, preferring the browser
// cookie over the store flag so a fresh browser sees the modal again.
func (h *Handler) visited(r *http.Request) bool {
	if c, err := r.Cookie(visitedCookie); err == nil && c.Value != "" {
		return true
	}
	return h.Store.Visited()
}

func (h *Handler) renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	title := "Unexpected Error"
	message := "An unexpected error occurred while loading this page."

	var validation *domain.ValidationError
	var notFound *domain.NotFoundError
	var rejected *domain.RejectedError
	var upstream *domain.UpstreamError
	if errors.As(err, &validation) {
		status = http.StatusBadRequest
		title = "Invalid Request"
		message = validation.Error()
	} else if errors.As(err, &notFound) {
		status = http.StatusNotFound
		title = "Not Found"
		message = notFound.Error()
	} else if errors.As(err, &rejected) {
		status = http.StatusUnprocessableEntity
		title = "Rejected"
		message = rejected.Error()
	} else if errors.As(err, &upstream) {
		status = http.StatusBadGateway
		title = "Server Unreachable"
		message = upstream.Error()
	}

	if status >= http.StatusInternalServerError {
		h.Logger.Error("ui request failed", "path", r.URL.Path, "error", err)
	}
	renderHTML(w, status, errorPage(title, message))
}
