// Package app wires the repositories, services, shared store and fetch
// coordinator into a running application.
package app

import (
	"context"
	"log/slog"

	"github.com/benjaminwootton/QueryDog-sub000/internal/clickhouse"
	"github.com/benjaminwootton/QueryDog-sub000/internal/config"
	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
	"github.com/benjaminwootton/QueryDog-sub000/internal/repository"
	"github.com/benjaminwootton/QueryDog-sub000/internal/service"
	"github.com/benjaminwootton/QueryDog-sub000/internal/state"
)

// Deps holds the external dependencies that main() must provide: the
// ClickHouse connection it opened, config, and the logger.
type Deps struct {
	Cfg    *config.Config
	CH     clickhouse.Conn
	Logger *slog.Logger
}

// Services groups the service pointers the API handlers and UI need.
type Services struct {
	QueryLog *service.QueryLogService
	PartLog  *service.PartLogService
	Tables   *service.TablesService
	System   *service.SystemService
	Browser  *service.BrowserService
	Analyze  *service.AnalyzeService
}

// App is the fully wired application.
type App struct {
	Cfg         *config.Config
	Logger      *slog.Logger
	Store       *state.Store
	Coordinator *state.Coordinator
	Services    Services
}

// New wires repositories, services, the shared store and the coordinator's
// load operations from the provided deps. Background loops are not started
// here; call Start.
func New(deps Deps) *App {
	cfg := deps.Cfg

	// === Repositories ===
	queryLogRepo := repository.NewQueryLogRepo(deps.CH)
	partLogRepo := repository.NewPartLogRepo(deps.CH)
	partsRepo := repository.NewPartsRepo(deps.CH)
	systemRepo := repository.NewSystemRepo(deps.CH)
	browserRepo := repository.NewBrowserRepo(deps.CH)
	analyzeRepo := repository.NewAnalyzeRepo(deps.CH)

	// === Services ===
	info := domain.ConnectionInfo{
		Host:   cfg.ClickHouse.Host,
		Port:   cfg.ClickHouse.Port,
		Secure: cfg.ClickHouse.Secure,
		User:   cfg.ClickHouse.User,
	}
	services := Services{
		QueryLog: service.NewQueryLogService(queryLogRepo),
		PartLog:  service.NewPartLogService(partLogRepo),
		Tables:   service.NewTablesService(partsRepo),
		System:   service.NewSystemService(systemRepo, info),
		Browser:  service.NewBrowserService(browserRepo),
		Analyze:  service.NewAnalyzeService(analyzeRepo),
	}

	// === Store and coordinator ===
	store := state.New(cfg.DefaultPageSize)
	coord := state.NewCoordinator(store, deps.Logger.With("component", "coordinator"))
	RegisterLoadOps(coord, store, services)

	return &App{
		Cfg:         cfg,
		Logger:      deps.Logger,
		Store:       store,
		Coordinator: coord,
		Services:    services,
	}
}

// Start begins the coordinator's reactive loop and, when configured, the
// auto-refresh cadence. The loops stop when ctx is cancelled or Stop runs.
func (a *App) Start(ctx context.Context) {
	a.Coordinator.Start(ctx)
	if a.Cfg.RefreshInterval > 0 {
		a.Coordinator.StartAutoRefresh(ctx, a.Cfg.RefreshInterval)
	}
}

// Stop halts the background loops and waits for them.
func (a *App) Stop() {
	a.Coordinator.Stop()
}
