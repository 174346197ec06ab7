package service

import (
	"context"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// SystemService serves the introspection panels: processes, merges,
// mutations, the three metric families, users and settings, plus the
// connection card.
type SystemService struct {
	repo domain.SystemRepository
	info domain.ConnectionInfo
}

func NewSystemService(repo domain.SystemRepository, info domain.ConnectionInfo) *SystemService {
	return &SystemService{repo: repo, info: info}
}

// Connection reports the monitored server as configured. It never touches
// the server; the health endpoint owns reachability.
func (s *SystemService) Connection() domain.ConnectionInfo {
	return s.info
}

// Processes returns the currently running queries.
func (s *SystemService) Processes(ctx context.Context) ([]domain.ProcessEntry, error) {
	return s.repo.Processes(ctx)
}

// Merges returns the merges and mutations in flight.
func (s *SystemService) Merges(ctx context.Context) ([]domain.MergeEntry, error) {
	return s.repo.Merges(ctx)
}

// Mutations returns recent ALTER mutations and their progress.
func (s *SystemService) Mutations(ctx context.Context) ([]domain.MutationEntry, error) {
	return s.repo.Mutations(ctx)
}

// Metrics returns system.metrics, optionally filtered by a search term.
func (s *SystemService) Metrics(ctx context.Context, search string) ([]domain.MetricEntry, error) {
	return s.repo.Metrics(ctx, search)
}

// AsyncMetrics returns system.asynchronous_metrics.
func (s *SystemService) AsyncMetrics(ctx context.Context, search string) ([]domain.MetricEntry, error) {
	return s.repo.AsyncMetrics(ctx, search)
}

// Events returns system.events.
func (s *SystemService) Events(ctx context.Context, search string) ([]domain.MetricEntry, error) {
	return s.repo.Events(ctx, search)
}

// Users returns the defined users.
func (s *SystemService) Users(ctx context.Context) ([]domain.UserEntry, error) {
	return s.repo.Users(ctx)
}

// Settings returns the server settings, optionally filtered.
func (s *SystemService) Settings(ctx context.Context, search string) ([]domain.SettingEntry, error) {
	return s.repo.Settings(ctx, search)
}
