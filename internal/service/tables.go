package service

import (
	"context"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// TablesService serves the parts and partitions grids over system.parts.
type TablesService struct {
	repo domain.PartsRepository
}

func NewTablesService(repo domain.PartsRepository) *TablesService {
	return &TablesService{repo: repo}
}

// Parts returns one page of part rows.
func (s *TablesService) Parts(ctx context.Context, q domain.TableQuery) ([]domain.PartInfo, error) {
	return s.repo.List(ctx, clampQuery(q))
}

// PartCount returns the part total for the current filters.
func (s *TablesService) PartCount(ctx context.Context, q domain.TableQuery) (uint64, error) {
	return s.repo.Count(ctx, q)
}

// Partitions returns one page of the per-partition rollup.
func (s *TablesService) Partitions(ctx context.Context, q domain.TableQuery) ([]domain.PartitionInfo, error) {
	return s.repo.Partitions(ctx, clampQuery(q))
}

// PartitionCount returns the partition total for the current filters.
func (s *TablesService) PartitionCount(ctx context.Context, q domain.TableQuery) (uint64, error) {
	return s.repo.PartitionCount(ctx, q)
}
