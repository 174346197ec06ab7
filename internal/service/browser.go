package service

import (
	"context"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

// BrowserService serves the schema browser drill-down. Each level validates
// the path selection it depends on; the cascade itself lives in the store.
type BrowserService struct {
	repo domain.BrowserRepository
}

func NewBrowserService(repo domain.BrowserRepository) *BrowserService {
	return &BrowserService{repo: repo}
}

// Databases lists the databases on the server.
func (s *BrowserService) Databases(ctx context.Context) ([]domain.DatabaseInfo, error) {
	return s.repo.Databases(ctx)
}

// Tables lists the tables of one database.
func (s *BrowserService) Tables(ctx context.Context, database string) ([]domain.TableInfo, error) {
	if database == "" {
		return nil, domain.ErrValidation("database is required")
	}
	return s.repo.Tables(ctx, database)
}

// Columns lists one table's columns.
func (s *BrowserService) Columns(ctx context.Context, database, table string) ([]domain.ColumnMeta, error) {
	if err := requireTable(database, table); err != nil {
		return nil, err
	}
	return s.repo.Columns(ctx, database, table)
}

// Partitions lists one table's partitions.
func (s *BrowserService) Partitions(ctx context.Context, database, table string) ([]domain.PartitionInfo, error) {
	if err := requireTable(database, table); err != nil {
		return nil, err
	}
	return s.repo.Partitions(ctx, database, table)
}

// Parts lists the active parts of one partition.
func (s *BrowserService) Parts(ctx context.Context, database, table, partition string) ([]domain.PartInfo, error) {
	if err := requireTable(database, table); err != nil {
		return nil, err
	}
	if partition == "" {
		return nil, domain.ErrValidation("partition is required")
	}
	return s.repo.Parts(ctx, database, table, partition)
}

// Projections lists one table's projection parts.
func (s *BrowserService) Projections(ctx context.Context, database, table string) ([]domain.ProjectionInfo, error) {
	if err := requireTable(database, table); err != nil {
		return nil, err
	}
	return s.repo.Projections(ctx, database, table)
}

// SkipIndexes lists one table's data-skipping indices.
func (s *BrowserService) SkipIndexes(ctx context.Context, database, table string) ([]domain.SkipIndexInfo, error) {
	if err := requireTable(database, table); err != nil {
		return nil, err
	}
	return s.repo.SkipIndexes(ctx, database, table)
}

func requireTable(database, table string) error {
	if database == "" {
		return domain.ErrValidation("database is required")
	}
	if table == "" {
		return domain.ErrValidation("table is required")
	}
	return nil
}
