package repository

import (
	"context"

	"github.com/dom/league-roulette/internal/domain"
)

//go:generate mockgen -destination=mock/catalog_repo.go -package=repositorymock -source=interfaces.go CatalogRepository

// CatalogRepository persists Data Dragon snapshots so the service can
// start from the last good catalog when the CDN is unreachable.
type CatalogRepository interface {
	// Save stores cat, replacing any snapshot with the same version.
	Save(ctx context.Context, cat *domain.Catalog) error
	// Latest returns the most recently fetched snapshot, or
	// domain.ErrCatalogNotFound.
	Latest(ctx context.Context) (*domain.Catalog, error)
	GetByVersion(ctx context.Context, version string) (*domain.Catalog, error)
	// Versions lists stored versions, newest first.
	Versions(ctx context.Context) ([]string, error)
}

type Repositories struct {
	Catalog CatalogRepository
}
