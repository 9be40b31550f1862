// Package memory is a process-local CatalogRepository for tests and for
// running without any database.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/dom/league-roulette/internal/domain"
	"github.com/dom/league-roulette/internal/repository"
)

type catalogRepository struct {
	mu        sync.RWMutex
	snapshots map[string]*domain.Catalog
}

func NewCatalogRepository() *catalogRepository {
	return &catalogRepository{snapshots: make(map[string]*domain.Catalog)}
}

func NewRepositories() *repository.Repositories {
	return &repository.Repositories{Catalog: NewCatalogRepository()}
}

func (r *catalogRepository) Save(_ context.Context, cat *domain.Catalog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots[cat.Version] = cat
	return nil
}

func (r *catalogRepository) Latest(_ context.Context) (*domain.Catalog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *domain.Catalog
	for _, c := range r.snapshots {
		if latest == nil || c.FetchedAt.After(latest.FetchedAt) {
			latest = c
		}
	}
	if latest == nil {
		return nil, domain.ErrCatalogNotFound
	}
	return latest, nil
}

func (r *catalogRepository) GetByVersion(_ context.Context, version string) (*domain.Catalog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.snapshots[version]
	if !ok {
		return nil, domain.ErrCatalogNotFound
	}
	return c, nil
}

func (r *catalogRepository) Versions(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*domain.Catalog, 0, len(r.snapshots))
	for _, c := range r.snapshots {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].FetchedAt.After(all[j].FetchedAt) })

	versions := make([]string, len(all))
	for i, c := range all {
		versions[i] = c.Version
	}
	return versions, nil
}
