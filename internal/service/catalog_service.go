package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dom/league-roulette/internal/domain"
	"github.com/dom/league-roulette/internal/repository"
)

//go:generate mockgen -destination=mock/data_source.go -package=servicemock -source=catalog_service.go DataSource

// DataSource fetches a fresh catalog from upstream.
type DataSource interface {
	Fetch(ctx context.Context) (*domain.Catalog, error)
}

// ErrLoadSuperseded is returned by Load when a newer Load started before
// this one finished. The older result is discarded.
var ErrLoadSuperseded = errors.New("catalog load superseded")

type CatalogState string

const (
	CatalogLoading CatalogState = "loading"
	CatalogReady   CatalogState = "ready"
	CatalogFailed  CatalogState = "failed"
)

// CatalogStatus is the user-visible lifecycle of the catalog. Stale is set
// when the served catalog is a stored snapshot kept after a failed fetch.
type CatalogStatus struct {
	State     CatalogState `json:"state"`
	Version   string       `json:"version,omitempty"`
	FetchedAt *time.Time   `json:"fetchedAt,omitempty"`
	Stale     bool         `json:"stale"`
	Error     string       `json:"error,omitempty"`
	Champions int          `json:"champions"`
	Items     int          `json:"items"`
	Keystones int          `json:"keystones"`
	SaveError string       `json:"saveError,omitempty"`
}

type CatalogService struct {
	source  DataSource
	repo    repository.CatalogRepository
	timeout time.Duration

	mu      sync.RWMutex
	catalog *domain.Catalog
	status  CatalogStatus
	gen     uint64
	saveErr error
}

// NewCatalogService starts in the loading state. repo may be nil, in which
// case snapshots are neither saved nor used as a fallback.
func NewCatalogService(source DataSource, repo repository.CatalogRepository, timeout time.Duration) *CatalogService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &CatalogService{
		source:  source,
		repo:    repo,
		timeout: timeout,
		status:  CatalogStatus{State: CatalogLoading},
	}
}

// Catalog returns the served catalog, or nil before the first successful
// load.
func (s *CatalogService) Catalog() *domain.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

func (s *CatalogService) Status() CatalogStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Start runs Load in the background. Errors are reflected in Status.
func (s *CatalogService) Start(ctx context.Context) {
	go func() {
		if err := s.Load(ctx); err != nil {
			log.Printf("ERROR [catalog.Start]: %v", err)
		}
	}()
}

// Load fetches a fresh catalog and publishes it. A result is dropped when
// ctx is cancelled before it arrives or when a newer Load has started.
//
// On fetch failure the current in-memory catalog is kept, or the latest
// stored snapshot is served, and either is marked stale. With neither the
// state becomes failed. The fetch error is returned in every failure case.
func (s *CatalogService) Load(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	if s.catalog == nil {
		s.status = CatalogStatus{State: CatalogLoading}
	}
	s.mu.Unlock()

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	cat, err := s.source.Fetch(fetchCtx)
	cancel()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if err != nil {
		return s.fallback(ctx, gen, err)
	}

	if !s.publish(gen, cat, false, "") {
		return ErrLoadSuperseded
	}
	log.Printf("Loaded catalog %s: %d champions, %d items, %d keystones",
		cat.Version, len(cat.Champions), len(cat.Items), len(cat.Keystones))

	if s.repo != nil {
		if err := s.repo.Save(ctx, cat); err != nil {
			log.Printf("ERROR [catalog.Save]: %v", err)
			s.recordSaveError(gen, fmt.Errorf("save catalog %s: %w", cat.Version, err))
		}
	}
	return nil
}

// Sync is Load for callers that need the snapshot stored: a failed save is
// returned instead of only being logged.
func (s *CatalogService) Sync(ctx context.Context) error {
	if err := s.Load(ctx); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveErr
}

func (s *CatalogService) recordSaveError(gen uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.saveErr = err
	s.status.SaveError = err.Error()
}

func (s *CatalogService) fallback(ctx context.Context, gen uint64, fetchErr error) error {
	log.Printf("ERROR [catalog.Load]: %v", fetchErr)
	message := fmt.Sprintf("failed to load champion and item data: %v", fetchErr)

	if current := s.Catalog(); current != nil {
		if !s.publish(gen, current, true, message) {
			return ErrLoadSuperseded
		}
		return fetchErr
	}

	if s.repo != nil {
		stored, err := s.repo.Latest(ctx)
		switch {
		case err == nil:
			if !s.publish(gen, stored, true, message) {
				return ErrLoadSuperseded
			}
			log.Printf("Serving stored catalog %s", stored.Version)
			return fetchErr
		case !errors.Is(err, domain.ErrCatalogNotFound):
			log.Printf("ERROR [catalog.Latest]: %v", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return ErrLoadSuperseded
	}
	s.status = CatalogStatus{State: CatalogFailed, Error: message}
	return fetchErr
}

// publish installs cat when gen is still the newest load.
func (s *CatalogService) publish(gen uint64, cat *domain.Catalog, stale bool, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return false
	}

	fetchedAt := cat.FetchedAt
	s.catalog = cat
	s.saveErr = nil
	s.status = CatalogStatus{
		State:     CatalogReady,
		Version:   cat.Version,
		FetchedAt: &fetchedAt,
		Stale:     stale,
		Error:     message,
		Champions: len(cat.Champions),
		Items:     len(cat.Items),
		Keystones: len(cat.Keystones),
	}
	return true
}
