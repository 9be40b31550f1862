package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dom/league-roulette/internal/domain"
	"github.com/dom/league-roulette/internal/service"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
	rollService    *service.RollService
}

func NewCatalogHandler(catalogService *service.CatalogService, rollService *service.RollService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, rollService: rollService}
}

type ChampionsResponse struct {
	Champions []domain.Champion `json:"champions"`
	Version   string            `json:"version"`
}

type ItemsResponse struct {
	Items   []domain.Item       `json:"items"`
	Filters domain.FilterConfig `json:"filters"`
	Version string              `json:"version"`
}

type KeystonesResponse struct {
	Keystones []domain.Keystone `json:"keystones"`
	Version   string            `json:"version"`
}

type RolesResponse struct {
	Roles []domain.RolePreset `json:"roles"`
}

type SuffixesResponse struct {
	Suffixes []string `json:"suffixes"`
}

func (h *CatalogHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalogService.Status())
}

func (h *CatalogHandler) Champions(w http.ResponseWriter, r *http.Request) {
	cat := h.catalogService.Catalog()
	if cat == nil {
		http.Error(w, "Champion data is not loaded yet", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusOK, ChampionsResponse{
		Champions: cat.Champions,
		Version:   cat.Version,
	})
}

func (h *CatalogHandler) Champion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	cat := h.catalogService.Catalog()
	if cat == nil {
		http.Error(w, "Champion data is not loaded yet", http.StatusServiceUnavailable)
		return
	}

	champion, ok := cat.Champion(id)
	if !ok {
		log.Printf("ERROR [catalog.Champion] championID=%s: not in %s", id, cat.Version)
		http.Error(w, "Champion not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, champion)
}

// Item looks up any catalog item, eligible or not.
func (h *CatalogHandler) Item(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	cat := h.catalogService.Catalog()
	if cat == nil {
		http.Error(w, "Champion data is not loaded yet", http.StatusServiceUnavailable)
		return
	}

	item, ok := cat.Item(id)
	if !ok {
		log.Printf("ERROR [catalog.Item] itemID=%s: not in %s", id, cat.Version)
		http.Error(w, "Item not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Items returns the eligible item pool. Query parameters named after the
// filter toggles (onlySR, excludeBoots, ...) override the defaults.
func (h *CatalogHandler) Items(w http.ResponseWriter, r *http.Request) {
	patch, err := filterPatchFromQuery(r)
	if err != nil {
		log.Printf("ERROR [catalog.Items]: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	pool, err := h.rollService.EligibleItems(patch)
	if err != nil {
		writeServiceError(w, "catalog.Items", err)
		return
	}

	writeJSON(w, http.StatusOK, ItemsResponse{
		Items:   pool.Items,
		Filters: pool.Filters,
		Version: pool.Version,
	})
}

func (h *CatalogHandler) Keystones(w http.ResponseWriter, r *http.Request) {
	cat := h.catalogService.Catalog()
	if cat == nil {
		http.Error(w, "Champion data is not loaded yet", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusOK, KeystonesResponse{
		Keystones: cat.Keystones,
		Version:   cat.Version,
	})
}

func (h *CatalogHandler) Roles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RolesResponse{Roles: domain.RolePresets()})
}

func (h *CatalogHandler) Suffixes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SuffixesResponse{Suffixes: h.rollService.Rules().Suffixes})
}

// Sync reloads the catalog from Data Dragon and returns the new status.
func (h *CatalogHandler) Sync(w http.ResponseWriter, r *http.Request) {
	err := h.catalogService.Load(r.Context())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, h.catalogService.Status())
	case errors.Is(err, service.ErrLoadSuperseded):
		log.Printf("ERROR [catalog.Sync]: %v", err)
		http.Error(w, "A newer sync is in progress", http.StatusConflict)
	default:
		log.Printf("ERROR [catalog.Sync]: %v", err)
		http.Error(w, "Failed to sync catalog", http.StatusBadGateway)
	}
}

var filterParams = []struct {
	name  string
	field func(*domain.FilterPatch) **bool
}{
	{"onlySR", func(p *domain.FilterPatch) **bool { return &p.OnlySR }},
	{"excludeTrinket", func(p *domain.FilterPatch) **bool { return &p.ExcludeTrinket }},
	{"excludeConsumable", func(p *domain.FilterPatch) **bool { return &p.ExcludeConsumable }},
	{"excludeBoots", func(p *domain.FilterPatch) **bool { return &p.ExcludeBoots }},
	{"onlyCompletedLegendary", func(p *domain.FilterPatch) **bool { return &p.OnlyCompletedLegendary }},
	{"excludeJungleStarter", func(p *domain.FilterPatch) **bool { return &p.ExcludeJungleStarter }},
	{"suffixEnabled", func(p *domain.FilterPatch) **bool { return &p.SuffixEnabled }},
}

func filterPatchFromQuery(r *http.Request) (domain.FilterPatch, error) {
	var patch domain.FilterPatch
	query := r.URL.Query()
	for _, p := range filterParams {
		raw := query.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return domain.FilterPatch{}, errors.New("invalid value for " + p.name + ": " + raw)
		}
		*p.field(&patch) = &v
	}
	return patch, nil
}

// writeServiceError maps catalog and round errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	log.Printf("ERROR [%s]: %v", op, err)
	switch {
	case errors.Is(err, domain.ErrCatalogNotReady):
		http.Error(w, "Champion data is not loaded yet", http.StatusServiceUnavailable)
	case errors.Is(err, domain.ErrNoChampions):
		http.Error(w, "No champions available", http.StatusServiceUnavailable)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
