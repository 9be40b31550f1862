package service

import (
	"github.com/dom/league-roulette/internal/domain"
	"github.com/dom/league-roulette/internal/roulette"
)

// RollResult is one instant draw, with no spin phase.
type RollResult struct {
	Version string                                  `json:"version"`
	Filters domain.FilterConfig                     `json:"filters"`
	Slots   [roulette.SlotCount]roulette.Assignment `json:"slots"`
}

// RollService draws assignments and answers catalog queries against the
// currently served catalog.
type RollService struct {
	catalog roulette.CatalogSource
	rules   roulette.Rules
	rng     roulette.RNG
}

func NewRollService(catalog roulette.CatalogSource, rules roulette.Rules, rng roulette.RNG) *RollService {
	if rng == nil {
		rng = roulette.StdRNG{}
	}
	return &RollService{catalog: catalog, rules: rules, rng: rng}
}

func (s *RollService) Rules() roulette.Rules {
	return s.rules
}

// Roll applies patch over the default filters and commits five slots.
func (s *RollService) Roll(patch domain.FilterPatch) (*RollResult, error) {
	cat, err := s.ready()
	if err != nil {
		return nil, err
	}

	cfg := domain.DefaultFilterConfig().Apply(patch)
	pools := roulette.NewPools(cat, cfg, s.rules)

	return &RollResult{
		Version: cat.Version,
		Filters: cfg,
		Slots:   pools.Draw(s.rng),
	}, nil
}

// ItemPool is the filtered item list together with the snapshot it came from.
type ItemPool struct {
	Version string
	Filters domain.FilterConfig
	Items   []domain.Item
}

// EligibleItems returns the item pool for the given filter patch.
func (s *RollService) EligibleItems(patch domain.FilterPatch) (ItemPool, error) {
	cat := s.catalog.Catalog()
	if cat == nil {
		return ItemPool{}, domain.ErrCatalogNotReady
	}
	filters := domain.DefaultFilterConfig().Apply(patch)
	return ItemPool{
		Version: cat.Version,
		Filters: filters,
		Items:   s.rules.FilterItems(cat.Items, filters),
	}, nil
}

func (s *RollService) ready() (*domain.Catalog, error) {
	cat := s.catalog.Catalog()
	if cat == nil {
		return nil, domain.ErrCatalogNotReady
	}
	if !cat.Ready() {
		return nil, domain.ErrNoChampions
	}
	return cat, nil
}
