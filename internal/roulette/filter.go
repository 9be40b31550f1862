package roulette

import "github.com/dom/league-roulette/internal/domain"

// FilterItems applies cfg using DefaultRules.
func FilterItems(items []domain.Item, cfg domain.FilterConfig) []domain.Item {
	return DefaultRules().FilterItems(items, cfg)
}

// FilterItems keeps the items no enabled rule excludes, in input order.
// Items not sold in the store or with a non-positive total cost are always
// dropped.
func (r Rules) FilterItems(items []domain.Item, cfg domain.FilterConfig) []domain.Item {
	out := make([]domain.Item, 0, len(items))
	for i := range items {
		if r.Eligible(&items[i], cfg) {
			out = append(out, items[i])
		}
	}
	return out
}

// Eligible reports whether a single item passes the filter.
func (r Rules) Eligible(it *domain.Item, cfg domain.FilterConfig) bool {
	if cfg.OnlySR {
		if available, listed := it.AvailableOn(r.PrimaryMap); listed && !available {
			return false
		}
	}
	if cfg.ExcludeTrinket && it.HasTag(domain.ItemTagTrinket) {
		return false
	}
	if cfg.ExcludeConsumable && it.HasTag(domain.ItemTagConsumable) {
		return false
	}
	if cfg.ExcludeBoots && it.HasTag(domain.ItemTagBoots) {
		return false
	}
	if cfg.ExcludeJungleStarter && r.IsJungleStarter(it) {
		return false
	}
	if cfg.OnlyCompletedLegendary && !r.IsCompletedLegendary(it) {
		return false
	}
	if it.InStore != nil && !*it.InStore {
		return false
	}
	return it.Gold.Total > 0
}
