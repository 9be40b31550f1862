package roulette

import "github.com/dom/league-roulette/internal/domain"

// SlotCount is the number of participants per round.
const SlotCount = 5

// Assignment is one slot's role, character, item and flourish. Item and
// Suffix are nil when the respective pool ran out or flourishes are off.
type Assignment struct {
	Role     *domain.RolePreset `json:"role"`
	Champion *domain.Champion   `json:"champion"`
	Item     *domain.Item       `json:"item"`
	Suffix   *string            `json:"suffix"`
}

// Pools are the candidate lists a round draws from. Pointers refer into
// the catalog, which is never mutated.
type Pools struct {
	Roles     []*domain.RolePreset
	Champions []*domain.Champion
	Items     []*domain.Item
	Suffixes  []string
}

// NewPools builds round pools from a catalog and the active filters.
// Suffixes stays empty when flourishes are disabled.
func NewPools(cat *domain.Catalog, cfg domain.FilterConfig, rules Rules) Pools {
	presets := domain.RolePresets()
	p := Pools{
		Roles:     make([]*domain.RolePreset, len(presets)),
		Champions: make([]*domain.Champion, len(cat.Champions)),
	}
	for i := range presets {
		p.Roles[i] = &presets[i]
	}
	for i := range cat.Champions {
		p.Champions[i] = &cat.Champions[i]
	}
	for i := range cat.Items {
		if rules.Eligible(&cat.Items[i], cfg) {
			p.Items = append(p.Items, &cat.Items[i])
		}
	}
	if cfg.SuffixEnabled {
		p.Suffixes = append([]string(nil), rules.Suffixes...)
	}
	return p
}

// Draw commits one assignment per slot. Roles, champions, items and
// suffixes are each pairwise distinct; slots past the end of a short pool
// get nil.
func (p Pools) Draw(rng RNG) [SlotCount]Assignment {
	roles := SampleUnique(rng, p.Roles, SlotCount)
	champions := SampleUnique(rng, p.Champions, SlotCount)
	items := SampleUnique(rng, p.Items, SlotCount)
	suffixes := SampleUnique(rng, p.Suffixes, SlotCount)

	var out [SlotCount]Assignment
	for i := range out {
		if i < len(roles) {
			out[i].Role = roles[i]
		}
		if i < len(champions) {
			out[i].Champion = champions[i]
		}
		if i < len(items) {
			out[i].Item = items[i]
		}
		if i < len(suffixes) {
			s := suffixes[i]
			out[i].Suffix = &s
		}
	}
	return out
}

// Noise is one cosmetic spin frame: independent picks, no uniqueness.
func (p Pools) Noise(rng RNG) Assignment {
	var a Assignment
	if r, ok := SampleOne(rng, p.Roles); ok {
		a.Role = r
	}
	if c, ok := SampleOne(rng, p.Champions); ok {
		a.Champion = c
	}
	if it, ok := SampleOne(rng, p.Items); ok {
		a.Item = it
	}
	if s, ok := SampleOne(rng, p.Suffixes); ok {
		a.Suffix = &s
	}
	return a
}

// Reroll redraws the champion, item and suffix of slot i, keeping its role.
// New values avoid the other slots' values and, when the pool allows, the
// slot's own current value.
func (p Pools) Reroll(rng RNG, finals [SlotCount]Assignment, i int) Assignment {
	a := finals[i]

	champs := make(map[string]bool, SlotCount)
	items := make(map[string]bool, SlotCount)
	suffixes := make(map[string]bool, SlotCount)
	for j, f := range finals {
		if j == i {
			continue
		}
		if f.Champion != nil {
			champs[f.Champion.ID] = true
		}
		if f.Item != nil {
			items[f.Item.ID] = true
		}
		if f.Suffix != nil {
			suffixes[*f.Suffix] = true
		}
	}

	if c, ok := pickExcluding(rng, p.Champions, func(c *domain.Champion) string { return c.ID }, champs, idOf(a.Champion)); ok {
		a.Champion = c
	}
	if it, ok := pickExcluding(rng, p.Items, func(it *domain.Item) string { return it.ID }, items, itemIDOf(a.Item)); ok {
		a.Item = it
	} else {
		a.Item = nil
	}
	if len(p.Suffixes) > 0 {
		current := ""
		if a.Suffix != nil {
			current = *a.Suffix
		}
		if s, ok := pickExcluding(rng, p.Suffixes, func(s string) string { return s }, suffixes, current); ok {
			a.Suffix = &s
		}
	}
	return a
}

// pickExcluding samples from pool minus taken, preferring to also skip
// current. ok is false when nothing outside taken remains.
func pickExcluding[T any](rng RNG, pool []T, key func(T) string, taken map[string]bool, current string) (T, bool) {
	var fresh, fallback []T
	for _, v := range pool {
		k := key(v)
		if taken[k] {
			continue
		}
		fallback = append(fallback, v)
		if k != current {
			fresh = append(fresh, v)
		}
	}
	if v, ok := SampleOne(rng, fresh); ok {
		return v, true
	}
	return SampleOne(rng, fallback)
}

func idOf(c *domain.Champion) string {
	if c == nil {
		return ""
	}
	return c.ID
}

func itemIDOf(it *domain.Item) string {
	if it == nil {
		return ""
	}
	return it.ID
}
