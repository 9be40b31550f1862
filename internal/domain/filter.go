package domain

// FilterConfig holds the user's item filter toggles plus the flourish switch.
type FilterConfig struct {
	OnlySR                 bool `json:"onlySR"`
	ExcludeTrinket         bool `json:"excludeTrinket"`
	ExcludeConsumable      bool `json:"excludeConsumable"`
	ExcludeBoots           bool `json:"excludeBoots"`
	OnlyCompletedLegendary bool `json:"onlyCompletedLegendary"`
	ExcludeJungleStarter   bool `json:"excludeJungleStarter"`
	SuffixEnabled          bool `json:"suffixEnabled"`
}

// DefaultFilterConfig has every toggle on.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		OnlySR:                 true,
		ExcludeTrinket:         true,
		ExcludeConsumable:      true,
		ExcludeBoots:           true,
		OnlyCompletedLegendary: true,
		ExcludeJungleStarter:   true,
		SuffixEnabled:          true,
	}
}

// FilterPatch is a partial update; nil fields keep their current value.
type FilterPatch struct {
	OnlySR                 *bool `json:"onlySR,omitempty"`
	ExcludeTrinket         *bool `json:"excludeTrinket,omitempty"`
	ExcludeConsumable      *bool `json:"excludeConsumable,omitempty"`
	ExcludeBoots           *bool `json:"excludeBoots,omitempty"`
	OnlyCompletedLegendary *bool `json:"onlyCompletedLegendary,omitempty"`
	ExcludeJungleStarter   *bool `json:"excludeJungleStarter,omitempty"`
	SuffixEnabled          *bool `json:"suffixEnabled,omitempty"`
}

// Apply returns a copy of c with the patch's set fields applied.
func (c FilterConfig) Apply(p FilterPatch) FilterConfig {
	set := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	set(&c.OnlySR, p.OnlySR)
	set(&c.ExcludeTrinket, p.ExcludeTrinket)
	set(&c.ExcludeConsumable, p.ExcludeConsumable)
	set(&c.ExcludeBoots, p.ExcludeBoots)
	set(&c.OnlyCompletedLegendary, p.OnlyCompletedLegendary)
	set(&c.ExcludeJungleStarter, p.ExcludeJungleStarter)
	set(&c.SuffixEnabled, p.SuffixEnabled)
	return c
}
