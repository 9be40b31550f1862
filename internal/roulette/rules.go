package roulette

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dom/league-roulette/internal/domain"
)

// DefaultLegendaryMinGold is the lowest total cost of a completed item.
const DefaultLegendaryMinGold = 1800

// Rules are the tunable parts of item classification plus the flourish list.
type Rules struct {
	JungleTags       []string `yaml:"jungle_tags"`
	JungleKeywords   []string `yaml:"jungle_keywords"`
	LegendaryMinGold int      `yaml:"legendary_min_gold"`
	PrimaryMap       string   `yaml:"primary_map"`
	Suffixes         []string `yaml:"suffixes"`
}

func DefaultRules() Rules {
	return Rules{
		JungleTags:       []string{domain.ItemTagJungle},
		JungleKeywords:   []string{"Jungle", "ジャングル", "Smite", "スマイト"},
		LegendaryMinGold: DefaultLegendaryMinGold,
		PrimaryMap:       domain.PrimaryMapID,
		Suffixes:         domain.DefaultSuffixes(),
	}
}

// ParseRules reads YAML rules over the defaults; keys absent from the
// document keep their default value.
func ParseRules(data []byte) (Rules, error) {
	r := DefaultRules()
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Rules{}, fmt.Errorf("parse rules: %w", err)
	}
	if r.LegendaryMinGold < 0 {
		return Rules{}, fmt.Errorf("legendary_min_gold must be non-negative, got %d", r.LegendaryMinGold)
	}
	r.Suffixes = domain.DedupeSuffixes(r.Suffixes)
	return r, nil
}

// LoadRules reads a rules file. An empty path yields DefaultRules.
func LoadRules(path string) (Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules file %s: %w", path, err)
	}
	return ParseRules(data)
}

// IsJungleStarter matches a jungle tag, or a jungle/smite keyword anywhere
// in the name and plaintext (case-insensitive).
func (r Rules) IsJungleStarter(it *domain.Item) bool {
	for _, tag := range r.JungleTags {
		if it.HasTag(tag) {
			return true
		}
	}
	text := strings.ToLower(it.Name + " " + it.Plaintext)
	for _, kw := range r.JungleKeywords {
		if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// IsCompletedLegendary: no upgrade path, built from components, at or above
// the cost threshold, and not bound to a champion or ally.
func (r Rules) IsCompletedLegendary(it *domain.Item) bool {
	return len(it.Into) == 0 &&
		len(it.From) > 0 &&
		it.Gold.Total >= r.LegendaryMinGold &&
		it.RequiredChampion == "" &&
		it.RequiredAlly == ""
}
