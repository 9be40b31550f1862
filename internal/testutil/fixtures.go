package testutil

import (
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/dom/league-roulette/internal/domain"
)

// CatalogBuilder creates test catalogs with a builder pattern
type CatalogBuilder struct {
	version   string
	fetchedAt time.Time
	champions int
	items     []domain.Item
	keystones []domain.Keystone
}

// NewCatalogBuilder starts from ten champions, eight eligible items and
// two keystones.
func NewCatalogBuilder() *CatalogBuilder {
	b := &CatalogBuilder{
		version:   FakeVersion,
		fetchedAt: time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC),
		champions: 10,
	}
	for i := range 8 {
		b.items = append(b.items, LegendaryItem(fmt.Sprintf("%d", 3000+i)))
	}
	b.keystones = []domain.Keystone{
		{ID: 8005, Key: "PressTheAttack", Name: "Press the Attack", Tree: "Precision"},
		{ID: 8112, Key: "Electrocute", Name: "Electrocute", Tree: "Domination"},
	}
	return b
}

func (b *CatalogBuilder) WithVersion(v string) *CatalogBuilder {
	b.version = v
	return b
}

func (b *CatalogBuilder) WithFetchedAt(at time.Time) *CatalogBuilder {
	b.fetchedAt = at
	return b
}

func (b *CatalogBuilder) WithChampions(n int) *CatalogBuilder {
	b.champions = n
	return b
}

// WithItems replaces the item list.
func (b *CatalogBuilder) WithItems(items ...domain.Item) *CatalogBuilder {
	b.items = items
	return b
}

// Build returns a catalog whose element versions match the catalog's.
func (b *CatalogBuilder) Build() *domain.Catalog {
	cat := &domain.Catalog{
		Version:   b.version,
		Locale:    "en_US",
		FetchedAt: b.fetchedAt,
	}
	for i := range b.champions {
		id := fmt.Sprintf("Champion%02d", i)
		cat.Champions = append(cat.Champions, domain.Champion{
			Version: b.version,
			ID:      id,
			Key:     fmt.Sprintf("%d", i+1),
			Name:    id,
			Title:   "the Test Subject",
			Tags:    datatypes.JSONSlice[string]{string(domain.TagFighter)},
			Image:   domain.Image{Full: id + ".png", Group: "champion", URL: "https://example.com/" + id + ".png"},
		})
	}
	for _, it := range b.items {
		it.Version = b.version
		cat.Items = append(cat.Items, it)
	}
	for _, k := range b.keystones {
		k.Version = b.version
		cat.Keystones = append(cat.Keystones, k)
	}
	return cat
}

// LegendaryItem is a completed item that passes every default filter.
func LegendaryItem(id string) domain.Item {
	return domain.Item{
		ID:    id,
		Name:  "Legendary " + id,
		Tags:  datatypes.JSONSlice[string]{"Damage"},
		Maps:  datatypes.NewJSONType(map[string]bool{domain.PrimaryMapID: true}),
		Gold:  domain.Gold{Base: 900, Total: 3000, Sell: 2100, Purchasable: true},
		From:  datatypes.JSONSlice[string]{"1036", "1037"},
		Into:  datatypes.JSONSlice[string]{},
		Image: domain.Image{Full: id + ".png", Group: "item"},
	}
}

// BootsItem is excluded by the default filters.
func BootsItem(id string) domain.Item {
	it := LegendaryItem(id)
	it.Name = "Boots " + id
	it.Tags = datatypes.JSONSlice[string]{domain.ItemTagBoots}
	it.Gold.Total = 1100
	return it
}
