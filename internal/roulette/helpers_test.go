package roulette_test

import (
	"fmt"
	"sync"

	"gorm.io/datatypes"

	"github.com/dom/league-roulette/internal/domain"
	"github.com/dom/league-roulette/internal/roulette"
)

// sequenceRNG returns values from a pre-set sequence.
type sequenceRNG struct {
	values []int
	idx    int
}

func (r *sequenceRNG) Intn(n int) int {
	v := r.values[r.idx%len(r.values)] % n
	r.idx++
	return v
}

func boolPtr(b bool) *bool { return &b }

func legendary(id string) domain.Item {
	return domain.Item{
		ID:    id,
		Name:  "Item " + id,
		Tags:  datatypes.JSONSlice[string]{"Damage"},
		Maps:  datatypes.NewJSONType(map[string]bool{"11": true, "12": true}),
		Gold:  domain.Gold{Base: 800, Total: 3000, Sell: 2100, Purchasable: true},
		From:  datatypes.JSONSlice[string]{"1036", "1038"},
		Image: domain.Image{Full: id + ".png", Group: "item"},
	}
}

func legendaries(n int) []domain.Item {
	items := make([]domain.Item, n)
	for i := range items {
		items[i] = legendary(fmt.Sprintf("%d", 3000+i))
	}
	return items
}

func testCatalog(champions int, items []domain.Item) *domain.Catalog {
	cat := &domain.Catalog{Version: "14.1.1", Locale: "en_US", Items: items}
	for i := range champions {
		id := fmt.Sprintf("Champ%c", 'A'+i)
		cat.Champions = append(cat.Champions, domain.Champion{
			ID:   id,
			Key:  fmt.Sprintf("%d", i+1),
			Name: id,
			Tags: datatypes.JSONSlice[string]{string(domain.TagFighter)},
		})
	}
	return cat
}

// recorder captures cue and render events.
type recorder struct {
	mu      sync.Mutex
	ticks   int
	stops   []int
	renders []roulette.Snapshot
}

func (r *recorder) OnTick() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks++
}

func (r *recorder) OnSlotStop(slot int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stops = append(r.stops, slot)
}

func (r *recorder) Render(s roulette.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renders = append(r.renders, s)
}

func (r *recorder) tickCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ticks
}

func (r *recorder) renderCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.renders)
}
