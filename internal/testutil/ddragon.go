package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dom/league-roulette/internal/ddragon"
)

// FakeVersion is the patch the fake Data Dragon reports as latest.
const FakeVersion = "14.1.1"

// FakeDataDragon serves a small champion/item/rune fixture set shaped like
// the real CDN. Every request is counted by path.
type FakeDataDragon struct {
	Server *httptest.Server

	mu     sync.Mutex
	hits   map[string]int
	failOn map[string]int

	down atomic.Bool
}

func NewFakeDataDragon(t *testing.T) *FakeDataDragon {
	t.Helper()

	f := &FakeDataDragon{
		hits:   make(map[string]int),
		failOn: make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/versions.json", func(w http.ResponseWriter, r *http.Request) {
		writeFixture(w, []string{FakeVersion, "14.0.1"})
	})
	mux.HandleFunc("/cdn/", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/champion.json"):
			writeFixture(w, championFixture())
		case strings.HasSuffix(r.URL.Path, "/item.json"):
			writeFixture(w, itemFixture())
		case strings.HasSuffix(r.URL.Path, "/runesReforged.json"):
			writeFixture(w, runeFixture())
		default:
			http.NotFound(w, r)
		}
	})

	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.hits[r.URL.Path]++
		status := f.failOn[r.URL.Path]
		f.mu.Unlock()

		if f.down.Load() {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		if status != 0 {
			http.Error(w, http.StatusText(status), status)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.Server.Close)

	return f
}

func (f *FakeDataDragon) URL() string {
	return f.Server.URL
}

// NewDataDragonClient returns a client pointed at the fake.
func NewDataDragonClient(f *FakeDataDragon) *ddragon.Client {
	return ddragon.NewClient(ddragon.Options{BaseURL: f.URL(), HTTPClient: f.Server.Client()})
}

// SetDown makes every request answer 503.
func (f *FakeDataDragon) SetDown(down bool) {
	f.down.Store(down)
}

// FailPath makes a single path answer with status.
func (f *FakeDataDragon) FailPath(path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failOn[path] = status
}

// Hits returns how many requests reached path.
func (f *FakeDataDragon) Hits(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

// DataPath is the CDN path of a data file for the fake version.
func DataPath(file string) string {
	return fmt.Sprintf("/cdn/%s/data/en_US/%s", FakeVersion, file)
}

func writeFixture(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// FakeChampionIDs lists the fixture champions in sorted order.
var FakeChampionIDs = []string{
	"Aatrox", "Ahri", "Ashe", "Braum", "Darius", "Ezreal", "Garen", "Jinx", "LeeSin", "Lux",
}

func championFixture() map[string]any {
	data := make(map[string]any)
	for i, id := range FakeChampionIDs {
		data[id] = map[string]any{
			"id":    id,
			"key":   fmt.Sprintf("%d", 100+i),
			"name":  id,
			"title": "the " + id,
			"tags":  []string{"Fighter"},
			"image": map[string]any{"full": id + ".png", "sprite": "champion0.png", "group": "champion"},
		}
	}
	return map[string]any{"type": "champion", "version": FakeVersion, "data": data}
}

func fixtureItem(name string, total int, tags []string, from, into []string) map[string]any {
	return map[string]any{
		"name":      name,
		"plaintext": "",
		"tags":      tags,
		"maps":      map[string]bool{"11": true, "12": true},
		"gold":      map[string]any{"base": total / 3, "total": total, "sell": total * 7 / 10, "purchasable": true},
		"into":      into,
		"from":      from,
	}
}

// FakeEligibleItemIDs are the fixture items that pass the default filters.
var FakeEligibleItemIDs = []string{"3031", "3071", "3078", "3089", "3153", "3157", "6672"}

func itemFixture() map[string]any {
	data := map[string]any{
		"3031": fixtureItem("Infinity Edge", 3400, []string{"Damage", "CriticalStrike"}, []string{"1038", "1018"}, nil),
		"3071": fixtureItem("Black Cleaver", 3000, []string{"Damage", "Health"}, []string{"3133", "1028"}, nil),
		"3078": fixtureItem("Trinity Force", 3333, []string{"Damage", "AttackSpeed"}, []string{"3057", "3044"}, nil),
		"3089": fixtureItem("Rabadon's Deathcap", 3600, []string{"SpellDamage"}, []string{"1058", "1058"}, nil),
		"3153": fixtureItem("Blade of The Ruined King", 3200, []string{"Damage", "LifeSteal"}, []string{"1043", "1053"}, nil),
		"3157": fixtureItem("Zhonya's Hourglass", 3250, []string{"SpellDamage", "Armor"}, []string{"3191", "1058"}, nil),
		"6672": fixtureItem("Kraken Slayer", 3100, []string{"Damage", "AttackSpeed"}, []string{"1038", "1043"}, nil),

		"1036": fixtureItem("Long Sword", 350, []string{"Damage"}, nil, []string{"3071", "3153"}),
		"3006": fixtureItem("Berserker's Greaves", 1100, []string{"Boots", "AttackSpeed"}, []string{"1001", "1042"}, nil),
		"3340": fixtureItem("Stealth Ward", 0, []string{"Trinket", "Vision"}, nil, nil),
		"2003": fixtureItem("Health Potion", 50, []string{"Consumable", "HealthRegen"}, nil, nil),
		"1101": fixtureItem("Scorchclaw Pup", 450, []string{"Jungle"}, nil, nil),
		"3600": fixtureItem("Black Spear", 3000, []string{"Damage"}, []string{"1036"}, nil),
		"3112": fixtureItem("Guardian's Orb", 950, []string{"SpellDamage"}, nil, nil),
	}
	for id, v := range data {
		v.(map[string]any)["image"] = map[string]any{"full": id + ".png", "sprite": "item0.png", "group": "item"}
	}
	data["1101"].(map[string]any)["plaintext"] = "Smite companion for the jungle"
	data["3600"].(map[string]any)["requiredChampion"] = "Kalista"
	data["3112"].(map[string]any)["maps"] = map[string]bool{"11": false, "12": true}
	data["3031"].(map[string]any)["inStore"] = true

	return map[string]any{"type": "item", "version": FakeVersion, "data": data}
}

func runeFixture() []map[string]any {
	tree := func(id int, key, name string, keystones ...string) map[string]any {
		runes := make([]map[string]any, len(keystones))
		for i, k := range keystones {
			runes[i] = map[string]any{
				"id":   id + i + 1,
				"key":  k,
				"name": k,
				"icon": fmt.Sprintf("perk-images/Styles/%s/%s/%s.png", key, k, k),
			}
		}
		minor := []map[string]any{{"id": id + 100, "key": "Minor", "name": "Minor", "icon": "minor.png"}}
		return map[string]any{
			"id":    id,
			"key":   key,
			"name":  name,
			"icon":  fmt.Sprintf("perk-images/Styles/%s.png", key),
			"slots": []map[string]any{{"runes": runes}, {"runes": minor}},
		}
	}
	return []map[string]any{
		tree(8000, "Precision", "Precision", "PressTheAttack", "LethalTempo", "FleetFootwork", "Conqueror"),
		tree(8100, "Domination", "Domination", "Electrocute", "DarkHarvest", "HailOfBlades"),
	}
}
