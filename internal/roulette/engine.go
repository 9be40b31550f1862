package roulette

import (
	"sync"
	"time"

	"github.com/dom/league-roulette/internal/domain"
)

// DefaultTickInterval is how often unstopped slots re-randomize.
const DefaultTickInterval = 100 * time.Millisecond

type RoundState string

const (
	RoundIdle     RoundState = "idle"
	RoundSpinning RoundState = "spinning"
	RoundComplete RoundState = "complete"
)

type SlotState string

const (
	SlotPending  SlotState = "pending"
	SlotSpinning SlotState = "spinning"
	SlotStopped  SlotState = "stopped"
)

// Slot is the displayed state of one participant.
type Slot struct {
	Index      int       `json:"index"`
	State      SlotState `json:"state"`
	RerollUsed bool      `json:"rerollUsed"`
	Assignment
}

// Snapshot is what a renderer shows. Unstopped slots carry spin noise,
// never their committed value.
type Snapshot struct {
	Round   int                 `json:"round"`
	State   RoundState          `json:"state"`
	Filters domain.FilterConfig `json:"filters"`
	Slots   [SlotCount]Slot     `json:"slots"`
}

// CatalogSource yields the current catalog, or nil while none is loaded.
type CatalogSource interface {
	Catalog() *domain.Catalog
}

// StaticCatalog is a CatalogSource over a fixed catalog.
type StaticCatalog struct {
	C *domain.Catalog
}

func (s StaticCatalog) Catalog() *domain.Catalog { return s.C }

// CueSink receives audio cue intents. Implementations must not block and
// must not call back into the engine.
type CueSink interface {
	OnTick()
	OnSlotStop(slot int)
}

// Renderer receives every display change. Same constraints as CueSink.
type Renderer interface {
	Render(Snapshot)
}

type nopCues struct{}

func (nopCues) OnTick()        {}
func (nopCues) OnSlotStop(int) {}

type nopRenderer struct{}

func (nopRenderer) Render(Snapshot) {}

// Options configures an Engine. Zero values fall back to defaults.
type Options struct {
	Catalog   CatalogSource
	Rules     *Rules
	RNG       RNG
	Scheduler Scheduler
	Cues      CueSink
	Renderer  Renderer
	Interval  time.Duration
	Filters   *domain.FilterConfig
}

// Engine runs spin rounds for five slots. Final values are drawn once at
// round start; each slot keeps spinning on the shared tick until it is
// stopped individually. At most one tick loop is active at any time.
type Engine struct {
	catalog   CatalogSource
	rules     Rules
	rng       RNG
	scheduler Scheduler
	cues      CueSink
	renderer  Renderer
	interval  time.Duration

	mu         sync.Mutex
	filters    domain.FilterConfig
	state      RoundState
	round      int
	pools      Pools
	final      [SlotCount]Assignment
	display    [SlotCount]Assignment
	slots      [SlotCount]SlotState
	rerolled   [SlotCount]bool
	cancelTick func()
	closed     bool
}

func NewEngine(opts Options) *Engine {
	e := &Engine{
		catalog:   opts.Catalog,
		rules:     DefaultRules(),
		rng:       opts.RNG,
		scheduler: opts.Scheduler,
		cues:      opts.Cues,
		renderer:  opts.Renderer,
		interval:  opts.Interval,
		filters:   domain.DefaultFilterConfig(),
		state:     RoundIdle,
	}
	if opts.Rules != nil {
		e.rules = *opts.Rules
	}
	if opts.Filters != nil {
		e.filters = *opts.Filters
	}
	if e.catalog == nil {
		e.catalog = StaticCatalog{}
	}
	if e.rng == nil {
		e.rng = StdRNG{}
	}
	if e.scheduler == nil {
		e.scheduler = TickerScheduler{}
	}
	if e.cues == nil {
		e.cues = nopCues{}
	}
	if e.renderer == nil {
		e.renderer = nopRenderer{}
	}
	if e.interval <= 0 {
		e.interval = DefaultTickInterval
	}
	for i := range e.slots {
		e.slots[i] = SlotPending
	}
	return e
}

// StartRound draws new finals and starts spinning every slot. A round
// already in progress is abandoned and its tick loop cancelled first.
func (e *Engine) StartRound() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return domain.ErrEngineClosed
	}
	cat := e.catalog.Catalog()
	if cat == nil {
		return domain.ErrCatalogNotReady
	}
	if !cat.Ready() {
		return domain.ErrNoChampions
	}

	e.stopTickLocked()

	e.pools = NewPools(cat, e.filters, e.rules)
	e.round++
	e.final = e.pools.Draw(e.rng)
	for i := range e.slots {
		e.slots[i] = SlotSpinning
		e.rerolled[i] = false
		e.display[i] = e.pools.Noise(e.rng)
	}
	e.state = RoundSpinning

	round := e.round
	e.cancelTick = e.scheduler.Every(e.interval, func() { e.tick(round) })

	e.renderer.Render(e.snapshotLocked())
	return nil
}

// StopSlot reveals slot i. It returns false, changing nothing, when i is
// out of range, no round is spinning, or the slot is already stopped.
func (e *Engine) StopSlot(i int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if i < 0 || i >= SlotCount || e.state != RoundSpinning || e.slots[i] != SlotSpinning {
		return false
	}

	e.slots[i] = SlotStopped
	e.display[i] = e.final[i]
	e.cues.OnSlotStop(i)

	if e.allStoppedLocked() {
		e.state = RoundComplete
		e.stopTickLocked()
	}

	e.renderer.Render(e.snapshotLocked())
	return true
}

// RerollSlot redraws a stopped slot once per round, keeping its role.
func (e *Engine) RerollSlot(i int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if i < 0 || i >= SlotCount {
		return domain.ErrInvalidSlot
	}
	if e.state == RoundIdle {
		return domain.ErrRoundNotActive
	}
	if e.slots[i] != SlotStopped {
		return domain.ErrSlotNotStopped
	}
	if e.rerolled[i] {
		return domain.ErrRerollUsed
	}

	e.final[i] = e.pools.Reroll(e.rng, e.final, i)
	e.display[i] = e.final[i]
	e.rerolled[i] = true
	e.cues.OnSlotStop(i)

	e.renderer.Render(e.snapshotLocked())
	return nil
}

// UpdateFilters applies a partial filter update. It takes effect at the
// next round start.
func (e *Engine) UpdateFilters(p domain.FilterPatch) domain.FilterConfig {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.filters = e.filters.Apply(p)
	return e.filters
}

func (e *Engine) Filters() domain.FilterConfig {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filters
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Committed returns the hidden finals of the current round.
func (e *Engine) Committed() [SlotCount]Assignment {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.final
}

// Close cancels the tick loop. Later StartRound calls fail.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopTickLocked()
	e.closed = true
}

func (e *Engine) tick(round int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Ticks from a replaced or finished round are dropped.
	if round != e.round || e.state != RoundSpinning || e.closed {
		return
	}

	for i := range e.slots {
		if e.slots[i] == SlotSpinning {
			e.display[i] = e.pools.Noise(e.rng)
		}
	}
	e.cues.OnTick()
	e.renderer.Render(e.snapshotLocked())
}

func (e *Engine) stopTickLocked() {
	if e.cancelTick != nil {
		e.cancelTick()
		e.cancelTick = nil
	}
}

func (e *Engine) allStoppedLocked() bool {
	for _, s := range e.slots {
		if s != SlotStopped {
			return false
		}
	}
	return true
}

func (e *Engine) snapshotLocked() Snapshot {
	s := Snapshot{
		Round:   e.round,
		State:   e.state,
		Filters: e.filters,
	}
	for i := range s.Slots {
		s.Slots[i] = Slot{
			Index:      i,
			State:      e.slots[i],
			RerollUsed: e.rerolled[i],
			Assignment: e.display[i],
		}
	}
	return s
}
