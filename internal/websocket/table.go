package websocket

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dom/league-roulette/internal/domain"
	"github.com/dom/league-roulette/internal/roulette"
)

// Table is one browser's roulette: an engine whose display and cue output
// is streamed to a single client.
type Table struct {
	id      uuid.UUID
	catalog roulette.CatalogSource
	engine  *roulette.Engine
	emitter *EventEmitter
}

// TableConfig is shared by every table a hub creates.
type TableConfig struct {
	Catalog   roulette.CatalogSource
	Rules     roulette.Rules
	Interval  time.Duration
	Scheduler roulette.Scheduler
}

func newTable(cfg TableConfig, emitter *EventEmitter) *Table {
	t := &Table{
		id:      uuid.New(),
		catalog: cfg.Catalog,
		emitter: emitter,
	}
	rules := cfg.Rules
	t.engine = roulette.NewEngine(roulette.Options{
		Catalog:   cfg.Catalog,
		Rules:     &rules,
		Scheduler: cfg.Scheduler,
		Interval:  cfg.Interval,
		Cues:      t,
		Renderer:  t,
	})
	return t
}

func (t *Table) ID() uuid.UUID {
	return t.id
}

// Render implements roulette.Renderer.
func (t *Table) Render(snap roulette.Snapshot) {
	t.emitter.SlotsUpdated(snap)
}

// OnTick implements roulette.CueSink.
func (t *Table) OnTick() {
	t.emitter.TickCue()
}

// OnSlotStop implements roulette.CueSink.
func (t *Table) OnSlotStop(slot int) {
	t.emitter.StopCue(slot)
}

func (t *Table) StartRound() {
	if err := t.engine.StartRound(); err != nil {
		t.sendError(err)
	}
}

// StopSlot is silently ignored when the slot cannot be stopped.
func (t *Table) StopSlot(slot int) {
	t.engine.StopSlot(slot)
}

func (t *Table) RerollSlot(slot int) {
	if err := t.engine.RerollSlot(slot); err != nil {
		t.sendError(err)
	}
}

func (t *Table) UpdateFilters(patch domain.FilterPatch) {
	t.emitter.FiltersUpdated(t.engine.UpdateFilters(patch))
}

func (t *Table) SyncState() {
	version := ""
	if cat := t.catalog.Catalog(); cat != nil {
		version = cat.Version
	}
	t.emitter.StateSync(t.id.String(), version, t.engine.Snapshot())
}

// Close stops the table's tick loop.
func (t *Table) Close() {
	t.engine.Close()
}

func (t *Table) sendError(err error) {
	t.emitter.Error(errorCode(err), err.Error())
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrCatalogNotReady):
		return "CATALOG_NOT_READY"
	case errors.Is(err, domain.ErrNoChampions):
		return "NO_CHAMPIONS"
	case errors.Is(err, domain.ErrInvalidSlot):
		return "INVALID_SLOT"
	case errors.Is(err, domain.ErrRoundNotActive):
		return "ROUND_NOT_ACTIVE"
	case errors.Is(err, domain.ErrSlotNotStopped):
		return "SLOT_NOT_STOPPED"
	case errors.Is(err, domain.ErrRerollUsed):
		return "REROLL_USED"
	case errors.Is(err, domain.ErrEngineClosed):
		return "TABLE_CLOSED"
	default:
		return "INTERNAL_ERROR"
	}
}
