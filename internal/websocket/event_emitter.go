package websocket

import (
	"encoding/json"
	"log"
	"sync/atomic"

	"github.com/dom/league-roulette/internal/domain"
	"github.com/dom/league-roulette/internal/roulette"
)

// EventEmitter turns table events into messages on one client's send
// queue. It never blocks: the engine calls it with its lock held.
type EventEmitter struct {
	client *Client
	seq    atomic.Int64
}

func NewEventEmitter(client *Client) *EventEmitter {
	return &EventEmitter{client: client}
}

// Emit stamps msg with the next sequence number and queues it.
func (e *EventEmitter) Emit(msg *Message) {
	msg.Seq = e.seq.Add(1)
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("failed to marshal message: %v", err)
		return
	}
	e.trySend(data)
}

// trySend queues data without blocking. A client whose queue is full has
// stopped reading, so it is dropped rather than shown a gap in the stream.
func (e *EventEmitter) trySend(data []byte) {
	defer func() {
		if recover() != nil {
			// Channel closed, client is disconnecting - skip silently
		}
	}()

	select {
	case e.client.send <- data:
	default:
		e.client.overflow()
	}
}

func (e *EventEmitter) emit(msgType MessageType, payload any) {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		log.Printf("failed to build %s message: %v", msgType, err)
		return
	}
	e.Emit(msg)
}

// --- Round events ---

func (e *EventEmitter) StateSync(tableID, version string, snap roulette.Snapshot) {
	e.emit(MessageTypeStateSync, StateSyncPayload{
		TableID:        tableID,
		CatalogVersion: version,
		Snapshot:       snap,
	})
}

func (e *EventEmitter) SlotsUpdated(snap roulette.Snapshot) {
	e.emit(MessageTypeSlotsUpdated, snap)
}

func (e *EventEmitter) FiltersUpdated(cfg domain.FilterConfig) {
	e.emit(MessageTypeFiltersUpdated, FiltersUpdatedPayload{Filters: cfg})
}

// --- Audio cues ---

func (e *EventEmitter) TickCue() {
	e.emit(MessageTypeCue, CuePayload{Cue: CueTick})
}

func (e *EventEmitter) StopCue(slot int) {
	e.emit(MessageTypeCue, CuePayload{Cue: CueStop, Slot: &slot})
}

// --- Errors ---

func (e *EventEmitter) Error(code, message string) {
	e.emit(MessageTypeError, ErrorPayload{Code: code, Message: message})
}
