package websocket

import (
	"encoding/json"
	"time"

	"github.com/dom/league-roulette/internal/domain"
	"github.com/dom/league-roulette/internal/roulette"
)

type MessageType string

const (
	// Client to Server
	MessageTypeStartRound    MessageType = "START_ROUND"
	MessageTypeStopSlot      MessageType = "STOP_SLOT"
	MessageTypeRerollSlot    MessageType = "REROLL_SLOT"
	MessageTypeUpdateFilters MessageType = "UPDATE_FILTERS"
	MessageTypeSyncState     MessageType = "SYNC_STATE"

	// Server to Client
	MessageTypeStateSync      MessageType = "STATE_SYNC"
	MessageTypeSlotsUpdated   MessageType = "SLOTS_UPDATED"
	MessageTypeCue            MessageType = "CUE"
	MessageTypeFiltersUpdated MessageType = "FILTERS_UPDATED"
	MessageTypeError          MessageType = "ERROR"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
	Seq       int64           `json:"seq,omitempty"`
}

func NewMessage(msgType MessageType, payload any) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// Client to Server payloads

type SlotPayload struct {
	Slot int `json:"slot"`
}

// Server to Client payloads

type StateSyncPayload struct {
	TableID        string            `json:"tableId"`
	CatalogVersion string            `json:"catalogVersion,omitempty"`
	Snapshot       roulette.Snapshot `json:"snapshot"`
}

type CueKind string

const (
	CueTick CueKind = "tick"
	CueStop CueKind = "stop"
)

type CuePayload struct {
	Cue  CueKind `json:"cue"`
	Slot *int    `json:"slot,omitempty"`
}

type FiltersUpdatedPayload struct {
	Filters domain.FilterConfig `json:"filters"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
