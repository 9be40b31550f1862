package testutil

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	gorillaWS "github.com/gorilla/websocket"

	"github.com/dom/league-roulette/internal/domain"
	"github.com/dom/league-roulette/internal/websocket"
)

// WSClient is a test WebSocket client
type WSClient struct {
	t        *testing.T
	conn     *gorillaWS.Conn
	messages chan *websocket.Message
	errors   chan error
	done     chan struct{}
	mu       sync.Mutex
}

// NewWSClient creates a new WebSocket test client
func NewWSClient(t *testing.T, url string) *WSClient {
	t.Helper()

	dialer := *gorillaWS.DefaultDialer
	dialer.HandshakeTimeout = 5 * time.Second

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to connect to websocket: %v", err)
	}

	client := &WSClient{
		t:        t,
		conn:     conn,
		messages: make(chan *websocket.Message, 1024),
		errors:   make(chan error, 10),
		done:     make(chan struct{}),
	}

	go client.readPump()

	t.Cleanup(func() {
		client.Close()
	})

	return client
}

// readPump reads messages from the WebSocket connection
func (c *WSClient) readPump() {
	defer close(c.messages)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
			case c.errors <- err:
			}
			return
		}

		var msg websocket.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.errors <- err
			continue
		}

		select {
		case c.messages <- &msg:
		case <-c.done:
			return
		}
	}
}

// Close closes the WebSocket connection gracefully
func (c *WSClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.done:
		return
	default:
		close(c.done)
		c.conn.WriteMessage(gorillaWS.CloseMessage, gorillaWS.FormatCloseMessage(gorillaWS.CloseNormalClosure, ""))
		c.conn.Close()
	}
}

// Send writes a message with the given type and payload.
func (c *WSClient) Send(msgType websocket.MessageType, payload any) {
	c.t.Helper()

	msg, err := websocket.NewMessage(msgType, payload)
	if err != nil {
		c.t.Fatalf("failed to build message: %v", err)
	}
	c.SendRaw(msg)
}

// SendRaw writes msg as is.
func (c *WSClient) SendRaw(msg any) {
	c.t.Helper()

	data, err := json.Marshal(msg)
	if err != nil {
		c.t.Fatalf("failed to marshal message: %v", err)
	}

	c.mu.Lock()
	err = c.conn.WriteMessage(gorillaWS.TextMessage, data)
	c.mu.Unlock()

	if err != nil {
		c.t.Fatalf("failed to send message: %v", err)
	}
}

func (c *WSClient) StartRound() {
	c.Send(websocket.MessageTypeStartRound, nil)
}

func (c *WSClient) StopSlot(slot int) {
	c.Send(websocket.MessageTypeStopSlot, websocket.SlotPayload{Slot: slot})
}

func (c *WSClient) RerollSlot(slot int) {
	c.Send(websocket.MessageTypeRerollSlot, websocket.SlotPayload{Slot: slot})
}

func (c *WSClient) UpdateFilters(patch domain.FilterPatch) {
	c.Send(websocket.MessageTypeUpdateFilters, patch)
}

func (c *WSClient) SyncState() {
	c.Send(websocket.MessageTypeSyncState, nil)
}

// ExpectMessage waits for a message of the specified type, skipping others.
func (c *WSClient) ExpectMessage(msgType websocket.MessageType, timeout time.Duration) *websocket.Message {
	c.t.Helper()

	deadline := time.After(timeout)
	for {
		select {
		case msg := <-c.messages:
			if msg == nil {
				c.t.Fatalf("connection closed while waiting for %s", msgType)
			}
			if msg.Type == msgType {
				return msg
			}
		case err := <-c.errors:
			c.t.Fatalf("error while waiting for %s: %v", msgType, err)
		case <-deadline:
			c.t.Fatalf("timeout waiting for message type %s", msgType)
		}
	}
}

// ExpectStateSync waits for and decodes a STATE_SYNC message
func (c *WSClient) ExpectStateSync(timeout time.Duration) *websocket.StateSyncPayload {
	c.t.Helper()

	var payload websocket.StateSyncPayload
	c.decode(c.ExpectMessage(websocket.MessageTypeStateSync, timeout), &payload)
	return &payload
}

// ExpectFiltersUpdated waits for and decodes a FILTERS_UPDATED message
func (c *WSClient) ExpectFiltersUpdated(timeout time.Duration) *websocket.FiltersUpdatedPayload {
	c.t.Helper()

	var payload websocket.FiltersUpdatedPayload
	c.decode(c.ExpectMessage(websocket.MessageTypeFiltersUpdated, timeout), &payload)
	return &payload
}

// ExpectCue waits for a CUE message of the given kind.
func (c *WSClient) ExpectCue(kind websocket.CueKind, timeout time.Duration) *websocket.CuePayload {
	c.t.Helper()

	deadline := time.After(timeout)
	for {
		select {
		case msg := <-c.messages:
			if msg == nil {
				c.t.Fatalf("connection closed while waiting for %s cue", kind)
			}
			if msg.Type != websocket.MessageTypeCue {
				continue
			}
			var payload websocket.CuePayload
			c.decode(msg, &payload)
			if payload.Cue == kind {
				return &payload
			}
		case err := <-c.errors:
			c.t.Fatalf("error while waiting for %s cue: %v", kind, err)
		case <-deadline:
			c.t.Fatalf("timeout waiting for %s cue", kind)
		}
	}
}

// ExpectError waits for and decodes an ERROR message
func (c *WSClient) ExpectError(timeout time.Duration) *websocket.ErrorPayload {
	c.t.Helper()

	var payload websocket.ErrorPayload
	c.decode(c.ExpectMessage(websocket.MessageTypeError, timeout), &payload)
	return &payload
}

// ExpectErrorWithCode waits for an error with a specific code
func (c *WSClient) ExpectErrorWithCode(code string, timeout time.Duration) *websocket.ErrorPayload {
	c.t.Helper()

	payload := c.ExpectError(timeout)
	if payload.Code != code {
		c.t.Fatalf("expected error code %s, got %s: %s", code, payload.Code, payload.Message)
	}

	return payload
}

// ExpectNoMessage verifies no message other than a tick cue arrives within
// timeout.
func (c *WSClient) ExpectNoMessage(timeout time.Duration) {
	c.t.Helper()

	deadline := time.After(timeout)
	for {
		select {
		case msg := <-c.messages:
			if msg == nil {
				return
			}
			if msg.Type != websocket.MessageTypeCue {
				c.t.Fatalf("unexpected message received: %s", msg.Type)
			}
		case <-deadline:
			return
		}
	}
}

// DrainMessages drains buffered messages, waiting for the channel to settle.
func (c *WSClient) DrainMessages() {
	deadline := time.After(100 * time.Millisecond)
	for {
		select {
		case msg := <-c.messages:
			if msg == nil {
				return
			}
			deadline = time.After(50 * time.Millisecond)
		case <-deadline:
			return
		case <-c.done:
			return
		}
	}
}

// Closed waits for the server to close the connection.
func (c *WSClient) Closed(timeout time.Duration) bool {
	deadline := time.After(timeout)
	for {
		select {
		case msg := <-c.messages:
			if msg == nil {
				return true
			}
		case <-c.errors:
			return true
		case <-deadline:
			return false
		}
	}
}

func (c *WSClient) decode(msg *websocket.Message, v any) {
	c.t.Helper()

	if err := json.Unmarshal(msg.Payload, v); err != nil {
		c.t.Fatalf("failed to decode %s payload: %v", msg.Type, err)
	}
}
