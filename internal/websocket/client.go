package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dom/league-roulette/internal/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendQueueSize  = 256
)

type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	table   *Table
	emitter *EventEmitter

	closeOnce    sync.Once
	overflowOnce sync.Once
}

// NewClient creates a client with its own table. The caller registers it
// with the hub and starts both pumps.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	c := &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendQueueSize),
	}
	c.emitter = NewEventEmitter(c)
	c.table = newTable(hub.tableConfig, c.emitter)
	return c
}

func (c *Client) Table() *Table {
	return c.table
}

func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket error: %v", err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.sendError("INVALID_MESSAGE", "Message is not valid JSON")
			continue
		}

		c.handleMessage(&msg)
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(msg *Message) {
	switch msg.Type {
	case MessageTypeStartRound:
		c.table.StartRound()

	case MessageTypeStopSlot:
		var payload SlotPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			c.sendError("INVALID_PAYLOAD", "Invalid stop slot payload")
			return
		}
		c.table.StopSlot(payload.Slot)

	case MessageTypeRerollSlot:
		var payload SlotPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			c.sendError("INVALID_PAYLOAD", "Invalid reroll slot payload")
			return
		}
		c.table.RerollSlot(payload.Slot)

	case MessageTypeUpdateFilters:
		var patch domain.FilterPatch
		if err := json.Unmarshal(msg.Payload, &patch); err != nil {
			c.sendError("INVALID_PAYLOAD", "Invalid filters payload")
			return
		}
		c.table.UpdateFilters(patch)

	case MessageTypeSyncState:
		c.table.SyncState()

	default:
		c.sendError("UNKNOWN_MESSAGE", "Unknown message type: "+string(msg.Type))
	}
}

func (c *Client) sendError(code, message string) {
	c.emitter.Error(code, message)
}

// overflow unregisters a client that has fallen a full queue behind. The
// caller may hold the engine lock, so the teardown runs on its own goroutine.
func (c *Client) overflow() {
	c.overflowOnce.Do(func() {
		log.Printf("ERROR [websocket.Client]: send queue full, closing table %s", c.table.ID())
		go c.hub.Unregister(c)
	})
}

// Close tears down the table and closes the send queue. Safe to call more
// than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.table.Close()
		close(c.send)
	})
}
