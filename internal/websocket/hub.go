package websocket

import (
	"log"
	"sync"
)

// Hub tracks connected clients so they can be torn down together on
// shutdown. Tables are independent; the hub never routes between them.
type Hub struct {
	clients     map[*Client]bool
	register    chan *Client
	unregister  chan *Client
	stop        chan struct{}
	done        chan struct{} // closed when Run() exits
	stopped     bool
	tableConfig TableConfig
	mu          sync.RWMutex
}

func NewHub(cfg TableConfig) *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
		tableConfig: cfg,
	}
}

func (h *Hub) Run() {
	defer close(h.done) // Signal that Run() has exited

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.stopped {
				client.Close()
			} else {
				h.clients[client] = true
				log.Printf("Table %s opened (%d active)", client.table.ID(), len(h.clients))
			}
			h.mu.Unlock()
			client.table.SyncState()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
				log.Printf("Table %s closed (%d active)", client.table.ID(), len(h.clients))
			}
			h.mu.Unlock()
		}
	}
}

// Stop closes every client and blocks until Run has exited.
func (h *Hub) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.stopped = true
	h.mu.Unlock()

	close(h.stop)
	<-h.done // Wait for Run() to finish
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.Close()
	}
}

// Unregister safely unregisters a client, handling the case where the hub may be stopped.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
		// Hub already closed every client
		client.Close()
	}
}

// ClientCount returns the number of open tables.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
