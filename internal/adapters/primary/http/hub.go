package http

import (
	"context"
	"sync"

	"github.com/piodoi/pdf2pps/internal/domain/ports"
)

// Connection represents one WebSocket client from the hub's point of view
type Connection struct {
	ID   string
	Send chan ports.UpdateEvent
}

// Hub fans session events out to all connected web clients
type Hub struct {
	connections map[string]*Connection
	broadcast   chan ports.UpdateEvent
	register    chan *Connection
	unregister  chan string
	mu          sync.RWMutex
	done        chan struct{}
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		connections: make(map[string]*Connection),
		broadcast:   make(chan ports.UpdateEvent, 256),
		register:    make(chan *Connection),
		unregister:  make(chan string),
		done:        make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			return

		case conn := <-h.register:
			h.mu.Lock()
			h.connections[conn.ID] = conn
			h.mu.Unlock()

		case id := <-h.unregister:
			h.mu.Lock()
			if conn, ok := h.connections[id]; ok {
				delete(h.connections, id)
				close(conn.Send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.Lock()
			for _, conn := range h.connections {
				select {
				case conn.Send <- event:
				default:
					// Client too slow, drop the connection
					close(conn.Send)
					delete(h.connections, conn.ID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(connID string) {
	select {
	case h.unregister <- connID:
	case <-h.done:
	}
}

// Broadcast sends an event to all connections
func (h *Hub) Broadcast(event ports.UpdateEvent) {
	select {
	case h.broadcast <- event:
	case <-h.done:
	}
}

// CloseAll closes all connections
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, conn := range h.connections {
		close(conn.Send)
		delete(h.connections, id)
	}
}
