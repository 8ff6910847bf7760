package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/piodoi/pdf2pps/internal/domain/ports"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer; clients only listen
	maxMessageSize = 512
)

// wsClient represents a WebSocket client connection
type wsClient struct {
	id     string
	conn   *websocket.Conn
	send   chan ports.UpdateEvent
	hub    *Hub
	logger *HTTPLogger
}

// handleWebSocket upgrades the request and registers the client with the hub
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			// The web client is a local tool; same-host pages only.
			return true
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("WebSocket upgrade failed: %v", err)
		return
	}

	client := &wsClient{
		id:     uuid.New().String(),
		conn:   conn,
		send:   make(chan ports.UpdateEvent, 256),
		hub:    s.hub,
		logger: s.logger,
	}

	s.hub.Register(&Connection{ID: client.id, Send: client.send})

	go client.writePump()
	go client.readPump()

	// Bring the new client up to date immediately.
	snapshot := s.session.Snapshot()
	event := ports.UpdateEvent{
		Type:      "connected",
		Timestamp: time.Now(),
		Session:   &snapshot,
	}
	select {
	case client.send <- event:
	default:
	}
}

// readPump drains client messages so control frames are processed
func (c *wsClient) readPump() {
	defer func() {
		c.hub.Unregister(c.id)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket connection error: %v", err)
			}
			break
		}
	}
}

// writePump sends events and keepalive pings to the client
func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(event); err != nil {
				c.logger.Error("WebSocket write failed: %v", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
