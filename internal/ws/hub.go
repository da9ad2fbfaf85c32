// Package ws delivers analysis notifications to connected websocket
// subscribers. Delivery is best effort: no acknowledgment, no retry, no
// replay for subscribers connecting later.
package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// EventNuevoAnalisis is the channel name emitted for every persisted analysis.
const EventNuevoAnalisis = "nuevo-analisis"

const (
	writeTimeout   = 10 * time.Second
	sendBufferSize = 16
)

// Broadcaster publishes an event to all connected subscribers. A faulty or
// slow subscriber must never block or fail the caller.
type Broadcaster interface {
	Broadcast(event string, payload any)
}

// envelope is the wire format sent to subscribers.
type envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks connected subscribers and fans messages out to them. Safe for
// concurrent use; registration and broadcast never coordinate beyond the
// client map lock.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*client
	closed  bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[uuid.UUID]*client)}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Subscribers are trusted dashboards on other origins.
	CheckOrigin: func(_ *http.Request) bool { return true },
}

// Handler upgrades the connection and registers the subscriber until it
// disconnects.
func (h *Hub) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Error("websocket upgrade failed", "error", err, "remote_addr", r.RemoteAddr)
			return
		}

		c := &client{
			id:   uuid.New(),
			conn: conn,
			send: make(chan []byte, sendBufferSize),
		}
		h.register(c)
		slog.Info("websocket client connected", "client_id", c.id)

		go c.writePump()
		c.readPump() // blocks until the peer goes away

		h.unregister(c)
		slog.Info("websocket client disconnected", "client_id", c.id)
	}
}

// Broadcast marshals the envelope and hands it to every subscriber without
// blocking. Subscribers whose buffers are full miss the message; the fault
// is logged, never surfaced.
func (h *Hub) Broadcast(event string, payload any) {
	msg, err := json.Marshal(envelope{Event: event, Payload: payload})
	if err != nil {
		slog.Error("broadcast marshal failed", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		select {
		case c.send <- msg:
		default:
			slog.Warn("dropping notification for slow subscriber",
				"client_id", c.id, "event", event)
		}
	}
}

// ClientCount returns the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects all subscribers and rejects new registrations.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, c := range h.clients {
		close(c.send)
		delete(h.clients, id)
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(c.send)
		return
	}
	h.clients[c.id] = c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		close(c.send)
	}
}

// writePump drains the send channel onto the connection and closes the
// connection when the channel closes.
func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			slog.Warn("websocket write failed", "client_id", c.id, "error", err)
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
}

// readPump discards inbound frames; subscribers only listen. Returns when
// the connection errors or closes.
func (c *client) readPump() {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
