// Package realtime pushes lifecycle events to every connected client over a
// WebSocket channel upgraded from the main HTTP listener.
package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event is a typed message delivered to every connected client.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Event types emitted by the core. Task-level events are intentionally not
// broadcast; only user/project lifecycle events are.
const (
	EventUserCreated    = "userCreated"
	EventProjectCreated = "projectCreated"
	EventProjectUpdated = "projectUpdated"
	EventProjectDeleted = "projectDeleted"
)

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 16
)

// client is one connected WebSocket peer. Outbound frames go through a
// buffered channel so a slow peer never blocks the broadcaster.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub owns the registry of connected clients. There is no delivery
// guarantee, no queuing for disconnected clients, and no per-client
// filtering: every connected client receives every event.
type Hub struct {
	mu      sync.Mutex
	clients map[uuid.UUID]*client

	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]*client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The channel carries no credentials and accepts any origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger.Named("realtime"),
	}
}

// RegisterRoutes registers the WebSocket upgrade endpoint on the given mux.
func (h *Hub) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /ws", h.ServeWS)
}

// ServeWS upgrades the HTTP connection and keeps it registered until the
// peer goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	id := uuid.New()
	c := &client{
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}

	h.mu.Lock()
	h.clients[id] = c
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Debug("client connected",
		zap.String("client_id", id.String()),
		zap.Int("connected", count))

	go h.writeLoop(id, c)
	go h.readLoop(id, c)
}

// Broadcast delivers the JSON-serialized event to every currently-open
// client. Fire-and-forget: it never blocks the caller and never retries.
// Clients whose buffers are full simply miss the event.
func (h *Hub) Broadcast(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to encode event", zap.String("type", event.Type), zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for id, c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("dropping event for slow client",
				zap.String("client_id", id.String()),
				zap.String("type", event.Type))
		}
	}
}

// ClientCount returns the number of currently connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// writeLoop drains the client's send channel onto the wire.
func (h *Hub) writeLoop(id uuid.UUID, c *client) {
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Debug("write failed, closing client",
				zap.String("client_id", id.String()),
				zap.Error(err))
			h.remove(id)
			return
		}
	}
}

// readLoop discards inbound frames; its job is noticing the close.
func (h *Hub) readLoop(id uuid.UUID, c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.remove(id)
			return
		}
	}
}

// remove unregisters a client and tears down its connection. Safe to call
// more than once for the same id.
func (h *Hub) remove(id uuid.UUID) {
	h.mu.Lock()
	c, ok := h.clients[id]
	if ok {
		delete(h.clients, id)
	}
	count := len(h.clients)
	h.mu.Unlock()

	if !ok {
		return
	}

	close(c.send)
	_ = c.conn.Close()

	h.logger.Debug("client disconnected",
		zap.String("client_id", id.String()),
		zap.Int("connected", count))
}
