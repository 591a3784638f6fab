// internal/broadcast/hub.go
package broadcast

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/aramdraft/aramdraft/internal/engine"
)

// Client is one live WebSocket connection's outbox. The transport layer
// drains Send and writes to the socket.
type Client struct {
	ID   string
	Send chan []byte
}

// Hub fans events out to connections. Room membership is resolved through
// the connection registry so the hub itself holds no room state. Delivery
// is fire-and-forget: a full or closed outbox drops the event.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*Client
	members func(roomCode string) []string
	log     *logrus.Logger
}

// NewHub builds a hub. members resolves a room code to the connection IDs
// currently bound to it.
func NewHub(members func(roomCode string) []string, log *logrus.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		members: members,
		log:     log,
	}
}

// Register creates and tracks an outbox for a new connection.
func (h *Hub) Register(connID string) *Client {
	c := &Client{ID: connID, Send: make(chan []byte, 16)}
	h.mu.Lock()
	h.clients[connID] = c
	h.mu.Unlock()
	return c
}

// Unregister drops a connection and closes its outbox.
func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	c, ok := h.clients[connID]
	if ok {
		delete(h.clients, connID)
	}
	h.mu.Unlock()
	if ok {
		close(c.Send)
	}
}

// SendTo delivers one event privately.
func (h *Hub) SendTo(connID string, ev engine.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.log.WithError(err).WithField("event", ev.Type).Warn("failed to marshal event")
		return
	}
	h.mu.Lock()
	c := h.clients[connID]
	h.mu.Unlock()
	if c == nil {
		return
	}
	h.push(c, data, ev.Type)
}

// Broadcast delivers one event to every connection bound to the room.
func (h *Hub) Broadcast(roomCode string, ev engine.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.log.WithError(err).WithField("event", ev.Type).Warn("failed to marshal event")
		return
	}
	for _, connID := range h.members(roomCode) {
		h.mu.Lock()
		c := h.clients[connID]
		h.mu.Unlock()
		if c == nil {
			continue
		}
		h.push(c, data, ev.Type)
	}
}

func (h *Hub) push(c *Client, data []byte, evType string) {
	select {
	case c.Send <- data:
	default:
		// Slow consumer; the event is lost and the client recovers from
		// the next room-state snapshot.
		h.log.WithFields(logrus.Fields{"conn": c.ID, "event": evType}).
			Warn("outbox full, dropping event")
	}
}
