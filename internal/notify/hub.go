package notify

import (
	"io"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub fans order events out to every connected websocket client. Delivery
// is best-effort: failed writes drop the client and are never reported to
// the caller, so a broadcast can never gate or roll back a state change.
type Hub struct {
	mu     sync.RWMutex
	conns  map[*wsConn]struct{}
	logger *log.Logger
}

// wsConn wraps a websocket connection with a write mutex to serialize writes.
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Hub{conns: make(map[*wsConn]struct{}), logger: logger}
}

// Register adds a connection to the broadcast set.
func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[&wsConn{conn: conn}] = struct{}{}
}

// Unregister closes and removes a connection.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for wc := range h.conns {
		if wc.conn == conn {
			wc.conn.Close()
			delete(h.conns, wc)
		}
	}
}

// ClientCount reports the number of attached clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Broadcast sends a typed event payload to every connected client.
func (h *Hub) Broadcast(event string, payload any) {
	h.mu.RLock()
	targets := make([]*wsConn, 0, len(h.conns))
	for wc := range h.conns {
		targets = append(targets, wc)
	}
	h.mu.RUnlock()

	msg := map[string]any{"event": event, "data": payload}
	for _, wc := range targets {
		wc.mu.Lock()
		err := wc.conn.WriteJSON(msg)
		wc.mu.Unlock()
		if err != nil {
			h.logger.Printf("ws: write failed for event %s: %v", event, err)
			h.Unregister(wc.conn)
		}
	}
}
