// Package live pushes dashboard snapshots to WebSocket subscribers.
package live

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/greenbdg/africaesg/backend/internal/model"
)

const writeTimeout = 10 * time.Second

// SnapshotFunc produces the current snapshot on demand.
type SnapshotFunc func() *model.LiveSnapshot

// conn wraps a subscriber socket. gorilla/websocket allows only one
// concurrent writer, so every send goes through the connection's mutex.
type conn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func (c *conn) send(msg *model.LiveMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.ws.WriteJSON(msg)
}

// Hub tracks live subscribers and fans snapshots out to them. Connections
// that fail a write are evicted after the sweep, never mid-iteration.
type Hub struct {
	mu       sync.RWMutex
	conns    map[string]*conn
	snapshot SnapshotFunc
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// NewHub builds a hub that serves snapshots from fn. Browser clients from
// the allowed origins may connect; requests without an Origin header (CLI
// tools, tests) are always admitted.
func NewHub(fn SnapshotFunc, allowedOrigins []string, log zerolog.Logger) *Hub {
	h := &Hub{
		conns:    make(map[string]*conn),
		snapshot: fn,
		log:      log,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(origin, allowed) {
					return true
				}
			}
			return false
		},
	}
	return h
}

// SubscriberCount reports how many sockets are currently connected.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Broadcast sends the message to every subscriber, then drops the ones
// whose writes failed.
func (h *Hub) Broadcast(msg *model.LiveMessage) {
	h.mu.RLock()
	targets := make(map[string]*conn, len(h.conns))
	for id, c := range h.conns {
		targets[id] = c
	}
	h.mu.RUnlock()

	var dead []string
	for id, c := range targets {
		if err := c.send(msg); err != nil {
			dead = append(dead, id)
		}
	}

	if len(dead) > 0 {
		h.mu.Lock()
		for _, id := range dead {
			if c, ok := h.conns[id]; ok {
				c.ws.Close()
				delete(h.conns, id)
			}
		}
		h.mu.Unlock()
		h.log.Debug().Int("evicted", len(dead)).Msg("dropped dead live subscribers")
	}
}

// Push broadcasts a fresh snapshot to all subscribers. No-op when nobody is
// listening.
func (h *Hub) Push() {
	if h.SubscriberCount() == 0 {
		return
	}
	h.Broadcast(&model.LiveMessage{Type: model.LiveUpdateType, Data: h.snapshot()})
}

// ServeHTTP upgrades the request, sends the current snapshot immediately,
// then answers "refresh" and "ping" text frames with a fresh snapshot until
// the client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	id := uuid.NewString()
	c := &conn{ws: ws}

	h.mu.Lock()
	h.conns[id] = c
	h.mu.Unlock()
	h.log.Debug().Str("subscriber", id).Msg("live subscriber connected")

	defer func() {
		h.mu.Lock()
		delete(h.conns, id)
		h.mu.Unlock()
		ws.Close()
		h.log.Debug().Str("subscriber", id).Msg("live subscriber disconnected")
	}()

	if err := c.send(&model.LiveMessage{Type: model.LiveUpdateType, Data: h.snapshot()}); err != nil {
		return
	}

	for {
		_, payload, err := ws.ReadMessage()
		if err != nil {
			return
		}
		switch strings.ToLower(strings.TrimSpace(string(payload))) {
		case "refresh", "ping":
			if err := c.send(&model.LiveMessage{Type: model.LiveUpdateType, Data: h.snapshot()}); err != nil {
				return
			}
		}
	}
}
