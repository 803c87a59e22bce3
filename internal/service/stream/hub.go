package stream

import (
	"net/http"
	"sync"

	"StayPulse/internal/domain/models"
	"StayPulse/pkg/logger"

	"github.com/gorilla/websocket"
)

// Hub fans dashboard snapshots out to connected WebSocket clients. Every
// broadcast carries one complete snapshot in a single frame, so a client
// can never render charts and statistics from different subsets.
type Hub struct {
	l        *logger.Logger
	upgrader websocket.Upgrader
	snapshot func() *models.Snapshot

	mu    sync.Mutex
	conns map[*websocket.Conn]*sync.Mutex
}

// NewHub creates a Hub. snapshot supplies the current snapshot for clients
// that connect between broadcasts; it may return nil before the first one.
func NewHub(l *logger.Logger, snapshot func() *models.Snapshot) *Hub {
	return &Hub{
		l:        l,
		snapshot: snapshot,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]*sync.Mutex),
	}
}

// HandleWS upgrades the request and registers the client. The client gets
// the current snapshot immediately, then one frame per filter transition.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	wmu := &sync.Mutex{}
	h.mu.Lock()
	h.conns[conn] = wmu
	n := len(h.conns)
	h.mu.Unlock()
	h.l.Debug("dashboard client connected", logger.Int("clients", n))

	if s := h.snapshot(); s != nil {
		wmu.Lock()
		err = conn.WriteJSON(s)
		wmu.Unlock()
		if err != nil {
			h.drop(conn)
			return nil
		}
	}

	// read loop only detects close; clients never send data frames
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.drop(conn)
				return
			}
		}
	}()
	return nil
}

// Broadcast sends the snapshot to every connected client, dropping clients
// whose writes fail.
func (h *Hub) Broadcast(s *models.Snapshot) {
	h.mu.Lock()
	targets := make(map[*websocket.Conn]*sync.Mutex, len(h.conns))
	for c, m := range h.conns {
		targets[c] = m
	}
	h.mu.Unlock()

	for conn, wmu := range targets {
		wmu.Lock()
		err := conn.WriteJSON(s)
		wmu.Unlock()
		if err != nil {
			h.drop(conn)
		}
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	for conn := range h.conns {
		_ = conn.Close()
	}
	h.conns = make(map[*websocket.Conn]*sync.Mutex)
	h.mu.Unlock()
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
		_ = conn.Close()
	}
	h.mu.Unlock()
}
