package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/knadh/koanf/providers/file"

	"github.com/ziadkadry99/packdocs/internal/catalog"
	"github.com/ziadkadry99/packdocs/internal/logging"
)

// ReloadMessage is sent to browsers when the catalog changes.
const ReloadMessage = "reload"

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub tracks live-reload websocket connections.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]struct{})}
}

func (h *Hub) add(c *websocket.Conn) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(c *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.Close()
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast writes msg to every client, dropping the ones that fail, and
// returns how many received it. Writes happen under the hub lock so a
// connection never has two concurrent writers.
func (h *Hub) Broadcast(msg string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	sent := 0
	for c := range h.clients {
		_ = c.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			logging.Debug("Dropping reload client", "error", err)
			delete(h.clients, c)
			c.Close()
			continue
		}
		sent++
	}
	return sent
}

// CloseAll disconnects every client.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		_ = c.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		c.Close()
		delete(h.clients, c)
	}
}

func (s *Server) handleReloadSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("websocket upgrade", "error", err)
		return
	}
	s.hub.add(conn)
	defer s.hub.remove(conn)

	// Browsers never send anything; reading only detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Debug("websocket read", "error", err)
			}
			return
		}
	}
}

// WatchSource watches the local data file and reloads on every change. The
// returned func stops watching. Remote sources cannot be watched.
func (s *Server) WatchSource(ctx context.Context) (func(), error) {
	if catalog.IsRemote(s.cfg.Source) {
		return nil, fmt.Errorf("cannot watch remote source %s", s.cfg.Source)
	}
	f := file.Provider(s.cfg.Source)
	err := f.Watch(func(event interface{}, err error) {
		if err != nil {
			logging.Warn("Watching data file", "error", err)
			return
		}
		logging.Info("Data file changed, reloading", "source", s.cfg.Source)
		_ = s.Reload(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("watching %s: %w", s.cfg.Source, err)
	}
	return func() { _ = f.Unwatch() }, nil
}
