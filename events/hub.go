package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const clientBuffer = 16

// Hub pushes OrderPlaced events to connected websocket clients.
// Clients that fall behind are disconnected rather than blocking checkout.
type Hub struct {
	mu           sync.Mutex
	clients      map[*hubClient]struct{}
	writeTimeout time.Duration
}

type hubClient struct {
	conn *websocket.Conn
	send chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:      make(map[*hubClient]struct{}),
		writeTimeout: 10 * time.Second,
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Serve registers conn and blocks until the peer goes away.
func (h *Hub) Serve(conn *websocket.Conn) {
	c := &hubClient{conn: conn, send: make(chan []byte, clientBuffer)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	defer h.drop(c)

	go h.writeLoop(c)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) PublishOrderPlaced(_ context.Context, event OrderPlaced) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", event.EventType(), err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			slog.Warn("Dropping slow order feed client", "remote", c.conn.RemoteAddr())
			delete(h.clients, c)
			close(c.send)
		}
	}
	return nil
}

func (h *Hub) drop(c *hubClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) writeLoop(c *hubClient) {
	defer c.conn.Close()
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
