package ws

import (
	"encoding/json"
	"sync"

	"github.com/greenstep-az/ecorewards-backend/internal/logger"
)

// Hub fans submission events out to every connected admin dashboard. There
// is no per-user routing: each event goes to all clients.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 32),
	}
}

// Run is the hub main loop, started once from main.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case payload := <-h.broadcast:
			h.send(payload)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// BroadcastEvent sends an event envelope to every connected client. The
// envelope puts the event name in "type" and the payload in "data".
func (h *Hub) BroadcastEvent(event string, data any) {
	raw, err := json.Marshal(map[string]any{
		"type": event,
		"data": data,
	})
	if err != nil {
		logger.Log.WithError(err).Error("cannot marshal ws event")
		return
	}
	h.broadcast <- raw
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
}

func (h *Hub) send(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			// Slow consumer, drop the connection instead of blocking the hub.
			go client.Close()
		}
	}
}
