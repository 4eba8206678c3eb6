package services

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"netbar/internal/models"
)

// WebSocketMessage represents a message sent over WebSocket
type WebSocketMessage struct {
	Type      string          `json:"type"` // "snapshot", "ping", "pong", "error"
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// ClientConnection represents a connected WebSocket client
type ClientConnection struct {
	ID   string
	Conn *websocket.Conn
	Send chan WebSocketMessage
}

// WebSocketHub fans published snapshots out to connected clients
type WebSocketHub struct {
	clients    map[string]*ClientConnection
	register   chan *ClientConnection
	unregister chan string
	mu         sync.RWMutex
	updates    <-chan models.Snapshot
	done       chan struct{}
	stopOnce   sync.Once
	stopped    chan struct{}
}

// NewWebSocketHub creates a hub fed by a sampler subscription
func NewWebSocketHub(updates <-chan models.Snapshot) *WebSocketHub {
	return &WebSocketHub{
		clients:    make(map[string]*ClientConnection),
		register:   make(chan *ClientConnection),
		unregister: make(chan string),
		updates:    updates,
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}
}

// Run manages the hub's event loop until Stop is called or updates close
func (h *WebSocketHub) Run() {
	defer close(h.stopped)
	defer h.closeAll()

	for {
		select {
		case <-h.done:
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			count := len(h.clients)
			h.mu.Unlock()
			log.Printf("[WS] Client connected: %s (total: %d)", client.ID, count)

		case clientID := <-h.unregister:
			h.mu.Lock()
			if client, exists := h.clients[clientID]; exists {
				delete(h.clients, clientID)
				close(client.Send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			log.Printf("[WS] Client disconnected: %s (total: %d)", clientID, count)

		case snap, ok := <-h.updates:
			if !ok {
				return
			}
			msg, err := SnapshotMessage(snap)
			if err != nil {
				log.Printf("[WS] Error marshaling snapshot: %v", err)
				continue
			}
			h.broadcast(msg)
		}
	}
}

// SnapshotMessage wraps a snapshot into a "snapshot" message
func SnapshotMessage(snap models.Snapshot) (WebSocketMessage, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return WebSocketMessage{}, err
	}
	return WebSocketMessage{
		Type:      "snapshot",
		Timestamp: snap.Timestamp,
		Data:      data,
	}, nil
}

func (h *WebSocketHub) broadcast(msg WebSocketMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		select {
		case client.Send <- msg:
		default:
			// Client's send channel is full, skip this message
		}
	}
}

func (h *WebSocketHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, client := range h.clients {
		delete(h.clients, id)
		close(client.Send)
	}
}

// Register adds a new client to the hub; false once the hub has stopped
func (h *WebSocketHub) Register(client *ClientConnection) bool {
	select {
	case h.register <- client:
		return true
	case <-h.stopped:
		return false
	}
}

// Unregister removes a client from the hub
func (h *WebSocketHub) Unregister(clientID string) {
	select {
	case h.unregister <- clientID:
	case <-h.stopped:
	}
}

// SendTo queues a message for one client; false when the client is gone or behind
func (h *WebSocketHub) SendTo(clientID string, msg WebSocketMessage) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	client, exists := h.clients[clientID]
	if !exists {
		return false
	}

	select {
	case client.Send <- msg:
		return true
	default:
		return false
	}
}

// ClientCount returns the number of connected clients
func (h *WebSocketHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Stop gracefully stops the hub and closes every client's send channel
func (h *WebSocketHub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
	})
	<-h.stopped
}
