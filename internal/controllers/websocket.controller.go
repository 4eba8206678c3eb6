package controllers

import (
	"fmt"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"netbar/internal/middleware"
	"netbar/internal/services"
)

const writeWait = 5 * time.Second

var connectionSeq atomic.Uint64

// HandleWebSocket upgrades the connection and streams snapshots to the client
func (h *Handler) HandleWebSocket(c *gin.Context) {
	clientName := "anonymous"
	if h.Issuer != nil {
		token := middleware.TokenFromRequest(c)
		if token == "" {
			h.SecLog.LogFailedAuth(c.ClientIP(), "missing token")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, err := h.Issuer.ValidateToken(token)
		if err != nil {
			h.SecLog.LogFailedAuth(c.ClientIP(), "invalid token: "+err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		clientName = claims.ClientName
	}

	ws, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}
	h.SecLog.LogWebSocketConnected(c.ClientIP(), clientName)

	client := &services.ClientConnection{
		ID:   fmt.Sprintf("%s-%s-%d", c.ClientIP(), clientName, connectionSeq.Add(1)),
		Conn: ws,
		Send: make(chan services.WebSocketMessage, 16),
	}

	// New clients get the current state right away instead of waiting a tick
	if snap, ok := h.Sampler.Latest(); ok {
		if msg, err := services.SnapshotMessage(snap); err == nil {
			client.Send <- msg
		}
	}

	if !h.Hub.Register(client) {
		ws.SetWriteDeadline(time.Now().Add(writeWait))
		closeMsg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down")
		if err := ws.WriteMessage(websocket.CloseMessage, closeMsg); err != nil {
			log.Printf("[WS] Close error: %v", err)
		}
		ws.Close()
		return
	}

	go readPump(client, h.Hub)
	go writePump(client)
}

// readPump reads messages from the WebSocket client
func readPump(client *services.ClientConnection, hub *services.WebSocketHub) {
	defer func() {
		hub.Unregister(client.ID)
		client.Conn.Close()
	}()

	for {
		var msg services.WebSocketMessage
		if err := client.Conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] WebSocket error: %v", err)
			}
			return
		}

		switch msg.Type {
		case "ping":
			hub.SendTo(client.ID, services.WebSocketMessage{Type: "pong", Timestamp: time.Now()})

		case "unsubscribe":
			return

		default:
			log.Printf("[WS] Unknown message type: %s", msg.Type)
		}
	}
}

// writePump writes messages to the WebSocket client until its send channel closes
func writePump(client *services.ClientConnection) {
	defer client.Conn.Close()

	for msg := range client.Send {
		client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.Conn.WriteJSON(msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] Write error: %v", err)
			}
			return
		}
	}

	client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
