package routes

import (
	"netbar/internal/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes registers the snapshot stream.
// Tokens are issued via the CLI (no HTTP endpoint).
func RegisterWebSocketRoutes(r gin.IRouter, h *controllers.Handler) {
	r.GET("/ws", h.HandleWebSocket)
}
