package controllers

import (
	"time"

	"github.com/gorilla/websocket"

	"netbar/internal/middleware"
	"netbar/internal/models"
	"netbar/internal/services"
)

// SnapshotSource is the read side of the sampler
type SnapshotSource interface {
	Latest() (models.Snapshot, bool)
	SessionStart() time.Time
}

// Handler carries the services every controller reads from
type Handler struct {
	Sampler  SnapshotSource
	Stats    services.StatsReader
	Settings *services.SettingsStore
	Hub      *services.WebSocketHub
	Issuer   *services.TokenIssuer // nil disables WebSocket authentication
	SecLog   *middleware.SecurityLogger
	Upgrader websocket.Upgrader
	Now      func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}
