package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"netbar/internal/models"
	"netbar/internal/services"
)

// GetTrafficHistory returns the download, upload and total rate histories
func (h *Handler) GetTrafficHistory(c *gin.Context) {
	history := models.TrafficHistory{
		Download:     []float64{},
		Upload:       []float64{},
		TotalTraffic: []float64{},
	}
	iface := ""
	if snap, ok := h.Sampler.Latest(); ok {
		history = snap.History
		iface = snap.Interface
	}

	c.JSON(http.StatusOK, gin.H{
		"interface": iface,
		"capacity":  services.HistoryCapacity,
		"history":   history,
	})
}

// GetTrafficSummary returns formatted session totals and uptime
func (h *Handler) GetTrafficSummary(c *gin.Context) {
	snap, _ := h.Sampler.Latest()
	sessionStart := h.Sampler.SessionStart()

	c.JSON(http.StatusOK, gin.H{
		"interface":     snap.Interface,
		"download":      joinTotal(services.FormatTotal(snap.TotalDownload)),
		"upload":        joinTotal(services.FormatTotal(snap.TotalUpload)),
		"total":         joinTotal(services.FormatTotal(snap.TotalDownload + snap.TotalUpload)),
		"session_start": sessionStart,
		"uptime":        services.FormatUptime(h.now().Sub(sessionStart)),
	})
}

func joinTotal(value, unit string) string {
	return value + " " + unit
}
