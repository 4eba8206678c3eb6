package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// placeholderText is shown until the first tick publishes
const placeholderText = "..."

// GetTraffic returns the latest published snapshot
func (h *Handler) GetTraffic(c *gin.Context) {
	snap, ok := h.Sampler.Latest()
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"ready": false,
			"text":  placeholderText,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ready":    true,
		"text":     snap.Text,
		"snapshot": snap,
	})
}

// GetSystem returns the latest host usage reading
func (h *Handler) GetSystem(c *gin.Context) {
	if h.Stats == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "system stats disabled"})
		return
	}

	stats, ok := h.Stats.Latest()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "system stats not collected yet"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
