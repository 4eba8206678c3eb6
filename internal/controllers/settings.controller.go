package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"netbar/internal/services"
)

// GetSettings returns the current display settings
func (h *Handler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.Settings.Current())
}

// UpdateSettings applies a partial settings update; the next tick renders with it
func (h *Handler) UpdateSettings(c *gin.Context) {
	var patch services.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	settings, err := h.Settings.Update(patch)
	if errors.Is(err, services.ErrInvalidSettings) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		log.Printf("[SETTINGS] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "settings applied but not saved"})
		return
	}

	c.JSON(http.StatusOK, settings)
}
