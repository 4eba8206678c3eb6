package routes

import (
	"netbar/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterTrafficRoutes(r gin.IRouter, h *controllers.Handler) {
	traffic := r.Group("/traffic")
	{
		traffic.GET("", h.GetTraffic)
		traffic.GET("/history", h.GetTrafficHistory)
		traffic.GET("/summary", h.GetTrafficSummary)
	}

	r.GET("/system", h.GetSystem)
}

func RegisterSettingsRoutes(r gin.IRouter, h *controllers.Handler) {
	settings := r.Group("/settings")
	{
		settings.GET("", h.GetSettings)
		settings.PUT("", h.UpdateSettings)
	}
}
