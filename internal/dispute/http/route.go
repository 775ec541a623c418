package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all dispute routes.
func RegisterRoutes(g *gin.RouterGroup, h *DisputeHandler, authMiddleware gin.HandlerFunc) {
	disputes := g.Group("/disputes")
	disputes.Use(authMiddleware)
	{
		disputes.GET("", h.List)
		disputes.GET("/:id", h.Get)
		disputes.POST("", h.Create)
		disputes.PATCH("/:id/status", h.UpdateStatus)
	}
}
