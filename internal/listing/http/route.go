package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all service listing routes.
func RegisterRoutes(g *gin.RouterGroup, h *ServiceHandler, authMiddleware gin.HandlerFunc) {
	services := g.Group("/services")
	services.Use(authMiddleware)
	{
		services.GET("", h.List)
		services.GET("/:id", h.Get)
		services.POST("", h.Create)
		services.PATCH("/:id", h.Update)
		services.DELETE("/:id", h.Delete)
	}
}
