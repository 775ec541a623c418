package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers file routes.
func RegisterRoutes(g *gin.RouterGroup, h *FileHandler, authMiddleware gin.HandlerFunc) {
	files := g.Group("/files")
	files.Use(authMiddleware)
	{
		files.POST("", h.Upload)
		files.GET("/:id", h.ServeFile)
		files.GET("/:id/thumbnail", h.ServeThumbnail)
		files.DELETE("/:id", h.Delete)
	}
}
