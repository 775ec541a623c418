package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all booking routes. Every route requires auth;
// visibility and transition rules are enforced by the service layer.
func RegisterRoutes(g *gin.RouterGroup, h *BookingHandler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	bookings := g.Group("/bookings")
	bookings.Use(authMiddleware)
	{
		bookings.GET("", h.List)
		bookings.GET("/:id", h.Get)
		bookings.GET("/:id/transitions", h.Transitions)
		bookings.POST("", h.Create)
		bookings.PATCH("/:id/status", h.UpdateStatus)
		bookings.PATCH("/:id/payment-status", adminMiddleware, h.UpdatePaymentStatus)
	}
}
