package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/auth"
	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/booking"
	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/pkg/request"
	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/pkg/response"
)

type BookingHandler struct {
	bookingService booking.Service
}

func NewHandler(bookingService booking.Service) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// Create creates a booking for the calling customer (or, for admins, on
// behalf of the customer named in the payload).
func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	b, err := h.bookingService.Create(c.Request.Context(), auth.GetPrincipal(c), booking.CreateRequest{
		ServiceID:   req.ServiceID,
		CustomerID:  req.CustomerID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Duration:    req.Duration,
		TotalAmount: req.TotalAmount,
		Commission:  req.Commission,
		Notes:       req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// Get retrieves a single booking. Participants and admins only.
func (h *BookingHandler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	b, err := h.bookingService.GetByID(c.Request.Context(), auth.GetPrincipal(c), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// List retrieves a paginated list of bookings visible to the caller.
func (h *BookingHandler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := booking.Filter{
		CustomerID: req.CustomerID,
		ProviderID: req.ProviderID,
		Status:     req.Status,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}

	bookings, total, err := h.bookingService.List(c.Request.Context(), auth.GetPrincipal(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// UpdateStatus advances a booking through its lifecycle. The transition is
// validated against the caller's role; a 409 means the booking changed
// concurrently and the client should refetch and retry.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "details": err.Error()})
		return
	}

	b, err := h.bookingService.UpdateStatus(c.Request.Context(), auth.GetPrincipal(c), uri.ID, booking.Status(body.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// UpdatePaymentStatus sets a booking's payment status. Admin only.
func (h *BookingHandler) UpdatePaymentStatus(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "details": err.Error()})
		return
	}

	b, err := h.bookingService.UpdatePaymentStatus(c.Request.Context(), auth.GetPrincipal(c), uri.ID, booking.PaymentStatus(body.PaymentStatus))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// Transitions returns the statuses the caller may move the booking to from
// its current status. An empty list means no action is available.
func (h *BookingHandler) Transitions(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	p := auth.GetPrincipal(c)

	b, err := h.bookingService.GetByID(c.Request.Context(), p, req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	allowed := booking.AllowedTransitions(p.Role, b.Status)
	transitions := make([]string, len(allowed))
	for i, s := range allowed {
		transitions[i] = string(s)
	}

	c.JSON(http.StatusOK, TransitionsResponse{
		Status:      string(b.Status),
		Transitions: transitions,
	})
}
