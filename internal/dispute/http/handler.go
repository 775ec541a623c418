package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/auth"
	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/dispute"
	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/pkg/request"
	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/pkg/response"
)

type DisputeHandler struct {
	disputeService dispute.Service
}

func NewHandler(disputeService dispute.Service) *DisputeHandler {
	return &DisputeHandler{disputeService: disputeService}
}

// Create opens a dispute against a booking. Customers dispute their own
// bookings; admins may file on a customer's behalf.
func (h *DisputeHandler) Create(c *gin.Context) {
	var req CreateDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	d, err := h.disputeService.Create(c.Request.Context(), auth.GetPrincipal(c), dispute.CreateRequest{
		BookingID:   req.BookingID,
		CustomerID:  req.CustomerID,
		Subject:     req.Subject,
		Description: req.Description,
		Priority:    dispute.Priority(req.Priority),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewDisputeResponse(d))
}

// Get retrieves a single dispute. Participants and admins only.
func (h *DisputeHandler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	d, err := h.disputeService.GetByID(c.Request.Context(), auth.GetPrincipal(c), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewDisputeResponse(d))
}

// List retrieves a paginated list of disputes visible to the caller.
func (h *DisputeHandler) List(c *gin.Context) {
	var req ListDisputesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := dispute.Filter{
		BookingID: req.BookingID,
		Status:    req.Status,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}

	disputes, total, err := h.disputeService.List(c.Request.Context(), auth.GetPrincipal(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]DisputeResponse, len(disputes))
	for i, d := range disputes {
		items[i] = NewDisputeResponse(d)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// UpdateStatus advances a dispute's lifecycle. Providers act on disputes
// against their own bookings; admins may set any status.
func (h *DisputeHandler) UpdateStatus(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateDisputeStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "details": err.Error()})
		return
	}

	status, ok := dispute.NormalizeStatus(body.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dispute status"})
		return
	}

	d, err := h.disputeService.UpdateStatus(c.Request.Context(), auth.GetPrincipal(c), uri.ID, dispute.UpdateStatusRequest{
		Status:       status,
		Resolution:   body.Resolution,
		RefundAmount: body.RefundAmount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewDisputeResponse(d))
}
