package http

import (
	"time"

	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/dispute"
	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/pkg/request"
)

// CreateDisputeRequest defines the payload for opening a dispute.
// CustomerID is only honored when the caller is an admin.
type CreateDisputeRequest struct {
	BookingID   string `json:"booking_id" binding:"required,uuid"`
	CustomerID  string `json:"customer_id" binding:"omitempty,uuid"`
	Subject     string `json:"subject" binding:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high"`
}

// UpdateDisputeStatusRequest defines the payload for advancing a dispute.
// Legacy status spellings (under_review, declined) are accepted.
type UpdateDisputeStatusRequest struct {
	Status       string   `json:"status" binding:"required"`
	Resolution   *string  `json:"resolution"`
	RefundAmount *float64 `json:"refund_amount" binding:"omitempty,gte=0"`
}

// ListDisputesRequest defines query parameters for listing disputes.
type ListDisputesRequest struct {
	request.ListParams
	BookingID string `form:"booking_id" binding:"omitempty,uuid"`
	Status    string `form:"status"`
}

// DisputeResponse is the shape of dispute data in API responses.
type DisputeResponse struct {
	ID           string    `json:"id"`
	BookingID    string    `json:"booking_id"`
	CustomerID   string    `json:"customer_id"`
	ProviderID   string    `json:"provider_id"`
	Subject      string    `json:"subject"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	Priority     string    `json:"priority"`
	Resolution   *string   `json:"resolution"`
	RefundAmount *float64  `json:"refund_amount"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewDisputeResponse converts a domain dispute.Dispute to its API shape.
func NewDisputeResponse(d *dispute.Dispute) DisputeResponse {
	return DisputeResponse{
		ID:           d.ID,
		BookingID:    d.BookingID,
		CustomerID:   d.CustomerID,
		ProviderID:   d.ProviderID,
		Subject:      d.Subject,
		Description:  d.Description,
		Status:       string(d.Status),
		Priority:     string(d.Priority),
		Resolution:   d.Resolution,
		RefundAmount: d.RefundAmount,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
