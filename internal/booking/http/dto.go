package http

import (
	"time"

	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/booking"
	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/pkg/request"
)

// CreateBookingRequest defines the payload for creating a booking.
// CustomerID is only honored when the caller is an admin.
type CreateBookingRequest struct {
	ServiceID   string    `json:"service_id" binding:"required,uuid"`
	CustomerID  string    `json:"customer_id" binding:"omitempty,uuid"`
	Date        time.Time `json:"date" binding:"required"`
	StartTime   string    `json:"start_time" binding:"required"`
	EndTime     *string   `json:"end_time"`
	Duration    *int      `json:"duration" binding:"omitempty,gt=0"`
	TotalAmount float64   `json:"total_amount" binding:"required,gt=0"`
	Commission  *float64  `json:"commission" binding:"omitempty,gte=0"`
	Notes       *string   `json:"notes"`
}

// UpdateStatusRequest defines the payload for a booking status change.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdatePaymentStatusRequest defines the payload for a payment status change.
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// ListBookingsRequest defines query parameters for listing bookings.
// Customer/provider filters only apply to admin callers; other roles are
// scoped to their own bookings.
type ListBookingsRequest struct {
	request.ListParams
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	ProviderID string `form:"provider_id" binding:"omitempty,uuid"`
	Status     string `form:"status"`
}

// BookingResponse is the shape of booking data in API responses.
type BookingResponse struct {
	ID            string    `json:"id"`
	ServiceID     string    `json:"service_id"`
	CustomerID    string    `json:"customer_id"`
	ProviderID    string    `json:"provider_id"`
	ServiceTitle  string    `json:"service_title"`
	ServiceImage  string    `json:"service_image"`
	CustomerName  string    `json:"customer_name"`
	ProviderName  string    `json:"provider_name"`
	Date          time.Time `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       *string   `json:"end_time"`
	Duration      *int      `json:"duration"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	TotalAmount   float64   `json:"total_amount"`
	Commission    float64   `json:"commission"`
	Notes         *string   `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewBookingResponse converts a domain booking.Booking to its API shape.
func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		ServiceID:     b.ServiceID,
		CustomerID:    b.CustomerID,
		ProviderID:    b.ProviderID,
		ServiceTitle:  b.ServiceTitle,
		ServiceImage:  b.ServiceImage,
		CustomerName:  b.CustomerName,
		ProviderName:  b.ProviderName,
		Date:          b.Date,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Duration:      b.Duration,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		TotalAmount:   b.TotalAmount,
		Commission:    b.Commission,
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// TransitionsResponse lists the statuses a booking may move to from its
// current status, for the calling role. Used by clients to render actions.
type TransitionsResponse struct {
	Status      string   `json:"status"`
	Transitions []string `json:"transitions"`
}
