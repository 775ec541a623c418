package booking

import (
	"net/http"
	"time"

	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/pkg/apperror"
)

var (
	ErrNotFound             = apperror.New(http.StatusNotFound, "booking not found")
	ErrServiceNotFound      = apperror.New(http.StatusNotFound, "service not found")
	ErrPermissionDenied     = apperror.New(http.StatusForbidden, "permission denied")
	ErrTransitionNotAllowed = apperror.New(http.StatusForbidden, "status transition not allowed for this role")
	ErrConflict             = apperror.New(http.StatusConflict, "booking was modified concurrently, refetch and retry")
	ErrInvalidStatus        = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrInvalidAmount        = apperror.New(http.StatusBadRequest, "total amount must be greater than zero")
	ErrCommissionTooLarge   = apperror.New(http.StatusBadRequest, "commission cannot exceed total amount")
	ErrInvalidDate          = apperror.New(http.StatusBadRequest, "booking date is required")
)

// Table is the change-feed table name for bookings.
const Table = "bookings"

// Status is the booking lifecycle status.
type Status string

const (
	StatusPending     Status = "pending"
	StatusConfirmed   Status = "confirmed"
	StatusInProgress  Status = "in_progress"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusRejected    Status = "rejected"
	StatusNoShow      Status = "no_show"
	StatusRescheduled Status = "rescheduled"
	StatusDisputed    Status = "disputed"
)

// PaymentStatus tracks the payment lifecycle independently of the booking status.
type PaymentStatus string

const (
	PaymentPending           PaymentStatus = "pending"
	PaymentProcessing        PaymentStatus = "processing"
	PaymentCompleted         PaymentStatus = "completed"
	PaymentFailed            PaymentStatus = "failed"
	PaymentRefunded          PaymentStatus = "refunded"
	PaymentCancelled         PaymentStatus = "cancelled"
	PaymentPartiallyRefunded PaymentStatus = "partially_refunded"
)

// Valid reports whether the payment status is one of the known values.
func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPending, PaymentProcessing, PaymentCompleted, PaymentFailed,
		PaymentRefunded, PaymentCancelled, PaymentPartiallyRefunded:
		return true
	}
	return false
}

// DefaultCommissionRate is applied when a booking is created without an
// explicit commission.
const DefaultCommissionRate = 0.10

// Booking is a scheduled engagement between a customer and a provider for a service.
// The display fields (ServiceTitle, names) are join-enriched on read and fall
// back to placeholder strings when the referenced row is missing.
type Booking struct {
	ID            string        `json:"id"`
	ServiceID     string        `json:"service_id"`
	CustomerID    string        `json:"customer_id"`
	ProviderID    string        `json:"provider_id"`
	ServiceTitle  string        `json:"service_title"`
	ServiceImage  string        `json:"service_image"`
	CustomerName  string        `json:"customer_name"`
	ProviderName  string        `json:"provider_name"`
	Date          time.Time     `json:"date"`
	StartTime     string        `json:"start_time"`
	EndTime       *string       `json:"end_time,omitempty"`
	Duration      *int          `json:"duration,omitempty"`
	Status        Status        `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	TotalAmount   float64       `json:"total_amount"`
	Commission    float64       `json:"commission"`
	Notes         *string       `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Filter defines filter options for listing bookings.
type Filter struct {
	CustomerID string
	ProviderID string
	Status     string
	Page       int
	PageSize   int
}
