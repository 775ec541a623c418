package dispute

import (
	"net/http"
	"time"

	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/pkg/apperror"
)

var (
	ErrNotFound             = apperror.New(http.StatusNotFound, "dispute not found")
	ErrBookingNotFound      = apperror.New(http.StatusNotFound, "booking not found")
	ErrPermissionDenied     = apperror.New(http.StatusForbidden, "permission denied")
	ErrTransitionNotAllowed = apperror.New(http.StatusForbidden, "dispute status transition not allowed")
	ErrInvalidStatus        = apperror.New(http.StatusBadRequest, "invalid dispute status")
	ErrSubjectRequired      = apperror.New(http.StatusBadRequest, "subject is required")
	ErrInvalidRefund        = apperror.New(http.StatusBadRequest, "refund amount cannot be negative")
)

// Table is the change-feed table name for disputes.
const Table = "disputes"

// Status is the dispute lifecycle status.
// pending is initial; resolved and rejected are terminal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusInReview Status = "in_review"
	StatusResolved Status = "resolved"
	StatusRejected Status = "rejected"
)

// NormalizeStatus maps accepted aliases onto canonical statuses.
// "under_review" and "declined" are legacy spellings seen in client payloads.
func NormalizeStatus(s string) (Status, bool) {
	switch s {
	case "pending":
		return StatusPending, true
	case "in_review", "under_review":
		return StatusInReview, true
	case "resolved":
		return StatusResolved, true
	case "rejected", "declined":
		return StatusRejected, true
	}
	return "", false
}

// Priority indicates how urgently a dispute should be handled.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether the priority is one of the known values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Dispute is a customer-initiated complaint tied to a booking, with its own
// resolution lifecycle independent of the booking's status.
type Dispute struct {
	ID           string    `json:"id"`
	BookingID    string    `json:"booking_id"`
	CustomerID   string    `json:"customer_id"`
	ProviderID   string    `json:"provider_id"`
	Subject      string    `json:"subject"`
	Description  string    `json:"description"`
	Status       Status    `json:"status"`
	Priority     Priority  `json:"priority"`
	Resolution   *string   `json:"resolution,omitempty"`
	RefundAmount *float64  `json:"refund_amount,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Filter defines filter options for listing disputes.
type Filter struct {
	BookingID  string
	CustomerID string
	ProviderID string
	Status     string
	Page       int
	PageSize   int
}
