package listing

import (
	"net/http"
	"time"

	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "service not found")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrInvalidPrice     = apperror.New(http.StatusBadRequest, "price must be greater than zero")
	ErrTitleRequired    = apperror.New(http.StatusBadRequest, "title is required")
)

// Table is the change-feed table name for service listings.
const Table = "services"

// Listing is a service offered by a provider on the marketplace.
type Listing struct {
	ID           string    `json:"id"`
	ProviderID   string    `json:"provider_id"`
	ProviderName string    `json:"provider_name"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Category     string    `json:"category"`
	ImageURL     *string   `json:"image_url,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Filter defines filter options for listing services.
type Filter struct {
	ProviderID string
	Category   string
	IsActive   *bool
	Page       int
	PageSize   int
}
