package http

import (
	"time"

	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/listing"
	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/pkg/request"
)

// CreateServiceRequest defines the payload for creating a service listing.
type CreateServiceRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Category    string  `json:"category"`
	ImageURL    *string `json:"image_url"`
}

// UpdateServiceRequest defines fields editable via PATCH /services/:id.
// Pointers distinguish between "field not sent" and "field sent as zero".
type UpdateServiceRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	Category    *string  `json:"category"`
	ImageURL    *string  `json:"image_url"`
	IsActive    *bool    `json:"is_active"`
}

// ListServicesRequest defines query parameters for listing services.
type ListServicesRequest struct {
	request.ListParams
	ProviderID string `form:"provider_id" binding:"omitempty,uuid"`
	Category   string `form:"category"`
	IsActive   *bool  `form:"is_active"`
}

// ServiceResponse is the shape of service listing data in API responses.
type ServiceResponse struct {
	ID           string    `json:"id"`
	ProviderID   string    `json:"provider_id"`
	ProviderName string    `json:"provider_name"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Category     string    `json:"category"`
	ImageURL     *string   `json:"image_url"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewServiceResponse converts a domain listing.Listing to its API shape.
func NewServiceResponse(l *listing.Listing) ServiceResponse {
	return ServiceResponse{
		ID:           l.ID,
		ProviderID:   l.ProviderID,
		ProviderName: l.ProviderName,
		Title:        l.Title,
		Description:  l.Description,
		Price:        l.Price,
		Category:     l.Category,
		ImageURL:     l.ImageURL,
		IsActive:     l.IsActive,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}
