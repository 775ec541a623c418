package listing

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/auth"
	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/pkg/logging"
	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/realtime"
)

// CreateRequest carries the fields for a new service listing.
type CreateRequest struct {
	Title       string
	Description string
	Price       float64
	Category    string
	ImageURL    *string
}

// UpdateRequest carries optional fields for updating a listing.
type UpdateRequest struct {
	Title       *string
	Description *string
	Price       *float64
	Category    *string
	ImageURL    *string
	IsActive    *bool
}

// Service defines business logic for service listings.
type Service interface {
	Create(ctx context.Context, actor auth.Principal, req CreateRequest) (*Listing, error)
	GetByID(ctx context.Context, id string) (*Listing, error)
	List(ctx context.Context, actor auth.Principal, filter Filter) ([]*Listing, int, error)
	Update(ctx context.Context, actor auth.Principal, id string, req UpdateRequest) (*Listing, error)
	Delete(ctx context.Context, actor auth.Principal, id string) error
}

type service struct {
	repo Repository
	feed *realtime.Feed
	log  zerolog.Logger
}

// NewService creates a new listing Service.
func NewService(repo Repository, feed *realtime.Feed) Service {
	return &service{
		repo: repo,
		feed: feed,
		log:  logging.Component("listing"),
	}
}

func (s *service) Create(ctx context.Context, actor auth.Principal, req CreateRequest) (*Listing, error) {
	// Only providers own listings; admins cannot create on behalf here.
	if actor.Role != auth.RoleProvider {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}
	if req.Price <= 0 {
		return nil, ErrInvalidPrice
	}

	l := &Listing{
		ProviderID:  actor.UserID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	s.publish(ctx, realtime.EventInsert, l, nil)
	return l, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Listing, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, actor auth.Principal, filter Filter) ([]*Listing, int, error) {
	// Customers only see active listings; providers and admins see all
	// matching the filter.
	if actor.Role == auth.RoleCustomer {
		active := true
		filter.IsActive = &active
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, actor auth.Principal, id string, req UpdateRequest) (*Listing, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && l.ProviderID != actor.UserID {
		return nil, ErrPermissionDenied
	}

	old := *l

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrTitleRequired
		}
		l.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, ErrInvalidPrice
		}
		l.Price = *req.Price
	}
	if req.Category != nil {
		l.Category = *req.Category
	}
	if req.ImageURL != nil {
		l.ImageURL = req.ImageURL
	}
	if req.IsActive != nil {
		l.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}

	s.publish(ctx, realtime.EventUpdate, l, &old)
	return l, nil
}

func (s *service) Delete(ctx context.Context, actor auth.Principal, id string) error {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !actor.IsAdmin() && l.ProviderID != actor.UserID {
		return ErrPermissionDenied
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, realtime.EventDelete, nil, l)
	return nil
}

// publish emits a change event; failures are logged, never surfaced, since
// the change feed is advisory and the write has already been committed.
func (s *service) publish(ctx context.Context, eventType realtime.EventType, newRow, oldRow *Listing) {
	if s.feed == nil {
		return
	}

	event := realtime.ChangeEvent{EventType: eventType, Table: Table}
	if newRow != nil {
		if data, err := json.Marshal(newRow); err == nil {
			event.New = data
		}
	}
	if oldRow != nil {
		if data, err := json.Marshal(oldRow); err == nil {
			event.Old = data
		}
	}

	if err := s.feed.Publish(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("event", string(eventType)).Msg("failed to publish service change event")
	}
}
