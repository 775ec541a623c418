package booking

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/auth"
	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/listing"
	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/pkg/logging"
	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/realtime"
)

// CreateRequest carries the fields for a new booking.
// CustomerID is only honored for admin actors booking on a customer's behalf.
type CreateRequest struct {
	ServiceID   string
	CustomerID  string
	Date        time.Time
	StartTime   string
	EndTime     *string
	Duration    *int
	TotalAmount float64
	Commission  *float64
	Notes       *string
}

// Service defines booking business logic. Every operation takes the acting
// principal explicitly; there is no ambient session state.
type Service interface {
	Create(ctx context.Context, actor auth.Principal, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, actor auth.Principal, id string) (*Booking, error)
	List(ctx context.Context, actor auth.Principal, filter Filter) ([]*Booking, int, error)

	// UpdateStatus enforces the role/status transition policy as a hard
	// invariant and writes with an optimistic-concurrency token. ErrConflict
	// means the booking changed underneath the caller: refetch and retry.
	UpdateStatus(ctx context.Context, actor auth.Principal, id string, newStatus Status) (*Booking, error)

	UpdatePaymentStatus(ctx context.Context, actor auth.Principal, id string, status PaymentStatus) (*Booking, error)
}

type service struct {
	repo     Repository
	listings listing.Service
	feed     *realtime.Feed
	log      zerolog.Logger
}

// NewService creates a new booking Service.
func NewService(repo Repository, listings listing.Service, feed *realtime.Feed) Service {
	return &service{
		repo:     repo,
		listings: listings,
		feed:     feed,
		log:      logging.Component("booking"),
	}
}

func (s *service) Create(ctx context.Context, actor auth.Principal, req CreateRequest) (*Booking, error) {
	// Customers book for themselves; admins may book on behalf of a customer.
	customerID := actor.UserID
	switch actor.Role {
	case auth.RoleCustomer:
	case auth.RoleAdmin:
		if req.CustomerID != "" {
			customerID = req.CustomerID
		}
	default:
		return nil, ErrPermissionDenied
	}

	if req.Date.IsZero() {
		return nil, ErrInvalidDate
	}
	if req.TotalAmount <= 0 {
		return nil, ErrInvalidAmount
	}

	// Commission defaults to 10% of the total when not supplied.
	commission := req.TotalAmount * DefaultCommissionRate
	if req.Commission != nil {
		commission = *req.Commission
	}
	if commission > req.TotalAmount {
		return nil, ErrCommissionTooLarge
	}

	// The provider comes from the service listing, never from the caller.
	l, err := s.listings.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, listing.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	b := &Booking{
		ServiceID:     req.ServiceID,
		CustomerID:    customerID,
		ProviderID:    l.ProviderID,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Duration:      req.Duration,
		Status:        StatusPending,
		PaymentStatus: PaymentPending,
		TotalAmount:   req.TotalAmount,
		Commission:    commission,
		Notes:         req.Notes,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.publish(ctx, realtime.EventInsert, b, nil)
	return b, nil
}

func (s *service) GetByID(ctx context.Context, actor auth.Principal, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.canView(actor, b) {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func (s *service) List(ctx context.Context, actor auth.Principal, filter Filter) ([]*Booking, int, error) {
	// Role-based visibility: customers and providers are forced onto their
	// own bookings; admins see everything and may filter freely.
	switch actor.Role {
	case auth.RoleCustomer:
		filter.CustomerID = actor.UserID
		filter.ProviderID = ""
	case auth.RoleProvider:
		filter.ProviderID = actor.UserID
		filter.CustomerID = ""
	case auth.RoleAdmin:
	default:
		return nil, 0, ErrPermissionDenied
	}

	return s.repo.List(ctx, filter)
}

func (s *service) UpdateStatus(ctx context.Context, actor auth.Principal, id string, newStatus Status) (*Booking, error) {
	if !ValidStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Providers and customers may only touch their own bookings.
	switch actor.Role {
	case auth.RoleProvider:
		if b.ProviderID != actor.UserID {
			return nil, ErrPermissionDenied
		}
	case auth.RoleCustomer:
		if b.CustomerID != actor.UserID {
			return nil, ErrPermissionDenied
		}
	case auth.RoleAdmin:
	default:
		return nil, ErrPermissionDenied
	}

	// Hard policy check: the transition table is an invariant here, not a
	// UI hint. Admins pass for any pair by construction.
	if !CanTransition(actor.Role, b.Status, newStatus) {
		return nil, ErrTransitionNotAllowed
	}

	old := *b

	updated, err := s.repo.UpdateStatus(ctx, id, newStatus, b.UpdatedAt)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, realtime.EventUpdate, updated, &old)
	return updated, nil
}

func (s *service) UpdatePaymentStatus(ctx context.Context, actor auth.Principal, id string, status PaymentStatus) (*Booking, error) {
	if !actor.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	old := *b

	updated, err := s.repo.UpdatePaymentStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, realtime.EventUpdate, updated, &old)
	return updated, nil
}

func (s *service) canView(actor auth.Principal, b *Booking) bool {
	switch actor.Role {
	case auth.RoleAdmin:
		return true
	case auth.RoleCustomer:
		return b.CustomerID == actor.UserID
	case auth.RoleProvider:
		return b.ProviderID == actor.UserID
	}
	return false
}

// publish emits a change event; failures are logged, never surfaced, since
// the change feed is advisory and the write has already been committed.
func (s *service) publish(ctx context.Context, eventType realtime.EventType, newRow, oldRow *Booking) {
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
		s.log.Warn().Err(err).Str("event", string(eventType)).Msg("failed to publish booking change event")
	}
}
