package dispute

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/auth"
	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/booking"
	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/pkg/logging"
	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/realtime"
)

// CreateRequest carries the fields for opening a dispute.
// CustomerID is only honored for admin actors filing on a customer's behalf.
type CreateRequest struct {
	BookingID   string
	CustomerID  string
	Subject     string
	Description string
	Priority    Priority
}

// UpdateStatusRequest advances a dispute's lifecycle. Resolution and
// RefundAmount are recorded alongside the status when provided.
type UpdateStatusRequest struct {
	Status       Status
	Resolution   *string
	RefundAmount *float64
}

// Service defines dispute business logic. Transition authorization:
// only the booking's customer (or an admin) may create; only the booking's
// provider (or an admin) may advance the status past pending.
type Service interface {
	Create(ctx context.Context, actor auth.Principal, req CreateRequest) (*Dispute, error)
	GetByID(ctx context.Context, actor auth.Principal, id string) (*Dispute, error)
	List(ctx context.Context, actor auth.Principal, filter Filter) ([]*Dispute, int, error)
	UpdateStatus(ctx context.Context, actor auth.Principal, id string, req UpdateStatusRequest) (*Dispute, error)
}

type service struct {
	repo     Repository
	bookings booking.Service
	feed     *realtime.Feed
	log      zerolog.Logger
}

// NewService creates a new dispute Service.
func NewService(repo Repository, bookings booking.Service, feed *realtime.Feed) Service {
	return &service{
		repo:     repo,
		bookings: bookings,
		feed:     feed,
		log:      logging.Component("dispute"),
	}
}

func (s *service) Create(ctx context.Context, actor auth.Principal, req CreateRequest) (*Dispute, error) {
	if actor.Role != auth.RoleCustomer && actor.Role != auth.RoleAdmin {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(req.Subject) == "" {
		return nil, ErrSubjectRequired
	}

	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.Valid() {
		return nil, ErrInvalidStatus
	}

	// The booking lookup doubles as the authorization check: a customer can
	// only fetch their own booking, so a dispute on someone else's booking
	// fails here with permission denied.
	b, err := s.bookings.GetByID(ctx, actor, req.BookingID)
	if err != nil {
		if err == booking.ErrNotFound {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	customerID := b.CustomerID
	if actor.Role == auth.RoleAdmin && req.CustomerID != "" && req.CustomerID != b.CustomerID {
		return nil, ErrPermissionDenied
	}

	d := &Dispute{
		BookingID:   b.ID,
		CustomerID:  customerID,
		ProviderID:  b.ProviderID,
		Subject:     strings.TrimSpace(req.Subject),
		Description: req.Description,
		Status:      StatusPending,
		Priority:    priority,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}

	s.publish(ctx, realtime.EventInsert, d, nil)
	return d, nil
}

func (s *service) GetByID(ctx context.Context, actor auth.Principal, id string) (*Dispute, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.canView(actor, d) {
		return nil, ErrPermissionDenied
	}
	return d, nil
}

func (s *service) List(ctx context.Context, actor auth.Principal, filter Filter) ([]*Dispute, int, error) {
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

func (s *service) UpdateStatus(ctx context.Context, actor auth.Principal, id string, req UpdateStatusRequest) (*Dispute, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Customers never advance a dispute; providers only on their own bookings.
	switch actor.Role {
	case auth.RoleAdmin:
	case auth.RoleProvider:
		if d.ProviderID != actor.UserID {
			return nil, ErrPermissionDenied
		}
	default:
		return nil, ErrPermissionDenied
	}

	if !actor.IsAdmin() && !CanTransition(d.Status, req.Status) {
		return nil, ErrTransitionNotAllowed
	}

	if req.RefundAmount != nil && *req.RefundAmount < 0 {
		return nil, ErrInvalidRefund
	}

	old := *d

	d.Status = req.Status
	if req.Resolution != nil {
		d.Resolution = req.Resolution
	}
	if req.RefundAmount != nil {
		d.RefundAmount = req.RefundAmount
	}

	// Resolving a dispute deliberately does not touch the parent booking's
	// status; clearing a booking's "disputed" state stays an admin action.
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}

	s.publish(ctx, realtime.EventUpdate, d, &old)
	return d, nil
}

func (s *service) canView(actor auth.Principal, d *Dispute) bool {
	switch actor.Role {
	case auth.RoleAdmin:
		return true
	case auth.RoleCustomer:
		return d.CustomerID == actor.UserID
	case auth.RoleProvider:
		return d.ProviderID == actor.UserID
	}
	return false
}

// publish emits a change event; failures are logged, never surfaced.
func (s *service) publish(ctx context.Context, eventType realtime.EventType, newRow, oldRow *Dispute) {
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
		s.log.Warn().Err(err).Str("event", string(eventType)).Msg("failed to publish dispute change event")
	}
}
