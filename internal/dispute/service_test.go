package dispute

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/auth"
	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/booking"
)

type fakeRepository struct {
	disputes   map[string]*Dispute
	lastFilter Filter
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{disputes: map[string]*Dispute{}}
}

func (r *fakeRepository) Create(ctx context.Context, d *Dispute) error {
	d.ID = "dispute-" + string(rune('a'+len(r.disputes)))
	d.CreatedAt = time.Now().UTC()
	d.UpdatedAt = d.CreatedAt
	cp := *d
	r.disputes[d.ID] = &cp
	return nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id string) (*Dispute, error) {
	d, ok := r.disputes[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *fakeRepository) List(ctx context.Context, filter Filter) ([]*Dispute, int, error) {
	r.lastFilter = filter
	var out []*Dispute
	for _, d := range r.disputes {
		cp := *d
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeRepository) Update(ctx context.Context, d *Dispute) error {
	stored, ok := r.disputes[d.ID]
	if !ok {
		return ErrNotFound
	}
	*stored = *d
	stored.UpdatedAt = time.Now().UTC()
	d.UpdatedAt = stored.UpdatedAt
	return nil
}

// fakeBookingService mimics the visibility rule of the real booking service:
// customers and providers only see their own bookings.
type fakeBookingService struct {
	bookings map[string]*booking.Booking
}

func (s *fakeBookingService) Create(ctx context.Context, actor auth.Principal, req booking.CreateRequest) (*booking.Booking, error) {
	panic("not used")
}

func (s *fakeBookingService) GetByID(ctx context.Context, actor auth.Principal, id string) (*booking.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	switch actor.Role {
	case auth.RoleAdmin:
	case auth.RoleCustomer:
		if b.CustomerID != actor.UserID {
			return nil, booking.ErrPermissionDenied
		}
	case auth.RoleProvider:
		if b.ProviderID != actor.UserID {
			return nil, booking.ErrPermissionDenied
		}
	default:
		return nil, booking.ErrPermissionDenied
	}
	return b, nil
}

func (s *fakeBookingService) List(ctx context.Context, actor auth.Principal, filter booking.Filter) ([]*booking.Booking, int, error) {
	panic("not used")
}

func (s *fakeBookingService) UpdateStatus(ctx context.Context, actor auth.Principal, id string, newStatus booking.Status) (*booking.Booking, error) {
	panic("not used")
}

func (s *fakeBookingService) UpdatePaymentStatus(ctx context.Context, actor auth.Principal, id string, status booking.PaymentStatus) (*booking.Booking, error) {
	panic("not used")
}

var (
	customer      = auth.Principal{UserID: "customer-1", Role: auth.RoleCustomer}
	otherCustomer = auth.Principal{UserID: "customer-2", Role: auth.RoleCustomer}
	provider      = auth.Principal{UserID: "provider-1", Role: auth.RoleProvider}
	otherProvider = auth.Principal{UserID: "provider-2", Role: auth.RoleProvider}
	admin         = auth.Principal{UserID: "admin-1", Role: auth.RoleAdmin}
)

func newTestService(t *testing.T) (Service, *fakeRepository) {
	t.Helper()

	repo := newFakeRepository()
	bookings := &fakeBookingService{bookings: map[string]*booking.Booking{
		"booking-1": {
			ID:         "booking-1",
			CustomerID: customer.UserID,
			ProviderID: provider.UserID,
			Status:     booking.StatusCompleted,
		},
	}}
	return NewService(repo, bookings, nil), repo
}

func validCreateRequest() CreateRequest {
	return CreateRequest{
		BookingID: "booking-1",
		Subject:   "Service not delivered",
	}
}

func TestCreateByBookingCustomer(t *testing.T) {
	svc, _ := newTestService(t)

	d, err := svc.Create(context.Background(), customer, validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, customer.UserID, d.CustomerID)
	assert.Equal(t, provider.UserID, d.ProviderID)
	assert.Equal(t, StatusPending, d.Status)
	assert.Equal(t, PriorityMedium, d.Priority)
}

func TestCreateOnSomeoneElsesBooking(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), otherCustomer, validCreateRequest())
	assert.ErrorIs(t, err, booking.ErrPermissionDenied)
}

func TestCreateByProviderDenied(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), provider, validCreateRequest())
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestCreateRequiresSubject(t *testing.T) {
	svc, _ := newTestService(t)

	req := validCreateRequest()
	req.Subject = "  "

	_, err := svc.Create(context.Background(), customer, req)
	assert.ErrorIs(t, err, ErrSubjectRequired)
}

func TestUpdateStatusProviderAdvances(t *testing.T) {
	svc, _ := newTestService(t)

	d, err := svc.Create(context.Background(), customer, validCreateRequest())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), provider, d.ID, UpdateStatusRequest{Status: StatusInReview})
	require.NoError(t, err)
	assert.Equal(t, StatusInReview, updated.Status)

	resolution := "refund issued"
	refund := 100.0
	updated, err = svc.UpdateStatus(context.Background(), provider, d.ID, UpdateStatusRequest{
		Status:       StatusResolved,
		Resolution:   &resolution,
		RefundAmount: &refund,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusResolved, updated.Status)
	require.NotNil(t, updated.Resolution)
	assert.Equal(t, resolution, *updated.Resolution)
	require.NotNil(t, updated.RefundAmount)
	assert.Equal(t, refund, *updated.RefundAmount)
}

func TestUpdateStatusCustomerDenied(t *testing.T) {
	svc, _ := newTestService(t)

	d, err := svc.Create(context.Background(), customer, validCreateRequest())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), customer, d.ID, UpdateStatusRequest{Status: StatusInReview})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestUpdateStatusOtherProviderDenied(t *testing.T) {
	svc, _ := newTestService(t)

	d, err := svc.Create(context.Background(), customer, validCreateRequest())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), otherProvider, d.ID, UpdateStatusRequest{Status: StatusInReview})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestUpdateStatusSkippingInReview(t *testing.T) {
	svc, _ := newTestService(t)

	d, err := svc.Create(context.Background(), customer, validCreateRequest())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), provider, d.ID, UpdateStatusRequest{Status: StatusResolved})
	assert.ErrorIs(t, err, ErrTransitionNotAllowed)
}

func TestUpdateStatusAdminBypassesLifecycle(t *testing.T) {
	svc, _ := newTestService(t)

	d, err := svc.Create(context.Background(), customer, validCreateRequest())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), admin, d.ID, UpdateStatusRequest{Status: StatusRejected})
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, updated.Status)
}

func TestUpdateStatusNegativeRefund(t *testing.T) {
	svc, _ := newTestService(t)

	d, err := svc.Create(context.Background(), customer, validCreateRequest())
	require.NoError(t, err)

	refund := -1.0
	_, err = svc.UpdateStatus(context.Background(), provider, d.ID, UpdateStatusRequest{
		Status:       StatusInReview,
		RefundAmount: &refund,
	})
	assert.ErrorIs(t, err, ErrInvalidRefund)
}

func TestListScopesToCaller(t *testing.T) {
	svc, repo := newTestService(t)

	_, _, err := svc.List(context.Background(), customer, Filter{ProviderID: "someone-else"})
	require.NoError(t, err)
	assert.Equal(t, customer.UserID, repo.lastFilter.CustomerID)
	assert.Empty(t, repo.lastFilter.ProviderID)

	_, _, err = svc.List(context.Background(), provider, Filter{})
	require.NoError(t, err)
	assert.Equal(t, provider.UserID, repo.lastFilter.ProviderID)
}

func TestGetByIDVisibility(t *testing.T) {
	svc, _ := newTestService(t)

	d, err := svc.Create(context.Background(), customer, validCreateRequest())
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), customer, d.ID)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), provider, d.ID)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), otherCustomer, d.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
