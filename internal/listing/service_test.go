package listing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/auth"
)

type fakeRepository struct {
	listings   map[string]*Listing
	lastFilter Filter
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{listings: map[string]*Listing{}}
}

func (r *fakeRepository) Create(ctx context.Context, l *Listing) error {
	l.ID = "svc-" + string(rune('a'+len(r.listings)))
	l.CreatedAt = time.Now().UTC()
	l.UpdatedAt = l.CreatedAt
	cp := *l
	r.listings[l.ID] = &cp
	return nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id string) (*Listing, error) {
	l, ok := r.listings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *fakeRepository) List(ctx context.Context, filter Filter) ([]*Listing, int, error) {
	r.lastFilter = filter
	var out []*Listing
	for _, l := range r.listings {
		cp := *l
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeRepository) Update(ctx context.Context, l *Listing) error {
	stored, ok := r.listings[l.ID]
	if !ok {
		return ErrNotFound
	}
	*stored = *l
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *fakeRepository) Delete(ctx context.Context, id string) error {
	if _, ok := r.listings[id]; !ok {
		return ErrNotFound
	}
	delete(r.listings, id)
	return nil
}

var (
	customer = auth.Principal{UserID: "customer-1", Role: auth.RoleCustomer}
	provider = auth.Principal{UserID: "provider-1", Role: auth.RoleProvider}
	admin    = auth.Principal{UserID: "admin-1", Role: auth.RoleAdmin}
)

func newTestService(t *testing.T) (Service, *fakeRepository) {
	t.Helper()

	repo := newFakeRepository()
	return NewService(repo, nil), repo
}

func TestCreateProviderOnly(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	req := CreateRequest{Title: "Garden Care", Price: 250}

	l, err := svc.Create(ctx, provider, req)
	require.NoError(t, err)
	assert.Equal(t, provider.UserID, l.ProviderID)
	assert.True(t, l.IsActive)

	_, err = svc.Create(ctx, customer, req)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.Create(ctx, admin, req)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, provider, CreateRequest{Title: "  ", Price: 250})
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = svc.Create(ctx, provider, CreateRequest{Title: "Garden Care", Price: 0})
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestListForcesActiveForCustomers(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.List(ctx, customer, Filter{})
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.IsActive)
	assert.True(t, *repo.lastFilter.IsActive)

	// Providers and admins keep their filter untouched.
	_, _, err = svc.List(ctx, provider, Filter{})
	require.NoError(t, err)
	assert.Nil(t, repo.lastFilter.IsActive)

	inactive := false
	_, _, err = svc.List(ctx, admin, Filter{IsActive: &inactive})
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.IsActive)
	assert.False(t, *repo.lastFilter.IsActive)
}

func TestUpdateOwnerOrAdmin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	l, err := svc.Create(ctx, provider, CreateRequest{Title: "Garden Care", Price: 250})
	require.NoError(t, err)

	newPrice := 300.0
	_, err = svc.Update(ctx, auth.Principal{UserID: "provider-2", Role: auth.RoleProvider}, l.ID, UpdateRequest{Price: &newPrice})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	updated, err := svc.Update(ctx, provider, l.ID, UpdateRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, 300.0, updated.Price)

	deactivate := false
	updated, err = svc.Update(ctx, admin, l.ID, UpdateRequest{IsActive: &deactivate})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}

func TestDeleteOwnerOrAdmin(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	l, err := svc.Create(ctx, provider, CreateRequest{Title: "Garden Care", Price: 250})
	require.NoError(t, err)

	err = svc.Delete(ctx, customer, l.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	err = svc.Delete(ctx, provider, l.ID)
	require.NoError(t, err)
	assert.Empty(t, repo.listings)
}
