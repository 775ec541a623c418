package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/auth"
)

type fakeRepository struct {
	byEmail map[string]*User
	byID    map[string]*User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		byEmail: map[string]*User{},
		byID:    map[string]*User{},
	}
}

func (r *fakeRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id string) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepository) Create(ctx context.Context, u *User) error {
	if _, exists := r.byEmail[u.Email]; exists {
		return ErrEmailAlreadyUsed
	}
	u.ID = "user-" + string(rune('a'+len(r.byID)))
	u.CreatedAt = time.Now().UTC()
	cp := *u
	r.byEmail[u.Email] = &cp
	r.byID[u.ID] = &cp
	return nil
}

func (r *fakeRepository) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	u, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt = &t
	return nil
}

func (r *fakeRepository) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	var out []*User
	for _, u := range r.byID {
		cp := *u
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeRepository) Update(ctx context.Context, u *User) error {
	stored, ok := r.byID[u.ID]
	if !ok {
		return ErrNotFound
	}
	*stored = *u
	r.byEmail[u.Email] = stored
	return nil
}

func newTestService(t *testing.T) (Service, *fakeRepository) {
	t.Helper()

	repo := newFakeRepository()
	// Min bcrypt cost keeps the tests fast.
	return NewService(repo, auth.NewBcryptPasswordHasherWithCost(4)), repo
}

func validRegisterRequest() RegisterRequest {
	return RegisterRequest{
		Email:    "jo@example.com",
		Password: "hunter2hunter2",
		Role:     auth.RoleCustomer,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, validRegisterRequest())
	require.NoError(t, err)
	assert.Equal(t, "jo@example.com", u.Email)
	assert.Equal(t, auth.RoleCustomer, u.Role)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "hunter2hunter2", u.PasswordHash)

	logged, err := svc.Login(ctx, "jo@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc, _ := newTestService(t)

	req := validRegisterRequest()
	req.Email = "  Jo@Example.COM "

	u, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "jo@example.com", u.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegisterRequest())
	require.NoError(t, err)

	_, err = svc.Register(ctx, validRegisterRequest())
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc, _ := newTestService(t)

	req := validRegisterRequest()
	req.Role = auth.RoleAdmin

	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestRegisterShortPassword(t *testing.T) {
	svc, _ := newTestService(t)

	req := validRegisterRequest()
	req.Password = "short"

	_, err := svc.Register(context.Background(), req)
	assert.Error(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegisterRequest())
	require.NoError(t, err)

	_, err = svc.Login(ctx, "jo@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, validRegisterRequest())
	require.NoError(t, err)

	repo.byID[u.ID].IsActive = false

	_, err = svc.Login(ctx, "jo@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestLoginUpdatesLastLogin(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, validRegisterRequest())
	require.NoError(t, err)
	require.Nil(t, repo.byID[u.ID].LastLoginAt)

	_, err = svc.Login(ctx, "jo@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.NotNil(t, repo.byID[u.ID].LastLoginAt)
}

func TestListAdminOnly(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.List(ctx, auth.Principal{UserID: "u1", Role: auth.RoleCustomer}, Filter{})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, _, err = svc.List(ctx, auth.Principal{UserID: "a1", Role: auth.RoleAdmin}, Filter{})
	assert.NoError(t, err)
}

func TestUpdateAdminOnly(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, validRegisterRequest())
	require.NoError(t, err)

	inactive := false
	_, err = svc.Update(ctx, auth.Principal{UserID: u.ID, Role: auth.RoleCustomer}, u.ID, UpdateRequest{IsActive: &inactive})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	providerRole := auth.RoleProvider
	updated, err := svc.Update(ctx, auth.Principal{UserID: "a1", Role: auth.RoleAdmin}, u.ID, UpdateRequest{
		IsActive: &inactive,
		Role:     &providerRole,
	})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, auth.RoleProvider, updated.Role)
}

func TestUpdateInvalidRole(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, validRegisterRequest())
	require.NoError(t, err)

	bogus := auth.Role("superuser")
	_, err = svc.Update(ctx, auth.Principal{UserID: "a1", Role: auth.RoleAdmin}, u.ID, UpdateRequest{Role: &bogus})
	assert.ErrorIs(t, err, ErrInvalidRole)
}
