package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/auth"
)

func TestAllowedTransitionsProvider(t *testing.T) {
	tests := []struct {
		from Status
		want []Status
	}{
		{StatusPending, []Status{StatusConfirmed, StatusRejected}},
		{StatusConfirmed, []Status{StatusInProgress, StatusCancelled}},
		{StatusInProgress, []Status{StatusCompleted}},
		{StatusCompleted, nil},
		{StatusCancelled, nil},
		{StatusRejected, nil},
		{StatusNoShow, nil},
		{StatusRescheduled, nil},
		{StatusDisputed, nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			got := AllowedTransitions(auth.RoleProvider, tt.from)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllowedTransitionsCustomer(t *testing.T) {
	tests := []struct {
		from Status
		want []Status
	}{
		{StatusPending, []Status{StatusCancelled}},
		{StatusConfirmed, []Status{StatusCancelled}},
		{StatusInProgress, nil},
		{StatusCompleted, nil},
		{StatusCancelled, nil},
		{StatusRejected, nil},
		{StatusNoShow, nil},
		{StatusRescheduled, nil},
		{StatusDisputed, nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			got := AllowedTransitions(auth.RoleCustomer, tt.from)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllowedTransitionsAdmin(t *testing.T) {
	// Admins may move any booking to any of the nine statuses, including
	// from terminal ones.
	for _, from := range AllStatuses() {
		got := AllowedTransitions(auth.RoleAdmin, from)
		require.Len(t, got, 9, "from %s", from)
		assert.Equal(t, AllStatuses(), got, "from %s", from)
	}
}

func TestAllowedTransitionsUnknownRole(t *testing.T) {
	for _, from := range AllStatuses() {
		assert.Empty(t, AllowedTransitions(auth.Role("intruder"), from))
	}
}

func TestAllowedTransitionsReturnsCopy(t *testing.T) {
	got := AllowedTransitions(auth.RoleProvider, StatusPending)
	require.NotEmpty(t, got)
	got[0] = StatusDisputed

	again := AllowedTransitions(auth.RoleProvider, StatusPending)
	assert.Equal(t, []Status{StatusConfirmed, StatusRejected}, again)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(auth.RoleProvider, StatusPending, StatusConfirmed))
	assert.True(t, CanTransition(auth.RoleProvider, StatusPending, StatusRejected))
	assert.True(t, CanTransition(auth.RoleCustomer, StatusConfirmed, StatusCancelled))
	assert.True(t, CanTransition(auth.RoleAdmin, StatusCompleted, StatusPending))

	assert.False(t, CanTransition(auth.RoleProvider, StatusPending, StatusCompleted))
	assert.False(t, CanTransition(auth.RoleCustomer, StatusConfirmed, StatusCompleted))
	assert.False(t, CanTransition(auth.RoleCustomer, StatusInProgress, StatusCancelled))
	assert.False(t, CanTransition(auth.RoleProvider, StatusCompleted, StatusPending))
}

func TestValidStatus(t *testing.T) {
	for _, s := range AllStatuses() {
		assert.True(t, ValidStatus(s))
	}
	assert.False(t, ValidStatus(Status("archived")))
	assert.False(t, ValidStatus(Status("")))
}
