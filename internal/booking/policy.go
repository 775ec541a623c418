package booking

import (
	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/auth"
)

// allStatuses lists every booking status in canonical order.
var allStatuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusRejected,
	StatusNoShow,
	StatusRescheduled,
	StatusDisputed,
}

// AllStatuses returns every booking status in canonical order.
func AllStatuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// ValidStatus reports whether s is one of the nine known statuses.
func ValidStatus(s Status) bool {
	for _, v := range allStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// transitionPolicy maps (role, current status) to the statuses that role may
// move a booking to. Statuses absent from a role's map are terminal for it.
// Admins are not listed: they may set any status from any status.
var transitionPolicy = map[auth.Role]map[Status][]Status{
	auth.RoleProvider: {
		StatusPending:    {StatusConfirmed, StatusRejected},
		StatusConfirmed:  {StatusInProgress, StatusCancelled},
		StatusInProgress: {StatusCompleted},
	},
	auth.RoleCustomer: {
		StatusPending:   {StatusCancelled},
		StatusConfirmed: {StatusCancelled},
	},
}

// AllowedTransitions returns the statuses the given role may move a booking
// to from the current status. The result is ordered and may be empty; an
// unknown role yields an empty set.
func AllowedTransitions(role auth.Role, current Status) []Status {
	if role == auth.RoleAdmin {
		return AllStatuses()
	}

	next, ok := transitionPolicy[role][current]
	if !ok {
		return nil
	}

	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether the role may move a booking from one status
// to another under the policy table.
func CanTransition(role auth.Role, from, to Status) bool {
	for _, s := range AllowedTransitions(role, from) {
		if s == to {
			return true
		}
	}
	return false
}
