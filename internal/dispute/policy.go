package dispute

// transitions is the dispute state machine:
// pending -> in_review -> {resolved, rejected}.
// Admins bypass the table and may set any status.
var transitions = map[Status][]Status{
	StatusPending:  {StatusInReview},
	StatusInReview: {StatusResolved, StatusRejected},
}

// CanTransition reports whether a dispute may move from one status to
// another under the normal (non-admin) lifecycle.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Terminal reports whether the status has no outgoing transitions.
func Terminal(s Status) bool {
	return len(transitions[s]) == 0
}
