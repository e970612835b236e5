package marketplace

// Status is an order's position in its lifecycle
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
	StatusDisputed   Status = "DISPUTED"
)

// Terminal reports whether no further transitions are allowed
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether the move from s to target is legal.
// The main chain is PENDING -> IN_PROGRESS -> COMPLETED; CANCELLED and
// DISPUTED branch off from any non-terminal state.
func (s Status) CanTransitionTo(target Status) bool {
	if s.Terminal() {
		return false
	}
	switch target {
	case StatusInProgress:
		return s == StatusPending
	case StatusCompleted:
		return s == StatusInProgress
	case StatusCancelled:
		return true
	case StatusDisputed:
		return s != StatusDisputed
	default:
		return false
	}
}
