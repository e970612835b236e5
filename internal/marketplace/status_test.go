package marketplace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusHappyPath(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusInProgress))
	assert.True(t, StatusInProgress.CanTransitionTo(StatusCompleted))
}

func TestStatusCannotSkipInProgress(t *testing.T) {
	assert.False(t, StatusPending.CanTransitionTo(StatusCompleted))
}

func TestStatusCancelFromAnyNonTerminal(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusInProgress.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusDisputed.CanTransitionTo(StatusCancelled))
}

func TestStatusDisputeFromAnyNonTerminal(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusDisputed))
	assert.True(t, StatusInProgress.CanTransitionTo(StatusDisputed))
	assert.False(t, StatusDisputed.CanTransitionTo(StatusDisputed))
}

func TestStatusTerminalStatesAreFinal(t *testing.T) {
	targets := []Status{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled, StatusDisputed}
	for _, terminal := range []Status{StatusCompleted, StatusCancelled} {
		assert.True(t, terminal.Terminal())
		for _, target := range targets {
			assert.False(t, terminal.CanTransitionTo(target),
				"%s should not transition to %s", terminal, target)
		}
	}
}

func TestStatusDisputeCanResume(t *testing.T) {
	// A disputed order is not terminal; it can still be cancelled.
	assert.False(t, StatusDisputed.Terminal())
	assert.False(t, StatusDisputed.CanTransitionTo(StatusInProgress))
	assert.False(t, StatusDisputed.CanTransitionTo(StatusCompleted))
}

func TestStatusRejectsUnknownTarget(t *testing.T) {
	assert.False(t, StatusPending.CanTransitionTo(Status("SHIPPED")))
	assert.False(t, StatusPending.CanTransitionTo(StatusPending))
}
