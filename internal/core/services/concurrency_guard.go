package services

import (
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/domain"
)

// GuardState is the state of one optimistic-concurrency check.
type GuardState string

const (
	// GuardOpen: snapshot taken, no conflict detected yet.
	GuardOpen GuardState = "OPEN"
	// GuardCommitted: no divergence found, persistence may proceed.
	GuardCommitted GuardState = "COMMITTED"
	// GuardConflicted: a guarded field diverged; persistence is refused.
	// Terminal.
	GuardConflicted GuardState = "CONFLICTED"
)

// ConcurrencyGuard detects conflicting concurrent edits by comparing the
// guarded fields of an as-read snapshot against the freshly re-fetched
// current record at commit time. Each guard protects a single mutation
// attempt; once CONFLICTED it stays CONFLICTED.
type ConcurrencyGuard struct {
	state    GuardState
	diverged []string
}

// NewConcurrencyGuard starts a guard in the OPEN state.
func NewConcurrencyGuard() *ConcurrencyGuard {
	return &ConcurrencyGuard{state: GuardOpen}
}

// Compare transitions the guard: COMMITTED if every guarded field matches,
// CONFLICTED otherwise. Calling Compare after the guard has left OPEN returns
// the settled state unchanged.
func (g *ConcurrencyGuard) Compare(original, current domain.RecordSnapshot) GuardState {
	if g.state != GuardOpen {
		return g.state
	}
	g.diverged = original.Diff(current)
	if len(g.diverged) > 0 {
		g.state = GuardConflicted
	} else {
		g.state = GuardCommitted
	}
	return g.state
}

// State returns the guard's current state.
func (g *ConcurrencyGuard) State() GuardState {
	return g.state
}

// DivergedFields lists the guarded fields that caused a conflict.
func (g *ConcurrencyGuard) DivergedFields() []string {
	return g.diverged
}
