package workflow

import (
	"fmt"

	"hr-wizard/internal/apperr"
)

// StepStatus is the closed set of per-step states.
type StepStatus string

const (
	StatusNotStarted StepStatus = "not_started"
	StatusInProgress StepStatus = "in_progress"
	StatusSubmitted  StepStatus = "submitted"
	StatusApproved   StepStatus = "approved"
	StatusLocked     StepStatus = "locked"
)

// settled reports whether a status counts as "done enough" to unlock the
// following step.
func settled(s StepStatus) bool {
	return s == StatusSubmitted || s == StatusApproved || s == StatusLocked
}

// Ledger maps every step to its current status. It is persisted as a
// single JSON column on the project row.
type Ledger map[StepKey]StepStatus

// NewLedger returns a ledger with every known step set to not_started.
func NewLedger() Ledger {
	l := make(Ledger, len(AllSteps))
	for _, s := range AllSteps {
		l[s] = StatusNotStarted
	}
	return l
}

// Initialize fills in missing step keys with not_started. Idempotent,
// safe to call on every read; projects created before a step existed
// pick it up here.
func Initialize(l Ledger) Ledger {
	out := l.clone()
	for _, s := range AllSteps {
		if _, ok := out[s]; !ok {
			out[s] = StatusNotStarted
		}
	}
	return out
}

func (l Ledger) clone() Ledger {
	out := make(Ledger, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

// Status returns the recorded status of a step, defaulting to
// not_started for missing keys.
func (l Ledger) Status(step StepKey) StepStatus {
	if s, ok := l[step]; ok {
		return s
	}
	return StatusNotStarted
}

// IsStepUnlocked is the single unlocking rule: a step is editable when it
// is first in the order, or when its predecessor has reached submitted,
// approved or locked. The step's own status does not matter.
func IsStepUnlocked(l Ledger, step StepKey) bool {
	pred, ok := Predecessor(step)
	if !ok {
		return false
	}
	if pred == "" {
		return true
	}
	return settled(l.Status(pred))
}

// SetStatus is the raw setter: any status may replace any status. The
// typed transitions below are what the HTTP paths use; this stays
// permissive for compatibility with historical data fixes.
func SetStatus(l Ledger, step StepKey, status StepStatus) Ledger {
	out := l.clone()
	out[step] = status
	return out
}

// Submit marks a step submitted. The step must be unlocked; whether its
// answer set is complete is the caller's check.
func Submit(l Ledger, step StepKey) (Ledger, error) {
	if !KnownStep(step) {
		return l, fmt.Errorf("%w: unknown step %q", apperr.ErrNotFound, step)
	}
	if !IsStepUnlocked(l, step) {
		return l, apperr.ErrStepLocked
	}
	return SetStatus(l, step, StatusSubmitted), nil
}

// Approve confirms a submitted step. Only valid from submitted; this is
// the only transition that can unlock a successor that submission had
// not already unlocked.
func Approve(l Ledger, step StepKey) (Ledger, error) {
	if !KnownStep(step) {
		return l, fmt.Errorf("%w: unknown step %q", apperr.ErrNotFound, step)
	}
	if l.Status(step) != StatusSubmitted {
		return l, apperr.ErrNotSubmitted
	}
	return SetStatus(l, step, StatusApproved), nil
}

// RequestRevision sends a submitted step back to its editor. The sole
// backward transition.
func RequestRevision(l Ledger, step StepKey) (Ledger, error) {
	if !KnownStep(step) {
		return l, fmt.Errorf("%w: unknown step %q", apperr.ErrNotFound, step)
	}
	if l.Status(step) != StatusSubmitted {
		return l, apperr.ErrNotSubmitted
	}
	return SetStatus(l, step, StatusInProgress), nil
}

// LockAll is the terminal transition at final CEO sign-off. Idempotent.
func LockAll(l Ledger) Ledger {
	out := l.clone()
	for _, s := range AllSteps {
		out[s] = StatusLocked
	}
	return out
}

// AllMainStepsSettled reports whether every main-chain step has reached
// submitted, approved or locked — the precondition for final sign-off.
func AllMainStepsSettled(l Ledger) bool {
	for _, s := range MainChain {
		if !settled(l.Status(s)) {
			return false
		}
	}
	return true
}

// CurrentStep derives the active step from the ledger: the first
// main-chain step that has not settled yet, or the last step once
// everything has. The persisted current_step column is only a cached
// copy of this value.
func CurrentStep(l Ledger) StepKey {
	for _, s := range MainChain {
		if !settled(l.Status(s)) {
			return s
		}
	}
	return MainChain[len(MainChain)-1]
}
