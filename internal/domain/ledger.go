package domain

import (
	"fmt"
	"time"

	"github.com/Kiterion83/cantiere-scheduler/internal/isoweek"
)

// LedgerEntry binds one unit of work (a whole work package or a single free
// component, never both) to a (project, phase, ISO year, ISO week) bucket.
//
// The primary status follows planned -> in_progress -> completed, with
// postponed reachable from any non-terminal state. The problem flag is
// orthogonal to the primary status: a "problems" view is a filter, not a
// state.
type LedgerEntry struct {
	ID        string
	ProjectID string
	Year      int
	Week      int
	PhaseID   string

	// Exactly one of WorkPackageID / ComponentID is set.
	WorkPackageID *string
	ComponentID   *string

	SquadID      *string
	Priority     int
	Instructions string
	Status       EntryStatus

	Problem            bool
	ProblemDescription string
	ProblemReporter    string
	ProblemResolved    bool
	ProblemResolvedBy  string
	ProblemResolvedAt  *time.Time

	CompletedAt *time.Time
	CompletedBy string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the structural invariants of a ledger entry.
func (e *LedgerEntry) Validate() error {
	if e.ProjectID == "" {
		return fmt.Errorf("ledger entry project is required: %w", ErrValidation)
	}
	if e.PhaseID == "" {
		return fmt.Errorf("ledger entry phase is required: %w", ErrValidation)
	}
	if e.Week < 1 || e.Week > 53 {
		return fmt.Errorf("ledger entry week %d out of range 1-53: %w", e.Week, ErrValidation)
	}
	hasWP := e.WorkPackageID != nil && *e.WorkPackageID != ""
	hasComp := e.ComponentID != nil && *e.ComponentID != ""
	if hasWP == hasComp {
		return fmt.Errorf("ledger entry must reference exactly one of work package or component: %w", ErrValidation)
	}
	return nil
}

// Start moves a planned entry into execution.
func (e *LedgerEntry) Start(now time.Time) error {
	if e.Status != EntryPlanned {
		return fmt.Errorf("cannot start entry in status %q: %w", e.Status, ErrInvalidTransition)
	}
	e.Status = EntryInProgress
	e.UpdatedAt = now
	return nil
}

// Complete finishes an in-progress entry, stamping completion time and actor.
// Completed is terminal: nothing but deletion removes it.
func (e *LedgerEntry) Complete(actor string, now time.Time) error {
	if e.Status != EntryInProgress {
		return fmt.Errorf("cannot complete entry in status %q: %w", e.Status, ErrInvalidTransition)
	}
	e.Status = EntryCompleted
	e.CompletedAt = &now
	e.CompletedBy = actor
	e.UpdatedAt = now
	return nil
}

// Postpone pushes a non-terminal entry forward by exactly one ISO week,
// rolling into the next year past the year's last week.
func (e *LedgerEntry) Postpone(now time.Time) error {
	if e.Status.Terminal() {
		return fmt.Errorf("cannot postpone entry in status %q: %w", e.Status, ErrInvalidTransition)
	}
	e.Year, e.Week = isoweek.Shift(e.Year, e.Week, 1)
	e.Status = EntryPostponed
	e.UpdatedAt = now
	return nil
}

// ReportProblem flags the entry without changing its primary status.
// Reporting again replaces any earlier, resolved report.
func (e *LedgerEntry) ReportProblem(description, reporter string, now time.Time) {
	e.Problem = true
	e.ProblemDescription = description
	e.ProblemReporter = reporter
	e.ProblemResolved = false
	e.ProblemResolvedBy = ""
	e.ProblemResolvedAt = nil
	e.UpdatedAt = now
}

// ResolveProblem marks the open problem resolved, again without touching the
// primary status.
func (e *LedgerEntry) ResolveProblem(resolver string, now time.Time) error {
	if !e.Problem {
		return fmt.Errorf("entry has no reported problem: %w", ErrInvalidTransition)
	}
	e.ProblemResolved = true
	e.ProblemResolvedBy = resolver
	e.ProblemResolvedAt = &now
	e.UpdatedAt = now
	return nil
}

// HasOpenProblem reports whether the entry carries an unresolved problem.
func (e *LedgerEntry) HasOpenProblem() bool {
	return e.Problem && !e.ProblemResolved
}
