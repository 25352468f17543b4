package domain

import "time"

// PlanEntry is the work-package-internal weekly breakdown: the explicit list
// of member components scheduled for one (work package, phase, year, week)
// bucket. A component may appear in entries for different phases as it
// progresses, and may reappear for the same phase in a later week (rework).
type PlanEntry struct {
	ID            string
	WorkPackageID string
	PhaseID       string
	Year          int
	Week          int

	Components []PlanComponent

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlanComponent is one member component row of a plan entry, with an
// independent completion flag.
type PlanComponent struct {
	ID          string
	PlanEntryID string
	ComponentID string
	Completed   bool
	CompletedAt *time.Time
}

// Toggle flips the completion flag, stamping or clearing the timestamp.
func (p *PlanComponent) Toggle(now time.Time) {
	if p.Completed {
		p.Completed = false
		p.CompletedAt = nil
		return
	}
	p.Completed = true
	p.CompletedAt = &now
}
