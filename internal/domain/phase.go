package domain

import (
	"fmt"
	"time"
)

// Phase is an ordered workflow stage scoped to a discipline, e.g.
// Warehouse -> Site -> Completed. At most one phase per discipline may be
// initial and at most one final; ordinals are reassigned atomically on
// reorder.
type Phase struct {
	ID           string
	DisciplineID string
	Name         string
	Ordinal      int
	Mandatory    bool
	IsInitial    bool
	IsFinal      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the required fields for phase creation.
func (p *Phase) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("phase name is required: %w", ErrValidation)
	}
	if p.DisciplineID == "" {
		return fmt.Errorf("phase discipline is required: %w", ErrValidation)
	}
	return nil
}
