package domain

import (
	"fmt"
	"time"
)

// Component is the smallest schedulable unit of physical work, e.g. a pipe
// spool. A component optionally belongs to exactly one work package; members
// are scheduled through the work package, never individually.
type Component struct {
	ID            string
	Code          string
	CategoryID    string
	DisciplineID  string
	Status        ComponentStatus
	WorkPackageID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the required fields for component creation.
func (c *Component) Validate() error {
	if c.Code == "" {
		return fmt.Errorf("component code is required: %w", ErrValidation)
	}
	if c.CategoryID == "" {
		return fmt.Errorf("component category is required: %w", ErrValidation)
	}
	if c.DisciplineID == "" {
		return fmt.Errorf("component discipline is required: %w", ErrValidation)
	}
	if c.Status != "" && !ValidComponentStatuses[string(c.Status)] {
		return fmt.Errorf("unknown component status %q: %w", c.Status, ErrValidation)
	}
	return nil
}

// InWorkPackage reports whether the component is owned by a work package.
func (c *Component) InWorkPackage() bool {
	return c.WorkPackageID != nil && *c.WorkPackageID != ""
}
