package domain

import (
	"fmt"
	"regexp"
	"time"
)

var wpCodePattern = regexp.MustCompile(`^[A-Z0-9]+(-[A-Z0-9]+)*$`)

// WorkPackage groups components that are scheduled and executed together by
// one squad. The selected phases are an ordered subset of the phase catalog;
// the predecessor link is informational only and never enforced.
type WorkPackage struct {
	ID            string
	ProjectID     string
	Code          string
	Name          string
	SquadID       *string
	Foreman       string
	PredecessorID *string
	Priority      int
	Color         string
	PlannedStart  *time.Time
	PlannedEnd    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the required fields for work package creation.
func (w *WorkPackage) Validate() error {
	if w.Code == "" {
		return fmt.Errorf("work package code is required: %w", ErrValidation)
	}
	if !wpCodePattern.MatchString(w.Code) {
		return fmt.Errorf("work package code %q must be uppercase alphanumeric groups separated by dashes (e.g. WP-001): %w", w.Code, ErrValidation)
	}
	if w.Name == "" {
		return fmt.Errorf("work package name is required: %w", ErrValidation)
	}
	if w.ProjectID == "" {
		return fmt.Errorf("work package project is required: %w", ErrValidation)
	}
	return nil
}

// WorkPackagePhase is one row of a work package's ordered phase selection.
type WorkPackagePhase struct {
	WorkPackageID string
	PhaseID       string
	Ordinal       int
}
