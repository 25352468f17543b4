package repository

import "errors"

var (
	// ErrNotFound indicates a referenced component, work package, phase,
	// squad or ledger entry does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyScheduled indicates a duplicate (unit, year, week)
	// assignment rejected by the ledger's uniqueness constraint.
	ErrAlreadyScheduled = errors.New("already scheduled for this week")

	// ErrInvalidMembership indicates an operation incompatible with the
	// component's work package membership, such as scheduling an owned
	// component individually.
	ErrInvalidMembership = errors.New("invalid work package membership")

	// ErrPartialWrite indicates a multi-statement replace failed mid-way.
	// The surrounding transaction rolls the store back to its pre-call
	// state; the error names what would otherwise have been lost.
	ErrPartialWrite = errors.New("partial write during replace")
)
