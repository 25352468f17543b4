package domain

import "errors"

var (
	// ErrInvalidTransition indicates a ledger entry state change that the
	// scheduling state machine does not permit.
	ErrInvalidTransition = errors.New("invalid scheduling transition")

	// ErrValidation indicates a missing or malformed required field on create.
	ErrValidation = errors.New("validation failed")
)
