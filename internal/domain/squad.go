package domain

import (
	"fmt"
	"time"
)

// Squad is a crew of workers assigned to execute work packages.
type Squad struct {
	ID      string
	Name    string
	Foreman string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the required fields for squad creation.
func (s *Squad) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("squad name is required: %w", ErrValidation)
	}
	return nil
}
