package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Kiterion83/cantiere-scheduler/internal/domain"
	"github.com/Kiterion83/cantiere-scheduler/internal/repository"
)

// resolveWorkPackageID accepts a work package code (case-insensitive),
// a full UUID, or a unique UUID prefix.
func resolveWorkPackageID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("work package is required")
	}

	wp, err := app.WorkPackages.GetByCode(ctx, app.ProjectID, input)
	if err == nil {
		return wp.ID, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	wps, err := app.WorkPackages.List(ctx, app.ProjectID)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, w := range wps {
		if w.ID == input {
			return w.ID, nil
		}
		if strings.HasPrefix(w.ID, input) {
			matches = append(matches, w.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("work package not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("work package prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveComponentID accepts a component code scoped to a category, a
// full UUID, or a unique UUID prefix within the listing.
func resolveComponentID(ctx context.Context, app *App, categoryID, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("component is required")
	}
	if categoryID != "" {
		c, err := app.Components.GetByCode(ctx, categoryID, input)
		if err == nil {
			return c.ID, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return "", err
		}
	}

	components, err := app.Components.List(ctx, repository.ComponentFilter{})
	if err != nil {
		return "", err
	}
	var matches []string
	for _, c := range components {
		if c.ID == input {
			return c.ID, nil
		}
		if strings.HasPrefix(c.ID, input) || c.Code == input {
			matches = append(matches, c.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("component not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("component %q is ambiguous (%d matches)", input, len(matches))
	}
}

// componentCodes builds an id -> code map for display.
func componentCodes(components []*domain.Component) map[string]string {
	codes := make(map[string]string, len(components))
	for _, c := range components {
		codes[c.ID] = c.Code
	}
	return codes
}
