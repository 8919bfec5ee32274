package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/repository"
)

// resolveMilestone finds a milestone by exact id, then name, then unique id
// prefix.
func resolveMilestone(ctx context.Context, app *App, input string) (*domain.Milestone, error) {
	if input == "" {
		return nil, fmt.Errorf("milestone is required")
	}
	m, err := app.Milestones.Find(ctx, input)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	all, err := app.Milestones.List(ctx)
	if err != nil {
		return nil, err
	}
	var matches []*domain.Milestone
	for _, m := range all {
		if strings.HasPrefix(m.ID, input) {
			matches = append(matches, m)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("milestone not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("milestone ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveParentID finds a parent milestone by exact id, name
// (case-insensitive) or unique id prefix.
func resolveParentID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("group is required")
	}
	parents, err := app.Parents.List(ctx)
	if err != nil {
		return "", err
	}

	for _, p := range parents {
		if p.ID == input {
			return p.ID, nil
		}
	}
	for _, p := range parents {
		if strings.EqualFold(p.Name, input) {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range parents {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("group not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("group ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func parentNames(ctx context.Context, app *App) (map[string]string, error) {
	parents, err := app.Parents.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(parents))
	for _, p := range parents {
		names[p.ID] = p.Name
	}
	return names, nil
}
