package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/alexanderramin/steelbuild/internal/repository"
)

// resolveProject accepts a project number, a full id or a unique id prefix.
func resolveProject(ctx context.Context, app *App, input string) (*domain.Project, error) {
	if input == "" {
		return nil, fmt.Errorf("project is required")
	}
	if p, err := app.Projects.Resolve(ctx, strings.ToUpper(input)); err == nil {
		return p, nil
	}
	if p, err := app.Projects.Resolve(ctx, input); err == nil {
		return p, nil
	}

	projects, err := app.Projects.List(ctx, true)
	if err != nil {
		return nil, err
	}
	var matches []*domain.Project
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("project %q: %w", input, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	}
	return nil, fmt.Errorf("project id prefix %q is ambiguous (%d matches)", input, len(matches))
}

// resolveProjectFlag returns "" for an empty flag, otherwise the project id.
func resolveProjectFlag(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", nil
	}
	p, err := resolveProject(ctx, app, input)
	if err != nil {
		return "", err
	}
	return p.ID, nil
}

// resolveResource accepts a full id, a unique id prefix or an exact name.
func resolveResource(ctx context.Context, app *App, input string) (*domain.Resource, error) {
	if r, err := app.Resources.GetByID(ctx, input); err == nil {
		return r, nil
	}
	resources, err := app.Resources.List(ctx, "")
	if err != nil {
		return nil, err
	}
	var matches []*domain.Resource
	for _, r := range resources {
		if strings.HasPrefix(r.ID, input) || strings.EqualFold(r.Name, input) {
			matches = append(matches, r)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("resource %q: %w", input, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	}
	return nil, fmt.Errorf("resource %q is ambiguous (%d matches)", input, len(matches))
}

func resolveResourceIDs(ctx context.Context, app *App, inputs []string) ([]string, error) {
	ids := make([]string, 0, len(inputs))
	for _, in := range inputs {
		r, err := resolveResource(ctx, app, in)
		if err != nil {
			return nil, err
		}
		ids = append(ids, r.ID)
	}
	return ids, nil
}

// resourceNames maps every resource id to its name for display.
func resourceNames(ctx context.Context, app *App) (map[string]string, error) {
	resources, err := app.Resources.List(ctx, "")
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(resources))
	for _, r := range resources {
		names[r.ID] = r.Name
	}
	return names, nil
}

func parseOptionalDateFlag(name, value string) (*time.Time, error) {
	d, err := domain.ParseOptionalDate(value)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return d, nil
}

// resolveTask accepts a full task id or a unique id prefix.
func resolveTask(ctx context.Context, app *App, input string) (*domain.Task, error) {
	if t, err := app.Tasks.GetByID(ctx, input); err == nil {
		return t, nil
	}
	tasks, err := app.Tasks.List(ctx, repository.TaskFilter{})
	if err != nil {
		return nil, err
	}
	var matches []*domain.Task
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, input) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("task %q: %w", input, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	}
	return nil, fmt.Errorf("task id prefix %q is ambiguous (%d matches)", input, len(matches))
}

// matchID picks the single item whose id equals or starts with input.
func matchID[T any](kind, input string, items []T, id func(T) string) (T, error) {
	var zero T
	var matches []T
	for _, it := range items {
		if id(it) == input {
			return it, nil
		}
		if strings.HasPrefix(id(it), input) {
			matches = append(matches, it)
		}
	}
	switch len(matches) {
	case 0:
		return zero, fmt.Errorf("%s %q: %w", kind, input, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	}
	return zero, fmt.Errorf("%s id prefix %q is ambiguous (%d matches)", kind, input, len(matches))
}
