package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/alexanderramin/steelbuild/internal/repository"
	"github.com/google/uuid"
)

type taskService struct {
	tasks     repository.TaskRepo
	projects  repository.ProjectRepo
	resources repository.ResourceRepo
}

func NewTaskService(tasks repository.TaskRepo, projects repository.ProjectRepo, resources repository.ResourceRepo) TaskService {
	return &taskService{tasks: tasks, projects: projects, resources: resources}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Status == "" {
		t.Status = domain.TaskNotStarted
	}
	if err := s.check(ctx, t); err != nil {
		return err
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.tasks.Create(ctx, t)
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) List(ctx context.Context, f repository.TaskFilter) ([]*domain.Task, error) {
	return s.tasks.List(ctx, f)
}

func (s *taskService) Update(ctx context.Context, t *domain.Task) error {
	if err := s.check(ctx, t); err != nil {
		return err
	}
	t.UpdatedAt = time.Now().UTC()
	return s.tasks.Update(ctx, t)
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

// check validates the task and confirms its project and assignments exist.
// Equipment slots only accept equipment resources.
func (s *taskService) check(ctx context.Context, t *domain.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if _, err := s.projects.GetByID(ctx, t.ProjectID); err != nil {
		return fmt.Errorf("task project %s: %w", t.ProjectID, err)
	}
	for _, id := range t.AssignedResources {
		if _, err := s.resources.GetByID(ctx, id); err != nil {
			return fmt.Errorf("assigned resource %s: %w", id, err)
		}
	}
	for _, id := range t.AssignedEquipment {
		r, err := s.resources.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("assigned equipment %s: %w", id, err)
		}
		if r.Type != domain.ResourceEquipment {
			return fmt.Errorf("%w: resource %q is %s, not equipment", domain.ErrValidation, r.Name, r.Type)
		}
	}
	return nil
}
