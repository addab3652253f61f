package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/steelbuild/internal/db"
	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/alexanderramin/steelbuild/internal/repository"
	"github.com/google/uuid"
)

type resourceService struct {
	resources repository.ResourceRepo
	uow       db.UnitOfWork
}

func NewResourceService(resources repository.ResourceRepo, uow db.UnitOfWork) ResourceService {
	return &resourceService{resources: resources, uow: uow}
}

func (s *resourceService) Create(ctx context.Context, r *domain.Resource) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Status == "" {
		r.Status = domain.ResourceAvailable
	}
	if err := r.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	return s.resources.Create(ctx, r)
}

func (s *resourceService) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	return s.resources.GetByID(ctx, id)
}

func (s *resourceService) List(ctx context.Context, resourceType domain.ResourceType) ([]*domain.Resource, error) {
	return s.resources.List(ctx, resourceType)
}

func (s *resourceService) Update(ctx context.Context, r *domain.Resource) error {
	if err := r.Validate(); err != nil {
		return err
	}
	r.UpdatedAt = time.Now().UTC()
	return s.resources.Update(ctx, r)
}

func (s *resourceService) Delete(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txResources := repository.NewSQLiteResourceRepo(tx)
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txSOV := repository.NewSQLiteSOVRepo(tx)

		if _, err := txResources.GetByID(ctx, id); err != nil {
			return err
		}

		tasks, err := txTasks.List(ctx, repository.TaskFilter{ResourceID: id})
		if err != nil {
			return fmt.Errorf("listing assigned tasks: %w", err)
		}
		now := time.Now().UTC()
		for _, t := range tasks {
			t.AssignedResources = without(t.AssignedResources, id)
			t.AssignedEquipment = without(t.AssignedEquipment, id)
			t.UpdatedAt = now
			if err := txTasks.Update(ctx, t); err != nil {
				return fmt.Errorf("unassigning task %q: %w", t.Name, err)
			}
		}

		items, err := txSOV.List(ctx, "")
		if err != nil {
			return fmt.Errorf("listing SOV items: %w", err)
		}
		for _, item := range items {
			if !item.References(id) {
				continue
			}
			item.AssignedResources = without(item.AssignedResources, id)
			item.UpdatedAt = now
			if err := txSOV.Update(ctx, item); err != nil {
				return fmt.Errorf("unassigning SOV item %s: %w", item.ItemNumber, err)
			}
		}

		return txResources.Delete(ctx, id)
	})
}
