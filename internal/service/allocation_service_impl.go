package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/alexanderramin/steelbuild/internal/repository"
	"github.com/google/uuid"
)

type allocationService struct {
	allocations repository.AllocationRepo
	resources   repository.ResourceRepo
}

func NewAllocationService(allocations repository.AllocationRepo, resources repository.ResourceRepo) AllocationService {
	return &allocationService{allocations: allocations, resources: resources}
}

func (s *allocationService) Create(ctx context.Context, a *domain.ResourceAllocation) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if err := a.Validate(); err != nil {
		return err
	}
	if _, err := s.resources.GetByID(ctx, a.ResourceID); err != nil {
		return fmt.Errorf("allocation resource %s: %w", a.ResourceID, err)
	}
	a.CreatedAt = time.Now().UTC()
	return s.allocations.Create(ctx, a)
}

func (s *allocationService) List(ctx context.Context) ([]*domain.ResourceAllocation, error) {
	return s.allocations.List(ctx)
}

func (s *allocationService) ListByResource(ctx context.Context, resourceID string) ([]*domain.ResourceAllocation, error) {
	return s.allocations.ListByResource(ctx, resourceID)
}

func (s *allocationService) Delete(ctx context.Context, id string) error {
	return s.allocations.Delete(ctx, id)
}
