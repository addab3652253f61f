package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/alexanderramin/steelbuild/internal/repository"
	"github.com/google/uuid"
)

type sovService struct {
	items repository.SOVRepo
}

func NewSOVService(items repository.SOVRepo) SOVService {
	return &sovService{items: items}
}

func (s *sovService) Create(ctx context.Context, item *domain.SOVItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := item.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	return s.items.Create(ctx, item)
}

func (s *sovService) List(ctx context.Context, projectID string) ([]*domain.SOVItem, error) {
	return s.items.List(ctx, projectID)
}

func (s *sovService) Bill(ctx context.Context, id string, amount float64) (*domain.SOVItem, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: billed amount must be positive", domain.ErrValidation)
	}
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	item.BilledToDate += amount
	if item.BilledToDate > item.ScheduledValue {
		return nil, fmt.Errorf("%w: billing %.2f would exceed scheduled value %.2f",
			domain.ErrValidation, item.BilledToDate, item.ScheduledValue)
	}
	item.UpdatedAt = time.Now().UTC()
	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *sovService) Delete(ctx context.Context, id string) error {
	return s.items.Delete(ctx, id)
}
