package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/steelbuild/internal/allocation"
	"github.com/alexanderramin/steelbuild/internal/contract"
	"github.com/alexanderramin/steelbuild/internal/db"
	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/alexanderramin/steelbuild/internal/repository"
)

type utilizationService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewUtilizationService(uow db.UnitOfWork, observers ...UseCaseObserver) UtilizationService {
	return &utilizationService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// loadAllocationInputs reads everything a utilization pass needs from one
// consistent view of the store.
func loadAllocationInputs(ctx context.Context, tx db.DBTX) (allocation.Inputs, error) {
	var in allocation.Inputs
	var err error
	if in.Resources, err = repository.NewSQLiteResourceRepo(tx).List(ctx, ""); err != nil {
		return in, fmt.Errorf("loading resources: %w", err)
	}
	if in.Tasks, err = repository.NewSQLiteTaskRepo(tx).List(ctx, repository.TaskFilter{}); err != nil {
		return in, fmt.Errorf("loading tasks: %w", err)
	}
	if in.SOVItems, err = repository.NewSQLiteSOVRepo(tx).List(ctx, ""); err != nil {
		return in, fmt.Errorf("loading SOV items: %w", err)
	}
	if in.Allocations, err = repository.NewSQLiteAllocationRepo(tx).List(ctx); err != nil {
		return in, fmt.Errorf("loading allocations: %w", err)
	}
	return in, nil
}

func (s *utilizationService) Compute(ctx context.Context, req contract.UtilizationRequest) (resp *contract.UtilizationResponse, err error) {
	fields := map[string]any{"project_id": req.ProjectID}
	defer observe(ctx, s.observer, "resource-utilization", fields, &err)()

	if req.ResourceType != "" && !domain.ValidResourceTypes[req.ResourceType] {
		return nil, fmt.Errorf("%w: invalid resource type %q", domain.ErrValidation, req.ResourceType)
	}
	now := time.Now().UTC()
	if req.Now != nil {
		now = *req.Now
	}

	var in allocation.Inputs
	err = s.uow.Snapshot(ctx, func(ctx context.Context, tx db.DBTX) error {
		if req.ProjectID != "" {
			if _, err := repository.NewSQLiteProjectRepo(tx).GetByID(ctx, req.ProjectID); err != nil {
				return err
			}
		}
		var loadErr error
		in, loadErr = loadAllocationInputs(ctx, tx)
		return loadErr
	})
	if err != nil {
		return nil, err
	}

	// Conflicts are detected across every project; the project filter only
	// narrows which resources are reported.
	var inProject map[string]bool
	if req.ProjectID != "" {
		inProject = make(map[string]bool)
		for _, t := range in.Tasks {
			if t.ProjectID == req.ProjectID {
				for _, id := range t.ResourceIDs() {
					inProject[id] = true
				}
			}
		}
	}

	resp = &contract.UtilizationResponse{GeneratedAt: now}
	for _, u := range allocation.ComputeAll(in, now) {
		if req.ResourceType != "" && string(u.Resource.Type) != req.ResourceType {
			continue
		}
		if inProject != nil && !inProject[u.Resource.ID] {
			continue
		}
		if req.OnlyProblems && !u.IsOverallocated && !u.HasConflicts() {
			continue
		}
		resp.Results = append(resp.Results, u)
		resp.Resources = append(resp.Resources, contract.NewResourceUtilizationView(u))
	}
	resp.Summary = allocation.Summarize(resp.Results)
	fields["resources"] = len(resp.Results)
	fields["conflicts"] = resp.Summary.ConflictCount
	return resp, nil
}
