package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/steelbuild/internal/db"
	"github.com/alexanderramin/steelbuild/internal/importer"
	"github.com/alexanderramin/steelbuild/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportProject(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.importSchema(ctx, schema)
}

func (s *importService) ImportProjectFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error) {
	return s.importSchema(ctx, schema)
}

func (s *importService) importSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	fields := map[string]any{"project_number": schema.Project.ProjectNumber}
	defer observe(ctx, s.observer, "import-project", fields, &err)()

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		fields["validation_errors"] = len(errs)
		return nil, formatValidationErrors(errs)
	}

	generated, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txResources := repository.NewSQLiteResourceRepo(tx)
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txAllocations := repository.NewSQLiteAllocationRepo(tx)
		txSOV := repository.NewSQLiteSOVRepo(tx)

		if err := txProjects.Create(ctx, generated.Project); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}
		for _, r := range generated.Resources {
			if err := txResources.Create(ctx, r); err != nil {
				return fmt.Errorf("creating resource %q: %w", r.Name, err)
			}
		}
		for _, t := range generated.Tasks {
			if err := txTasks.Create(ctx, t); err != nil {
				return fmt.Errorf("creating task %q: %w", t.Name, err)
			}
		}
		for _, a := range generated.Allocations {
			if err := txAllocations.Create(ctx, a); err != nil {
				return fmt.Errorf("creating allocation: %w", err)
			}
		}
		for _, item := range generated.SOVItems {
			if err := txSOV.Create(ctx, item); err != nil {
				return fmt.Errorf("creating SOV item %s: %w", item.ItemNumber, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result = &ImportResult{
		Project:         generated.Project,
		ResourceCount:   len(generated.Resources),
		TaskCount:       len(generated.Tasks),
		AllocationCount: len(generated.Allocations),
		SOVItemCount:    len(generated.SOVItems),
	}
	fields["tasks"] = result.TaskCount
	return result, nil
}
