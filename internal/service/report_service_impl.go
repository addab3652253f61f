package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/steelbuild/internal/contract"
	"github.com/alexanderramin/steelbuild/internal/db"
	"github.com/alexanderramin/steelbuild/internal/report"
	"github.com/alexanderramin/steelbuild/internal/repository"
)

type reportService struct {
	catalog  *report.Catalog
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewReportService(catalog *report.Catalog, uow db.UnitOfWork, observers ...UseCaseObserver) ReportService {
	return &reportService{catalog: catalog, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *reportService) Metrics() []report.Definition {
	return s.catalog.Definitions()
}

func (s *reportService) Run(ctx context.Context, req contract.ReportRequest) (resp *contract.ReportResponse, err error) {
	fields := map[string]any{"metrics": len(req.Metrics), "project_id": req.ProjectID}
	defer observe(ctx, s.observer, "report-run", fields, &err)()

	filter, err := req.Filter()
	if err != nil {
		return nil, err
	}

	var src report.Source
	err = s.uow.Snapshot(ctx, func(ctx context.Context, tx db.DBTX) error {
		var loadErr error
		src, loadErr = loadReportSource(ctx, tx)
		return loadErr
	})
	if err != nil {
		return nil, err
	}

	results, err := s.catalog.EvaluateAll(req.Metrics, report.NewDataset(src), filter)
	if err != nil {
		return nil, err
	}

	resp = &contract.ReportResponse{
		GeneratedAt: time.Now().UTC(),
		ProjectID:   req.ProjectID,
		From:        req.From,
		To:          req.To,
		Metrics:     make([]contract.MetricView, 0, len(results)),
	}
	for _, r := range results {
		resp.Metrics = append(resp.Metrics, contract.NewMetricView(r))
	}
	return resp, nil
}

func loadReportSource(ctx context.Context, tx db.DBTX) (report.Source, error) {
	var src report.Source
	var err error
	if src.Projects, err = repository.NewSQLiteProjectRepo(tx).List(ctx, false); err != nil {
		return src, fmt.Errorf("loading projects: %w", err)
	}
	if src.Tasks, err = repository.NewSQLiteTaskRepo(tx).List(ctx, repository.TaskFilter{}); err != nil {
		return src, fmt.Errorf("loading tasks: %w", err)
	}
	if src.RFIs, err = repository.NewSQLiteRFIRepo(tx).List(ctx, ""); err != nil {
		return src, fmt.Errorf("loading RFIs: %w", err)
	}
	if src.ChangeOrders, err = repository.NewSQLiteChangeOrderRepo(tx).List(ctx, ""); err != nil {
		return src, fmt.Errorf("loading change orders: %w", err)
	}
	if src.Deliveries, err = repository.NewSQLiteDeliveryRepo(tx).List(ctx, ""); err != nil {
		return src, fmt.Errorf("loading deliveries: %w", err)
	}
	if src.Financials, err = repository.NewSQLiteFinancialRepo(tx).List(ctx, ""); err != nil {
		return src, fmt.Errorf("loading financials: %w", err)
	}
	if src.SOVItems, err = repository.NewSQLiteSOVRepo(tx).List(ctx, ""); err != nil {
		return src, fmt.Errorf("loading SOV items: %w", err)
	}
	if src.SafetyIncidents, err = repository.NewSQLiteIncidentRepo(tx).List(ctx, ""); err != nil {
		return src, fmt.Errorf("loading safety incidents: %w", err)
	}
	return src, nil
}
