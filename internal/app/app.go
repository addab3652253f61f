// Package app wires repositories and services into the set shared by the
// CLI and the HTTP API.
package app

import (
	"database/sql"
	"fmt"

	"github.com/alexanderramin/steelbuild/internal/config"
	"github.com/alexanderramin/steelbuild/internal/db"
	"github.com/alexanderramin/steelbuild/internal/metrics"
	"github.com/alexanderramin/steelbuild/internal/push"
	"github.com/alexanderramin/steelbuild/internal/report"
	"github.com/alexanderramin/steelbuild/internal/repository"
	"github.com/alexanderramin/steelbuild/internal/service"
	"go.uber.org/zap"
)

// Services is every use case the surfaces can reach.
type Services struct {
	Projects      service.ProjectService
	Tasks         service.TaskService
	Resources     service.ResourceService
	Allocations   service.AllocationService
	SOV           service.SOVService
	RFIs          service.RFIService
	ChangeOrders  service.ChangeOrderService
	Deliveries    service.DeliveryService
	Financials    service.FinancialService
	Incidents     service.IncidentService
	Notifications service.NotificationService
	Utilization   service.UtilizationService
	Reports       service.ReportService
	Monitor       service.MonitorService
	Functions     service.FunctionService
	Preferences   service.PreferencesService
	Auth          service.AuthService
	Import        service.ImportService
}

// Options carries the process-wide collaborators. Nil fields get no-op
// stand-ins.
type Options struct {
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	// Pusher overrides the gateway client built from cfg.Push.
	Pusher push.Pusher
}

// New builds the service set over an open database.
func New(database *sql.DB, cfg config.Config, opts Options) (*Services, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	catalog, err := report.LoadCatalog()
	if err != nil {
		return nil, fmt.Errorf("loading metric catalog: %w", err)
	}

	projectRepo := repository.NewSQLiteProjectRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	resourceRepo := repository.NewSQLiteResourceRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	observers := []service.UseCaseObserver{service.NewLogUseCaseObserver(log)}

	pusher := opts.Pusher
	var recorder service.MonitorRecorder
	if opts.Metrics != nil {
		recorder = opts.Metrics
	}
	if pusher == nil {
		pushObservers := push.Observers{push.NewLogObserver(log)}
		if opts.Metrics != nil {
			pushObservers = append(pushObservers, opts.Metrics)
		}
		pusher = push.New(cfg.Push, log, pushObservers)
	}

	auth := service.NewAuthService(cfg.User)
	monitor := service.NewMonitorService(uow, service.MonitorConfig{
		CertWindow: cfg.CertWindow(),
		Pusher:     pusher,
		Recorder:   recorder,
		Logger:     log,
	}, observers...)

	return &Services{
		Projects:      service.NewProjectService(projectRepo),
		Tasks:         service.NewTaskService(taskRepo, projectRepo, resourceRepo),
		Resources:     service.NewResourceService(resourceRepo, uow),
		Allocations:   service.NewAllocationService(repository.NewSQLiteAllocationRepo(database), resourceRepo),
		SOV:           service.NewSOVService(repository.NewSQLiteSOVRepo(database)),
		RFIs:          service.NewRFIService(repository.NewSQLiteRFIRepo(database), uow),
		ChangeOrders:  service.NewChangeOrderService(repository.NewSQLiteChangeOrderRepo(database), uow),
		Deliveries:    service.NewDeliveryService(repository.NewSQLiteDeliveryRepo(database)),
		Financials:    service.NewFinancialService(repository.NewSQLiteFinancialRepo(database)),
		Incidents:     service.NewIncidentService(repository.NewSQLiteIncidentRepo(database)),
		Notifications: service.NewNotificationService(repository.NewSQLiteNotificationRepo(database)),
		Utilization:   service.NewUtilizationService(uow, observers...),
		Reports:       service.NewReportService(catalog, uow, observers...),
		Monitor:       monitor,
		Functions:     service.NewFunctionService(monitor),
		Preferences:   service.NewPreferencesService(repository.NewSQLitePreferencesRepo(database), auth),
		Auth:          auth,
		Import:        service.NewImportService(uow, observers...),
	}, nil
}
