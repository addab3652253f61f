package service

import (
	"context"
	"time"

	"github.com/alexanderramin/steelbuild/internal/contract"
	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/alexanderramin/steelbuild/internal/importer"
	"github.com/alexanderramin/steelbuild/internal/report"
	"github.com/alexanderramin/steelbuild/internal/repository"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	// Resolve accepts either a project id or a project number.
	Resolve(ctx context.Context, idOrNumber string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	ListByStatus(ctx context.Context, status domain.ProjectStatus) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string, force bool) error
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, f repository.TaskFilter) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

type ResourceService interface {
	Create(ctx context.Context, r *domain.Resource) error
	GetByID(ctx context.Context, id string) (*domain.Resource, error)
	List(ctx context.Context, resourceType domain.ResourceType) ([]*domain.Resource, error)
	Update(ctx context.Context, r *domain.Resource) error
	// Delete removes the resource and strips it from task and SOV assignments.
	Delete(ctx context.Context, id string) error
}

type AllocationService interface {
	Create(ctx context.Context, a *domain.ResourceAllocation) error
	List(ctx context.Context) ([]*domain.ResourceAllocation, error)
	ListByResource(ctx context.Context, resourceID string) ([]*domain.ResourceAllocation, error)
	Delete(ctx context.Context, id string) error
}

type SOVService interface {
	Create(ctx context.Context, s *domain.SOVItem) error
	List(ctx context.Context, projectID string) ([]*domain.SOVItem, error)
	// Bill adds amount to the line's billed-to-date total.
	Bill(ctx context.Context, id string, amount float64) (*domain.SOVItem, error)
	Delete(ctx context.Context, id string) error
}

type RFIService interface {
	Create(ctx context.Context, r *domain.RFI) error
	List(ctx context.Context, projectID string) ([]*domain.RFI, error)
	Answer(ctx context.Context, id string) (*domain.RFI, error)
	Close(ctx context.Context, id string) (*domain.RFI, error)
	Delete(ctx context.Context, id string) error
}

type ChangeOrderService interface {
	Create(ctx context.Context, c *domain.ChangeOrder) error
	List(ctx context.Context, projectID string) ([]*domain.ChangeOrder, error)
	SetStatus(ctx context.Context, id string, status domain.ChangeOrderStatus) (*domain.ChangeOrder, error)
	Delete(ctx context.Context, id string) error
}

type DeliveryService interface {
	Create(ctx context.Context, d *domain.Delivery) error
	List(ctx context.Context, projectID string) ([]*domain.Delivery, error)
	MarkDelivered(ctx context.Context, id string, on time.Time) (*domain.Delivery, error)
	Delete(ctx context.Context, id string) error
}

type FinancialService interface {
	Create(ctx context.Context, f *domain.Financial) error
	List(ctx context.Context, projectID string) ([]*domain.Financial, error)
	Update(ctx context.Context, f *domain.Financial) error
	Delete(ctx context.Context, id string) error
}

type IncidentService interface {
	Create(ctx context.Context, s *domain.SafetyIncident) error
	List(ctx context.Context, projectID string) ([]*domain.SafetyIncident, error)
	Close(ctx context.Context, id string) (*domain.SafetyIncident, error)
	Delete(ctx context.Context, id string) error
}

type NotificationService interface {
	List(ctx context.Context, email string, unreadOnly bool) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id string) error
}

type UtilizationService interface {
	Compute(ctx context.Context, req contract.UtilizationRequest) (*contract.UtilizationResponse, error)
}

type ReportService interface {
	Metrics() []report.Definition
	Run(ctx context.Context, req contract.ReportRequest) (*contract.ReportResponse, error)
}

type MonitorService interface {
	MonitorCriticalEvents(ctx context.Context) (*contract.MonitorResponse, error)
}

// FunctionService dispatches named server-side functions.
type FunctionService interface {
	Names() []string
	Invoke(ctx context.Context, name string) (any, error)
}

type PreferencesService interface {
	Dashboard(ctx context.Context) (*domain.DashboardPreferences, error)
	SetDashboard(ctx context.Context, widgets []string) (*domain.DashboardPreferences, error)
}

type AuthService interface {
	Me(ctx context.Context) (*domain.User, error)
}

// ImportResult holds the outcome of a project import.
type ImportResult struct {
	Project         *domain.Project
	ResourceCount   int
	TaskCount       int
	AllocationCount int
	SOVItemCount    int
}

type ImportService interface {
	ImportProject(ctx context.Context, filePath string) (*ImportResult, error)
	ImportProjectFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
