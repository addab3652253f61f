package repository

import (
	"context"

	"github.com/alexanderramin/steelbuild/internal/domain"
)

// TaskFilter narrows a task listing. Zero-valued fields do not filter.
type TaskFilter struct {
	ProjectID  string
	Status     domain.TaskStatus
	ResourceID string
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByNumber(ctx context.Context, number string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	ListByStatus(ctx context.Context, status domain.ProjectStatus) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, f TaskFilter) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

type ResourceRepo interface {
	Create(ctx context.Context, r *domain.Resource) error
	GetByID(ctx context.Context, id string) (*domain.Resource, error)
	List(ctx context.Context, resourceType domain.ResourceType) ([]*domain.Resource, error)
	Update(ctx context.Context, r *domain.Resource) error
	Delete(ctx context.Context, id string) error
}

type AllocationRepo interface {
	Create(ctx context.Context, a *domain.ResourceAllocation) error
	GetByID(ctx context.Context, id string) (*domain.ResourceAllocation, error)
	List(ctx context.Context) ([]*domain.ResourceAllocation, error)
	ListByResource(ctx context.Context, resourceID string) ([]*domain.ResourceAllocation, error)
	Delete(ctx context.Context, id string) error
}

type SOVRepo interface {
	Create(ctx context.Context, s *domain.SOVItem) error
	GetByID(ctx context.Context, id string) (*domain.SOVItem, error)
	List(ctx context.Context, projectID string) ([]*domain.SOVItem, error)
	Update(ctx context.Context, s *domain.SOVItem) error
	Delete(ctx context.Context, id string) error
}

type RFIRepo interface {
	Create(ctx context.Context, r *domain.RFI) error
	GetByID(ctx context.Context, id string) (*domain.RFI, error)
	List(ctx context.Context, projectID string) ([]*domain.RFI, error)
	NextNumber(ctx context.Context, projectID string) (int, error)
	Update(ctx context.Context, r *domain.RFI) error
	Delete(ctx context.Context, id string) error
}

type ChangeOrderRepo interface {
	Create(ctx context.Context, c *domain.ChangeOrder) error
	GetByID(ctx context.Context, id string) (*domain.ChangeOrder, error)
	List(ctx context.Context, projectID string) ([]*domain.ChangeOrder, error)
	NextNumber(ctx context.Context, projectID string) (int, error)
	Update(ctx context.Context, c *domain.ChangeOrder) error
	Delete(ctx context.Context, id string) error
}

type DeliveryRepo interface {
	Create(ctx context.Context, d *domain.Delivery) error
	GetByID(ctx context.Context, id string) (*domain.Delivery, error)
	List(ctx context.Context, projectID string) ([]*domain.Delivery, error)
	Update(ctx context.Context, d *domain.Delivery) error
	Delete(ctx context.Context, id string) error
}

type FinancialRepo interface {
	Create(ctx context.Context, f *domain.Financial) error
	GetByID(ctx context.Context, id string) (*domain.Financial, error)
	List(ctx context.Context, projectID string) ([]*domain.Financial, error)
	Update(ctx context.Context, f *domain.Financial) error
	Delete(ctx context.Context, id string) error
}

type IncidentRepo interface {
	Create(ctx context.Context, s *domain.SafetyIncident) error
	GetByID(ctx context.Context, id string) (*domain.SafetyIncident, error)
	List(ctx context.Context, projectID string) ([]*domain.SafetyIncident, error)
	Update(ctx context.Context, s *domain.SafetyIncident) error
	Delete(ctx context.Context, id string) error
}

type NotificationRepo interface {
	Create(ctx context.Context, n *domain.Notification) error
	ExistsForReference(ctx context.Context, t domain.NotificationType, referenceID string) (bool, error)
	ListByUser(ctx context.Context, email string, unreadOnly bool) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id string) error
}

// PreferencesRepo persists dashboard layouts. Load returns the defaults when
// nothing has been saved for the user.
type PreferencesRepo interface {
	Load(ctx context.Context, email string) (*domain.DashboardPreferences, error)
	Save(ctx context.Context, p *domain.DashboardPreferences) error
}
