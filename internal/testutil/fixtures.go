package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/google/uuid"
)

var testProjectCounter atomic.Int64

// Date parses a YYYY-MM-DD literal and panics on malformed input.
func Date(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// Project options
type ProjectOption func(*domain.Project)

func WithProjectNumber(n string) ProjectOption {
	return func(p *domain.Project) {
		p.ProjectNumber = n
	}
}

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithAssignedUsers(emails ...string) ProjectOption {
	return func(p *domain.Project) {
		p.AssignedUsers = emails
	}
}

func WithTargetCompletion(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.TargetCompletion = &d
	}
}

func WithContractValue(v float64) ProjectOption {
	return func(p *domain.Project) {
		p.ContractValue = v
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Project{
		ID:            uuid.New().String(),
		ProjectNumber: fmt.Sprintf("TP-%03d", testProjectCounter.Add(1)),
		Name:          name,
		Client:        "Acme General",
		Location:      "Denver, CO",
		Status:        domain.ProjectInProgress,
		StartDate:     domain.StartOfDay(now),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

// WithTaskDates sets raw date strings; malformed values are stored as given.
func WithTaskDates(start, end string) TaskOption {
	return func(t *domain.Task) {
		t.StartDate = start
		t.EndDate = end
	}
}

func WithAssignedResources(ids ...string) TaskOption {
	return func(t *domain.Task) {
		t.AssignedResources = ids
	}
}

func WithAssignedEquipment(ids ...string) TaskOption {
	return func(t *domain.Task) {
		t.AssignedEquipment = ids
	}
}

func WithProgress(p float64) TaskOption {
	return func(t *domain.Task) {
		t.Progress = p
	}
}

func NewTestTask(projectID, name string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC().Truncate(time.Second)
	t := &domain.Task{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		Status:    domain.TaskNotStarted,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Resource options
type ResourceOption func(*domain.Resource)

func WithResourceStatus(s domain.ResourceStatus) ResourceOption {
	return func(r *domain.Resource) {
		r.Status = s
	}
}

func WithMaxConcurrent(n int) ResourceOption {
	return func(r *domain.Resource) {
		r.MaxConcurrentAssignments = n
	}
}

func WithCertification(name string, expires time.Time) ResourceOption {
	return func(r *domain.Resource) {
		r.Certifications = append(r.Certifications, domain.Certification{Name: name, ExpiresOn: &expires})
	}
}

func WithTrade(trade string) ResourceOption {
	return func(r *domain.Resource) {
		r.Trade = trade
	}
}

func NewTestResource(name string, typ domain.ResourceType, opts ...ResourceOption) *domain.Resource {
	now := time.Now().UTC().Truncate(time.Second)
	r := &domain.Resource{
		ID:        uuid.New().String(),
		Name:      name,
		Type:      typ,
		Status:    domain.ResourceAvailable,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func NewTestAllocation(resourceID, projectID string, start, end time.Time, pct float64) *domain.ResourceAllocation {
	return &domain.ResourceAllocation{
		ID:                   uuid.New().String(),
		ResourceID:           resourceID,
		ProjectID:            projectID,
		StartDate:            start,
		EndDate:              end,
		AllocationPercentage: pct,
		CreatedAt:            time.Now().UTC().Truncate(time.Second),
	}
}

func NewTestSOVItem(projectID, itemNumber string, scheduled, billed float64) *domain.SOVItem {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.SOVItem{
		ID:             uuid.New().String(),
		ProjectID:      projectID,
		ItemNumber:     itemNumber,
		Description:    "Line " + itemNumber,
		ScheduledValue: scheduled,
		BilledToDate:   billed,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func NewTestIncident(projectID, title string, severity domain.Priority) *domain.SafetyIncident {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.SafetyIncident{
		ID:         uuid.New().String(),
		ProjectID:  projectID,
		Title:      title,
		Severity:   severity,
		Status:     domain.IncidentOpen,
		ReportedAt: now,
		CreatedAt:  now,
	}
}

func NewTestFinancial(projectID, category string, budget, actual float64) *domain.Financial {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Financial{
		ID:           uuid.New().String(),
		ProjectID:    projectID,
		Category:     category,
		BudgetAmount: budget,
		ActualAmount: actual,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
