package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/google/uuid"
)

// Generated holds the domain objects produced from an import file, in
// insertion order.
type Generated struct {
	Project     *domain.Project
	Resources   []*domain.Resource
	Tasks       []*domain.Task
	Allocations []*domain.ResourceAllocation
	SOVItems    []*domain.SOVItem
}

// Convert transforms a validated ImportSchema into domain objects ready for persistence.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema) (*Generated, error) {
	now := time.Now().UTC().Truncate(time.Second)

	startDate, err := domain.ParseDate(schema.Project.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	var target *time.Time
	if schema.Project.TargetCompletion != nil {
		t, err := domain.ParseDate(*schema.Project.TargetCompletion)
		if err != nil {
			return nil, fmt.Errorf("parsing target_completion: %w", err)
		}
		target = &t
	}

	status := domain.ProjectStatus(schema.Project.Status)
	if status == "" {
		status = domain.ProjectPlanning
	}
	project := &domain.Project{
		ID:               uuid.New().String(),
		ProjectNumber:    strings.ToUpper(schema.Project.ProjectNumber),
		Name:             schema.Project.Name,
		Client:           schema.Project.Client,
		Location:         schema.Project.Location,
		Status:           status,
		StartDate:        startDate,
		TargetCompletion: target,
		ContractValue:    schema.Project.ContractValue,
		AssignedUsers:    schema.Project.AssignedUsers,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	gen := &Generated{Project: project}

	refMap := make(map[string]string) // ref -> UUID
	for _, r := range schema.Resources {
		res := &domain.Resource{
			ID:                       uuid.New().String(),
			Name:                     r.Name,
			Type:                     domain.ResourceType(r.Type),
			Trade:                    r.Trade,
			Status:                   domain.ResourceStatus(domain.CoalesceStr(r.Status, string(domain.ResourceAvailable))),
			MaxConcurrentAssignments: domain.IntFromPtrWithDefault(0, r.MaxConcurrentAssignments),
			HourlyRate:               domain.Float64FromPtrWithDefault(0, r.HourlyRate),
			CreatedAt:                now,
			UpdatedAt:                now,
		}
		for _, c := range r.Certifications {
			cert := domain.Certification{Name: c.Name}
			if c.ExpiresOn != nil {
				exp, err := domain.ParseDate(*c.ExpiresOn)
				if err != nil {
					return nil, fmt.Errorf("parsing certification %q expiry: %w", c.Name, err)
				}
				cert.ExpiresOn = &exp
			}
			res.Certifications = append(res.Certifications, cert)
		}
		refMap[r.Ref] = res.ID
		gen.Resources = append(gen.Resources, res)
	}

	resolve := func(refs []string) ([]string, error) {
		ids := make([]string, 0, len(refs))
		for _, ref := range refs {
			id, ok := refMap[ref]
			if !ok {
				return nil, fmt.Errorf("unknown resource ref %q", ref)
			}
			ids = append(ids, id)
		}
		return ids, nil
	}

	for _, t := range schema.Tasks {
		resources, err := resolve(t.Resources)
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", t.Name, err)
		}
		equipment, err := resolve(t.Equipment)
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", t.Name, err)
		}
		gen.Tasks = append(gen.Tasks, &domain.Task{
			ID:                uuid.New().String(),
			ProjectID:         project.ID,
			Name:              t.Name,
			Status:            domain.TaskStatus(domain.CoalesceStr(t.Status, string(domain.TaskNotStarted))),
			StartDate:         t.StartDate,
			EndDate:           t.EndDate,
			Progress:          domain.Float64FromPtrWithDefault(0, t.Progress),
			AssignedResources: resources,
			AssignedEquipment: equipment,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
	}

	for _, a := range schema.Allocations {
		start, err := domain.ParseDate(a.StartDate)
		if err != nil {
			return nil, fmt.Errorf("allocation start_date: %w", err)
		}
		end, err := domain.ParseDate(a.EndDate)
		if err != nil {
			return nil, fmt.Errorf("allocation end_date: %w", err)
		}
		gen.Allocations = append(gen.Allocations, &domain.ResourceAllocation{
			ID:                   uuid.New().String(),
			ResourceID:           refMap[a.ResourceRef],
			ProjectID:            project.ID,
			StartDate:            start,
			EndDate:              end,
			AllocationPercentage: a.Percentage,
			Notes:                a.Notes,
			CreatedAt:            now,
		})
	}

	for _, s := range schema.SOVItems {
		resources, err := resolve(s.Resources)
		if err != nil {
			return nil, fmt.Errorf("sov item %q: %w", s.ItemNumber, err)
		}
		gen.SOVItems = append(gen.SOVItems, &domain.SOVItem{
			ID:                uuid.New().String(),
			ProjectID:         project.ID,
			ItemNumber:        s.ItemNumber,
			Description:       s.Description,
			ScheduledValue:    s.ScheduledValue,
			BilledToDate:      s.BilledToDate,
			AssignedResources: resources,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
	}

	return gen, nil
}
