package api

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/steelbuild/internal/domain"
)

// Request bodies carry dates as YYYY-MM-DD strings; these inputs convert
// them to domain values.

type projectInput struct {
	ProjectNumber    string   `json:"project_number"`
	Name             string   `json:"name"`
	Client           string   `json:"client"`
	Location         string   `json:"location"`
	Status           string   `json:"status"`
	StartDate        string   `json:"start_date"`
	TargetCompletion string   `json:"target_completion"`
	ContractValue    *float64 `json:"contract_value"`
	AssignedUsers    []string `json:"assigned_users"`
}

// apply copies the fields that were supplied onto p.
func (in projectInput) apply(p *domain.Project) error {
	if in.ProjectNumber != "" {
		p.ProjectNumber = strings.ToUpper(strings.TrimSpace(in.ProjectNumber))
	}
	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Client != "" {
		p.Client = in.Client
	}
	if in.Location != "" {
		p.Location = in.Location
	}
	if in.Status != "" {
		p.Status = domain.ProjectStatus(in.Status)
	}
	if in.StartDate != "" {
		d, err := domain.ParseDate(in.StartDate)
		if err != nil {
			return badInput("start_date", err)
		}
		p.StartDate = d
	}
	if in.TargetCompletion != "" {
		d, err := domain.ParseDate(in.TargetCompletion)
		if err != nil {
			return badInput("target_completion", err)
		}
		p.TargetCompletion = &d
	}
	if in.ContractValue != nil {
		p.ContractValue = *in.ContractValue
	}
	if in.AssignedUsers != nil {
		p.AssignedUsers = in.AssignedUsers
	}
	return nil
}

type certificationInput struct {
	Name      string `json:"name"`
	ExpiresOn string `json:"expires_on"`
}

type resourceInput struct {
	Name                     string               `json:"name"`
	Type                     string               `json:"type"`
	Trade                    string               `json:"trade"`
	Status                   string               `json:"status"`
	MaxConcurrentAssignments int                  `json:"max_concurrent_assignments"`
	HourlyRate               float64              `json:"hourly_rate"`
	Certifications           []certificationInput `json:"certifications"`
}

func (in resourceInput) toDomain() (*domain.Resource, error) {
	r := &domain.Resource{
		Name:                     in.Name,
		Type:                     domain.ResourceType(in.Type),
		Trade:                    in.Trade,
		Status:                   domain.ResourceStatus(in.Status),
		MaxConcurrentAssignments: in.MaxConcurrentAssignments,
		HourlyRate:               in.HourlyRate,
	}
	for i, c := range in.Certifications {
		expires, err := domain.ParseOptionalDate(c.ExpiresOn)
		if err != nil {
			return nil, badInput(fmt.Sprintf("certifications[%d].expires_on", i), err)
		}
		r.Certifications = append(r.Certifications, domain.Certification{Name: c.Name, ExpiresOn: expires})
	}
	return r, nil
}

type allocationInput struct {
	ResourceID           string  `json:"resource_id"`
	ProjectID            string  `json:"project_id"`
	StartDate            string  `json:"start_date"`
	EndDate              string  `json:"end_date"`
	AllocationPercentage float64 `json:"allocation_percentage"`
	Notes                string  `json:"notes"`
}

func (in allocationInput) toDomain() (*domain.ResourceAllocation, error) {
	start, err := domain.ParseDate(in.StartDate)
	if err != nil {
		return nil, badInput("start_date", err)
	}
	end, err := domain.ParseDate(in.EndDate)
	if err != nil {
		return nil, badInput("end_date", err)
	}
	return &domain.ResourceAllocation{
		ResourceID:           in.ResourceID,
		ProjectID:            in.ProjectID,
		StartDate:            start,
		EndDate:              end,
		AllocationPercentage: in.AllocationPercentage,
		Notes:                in.Notes,
	}, nil
}

type dashboardInput struct {
	Widgets []string `json:"widgets"`
}

func badInput(field string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrValidation, field, err)
}
