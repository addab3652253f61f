package contract

import (
	"time"

	"github.com/alexanderramin/steelbuild/internal/allocation"
)

type UtilizationRequest struct {
	ProjectID    string
	ResourceType string
	Now          *time.Time
	OnlyProblems bool
}

func NewUtilizationRequest() UtilizationRequest {
	return UtilizationRequest{}
}

type ConflictView struct {
	Task1ID   string `json:"task1_id"`
	Task1Name string `json:"task1_name"`
	Task2ID   string `json:"task2_id"`
	Task2Name string `json:"task2_name"`
	Type      string `json:"type"`
}

type ResourceUtilizationView struct {
	ResourceID             string         `json:"resource_id"`
	Name                   string         `json:"name"`
	Type                   string         `json:"type"`
	Status                 string         `json:"status"`
	AssignedTasks          int            `json:"assigned_tasks"`
	ActiveTasks            int            `json:"active_tasks"`
	MaxConcurrent          int            `json:"max_concurrent"`
	SOVAssignments         int            `json:"sov_assignments"`
	TotalAllocationPercent float64        `json:"total_allocation_percent"`
	Utilization            int            `json:"utilization"`
	IsOverallocated        bool           `json:"is_overallocated"`
	ProjectsCount          int            `json:"projects_count"`
	Conflicts              []ConflictView `json:"conflicts"`
	DateErrors             []string       `json:"date_errors,omitempty"`
}

// NewResourceUtilizationView flattens a computed utilization for output.
func NewResourceUtilizationView(u allocation.ResourceUtilization) ResourceUtilizationView {
	v := ResourceUtilizationView{
		ResourceID:             u.Resource.ID,
		Name:                   u.Resource.Name,
		Type:                   string(u.Resource.Type),
		Status:                 string(u.Resource.Status),
		AssignedTasks:          len(u.AssignedTasks),
		ActiveTasks:            len(u.ActiveTasks),
		MaxConcurrent:          u.Resource.MaxConcurrent(),
		SOVAssignments:         u.SOVAssignments,
		TotalAllocationPercent: u.TotalAllocationPercent,
		Utilization:            u.Utilization,
		IsOverallocated:        u.IsOverallocated,
		ProjectsCount:          u.ProjectsCount,
		Conflicts:              make([]ConflictView, 0, len(u.Conflicts)),
	}
	for _, c := range u.Conflicts {
		v.Conflicts = append(v.Conflicts, ConflictView{
			Task1ID:   c.Task1.ID,
			Task1Name: c.Task1.Name,
			Task2ID:   c.Task2.ID,
			Task2Name: c.Task2.Name,
			Type:      string(c.Type),
		})
	}
	for _, e := range u.DateErrors {
		v.DateErrors = append(v.DateErrors, e.Error())
	}
	return v
}

type UtilizationResponse struct {
	GeneratedAt time.Time                 `json:"generated_at"`
	Summary     allocation.Summary        `json:"summary"`
	Resources   []ResourceUtilizationView `json:"resources"`
	// Results keeps the full computation for callers that need task detail.
	Results []allocation.ResourceUtilization `json:"-"`
}
