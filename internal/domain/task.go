package domain

import (
	"strings"
	"time"
)

// Task is a schedulable unit of project work. StartDate and EndDate keep the
// dates as they were recorded; they are parsed where a range is needed so
// malformed values can be reported rather than dropped on load.
type Task struct {
	ID                string     `json:"id"`
	ProjectID         string     `json:"project_id"`
	Name              string     `json:"name"`
	Status            TaskStatus `json:"status"`
	StartDate         string     `json:"start_date"`
	EndDate           string     `json:"end_date"`
	Progress          float64    `json:"progress"`
	AssignedResources []string   `json:"assigned_resources,omitempty"`
	AssignedEquipment []string   `json:"assigned_equipment,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// IsActive reports whether the task still occupies its assigned resources.
func (t *Task) IsActive() bool {
	return t.Status.IsActive()
}

// References reports whether resourceID appears in either assignment list.
func (t *Task) References(resourceID string) bool {
	for _, id := range t.AssignedResources {
		if id == resourceID {
			return true
		}
	}
	for _, id := range t.AssignedEquipment {
		if id == resourceID {
			return true
		}
	}
	return false
}

// ResourceIDs returns the union of both assignment lists without duplicates.
func (t *Task) ResourceIDs() []string {
	seen := make(map[string]bool, len(t.AssignedResources)+len(t.AssignedEquipment))
	var ids []string
	for _, list := range [][]string{t.AssignedResources, t.AssignedEquipment} {
		for _, id := range list {
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// Validate checks required fields. Dates are checked only when present.
func (t *Task) Validate() error {
	if t.ProjectID == "" {
		return invalidf("task project is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return invalidf("task name is required")
	}
	if t.Status != "" && !ValidTaskStatuses[string(t.Status)] {
		return invalidf("invalid task status %q", t.Status)
	}
	if t.Progress < 0 || t.Progress > 100 {
		return invalidf("task progress must be between 0 and 100, got %.1f", t.Progress)
	}
	var start, end *time.Time
	var err error
	if start, err = ParseOptionalDate(t.StartDate); err != nil {
		return invalidf("task start date: %v", err)
	}
	if end, err = ParseOptionalDate(t.EndDate); err != nil {
		return invalidf("task end date: %v", err)
	}
	if start != nil && end != nil && end.Before(*start) {
		return invalidf("task end date %s is before start date %s", t.EndDate, t.StartDate)
	}
	return nil
}
