package domain

import (
	"strings"
	"time"
)

// DefaultMaxConcurrentAssignments applies when a resource does not declare
// its own concurrent task capacity.
const DefaultMaxConcurrentAssignments = 3

// Certification is a dated qualification held by a labor resource.
type Certification struct {
	Name      string     `json:"name"`
	ExpiresOn *time.Time `json:"expires_on,omitempty"`
}

// ExpiresWithin reports whether the certification has expired or will expire
// within window of now. Certifications without an expiry never expire.
func (c Certification) ExpiresWithin(now time.Time, window time.Duration) bool {
	if c.ExpiresOn == nil {
		return false
	}
	return !c.ExpiresOn.After(now.Add(window))
}

type Resource struct {
	ID                       string          `json:"id"`
	Name                     string          `json:"name"`
	Type                     ResourceType    `json:"type"`
	Trade                    string          `json:"trade"`
	Status                   ResourceStatus  `json:"status"`
	MaxConcurrentAssignments int             `json:"max_concurrent_assignments"`
	HourlyRate               float64         `json:"hourly_rate"`
	Certifications           []Certification `json:"certifications,omitempty"`
	CreatedAt                time.Time       `json:"created_at"`
	UpdatedAt                time.Time       `json:"updated_at"`
}

// MaxConcurrent returns the effective concurrent task capacity.
func (r *Resource) MaxConcurrent() int {
	if r.MaxConcurrentAssignments <= 0 {
		return DefaultMaxConcurrentAssignments
	}
	return r.MaxConcurrentAssignments
}

// IsOutOfService reports whether the resource cannot currently work.
func (r *Resource) IsOutOfService() bool {
	return r.Status == ResourceMaintenance || r.Status == ResourceUnavailable
}

func (r *Resource) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return invalidf("resource name is required")
	}
	if !ValidResourceTypes[string(r.Type)] {
		return invalidf("invalid resource type %q (labor, equipment, subcontractor)", r.Type)
	}
	if r.Status != "" && !ValidResourceStatuses[string(r.Status)] {
		return invalidf("invalid resource status %q", r.Status)
	}
	if r.MaxConcurrentAssignments < 0 {
		return invalidf("max concurrent assignments cannot be negative")
	}
	if r.HourlyRate < 0 {
		return invalidf("hourly rate cannot be negative")
	}
	for _, c := range r.Certifications {
		if strings.TrimSpace(c.Name) == "" {
			return invalidf("certification name is required")
		}
	}
	return nil
}

// ResourceAllocation reserves a percentage of a resource for a date range.
type ResourceAllocation struct {
	ID                   string    `json:"id"`
	ResourceID           string    `json:"resource_id"`
	ProjectID            string    `json:"project_id"`
	StartDate            time.Time `json:"start_date"`
	EndDate              time.Time `json:"end_date"`
	AllocationPercentage float64   `json:"allocation_percentage"`
	Notes                string    `json:"notes"`
	CreatedAt            time.Time `json:"created_at"`
}

// Covers reports whether now falls within the allocation's inclusive date range.
func (a *ResourceAllocation) Covers(now time.Time) bool {
	return WithinDays(now, a.StartDate, a.EndDate)
}

func (a *ResourceAllocation) Validate() error {
	if a.ResourceID == "" {
		return invalidf("allocation resource is required")
	}
	if a.EndDate.Before(a.StartDate) {
		return invalidf("allocation end date %s is before start date %s",
			a.EndDate.Format(DateLayout), a.StartDate.Format(DateLayout))
	}
	if a.AllocationPercentage <= 0 || a.AllocationPercentage > 100 {
		return invalidf("allocation percentage must be in (0, 100], got %.1f", a.AllocationPercentage)
	}
	return nil
}

// SOVItem is a Schedule of Values billing line.
type SOVItem struct {
	ID                string    `json:"id"`
	ProjectID         string    `json:"project_id"`
	ItemNumber        string    `json:"item_number"`
	Description       string    `json:"description"`
	ScheduledValue    float64   `json:"scheduled_value"`
	BilledToDate      float64   `json:"billed_to_date"`
	AssignedResources []string  `json:"assigned_resources,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// References reports whether resourceID is assigned to this line.
func (s *SOVItem) References(resourceID string) bool {
	for _, id := range s.AssignedResources {
		if id == resourceID {
			return true
		}
	}
	return false
}

// PercentBilled returns billed-to-date as a percentage of scheduled value.
func (s *SOVItem) PercentBilled() float64 {
	if s.ScheduledValue <= 0 {
		return 0
	}
	return s.BilledToDate / s.ScheduledValue * 100
}

func (s *SOVItem) Validate() error {
	if s.ProjectID == "" {
		return invalidf("SOV item project is required")
	}
	if strings.TrimSpace(s.ItemNumber) == "" {
		return invalidf("SOV item number is required")
	}
	if s.ScheduledValue < 0 || s.BilledToDate < 0 {
		return invalidf("SOV amounts cannot be negative")
	}
	return nil
}
