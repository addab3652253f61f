package domain

import (
	"regexp"
	"strings"
	"time"
)

var projectNumberPattern = regexp.MustCompile(`^[A-Z]{2,6}-?[0-9]{2,5}$`)

type Project struct {
	ID               string        `json:"id"`
	ProjectNumber    string        `json:"project_number"`
	Name             string        `json:"name"`
	Client           string        `json:"client"`
	Location         string        `json:"location"`
	Status           ProjectStatus `json:"status"`
	StartDate        time.Time     `json:"start_date"`
	TargetCompletion *time.Time    `json:"target_completion,omitempty"`
	ContractValue    float64       `json:"contract_value"`
	AssignedUsers    []string      `json:"assigned_users,omitempty"`
	ArchivedAt       *time.Time    `json:"archived_at,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// ValidateProjectNumber checks that ProjectNumber is non-empty and matches the
// required format: 2-6 uppercase letters, an optional dash, then 2-5 digits
// (e.g. SB-1042, HOSP24).
func (p *Project) ValidateProjectNumber() error {
	if p.ProjectNumber == "" {
		return invalidf("project number is required (use --number flag)")
	}
	if !projectNumberPattern.MatchString(p.ProjectNumber) {
		return invalidf("project number %q must be 2-6 uppercase letters, optional dash, then 2-5 digits (e.g. SB-1042)", p.ProjectNumber)
	}
	return nil
}

// Validate checks the fields a project cannot be stored without.
func (p *Project) Validate() error {
	if err := p.ValidateProjectNumber(); err != nil {
		return err
	}
	if strings.TrimSpace(p.Name) == "" {
		return invalidf("project name is required")
	}
	if p.Status != "" && !ValidProjectStatuses[string(p.Status)] {
		return invalidf("invalid project status %q", p.Status)
	}
	if p.TargetCompletion != nil && p.TargetCompletion.Before(p.StartDate) {
		return invalidf("target completion %s is before start date %s",
			p.TargetCompletion.Format(DateLayout), p.StartDate.Format(DateLayout))
	}
	if p.ContractValue < 0 {
		return invalidf("contract value cannot be negative")
	}
	return nil
}

// DisplayID returns the best short identifier for display.
// It prefers ProjectNumber; if empty it truncates ID to 8 characters.
func (p *Project) DisplayID() string {
	if p.ProjectNumber != "" {
		return p.ProjectNumber
	}
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}

// HasUser reports whether email is one of the project's assigned users.
func (p *Project) HasUser(email string) bool {
	for _, u := range p.AssignedUsers {
		if strings.EqualFold(u, email) {
			return true
		}
	}
	return false
}
