package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for a bulk project import.
// Tasks, allocations and SOV items point at resources by ref.
type ImportSchema struct {
	Project     ProjectImport      `json:"project"`
	Resources   []ResourceImport   `json:"resources"`
	Tasks       []TaskImport       `json:"tasks"`
	Allocations []AllocationImport `json:"allocations,omitempty"`
	SOVItems    []SOVImport        `json:"sov_items,omitempty"`
}

// ProjectImport defines the project-level fields in the import file.
type ProjectImport struct {
	ProjectNumber    string   `json:"project_number"`
	Name             string   `json:"name"`
	Client           string   `json:"client,omitempty"`
	Location         string   `json:"location,omitempty"`
	Status           string   `json:"status,omitempty"`
	StartDate        string   `json:"start_date"`
	TargetCompletion *string  `json:"target_completion,omitempty"`
	ContractValue    float64  `json:"contract_value,omitempty"`
	AssignedUsers    []string `json:"assigned_users,omitempty"`
}

type ResourceImport struct {
	Ref                      string                `json:"ref"`
	Name                     string                `json:"name"`
	Type                     string                `json:"type"`
	Trade                    string                `json:"trade,omitempty"`
	Status                   string                `json:"status,omitempty"`
	MaxConcurrentAssignments *int                  `json:"max_concurrent_assignments,omitempty"`
	HourlyRate               *float64              `json:"hourly_rate,omitempty"`
	Certifications           []CertificationImport `json:"certifications,omitempty"`
}

type CertificationImport struct {
	Name      string  `json:"name"`
	ExpiresOn *string `json:"expires_on,omitempty"`
}

// TaskImport lists assigned crew and equipment as resource refs.
type TaskImport struct {
	Name      string   `json:"name"`
	Status    string   `json:"status,omitempty"`
	StartDate string   `json:"start_date,omitempty"`
	EndDate   string   `json:"end_date,omitempty"`
	Progress  *float64 `json:"progress,omitempty"`
	Resources []string `json:"resources,omitempty"`
	Equipment []string `json:"equipment,omitempty"`
}

type AllocationImport struct {
	ResourceRef string  `json:"resource_ref"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Percentage  float64 `json:"allocation_percentage"`
	Notes       string  `json:"notes,omitempty"`
}

type SOVImport struct {
	ItemNumber     string   `json:"item_number"`
	Description    string   `json:"description,omitempty"`
	ScheduledValue float64  `json:"scheduled_value"`
	BilledToDate   float64  `json:"billed_to_date,omitempty"`
	Resources      []string `json:"resources,omitempty"`
}

// LoadImportSchema reads and parses an import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data)
}

func ParseImportSchema(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
