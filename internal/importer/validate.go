package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/steelbuild/internal/domain"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	errs = append(errs, validateProject(&schema.Project)...)

	refs := make(map[string]domain.ResourceType)
	errs = append(errs, validateResources(schema.Resources, refs)...)
	errs = append(errs, validateTasks(schema.Tasks, refs)...)
	errs = append(errs, validateAllocations(schema.Allocations, refs)...)
	errs = append(errs, validateSOVItems(schema.SOVItems, refs)...)

	return errs
}

func validateProject(p *ProjectImport) []error {
	var errs []error

	number := strings.ToUpper(p.ProjectNumber)
	probe := domain.Project{ProjectNumber: number}
	if err := probe.ValidateProjectNumber(); err != nil {
		errs = append(errs, fmt.Errorf("project.project_number: %w", err))
	}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, fmt.Errorf("project.name is required"))
	}
	if p.Status != "" && !domain.ValidProjectStatuses[p.Status] {
		errs = append(errs, fmt.Errorf("project.status: invalid value %q", p.Status))
	}
	if p.ContractValue < 0 {
		errs = append(errs, fmt.Errorf("project.contract_value cannot be negative"))
	}

	start, startErr := domain.ParseDate(p.StartDate)
	if p.StartDate == "" {
		errs = append(errs, fmt.Errorf("project.start_date is required"))
	} else if startErr != nil {
		errs = append(errs, fmt.Errorf("project.start_date: %w", startErr))
	}
	if p.TargetCompletion != nil {
		target, err := domain.ParseDate(*p.TargetCompletion)
		if err != nil {
			errs = append(errs, fmt.Errorf("project.target_completion: %w", err))
		} else if startErr == nil && target.Before(start) {
			errs = append(errs, fmt.Errorf("project.target_completion %q is before start_date %q", *p.TargetCompletion, p.StartDate))
		}
	}
	return errs
}

func validateResources(resources []ResourceImport, refs map[string]domain.ResourceType) []error {
	var errs []error
	for i, r := range resources {
		prefix := fmt.Sprintf("resources[%d]", i)
		if r.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if _, dup := refs[r.Ref]; dup {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, r.Ref))
		} else {
			refs[r.Ref] = domain.ResourceType(r.Type)
		}
		if strings.TrimSpace(r.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if !domain.ValidResourceTypes[r.Type] {
			errs = append(errs, fmt.Errorf("%s.type: invalid value %q", prefix, r.Type))
		}
		if r.Status != "" && !domain.ValidResourceStatuses[r.Status] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, r.Status))
		}
		if r.MaxConcurrentAssignments != nil && *r.MaxConcurrentAssignments < 0 {
			errs = append(errs, fmt.Errorf("%s.max_concurrent_assignments cannot be negative", prefix))
		}
		for j, c := range r.Certifications {
			if strings.TrimSpace(c.Name) == "" {
				errs = append(errs, fmt.Errorf("%s.certifications[%d].name is required", prefix, j))
			}
			if c.ExpiresOn != nil {
				if _, err := domain.ParseDate(*c.ExpiresOn); err != nil {
					errs = append(errs, fmt.Errorf("%s.certifications[%d].expires_on: %w", prefix, j, err))
				}
			}
		}
	}
	return errs
}

func validateTasks(tasks []TaskImport, refs map[string]domain.ResourceType) []error {
	var errs []error
	for i, t := range tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)
		if strings.TrimSpace(t.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if t.Status != "" && !domain.ValidTaskStatuses[t.Status] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, t.Status))
		}
		if t.Progress != nil && (*t.Progress < 0 || *t.Progress > 100) {
			errs = append(errs, fmt.Errorf("%s.progress must be between 0 and 100", prefix))
		}
		start, startErr := domain.ParseOptionalDate(t.StartDate)
		if startErr != nil {
			errs = append(errs, fmt.Errorf("%s.start_date: %w", prefix, startErr))
		}
		end, endErr := domain.ParseOptionalDate(t.EndDate)
		if endErr != nil {
			errs = append(errs, fmt.Errorf("%s.end_date: %w", prefix, endErr))
		}
		if start != nil && end != nil && end.Before(*start) {
			errs = append(errs, fmt.Errorf("%s.end_date %q is before start_date %q", prefix, t.EndDate, t.StartDate))
		}
		for _, ref := range t.Resources {
			if _, ok := refs[ref]; !ok {
				errs = append(errs, fmt.Errorf("%s.resources: unknown ref %q", prefix, ref))
			}
		}
		for _, ref := range t.Equipment {
			typ, ok := refs[ref]
			if !ok {
				errs = append(errs, fmt.Errorf("%s.equipment: unknown ref %q", prefix, ref))
			} else if typ != domain.ResourceEquipment {
				errs = append(errs, fmt.Errorf("%s.equipment: ref %q is not an equipment resource", prefix, ref))
			}
		}
	}
	return errs
}

func validateAllocations(allocs []AllocationImport, refs map[string]domain.ResourceType) []error {
	var errs []error
	for i, a := range allocs {
		prefix := fmt.Sprintf("allocations[%d]", i)
		if _, ok := refs[a.ResourceRef]; !ok {
			errs = append(errs, fmt.Errorf("%s.resource_ref: unknown ref %q", prefix, a.ResourceRef))
		}
		start, startErr := domain.ParseDate(a.StartDate)
		if startErr != nil {
			errs = append(errs, fmt.Errorf("%s.start_date: %w", prefix, startErr))
		}
		end, endErr := domain.ParseDate(a.EndDate)
		if endErr != nil {
			errs = append(errs, fmt.Errorf("%s.end_date: %w", prefix, endErr))
		}
		if startErr == nil && endErr == nil && end.Before(start) {
			errs = append(errs, fmt.Errorf("%s.end_date %q is before start_date %q", prefix, a.EndDate, a.StartDate))
		}
		if a.Percentage <= 0 || a.Percentage > 100 {
			errs = append(errs, fmt.Errorf("%s.allocation_percentage must be in (0, 100], got %g", prefix, a.Percentage))
		}
	}
	return errs
}

func validateSOVItems(items []SOVImport, refs map[string]domain.ResourceType) []error {
	var errs []error
	seen := make(map[string]bool)
	for i, s := range items {
		prefix := fmt.Sprintf("sov_items[%d]", i)
		if s.ItemNumber == "" {
			errs = append(errs, fmt.Errorf("%s.item_number is required", prefix))
		} else if seen[s.ItemNumber] {
			errs = append(errs, fmt.Errorf("%s.item_number: duplicate %q", prefix, s.ItemNumber))
		}
		seen[s.ItemNumber] = true
		if s.ScheduledValue < 0 || s.BilledToDate < 0 {
			errs = append(errs, fmt.Errorf("%s: values cannot be negative", prefix))
		}
		for _, ref := range s.Resources {
			if _, ok := refs[ref]; !ok {
				errs = append(errs, fmt.Errorf("%s.resources: unknown ref %q", prefix, ref))
			}
		}
	}
	return errs
}
