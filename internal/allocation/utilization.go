// Package allocation derives per-resource utilization, over-allocation and
// double-booking conflicts from tasks, SOV lines and dated allocations.
// Everything here is a pure function of its inputs.
package allocation

import (
	"math"
	"time"

	"github.com/alexanderramin/steelbuild/internal/domain"
)

type ConflictType string

const (
	CrossProject ConflictType = "cross-project"
	SameProject  ConflictType = "same-project"
)

// Conflict is a pair of active tasks booking the same resource on
// overlapping days. Task1 precedes Task2 in the resource's task order.
type Conflict struct {
	Task1 *domain.Task
	Task2 *domain.Task
	Type  ConflictType
}

// Inputs is the full data set a utilization pass reads.
type Inputs struct {
	Resources   []*domain.Resource
	Tasks       []*domain.Task
	SOVItems    []*domain.SOVItem
	Allocations []*domain.ResourceAllocation
}

type ResourceUtilization struct {
	Resource               *domain.Resource
	AssignedTasks          []*domain.Task
	ActiveTasks            []*domain.Task
	SOVAssignments         int
	TotalAllocationPercent float64
	Conflicts              []Conflict
	IsOverallocated        bool
	Utilization            int
	ProjectsCount          int
	DateErrors             []DateParseError
}

// HasConflicts reports whether any double-booking was detected.
func (u *ResourceUtilization) HasConflicts() bool {
	return len(u.Conflicts) > 0
}

// Compute derives the utilization of one resource as of now.
func Compute(res *domain.Resource, in Inputs, now time.Time) ResourceUtilization {
	u := ResourceUtilization{Resource: res}

	projects := make(map[string]bool)
	for _, t := range in.Tasks {
		if !t.References(res.ID) {
			continue
		}
		u.AssignedTasks = append(u.AssignedTasks, t)
		projects[t.ProjectID] = true
		if t.IsActive() {
			u.ActiveTasks = append(u.ActiveTasks, t)
		}
	}
	u.ProjectsCount = len(projects)

	for _, s := range in.SOVItems {
		if s.References(res.ID) {
			u.SOVAssignments++
		}
	}

	for _, a := range in.Allocations {
		if a.ResourceID == res.ID && a.Covers(now) {
			u.TotalAllocationPercent += a.AllocationPercentage
		}
	}

	u.Conflicts, u.DateErrors = detectConflicts(u.ActiveTasks)

	maxConcurrent := res.MaxConcurrent()
	u.IsOverallocated = len(u.ActiveTasks) > maxConcurrent || u.TotalAllocationPercent > 100
	u.Utilization = int(math.Round(math.Min(float64(len(u.ActiveTasks))/float64(maxConcurrent)*100, 100)))
	return u
}

// ComputeAll runs Compute for every resource, preserving input order.
func ComputeAll(in Inputs, now time.Time) []ResourceUtilization {
	out := make([]ResourceUtilization, 0, len(in.Resources))
	for _, r := range in.Resources {
		out = append(out, Compute(r, in, now))
	}
	return out
}

// detectConflicts checks every unordered pair once. Tasks with unreadable
// dates are reported once each and excluded from pairing.
func detectConflicts(active []*domain.Task) ([]Conflict, []DateParseError) {
	spans := make([]span, len(active))
	valid := make([]bool, len(active))
	var dateErrs []DateParseError
	for i, t := range active {
		s, errs := taskSpan(t)
		spans[i] = s
		valid[i] = len(errs) == 0
		dateErrs = append(dateErrs, errs...)
	}

	var conflicts []Conflict
	for i := 0; i < len(active); i++ {
		if !valid[i] {
			continue
		}
		for j := i + 1; j < len(active); j++ {
			if !valid[j] || !spansOverlap(spans[i], spans[j]) {
				continue
			}
			typ := SameProject
			if active[i].ProjectID != active[j].ProjectID {
				typ = CrossProject
			}
			conflicts = append(conflicts, Conflict{Task1: active[i], Task2: active[j], Type: typ})
		}
	}
	return conflicts, dateErrs
}
