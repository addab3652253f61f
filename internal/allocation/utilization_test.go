package allocation

import (
	"testing"
	"time"

	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/alexanderramin/steelbuild/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var evalNow = testutil.Date("2026-01-07")

func task(id, projectID, start, end string, status domain.TaskStatus, resources ...string) *domain.Task {
	return &domain.Task{
		ID:                id,
		ProjectID:         projectID,
		Name:              id,
		Status:            status,
		StartDate:         start,
		EndDate:           end,
		AssignedResources: resources,
	}
}

func resource(id string, maxConcurrent int) *domain.Resource {
	return &domain.Resource{ID: id, Name: id, Type: domain.ResourceLabor, MaxConcurrentAssignments: maxConcurrent}
}

func TestCompute_ExampleScenario(t *testing.T) {
	r := resource("R", 2)
	a := task("A", "P1", "2026-01-01", "2026-01-10", domain.TaskInProgress, "R")
	b := task("B", "P2", "2026-01-05", "2026-01-15", domain.TaskInProgress, "R")
	c := task("C", "P1", "2026-02-01", "2026-02-05", domain.TaskCompleted, "R")

	u := Compute(r, Inputs{Resources: []*domain.Resource{r}, Tasks: []*domain.Task{a, b, c}}, evalNow)

	assert.Len(t, u.AssignedTasks, 3)
	assert.Equal(t, []*domain.Task{a, b}, u.ActiveTasks)
	require.Len(t, u.Conflicts, 1)
	assert.Equal(t, Conflict{Task1: a, Task2: b, Type: CrossProject}, u.Conflicts[0])
	assert.Equal(t, 100, u.Utilization)
	assert.False(t, u.IsOverallocated)
	assert.Equal(t, 2, u.ProjectsCount)
	assert.Empty(t, u.DateErrors)
}

func TestCompute_DisjointRangesNoConflict(t *testing.T) {
	r := resource("R", 3)
	tasks := []*domain.Task{
		task("A", "P1", "2026-01-01", "2026-01-04", domain.TaskInProgress, "R"),
		task("B", "P1", "2026-01-05", "2026-01-09", domain.TaskNotStarted, "R"),
	}
	u := Compute(r, Inputs{Tasks: tasks}, evalNow)
	assert.Empty(t, u.Conflicts)
	assert.Len(t, u.ActiveTasks, 2)
}

func TestCompute_TouchingRangesConflictSameProject(t *testing.T) {
	r := resource("R", 3)
	tasks := []*domain.Task{
		task("A", "P1", "2026-01-01", "2026-01-05", domain.TaskInProgress, "R"),
		task("B", "P1", "2026-01-05", "2026-01-09", domain.TaskInProgress, "R"),
	}
	u := Compute(r, Inputs{Tasks: tasks}, evalNow)
	require.Len(t, u.Conflicts, 1)
	assert.Equal(t, SameProject, u.Conflicts[0].Type)
}

func TestCompute_OnePerUnorderedPair(t *testing.T) {
	r := resource("R", 5)
	tasks := []*domain.Task{
		task("A", "P1", "2026-01-01", "2026-01-31", domain.TaskInProgress, "R"),
		task("B", "P2", "2026-01-02", "2026-01-30", domain.TaskInProgress, "R"),
		task("C", "P3", "2026-01-03", "2026-01-29", domain.TaskInProgress, "R"),
	}
	u := Compute(r, Inputs{Tasks: tasks}, evalNow)
	assert.Len(t, u.Conflicts, 3)
	for _, c := range u.Conflicts {
		assert.NotEqual(t, c.Task1.ID, c.Task2.ID)
		assert.Equal(t, CrossProject, c.Type)
	}
}

func TestCompute_InactiveTasksNeverConflict(t *testing.T) {
	r := resource("R", 3)
	for _, status := range []domain.TaskStatus{domain.TaskCompleted, domain.TaskCancelled, domain.TaskOnHold} {
		tasks := []*domain.Task{
			task("A", "P1", "2026-01-01", "2026-01-10", domain.TaskInProgress, "R"),
			task("B", "P2", "2026-01-01", "2026-01-10", status, "R"),
		}
		u := Compute(r, Inputs{Tasks: tasks}, evalNow)
		assert.Len(t, u.ActiveTasks, 1, status)
		assert.Empty(t, u.Conflicts, status)
	}
}

func TestCompute_EquipmentAssignmentCounts(t *testing.T) {
	crane := &domain.Resource{ID: "crane", Name: "Crane", Type: domain.ResourceEquipment}
	a := task("A", "P1", "2026-01-01", "2026-01-10", domain.TaskInProgress)
	a.AssignedEquipment = []string{"crane"}
	b := task("B", "P1", "2026-01-02", "2026-01-03", domain.TaskInProgress, "crane")
	b.AssignedEquipment = []string{"crane"}

	u := Compute(crane, Inputs{Tasks: []*domain.Task{a, b}}, evalNow)
	assert.Len(t, u.AssignedTasks, 2)
	assert.Len(t, u.Conflicts, 1)
	assert.Equal(t, 1, u.ProjectsCount)
}

func TestCompute_OverallocatedByTaskCount(t *testing.T) {
	r := resource("R", 2)
	tasks := []*domain.Task{
		task("A", "P1", "2026-01-01", "2026-01-02", domain.TaskInProgress, "R"),
		task("B", "P1", "2026-02-01", "2026-02-02", domain.TaskInProgress, "R"),
		task("C", "P1", "2026-03-01", "2026-03-02", domain.TaskNotStarted, "R"),
	}
	u := Compute(r, Inputs{Tasks: tasks}, evalNow)
	assert.True(t, u.IsOverallocated)
	assert.Equal(t, 100, u.Utilization)
}

func TestCompute_OverallocatedByCurrentAllocations(t *testing.T) {
	r := resource("R", 3)
	allocs := []*domain.ResourceAllocation{
		{ResourceID: "R", StartDate: testutil.Date("2026-01-01"), EndDate: testutil.Date("2026-01-07"), AllocationPercentage: 60},
		{ResourceID: "R", StartDate: testutil.Date("2026-01-07"), EndDate: testutil.Date("2026-01-31"), AllocationPercentage: 50},
		// Not current.
		{ResourceID: "R", StartDate: testutil.Date("2026-02-01"), EndDate: testutil.Date("2026-02-28"), AllocationPercentage: 90},
		// Other resource.
		{ResourceID: "S", StartDate: testutil.Date("2026-01-01"), EndDate: testutil.Date("2026-01-31"), AllocationPercentage: 90},
	}
	u := Compute(r, Inputs{Allocations: allocs}, evalNow.Add(15*time.Hour))
	assert.Equal(t, 110.0, u.TotalAllocationPercent)
	assert.True(t, u.IsOverallocated)
	assert.Equal(t, 0, u.Utilization)
}

func TestCompute_ExactlyFullIsNotOverallocated(t *testing.T) {
	r := resource("R", 3)
	allocs := []*domain.ResourceAllocation{
		{ResourceID: "R", StartDate: testutil.Date("2026-01-01"), EndDate: testutil.Date("2026-01-31"), AllocationPercentage: 100},
	}
	u := Compute(r, Inputs{Allocations: allocs}, evalNow)
	assert.Equal(t, 100.0, u.TotalAllocationPercent)
	assert.False(t, u.IsOverallocated)
}

func TestCompute_DefaultMaxConcurrent(t *testing.T) {
	r := resource("R", 0)
	tasks := []*domain.Task{
		task("A", "P1", "2026-01-01", "2026-01-02", domain.TaskInProgress, "R"),
		task("B", "P1", "2026-02-01", "2026-02-02", domain.TaskInProgress, "R"),
		task("C", "P1", "2026-03-01", "2026-03-02", domain.TaskInProgress, "R"),
	}
	u := Compute(r, Inputs{Tasks: tasks[:2]}, evalNow)
	assert.Equal(t, 67, u.Utilization)
	assert.False(t, u.IsOverallocated)

	u = Compute(r, Inputs{Tasks: tasks}, evalNow)
	assert.Equal(t, 100, u.Utilization)
	assert.False(t, u.IsOverallocated)
}

func TestCompute_MalformedDatesSkipPairAndReport(t *testing.T) {
	r := resource("R", 5)
	tasks := []*domain.Task{
		task("A", "P1", "2026-01-01", "2026-01-10", domain.TaskInProgress, "R"),
		task("B", "P2", "not-a-date", "2026-01-10", domain.TaskInProgress, "R"),
		task("C", "P2", "2026-01-05", "", domain.TaskInProgress, "R"),
		task("D", "P1", "2026-01-09", "2026-01-12", domain.TaskInProgress, "R"),
	}
	var u ResourceUtilization
	require.NotPanics(t, func() { u = Compute(r, Inputs{Tasks: tasks}, evalNow) })

	require.Len(t, u.Conflicts, 1)
	assert.Equal(t, "A", u.Conflicts[0].Task1.ID)
	assert.Equal(t, "D", u.Conflicts[0].Task2.ID)

	require.Len(t, u.DateErrors, 2)
	assert.Equal(t, "B", u.DateErrors[0].TaskID)
	assert.Equal(t, "start_date", u.DateErrors[0].Field)
	assert.Equal(t, "not-a-date", u.DateErrors[0].Value)
	assert.Equal(t, "C", u.DateErrors[1].TaskID)
	assert.Equal(t, "end_date", u.DateErrors[1].Field)
}

func TestCompute_SOVAssignments(t *testing.T) {
	r := resource("R", 3)
	sov := []*domain.SOVItem{
		{ID: "1", AssignedResources: []string{"R"}},
		{ID: "2", AssignedResources: []string{"S", "R"}},
		{ID: "3"},
	}
	u := Compute(r, Inputs{SOVItems: sov}, evalNow)
	assert.Equal(t, 2, u.SOVAssignments)
}

func TestComputeAll_PreservesOrder(t *testing.T) {
	in := Inputs{Resources: []*domain.Resource{resource("Z", 1), resource("A", 1), resource("M", 1)}}
	out := ComputeAll(in, evalNow)
	require.Len(t, out, 3)
	assert.Equal(t, "Z", out[0].Resource.ID)
	assert.Equal(t, "A", out[1].Resource.ID)
	assert.Equal(t, "M", out[2].Resource.ID)
}

func TestOverlaps(t *testing.T) {
	a := task("A", "P1", "2026-01-01", "2026-01-10", domain.TaskInProgress)
	b := task("B", "P1", "2026-01-10T08:00:00Z", "2026-01-12", domain.TaskInProgress)
	c := task("C", "P1", "2026-01-11", "2026-01-12", domain.TaskInProgress)
	bad := task("X", "P1", "2026/01/01", "2026-01-02", domain.TaskInProgress)

	ok, err := Overlaps(a, b)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Overlaps(a, c)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = Overlaps(a, bad)
	var dpe *DateParseError
	require.ErrorAs(t, err, &dpe)
	assert.Equal(t, "X", dpe.TaskID)
	assert.Equal(t, "start_date", dpe.Field)
}

func TestSummarize(t *testing.T) {
	results := []ResourceUtilization{
		{Utilization: 100, IsOverallocated: true, Conflicts: []Conflict{{Type: CrossProject}, {Type: SameProject}}},
		{Utilization: 50, DateErrors: []DateParseError{{TaskID: "x"}}},
		{Utilization: 0},
	}
	s := Summarize(results)
	assert.Equal(t, 3, s.TotalResources)
	assert.Equal(t, 1, s.Overallocated)
	assert.Equal(t, 1, s.WithConflicts)
	assert.Equal(t, 2, s.ConflictCount)
	assert.Equal(t, 1, s.CrossProject)
	assert.Equal(t, 1, s.DateErrors)
	assert.Equal(t, 50.0, s.AverageUtilization)

	assert.Equal(t, Summary{}, Summarize(nil))
}
