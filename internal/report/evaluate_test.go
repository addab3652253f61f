package report

import (
	"testing"

	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/alexanderramin/steelbuild/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() *Dataset {
	jan := testutil.Date("2026-01-15")
	feb := testutil.Date("2026-02-15")
	delivered := testutil.Date("2026-01-20")
	return NewDataset(Source{
		Projects: []*domain.Project{
			{ID: "p1", Status: domain.ProjectInProgress, StartDate: jan, ContractValue: 100},
			{ID: "p2", Status: domain.ProjectPlanning, StartDate: feb, ContractValue: 50},
		},
		Tasks: []*domain.Task{
			{ID: "t1", ProjectID: "p1", Status: domain.TaskInProgress, StartDate: "2026-01-10", Progress: 40},
			{ID: "t2", ProjectID: "p1", Status: domain.TaskCompleted, StartDate: "2026-02-10", Progress: 100},
			{ID: "t3", ProjectID: "p2", Status: domain.TaskInProgress, StartDate: "bad", Progress: 10},
		},
		Financials: []*domain.Financial{
			{ProjectID: "p1", BudgetAmount: 1000, ActualAmount: 250, CreatedAt: jan},
			{ProjectID: "p2", BudgetAmount: 500, ActualAmount: 600, CreatedAt: feb},
		},
		Deliveries: []*domain.Delivery{
			{ProjectID: "p1", Status: domain.DeliveryDelivered, ScheduledDate: testutil.Date("2026-01-17"), DeliveredDate: &delivered},
			{ProjectID: "p1", Status: domain.DeliveryScheduled, ScheduledDate: feb},
			{ProjectID: "p2", Status: domain.DeliveryDelayed, ScheduledDate: feb},
		},
		SOVItems: []*domain.SOVItem{
			{ProjectID: "p1", ScheduledValue: 0, BilledToDate: 0, CreatedAt: jan},
		},
	})
}

func eval(t *testing.T, key string, f Filter) Result {
	t.Helper()
	c, err := LoadCatalog()
	require.NoError(t, err)
	def, err := c.Lookup(key)
	require.NoError(t, err)
	r, err := c.Evaluate(def, sampleDataset(), f)
	require.NoError(t, err)
	return r
}

func TestEvaluate_CountWithFilter(t *testing.T) {
	assert.Equal(t, 2.0, eval(t, "total_projects", Filter{}).Value)
	assert.Equal(t, 1.0, eval(t, "active_projects", Filter{}).Value)
}

func TestEvaluate_SumAndAvg(t *testing.T) {
	assert.Equal(t, 1500.0, eval(t, "total_budget", Filter{}).Value)
	assert.Equal(t, 50.0, eval(t, "avg_task_progress", Filter{}).Value)
	assert.Equal(t, 10.0, eval(t, "avg_task_progress", Filter{ProjectID: "p2"}).Value)
}

func TestEvaluate_AvgOfNothingIsZero(t *testing.T) {
	r := eval(t, "avg_task_progress", Filter{ProjectID: "missing"})
	assert.Equal(t, 0.0, r.Value)
}

func TestEvaluate_GroupSortedByKey(t *testing.T) {
	r := eval(t, "tasks_by_status", Filter{})
	require.Len(t, r.Groups, 2)
	assert.Equal(t, GroupCount{Key: "completed", Count: 1}, r.Groups[0])
	assert.Equal(t, GroupCount{Key: "in_progress", Count: 2}, r.Groups[1])
	assert.Equal(t, 3.0, r.Value)
}

func TestEvaluate_Calculated(t *testing.T) {
	assert.Equal(t, 650.0, eval(t, "budget_variance", Filter{}).Value)
	assert.Equal(t, 750.0, eval(t, "budget_variance", Filter{ProjectID: "p1"}).Value)
	assert.InDelta(t, 25.0, eval(t, "budget_spent_percent", Filter{ProjectID: "p1"}).Value, 1e-9)
}

func TestEvaluate_DivisionByZeroIsZero(t *testing.T) {
	assert.Equal(t, 0.0, eval(t, "percent_billed", Filter{}).Value)
}

func TestEvaluate_DateRangeInclusive(t *testing.T) {
	from := testutil.Date("2026-01-10")
	to := testutil.Date("2026-01-31")

	// t3 has no readable date and drops out under a date filter.
	r := eval(t, "tasks_by_status", Filter{From: &from, To: &to})
	require.Len(t, r.Groups, 1)
	assert.Equal(t, "in_progress", r.Groups[0].Key)
	assert.Equal(t, 1, r.Groups[0].Count)

	assert.Equal(t, 1000.0, eval(t, "total_budget", Filter{From: &from, To: &to}).Value)
}

func TestEvaluate_LateDeliveries(t *testing.T) {
	assert.Equal(t, 2.0, eval(t, "late_deliveries", Filter{}).Value)
	assert.Equal(t, 3.0, eval(t, "avg_delivery_delay", Filter{}).Value)
}

func TestEvaluateAll(t *testing.T) {
	c, err := LoadCatalog()
	require.NoError(t, err)

	all, err := c.EvaluateAll(nil, sampleDataset(), Filter{})
	require.NoError(t, err)
	assert.Len(t, all, len(c.Definitions()))

	some, err := c.EvaluateAll([]string{"total_budget", "actual_cost"}, sampleDataset(), Filter{})
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Equal(t, "total_budget", some[0].Key)
	assert.Equal(t, 850.0, some[1].Value)

	_, err = c.EvaluateAll([]string{"total_budget", "nope"}, sampleDataset(), Filter{})
	assert.ErrorIs(t, err, ErrUnknownMetric)
}

func TestEvaluate_AdHocDefinition(t *testing.T) {
	c, err := LoadCatalog()
	require.NoError(t, err)

	def := Definition{Key: "billed_plus_budget", Aggregation: Calculated, Operator: Add,
		Operands: []string{"total_budget", "contract_value"}}
	r, err := c.Evaluate(def, sampleDataset(), Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1650.0, r.Value)

	_, err = c.Evaluate(Definition{Key: "x", Aggregation: Calculated, Operator: Ratio,
		Operands: []string{"total_budget"}}, sampleDataset(), Filter{})
	assert.ErrorIs(t, err, ErrInvalidDefinition)

	_, err = c.Evaluate(Definition{Key: "x", Entity: Tasks, Aggregation: "median"}, sampleDataset(), Filter{})
	assert.ErrorIs(t, err, ErrInvalidDefinition)
}
