package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/steelbuild/internal/allocation"
	"github.com/alexanderramin/steelbuild/internal/contract"
	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/stretchr/testify/assert"
)

func sampleUtilization() *contract.UtilizationResponse {
	return &contract.UtilizationResponse{
		Summary: allocation.Summary{TotalResources: 2, Overallocated: 1, ConflictCount: 1, AverageUtilization: 75},
		Resources: []contract.ResourceUtilizationView{
			{
				Name: "Ironworker Crew A", Type: "labor", ActiveTasks: 2, MaxConcurrent: 1,
				Utilization: 100, IsOverallocated: true, ProjectsCount: 2,
				Conflicts: []contract.ConflictView{{Task1Name: "Erect columns", Task2Name: "Set joists", Type: "cross-project"}},
			},
			{Name: "Tower Crane", Type: "equipment", ActiveTasks: 1, MaxConcurrent: 2, Utilization: 50},
		},
	}
}

func TestFormatUtilization(t *testing.T) {
	out := StripANSI(FormatUtilization(sampleUtilization()))
	assert.Contains(t, out, "RESOURCE UTILIZATION")
	assert.Contains(t, out, "▲ Ironworker Crew A")
	assert.Contains(t, out, "Tower Crane")
	assert.Contains(t, out, "Avg utilization 75.0%")
}

func TestFormatUtilization_Empty(t *testing.T) {
	out := StripANSI(FormatUtilization(&contract.UtilizationResponse{}))
	assert.Contains(t, out, "No resources match.")
}

func TestFormatConflicts(t *testing.T) {
	out := StripANSI(FormatConflicts(sampleUtilization()))
	assert.Contains(t, out, "IRONWORKER CREW A")
	assert.Contains(t, out, "cross-project  Erect columns ↔ Set joists")
	assert.NotContains(t, out, "TOWER CRANE")

	clean := &contract.UtilizationResponse{Resources: []contract.ResourceUtilizationView{{Name: "Idle"}}}
	assert.Equal(t, "No scheduling conflicts detected.", StripANSI(FormatConflicts(clean)))
}

func TestFormatMetricValue(t *testing.T) {
	assert.Equal(t, "$1,500", FormatMetricValue(contract.MetricView{Value: 1500, Format: "currency"}))
	assert.Equal(t, "42.5%", FormatMetricValue(contract.MetricView{Value: 42.5, Format: "percent"}))
	assert.Equal(t, "7", FormatMetricValue(contract.MetricView{Value: 7}))
	assert.Equal(t, "2.33", FormatMetricValue(contract.MetricView{Value: 2.3333}))
}

func TestFormatReport(t *testing.T) {
	out := StripANSI(FormatReport(&contract.ReportResponse{
		ProjectID: "p1",
		Metrics: []contract.MetricView{
			{Label: "Tasks by status", Value: 3, Groups: []contract.GroupView{{Key: "completed", Count: 1}, {Key: "in_progress", Count: 2}}},
		},
	}))
	assert.Contains(t, out, "project=p1 from=* to=*")
	assert.Contains(t, out, "Tasks by status  3")
	assert.Contains(t, out, "in_progress")
}

func TestFormatMonitorResult(t *testing.T) {
	out := StripANSI(FormatMonitorResult(&contract.MonitorResponse{
		Success: true, AlertsFound: 2, NotificationsSent: 2,
		Results: []contract.AlertResult{
			{Title: "Crane down", Priority: "high", Status: contract.AlertCreated, PushErrors: []string{"TIMEOUT"}},
			{Title: "Crew over-allocated", Priority: "medium", Status: contract.AlertSkipped},
		},
	}))
	assert.Contains(t, out, "Alerts found 2")
	assert.Contains(t, out, "new     ● HIGH Crane down")
	assert.Contains(t, out, "push failed: TIMEOUT")
	assert.Contains(t, out, "skipped ● MEDIUM Crew over-allocated")

	empty := StripANSI(FormatMonitorResult(&contract.MonitorResponse{Success: true}))
	assert.Contains(t, empty, "No critical events.")
}

func TestFormatFinancialList_Total(t *testing.T) {
	out := StripANSI(FormatFinancialList([]*domain.Financial{
		{ID: "f1", Category: "Steel", BudgetAmount: 1000, ActualAmount: 1200},
		{ID: "f2", Category: "Labor", BudgetAmount: 500, ActualAmount: 100},
	}))
	assert.Contains(t, out, "-$200")
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "$1,500")
}

func TestFormatDeliveryList(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	delivered := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	out := StripANSI(FormatDeliveryList([]*domain.Delivery{
		{ID: "d1", Description: "Joists", Status: domain.DeliveryDelivered, ScheduledDate: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), DeliveredDate: &delivered},
		{ID: "d2", Description: "Decking", Status: domain.DeliveryScheduled, ScheduledDate: time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)},
	}, now))
	assert.Contains(t, out, "3d late")
	assert.Contains(t, out, "In 3d")
}
