package contract

import (
	"encoding/json"
	"testing"

	"github.com/alexanderramin/steelbuild/internal/allocation"
	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/alexanderramin/steelbuild/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRequest_Filter(t *testing.T) {
	req := NewReportRequest("total_budget")
	req.ProjectID = "p1"
	req.From = "2026-01-01"
	req.To = "2026-03-31"

	f, err := req.Filter()
	require.NoError(t, err)
	assert.Equal(t, "p1", f.ProjectID)
	require.NotNil(t, f.From)
	require.NotNil(t, f.To)
	assert.Equal(t, "2026-01-01", f.From.Format(domain.DateLayout))
}

func TestReportRequest_Filter_Empty(t *testing.T) {
	f, err := NewReportRequest().Filter()
	require.NoError(t, err)
	assert.Nil(t, f.From)
	assert.Nil(t, f.To)
}

func TestReportRequest_Filter_Invalid(t *testing.T) {
	_, err := ReportRequest{From: "soon"}.Filter()
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = ReportRequest{From: "2026-02-01", To: "2026-01-01"}.Filter()
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReportResponse_FilterSummary(t *testing.T) {
	r := &ReportResponse{From: "2026-01-01"}
	assert.Equal(t, "project=all from=2026-01-01 to=*", r.FilterSummary())
}

func TestNewMetricView_CopiesGroups(t *testing.T) {
	v := NewMetricView(report.Result{
		Key: "tasks_by_status", Aggregation: report.Group,
		Groups: []report.GroupCount{{Key: "completed", Count: 2}},
	})
	assert.Equal(t, "group", v.Aggregation)
	assert.Equal(t, []GroupView{{Key: "completed", Count: 2}}, v.Groups)
}

func TestNewResourceUtilizationView(t *testing.T) {
	res := &domain.Resource{ID: "r1", Name: "Crane", Type: domain.ResourceEquipment, MaxConcurrentAssignments: 2}
	a := &domain.Task{ID: "a", Name: "A", ProjectID: "p1"}
	b := &domain.Task{ID: "b", Name: "B", ProjectID: "p2"}
	u := allocation.ResourceUtilization{
		Resource:      res,
		AssignedTasks: []*domain.Task{a, b},
		ActiveTasks:   []*domain.Task{a, b},
		Conflicts:     []allocation.Conflict{{Task1: a, Task2: b, Type: allocation.CrossProject}},
		Utilization:   100,
		ProjectsCount: 2,
		DateErrors:    []allocation.DateParseError{{TaskID: "c", Field: "start_date", Value: "x"}},
	}

	v := NewResourceUtilizationView(u)
	assert.Equal(t, 2, v.ActiveTasks)
	assert.Equal(t, 2, v.MaxConcurrent)
	require.Len(t, v.Conflicts, 1)
	assert.Equal(t, "cross-project", v.Conflicts[0].Type)
	assert.Len(t, v.DateErrors, 1)
}

func TestMonitorResponse_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(MonitorResponse{Success: true, AlertsFound: 2, NotificationsSent: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"alertsFound":2,"notificationsSent":3,"results":null}`, string(data))
}
