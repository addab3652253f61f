package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/steelbuild/internal/contract"
	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/alexanderramin/steelbuild/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type monitorFixture struct {
	env      *testEnv
	svc      MonitorService
	pusher   *recordingPusher
	recorder *recordingRecorder
	project  *domain.Project
	crew     *domain.Resource
	crane    *domain.Resource
	incident *domain.SafetyIncident
}

func newMonitorFixture(t *testing.T) *monitorFixture {
	t.Helper()
	env := newTestEnv(t)
	ctx := context.Background()
	now := testutil.Date("2026-03-06")

	f := &monitorFixture{
		env:      env,
		pusher:   &recordingPusher{failFor: map[string]bool{}},
		recorder: &recordingRecorder{},
	}
	f.svc = NewMonitorService(env.uow, MonitorConfig{
		CertWindow: 30 * 24 * time.Hour,
		Pusher:     f.pusher,
		Recorder:   f.recorder,
		Now:        func() time.Time { return now },
	})

	f.project = env.project(t, "Tower", testutil.WithAssignedUsers("pm@example.com", "super@example.com"))
	planning := env.project(t, "Bridge", testutil.WithProjectStatus(domain.ProjectPlanning))

	f.crew = env.resource(t, "Crew A", domain.ResourceLabor,
		testutil.WithMaxConcurrent(1),
		testutil.WithCertification("OSHA 30", testutil.Date("2026-03-20")),
		testutil.WithCertification("Rigging", testutil.Date("2027-06-01")))
	f.crane = env.resource(t, "Crane", domain.ResourceEquipment,
		testutil.WithResourceStatus(domain.ResourceMaintenance))
	healthy := env.resource(t, "Lift", domain.ResourceEquipment)

	env.task(t, f.project.ID, "Set steel", testutil.WithTaskDates("2026-03-01", "2026-03-31"),
		testutil.WithTaskStatus(domain.TaskInProgress),
		testutil.WithAssignedResources(f.crew.ID),
		testutil.WithAssignedEquipment(f.crane.ID, healthy.ID))
	env.task(t, f.project.ID, "Bolt up", testutil.WithTaskDates("2026-03-10", "2026-03-20"),
		testutil.WithAssignedResources(f.crew.ID))
	env.task(t, planning.ID, "Survey", testutil.WithAssignedEquipment(f.crane.ID))

	f.incident = testutil.NewTestIncident(f.project.ID, "Dropped load", domain.PriorityCritical)
	require.NoError(t, env.incidents.Create(ctx, f.incident))
	require.NoError(t, env.incidents.Create(ctx, testutil.NewTestIncident(f.project.ID, "Paper cut", domain.PriorityLow)))
	require.NoError(t, env.incidents.Create(ctx, testutil.NewTestIncident(planning.ID, "Fall", domain.PriorityHigh)))
	return f
}

func TestMonitorCriticalEvents_RaisesAllAlertTypes(t *testing.T) {
	f := newMonitorFixture(t)
	ctx := context.Background()

	resp, err := f.svc.MonitorCriticalEvents(ctx)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 4, resp.AlertsFound)
	assert.Equal(t, 8, resp.NotificationsSent)

	p, crew := f.project.ID, f.crew.ID
	var got []string
	for _, r := range resp.Results {
		assert.Equal(t, contract.AlertCreated, r.Status)
		assert.Equal(t, 2, r.NotificationsSent)
		got = append(got, r.Type+" "+r.ReferenceID)
	}
	assert.Equal(t, []string{
		"labor_overallocated " + p + ":" + crew,
		"certification_expiring " + p + ":" + crew + ":OSHA 30",
		"equipment_unavailable " + p + ":" + f.crane.ID,
		"safety_incident " + f.incident.ID,
	}, got)

	assert.Len(t, f.pusher.messages, 8)
	assert.Equal(t, []bool{true}, f.recorder.runs)
	assert.Len(t, f.recorder.alerts, 4)
	assert.Equal(t, 8, f.recorder.sent)

	notes, err := f.env.notifications.ListByUser(ctx, "pm@example.com", true)
	require.NoError(t, err)
	assert.Len(t, notes, 4)
}

func TestMonitorCriticalEvents_DeduplicatesAcrossRuns(t *testing.T) {
	f := newMonitorFixture(t)
	ctx := context.Background()

	_, err := f.svc.MonitorCriticalEvents(ctx)
	require.NoError(t, err)

	resp, err := f.svc.MonitorCriticalEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, resp.AlertsFound)
	assert.Equal(t, 0, resp.NotificationsSent)
	for _, r := range resp.Results {
		assert.Equal(t, contract.AlertSkipped, r.Status)
	}
	assert.Len(t, f.pusher.messages, 8, "no new pushes on the second run")

	notes, err := f.env.notifications.ListByUser(ctx, "super@example.com", false)
	require.NoError(t, err)
	assert.Len(t, notes, 4)
}

func TestMonitorCriticalEvents_PushFailureKeepsNotification(t *testing.T) {
	f := newMonitorFixture(t)
	f.pusher.failFor["super@example.com"] = true
	ctx := context.Background()

	resp, err := f.svc.MonitorCriticalEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, resp.NotificationsSent)
	for _, r := range resp.Results {
		require.Len(t, r.PushErrors, 1)
		assert.Contains(t, r.PushErrors[0], "super@example.com")
	}

	notes, err := f.env.notifications.ListByUser(ctx, "super@example.com", false)
	require.NoError(t, err)
	assert.Len(t, notes, 4)
}

func TestMonitorCriticalEvents_NoInProgressProjects(t *testing.T) {
	env := newTestEnv(t)
	env.project(t, "Done", testutil.WithProjectStatus(domain.ProjectCompleted))
	svc := NewMonitorService(env.uow, MonitorConfig{})

	resp, err := svc.MonitorCriticalEvents(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Zero(t, resp.AlertsFound)
	assert.Empty(t, resp.Results)
}

func TestMonitorCriticalEvents_StoreFailure(t *testing.T) {
	f := newMonitorFixture(t)
	uow := &testutil.FailOnNthExecUoW{DB: f.env.db, FailOn: 2, Err: errInjected}
	svc := NewMonitorService(uow, MonitorConfig{
		CertWindow: 30 * 24 * time.Hour,
		Pusher:     f.pusher,
		Recorder:   f.recorder,
		Now:        func() time.Time { return testutil.Date("2026-03-06") },
	})

	_, err := svc.MonitorCriticalEvents(context.Background())
	require.ErrorIs(t, err, errInjected)
	assert.Equal(t, []bool{false}, f.recorder.runs)

	notes, err := f.env.notifications.ListByUser(context.Background(), "pm@example.com", false)
	require.NoError(t, err)
	assert.Empty(t, notes, "first alert's notifications roll back together")
}

func TestFunctionService_Invoke(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFunctionService(NewMonitorService(env.uow, MonitorConfig{}))
	ctx := context.Background()

	assert.Equal(t, []string{MonitorCriticalEventsFunction}, svc.Names())

	out, err := svc.Invoke(ctx, MonitorCriticalEventsFunction)
	require.NoError(t, err)
	resp, ok := out.(*contract.MonitorResponse)
	require.True(t, ok)
	assert.True(t, resp.Success)

	_, err = svc.Invoke(ctx, "sendInvoices")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
