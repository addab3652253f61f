package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/steelbuild/internal/contract"
	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/alexanderramin/steelbuild/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUtilizationService_Compute(t *testing.T) {
	env := newTestEnv(t)
	obs := &recordingObserver{}
	svc := NewUtilizationService(env.uow, obs)
	ctx := context.Background()

	p1 := env.project(t, "Tower")
	p2 := env.project(t, "Bridge")
	crew := env.resource(t, "Crew A", domain.ResourceLabor, testutil.WithMaxConcurrent(2))
	idle := env.resource(t, "Crew B", domain.ResourceLabor)
	crane := env.resource(t, "Crane", domain.ResourceEquipment)

	env.task(t, p1.ID, "A", testutil.WithTaskDates("2026-03-01", "2026-03-10"),
		testutil.WithAssignedResources(crew.ID), testutil.WithTaskStatus(domain.TaskInProgress))
	env.task(t, p2.ID, "B", testutil.WithTaskDates("2026-03-05", "2026-03-15"),
		testutil.WithAssignedResources(crew.ID))
	env.task(t, p2.ID, "C", testutil.WithTaskDates("2026-03-05", "2026-03-15"),
		testutil.WithAssignedEquipment(crane.ID))

	now := testutil.Date("2026-03-06")
	req := contract.NewUtilizationRequest()
	req.Now = &now
	resp, err := svc.Compute(ctx, req)
	require.NoError(t, err)
	require.Len(t, resp.Resources, 3)
	assert.Equal(t, 3, resp.Summary.TotalResources)
	assert.Equal(t, 1, resp.Summary.CrossProject)

	byName := make(map[string]contract.ResourceUtilizationView)
	for _, v := range resp.Resources {
		byName[v.Name] = v
	}
	assert.Equal(t, 100, byName["Crew A"].Utilization)
	assert.Len(t, byName["Crew A"].Conflicts, 1)
	assert.Equal(t, 0, byName["Crew B"].Utilization)

	req.ProjectID = p1.ID
	resp, err = svc.Compute(ctx, req)
	require.NoError(t, err)
	require.Len(t, resp.Resources, 1)
	assert.Equal(t, crew.ID, resp.Resources[0].ResourceID)
	assert.Len(t, resp.Resources[0].Conflicts, 1, "conflicts with other projects still count")

	req.ProjectID = ""
	req.ResourceType = string(domain.ResourceEquipment)
	resp, err = svc.Compute(ctx, req)
	require.NoError(t, err)
	require.Len(t, resp.Resources, 1)
	assert.Equal(t, crane.ID, resp.Resources[0].ResourceID)

	req.ResourceType = ""
	req.OnlyProblems = true
	resp, err = svc.Compute(ctx, req)
	require.NoError(t, err)
	require.Len(t, resp.Resources, 1)
	assert.NotEqual(t, idle.ID, resp.Resources[0].ResourceID)

	require.NotEmpty(t, obs.events)
	assert.Equal(t, "resource-utilization", obs.events[0].Name)
}

func TestUtilizationService_Errors(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUtilizationService(env.uow)
	ctx := context.Background()

	_, err := svc.Compute(ctx, contract.UtilizationRequest{ResourceType: "robot"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Compute(ctx, contract.UtilizationRequest{ProjectID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
