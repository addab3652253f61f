package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/alexanderramin/steelbuild/internal/importer"
	"github.com/alexanderramin/steelbuild/internal/repository"
	"github.com/alexanderramin/steelbuild/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validImportSchema() *importer.ImportSchema {
	return &importer.ImportSchema{
		Project: importer.ProjectImport{
			ProjectNumber: "RB-101",
			Name:          "Rollback Test Project",
			StartDate:     "2026-01-01",
			Status:        "in_progress",
		},
		Resources: []importer.ResourceImport{
			{Ref: "crew", Name: "Crew A", Type: "labor"},
			{Ref: "crane", Name: "Crane", Type: "equipment"},
		},
		Tasks: []importer.TaskImport{
			{Name: "Set steel", StartDate: "2026-01-05", EndDate: "2026-01-20", Resources: []string{"crew"}, Equipment: []string{"crane"}},
			{Name: "Bolt up", StartDate: "2026-01-15", EndDate: "2026-01-30", Resources: []string{"crew"}},
		},
		Allocations: []importer.AllocationImport{
			{ResourceRef: "crew", StartDate: "2026-01-01", EndDate: "2026-01-31", Percentage: 80},
		},
		SOVItems: []importer.SOVImport{
			{ItemNumber: "05-100", ScheduledValue: 50000, Resources: []string{"crew"}},
		},
	}
}

func TestImportService_ImportProjectFromSchema(t *testing.T) {
	env := newTestEnv(t)
	obs := &recordingObserver{}
	svc := NewImportService(env.uow, obs)
	ctx := context.Background()

	result, err := svc.ImportProjectFromSchema(ctx, validImportSchema())
	require.NoError(t, err)
	assert.Equal(t, "RB-101", result.Project.ProjectNumber)
	assert.Equal(t, 2, result.ResourceCount)
	assert.Equal(t, 2, result.TaskCount)
	assert.Equal(t, 1, result.AllocationCount)
	assert.Equal(t, 1, result.SOVItemCount)

	tasks, err := env.tasks.List(ctx, repository.TaskFilter{ProjectID: result.Project.ID})
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	resources, err := env.resources.List(ctx, domain.ResourceEquipment)
	require.NoError(t, err)
	require.Len(t, resources, 1)

	require.Len(t, obs.events, 1)
	assert.Equal(t, "import-project", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
}

func TestImportService_ImportProjectFromFile(t *testing.T) {
	env := newTestEnv(t)
	svc := NewImportService(env.uow)
	path := filepath.Join(t.TempDir(), "project.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"project": {"project_number": "SB-2001", "name": "Depot", "start_date": "2026-04-01"},
		"resources": [{"ref": "w", "name": "Welder", "type": "labor"}],
		"tasks": [{"name": "Weld", "resources": ["w"]}]
	}`), 0o644))

	result, err := svc.ImportProject(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectPlanning, result.Project.Status)
	assert.Equal(t, 1, result.TaskCount)
}

func TestImportService_ValidationErrorsAggregated(t *testing.T) {
	env := newTestEnv(t)
	obs := &recordingObserver{}
	svc := NewImportService(env.uow, obs)
	schema := validImportSchema()
	schema.Project.Name = ""
	schema.Tasks[0].Resources = []string{"ghost"}

	_, err := svc.ImportProjectFromSchema(context.Background(), schema)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "import validation failed (2 errors)")

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)

	projects, err := env.projects.List(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, projects)
	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
}

func TestImportService_RollbackOnResourceCreateFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Exec calls: #1 = project, #2 = resource "crew", #3 = resource "crane".
	uow := &testutil.FailOnNthExecUoW{DB: env.db, FailOn: 3, Err: errInjected}
	svc := NewImportService(uow)

	_, err := svc.ImportProjectFromSchema(ctx, validImportSchema())
	require.ErrorIs(t, err, errInjected)
	assert.Contains(t, err.Error(), `creating resource "Crane"`)

	projects, err := env.projects.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, projects, "no projects should exist after rollback")

	resources, err := env.resources.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, resources)
}

func TestImportService_RollbackOnSOVCreateFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// #1 project, #2-3 resources, #4-5 tasks, #6 allocation, #7 SOV item.
	uow := &testutil.FailOnNthExecUoW{DB: env.db, FailOn: 7, Err: errInjected}
	svc := NewImportService(uow)

	_, err := svc.ImportProjectFromSchema(ctx, validImportSchema())
	require.ErrorIs(t, err, errInjected)

	tasks, err := env.tasks.List(ctx, repository.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, tasks)
	allocations, err := env.allocations.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, allocations)
}
