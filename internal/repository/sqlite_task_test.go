package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/alexanderramin/steelbuild/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskRepo_RoundTripKeepsRawDates(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Plant")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))
	repo := NewSQLiteTaskRepo(db)

	task := testutil.NewTestTask(proj.ID, "Set steel",
		testutil.WithTaskDates("2026-13-45", "2026-02-01"),
		testutil.WithAssignedResources("r1", "r2"),
		testutil.WithAssignedEquipment("crane"))
	require.NoError(t, repo.Create(ctx, task))

	fetched, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-13-45", fetched.StartDate)
	assert.Equal(t, "2026-02-01", fetched.EndDate)
	assert.Equal(t, []string{"r1", "r2"}, fetched.AssignedResources)
	assert.Equal(t, []string{"crane"}, fetched.AssignedEquipment)
}

func TestTaskRepo_ListFilters(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projects := NewSQLiteProjectRepo(db)
	p1 := testutil.NewTestProject("One")
	p2 := testutil.NewTestProject("Two")
	require.NoError(t, projects.Create(ctx, p1))
	require.NoError(t, projects.Create(ctx, p2))

	repo := NewSQLiteTaskRepo(db)
	require.NoError(t, repo.Create(ctx, testutil.NewTestTask(p1.ID, "a",
		testutil.WithAssignedResources("welder"), testutil.WithTaskStatus(domain.TaskInProgress))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestTask(p1.ID, "b",
		testutil.WithAssignedEquipment("welder"))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestTask(p2.ID, "c")))

	all, err := repo.List(ctx, TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byProject, err := repo.List(ctx, TaskFilter{ProjectID: p1.ID})
	require.NoError(t, err)
	assert.Len(t, byProject, 2)

	byResource, err := repo.List(ctx, TaskFilter{ResourceID: "welder"})
	require.NoError(t, err)
	assert.Len(t, byResource, 2)

	byStatus, err := repo.List(ctx, TaskFilter{ResourceID: "welder", Status: domain.TaskInProgress})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "a", byStatus[0].Name)
}

func TestTaskRepo_UpdateAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Depot")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))
	repo := NewSQLiteTaskRepo(db)

	task := testutil.NewTestTask(proj.ID, "Erect frame")
	require.NoError(t, repo.Create(ctx, task))

	task.Progress = 55
	task.Status = domain.TaskInProgress
	require.NoError(t, repo.Update(ctx, task))

	fetched, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 55.0, fetched.Progress)
	assert.Equal(t, domain.TaskInProgress, fetched.Status)

	require.NoError(t, repo.Delete(ctx, task.ID))
	_, err = repo.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
