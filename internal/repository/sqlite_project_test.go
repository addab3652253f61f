package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/alexanderramin/steelbuild/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	target := testutil.Date("2027-03-31")
	proj := testutil.NewTestProject("Riverside Hospital",
		testutil.WithTargetCompletion(target),
		testutil.WithAssignedUsers("pm@steelbuild.test", "super@steelbuild.test"),
		testutil.WithContractValue(1250000))
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
	assert.Equal(t, "Riverside Hospital", fetched.Name)
	assert.Equal(t, domain.ProjectInProgress, fetched.Status)
	assert.Equal(t, 1250000.0, fetched.ContractValue)
	assert.Equal(t, []string{"pm@steelbuild.test", "super@steelbuild.test"}, fetched.AssignedUsers)
	require.NotNil(t, fetched.TargetCompletion)
	assert.Equal(t, "2027-03-31", fetched.TargetCompletion.Format(domain.DateLayout))
}

func TestProjectRepo_GetByNumber(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Warehouse", testutil.WithProjectNumber("SB-1042"))
	require.NoError(t, repo.Create(ctx, proj))

	// Case-insensitive lookup.
	fetched, err := repo.GetByNumber(ctx, "sb-1042")
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
	assert.Equal(t, "SB-1042", fetched.ProjectNumber)
}

func TestProjectRepo_DuplicateNumberRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestProject("A", testutil.WithProjectNumber("SB-200"))))
	assert.Error(t, repo.Create(ctx, testutil.NewTestProject("B", testutil.WithProjectNumber("SB-200"))))
}

func TestProjectRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectRepo_List_ExcludesArchived(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	active := testutil.NewTestProject("Active")
	archived := testutil.NewTestProject("Archived")
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, archived))
	require.NoError(t, repo.Archive(ctx, archived.ID))

	projects, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, active.ID, projects[0].ID)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byStatus, err := repo.ListByStatus(ctx, domain.ProjectArchived)
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.NotNil(t, byStatus[0].ArchivedAt)
}

func TestProjectRepo_Unarchive(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Bridge")
	require.NoError(t, repo.Create(ctx, proj))
	require.NoError(t, repo.Archive(ctx, proj.ID))
	require.NoError(t, repo.Unarchive(ctx, proj.ID))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectInProgress, fetched.Status)
	assert.Nil(t, fetched.ArchivedAt)
}

func TestProjectRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Old Name")
	require.NoError(t, repo.Create(ctx, proj))

	proj.Name = "New Name"
	proj.Status = domain.ProjectOnHold
	proj.AssignedUsers = []string{"estimator@steelbuild.test"}
	require.NoError(t, repo.Update(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", fetched.Name)
	assert.Equal(t, domain.ProjectOnHold, fetched.Status)
	assert.Equal(t, []string{"estimator@steelbuild.test"}, fetched.AssignedUsers)
}

func TestProjectRepo_UpdateAndDelete_Missing(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	ghost := testutil.NewTestProject("Ghost")
	assert.ErrorIs(t, repo.Update(ctx, ghost), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, ghost.ID), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Archive(ctx, ghost.ID), domain.ErrNotFound)
}

func TestProjectRepo_DeleteCascadesTasks(t *testing.T) {
	db := testutil.NewTestDB(t)
	projects := NewSQLiteProjectRepo(db)
	tasks := NewSQLiteTaskRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Tower")
	require.NoError(t, projects.Create(ctx, proj))
	require.NoError(t, tasks.Create(ctx, testutil.NewTestTask(proj.ID, "Pour footings")))

	require.NoError(t, projects.Delete(ctx, proj.ID))

	remaining, err := tasks.List(ctx, TaskFilter{ProjectID: proj.ID})
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
