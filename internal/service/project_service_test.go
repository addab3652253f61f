package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/alexanderramin/steelbuild/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_CreateDefaultsAndNormalizes(t *testing.T) {
	env := newTestEnv(t)
	svc := NewProjectService(env.projects)
	ctx := context.Background()

	p := &domain.Project{ProjectNumber: " sb-1042 ", Name: "Riverside Warehouse", StartDate: testutil.Date("2026-01-05")}
	require.NoError(t, svc.Create(ctx, p))

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "SB-1042", p.ProjectNumber)
	assert.Equal(t, domain.ProjectPlanning, p.Status)

	got, err := svc.Resolve(ctx, "sb-1042")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	got, err = svc.Resolve(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Riverside Warehouse", got.Name)
}

func TestProjectService_CreateRejectsInvalid(t *testing.T) {
	env := newTestEnv(t)
	svc := NewProjectService(env.projects)

	err := svc.Create(context.Background(), &domain.Project{ProjectNumber: "1042", Name: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProjectService_ResolveUnknown(t *testing.T) {
	env := newTestEnv(t)
	_, err := NewProjectService(env.projects).Resolve(context.Background(), "ZZ-999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectService_DeleteRequiresArchive(t *testing.T) {
	env := newTestEnv(t)
	svc := NewProjectService(env.projects)
	ctx := context.Background()
	p := env.project(t, "Tower")

	err := svc.Delete(ctx, p.ID, false)
	require.ErrorIs(t, err, domain.ErrValidation)

	require.NoError(t, svc.Archive(ctx, p.ID))
	require.NoError(t, svc.Delete(ctx, p.ID, false))

	_, err = svc.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectService_ForceDelete(t *testing.T) {
	env := newTestEnv(t)
	svc := NewProjectService(env.projects)
	p := env.project(t, "Tower")

	require.NoError(t, svc.Delete(context.Background(), p.ID, true))
}

func TestProjectService_ArchiveUnarchive(t *testing.T) {
	env := newTestEnv(t)
	svc := NewProjectService(env.projects)
	ctx := context.Background()
	p := env.project(t, "Tower")

	require.NoError(t, svc.Archive(ctx, p.ID))
	active, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	require.NoError(t, svc.Unarchive(ctx, p.ID))
	inProgress, err := svc.ListByStatus(ctx, domain.ProjectInProgress)
	require.NoError(t, err)
	require.Len(t, inProgress, 1)
	assert.Nil(t, inProgress[0].ArchivedAt)
}
