package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/alexanderramin/steelbuild/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceRepo_CertificationsRoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteResourceRepo(db)
	ctx := context.Background()

	res := testutil.NewTestResource("Dana Ortiz", domain.ResourceLabor,
		testutil.WithTrade("ironworker"),
		testutil.WithMaxConcurrent(2),
		testutil.WithCertification("AWS D1.1", testutil.Date("2026-11-01")))
	require.NoError(t, repo.Create(ctx, res))

	fetched, err := repo.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "ironworker", fetched.Trade)
	assert.Equal(t, 2, fetched.MaxConcurrent())
	require.Len(t, fetched.Certifications, 1)
	assert.Equal(t, "AWS D1.1", fetched.Certifications[0].Name)
	require.NotNil(t, fetched.Certifications[0].ExpiresOn)
	assert.True(t, fetched.Certifications[0].ExpiresOn.Equal(testutil.Date("2026-11-01")))
}

func TestResourceRepo_ListByType(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteResourceRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestResource("Crane 40T", domain.ResourceEquipment)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestResource("Alex Kim", domain.ResourceLabor)))

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	equipment, err := repo.List(ctx, domain.ResourceEquipment)
	require.NoError(t, err)
	require.Len(t, equipment, 1)
	assert.Equal(t, "Crane 40T", equipment[0].Name)
}

func TestAllocationRepo_ListByResource(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	res := testutil.NewTestResource("Alex Kim", domain.ResourceLabor)
	require.NoError(t, NewSQLiteResourceRepo(db).Create(ctx, res))
	repo := NewSQLiteAllocationRepo(db)

	a := testutil.NewTestAllocation(res.ID, "", testutil.Date("2026-01-01"), testutil.Date("2026-01-31"), 60)
	require.NoError(t, repo.Create(ctx, a))

	list, err := repo.ListByResource(ctx, res.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "", list[0].ProjectID)
	assert.Equal(t, 60.0, list[0].AllocationPercentage)
	assert.True(t, list[0].EndDate.Equal(testutil.Date("2026-01-31")))

	require.NoError(t, repo.Delete(ctx, a.ID))
	assert.ErrorIs(t, repo.Delete(ctx, a.ID), domain.ErrNotFound)
}
