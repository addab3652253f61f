package db_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/alexanderramin/steelbuild/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestUoW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

func insertPrefs(ctx context.Context, tx db.DBTX, email string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO dashboard_preferences (user_email, widgets, updated_at) VALUES (?, '[]', '2025-01-01T00:00:00Z')`, email)
	return err
}

// prefsExist reads through a snapshot so the check never writes.
func prefsExist(t *testing.T, uow *db.SQLiteUnitOfWork, email string) bool {
	t.Helper()
	var n int
	err := uow.Snapshot(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM dashboard_preferences WHERE user_email = ?`, email).Scan(&n)
	})
	require.NoError(t, err)
	return n > 0
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertPrefs(ctx, tx, "pm@steel.example")
	})
	require.NoError(t, err)
	assert.True(t, prefsExist(t, uow, "pm@steel.example"))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertPrefs(ctx, tx, "pm@steel.example"); err != nil {
			return err
		}
		return fmt.Errorf("deliberate failure")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")
	assert.False(t, prefsExist(t, uow, "pm@steel.example"))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := openTestUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertPrefs(ctx, tx, "pm@steel.example")
			panic("boom")
		})
	})
	assert.False(t, prefsExist(t, uow, "pm@steel.example"))
}

func TestSnapshot_NeverCommits(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.Snapshot(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertPrefs(ctx, tx, "super@steel.example")
	})
	require.NoError(t, err)
	assert.False(t, prefsExist(t, uow, "super@steel.example"))
}
