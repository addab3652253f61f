package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/steelbuild/internal/db"
	"github.com/alexanderramin/steelbuild/internal/domain"
)

type SQLiteAllocationRepo struct {
	db db.DBTX
}

func NewSQLiteAllocationRepo(conn db.DBTX) *SQLiteAllocationRepo {
	return &SQLiteAllocationRepo{db: conn}
}

const allocationColumns = `id, resource_id, project_id, start_date, end_date, allocation_percentage, notes, created_at`

func (r *SQLiteAllocationRepo) Create(ctx context.Context, a *domain.ResourceAllocation) error {
	var projectID any
	if a.ProjectID != "" {
		projectID = a.ProjectID
	}
	query := `INSERT INTO resource_allocations (` + allocationColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.ResourceID, projectID,
		a.StartDate.Format(domain.DateLayout), a.EndDate.Format(domain.DateLayout),
		a.AllocationPercentage, a.Notes, a.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting allocation: %w", err)
	}
	return nil
}

func (r *SQLiteAllocationRepo) GetByID(ctx context.Context, id string) (*domain.ResourceAllocation, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+allocationColumns+` FROM resource_allocations WHERE id = ?`, id)
	return scanAllocation(row)
}

func (r *SQLiteAllocationRepo) List(ctx context.Context) ([]*domain.ResourceAllocation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+allocationColumns+` FROM resource_allocations ORDER BY start_date, id`)
	if err != nil {
		return nil, fmt.Errorf("listing allocations: %w", err)
	}
	return collect(rows, "allocations", scanAllocation)
}

func (r *SQLiteAllocationRepo) ListByResource(ctx context.Context, resourceID string) ([]*domain.ResourceAllocation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+allocationColumns+` FROM resource_allocations WHERE resource_id = ? ORDER BY start_date, id`, resourceID)
	if err != nil {
		return nil, fmt.Errorf("listing allocations for resource: %w", err)
	}
	return collect(rows, "allocations", scanAllocation)
}

func (r *SQLiteAllocationRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM resource_allocations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting allocation: %w", err)
	}
	return expectAffected(res, "allocation")
}

func scanAllocation(row rowScanner) (*domain.ResourceAllocation, error) {
	var a domain.ResourceAllocation
	var projectID sql.NullString
	var startStr, endStr, createdAtStr string
	err := row.Scan(&a.ID, &a.ResourceID, &projectID, &startStr, &endStr,
		&a.AllocationPercentage, &a.Notes, &createdAtStr)
	if err != nil {
		return nil, notFound(err, "allocation")
	}
	a.ProjectID = projectID.String
	if a.StartDate, err = time.Parse(domain.DateLayout, startStr); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if a.EndDate, err = time.Parse(domain.DateLayout, endStr); err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}
	if a.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &a, nil
}
