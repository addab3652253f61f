package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/steelbuild/internal/db"
	"github.com/alexanderramin/steelbuild/internal/domain"
)

// SQLiteSOVRepo stores Schedule of Values lines.
type SQLiteSOVRepo struct {
	db db.DBTX
}

func NewSQLiteSOVRepo(conn db.DBTX) *SQLiteSOVRepo {
	return &SQLiteSOVRepo{db: conn}
}

const sovColumns = `id, project_id, item_number, description, scheduled_value, billed_to_date,
	assigned_resources, created_at, updated_at`

func (r *SQLiteSOVRepo) Create(ctx context.Context, s *domain.SOVItem) error {
	assigned, err := encodeJSON(s.AssignedResources)
	if err != nil {
		return fmt.Errorf("encoding assigned resources: %w", err)
	}
	query := `INSERT INTO sov_items (` + sovColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		s.ID, s.ProjectID, s.ItemNumber, s.Description, s.ScheduledValue, s.BilledToDate,
		assigned, s.CreatedAt.Format(time.RFC3339), s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting sov item: %w", err)
	}
	return nil
}

func (r *SQLiteSOVRepo) GetByID(ctx context.Context, id string) (*domain.SOVItem, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sovColumns+` FROM sov_items WHERE id = ?`, id)
	return scanSOV(row)
}

// List returns every SOV line when projectID is empty.
func (r *SQLiteSOVRepo) List(ctx context.Context, projectID string) ([]*domain.SOVItem, error) {
	query, args := byProject(`SELECT `+sovColumns+` FROM sov_items`, projectID, "item_number, id")
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sov items: %w", err)
	}
	return collect(rows, "sov items", scanSOV)
}

func (r *SQLiteSOVRepo) Update(ctx context.Context, s *domain.SOVItem) error {
	assigned, err := encodeJSON(s.AssignedResources)
	if err != nil {
		return fmt.Errorf("encoding assigned resources: %w", err)
	}
	query := `UPDATE sov_items SET item_number = ?, description = ?, scheduled_value = ?, billed_to_date = ?,
		assigned_resources = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.ItemNumber, s.Description, s.ScheduledValue, s.BilledToDate,
		assigned, s.UpdatedAt.Format(time.RFC3339), s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating sov item: %w", err)
	}
	return expectAffected(res, "sov item")
}

func (r *SQLiteSOVRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sov_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting sov item: %w", err)
	}
	return expectAffected(res, "sov item")
}

func scanSOV(row rowScanner) (*domain.SOVItem, error) {
	var s domain.SOVItem
	var assignedJSON, createdAtStr, updatedAtStr string
	err := row.Scan(&s.ID, &s.ProjectID, &s.ItemNumber, &s.Description,
		&s.ScheduledValue, &s.BilledToDate, &assignedJSON, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, notFound(err, "sov item")
	}
	if s.CreatedAt, s.UpdatedAt, err = parseTimestamps(createdAtStr, updatedAtStr); err != nil {
		return nil, err
	}
	if s.AssignedResources, err = decodeJSON[string](assignedJSON, "assigned_resources"); err != nil {
		return nil, err
	}
	return &s, nil
}
