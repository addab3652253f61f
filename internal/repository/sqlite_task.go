package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/steelbuild/internal/db"
	"github.com/alexanderramin/steelbuild/internal/domain"
)

// SQLiteTaskRepo implements TaskRepo. Task dates are stored exactly as
// entered so malformed values surface during utilization checks.
type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

const taskColumns = `id, project_id, name, status, start_date, end_date, progress,
	assigned_resources, assigned_equipment, created_at, updated_at`

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	res, equip, err := encodeTaskAssignments(t)
	if err != nil {
		return err
	}
	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		t.ID, t.ProjectID, t.Name, string(t.Status),
		t.StartDate, t.EndDate, t.Progress,
		res, equip,
		t.CreatedAt.Format(time.RFC3339), t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	return scanTask(row)
}

// List applies the filter in SQL. ResourceID matches against both
// assignment lists via json_each.
func (r *SQLiteTaskRepo) List(ctx context.Context, f TaskFilter) ([]*domain.Task, error) {
	var where []string
	var args []any
	if f.ProjectID != "" {
		where = append(where, "project_id = ?")
		args = append(args, f.ProjectID)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(f.Status))
	}
	if f.ResourceID != "" {
		where = append(where, `(EXISTS (SELECT 1 FROM json_each(tasks.assigned_resources) WHERE value = ?)
			OR EXISTS (SELECT 1 FROM json_each(tasks.assigned_equipment) WHERE value = ?))`)
		args = append(args, f.ResourceID, f.ResourceID)
	}
	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return collect(rows, "tasks", scanTask)
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	resJSON, equip, err := encodeTaskAssignments(t)
	if err != nil {
		return err
	}
	query := `UPDATE tasks SET name = ?, status = ?, start_date = ?, end_date = ?, progress = ?,
		assigned_resources = ?, assigned_equipment = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Name, string(t.Status), t.StartDate, t.EndDate, t.Progress,
		resJSON, equip, t.UpdatedAt.Format(time.RFC3339), t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return expectAffected(res, "task")
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return expectAffected(res, "task")
}

func encodeTaskAssignments(t *domain.Task) (string, string, error) {
	res, err := encodeJSON(t.AssignedResources)
	if err != nil {
		return "", "", fmt.Errorf("encoding assigned resources: %w", err)
	}
	equip, err := encodeJSON(t.AssignedEquipment)
	if err != nil {
		return "", "", fmt.Errorf("encoding assigned equipment: %w", err)
	}
	return res, equip, nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var statusStr, resJSON, equipJSON, createdAtStr, updatedAtStr string
	err := row.Scan(
		&t.ID, &t.ProjectID, &t.Name, &statusStr,
		&t.StartDate, &t.EndDate, &t.Progress,
		&resJSON, &equipJSON, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, notFound(err, "task")
	}
	t.Status = domain.TaskStatus(statusStr)
	if t.CreatedAt, t.UpdatedAt, err = parseTimestamps(createdAtStr, updatedAtStr); err != nil {
		return nil, err
	}
	if t.AssignedResources, err = decodeJSON[string](resJSON, "assigned_resources"); err != nil {
		return nil, err
	}
	if t.AssignedEquipment, err = decodeJSON[string](equipJSON, "assigned_equipment"); err != nil {
		return nil, err
	}
	return &t, nil
}
