package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/steelbuild/internal/db"
	"github.com/alexanderramin/steelbuild/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

const projectColumns = `id, project_number, name, client, location, status, start_date, target_completion,
	contract_value, assigned_users, archived_at, created_at, updated_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	users, err := encodeJSON(p.AssignedUsers)
	if err != nil {
		return fmt.Errorf("encoding assigned users: %w", err)
	}
	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.ProjectNumber,
		p.Name,
		p.Client,
		p.Location,
		string(p.Status),
		p.StartDate.Format(domain.DateLayout),
		nullableTimeToString(p.TargetCompletion, domain.DateLayout),
		p.ContractValue,
		users,
		nullableTimeToString(p.ArchivedAt, time.RFC3339),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	return scanProject(row)
}

func (r *SQLiteProjectRepo) GetByNumber(ctx context.Context, number string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE UPPER(project_number) = UPPER(?)`, number)
	return scanProject(row)
}

func (r *SQLiteProjectRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE archived_at IS NULL ORDER BY project_number`
	if includeArchived {
		query = `SELECT ` + projectColumns + ` FROM projects ORDER BY project_number`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return collect(rows, "projects", scanProject)
}

func (r *SQLiteProjectRepo) ListByStatus(ctx context.Context, status domain.ProjectStatus) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE status = ? ORDER BY project_number`, string(status))
	if err != nil {
		return nil, fmt.Errorf("listing projects by status: %w", err)
	}
	return collect(rows, "projects", scanProject)
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	users, err := encodeJSON(p.AssignedUsers)
	if err != nil {
		return fmt.Errorf("encoding assigned users: %w", err)
	}
	query := `UPDATE projects SET project_number = ?, name = ?, client = ?, location = ?, status = ?,
		start_date = ?, target_completion = ?, contract_value = ?, assigned_users = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.ProjectNumber,
		p.Name,
		p.Client,
		p.Location,
		string(p.Status),
		p.StartDate.Format(domain.DateLayout),
		nullableTimeToString(p.TargetCompletion, domain.DateLayout),
		p.ContractValue,
		users,
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return expectAffected(res, "project")
}

func (r *SQLiteProjectRepo) Archive(ctx context.Context, id string) error {
	now := nowUTC()
	query := `UPDATE projects SET status = 'archived', archived_at = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, now, now, id)
	if err != nil {
		return fmt.Errorf("archiving project: %w", err)
	}
	return expectAffected(res, "project")
}

// Unarchive returns the project to in_progress; the pre-archive status is not kept.
func (r *SQLiteProjectRepo) Unarchive(ctx context.Context, id string) error {
	now := nowUTC()
	query := `UPDATE projects SET status = 'in_progress', archived_at = NULL, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, now, id)
	if err != nil {
		return fmt.Errorf("unarchiving project: %w", err)
	}
	return expectAffected(res, "project")
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return expectAffected(res, "project")
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var statusStr, startDateStr, usersJSON, createdAtStr, updatedAtStr string
	var targetStr, archivedAtStr sql.NullString

	err := row.Scan(
		&p.ID, &p.ProjectNumber, &p.Name, &p.Client, &p.Location,
		&statusStr, &startDateStr, &targetStr,
		&p.ContractValue, &usersJSON, &archivedAtStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, notFound(err, "project")
	}

	p.Status = domain.ProjectStatus(statusStr)
	if p.StartDate, err = time.Parse(domain.DateLayout, startDateStr); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if p.CreatedAt, p.UpdatedAt, err = parseTimestamps(createdAtStr, updatedAtStr); err != nil {
		return nil, err
	}
	if p.AssignedUsers, err = decodeJSON[string](usersJSON, "assigned_users"); err != nil {
		return nil, err
	}
	p.TargetCompletion = parseNullableTime(targetStr, domain.DateLayout)
	p.ArchivedAt = parseNullableTime(archivedAtStr, time.RFC3339)
	return &p, nil
}
