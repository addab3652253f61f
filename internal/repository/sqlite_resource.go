package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/steelbuild/internal/db"
	"github.com/alexanderramin/steelbuild/internal/domain"
)

// SQLiteResourceRepo implements ResourceRepo. Certifications live in a
// JSON column alongside the resource row.
type SQLiteResourceRepo struct {
	db db.DBTX
}

func NewSQLiteResourceRepo(conn db.DBTX) *SQLiteResourceRepo {
	return &SQLiteResourceRepo{db: conn}
}

const resourceColumns = `id, name, type, trade, status, max_concurrent_assignments, hourly_rate,
	certifications, created_at, updated_at`

func (r *SQLiteResourceRepo) Create(ctx context.Context, res *domain.Resource) error {
	certs, err := encodeJSON(res.Certifications)
	if err != nil {
		return fmt.Errorf("encoding certifications: %w", err)
	}
	query := `INSERT INTO resources (` + resourceColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		res.ID, res.Name, string(res.Type), res.Trade, string(res.Status),
		res.MaxConcurrentAssignments, res.HourlyRate, certs,
		res.CreatedAt.Format(time.RFC3339), res.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting resource: %w", err)
	}
	return nil
}

func (r *SQLiteResourceRepo) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+resourceColumns+` FROM resources WHERE id = ?`, id)
	return scanResource(row)
}

// List returns all resources, or only those of resourceType when non-empty.
func (r *SQLiteResourceRepo) List(ctx context.Context, resourceType domain.ResourceType) ([]*domain.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources ORDER BY name, id`
	var args []any
	if resourceType != "" {
		query = `SELECT ` + resourceColumns + ` FROM resources WHERE type = ? ORDER BY name, id`
		args = append(args, string(resourceType))
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing resources: %w", err)
	}
	return collect(rows, "resources", scanResource)
}

func (r *SQLiteResourceRepo) Update(ctx context.Context, res *domain.Resource) error {
	certs, err := encodeJSON(res.Certifications)
	if err != nil {
		return fmt.Errorf("encoding certifications: %w", err)
	}
	query := `UPDATE resources SET name = ?, type = ?, trade = ?, status = ?, max_concurrent_assignments = ?,
		hourly_rate = ?, certifications = ?, updated_at = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query,
		res.Name, string(res.Type), res.Trade, string(res.Status), res.MaxConcurrentAssignments,
		res.HourlyRate, certs, res.UpdatedAt.Format(time.RFC3339), res.ID,
	)
	if err != nil {
		return fmt.Errorf("updating resource: %w", err)
	}
	return expectAffected(result, "resource")
}

func (r *SQLiteResourceRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM resources WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting resource: %w", err)
	}
	return expectAffected(result, "resource")
}

func scanResource(row rowScanner) (*domain.Resource, error) {
	var res domain.Resource
	var typeStr, statusStr, certsJSON, createdAtStr, updatedAtStr string
	err := row.Scan(
		&res.ID, &res.Name, &typeStr, &res.Trade, &statusStr,
		&res.MaxConcurrentAssignments, &res.HourlyRate, &certsJSON,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, notFound(err, "resource")
	}
	res.Type = domain.ResourceType(typeStr)
	res.Status = domain.ResourceStatus(statusStr)
	if res.CreatedAt, res.UpdatedAt, err = parseTimestamps(createdAtStr, updatedAtStr); err != nil {
		return nil, err
	}
	if res.Certifications, err = decodeJSON[domain.Certification](certsJSON, "certifications"); err != nil {
		return nil, err
	}
	return &res, nil
}
