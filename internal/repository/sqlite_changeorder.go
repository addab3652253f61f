package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/steelbuild/internal/db"
	"github.com/alexanderramin/steelbuild/internal/domain"
)

type SQLiteChangeOrderRepo struct {
	db db.DBTX
}

func NewSQLiteChangeOrderRepo(conn db.DBTX) *SQLiteChangeOrderRepo {
	return &SQLiteChangeOrderRepo{db: conn}
}

const changeOrderColumns = `id, project_id, number, title, status, cost_impact, schedule_impact_days, created_at, updated_at`

func (r *SQLiteChangeOrderRepo) Create(ctx context.Context, c *domain.ChangeOrder) error {
	query := `INSERT INTO change_orders (` + changeOrderColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.ProjectID, c.Number, c.Title, string(c.Status), c.CostImpact, c.ScheduleImpactDays,
		c.CreatedAt.Format(time.RFC3339), c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting change order: %w", err)
	}
	return nil
}

func (r *SQLiteChangeOrderRepo) GetByID(ctx context.Context, id string) (*domain.ChangeOrder, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+changeOrderColumns+` FROM change_orders WHERE id = ?`, id)
	return scanChangeOrder(row)
}

func (r *SQLiteChangeOrderRepo) List(ctx context.Context, projectID string) ([]*domain.ChangeOrder, error) {
	query, args := byProject(`SELECT `+changeOrderColumns+` FROM change_orders`, projectID, "project_id, number")
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing change orders: %w", err)
	}
	return collect(rows, "change orders", scanChangeOrder)
}

func (r *SQLiteChangeOrderRepo) NextNumber(ctx context.Context, projectID string) (int, error) {
	return nextNumber(ctx, r.db, "change_orders", projectID)
}

func (r *SQLiteChangeOrderRepo) Update(ctx context.Context, c *domain.ChangeOrder) error {
	query := `UPDATE change_orders SET title = ?, status = ?, cost_impact = ?, schedule_impact_days = ?,
		updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.Title, string(c.Status), c.CostImpact, c.ScheduleImpactDays, c.UpdatedAt.Format(time.RFC3339), c.ID)
	if err != nil {
		return fmt.Errorf("updating change order: %w", err)
	}
	return expectAffected(res, "change order")
}

func (r *SQLiteChangeOrderRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM change_orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting change order: %w", err)
	}
	return expectAffected(res, "change order")
}

func scanChangeOrder(row rowScanner) (*domain.ChangeOrder, error) {
	var c domain.ChangeOrder
	var statusStr, createdAtStr, updatedAtStr string
	err := row.Scan(&c.ID, &c.ProjectID, &c.Number, &c.Title, &statusStr,
		&c.CostImpact, &c.ScheduleImpactDays, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, notFound(err, "change order")
	}
	c.Status = domain.ChangeOrderStatus(statusStr)
	if c.CreatedAt, c.UpdatedAt, err = parseTimestamps(createdAtStr, updatedAtStr); err != nil {
		return nil, err
	}
	return &c, nil
}
