package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/steelbuild/internal/db"
	"github.com/alexanderramin/steelbuild/internal/domain"
)

type SQLiteDeliveryRepo struct {
	db db.DBTX
}

func NewSQLiteDeliveryRepo(conn db.DBTX) *SQLiteDeliveryRepo {
	return &SQLiteDeliveryRepo{db: conn}
}

const deliveryColumns = `id, project_id, description, supplier, status, scheduled_date, delivered_date, created_at, updated_at`

func (r *SQLiteDeliveryRepo) Create(ctx context.Context, d *domain.Delivery) error {
	query := `INSERT INTO deliveries (` + deliveryColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.ProjectID, d.Description, d.Supplier, string(d.Status),
		d.ScheduledDate.Format(domain.DateLayout),
		nullableTimeToString(d.DeliveredDate, domain.DateLayout),
		d.CreatedAt.Format(time.RFC3339), d.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting delivery: %w", err)
	}
	return nil
}

func (r *SQLiteDeliveryRepo) GetByID(ctx context.Context, id string) (*domain.Delivery, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id = ?`, id)
	return scanDelivery(row)
}

func (r *SQLiteDeliveryRepo) List(ctx context.Context, projectID string) ([]*domain.Delivery, error) {
	query, args := byProject(`SELECT `+deliveryColumns+` FROM deliveries`, projectID, "scheduled_date, id")
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing deliveries: %w", err)
	}
	return collect(rows, "deliveries", scanDelivery)
}

func (r *SQLiteDeliveryRepo) Update(ctx context.Context, d *domain.Delivery) error {
	query := `UPDATE deliveries SET description = ?, supplier = ?, status = ?, scheduled_date = ?,
		delivered_date = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		d.Description, d.Supplier, string(d.Status),
		d.ScheduledDate.Format(domain.DateLayout),
		nullableTimeToString(d.DeliveredDate, domain.DateLayout),
		d.UpdatedAt.Format(time.RFC3339), d.ID,
	)
	if err != nil {
		return fmt.Errorf("updating delivery: %w", err)
	}
	return expectAffected(res, "delivery")
}

func (r *SQLiteDeliveryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM deliveries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting delivery: %w", err)
	}
	return expectAffected(res, "delivery")
}

func scanDelivery(row rowScanner) (*domain.Delivery, error) {
	var d domain.Delivery
	var statusStr, scheduledStr, createdAtStr, updatedAtStr string
	var deliveredStr sql.NullString
	err := row.Scan(&d.ID, &d.ProjectID, &d.Description, &d.Supplier, &statusStr,
		&scheduledStr, &deliveredStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, notFound(err, "delivery")
	}
	d.Status = domain.DeliveryStatus(statusStr)
	if d.ScheduledDate, err = time.Parse(domain.DateLayout, scheduledStr); err != nil {
		return nil, fmt.Errorf("parsing scheduled_date: %w", err)
	}
	d.DeliveredDate = parseNullableTime(deliveredStr, domain.DateLayout)
	if d.CreatedAt, d.UpdatedAt, err = parseTimestamps(createdAtStr, updatedAtStr); err != nil {
		return nil, err
	}
	return &d, nil
}
