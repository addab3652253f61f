package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/steelbuild/internal/db"
	"github.com/alexanderramin/steelbuild/internal/domain"
)

type SQLiteRFIRepo struct {
	db db.DBTX
}

func NewSQLiteRFIRepo(conn db.DBTX) *SQLiteRFIRepo {
	return &SQLiteRFIRepo{db: conn}
}

const rfiColumns = `id, project_id, number, subject, question, status, priority, due_date, answered_at,
	created_at, updated_at`

func (r *SQLiteRFIRepo) Create(ctx context.Context, rfi *domain.RFI) error {
	query := `INSERT INTO rfis (` + rfiColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rfi.ID, rfi.ProjectID, rfi.Number, rfi.Subject, rfi.Question,
		string(rfi.Status), string(rfi.Priority),
		nullableTimeToString(rfi.DueDate, domain.DateLayout),
		nullableTimeToString(rfi.AnsweredAt, time.RFC3339),
		rfi.CreatedAt.Format(time.RFC3339), rfi.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting rfi: %w", err)
	}
	return nil
}

func (r *SQLiteRFIRepo) GetByID(ctx context.Context, id string) (*domain.RFI, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+rfiColumns+` FROM rfis WHERE id = ?`, id)
	return scanRFI(row)
}

func (r *SQLiteRFIRepo) List(ctx context.Context, projectID string) ([]*domain.RFI, error) {
	query, args := byProject(`SELECT `+rfiColumns+` FROM rfis`, projectID, "project_id, number")
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing rfis: %w", err)
	}
	return collect(rows, "rfis", scanRFI)
}

func (r *SQLiteRFIRepo) NextNumber(ctx context.Context, projectID string) (int, error) {
	return nextNumber(ctx, r.db, "rfis", projectID)
}

func (r *SQLiteRFIRepo) Update(ctx context.Context, rfi *domain.RFI) error {
	query := `UPDATE rfis SET subject = ?, question = ?, status = ?, priority = ?, due_date = ?,
		answered_at = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		rfi.Subject, rfi.Question, string(rfi.Status), string(rfi.Priority),
		nullableTimeToString(rfi.DueDate, domain.DateLayout),
		nullableTimeToString(rfi.AnsweredAt, time.RFC3339),
		rfi.UpdatedAt.Format(time.RFC3339), rfi.ID,
	)
	if err != nil {
		return fmt.Errorf("updating rfi: %w", err)
	}
	return expectAffected(res, "rfi")
}

func (r *SQLiteRFIRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rfis WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting rfi: %w", err)
	}
	return expectAffected(res, "rfi")
}

func scanRFI(row rowScanner) (*domain.RFI, error) {
	var rfi domain.RFI
	var statusStr, priorityStr, createdAtStr, updatedAtStr string
	var dueStr, answeredStr sql.NullString
	err := row.Scan(&rfi.ID, &rfi.ProjectID, &rfi.Number, &rfi.Subject, &rfi.Question,
		&statusStr, &priorityStr, &dueStr, &answeredStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, notFound(err, "rfi")
	}
	rfi.Status = domain.RFIStatus(statusStr)
	rfi.Priority = domain.Priority(priorityStr)
	rfi.DueDate = parseNullableTime(dueStr, domain.DateLayout)
	rfi.AnsweredAt = parseNullableTime(answeredStr, time.RFC3339)
	if rfi.CreatedAt, rfi.UpdatedAt, err = parseTimestamps(createdAtStr, updatedAtStr); err != nil {
		return nil, err
	}
	return &rfi, nil
}
