package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/steelbuild/internal/db"
	"github.com/alexanderramin/steelbuild/internal/domain"
)

type SQLiteIncidentRepo struct {
	db db.DBTX
}

func NewSQLiteIncidentRepo(conn db.DBTX) *SQLiteIncidentRepo {
	return &SQLiteIncidentRepo{db: conn}
}

const incidentColumns = `id, project_id, title, description, severity, status, reported_at, closed_at, created_at`

func (r *SQLiteIncidentRepo) Create(ctx context.Context, s *domain.SafetyIncident) error {
	query := `INSERT INTO safety_incidents (` + incidentColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.ProjectID, s.Title, s.Description, string(s.Severity), string(s.Status),
		s.ReportedAt.Format(time.RFC3339),
		nullableTimeToString(s.ClosedAt, time.RFC3339),
		s.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting safety incident: %w", err)
	}
	return nil
}

func (r *SQLiteIncidentRepo) GetByID(ctx context.Context, id string) (*domain.SafetyIncident, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+incidentColumns+` FROM safety_incidents WHERE id = ?`, id)
	return scanIncident(row)
}

func (r *SQLiteIncidentRepo) List(ctx context.Context, projectID string) ([]*domain.SafetyIncident, error) {
	query, args := byProject(`SELECT `+incidentColumns+` FROM safety_incidents`, projectID, "reported_at, id")
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing safety incidents: %w", err)
	}
	return collect(rows, "safety incidents", scanIncident)
}

func (r *SQLiteIncidentRepo) Update(ctx context.Context, s *domain.SafetyIncident) error {
	query := `UPDATE safety_incidents SET title = ?, description = ?, severity = ?, status = ?, closed_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.Title, s.Description, string(s.Severity), string(s.Status),
		nullableTimeToString(s.ClosedAt, time.RFC3339), s.ID)
	if err != nil {
		return fmt.Errorf("updating safety incident: %w", err)
	}
	return expectAffected(res, "safety incident")
}

func (r *SQLiteIncidentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM safety_incidents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting safety incident: %w", err)
	}
	return expectAffected(res, "safety incident")
}

func scanIncident(row rowScanner) (*domain.SafetyIncident, error) {
	var s domain.SafetyIncident
	var severityStr, statusStr, reportedStr, createdAtStr string
	var closedStr sql.NullString
	err := row.Scan(&s.ID, &s.ProjectID, &s.Title, &s.Description, &severityStr, &statusStr,
		&reportedStr, &closedStr, &createdAtStr)
	if err != nil {
		return nil, notFound(err, "safety incident")
	}
	s.Severity = domain.Priority(severityStr)
	s.Status = domain.IncidentStatus(statusStr)
	if s.ReportedAt, err = time.Parse(time.RFC3339, reportedStr); err != nil {
		return nil, fmt.Errorf("parsing reported_at: %w", err)
	}
	if s.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	s.ClosedAt = parseNullableTime(closedStr, time.RFC3339)
	return &s, nil
}
