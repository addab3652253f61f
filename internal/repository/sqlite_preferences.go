package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/steelbuild/internal/db"
	"github.com/alexanderramin/steelbuild/internal/domain"
)

type SQLitePreferencesRepo struct {
	db db.DBTX
}

func NewSQLitePreferencesRepo(conn db.DBTX) *SQLitePreferencesRepo {
	return &SQLitePreferencesRepo{db: conn}
}

func (r *SQLitePreferencesRepo) Load(ctx context.Context, email string) (*domain.DashboardPreferences, error) {
	var widgetsJSON, updatedAtStr string
	err := r.db.QueryRowContext(ctx,
		`SELECT widgets, updated_at FROM dashboard_preferences WHERE user_email = ?`, email,
	).Scan(&widgetsJSON, &updatedAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DefaultDashboardPreferences(email), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading dashboard preferences: %w", err)
	}

	p := &domain.DashboardPreferences{UserEmail: email}
	if p.Widgets, err = decodeJSON[string](widgetsJSON, "widgets"); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return p, nil
}

// Save upserts the user's layout.
func (r *SQLitePreferencesRepo) Save(ctx context.Context, p *domain.DashboardPreferences) error {
	widgets, err := encodeJSON(p.Widgets)
	if err != nil {
		return fmt.Errorf("encoding widgets: %w", err)
	}
	query := `INSERT INTO dashboard_preferences (user_email, widgets, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_email) DO UPDATE SET widgets = excluded.widgets, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, p.UserEmail, widgets, p.UpdatedAt.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("saving dashboard preferences: %w", err)
	}
	return nil
}
