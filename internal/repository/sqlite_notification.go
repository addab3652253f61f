package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/steelbuild/internal/db"
	"github.com/alexanderramin/steelbuild/internal/domain"
)

type SQLiteNotificationRepo struct {
	db db.DBTX
}

func NewSQLiteNotificationRepo(conn db.DBTX) *SQLiteNotificationRepo {
	return &SQLiteNotificationRepo{db: conn}
}

const notificationColumns = `id, user_email, type, reference_id, project_id, title, message, priority, is_read, created_at`

func (r *SQLiteNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	query := `INSERT INTO notifications (` + notificationColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		n.ID, n.UserEmail, string(n.Type), n.ReferenceID, n.ProjectID, n.Title, n.Message,
		string(n.Priority), boolToInt(n.IsRead), n.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting notification: %w", err)
	}
	return nil
}

// ExistsForReference reports whether any notification of type t already
// points at referenceID, regardless of recipient or read state.
func (r *SQLiteNotificationRepo) ExistsForReference(ctx context.Context, t domain.NotificationType, referenceID string) (bool, error) {
	var exists int
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM notifications WHERE type = ? AND reference_id = ?)`,
		string(t), referenceID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking notification reference: %w", err)
	}
	return exists == 1, nil
}

func (r *SQLiteNotificationRepo) ListByUser(ctx context.Context, email string, unreadOnly bool) ([]*domain.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_email = ?`
	if unreadOnly {
		query += ` AND is_read = 0`
	}
	query += ` ORDER BY created_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	return collect(rows, "notifications", scanNotification)
}

func (r *SQLiteNotificationRepo) MarkRead(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("marking notification read: %w", err)
	}
	return expectAffected(res, "notification")
}

func scanNotification(row rowScanner) (*domain.Notification, error) {
	var n domain.Notification
	var typeStr, priorityStr, createdAtStr string
	var isRead int
	err := row.Scan(&n.ID, &n.UserEmail, &typeStr, &n.ReferenceID, &n.ProjectID,
		&n.Title, &n.Message, &priorityStr, &isRead, &createdAtStr)
	if err != nil {
		return nil, notFound(err, "notification")
	}
	n.Type = domain.NotificationType(typeStr)
	n.Priority = domain.Priority(priorityStr)
	n.IsRead = isRead != 0
	if n.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &n, nil
}
