package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/steelbuild/internal/db"
	"github.com/alexanderramin/steelbuild/internal/domain"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the formatted string.
func nullableTimeToString(t *time.Time, layout string) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// encodeJSON stores slices as JSON text columns; nil encodes as "[]".
func encodeJSON[T any](v []T) (string, error) {
	if v == nil {
		return "[]", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeJSON[T any](s string, column string) ([]T, error) {
	if s == "" || s == "[]" {
		return nil, nil
	}
	var out []T
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", column, err)
	}
	return out, nil
}

// parseTimestamps parses the created_at/updated_at pair every table carries.
func parseTimestamps(createdAt, updatedAt string) (time.Time, time.Time, error) {
	c, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing created_at: %w", err)
	}
	if updatedAt == "" {
		return c, c, nil
	}
	u, err := time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing updated_at: %w", err)
	}
	return c, u, nil
}

// notFound maps sql.ErrNoRows onto domain.ErrNotFound for the named entity.
func notFound(err error, entity string) error {
	if err == sql.ErrNoRows {
		return fmt.Errorf("%s %w", entity, domain.ErrNotFound)
	}
	return fmt.Errorf("scanning %s: %w", entity, err)
}

// collect drains rows through scan, closing rows before returning.
func collect[T any](rows *sql.Rows, entity string, scan func(rowScanner) (*T, error)) ([]*T, error) {
	defer rows.Close()
	var out []*T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", entity, err)
	}
	return out, nil
}

// expectAffected turns a zero-row UPDATE/DELETE into a not-found error.
func expectAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %w", entity, domain.ErrNotFound)
	}
	return nil
}

// byProject appends an optional project_id filter and the ordering clause.
func byProject(base, projectID, orderBy string) (string, []any) {
	if projectID == "" {
		return base + ` ORDER BY ` + orderBy, nil
	}
	return base + ` WHERE project_id = ? ORDER BY ` + orderBy, []any{projectID}
}

// nextNumber returns one past the highest per-project sequence in table.
func nextNumber(ctx context.Context, conn db.DBTX, table, projectID string) (int, error) {
	var n int
	err := conn.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(number), 0) + 1 FROM `+table+` WHERE project_id = ?`, projectID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next %s number: %w", table, err)
	}
	return n, nil
}
