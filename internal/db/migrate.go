package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id                TEXT PRIMARY KEY,
		project_number    TEXT NOT NULL,
		name              TEXT NOT NULL,
		client            TEXT NOT NULL DEFAULT '',
		location          TEXT NOT NULL DEFAULT '',
		status            TEXT NOT NULL DEFAULT 'planning'
		                  CHECK(status IN ('planning','in_progress','on_hold','completed','cancelled','archived')),
		start_date        TEXT NOT NULL,
		target_completion TEXT,
		contract_value    REAL NOT NULL DEFAULT 0,
		assigned_users    TEXT NOT NULL DEFAULT '[]',
		archived_at       TEXT,
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_number ON projects(project_number)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status)`,

	`CREATE TABLE IF NOT EXISTS resources (
		id                         TEXT PRIMARY KEY,
		name                       TEXT NOT NULL,
		type                       TEXT NOT NULL
		                           CHECK(type IN ('labor','equipment','subcontractor')),
		trade                      TEXT NOT NULL DEFAULT '',
		status                     TEXT NOT NULL DEFAULT 'available'
		                           CHECK(status IN ('available','assigned','unavailable','maintenance')),
		max_concurrent_assignments INTEGER NOT NULL DEFAULT 0,
		hourly_rate                REAL NOT NULL DEFAULT 0,
		certifications             TEXT NOT NULL DEFAULT '[]',
		created_at                 TEXT NOT NULL,
		updated_at                 TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id                 TEXT PRIMARY KEY,
		project_id         TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name               TEXT NOT NULL,
		status             TEXT NOT NULL DEFAULT 'not_started'
		                   CHECK(status IN ('not_started','in_progress','on_hold','completed','cancelled')),
		start_date         TEXT NOT NULL DEFAULT '',
		end_date           TEXT NOT NULL DEFAULT '',
		progress           REAL NOT NULL DEFAULT 0,
		assigned_resources TEXT NOT NULL DEFAULT '[]',
		assigned_equipment TEXT NOT NULL DEFAULT '[]',
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,

	`CREATE TABLE IF NOT EXISTS resource_allocations (
		id                    TEXT PRIMARY KEY,
		resource_id           TEXT NOT NULL REFERENCES resources(id) ON DELETE CASCADE,
		project_id            TEXT REFERENCES projects(id) ON DELETE CASCADE,
		start_date            TEXT NOT NULL,
		end_date              TEXT NOT NULL,
		allocation_percentage REAL NOT NULL,
		notes                 TEXT NOT NULL DEFAULT '',
		created_at            TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_allocations_resource ON resource_allocations(resource_id)`,

	`CREATE TABLE IF NOT EXISTS sov_items (
		id                 TEXT PRIMARY KEY,
		project_id         TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		item_number        TEXT NOT NULL,
		description        TEXT NOT NULL DEFAULT '',
		scheduled_value    REAL NOT NULL DEFAULT 0,
		billed_to_date     REAL NOT NULL DEFAULT 0,
		assigned_resources TEXT NOT NULL DEFAULT '[]',
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sov_project ON sov_items(project_id)`,

	`CREATE TABLE IF NOT EXISTS rfis (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		number      INTEGER NOT NULL,
		subject     TEXT NOT NULL,
		question    TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT 'open'
		            CHECK(status IN ('open','answered','closed')),
		priority    TEXT NOT NULL DEFAULT 'medium'
		            CHECK(priority IN ('low','medium','high','critical')),
		due_date    TEXT,
		answered_at TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_rfis_project ON rfis(project_id)`,

	`CREATE TABLE IF NOT EXISTS change_orders (
		id                   TEXT PRIMARY KEY,
		project_id           TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		number               INTEGER NOT NULL,
		title                TEXT NOT NULL,
		status               TEXT NOT NULL DEFAULT 'pending'
		                     CHECK(status IN ('pending','approved','rejected')),
		cost_impact          REAL NOT NULL DEFAULT 0,
		schedule_impact_days INTEGER NOT NULL DEFAULT 0,
		created_at           TEXT NOT NULL,
		updated_at           TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_change_orders_project ON change_orders(project_id)`,

	`CREATE TABLE IF NOT EXISTS deliveries (
		id             TEXT PRIMARY KEY,
		project_id     TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		description    TEXT NOT NULL,
		supplier       TEXT NOT NULL DEFAULT '',
		status         TEXT NOT NULL DEFAULT 'scheduled'
		               CHECK(status IN ('scheduled','in_transit','delivered','delayed','cancelled')),
		scheduled_date TEXT NOT NULL,
		delivered_date TEXT,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_deliveries_project ON deliveries(project_id)`,

	`CREATE TABLE IF NOT EXISTS financials (
		id               TEXT PRIMARY KEY,
		project_id       TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		category         TEXT NOT NULL,
		budget_amount    REAL NOT NULL DEFAULT 0,
		committed_amount REAL NOT NULL DEFAULT 0,
		actual_amount    REAL NOT NULL DEFAULT 0,
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_financials_project ON financials(project_id)`,

	`CREATE TABLE IF NOT EXISTS safety_incidents (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		severity    TEXT NOT NULL
		            CHECK(severity IN ('low','medium','high','critical')),
		status      TEXT NOT NULL DEFAULT 'open'
		            CHECK(status IN ('open','closed')),
		reported_at TEXT NOT NULL,
		closed_at   TEXT,
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_incidents_project ON safety_incidents(project_id)`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id           TEXT PRIMARY KEY,
		user_email   TEXT NOT NULL,
		type         TEXT NOT NULL,
		reference_id TEXT NOT NULL,
		project_id   TEXT NOT NULL DEFAULT '',
		title        TEXT NOT NULL,
		message      TEXT NOT NULL DEFAULT '',
		priority     TEXT NOT NULL DEFAULT 'medium',
		is_read      INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_notifications_ref ON notifications(type, reference_id)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_email)`,

	`CREATE TABLE IF NOT EXISTS dashboard_preferences (
		user_email TEXT PRIMARY KEY,
		widgets    TEXT NOT NULL DEFAULT '[]',
		updated_at TEXT NOT NULL
	)`,
}
