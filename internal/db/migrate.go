package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE statements re-run on every open.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS parent_milestones (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		min_age    INTEGER NOT NULL DEFAULT 0,
		max_age    INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS milestones (
		id                        TEXT PRIMARY KEY,
		name                      TEXT NOT NULL,
		age_at_occurrence         INTEGER NOT NULL DEFAULT 0,
		milestone_type            TEXT NOT NULL
		                          CHECK(milestone_type IN ('Expense','Income','Asset','Liability')),
		disbursement_type         TEXT NOT NULL DEFAULT 'Fixed Duration'
		                          CHECK(disbursement_type IN ('None','Fixed Duration','Perpetuity')),
		amount                    TEXT NOT NULL DEFAULT '0',
		amount_value_type         TEXT NOT NULL DEFAULT 'PV' CHECK(amount_value_type IN ('FV','PV')),
		payment                   TEXT,
		payment_value_type        TEXT NOT NULL DEFAULT 'PV' CHECK(payment_value_type IN ('FV','PV')),
		occurrence                TEXT NOT NULL DEFAULT 'Yearly' CHECK(occurrence IN ('Monthly','Yearly')),
		duration                  INTEGER,
		rate_of_return            REAL NOT NULL DEFAULT 0,
		order_index               INTEGER NOT NULL DEFAULT 0,
		parent_milestone_id       TEXT REFERENCES parent_milestones(id) ON DELETE SET NULL,
		start_after_milestone     TEXT,
		duration_end_at_milestone TEXT,
		goal_parameters           TEXT NOT NULL DEFAULT '[]',
		scenario_parameter_values TEXT NOT NULL DEFAULT '{}',
		created_at                TEXT NOT NULL,
		updated_at                TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_milestones_parent ON milestones(parent_milestone_id)`,
	`CREATE INDEX IF NOT EXISTS idx_milestones_name ON milestones(name)`,

	`CREATE TABLE IF NOT EXISTS profile (
		id             TEXT PRIMARY KEY DEFAULT 'default',
		current_age    INTEGER NOT NULL DEFAULT 30,
		inflation_rate REAL NOT NULL DEFAULT 0.02
	)`,

	// Seed default profile
	`INSERT OR IGNORE INTO profile (id) VALUES ('default')`,

	`ALTER TABLE profile ADD COLUMN updated_at TEXT`,
}
