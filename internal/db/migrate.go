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
	`CREATE TABLE IF NOT EXISTS squads (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		foreman    TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS phases (
		id            TEXT PRIMARY KEY,
		discipline_id TEXT NOT NULL,
		name          TEXT NOT NULL,
		ordinal       INTEGER NOT NULL DEFAULT 0,
		mandatory     INTEGER NOT NULL DEFAULT 0,
		is_initial    INTEGER NOT NULL DEFAULT 0,
		is_final      INTEGER NOT NULL DEFAULT 0,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_phases_discipline ON phases(discipline_id, ordinal)`,

	`CREATE TABLE IF NOT EXISTS work_packages (
		id             TEXT PRIMARY KEY,
		project_id     TEXT NOT NULL,
		code           TEXT NOT NULL,
		name           TEXT NOT NULL,
		squad_id       TEXT REFERENCES squads(id) ON DELETE SET NULL,
		foreman        TEXT NOT NULL DEFAULT '',
		predecessor_id TEXT REFERENCES work_packages(id) ON DELETE SET NULL,
		priority       INTEGER NOT NULL DEFAULT 0,
		color          TEXT NOT NULL DEFAULT '',
		planned_start  TEXT,
		planned_end    TEXT,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL,
		UNIQUE(project_id, code)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_work_packages_squad ON work_packages(squad_id)`,

	`CREATE TABLE IF NOT EXISTS work_package_phases (
		work_package_id TEXT NOT NULL REFERENCES work_packages(id) ON DELETE CASCADE,
		phase_id        TEXT NOT NULL REFERENCES phases(id) ON DELETE CASCADE,
		ordinal         INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (work_package_id, phase_id)
	)`,

	`CREATE TABLE IF NOT EXISTS components (
		id              TEXT PRIMARY KEY,
		code            TEXT NOT NULL,
		category_id     TEXT NOT NULL,
		discipline_id   TEXT NOT NULL,
		status          TEXT NOT NULL DEFAULT 'new'
		                CHECK(status IN ('new','in_warehouse','at_site','in_progress','completed')),
		work_package_id TEXT REFERENCES work_packages(id) ON DELETE SET NULL,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL,
		UNIQUE(category_id, code)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_components_wp ON components(work_package_id)`,
	`CREATE INDEX IF NOT EXISTS idx_components_discipline ON components(discipline_id)`,

	`CREATE TABLE IF NOT EXISTS ledger_entries (
		id                  TEXT PRIMARY KEY,
		project_id          TEXT NOT NULL,
		year                INTEGER NOT NULL,
		week                INTEGER NOT NULL CHECK(week BETWEEN 1 AND 53),
		phase_id            TEXT NOT NULL REFERENCES phases(id) ON DELETE CASCADE,
		work_package_id     TEXT REFERENCES work_packages(id) ON DELETE CASCADE,
		component_id        TEXT REFERENCES components(id) ON DELETE CASCADE,
		squad_id            TEXT REFERENCES squads(id) ON DELETE SET NULL,
		status              TEXT NOT NULL DEFAULT 'planned'
		                    CHECK(status IN ('planned','in_progress','completed','postponed')),
		priority            INTEGER NOT NULL DEFAULT 0,
		instructions        TEXT NOT NULL DEFAULT '',
		problem             INTEGER NOT NULL DEFAULT 0,
		problem_description TEXT NOT NULL DEFAULT '',
		problem_reporter    TEXT NOT NULL DEFAULT '',
		problem_resolved    INTEGER NOT NULL DEFAULT 0,
		problem_resolved_by TEXT NOT NULL DEFAULT '',
		problem_resolved_at TEXT,
		completed_at        TEXT,
		completed_by        TEXT NOT NULL DEFAULT '',
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL,
		CHECK((work_package_id IS NULL) != (component_id IS NULL))
	)`,

	// At most one active schedule per unit per (year, week). The source
	// system only filtered candidate lists in the UI; here it is a hard
	// constraint.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_ledger_component_week
		ON ledger_entries(component_id, year, week) WHERE component_id IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_ledger_wp_week
		ON ledger_entries(work_package_id, year, week) WHERE work_package_id IS NOT NULL`,
	`CREATE INDEX IF NOT EXISTS idx_ledger_project_week ON ledger_entries(project_id, year, week)`,
	`CREATE INDEX IF NOT EXISTS idx_ledger_status ON ledger_entries(status)`,

	`CREATE TABLE IF NOT EXISTS wp_plan_entries (
		id              TEXT PRIMARY KEY,
		work_package_id TEXT NOT NULL REFERENCES work_packages(id) ON DELETE CASCADE,
		phase_id        TEXT NOT NULL REFERENCES phases(id) ON DELETE CASCADE,
		year            INTEGER NOT NULL,
		week            INTEGER NOT NULL CHECK(week BETWEEN 1 AND 53),
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL,
		UNIQUE(work_package_id, phase_id, year, week)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plan_entries_week ON wp_plan_entries(year, week)`,

	`CREATE TABLE IF NOT EXISTS wp_plan_components (
		id            TEXT PRIMARY KEY,
		plan_entry_id TEXT NOT NULL REFERENCES wp_plan_entries(id) ON DELETE CASCADE,
		component_id  TEXT NOT NULL REFERENCES components(id) ON DELETE CASCADE,
		completed     INTEGER NOT NULL DEFAULT 0,
		completed_at  TEXT,
		UNIQUE(plan_entry_id, component_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plan_components_component ON wp_plan_components(component_id)`,
}
