package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Kiterion83/cantiere-scheduler/internal/db"
	"github.com/Kiterion83/cantiere-scheduler/internal/domain"
	"github.com/google/uuid"
)

// SQLitePlanRepo implements PlanRepo over wp_plan_entries and
// wp_plan_components.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(db db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: db}
}

func (r *SQLitePlanRepo) UpsertEntry(ctx context.Context, e *domain.PlanEntry) error {
	existing := r.db.QueryRowContext(ctx,
		`SELECT id FROM wp_plan_entries WHERE work_package_id = ? AND phase_id = ? AND year = ? AND week = ?`,
		e.WorkPackageID, e.PhaseID, e.Year, e.Week)
	var id string
	err := existing.Scan(&id)
	switch {
	case err == nil:
		e.ID = id
		_, err = r.db.ExecContext(ctx, `UPDATE wp_plan_entries SET updated_at = ? WHERE id = ?`,
			time.Now().UTC().Format(time.RFC3339), id)
		if err != nil {
			return fmt.Errorf("touching plan entry: %w", err)
		}
		return nil
	case err == sql.ErrNoRows:
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		now := time.Now().UTC()
		e.CreatedAt = now
		e.UpdatedAt = now
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO wp_plan_entries (id, work_package_id, phase_id, year, week, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.WorkPackageID, e.PhaseID, e.Year, e.Week,
			now.Format(time.RFC3339), now.Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("inserting plan entry: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("looking up plan entry: %w", err)
	}
}

func (r *SQLitePlanRepo) GetEntry(ctx context.Context, wpID, phaseID string, year, week int) (*domain.PlanEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, work_package_id, phase_id, year, week, created_at, updated_at
		FROM wp_plan_entries
		WHERE work_package_id = ? AND phase_id = ? AND year = ? AND week = ?`,
		wpID, phaseID, year, week)
	entry, err := scanPlanEntryRow(row)
	if err != nil {
		return nil, err
	}
	entry.Components, err = r.listComponents(ctx, entry.ID)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *SQLitePlanRepo) ListEntries(ctx context.Context, wpID string) ([]*domain.PlanEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, work_package_id, phase_id, year, week, created_at, updated_at
		FROM wp_plan_entries WHERE work_package_id = ?
		ORDER BY year, week`, wpID)
	if err != nil {
		return nil, fmt.Errorf("listing plan entries: %w", err)
	}
	defer rows.Close()
	return r.scanAndLoadEntries(ctx, rows)
}

func (r *SQLitePlanRepo) ListEntriesByWeek(ctx context.Context, projectID string, year, week int) ([]*domain.PlanEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT e.id, e.work_package_id, e.phase_id, e.year, e.week, e.created_at, e.updated_at
		FROM wp_plan_entries e
		JOIN work_packages w ON w.id = e.work_package_id
		WHERE w.project_id = ? AND e.year = ? AND e.week = ?
		ORDER BY w.priority DESC, w.code`, projectID, year, week)
	if err != nil {
		return nil, fmt.Errorf("listing plan entries by week: %w", err)
	}
	defer rows.Close()
	return r.scanAndLoadEntries(ctx, rows)
}

func (r *SQLitePlanRepo) DeleteEntry(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM wp_plan_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting plan entry: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) DeleteComponents(ctx context.Context, entryID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM wp_plan_components WHERE plan_entry_id = ?`, entryID)
	if err != nil {
		return fmt.Errorf("deleting plan components: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) InsertComponents(ctx context.Context, entryID string, componentIDs []string) error {
	query := `INSERT INTO wp_plan_components (id, plan_entry_id, component_id, completed, completed_at)
		VALUES (?, ?, ?, 0, NULL)`
	for _, componentID := range componentIDs {
		if _, err := r.db.ExecContext(ctx, query, uuid.New().String(), entryID, componentID); err != nil {
			return fmt.Errorf("inserting plan component %q: %w", componentID, err)
		}
	}
	return nil
}

func (r *SQLitePlanRepo) GetComponent(ctx context.Context, planComponentID string) (*domain.PlanComponent, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, plan_entry_id, component_id, completed, completed_at
		FROM wp_plan_components WHERE id = ?`, planComponentID)

	var pc domain.PlanComponent
	var completedInt int
	var completedAtStr sql.NullString
	err := row.Scan(&pc.ID, &pc.PlanEntryID, &pc.ComponentID, &completedInt, &completedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("plan component: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning plan component: %w", err)
	}
	pc.Completed = intToBool(completedInt)
	pc.CompletedAt = parseNullableTime(completedAtStr, time.RFC3339)
	return &pc, nil
}

func (r *SQLitePlanRepo) UpdateComponent(ctx context.Context, pc *domain.PlanComponent) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE wp_plan_components SET completed = ?, completed_at = ? WHERE id = ?`,
		boolToInt(pc.Completed),
		nullableTimeToString(pc.CompletedAt, time.RFC3339),
		pc.ID,
	)
	if err != nil {
		return fmt.Errorf("updating plan component: %w", err)
	}
	return nil
}

// UnplannedComponents returns work package members that appear in no plan
// entry for the given phase, across all weeks. A non-empty result is a
// warning for the scheduler, never a hard gate.
func (r *SQLitePlanRepo) UnplannedComponents(ctx context.Context, wpID, phaseID string) ([]*domain.Component, error) {
	query := `SELECT ` + componentColumns + ` FROM components
		WHERE work_package_id = ?
		  AND id NOT IN (
			SELECT pc.component_id
			FROM wp_plan_components pc
			JOIN wp_plan_entries e ON e.id = pc.plan_entry_id
			WHERE e.work_package_id = ? AND e.phase_id = ?
		  )
		ORDER BY code`
	rows, err := r.db.QueryContext(ctx, query, wpID, wpID, phaseID)
	if err != nil {
		return nil, fmt.Errorf("listing unplanned components: %w", err)
	}
	defer rows.Close()
	return scanComponents(rows)
}

// WorkPackageSummary counts distinct members ever completed in any phase
// against the current member count.
func (r *SQLitePlanRepo) WorkPackageSummary(ctx context.Context, wpID string) (*WorkPackageSummary, error) {
	query := `SELECT w.id, w.squad_id,
			(SELECT COUNT(DISTINCT pc.component_id)
				FROM wp_plan_components pc
				JOIN wp_plan_entries e ON e.id = pc.plan_entry_id
				WHERE e.work_package_id = w.id AND pc.completed = 1),
			(SELECT COUNT(*) FROM components c WHERE c.work_package_id = w.id)
		FROM work_packages w WHERE w.id = ?`
	row := r.db.QueryRowContext(ctx, query, wpID)

	var s WorkPackageSummary
	var squadIDStr sql.NullString
	err := row.Scan(&s.WorkPackageID, &squadIDStr, &s.CompletedDistinct, &s.Members)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("work package: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning work package summary: %w", err)
	}
	s.SquadID = nullStringPtr(squadIDStr)
	return &s, nil
}

// PhaseSummary counts completed and scheduled component rows for one
// (work package, phase) pair across all weeks, in both instance and
// distinct-component form.
func (r *SQLitePlanRepo) PhaseSummary(ctx context.Context, wpID, phaseID string) (*PhaseSummary, error) {
	query := `SELECT
			COALESCE(SUM(pc.completed), 0),
			COUNT(pc.id),
			COUNT(DISTINCT CASE WHEN pc.completed = 1 THEN pc.component_id END),
			COUNT(DISTINCT pc.component_id)
		FROM wp_plan_components pc
		JOIN wp_plan_entries e ON e.id = pc.plan_entry_id
		WHERE e.work_package_id = ? AND e.phase_id = ?`
	row := r.db.QueryRowContext(ctx, query, wpID, phaseID)

	s := PhaseSummary{WorkPackageID: wpID, PhaseID: phaseID}
	err := row.Scan(&s.CompletedInstances, &s.TotalInstances, &s.CompletedDistinct, &s.TotalDistinct)
	if err != nil {
		return nil, fmt.Errorf("scanning phase summary: %w", err)
	}
	return &s, nil
}

// ProjectSummaries returns the per-work-package completion counts for every
// work package in a project.
func (r *SQLitePlanRepo) ProjectSummaries(ctx context.Context, projectID string) ([]WorkPackageSummary, error) {
	return r.listSummaries(ctx, `w.project_id = ?`, projectID)
}

// SquadSummaries returns the per-work-package completion counts for every
// work package assigned to a squad.
func (r *SQLitePlanRepo) SquadSummaries(ctx context.Context, squadID string) ([]WorkPackageSummary, error) {
	return r.listSummaries(ctx, `w.squad_id = ?`, squadID)
}

func (r *SQLitePlanRepo) listSummaries(ctx context.Context, where string, arg any) ([]WorkPackageSummary, error) {
	query := `SELECT w.id, w.squad_id,
			(SELECT COUNT(DISTINCT pc.component_id)
				FROM wp_plan_components pc
				JOIN wp_plan_entries e ON e.id = pc.plan_entry_id
				WHERE e.work_package_id = w.id AND pc.completed = 1),
			(SELECT COUNT(*) FROM components c WHERE c.work_package_id = w.id)
		FROM work_packages w WHERE ` + where + ` ORDER BY w.code`
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("listing work package summaries: %w", err)
	}
	defer rows.Close()

	var summaries []WorkPackageSummary
	for rows.Next() {
		var s WorkPackageSummary
		var squadIDStr sql.NullString
		if err := rows.Scan(&s.WorkPackageID, &squadIDStr, &s.CompletedDistinct, &s.Members); err != nil {
			return nil, fmt.Errorf("scanning work package summary row: %w", err)
		}
		s.SquadID = nullStringPtr(squadIDStr)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work package summaries: %w", err)
	}
	return summaries, nil
}

func (r *SQLitePlanRepo) scanAndLoadEntries(ctx context.Context, rows *sql.Rows) ([]*domain.PlanEntry, error) {
	var entries []*domain.PlanEntry
	for rows.Next() {
		entry, err := scanPlanEntryFromRows(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan entries: %w", err)
	}
	for _, entry := range entries {
		components, err := r.listComponents(ctx, entry.ID)
		if err != nil {
			return nil, err
		}
		entry.Components = components
	}
	return entries, nil
}

func (r *SQLitePlanRepo) listComponents(ctx context.Context, entryID string) ([]domain.PlanComponent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT pc.id, pc.plan_entry_id, pc.component_id, pc.completed, pc.completed_at
		FROM wp_plan_components pc
		JOIN components c ON c.id = pc.component_id
		WHERE pc.plan_entry_id = ?
		ORDER BY c.code`, entryID)
	if err != nil {
		return nil, fmt.Errorf("listing plan components: %w", err)
	}
	defer rows.Close()

	var components []domain.PlanComponent
	for rows.Next() {
		var pc domain.PlanComponent
		var completedInt int
		var completedAtStr sql.NullString
		if err := rows.Scan(&pc.ID, &pc.PlanEntryID, &pc.ComponentID, &completedInt, &completedAtStr); err != nil {
			return nil, fmt.Errorf("scanning plan component row: %w", err)
		}
		pc.Completed = intToBool(completedInt)
		pc.CompletedAt = parseNullableTime(completedAtStr, time.RFC3339)
		components = append(components, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan components: %w", err)
	}
	return components, nil
}

func scanPlanEntryRow(row *sql.Row) (*domain.PlanEntry, error) {
	var e domain.PlanEntry
	var createdAtStr, updatedAtStr string
	err := row.Scan(&e.ID, &e.WorkPackageID, &e.PhaseID, &e.Year, &e.Week, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("plan entry: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning plan entry: %w", err)
	}
	return populatePlanEntry(&e, createdAtStr, updatedAtStr)
}

func scanPlanEntryFromRows(rows *sql.Rows) (*domain.PlanEntry, error) {
	var e domain.PlanEntry
	var createdAtStr, updatedAtStr string
	if err := rows.Scan(&e.ID, &e.WorkPackageID, &e.PhaseID, &e.Year, &e.Week, &createdAtStr, &updatedAtStr); err != nil {
		return nil, fmt.Errorf("scanning plan entry row: %w", err)
	}
	return populatePlanEntry(&e, createdAtStr, updatedAtStr)
}

func populatePlanEntry(e *domain.PlanEntry, createdAtStr, updatedAtStr string) (*domain.PlanEntry, error) {
	var err error
	e.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	e.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return e, nil
}
