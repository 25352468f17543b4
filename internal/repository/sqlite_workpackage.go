package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Kiterion83/cantiere-scheduler/internal/db"
	"github.com/Kiterion83/cantiere-scheduler/internal/domain"
)

// workPackageColumns is the canonical SELECT column list for work_packages.
const workPackageColumns = `id, project_id, code, name, squad_id, foreman, predecessor_id,
		priority, color, planned_start, planned_end, created_at, updated_at`

// SQLiteWorkPackageRepo implements WorkPackageRepo using a SQLite database.
type SQLiteWorkPackageRepo struct {
	db db.DBTX
}

// NewSQLiteWorkPackageRepo creates a new SQLiteWorkPackageRepo.
func NewSQLiteWorkPackageRepo(db db.DBTX) *SQLiteWorkPackageRepo {
	return &SQLiteWorkPackageRepo{db: db}
}

func (r *SQLiteWorkPackageRepo) Create(ctx context.Context, w *domain.WorkPackage) error {
	query := `INSERT INTO work_packages (id, project_id, code, name, squad_id, foreman, predecessor_id,
		priority, color, planned_start, planned_end, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		w.ProjectID,
		w.Code,
		w.Name,
		nullableString(w.SquadID),
		w.Foreman,
		nullableString(w.PredecessorID),
		w.Priority,
		w.Color,
		nullableTimeToString(w.PlannedStart, dateLayout),
		nullableTimeToString(w.PlannedEnd, dateLayout),
		w.CreatedAt.Format(time.RFC3339),
		w.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("work package code %q already exists in project: %w", w.Code, domain.ErrValidation)
		}
		return fmt.Errorf("inserting work package: %w", err)
	}
	return nil
}

func (r *SQLiteWorkPackageRepo) GetByID(ctx context.Context, id string) (*domain.WorkPackage, error) {
	query := `SELECT ` + workPackageColumns + ` FROM work_packages WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanWorkPackageRow(row)
}

func (r *SQLiteWorkPackageRepo) GetByCode(ctx context.Context, projectID, code string) (*domain.WorkPackage, error) {
	query := `SELECT ` + workPackageColumns + ` FROM work_packages WHERE project_id = ? AND UPPER(code) = UPPER(?)`
	row := r.db.QueryRowContext(ctx, query, projectID, code)
	return scanWorkPackageRow(row)
}

func (r *SQLiteWorkPackageRepo) List(ctx context.Context, projectID string) ([]*domain.WorkPackage, error) {
	query := `SELECT ` + workPackageColumns + ` FROM work_packages WHERE project_id = ? ORDER BY priority DESC, code`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing work packages: %w", err)
	}
	defer rows.Close()
	return scanWorkPackages(rows)
}

func (r *SQLiteWorkPackageRepo) ListBySquad(ctx context.Context, squadID string) ([]*domain.WorkPackage, error) {
	query := `SELECT ` + workPackageColumns + ` FROM work_packages WHERE squad_id = ? ORDER BY priority DESC, code`
	rows, err := r.db.QueryContext(ctx, query, squadID)
	if err != nil {
		return nil, fmt.Errorf("listing work packages by squad: %w", err)
	}
	defer rows.Close()
	return scanWorkPackages(rows)
}

func (r *SQLiteWorkPackageRepo) Update(ctx context.Context, w *domain.WorkPackage) error {
	query := `UPDATE work_packages SET code = ?, name = ?, squad_id = ?, foreman = ?, predecessor_id = ?,
		priority = ?, color = ?, planned_start = ?, planned_end = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		w.Code,
		w.Name,
		nullableString(w.SquadID),
		w.Foreman,
		nullableString(w.PredecessorID),
		w.Priority,
		w.Color,
		nullableTimeToString(w.PlannedStart, dateLayout),
		nullableTimeToString(w.PlannedEnd, dateLayout),
		w.UpdatedAt.Format(time.RFC3339),
		w.ID,
	)
	if err != nil {
		return fmt.Errorf("updating work package: %w", err)
	}
	return nil
}

func (r *SQLiteWorkPackageRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM work_packages WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting work package: %w", err)
	}
	return nil
}

// ListPhases returns the work package's selected phases in selection order.
func (r *SQLiteWorkPackageRepo) ListPhases(ctx context.Context, wpID string) ([]*domain.Phase, error) {
	query := `SELECT p.id, p.discipline_id, p.name, p.ordinal, p.mandatory, p.is_initial, p.is_final, p.created_at, p.updated_at
		FROM phases p
		JOIN work_package_phases wpp ON wpp.phase_id = p.id
		WHERE wpp.work_package_id = ?
		ORDER BY wpp.ordinal`
	rows, err := r.db.QueryContext(ctx, query, wpID)
	if err != nil {
		return nil, fmt.Errorf("listing work package phases: %w", err)
	}
	defer rows.Close()
	return scanPhases(rows)
}

func (r *SQLiteWorkPackageRepo) DeletePhases(ctx context.Context, wpID string) error {
	query := `DELETE FROM work_package_phases WHERE work_package_id = ?`
	_, err := r.db.ExecContext(ctx, query, wpID)
	if err != nil {
		return fmt.Errorf("deleting work package phases: %w", err)
	}
	return nil
}

func (r *SQLiteWorkPackageRepo) InsertPhases(ctx context.Context, wpID string, phaseIDs []string) error {
	query := `INSERT INTO work_package_phases (work_package_id, phase_id, ordinal) VALUES (?, ?, ?)`
	for i, phaseID := range phaseIDs {
		if _, err := r.db.ExecContext(ctx, query, wpID, phaseID, i); err != nil {
			return fmt.Errorf("inserting work package phase %q: %w", phaseID, err)
		}
	}
	return nil
}

func scanWorkPackageRow(row *sql.Row) (*domain.WorkPackage, error) {
	var w domain.WorkPackage
	var squadIDStr, predecessorStr, plannedStartStr, plannedEndStr sql.NullString
	var createdAtStr, updatedAtStr string
	err := row.Scan(&w.ID, &w.ProjectID, &w.Code, &w.Name, &squadIDStr, &w.Foreman, &predecessorStr,
		&w.Priority, &w.Color, &plannedStartStr, &plannedEndStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("work package: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning work package: %w", err)
	}
	return populateWorkPackage(&w, squadIDStr, predecessorStr, plannedStartStr, plannedEndStr, createdAtStr, updatedAtStr)
}

func scanWorkPackages(rows *sql.Rows) ([]*domain.WorkPackage, error) {
	var wps []*domain.WorkPackage
	for rows.Next() {
		var w domain.WorkPackage
		var squadIDStr, predecessorStr, plannedStartStr, plannedEndStr sql.NullString
		var createdAtStr, updatedAtStr string
		if err := rows.Scan(&w.ID, &w.ProjectID, &w.Code, &w.Name, &squadIDStr, &w.Foreman, &predecessorStr,
			&w.Priority, &w.Color, &plannedStartStr, &plannedEndStr, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning work package row: %w", err)
		}
		wp, err := populateWorkPackage(&w, squadIDStr, predecessorStr, plannedStartStr, plannedEndStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		wps = append(wps, wp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work packages: %w", err)
	}
	return wps, nil
}

func populateWorkPackage(w *domain.WorkPackage, squadIDStr, predecessorStr, plannedStartStr, plannedEndStr sql.NullString, createdAtStr, updatedAtStr string) (*domain.WorkPackage, error) {
	w.SquadID = nullStringPtr(squadIDStr)
	w.PredecessorID = nullStringPtr(predecessorStr)
	w.PlannedStart = parseNullableTime(plannedStartStr, dateLayout)
	w.PlannedEnd = parseNullableTime(plannedEndStr, dateLayout)

	var err error
	w.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	w.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return w, nil
}
