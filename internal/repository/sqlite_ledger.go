package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Kiterion83/cantiere-scheduler/internal/db"
	"github.com/Kiterion83/cantiere-scheduler/internal/domain"
)

// ledgerColumns is the canonical SELECT column list for ledger_entries.
const ledgerColumns = `id, project_id, year, week, phase_id, work_package_id, component_id, squad_id,
		status, priority, instructions,
		problem, problem_description, problem_reporter,
		problem_resolved, problem_resolved_by, problem_resolved_at,
		completed_at, completed_by, created_at, updated_at`

// SQLiteLedgerRepo implements LedgerRepo using a SQLite database.
type SQLiteLedgerRepo struct {
	db db.DBTX
}

// NewSQLiteLedgerRepo creates a new SQLiteLedgerRepo.
func NewSQLiteLedgerRepo(db db.DBTX) *SQLiteLedgerRepo {
	return &SQLiteLedgerRepo{db: db}
}

func (r *SQLiteLedgerRepo) Create(ctx context.Context, e *domain.LedgerEntry) error {
	query := `INSERT INTO ledger_entries (id, project_id, year, week, phase_id, work_package_id, component_id, squad_id,
		status, priority, instructions,
		problem, problem_description, problem_reporter,
		problem_resolved, problem_resolved_by, problem_resolved_at,
		completed_at, completed_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.ProjectID,
		e.Year,
		e.Week,
		e.PhaseID,
		nullableString(e.WorkPackageID),
		nullableString(e.ComponentID),
		nullableString(e.SquadID),
		string(e.Status),
		e.Priority,
		e.Instructions,
		boolToInt(e.Problem),
		e.ProblemDescription,
		e.ProblemReporter,
		boolToInt(e.ProblemResolved),
		e.ProblemResolvedBy,
		nullableTimeToString(e.ProblemResolvedAt, time.RFC3339),
		nullableTimeToString(e.CompletedAt, time.RFC3339),
		e.CompletedBy,
		e.CreatedAt.Format(time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("unit already has a ledger entry for %d-W%02d: %w", e.Year, e.Week, ErrAlreadyScheduled)
		}
		return fmt.Errorf("inserting ledger entry: %w", err)
	}
	return nil
}

func (r *SQLiteLedgerRepo) GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanLedgerRow(row)
}

func (r *SQLiteLedgerRepo) List(ctx context.Context, f LedgerFilter) ([]*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE 1=1`
	var args []any
	if f.ProjectID != "" {
		query += ` AND project_id = ?`
		args = append(args, f.ProjectID)
	}
	if f.Year != 0 {
		query += ` AND year = ?`
		args = append(args, f.Year)
	}
	if f.Week != 0 {
		query += ` AND week = ?`
		args = append(args, f.Week)
	}
	if f.PhaseID != "" {
		query += ` AND phase_id = ?`
		args = append(args, f.PhaseID)
	}
	if f.SquadID != "" {
		query += ` AND squad_id = ?`
		args = append(args, f.SquadID)
	}
	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(f.Status))
	}
	if f.OpenProblems {
		query += ` AND problem = 1 AND problem_resolved = 0`
	}
	query += ` ORDER BY year, week, priority DESC, created_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing ledger entries: %w", err)
	}
	defer rows.Close()
	return scanLedgerEntries(rows)
}

func (r *SQLiteLedgerRepo) Update(ctx context.Context, e *domain.LedgerEntry) error {
	query := `UPDATE ledger_entries SET year = ?, week = ?, phase_id = ?, squad_id = ?,
		status = ?, priority = ?, instructions = ?,
		problem = ?, problem_description = ?, problem_reporter = ?,
		problem_resolved = ?, problem_resolved_by = ?, problem_resolved_at = ?,
		completed_at = ?, completed_by = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		e.Year,
		e.Week,
		e.PhaseID,
		nullableString(e.SquadID),
		string(e.Status),
		e.Priority,
		e.Instructions,
		boolToInt(e.Problem),
		e.ProblemDescription,
		e.ProblemReporter,
		boolToInt(e.ProblemResolved),
		e.ProblemResolvedBy,
		nullableTimeToString(e.ProblemResolvedAt, time.RFC3339),
		nullableTimeToString(e.CompletedAt, time.RFC3339),
		e.CompletedBy,
		e.UpdatedAt.Format(time.RFC3339),
		e.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("unit already has a ledger entry for %d-W%02d: %w", e.Year, e.Week, ErrAlreadyScheduled)
		}
		return fmt.Errorf("updating ledger entry: %w", err)
	}
	return nil
}

// Delete removes an entry unconditionally, whatever its status. Callers
// confirm destructive intent.
func (r *SQLiteLedgerRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM ledger_entries WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting ledger entry: %w", err)
	}
	return nil
}

func (r *SQLiteLedgerRepo) StatusCounts(ctx context.Context, projectID string) (completed, total int, err error) {
	query := `SELECT
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0),
			COUNT(*)
		FROM ledger_entries WHERE project_id = ?`
	err = r.db.QueryRowContext(ctx, query, projectID).Scan(&completed, &total)
	if err != nil {
		return 0, 0, fmt.Errorf("counting ledger entries: %w", err)
	}
	return completed, total, nil
}

func scanLedgerRow(row *sql.Row) (*domain.LedgerEntry, error) {
	var e domain.LedgerEntry
	var wpIDStr, compIDStr, squadIDStr sql.NullString
	var statusStr string
	var problemInt, resolvedInt int
	var resolvedAtStr, completedAtStr sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&e.ID, &e.ProjectID, &e.Year, &e.Week, &e.PhaseID, &wpIDStr, &compIDStr, &squadIDStr,
		&statusStr, &e.Priority, &e.Instructions,
		&problemInt, &e.ProblemDescription, &e.ProblemReporter,
		&resolvedInt, &e.ProblemResolvedBy, &resolvedAtStr,
		&completedAtStr, &e.CompletedBy, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("ledger entry: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning ledger entry: %w", err)
	}
	return populateLedgerEntry(&e, wpIDStr, compIDStr, squadIDStr, statusStr, problemInt, resolvedInt, resolvedAtStr, completedAtStr, createdAtStr, updatedAtStr)
}

func scanLedgerEntries(rows *sql.Rows) ([]*domain.LedgerEntry, error) {
	var entries []*domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		var wpIDStr, compIDStr, squadIDStr sql.NullString
		var statusStr string
		var problemInt, resolvedInt int
		var resolvedAtStr, completedAtStr sql.NullString
		var createdAtStr, updatedAtStr string

		err := rows.Scan(
			&e.ID, &e.ProjectID, &e.Year, &e.Week, &e.PhaseID, &wpIDStr, &compIDStr, &squadIDStr,
			&statusStr, &e.Priority, &e.Instructions,
			&problemInt, &e.ProblemDescription, &e.ProblemReporter,
			&resolvedInt, &e.ProblemResolvedBy, &resolvedAtStr,
			&completedAtStr, &e.CompletedBy, &createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning ledger entry row: %w", err)
		}
		entry, err := populateLedgerEntry(&e, wpIDStr, compIDStr, squadIDStr, statusStr, problemInt, resolvedInt, resolvedAtStr, completedAtStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger entries: %w", err)
	}
	return entries, nil
}

func populateLedgerEntry(
	e *domain.LedgerEntry,
	wpIDStr, compIDStr, squadIDStr sql.NullString,
	statusStr string,
	problemInt, resolvedInt int,
	resolvedAtStr, completedAtStr sql.NullString,
	createdAtStr, updatedAtStr string,
) (*domain.LedgerEntry, error) {
	e.WorkPackageID = nullStringPtr(wpIDStr)
	e.ComponentID = nullStringPtr(compIDStr)
	e.SquadID = nullStringPtr(squadIDStr)
	e.Status = domain.EntryStatus(statusStr)
	e.Problem = intToBool(problemInt)
	e.ProblemResolved = intToBool(resolvedInt)
	e.ProblemResolvedAt = parseNullableTime(resolvedAtStr, time.RFC3339)
	e.CompletedAt = parseNullableTime(completedAtStr, time.RFC3339)

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
