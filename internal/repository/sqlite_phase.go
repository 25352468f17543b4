package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Kiterion83/cantiere-scheduler/internal/db"
	"github.com/Kiterion83/cantiere-scheduler/internal/domain"
)

// phaseColumns is the canonical SELECT column list for phases.
const phaseColumns = `id, discipline_id, name, ordinal, mandatory, is_initial, is_final, created_at, updated_at`

// SQLitePhaseRepo implements PhaseRepo using a SQLite database.
type SQLitePhaseRepo struct {
	db db.DBTX
}

// NewSQLitePhaseRepo creates a new SQLitePhaseRepo.
func NewSQLitePhaseRepo(db db.DBTX) *SQLitePhaseRepo {
	return &SQLitePhaseRepo{db: db}
}

func (r *SQLitePhaseRepo) Create(ctx context.Context, p *domain.Phase) error {
	query := `INSERT INTO phases (id, discipline_id, name, ordinal, mandatory, is_initial, is_final, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.DisciplineID,
		p.Name,
		p.Ordinal,
		boolToInt(p.Mandatory),
		boolToInt(p.IsInitial),
		boolToInt(p.IsFinal),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting phase: %w", err)
	}
	return nil
}

func (r *SQLitePhaseRepo) GetByID(ctx context.Context, id string) (*domain.Phase, error) {
	query := `SELECT ` + phaseColumns + ` FROM phases WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanPhaseRow(row)
}

func (r *SQLitePhaseRepo) ListByDiscipline(ctx context.Context, disciplineID string) ([]*domain.Phase, error) {
	query := `SELECT ` + phaseColumns + ` FROM phases WHERE discipline_id = ? ORDER BY ordinal`
	rows, err := r.db.QueryContext(ctx, query, disciplineID)
	if err != nil {
		return nil, fmt.Errorf("listing phases by discipline: %w", err)
	}
	defer rows.Close()
	return scanPhases(rows)
}

func (r *SQLitePhaseRepo) Update(ctx context.Context, p *domain.Phase) error {
	query := `UPDATE phases SET discipline_id = ?, name = ?, ordinal = ?, mandatory = ?, is_initial = ?, is_final = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		p.DisciplineID,
		p.Name,
		p.Ordinal,
		boolToInt(p.Mandatory),
		boolToInt(p.IsInitial),
		boolToInt(p.IsFinal),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating phase: %w", err)
	}
	return nil
}

func (r *SQLitePhaseRepo) SetOrdinal(ctx context.Context, id string, ordinal int) error {
	query := `UPDATE phases SET ordinal = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, ordinal, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("setting phase ordinal: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking phase ordinal update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("phase: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLitePhaseRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM phases WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting phase: %w", err)
	}
	return nil
}

func scanPhaseRow(row *sql.Row) (*domain.Phase, error) {
	var p domain.Phase
	var mandatory, isInitial, isFinal int
	var createdAtStr, updatedAtStr string
	err := row.Scan(&p.ID, &p.DisciplineID, &p.Name, &p.Ordinal, &mandatory, &isInitial, &isFinal, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("phase: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning phase: %w", err)
	}
	return populatePhase(&p, mandatory, isInitial, isFinal, createdAtStr, updatedAtStr)
}

func scanPhases(rows *sql.Rows) ([]*domain.Phase, error) {
	var phases []*domain.Phase
	for rows.Next() {
		var p domain.Phase
		var mandatory, isInitial, isFinal int
		var createdAtStr, updatedAtStr string
		if err := rows.Scan(&p.ID, &p.DisciplineID, &p.Name, &p.Ordinal, &mandatory, &isInitial, &isFinal, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning phase row: %w", err)
		}
		phase, err := populatePhase(&p, mandatory, isInitial, isFinal, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		phases = append(phases, phase)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phases: %w", err)
	}
	return phases, nil
}

func populatePhase(p *domain.Phase, mandatory, isInitial, isFinal int, createdAtStr, updatedAtStr string) (*domain.Phase, error) {
	p.Mandatory = intToBool(mandatory)
	p.IsInitial = intToBool(isInitial)
	p.IsFinal = intToBool(isFinal)

	var err error
	p.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return p, nil
}
